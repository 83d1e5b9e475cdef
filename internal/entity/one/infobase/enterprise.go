package infobase

import "context"

// Enterprise запускает базу в режиме предприятия.
type Enterprise struct {
	base
	launch LaunchParams
}

// NewEnterprise создаёт построитель запуска в режиме предприятия.
func NewEnterprise(target Target, exec *Executor) *Enterprise {
	return &Enterprise{base: newBase(target, exec)}
}

// SetLaunchParams задаёт параметр, передаваемый прикладному решению.
func (e *Enterprise) SetLaunchParams(p LaunchParams) { e.launch = p }

// ConnectionString возвращает значение /IBConnectionString.
func (e *Enterprise) ConnectionString() string { return e.connectionString() }

// commonParams: /IBConnectionString обязан идти сразу за ENTERPRISE,
// иначе платформа отвечает "Неопределена информационная база".
func (e *Enterprise) commonParams() []string {
	params := append([]string{ModeEnterprise, "/IBConnectionString " + e.connectionString()}, e.base.commonParams()...)
	if e.launch.Param != "" {
		params = append(params, "/C "+e.launch.Param)
	}
	return params
}

// Run запускает клиент и ждёт его завершения.
func (e *Enterprise) Run(ctx context.Context) bool {
	return e.run(ctx, "Run", e.commonParams())
}
