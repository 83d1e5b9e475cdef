// Package enterprisehandler реализует команду run-enterprise: запуск базы в режиме предприятия.
package enterprisehandler

import (
	"context"

	"github.com/Kargones/v8run/internal/command"
	"github.com/Kargones/v8run/internal/command/handlers/shared"
	"github.com/Kargones/v8run/internal/constants"
	"github.com/Kargones/v8run/internal/entity/one/infobase"
)

// RegisterCmd регистрирует команду run-enterprise.
func RegisterCmd() error {
	return command.Register(&Handler{})
}

// Handler обрабатывает команду run-enterprise.
type Handler struct{}

// Name возвращает имя команды.
func (h *Handler) Name() string { return constants.ActRunEnterprise }

// Description возвращает описание команды.
func (h *Handler) Description() string {
	return "Запуск базы в режиме предприятия (ENTERPRISE) с параметром /C"
}

// Execute запускает базу; enterprise_launch_param передаётся прикладному решению.
func (h *Handler) Execute(ctx context.Context, deps *command.Deps) (any, error) {
	s, err := shared.NewSession(deps)
	if err != nil {
		return nil, err
	}
	target, err := s.Target()
	if err != nil {
		return nil, err
	}

	e := infobase.NewEnterprise(target, s.Executor)
	ibLog := s.Configure(e)
	e.SetLaunchParams(infobase.LaunchParams{Param: s.Params.Value(constants.ParamEnterpriseLaunch)})

	if !e.Run(ctx) {
		return nil, shared.OperationFailed("Run", ibLog)
	}
	return &shared.OperationData{
		Operation: "Run",
		Infobase:  target.String(),
		IBLogFile: ibLog,
	}, nil
}
