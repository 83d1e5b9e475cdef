// Package shared содержит общие части обработчиков команд работы с базой:
// чтение параметров подключения и настройку построителей командной строки.
package shared

import (
	"fmt"

	"github.com/Kargones/v8run/internal/command"
	"github.com/Kargones/v8run/internal/constants"
	"github.com/Kargones/v8run/internal/entity/one/infobase"
	"github.com/Kargones/v8run/internal/params"
	"github.com/Kargones/v8run/internal/pkg/apperrors"
	"github.com/Kargones/v8run/internal/util/runner"
)

// Builder - общие настройки построителей Creation, Designer и Enterprise.
type Builder interface {
	SetAuthParams(infobase.AuthParams)
	SetDialogSettings(infobase.DialogSettings)
	SetLogIBParams(infobase.LogIBParams)
	SetPlatformParams(infobase.PlatformParams)
	SetOtherParams(infobase.OtherParams)
}

// Session - подготовленный запуск команды: параметры, исполнитель и генератор имён логов платформы.
type Session struct {
	Params   *params.Params
	Executor *infobase.Executor
	LogNames *infobase.LogFileNameGenerator

	deps *command.Deps
}

// NewSession проверяет наличие файла параметров и создаёт исполнителя.
func NewSession(deps *command.Deps) (*Session, error) {
	if deps == nil || deps.Config == nil || deps.Config.Params == nil {
		return nil, apperrors.NewAppError(apperrors.ErrParamsKeyMissing,
			"файл параметров не задан (BR_PARAMS_FILE или --params)", nil)
	}

	r := deps.Runner
	if r == nil {
		pr := runner.New(deps.Config.WorkDir(), deps.Scope.Logger())
		pr.Env = deps.Config.ProcessEnv()
		r = pr
	}

	p := deps.Config.Params
	return &Session{
		Params:   p,
		Executor: infobase.NewExecutor(r, deps.Scope),
		LogNames: infobase.NewLogFileNameGenerator(p.IBLogFileNamePrefix),
		deps:     deps,
	}, nil
}

// Target читает адрес базы: base_dir, base_server + base_infobase или base_ws.
func (s *Session) Target() (infobase.Target, error) {
	t := infobase.Target{
		Dir:      s.Params.Value(constants.ParamBaseDir),
		Server:   s.Params.Value(constants.ParamBaseServer),
		Infobase: s.Params.Value(constants.ParamBaseInfobase),
		WSURL:    s.Params.Value(constants.ParamBaseWS),
	}
	if t.Dir == "" && t.Server == "" && t.WSURL == "" {
		return t, apperrors.NewAppError(apperrors.ErrParamsKeyMissing,
			fmt.Sprintf("не задан адрес базы: %s, %s или %s", constants.ParamBaseDir, constants.ParamBaseServer, constants.ParamBaseWS), nil)
	}
	if t.Dir == "" && t.Server != "" && t.Infobase == "" {
		return t, apperrors.NewAppError(apperrors.ErrParamsKeyMissing,
			fmt.Sprintf("при заданном %s требуется %s", constants.ParamBaseServer, constants.ParamBaseInfobase), nil)
	}
	return t, nil
}

// Configure применяет к построителю общие параметры из файла параметров.
// Возвращает имя служебного лога платформы (пусто, если ib_log выключен).
func (s *Session) Configure(b Builder) string {
	p := s.Params

	b.SetAuthParams(infobase.AuthParams{
		User:          p.Value(constants.ParamBaseUser),
		Password:      p.Value(constants.ParamBasePassword),
		DisableOSAuth: !p.BoolOr(constants.ParamBaseUseOSAuth, true),
	})
	b.SetDialogSettings(infobase.DialogSettings{Visible: p.Bool(constants.ParamBaseVisible)})
	b.SetPlatformParams(infobase.PlatformParams{
		ExeName: s.deps.Config.ExeName(),
		Version: s.deps.Config.PlatformVersion(),
	})
	b.SetOtherParams(infobase.OtherParams{
		AccessCode: p.Value(constants.ParamBaseAccessCode),
		Locale:     p.Value(constants.ParamBaseLocale),
		Extra:      p.Fields(constants.ParamBaseExtra),
	})

	logIB := infobase.LogIBParams{ResultFileName: p.Value(constants.ParamBaseDumpResult)}
	if p.BoolOr(constants.ParamIBLog, true) {
		logIB.FileName = s.LogNames.Next()
	}
	b.SetLogIBParams(logIB)
	return logIB.FileName
}

// RepoParams читает подключение к хранилищу конфигурации.
func (s *Session) RepoParams() infobase.RepoParams {
	return infobase.RepoParams{
		Dir:      s.Params.Value(constants.ParamRepoDir),
		User:     s.Params.Value(constants.ParamRepoUser),
		Password: s.Params.Value(constants.ParamRepoPassword),
	}
}
