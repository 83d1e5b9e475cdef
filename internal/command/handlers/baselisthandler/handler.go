// Package baselisthandler реализует команду set-base-list: запись параметров
// базы в файл списка баз ibases.v8i.
package baselisthandler

import (
	"context"

	"github.com/Kargones/v8run/internal/command"
	"github.com/Kargones/v8run/internal/command/handlers/shared"
	"github.com/Kargones/v8run/internal/constants"
	"github.com/Kargones/v8run/internal/entity/one/baselist"
	"github.com/Kargones/v8run/internal/pkg/apperrors"
)

// RegisterCmd регистрирует команду set-base-list.
func RegisterCmd() error {
	return command.Register(&Handler{})
}

// Handler обрабатывает команду set-base-list.
type Handler struct{}

// Name возвращает имя команды.
func (h *Handler) Name() string { return constants.ActSetBaseList }

// Description возвращает описание команды.
func (h *Handler) Description() string {
	return "Запись AdditionalParameters и Version базы в список баз (ibases.v8i)"
}

// Data - результат команды set-base-list.
type Data struct {
	ListFile             string `json:"list_file"`
	ListName             string `json:"list_name"`
	AdditionalParameters string `json:"additional_parameters,omitempty"`
	Version              string `json:"version,omitempty"`
}

// Execute записывает параметры базы list_name (или base_list_name) в файл list_file.
func (h *Handler) Execute(ctx context.Context, deps *command.Deps) (any, error) {
	if deps == nil || deps.Config == nil || deps.Config.Params == nil {
		return nil, apperrors.NewAppError(apperrors.ErrParamsKeyMissing,
			"файл параметров не задан (BR_PARAMS_FILE или --params)", nil)
	}
	p := deps.Config.Params
	if err := shared.Require(p, constants.ParamListFile); err != nil {
		return nil, err
	}

	data := &Data{
		ListFile:             p.Value(constants.ParamListFile),
		ListName:             p.ValueOr(constants.ParamListName, p.Value(constants.ParamBaseListName)),
		AdditionalParameters: p.Value(constants.ParamListAdditionalParameters),
		Version:              p.Value(constants.ParamListVersion),
	}
	if data.ListName == "" {
		return nil, apperrors.NewAppError(apperrors.ErrParamsKeyMissing,
			"в файле параметров не заданы: "+constants.ParamListName, nil)
	}

	if !baselist.SetBaseParameters(ctx, deps.Scope, data.ListFile, data.ListName, data.AdditionalParameters, data.Version) {
		return nil, shared.OperationFailed("SetBaseParameters", "")
	}
	return data, nil
}
