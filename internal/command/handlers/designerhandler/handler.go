// Package designerhandler реализует команды конфигуратора (режим DESIGNER):
// загрузку и выгрузку конфигурации и работу с хранилищем конфигурации.
package designerhandler

import (
	"context"
	"strconv"
	"strings"

	"github.com/Kargones/v8run/internal/command"
	"github.com/Kargones/v8run/internal/command/handlers/shared"
	"github.com/Kargones/v8run/internal/constants"
	"github.com/Kargones/v8run/internal/entity/one/infobase"
	"github.com/Kargones/v8run/internal/params"
)

// operation выполняет одну операцию конфигуратора.
// details попадают в данные результата; ошибка означает некорректные параметры.
type operation func(ctx context.Context, p *params.Params, d *infobase.Designer) (ok bool, details map[string]string, err error)

// Handler - команда конфигуратора.
type Handler struct {
	name        string
	description string
	// op - имя операции в логах и результате.
	op  string
	run operation
}

// Handlers возвращает все команды конфигуратора.
func Handlers() []*Handler {
	return []*Handler{
		{constants.ActLoadCfg, "Загрузка конфигурации из файла .cf/.cfe", "LoadCfg", loadCfg},
		{constants.ActDumpCfgFiles, "Выгрузка конфигурации в файлы", "DumpConfigToFiles", dumpConfigToFiles},
		{constants.ActDumpRepoCfg, "Сохранение конфигурации из хранилища в файл", "DumpRepoToFile", dumpRepoToFile},
		{constants.ActUpdateFromRepo, "Обновление конфигурации из хранилища", "UpdateFromRepo", updateFromRepo},
		{constants.ActCreateRepo, "Создание хранилища конфигурации", "CreateRepo", createRepo},
		{constants.ActSetRepoLabel, "Установка метки на версию хранилища", "SetRepoLabel", setRepoLabel},
	}
}

// RegisterCmd регистрирует команды конфигуратора.
func RegisterCmd() error {
	for _, h := range Handlers() {
		if err := command.Register(h); err != nil {
			return err
		}
	}
	return nil
}

// Name возвращает имя команды.
func (h *Handler) Name() string { return h.name }

// Description возвращает описание команды.
func (h *Handler) Description() string { return h.description }

// Execute настраивает конфигуратор по файлу параметров и выполняет операцию.
func (h *Handler) Execute(ctx context.Context, deps *command.Deps) (any, error) {
	s, err := shared.NewSession(deps)
	if err != nil {
		return nil, err
	}
	target, err := s.Target()
	if err != nil {
		return nil, err
	}

	d := infobase.NewDesigner(target, s.Executor)
	ibLog := s.Configure(d)
	d.SetRepoParams(s.RepoParams())

	ok, details, err := h.run(ctx, s.Params, d)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.OperationFailed(h.op, ibLog)
	}
	return &shared.OperationData{
		Operation: h.op,
		Infobase:  target.String(),
		IBLogFile: ibLog,
		Details:   details,
	}, nil
}

func loadCfg(ctx context.Context, p *params.Params, d *infobase.Designer) (bool, map[string]string, error) {
	if err := shared.Require(p, constants.ParamCfgFile); err != nil {
		return false, nil, err
	}
	file := p.Value(constants.ParamCfgFile)
	return d.LoadCfg(ctx, file), map[string]string{"cfg_file": file}, nil
}

func dumpConfigToFiles(ctx context.Context, p *params.Params, d *infobase.Designer) (bool, map[string]string, error) {
	if err := shared.Require(p, constants.ParamDumpDir); err != nil {
		return false, nil, err
	}
	format, err := shared.ParseOptional(p, constants.ParamDumpFormat, infobase.ParseConfigDumpFormat)
	if err != nil {
		return false, nil, err
	}
	dir := p.Value(constants.ParamDumpDir)
	opts := infobase.DumpOptions{
		Format:   format,
		NoUpdate: !p.BoolOr(constants.ParamDumpUpdate, true),
		NoForce:  !p.BoolOr(constants.ParamDumpForce, true),
	}
	return d.DumpConfigToFiles(ctx, dir, opts), map[string]string{"dump_dir": dir}, nil
}

func dumpRepoToFile(ctx context.Context, p *params.Params, d *infobase.Designer) (bool, map[string]string, error) {
	if err := shared.Require(p, constants.ParamRepoDir, constants.ParamRepoDumpFile); err != nil {
		return false, nil, err
	}
	file := p.Value(constants.ParamRepoDumpFile)
	version := p.Value(constants.ParamRepoVersion)
	details := map[string]string{"repo_dump_file": file}
	if version != "" {
		details["repo_version"] = version
	}
	return d.DumpRepoToFile(ctx, file, version), details, nil
}

func updateFromRepo(ctx context.Context, p *params.Params, d *infobase.Designer) (bool, map[string]string, error) {
	if err := shared.Require(p, constants.ParamRepoDir); err != nil {
		return false, nil, err
	}
	version, err := shared.Int(p, constants.ParamRepoVersion)
	if err != nil {
		return false, nil, err
	}
	d.SetUpdateDBCfgParams(infobase.UpdateDBCfgParams{
		Update:     p.Bool(constants.ParamUpdateDBCfg),
		SkipServer: !p.BoolOr(constants.ParamUpdateServer, true),
	})
	opts := infobase.UpdateFromRepoOptions{
		Version: version,
		Revised: p.Bool(constants.ParamRepoRevised),
		Force:   p.Bool(constants.ParamRepoForce),
		Objects: p.Value(constants.ParamRepoObjects),
	}
	var details map[string]string
	if version != 0 {
		details = map[string]string{"repo_version": strconv.Itoa(version)}
	}
	return d.UpdateFromRepo(ctx, opts), details, nil
}

func createRepo(ctx context.Context, p *params.Params, d *infobase.Designer) (bool, map[string]string, error) {
	if err := shared.Require(p, constants.ParamRepoDir); err != nil {
		return false, nil, err
	}
	allowed, err := shared.ParseOptional(p, constants.ParamRepoAllowedRule, infobase.ParseSupportRule)
	if err != nil {
		return false, nil, err
	}
	notRecommended, err := shared.ParseOptional(p, constants.ParamRepoNotRecommendedRule, infobase.ParseSupportRule)
	if err != nil {
		return false, nil, err
	}
	opts := infobase.CreateRepoOptions{
		DenyConfigurationChanges:  !p.BoolOr(constants.ParamRepoAllowChanges, true),
		ChangesAllowedRule:        allowed,
		ChangesNotRecommendedRule: notRecommended,
		NoBind:                    p.Bool(constants.ParamRepoNoBind),
	}
	return d.CreateRepo(ctx, opts), map[string]string{"repo_dir": p.Value(constants.ParamRepoDir)}, nil
}

// setRepoLabel: последовательность \n в label_comment разделяет строки комментария.
func setRepoLabel(ctx context.Context, p *params.Params, d *infobase.Designer) (bool, map[string]string, error) {
	if err := shared.Require(p, constants.ParamRepoDir, constants.ParamLabelName); err != nil {
		return false, nil, err
	}
	version, err := shared.Int(p, constants.ParamLabelVersion)
	if err != nil {
		return false, nil, err
	}
	label := p.Value(constants.ParamLabelName)
	comment := strings.ReplaceAll(p.Value(constants.ParamLabelComment), `\n`, "\n")
	return d.SetRepoLabel(ctx, label, version, comment), map[string]string{"label": label}, nil
}
