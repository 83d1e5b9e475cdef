// Package createinfobase реализует команду create-infobase: создание файловой
// или серверной базы в режиме CREATEINFOBASE и, при необходимости, запись
// параметров базы в список баз ibases.v8i.
package createinfobase

import (
	"context"
	"log/slog"

	"github.com/Kargones/v8run/internal/adapter/mssql"
	"github.com/Kargones/v8run/internal/command"
	"github.com/Kargones/v8run/internal/command/handlers/shared"
	"github.com/Kargones/v8run/internal/constants"
	"github.com/Kargones/v8run/internal/entity/one/baselist"
	"github.com/Kargones/v8run/internal/entity/one/infobase"
	"github.com/Kargones/v8run/internal/params"
)

// RegisterCmd регистрирует команду create-infobase.
func RegisterCmd() error {
	return command.Register(&Handler{})
}

// Handler обрабатывает команду create-infobase.
type Handler struct{}

// Name возвращает имя команды.
func (h *Handler) Name() string { return constants.ActCreateInfobase }

// Description возвращает описание команды.
func (h *Handler) Description() string {
	return "Создание информационной базы (CREATEINFOBASE) и добавление её в список баз"
}

// Execute создаёт базу по параметрам base_*, db_*, cluster_* и file_format.
func (h *Handler) Execute(ctx context.Context, deps *command.Deps) (any, error) {
	s, err := shared.NewSession(deps)
	if err != nil {
		return nil, err
	}
	target, err := s.Target()
	if err != nil {
		return nil, err
	}

	c := infobase.NewCreation(target, s.Executor)
	ibLog := s.Configure(c)
	p := s.Params

	switch {
	case target.Dir != "":
		format, err := shared.ParseOptional(p, constants.ParamFileFormat, infobase.ParseFileDBFormat)
		if err != nil {
			return nil, err
		}
		c.SetFileDBParams(infobase.FileDBParams{Format: format})
	case target.Server != "":
		db, err := serverDBParams(p)
		if err != nil {
			return nil, err
		}
		c.SetServerDBParams(db)
		c.SetClusterParams(infobase.ClusterParams{
			DenyScheduledJobs: p.Bool(constants.ParamClusterDenyJobs),
			AdminUser:         p.Value(constants.ParamClusterUser),
			AdminPassword:     p.Value(constants.ParamClusterPassword),
		})
		checkDatabase(ctx, deps, db)
	}

	listName := p.Value(constants.ParamBaseListName)
	if !c.CreateBase(ctx, listName, p.Value(constants.ParamBaseTemplate)) {
		return nil, shared.OperationFailed("CreateBase", ibLog)
	}

	data := &shared.OperationData{
		Operation: "CreateBase",
		Infobase:  target.String(),
		IBLogFile: ibLog,
	}

	listFile := p.Value(constants.ParamListFile)
	if listFile == "" {
		return data, nil
	}
	baseName := p.ValueOr(constants.ParamListName, listName)
	if !baselist.SetBaseParameters(ctx, deps.Scope, listFile, baseName,
		p.Value(constants.ParamListAdditionalParameters), p.Value(constants.ParamListVersion)) {
		return nil, shared.OperationFailed("SetBaseParameters", "")
	}
	data.Details = map[string]string{"list_file": listFile, "list_name": baseName}
	return data, nil
}

// serverDBParams читает параметры СУБД. Пустые db_type и db_year_offset не попадают в командную строку.
func serverDBParams(p *params.Params) (infobase.ServerDBParams, error) {
	dbType, err := shared.ParseOptional(p, constants.ParamDBType, infobase.ParseDBServerType)
	if err != nil {
		return infobase.ServerDBParams{}, err
	}
	offset, err := shared.ParseOptional(p, constants.ParamDBYearOffset, infobase.ParseSQLYearOffset)
	if err != nil {
		return infobase.ServerDBParams{}, err
	}
	return infobase.ServerDBParams{
		Type:             dbType,
		ServerName:       p.Value(constants.ParamDBServer),
		Database:         p.Value(constants.ParamDBName),
		User:             p.Value(constants.ParamDBUser),
		Password:         p.Value(constants.ParamDBPassword),
		YearOffset:       offset,
		CreateIfNotExist: p.BoolOr(constants.ParamDBCreate, true),
	}, nil
}

// checkDatabase сообщает в лог, существует ли база данных на сервере MSSQL.
// Проверка включается в app.yaml (mssql.enabled) и не влияет на результат команды:
// CREATEINFOBASE сам создаёт базу данных при CrSQLDB=Y.
func checkDatabase(ctx context.Context, deps *command.Deps, db infobase.ServerDBParams) {
	cfg := deps.Config.MssqlConfig
	if cfg == nil || !cfg.Enabled || db.Type != infobase.DBServerMSSQL || db.ServerName == "" {
		return
	}
	log := deps.Scope.Logger()

	user, password := cfg.User, cfg.Password
	if user == "" {
		user, password = db.User, db.Password
	}
	client, err := deps.MSSQL()(mssql.ClientOptions{
		Server:   db.ServerName,
		Port:     cfg.Port,
		User:     user,
		Password: password,
		Timeout:  cfg.Timeout,
		Encrypt:  cfg.Encrypt,
	})
	if err != nil {
		log.Warn("Проверка базы данных MSSQL пропущена", slog.String("error", err.Error()))
		return
	}
	if err := client.Connect(ctx); err != nil {
		log.Warn("Не удалось подключиться к MSSQL", slog.String("server", db.ServerName), slog.String("error", err.Error()))
		return
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			log.Warn("Ошибка закрытия соединения MSSQL", slog.String("error", cerr.Error()))
		}
	}()

	exists, err := client.DatabaseExists(ctx, db.Database)
	switch {
	case err != nil:
		log.Warn("Не удалось проверить наличие базы данных", slog.String("database", db.Database), slog.String("error", err.Error()))
	case exists:
		log.Info("База данных уже существует на сервере СУБД", slog.String("server", db.ServerName), slog.String("database", db.Database))
	case !db.CreateIfNotExist:
		log.Warn("База данных отсутствует, а создание отключено (db_create)", slog.String("database", db.Database))
	default:
		log.Info("База данных отсутствует и будет создана", slog.String("server", db.ServerName), slog.String("database", db.Database))
	}
}
