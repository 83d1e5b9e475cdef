// Package command предоставляет интерфейс обработчика команды и реестр команд.
// Обработчики регистрируются явно через handlers.RegisterAll.
package command

import (
	"context"
	"io"
	"os"

	"github.com/Kargones/v8run/internal/adapter/mssql"
	"github.com/Kargones/v8run/internal/config"
	"github.com/Kargones/v8run/internal/entity/one/infobase"
	"github.com/Kargones/v8run/internal/pkg/scope"
)

// Handler определяет интерфейс обработчика команды.
type Handler interface {
	// Name возвращает имя команды (kebab-case, см. internal/constants).
	Name() string

	// Description возвращает описание команды для вывода в help.
	Description() string

	// Execute выполняет команду. Возвращаемые данные попадают в поле data результата.
	// Неуспешная операция возвращается как *apperrors.AppError.
	Execute(ctx context.Context, deps *Deps) (any, error)
}

// MSSQLFactory создаёт клиент MSSQL.
type MSSQLFactory func(opts mssql.ClientOptions) (mssql.Client, error)

// Deps - зависимости обработчиков.
type Deps struct {
	Config *config.Config
	Scope  scope.Scope

	// Runner запускает платформу; nil - runner.Runner в рабочем каталоге из конфигурации.
	Runner infobase.ProcessRunner

	// NewMSSQLClient создаёт клиент для проверки базы данных; nil - mssql.NewClient.
	NewMSSQLClient MSSQLFactory

	// Stdout - вывод команд, печатающих текст напрямую (version).
	Stdout io.Writer
}

// Out возвращает Stdout или os.Stdout.
func (d *Deps) Out() io.Writer {
	if d.Stdout == nil {
		return os.Stdout
	}
	return d.Stdout
}

// MSSQL возвращает фабрику клиентов MSSQL.
func (d *Deps) MSSQL() MSSQLFactory {
	if d.NewMSSQLClient == nil {
		return mssql.NewClient
	}
	return d.NewMSSQLClient
}
