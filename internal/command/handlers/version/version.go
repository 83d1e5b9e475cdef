// Package version реализует команду version: сведения о сборке и список команд.
package version

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/Kargones/v8run/internal/command"
	"github.com/Kargones/v8run/internal/constants"
)

// RegisterCmd регистрирует команду version.
func RegisterCmd() error {
	return command.Register(&VersionHandler{})
}

// VersionData содержит информацию о версии приложения.
type VersionData struct {
	// Version - полная версия приложения.
	Version string `json:"version"`

	// GoVersion - версия Go, использованная при сборке.
	GoVersion string `json:"go_version"`

	// Commit - хеш коммита на момент сборки.
	Commit string `json:"commit"`

	BuildDate string `json:"build_date"`

	// Commands - зарегистрированные команды в алфавитном порядке.
	Commands []CommandEntry `json:"commands"`
}

// CommandEntry описывает зарегистрированную команду.
type CommandEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// WriteText выводит информацию о версии в человекочитаемом формате.
func (d *VersionData) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "v8run version %s\n  Go:     %s\n  Commit: %s\n  Built:  %s\n",
		d.Version, d.GoVersion, d.Commit, d.BuildDate)
	if err != nil {
		return err
	}

	if len(d.Commands) == 0 {
		return nil
	}
	if _, err = fmt.Fprintln(w, "\nКоманды:"); err != nil {
		return err
	}
	for _, c := range d.Commands {
		if _, err = fmt.Fprintf(w, "  %-18s %s\n", c.Name, c.Description); err != nil {
			return err
		}
	}
	return nil
}

// buildVersionData создаёт VersionData с fallback значениями.
// Если version пустой - используется "dev", если commit пустой - "unknown".
func buildVersionData(version, commit, buildDate string) *VersionData {
	if version == "" {
		version = "dev"
	}
	if commit == "" {
		commit = "unknown"
	}
	if buildDate == "" {
		buildDate = "unknown"
	}
	return &VersionData{
		Version:   version,
		GoVersion: runtime.Version(),
		Commit:    commit,
		BuildDate: buildDate,
		Commands:  buildCommands(),
	}
}

func buildCommands() []CommandEntry {
	names := command.Names()
	entries := make([]CommandEntry, 0, len(names))
	for _, name := range names {
		h, ok := command.Get(name)
		if !ok {
			continue
		}
		entries = append(entries, CommandEntry{Name: name, Description: h.Description()})
	}
	return entries
}

// VersionHandler обрабатывает команду version.
type VersionHandler struct{}

// Name возвращает имя команды.
func (h *VersionHandler) Name() string {
	return constants.ActVersion
}

// Description возвращает описание команды для вывода в help.
func (h *VersionHandler) Description() string {
	return "Вывод информации о версии приложения"
}

// Execute собирает данные о версии. Файл параметров для команды не нужен.
func (h *VersionHandler) Execute(_ context.Context, _ *command.Deps) (any, error) {
	return buildVersionData(constants.Version, constants.Commit, constants.BuildDate), nil
}
