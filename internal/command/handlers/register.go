// Package handlers явно регистрирует все обработчики команд.
package handlers

import (
	"github.com/Kargones/v8run/internal/command/handlers/baselisthandler"
	"github.com/Kargones/v8run/internal/command/handlers/createinfobase"
	"github.com/Kargones/v8run/internal/command/handlers/designerhandler"
	"github.com/Kargones/v8run/internal/command/handlers/enterprisehandler"
	"github.com/Kargones/v8run/internal/command/handlers/version"
)

// RegisterAll регистрирует все обработчики в глобальном реестре.
// Вызывается один раз из main() до обращения к командам.
func RegisterAll() error {
	for _, register := range []func() error{
		createinfobase.RegisterCmd,
		designerhandler.RegisterCmd,
		enterprisehandler.RegisterCmd,
		baselisthandler.RegisterCmd,
		version.RegisterCmd,
	} {
		if err := register(); err != nil {
			return err
		}
	}
	return nil
}
