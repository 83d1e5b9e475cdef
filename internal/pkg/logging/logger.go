// Package logging предоставляет интерфейс и реализации для структурированного логирования.
package logging

// Logger - структурированный лог v8run. Реализации: SlogAdapter и NopLogger.
//
//	log.Info("Создание базы", "infobase", target.String())
//
// Logger пишет только в stderr и файлы. stdout занят результатом команды.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// With возвращает Logger, добавляющий args ко всем записям.
	With(args ...any) Logger
}
