package di

import (
	"context"

	"github.com/Kargones/v8run/internal/command"
	"github.com/Kargones/v8run/internal/config"
	"github.com/Kargones/v8run/internal/pkg/logging"
	"github.com/Kargones/v8run/internal/pkg/metrics"
	"github.com/Kargones/v8run/internal/pkg/output"
	"github.com/Kargones/v8run/internal/pkg/scope"
)

// App содержит инициализированные зависимости приложения.
// Создаётся через Wire DI в InitializeApp().
//
// При добавлении новых зависимостей:
// 1. Добавить поле в App struct
// 2. Создать провайдер в providers.go
// 3. Добавить провайдер в ProviderSet в wire.go
// 4. Перегенерировать wire_gen.go: go generate ./internal/di/...
type App struct {
	// Config передаётся извне через InitializeApp().
	Config *config.Config

	// Logger пишет в stderr (или файл) и, если задан файл параметров, в лог скрипта.
	Logger logging.Logger

	// OutputWriter форматирует результаты команд по --output / BR_OUTPUT_FORMAT.
	OutputWriter output.Writer

	// TraceID - идентификатор запуска для корреляции логов.
	TraceID string

	// MetricsCollector отправляет метрики в Prometheus Pushgateway.
	// Если метрики отключены - NopCollector.
	MetricsCollector metrics.Collector

	// TracerShutdown завершает OTel TracerProvider и отправляет буферизированные span-ы.
	TracerShutdown func(context.Context) error

	// Scope - получатели событий измеряемых операций.
	Scope scope.Scope

	// Deps передаются обработчику команды.
	Deps *command.Deps
}
