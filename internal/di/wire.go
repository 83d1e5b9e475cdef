//go:build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/Kargones/v8run/internal/config"
)

//go:generate wire

// ProviderSet объединяет все провайдеры приложения.
// Используется в InitializeApp для построения графа зависимостей.
var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideOutputWriter,
	ProvideTraceID,
	ProvideMetricsCollector,
	ProvideTracerProvider,
	ProvideScope,
	ProvideDeps,
	wire.Struct(new(App), "*"),
)

// InitializeApp создаёт и инициализирует App через Wire DI.
// Принимает Config, загруженный через config.Load().
//
// Wire генерирует реализацию этой функции в wire_gen.go.
func InitializeApp(cfg *config.Config) (*App, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
