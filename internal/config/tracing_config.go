package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Kargones/v8run/internal/pkg/urlutil"

	"github.com/ilyakaznacheev/cleanenv"
)

// TracingConfig содержит настройки OpenTelemetry трейсинга.
type TracingConfig struct {
	// Enabled включает отправку трейсов в OTLP бэкенд.
	Enabled bool `yaml:"enabled" env:"BR_TRACING_ENABLED" env-default:"false"`

	// Endpoint - URL OTLP HTTP endpoint (например, http://jaeger:4318).
	Endpoint string `yaml:"endpoint" env:"BR_TRACING_ENDPOINT"`

	ServiceName string `yaml:"serviceName" env:"BR_TRACING_SERVICE_NAME" env-default:"v8run"`
	Environment string `yaml:"environment" env:"BR_TRACING_ENVIRONMENT" env-default:"production"`

	// Insecure - HTTP вместо HTTPS для OTLP endpoint.
	Insecure bool `yaml:"insecure" env:"BR_TRACING_INSECURE" env-default:"true"`

	Timeout time.Duration `yaml:"timeout" env:"BR_TRACING_TIMEOUT" env-default:"5s"`

	// SamplingRate - доля сэмплируемых трейсов (0.0 - ни один, 1.0 - все).
	SamplingRate float64 `yaml:"samplingRate" env:"BR_TRACING_SAMPLING_RATE" env-default:"1.0"`
}

func isTracingConfigPresent(cfg *TracingConfig) bool {
	if cfg == nil {
		return false
	}
	return cfg.Enabled || cfg.Endpoint != ""
}

// getDefaultTracingConfig: трейсинг отключён по умолчанию.
func getDefaultTracingConfig() *TracingConfig {
	return &TracingConfig{
		ServiceName:  "v8run",
		Environment:  "production",
		Insecure:     true,
		Timeout:      5 * time.Second,
		SamplingRate: 1.0,
	}
}

func validateTracingConfig(tc *TracingConfig) error {
	if tc == nil || !tc.Enabled {
		return nil
	}
	if tc.Endpoint == "" {
		return fmt.Errorf("tracing: endpoint обязателен при enabled=true")
	}
	if tc.ServiceName == "" {
		return fmt.Errorf("tracing: service name обязателен при enabled=true")
	}
	if tc.Timeout <= 0 {
		return fmt.Errorf("tracing: timeout должен быть положительным")
	}
	if tc.SamplingRate < 0.0 || tc.SamplingRate > 1.0 {
		return fmt.Errorf("tracing: sampling rate должен быть от 0.0 до 1.0, получено: %g", tc.SamplingRate)
	}
	return nil
}

// loadTracingConfig берёт настройки из app.yaml или значения по умолчанию.
// Переменные окружения BR_TRACING_* переопределяют оба источника.
func loadTracingConfig(l *slog.Logger, cfg *Config) *TracingConfig {
	tracingConfig := getDefaultTracingConfig()
	if cfg.AppConfig != nil && isTracingConfigPresent(&cfg.AppConfig.Tracing) {
		tracingConfig = &cfg.AppConfig.Tracing
	}

	if err := cleanenv.ReadEnv(tracingConfig); err != nil {
		l.Warn("Ошибка загрузки Tracing конфигурации из переменных окружения",
			slog.String("error", err.Error()),
		)
	}

	if tracingConfig.Enabled {
		l.Debug("Tracing конфигурация",
			slog.String("endpoint", urlutil.MaskURL(tracingConfig.Endpoint)),
			slog.String("service_name", tracingConfig.ServiceName),
		)
	}
	return tracingConfig
}
