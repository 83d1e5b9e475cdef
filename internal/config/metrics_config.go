package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Kargones/v8run/internal/pkg/urlutil"

	"github.com/ilyakaznacheev/cleanenv"
)

// MetricsConfig содержит настройки для Prometheus метрик.
type MetricsConfig struct {
	// Enabled - включены ли метрики (по умолчанию false).
	Enabled bool `yaml:"enabled" env:"BR_METRICS_ENABLED" env-default:"false"`

	// PushgatewayURL - URL Prometheus Pushgateway, например "http://pushgateway:9091".
	PushgatewayURL string `yaml:"pushgatewayUrl" env:"BR_METRICS_PUSHGATEWAY_URL"`

	// JobName - имя job для группировки метрик.
	JobName string `yaml:"jobName" env:"BR_METRICS_JOB_NAME" env-default:"v8run"`

	// Timeout - таймаут HTTP запросов к Pushgateway.
	Timeout time.Duration `yaml:"timeout" env:"BR_METRICS_TIMEOUT" env-default:"10s"`

	// InstanceLabel - переопределение instance label. Если пусто - используется hostname.
	InstanceLabel string `yaml:"instanceLabel" env:"BR_METRICS_INSTANCE"`
}

func isMetricsConfigPresent(cfg *MetricsConfig) bool {
	if cfg == nil {
		return false
	}
	return cfg.Enabled || cfg.PushgatewayURL != ""
}

// getDefaultMetricsConfig: метрики отключены по умолчанию.
func getDefaultMetricsConfig() *MetricsConfig {
	return &MetricsConfig{
		JobName: "v8run",
		Timeout: 10 * time.Second,
	}
}

// loadMetricsConfig берёт настройки из app.yaml или значения по умолчанию.
// Переменные окружения BR_METRICS_* переопределяют оба источника.
func loadMetricsConfig(l *slog.Logger, cfg *Config) *MetricsConfig {
	metricsConfig := getDefaultMetricsConfig()
	if cfg.AppConfig != nil && isMetricsConfigPresent(&cfg.AppConfig.Metrics) {
		metricsConfig = &cfg.AppConfig.Metrics
	}

	if err := cleanenv.ReadEnv(metricsConfig); err != nil {
		l.Warn("Ошибка загрузки Metrics конфигурации из переменных окружения",
			slog.String("error", err.Error()),
		)
	}

	if metricsConfig.Enabled {
		l.Info("Metrics конфигурация",
			slog.String("pushgateway_url", urlutil.MaskURL(metricsConfig.PushgatewayURL)),
			slog.String("job_name", metricsConfig.JobName),
		)
	}
	return metricsConfig
}

func validateMetricsConfig(mc *MetricsConfig) error {
	if mc == nil || !mc.Enabled {
		return nil
	}
	if mc.PushgatewayURL == "" {
		return fmt.Errorf("metrics: pushgateway_url обязателен при enabled=true")
	}
	if mc.Timeout <= 0 {
		return fmt.Errorf("metrics: timeout должен быть положительным")
	}
	return nil
}
