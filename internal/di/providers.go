package di

import (
	"context"
	"log/slog"

	"github.com/Kargones/v8run/internal/command"
	"github.com/Kargones/v8run/internal/config"
	"github.com/Kargones/v8run/internal/constants"
	"github.com/Kargones/v8run/internal/pkg/logging"
	"github.com/Kargones/v8run/internal/pkg/metrics"
	"github.com/Kargones/v8run/internal/pkg/output"
	"github.com/Kargones/v8run/internal/pkg/scope"
	"github.com/Kargones/v8run/internal/pkg/tracing"
)

// ProvideLogger создаёт Logger на основе LoggingConfig из Config.
//
// Если загружен файл параметров, записи дополнительно пишутся в лог скрипта
// Params.LogFileName (<log_dir>/<команда>.<время>.log) начиная с DEBUG.
// Если LoggingConfig == nil, используются значения logging.DefaultConfig().
func ProvideLogger(cfg *config.Config) logging.Logger {
	logCfg := logging.DefaultConfig()
	if cfg == nil {
		return logging.NewLogger(logCfg)
	}

	scriptLog := ""
	if cfg.Params != nil {
		scriptLog = cfg.Params.LogFileName
	}

	if cfg.LoggingConfig != nil {
		fromCfg := cfg.LoggingConfig.ToLoggingConfig(scriptLog)
		// Пустые значения не затирают значения по умолчанию.
		if fromCfg.Level != "" {
			logCfg.Level = fromCfg.Level
		}
		if fromCfg.Format != "" {
			logCfg.Format = fromCfg.Format
		}
		if fromCfg.Output != "" {
			logCfg.Output = fromCfg.Output
		}
		if fromCfg.FilePath != "" {
			logCfg.FilePath = fromCfg.FilePath
		}
		if fromCfg.MaxSize > 0 {
			logCfg.MaxSize = fromCfg.MaxSize
		}
		if fromCfg.MaxBackups > 0 {
			logCfg.MaxBackups = fromCfg.MaxBackups
		}
		if fromCfg.MaxAge > 0 {
			logCfg.MaxAge = fromCfg.MaxAge
		}
		logCfg.Compress = fromCfg.Compress
	}
	logCfg.ScriptLogFile = scriptLog

	return logging.NewLogger(logCfg)
}

// ProvideOutputWriter создаёт OutputWriter по Config.OutputFormat:
// "json" - JSONWriter, иначе TextWriter.
func ProvideOutputWriter(cfg *config.Config) output.Writer {
	format := output.FormatText
	if cfg != nil && cfg.OutputFormat != "" {
		format = cfg.OutputFormat
	}
	return output.NewWriter(format)
}

// ProvideTraceID генерирует 32-символьный hex trace_id запуска.
func ProvideTraceID() string {
	return tracing.GenerateTraceID()
}

// ProvideMetricsCollector создаёт Collector на основе MetricsConfig из Config.
// Если MetricsConfig == nil или Enabled=false, возвращает NopCollector.
// При ошибке создания Collector возвращает NopCollector и логирует ошибку.
func ProvideMetricsCollector(cfg *config.Config, logger logging.Logger) metrics.Collector {
	if cfg == nil || cfg.MetricsConfig == nil {
		return metrics.NewNopCollector()
	}

	metricsCfg := metrics.Config{
		Enabled:        cfg.MetricsConfig.Enabled,
		PushgatewayURL: cfg.MetricsConfig.PushgatewayURL,
		JobName:        cfg.MetricsConfig.JobName,
		Timeout:        cfg.MetricsConfig.Timeout,
		InstanceLabel:  cfg.MetricsConfig.InstanceLabel,
	}

	collector, err := metrics.NewCollector(metricsCfg, logger)
	if err != nil {
		logger.Error("ошибка создания MetricsCollector, используется NopCollector",
			slog.String("error", err.Error()),
		)
		return metrics.NewNopCollector()
	}
	return collector
}

// ProvideTracerProvider создаёт OTel TracerProvider и возвращает shutdown function.
// Если TracingConfig == nil или Enabled=false, возвращает nop shutdown.
func ProvideTracerProvider(cfg *config.Config, logger logging.Logger) func(context.Context) error {
	if cfg == nil || cfg.TracingConfig == nil {
		return tracing.NewNopTracerProvider()
	}

	tracingCfg := tracing.Config{
		Enabled:      cfg.TracingConfig.Enabled,
		Endpoint:     cfg.TracingConfig.Endpoint,
		ServiceName:  cfg.TracingConfig.ServiceName,
		Version:      constants.Version,
		Environment:  cfg.TracingConfig.Environment,
		Insecure:     cfg.TracingConfig.Insecure,
		Timeout:      cfg.TracingConfig.Timeout,
		SamplingRate: cfg.TracingConfig.SamplingRate,
	}

	shutdown, err := tracing.NewTracerProvider(tracingCfg, logger)
	if err != nil {
		logger.Error("ошибка инициализации tracing, используется nop provider",
			slog.String("error", err.Error()),
		)
		return tracing.NewNopTracerProvider()
	}
	return shutdown
}

// ProvideScope связывает логгер запуска (с trace_id) и коллектор метрик.
func ProvideScope(logger logging.Logger, collector metrics.Collector, traceID string) scope.Scope {
	return scope.New(logger.With(slog.String("trace_id", traceID)), collector)
}

// ProvideDeps собирает зависимости обработчиков. Runner и клиент MSSQL
// берутся по умолчанию: runner.Runner и mssql.NewClient.
func ProvideDeps(cfg *config.Config, sc scope.Scope) *command.Deps {
	return &command.Deps{Config: cfg, Scope: sc}
}
