package config

import (
	"log/slog"

	"github.com/Kargones/v8run/internal/pkg/logging"

	"github.com/ilyakaznacheev/cleanenv"
)

// LoggingConfig содержит настройки для логирования.
type LoggingConfig struct {
	// Level - уровень логирования (debug, info, warn, error)
	Level string `yaml:"level" env:"BR_LOG_LEVEL" env-default:"info"`

	// Format - формат логов (json, text)
	Format string `yaml:"format" env:"BR_LOG_FORMAT" env-default:"text"`

	// Output - вывод логов (stderr, file)
	Output string `yaml:"output" env:"BR_LOG_OUTPUT" env-default:"stderr"`

	// FilePath - путь к файлу логов (если output=file)
	FilePath string `yaml:"filePath" env:"BR_LOG_FILE_PATH"`

	MaxSize    int `yaml:"maxSize" env:"BR_LOG_MAX_SIZE" env-default:"100"`
	MaxBackups int `yaml:"maxBackups" env:"BR_LOG_MAX_BACKUPS" env-default:"3"`
	MaxAge     int `yaml:"maxAge" env:"BR_LOG_MAX_AGE" env-default:"7"`

	// Compress - сжимать ли backup файлы.
	// TODO: env-default:"true" перезаписывает compress: false из app.yaml при cleanenv.ReadEnv;
	// нужен *bool, чтобы отличать явное false от отсутствия значения.
	Compress bool `yaml:"compress" env:"BR_LOG_COMPRESS" env-default:"true"`
}

// loadLoggingConfig берёт настройки из app.yaml или значения по умолчанию.
// Переменные окружения BR_LOG_* переопределяют оба источника.
func loadLoggingConfig(l *slog.Logger, cfg *Config) *LoggingConfig {
	loggingConfig := getDefaultLoggingConfig()
	if cfg.AppConfig != nil && (cfg.AppConfig.Logging != LoggingConfig{}) {
		loggingConfig = &cfg.AppConfig.Logging
	}

	if err := cleanenv.ReadEnv(loggingConfig); err != nil {
		l.Warn("Ошибка загрузки Logging конфигурации из переменных окружения",
			slog.String("error", err.Error()),
		)
	}

	l.Debug("Logging конфигурация",
		slog.String("level", loggingConfig.Level),
		slog.String("format", loggingConfig.Format),
		slog.String("output", loggingConfig.Output),
	)
	return loggingConfig
}

// getDefaultLoggingConfig повторяет logging.DefaultConfig.
func getDefaultLoggingConfig() *LoggingConfig {
	d := logging.DefaultConfig()
	return &LoggingConfig{
		Level:      d.Level,
		Format:     d.Format,
		Output:     d.Output,
		FilePath:   d.FilePath,
		MaxSize:    d.MaxSize,
		MaxBackups: d.MaxBackups,
		MaxAge:     d.MaxAge,
		Compress:   d.Compress,
	}
}

// ToLoggingConfig переводит настройки в logging.Config.
// scriptLogFile - лог скрипта, в который пишутся все записи начиная с DEBUG.
func (lc *LoggingConfig) ToLoggingConfig(scriptLogFile string) logging.Config {
	return logging.Config{
		Format:        lc.Format,
		Level:         lc.Level,
		Output:        lc.Output,
		FilePath:      lc.FilePath,
		MaxSize:       lc.MaxSize,
		MaxBackups:    lc.MaxBackups,
		MaxAge:        lc.MaxAge,
		Compress:      lc.Compress,
		ScriptLogFile: scriptLogFile,
	}
}
