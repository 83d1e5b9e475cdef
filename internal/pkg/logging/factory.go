package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Kargones/v8run/internal/constants"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger создаёт Logger с заданной конфигурацией.
//
// Поддерживаемые режимы вывода (config.Output):
//   - "stderr" или "" (default): логи пишутся в os.Stderr
//   - "file": логи пишутся в файл с автоматической ротацией через lumberjack
//
// Если задан config.ScriptLogFile, записи дополнительно уходят в лог скрипта
// на уровне DEBUG.
func NewLogger(config Config) Logger {
	var w io.Writer

	switch config.Output {
	case OutputFile:
		w = newLumberjackWriter(config.FilePath, config)
	case OutputStderr, "":
		w = os.Stderr
	default:
		_, _ = os.Stderr.WriteString(fmt.Sprintf( //nolint:errcheck // bootstrap stderr
			"WARNING: неизвестный logging output %q, falling back to stderr\n", config.Output))
		w = os.Stderr
	}

	if config.ScriptLogFile == "" {
		return NewLoggerWithWriter(config, w)
	}

	scriptWriter := newLumberjackWriter(config.ScriptLogFile, Config{})
	return NewLoggerWithWriters(config, w, scriptWriter)
}

// newLumberjackWriter создаёт io.Writer с ротацией на основе lumberjack.
// Автоматически создаёт директорию для файла логов если не существует.
// При пустом пути возвращает os.Stderr как fallback.
func newLumberjackWriter(path string, config Config) io.Writer {
	if path == "" {
		_, _ = os.Stderr.WriteString("WARNING: logging output=file but filePath is empty, falling back to stderr\n") //nolint:errcheck // bootstrap stderr
		return os.Stderr
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermStandard); err != nil {
			_, _ = os.Stderr.WriteString(fmt.Sprintf( //nolint:errcheck // bootstrap stderr
				"WARNING: не удалось создать директорию логов %q: %v, falling back to stderr\n", dir, err))
			return os.Stderr
		}
	}

	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    config.MaxSize, // MB, 0 = lumberjack default
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge, // days
		Compress:   config.Compress,
	}
}

// NewLoggerWithWriter создаёт Logger с заданной конфигурацией и writer.
// Используется для тестирования и гибкой настройки вывода.
func NewLoggerWithWriter(config Config, w io.Writer) Logger {
	return NewSlogAdapter(slog.New(newHandler(config.Format, w, parseLevel(config.Level))))
}

// NewLoggerWithWriters создаёт Logger, который пишет в основной writer с уровнем
// из конфигурации и в writer лога скрипта с уровнем DEBUG.
func NewLoggerWithWriters(config Config, w, script io.Writer) Logger {
	console := newHandler(config.Format, w, parseLevel(config.Level))
	file := newHandler(FormatText, script, slog.LevelDebug)
	return NewSlogAdapter(slog.New(newFanoutHandler(console, file)))
}

func newHandler(format string, w io.Writer, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == FormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// parseLevel конвертирует строковый уровень в slog.Level.
// При неизвестном значении возвращает slog.LevelInfo.
func parseLevel(level string) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
