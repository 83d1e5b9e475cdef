package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewLoggerWithWriter_LevelFiltering проверяет что DEBUG не логируется при level=info.
func TestNewLoggerWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(Config{Format: FormatText, Level: LevelInfo}, &buf)

	logger.Debug("скрытое сообщение")
	logger.Info("видимое сообщение")

	assert.NotContains(t, buf.String(), "скрытое сообщение")
	assert.Contains(t, buf.String(), "видимое сообщение")
}

// TestNewLoggerWithWriter_JSON проверяет JSON формат и атрибуты With().
func TestNewLoggerWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(Config{Format: FormatJSON, Level: LevelDebug}, &buf)

	logger.With("command", "load-cfg").Info("Команда выполнена", "duration_ms", 15)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, "Команда выполнена", rec["msg"])
	assert.Equal(t, "load-cfg", rec["command"])
	assert.EqualValues(t, 15, rec["duration_ms"])
}

// TestNewLoggerWithWriters_ScriptLogGetsDebug проверяет что лог скрипта получает DEBUG,
// а основной вывод фильтруется по своему уровню.
func TestNewLoggerWithWriters_ScriptLogGetsDebug(t *testing.T) {
	var console, script bytes.Buffer
	logger := NewLoggerWithWriters(Config{Level: LevelInfo}, &console, &script)

	logger.With("op", "dump").Debug("параметры запуска")
	logger.Error("ошибка")

	assert.NotContains(t, console.String(), "параметры запуска")
	assert.Contains(t, console.String(), "ошибка")
	assert.Contains(t, script.String(), "параметры запуска")
	assert.Contains(t, script.String(), "op=dump")
	assert.Contains(t, script.String(), "ошибка")
}

// TestNewLogger_ScriptLogFile проверяет что при ScriptLogFile создаётся файл лога скрипта.
func TestNewLogger_ScriptLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "script.20240101000000.log")
	logger := NewLogger(Config{Level: LevelError, ScriptLogFile: path})

	logger.Debug("в файл")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "в файл"))
}

// TestParseLevel проверяет преобразование уровней.
func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{"verbose", "INFO"},
		{"", "INFO"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in).String())
		})
	}
}

// TestHasSink проверяет определение подключённого вывода.
func TestHasSink(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, HasSink(nil))
	assert.False(t, HasSink(NewNopLogger()))
	assert.False(t, HasSink(NewNopLogger().With("a", 1)))
	assert.True(t, HasSink(NewLoggerWithWriter(Config{}, &buf)))
	assert.True(t, HasSink(NewLoggerWithWriter(Config{}, &buf).With("a", 1)))
}

// TestNopLogger_AllMethods проверяет что методы NopLogger не паникуют.
func TestNopLogger_AllMethods(t *testing.T) {
	logger := NewNopLogger()
	assert.NotPanics(t, func() {
		logger.Debug("d")
		logger.Info("i")
		logger.Warn("w")
		logger.Error("e")
		logger.With("k", "v").Info("m")
	})
}

// TestDefaultConfig проверяет значения по умолчанию.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, LevelInfo, cfg.Level)
	assert.Equal(t, FormatText, cfg.Format)
	assert.Equal(t, OutputStderr, cfg.Output)
	assert.Empty(t, cfg.ScriptLogFile)
}
