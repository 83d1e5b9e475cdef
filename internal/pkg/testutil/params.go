// Package testutil содержит общие утилиты для тестов обработчиков: файл параметров,
// подмену запуска платформы и логгер с записью сообщений.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Kargones/v8run/internal/config"
	"github.com/Kargones/v8run/internal/params"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

// ParamsVersion - ini_version, который ожидают тестовые файлы параметров.
const ParamsVersion = "1"

// FixedNow - момент времени, от которого строятся имена логов в тестах.
func FixedNow() time.Time {
	return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
}

// LoadParams записывает ini в кодировке Windows-1251 и загружает его.
// К содержимому добавляется секция [common] с ini_version и log_dir во временном каталоге.
func LoadParams(t *testing.T, script, content string) *params.Params {
	t.Helper()
	dir := t.TempDir()
	full := "[common]\nini_version=" + ParamsVersion + "\nlog_dir=" + dir + "\n" + content

	encoded, err := charmap.Windows1251.NewEncoder().String(full)
	require.NoError(t, err)

	fileName := filepath.Join(dir, "params.ini")
	require.NoError(t, os.WriteFile(fileName, []byte(encoded), 0o600))

	p, err := params.Load(fileName, script, ParamsVersion, params.WithClock(FixedNow))
	require.NoError(t, err)
	return p
}

// Config возвращает конфигурацию с загруженными параметрами и app.yaml по умолчанию.
func Config(t *testing.T, command, content string) *config.Config {
	t.Helper()
	cfg := &config.Config{
		Command:     command,
		AppConfig:   &config.AppConfig{},
		MssqlConfig: &config.MssqlConfig{},
		Params:      LoadParams(t, command, content),
	}
	cfg.AppConfig.Paths.Bin1cv8 = "1cv8"
	return cfg
}
