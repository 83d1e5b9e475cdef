package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// MssqlConfig - подключение к MSSQL для проверки базы данных перед CREATEINFOBASE.
// Сервер и имя базы берутся из параметров создания; User и Password,
// если не заданы, тоже берутся оттуда (db_user, db_password).
type MssqlConfig struct {
	Enabled  bool          `yaml:"enabled" env:"BR_MSSQL_ENABLED" env-default:"false"`
	Port     int           `yaml:"port" env:"BR_MSSQL_PORT" env-default:"1433"`
	User     string        `yaml:"user" env:"BR_MSSQL_USER"`
	Password string        `yaml:"password" env:"BR_MSSQL_PASSWORD"`
	Timeout  time.Duration `yaml:"timeout" env:"BR_MSSQL_TIMEOUT" env-default:"30s"`
	Encrypt  bool          `yaml:"encrypt" env:"BR_MSSQL_ENCRYPT" env-default:"true"`
}

func getDefaultMssqlConfig() *MssqlConfig {
	return &MssqlConfig{
		Port:    1433,
		Timeout: 30 * time.Second,
		Encrypt: true,
	}
}

// loadMssqlConfig берёт настройки из app.yaml или значения по умолчанию.
// Переменные окружения BR_MSSQL_* переопределяют оба источника.
func loadMssqlConfig(l *slog.Logger, cfg *Config) *MssqlConfig {
	mssqlConfig := getDefaultMssqlConfig()
	if cfg.AppConfig != nil && (cfg.AppConfig.Mssql != MssqlConfig{}) {
		mssqlConfig = &cfg.AppConfig.Mssql
	}

	if err := cleanenv.ReadEnv(mssqlConfig); err != nil {
		l.Warn("Ошибка загрузки Mssql конфигурации из переменных окружения",
			slog.String("error", err.Error()),
		)
	}
	return mssqlConfig
}

func validateMssqlConfig(mc *MssqlConfig) error {
	if mc == nil || !mc.Enabled {
		return nil
	}
	if mc.Port < 1 || mc.Port > 65535 {
		return fmt.Errorf("mssql: недопустимый порт %d", mc.Port)
	}
	if mc.Timeout <= 0 {
		return fmt.Errorf("mssql: timeout должен быть положительным")
	}
	return nil
}
