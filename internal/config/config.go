// Package config загружает конфигурацию v8run: входные параметры из переменных
// окружения BR_* и флагов, файл app.yaml и файл параметров скрипта.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/Kargones/v8run/internal/constants"
	"github.com/Kargones/v8run/internal/params"
	"github.com/Kargones/v8run/internal/pkg/apperrors"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

// AppConfig представляет настройки приложения из файла app.yaml.
type AppConfig struct {
	WorkDir string `yaml:"workDir"`
	Paths   struct {
		Bin1cv8 string `yaml:"bin1cv8"`
	} `yaml:"paths"`
	// PlatformVersion - версия платформы, определяет кодировку служебного лога.
	PlatformVersion string `yaml:"platformVersion"`
	// Env - переменные окружения процесса платформы, например DISPLAY для 1cv8 на Linux.
	Env map[string]string `yaml:"env"`

	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
	Mssql   MssqlConfig   `yaml:"mssql"`
}

// InputParams - входные параметры из переменных окружения.
type InputParams struct {
	Command       string `env:"BR_COMMAND" env-default:""`
	ParamsFile    string `env:"BR_PARAMS_FILE" env-default:""`
	ParamsVersion string `env:"BR_PARAMS_VERSION" env-default:""`
	ConfigApp     string `env:"BR_CONFIG_APP" env-default:""`
	OutputFormat  string `env:"BR_OUTPUT_FORMAT" env-default:"text"`
}

// Overrides - значения флагов командной строки. Непустые поля
// переопределяют переменные окружения.
type Overrides struct {
	Command       string
	ParamsFile    string
	ParamsVersion string
	ConfigApp     string
	OutputFormat  string
}

// Config хранит настройки для работы приложения.
type Config struct {
	Command       string
	ParamsFile    string
	ParamsVersion string
	ConfigApp     string
	OutputFormat  string

	AppConfig     *AppConfig
	LoggingConfig *LoggingConfig
	MetricsConfig *MetricsConfig
	TracingConfig *TracingConfig
	MssqlConfig   *MssqlConfig

	// Params - параметры скрипта; nil, если файл параметров не задан.
	Params *params.Params
}

// GetInputParams читает входные параметры из переменных окружения.
func GetInputParams() (*InputParams, error) {
	inputParams := &InputParams{}
	if err := cleanenv.ReadEnv(inputParams); err != nil {
		return nil, err
	}
	return inputParams, nil
}

func (ip *InputParams) apply(ov Overrides) {
	if ov.Command != "" {
		ip.Command = ov.Command
	}
	if ov.ParamsFile != "" {
		ip.ParamsFile = ov.ParamsFile
	}
	if ov.ParamsVersion != "" {
		ip.ParamsVersion = ov.ParamsVersion
	}
	if ov.ConfigApp != "" {
		ip.ConfigApp = ov.ConfigApp
	}
	if ov.OutputFormat != "" {
		ip.OutputFormat = ov.OutputFormat
	}
}

// Load собирает конфигурацию. Логгер l используется только на время загрузки,
// до создания основного логгера приложения.
func Load(l *slog.Logger, ov Overrides, opts ...params.Option) (*Config, error) {
	inputParams, err := GetInputParams()
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigLoad, "не удалось прочитать переменные окружения", err)
	}
	inputParams.apply(ov)

	cfg := &Config{
		Command:       inputParams.Command,
		ParamsFile:    inputParams.ParamsFile,
		ParamsVersion: inputParams.ParamsVersion,
		ConfigApp:     inputParams.ConfigApp,
		OutputFormat:  inputParams.OutputFormat,
	}

	if cfg.AppConfig, err = loadAppConfig(l, cfg.ConfigApp); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigLoad, "ошибка загрузки app.yaml", err)
	}

	cfg.LoggingConfig = loadLoggingConfig(l, cfg)
	cfg.MetricsConfig = loadMetricsConfig(l, cfg)
	cfg.TracingConfig = loadTracingConfig(l, cfg)
	cfg.MssqlConfig = loadMssqlConfig(l, cfg)

	if err = cfg.validate(); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigValidate, "некорректная конфигурация", err)
	}

	if cfg.ParamsFile != "" {
		p, loadErr := params.Load(cfg.ParamsFile, cfg.Command, cfg.ParamsVersion, opts...)
		if loadErr != nil {
			code := apperrors.ErrParamsRead
			if errors.Is(loadErr, params.ErrWrongParametersFileVersion) {
				code = apperrors.ErrParamsVersionMismatch
			}
			return nil, apperrors.NewAppError(code, "ошибка чтения файла параметров", loadErr)
		}
		cfg.Params = p
		l.Debug("Файл параметров загружен", slog.String("file", cfg.ParamsFile), slog.Int("keys", len(p.Keys())))
	}

	return cfg, nil
}

func (cfg *Config) validate() error {
	return errors.Join(
		validateMetricsConfig(cfg.MetricsConfig),
		validateTracingConfig(cfg.TracingConfig),
		validateMssqlConfig(cfg.MssqlConfig),
	)
}

// loadAppConfig читает app.yaml. Без пути возвращается конфигурация по умолчанию.
func loadAppConfig(l *slog.Logger, fileName string) (*AppConfig, error) {
	if fileName == "" {
		l.Debug("app.yaml не задан, используются значения по умолчанию")
		return getDefaultAppConfig(), nil
	}

	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения данных app.yaml: %w", err)
	}

	appConfig := getDefaultAppConfig()
	if err = yaml.Unmarshal(data, appConfig); err != nil {
		return nil, fmt.Errorf("ошибка парсинга app.yaml: %w", err)
	}
	return appConfig, nil
}

func getDefaultAppConfig() *AppConfig {
	appConfig := &AppConfig{WorkDir: constants.DefaultWorkDir}
	appConfig.Paths.Bin1cv8 = constants.DefaultBin1cv8
	return appConfig
}

// ExeName возвращает путь к исполняемому файлу платформы.
// Ключ exename файла параметров имеет приоритет над app.yaml.
func (cfg *Config) ExeName() string {
	if cfg.Params != nil {
		if v := cfg.Params.Value(constants.ParamExeName); v != "" {
			return v
		}
	}
	if cfg.AppConfig != nil {
		return cfg.AppConfig.Paths.Bin1cv8
	}
	return constants.DefaultBin1cv8
}

// PlatformVersion возвращает версию платформы.
// Ключ platform_version файла параметров имеет приоритет над app.yaml.
func (cfg *Config) PlatformVersion() string {
	if cfg.Params != nil {
		if v := cfg.Params.Value(constants.ParamPlatformVersion); v != "" {
			return v
		}
	}
	if cfg.AppConfig != nil {
		return cfg.AppConfig.PlatformVersion
	}
	return ""
}

// ProcessEnv возвращает переменные app.yaml env в виде KEY=VALUE, отсортированные по имени.
func (cfg *Config) ProcessEnv() []string {
	if cfg.AppConfig == nil || len(cfg.AppConfig.Env) == 0 {
		return nil
	}
	env := make([]string, 0, len(cfg.AppConfig.Env))
	for k, v := range cfg.AppConfig.Env {
		env = append(env, k+"="+v)
	}
	sort.Strings(env)
	return env
}

// WorkDir возвращает рабочий каталог процессов платформы.
func (cfg *Config) WorkDir() string {
	if cfg.AppConfig != nil {
		return cfg.AppConfig.WorkDir
	}
	return ""
}
