package metrics

import (
	"errors"
	"net/url"
	"time"
)

// Ошибки валидации Config.
var (
	ErrPushgatewayURLRequired = errors.New("metrics: при включённых метриках нужен адрес Pushgateway")
	ErrPushgatewayURLInvalid  = errors.New("metrics: адрес Pushgateway должен содержать схему и хост")
	ErrJobNameRequired        = errors.New("metrics: не задано имя job")
	ErrInvalidTimeout         = errors.New("metrics: таймаут должен быть положительным")
)

// Config - настройки отправки метрик запусков платформы в Pushgateway.
type Config struct {
	Enabled bool

	// PushgatewayURL, например http://pushgateway:9091.
	PushgatewayURL string

	// JobName группирует метрики всех команд v8run.
	JobName string

	// Timeout ограничивает один push.
	Timeout time.Duration

	// InstanceLabel заменяет hostname в метке instance.
	InstanceLabel string
}

// Validate проверяет настройки. Выключенные метрики не проверяются.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.PushgatewayURL == "" {
		return ErrPushgatewayURLRequired
	}
	if u, err := url.Parse(c.PushgatewayURL); err != nil || u.Scheme == "" || u.Host == "" {
		return ErrPushgatewayURLInvalid
	}
	if c.JobName == "" {
		return ErrJobNameRequired
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	return nil
}

// DefaultConfig: метрики выключены, job "v8run", таймаут 10 секунд.
func DefaultConfig() Config {
	return Config{
		JobName: "v8run",
		Timeout: 10 * time.Second,
	}
}
