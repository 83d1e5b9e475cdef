package metrics

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Kargones/v8run/internal/pkg/logging"
	"github.com/Kargones/v8run/internal/pkg/urlutil"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "v8run"

// PrometheusCollector реализует Collector с Prometheus метриками.
// Отправляет метрики в Pushgateway при вызове Push().
type PrometheusCollector struct {
	config   Config
	logger   logging.Logger
	registry *prometheus.Registry

	commandDuration   *prometheus.HistogramVec
	commandSuccess    *prometheus.CounterVec
	commandError      *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	platformExit      *prometheus.CounterVec

	instance string
}

// NewPrometheusCollector создаёт PrometheusCollector с указанной конфигурацией.
// Регистрирует метрики:
//   - v8run_command_duration_seconds (histogram)
//   - v8run_command_success_total, v8run_command_error_total (counter)
//   - v8run_operation_duration_seconds (histogram)
//   - v8run_platform_exit_total (counter)
func NewPrometheusCollector(config Config, logger logging.Logger) (*PrometheusCollector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	instance := config.InstanceLabel
	if instance == "" {
		hostname, err := os.Hostname()
		if err != nil {
			logger.Warn("не удалось получить hostname для metrics instance label, используется 'unknown'",
				"error", err.Error())
			hostname = "unknown"
		}
		instance = hostname
	}

	// Пакетные операции конфигуратора идут минутами, отсюда длинные buckets.
	buckets := []float64{0.5, 1, 5, 10, 30, 60, 120, 300, 600, 1800, 3600}

	c := &PrometheusCollector{
		config:   config,
		logger:   logger,
		registry: prometheus.NewRegistry(),
		instance: instance,
		commandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Duration of command execution in seconds",
			Buckets:   buckets,
		}, []string{"command", "infobase", "status"}),
		commandSuccess: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "command_success_total",
			Help:      "Total number of successful command executions",
		}, []string{"command", "infobase"}),
		commandError: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "command_error_total",
			Help:      "Total number of failed command executions",
		}, []string{"command", "infobase"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of measured platform operations in seconds",
			Buckets:   buckets,
		}, []string{"operation", "status"}),
		platformExit: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "platform_exit_total",
			Help:      "Platform process exits by launch mode and exit code",
		}, []string{"mode", "code"}),
	}

	collectors := []prometheus.Collector{
		c.commandDuration, c.commandSuccess, c.commandError, c.operationDuration, c.platformExit,
	}
	for _, m := range collectors {
		if err := c.registry.Register(m); err != nil {
			return nil, fmt.Errorf("ошибка регистрации метрики: %w", err)
		}
	}

	return c, nil
}

// RecordCommandStart пишет отладочную запись; in-flight для CLI не отслеживается.
func (c *PrometheusCollector) RecordCommandStart(command, infobase string) {
	c.logger.Debug("metrics: command started", "command", command, "infobase", infobase)
}

// maxLabelLength ограничивает длину значения label.
const maxLabelLength = 128

// sanitizeLabel обрезает значение label по рунам и заменяет контрольные символы.
func sanitizeLabel(value string) string {
	clean := strings.Map(func(r rune) rune {
		if r < 0x20 {
			return '_'
		}
		return r
	}, value)

	runes := []rune(clean)
	if len(runes) > maxLabelLength {
		return string(runes[:maxLabelLength])
	}
	return clean
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

// RecordCommandEnd обновляет histogram длительности и counter success/error.
func (c *PrometheusCollector) RecordCommandEnd(command, infobase string, duration time.Duration, success bool) {
	command = sanitizeLabel(command)
	infobase = sanitizeLabel(infobase)

	c.commandDuration.WithLabelValues(command, infobase, statusLabel(success)).Observe(duration.Seconds())
	if success {
		c.commandSuccess.WithLabelValues(command, infobase).Inc()
	} else {
		c.commandError.WithLabelValues(command, infobase).Inc()
	}

	c.logger.Debug("metrics: command ended",
		"command", command,
		"infobase", infobase,
		"duration_ms", duration.Milliseconds(),
		"success", success,
	)
}

// RecordOperation записывает длительность измеряемой операции.
func (c *PrometheusCollector) RecordOperation(operation string, duration time.Duration, success bool) {
	c.operationDuration.WithLabelValues(sanitizeLabel(operation), statusLabel(success)).Observe(duration.Seconds())
}

// RecordPlatformExit увеличивает счётчик кодов завершения платформы.
func (c *PrometheusCollector) RecordPlatformExit(mode string, exitCode int) {
	c.platformExit.WithLabelValues(sanitizeLabel(mode), strconv.Itoa(exitCode)).Inc()
}

// Push отправляет метрики в Pushgateway. Ошибка отправки не критична и только логируется.
func (c *PrometheusCollector) Push(ctx context.Context) error {
	if c.config.PushgatewayURL == "" {
		c.logger.Debug("metrics: pushgateway URL not configured, skipping push")
		return nil
	}

	select {
	case <-ctx.Done():
		c.logger.Debug("metrics push отменён")
		return nil
	default:
	}

	pusher := push.New(c.config.PushgatewayURL, c.config.JobName).
		Gatherer(c.registry).
		Grouping("instance", c.instance)

	pushCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	if err := pusher.PushContext(pushCtx); err != nil {
		c.logger.Error("ошибка отправки метрик в Pushgateway",
			"error", err.Error(),
			"url", urlutil.MaskURL(c.config.PushgatewayURL),
			"job", c.config.JobName,
		)
		return nil
	}

	c.logger.Info("метрики отправлены в Pushgateway",
		"url", urlutil.MaskURL(c.config.PushgatewayURL),
		"job", c.config.JobName,
		"instance", c.instance,
	)
	return nil
}

// GetRegistry возвращает внутренний registry для тестирования.
func (c *PrometheusCollector) GetRegistry() *prometheus.Registry {
	return c.registry
}
