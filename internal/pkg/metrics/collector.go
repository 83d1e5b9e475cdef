// Package metrics собирает метрики запусков платформы и отправляет их
// в Prometheus Pushgateway.
package metrics

import (
	"context"
	"time"
)

// Collector определяет интерфейс для сбора метрик.
// Реализации: PrometheusCollector и NopCollector.
type Collector interface {
	// RecordCommandStart записывает начало выполнения команды.
	RecordCommandStart(command, infobase string)

	// RecordCommandEnd записывает завершение команды с результатом.
	RecordCommandEnd(command, infobase string, duration time.Duration, success bool)

	// RecordOperation записывает длительность и результат измеряемой операции
	// (например "Designer.LoadCfg").
	RecordOperation(operation string, duration time.Duration, success bool)

	// RecordPlatformExit записывает код завершения процесса платформы в заданном режиме.
	RecordPlatformExit(mode string, exitCode int)

	// Push отправляет метрики в Pushgateway. Ошибки логируются, возвращается nil.
	Push(ctx context.Context) error
}
