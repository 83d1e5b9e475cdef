// Package scope оборачивает операции замером длительности, логированием результата,
// span-ом трассировки и перехватом аварий верхнего уровня.
package scope

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/Kargones/v8run/internal/pkg/logging"
	"github.com/Kargones/v8run/internal/pkg/metrics"
	"github.com/Kargones/v8run/internal/pkg/tracing"

	"go.opentelemetry.io/otel/codes"
)

// ScriptName - имя операции верхнего уровня, в логах выводится как "Скрипт".
const ScriptName = "main"

const scriptDisplayName = "Скрипт"

// Scope содержит получателей событий измеряемых операций.
// Нулевое значение пригодно к использованию: логи и метрики отбрасываются.
type Scope struct {
	Log     logging.Logger
	Metrics metrics.Collector

	// Now подменяется в тестах.
	Now func() time.Time
}

// New создаёт Scope с логгером и коллектором метрик.
func New(log logging.Logger, m metrics.Collector) Scope {
	return Scope{Log: log, Metrics: m}
}

// Logger возвращает Log или логгер, отбрасывающий записи.
func (s Scope) Logger() logging.Logger {
	if s.Log == nil {
		return logging.NewNopLogger()
	}
	return s.Log
}

func (s Scope) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Measure выполняет fn внутри span-а name и логирует начало, длительность и результат.
//
// Результат классифицируется так:
//   - true: "<name>. Выполнилось за M:SS мин:сек. Успешно" (INFO)
//   - false: "... Неуспешно" (ERROR)
//   - любое другое значение: "... Результат функции: <v>" (INFO)
//
// Длительность округляется вверх до целых секунд.
func Measure[T any](ctx context.Context, s Scope, name string, fn func(ctx context.Context) T) T {
	log := s.Logger()
	display := DisplayName(name)

	log.Info(display + ". Началось")

	ctx, span := tracing.Tracer().Start(ctx, display)
	defer span.End()

	start := s.now()
	result := fn(ctx)
	elapsed := s.now().Sub(start)

	message := display + ". Выполнилось за " + FormatDuration(elapsed) + " мин:сек"

	success := true
	switch v := any(result).(type) {
	case bool:
		success = v
		if v {
			log.Info(message + ". Успешно")
		} else {
			log.Error(message + ". Неуспешно")
			span.SetStatus(codes.Error, "operation failed")
		}
	default:
		log.Info(fmt.Sprintf("%s. Результат функции: %v", message, v))
	}

	if s.Metrics != nil {
		s.Metrics.RecordOperation(display, elapsed, success)
	}

	return result
}

// DisplayName возвращает имя операции для логов.
func DisplayName(name string) string {
	if name == ScriptName {
		return scriptDisplayName
	}
	return name
}

// FormatDuration форматирует длительность как M:SS, округляя вверх до секунды.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(math.Ceil(d.Seconds()))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
