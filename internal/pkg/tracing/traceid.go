// Package tracing связывает логи, метрики и span-ы одного запуска общим trace ID.
//
// Формат trace ID: 32-символьный hex (16 байт), совместимый с W3C Trace Context:
//
//	"a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6"
package tracing

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"
)

var fallbackCounter atomic.Uint64

// GenerateTraceID генерирует уникальный trace ID из crypto/rand.
// Если crypto/rand недоступен, ID собирается из времени и счётчика.
func GenerateTraceID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fallbackTraceID()
	}
	return hex.EncodeToString(b)
}

// fallbackTraceID всегда возвращает ровно 32 hex-символа.
func fallbackTraceID() string {
	counter := fallbackCounter.Add(1)
	timestamp := uint64(time.Now().UnixNano())
	return fmt.Sprintf("%016x%016x", timestamp, counter)
}

type traceIDKey struct{}

// WithTraceID возвращает context с trace ID.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, id)
}

// TraceIDFromContext извлекает trace ID из context или возвращает пустую строку.
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(traceIDKey{}).(string); ok {
		return id
	}
	return ""
}
