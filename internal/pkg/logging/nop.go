package logging

// NopLogger - реализация Logger, которая ничего не делает.
// Используется в тестах и как логгер без подключённого вывода.
type NopLogger struct{}

// NewNopLogger создаёт Logger, который игнорирует все сообщения.
func NewNopLogger() Logger {
	return &NopLogger{}
}

// Debug ничего не делает.
func (n *NopLogger) Debug(_ string, _ ...any) {}

// Info ничего не делает.
func (n *NopLogger) Info(_ string, _ ...any) {}

// Warn ничего не делает.
func (n *NopLogger) Warn(_ string, _ ...any) {}

// Error ничего не делает.
func (n *NopLogger) Error(_ string, _ ...any) {}

// With возвращает тот же NopLogger.
func (n *NopLogger) With(_ ...any) Logger {
	return n
}

// HasSink сообщает, подключён ли к логгеру реальный вывод.
// nil и NopLogger вывода не имеют.
func HasSink(l Logger) bool {
	switch v := l.(type) {
	case nil:
		return false
	case *NopLogger:
		return false
	case *SlogAdapter:
		return v != nil
	default:
		return true
	}
}
