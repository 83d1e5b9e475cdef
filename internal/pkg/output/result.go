// Package output форматирует результаты команд в JSON и текст для stdout.
package output

// StatusSuccess и StatusError - возможные значения поля Status в Result.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIVersion - текущая версия формата результата.
const APIVersion = "v1"

// Result представляет структурированный результат выполнения команды.
type Result struct {
	// Status содержит статус выполнения: "success" или "error".
	Status string `json:"status"`

	// Command содержит имя выполненной команды.
	Command string `json:"command"`

	// Data содержит данные конкретной команды.
	Data any `json:"data,omitempty"`

	// Error заполняется только при status="error".
	Error *ErrorInfo `json:"error,omitempty"`

	Metadata *Metadata `json:"metadata,omitempty"`
}

// ErrorInfo содержит код и описание ошибки.
// ВАЖНО: Message НЕ ДОЛЖЕН содержать секреты!
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Metadata содержит метаданные выполнения команды.
type Metadata struct {
	DurationMs int64  `json:"duration_ms"`
	TraceID    string `json:"trace_id,omitempty"`
	APIVersion string `json:"api_version"`
}
