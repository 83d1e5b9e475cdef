package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// TextData реализуют данные команд с собственным компактным текстовым выводом.
// Такие данные при успешном результате выводятся без заголовка и metadata.
type TextData interface {
	WriteText(w io.Writer) error
}

// TextWriter форматирует Result в человекочитаемый текст.
type TextWriter struct{}

// NewTextWriter создаёт новый TextWriter.
func NewTextWriter() *TextWriter {
	return &TextWriter{}
}

// Write форматирует result в текст и записывает в w.
func (t *TextWriter) Write(w io.Writer, result *Result) error {
	if result == nil {
		return nil
	}

	if td, ok := result.Data.(TextData); ok && result.Error == nil {
		return td.WriteText(w)
	}

	if _, err := fmt.Fprintf(w, "%s: %s\n", result.Command, result.Status); err != nil {
		return err
	}

	if result.Error != nil {
		if _, err := fmt.Fprintf(w, "Error [%s]: %s\n", result.Error.Code, result.Error.Message); err != nil {
			return err
		}
	}

	if result.Data != nil {
		dataJSON, err := json.MarshalIndent(result.Data, "", "  ")
		if err != nil {
			return fmt.Errorf("не удалось сериализовать Data: %w", err)
		}
		if _, err := fmt.Fprintf(w, "Data: %s\n", dataJSON); err != nil {
			return err
		}
	}

	if result.Metadata != nil && result.Metadata.DurationMs > 0 {
		if _, err := fmt.Fprintf(w, "Время выполнения: %s\n", formatDuration(result.Metadata.DurationMs)); err != nil {
			return err
		}
	}

	return nil
}

// formatDuration форматирует длительность: мс, секунды с десятыми или минуты с секундами.
func formatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dмс", ms)
	}
	sec := ms / 1000
	if sec < 60 {
		return fmt.Sprintf("%.1fс", float64(ms)/1000)
	}
	return fmt.Sprintf("%dм %dс", sec/60, sec%60)
}
