package infobase

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/Kargones/v8run/internal/pkg/scope"
	"github.com/Kargones/v8run/internal/util/runner"

	"github.com/blang/semver/v4"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// ProcessRunner запускает процесс и возвращает его код завершения.
// Ошибка означает, что процесс не удалось запустить.
type ProcessRunner interface {
	Run(ctx context.Context, name string, args []string) (int, error)
}

// utf8OutSince - версия платформы, с которой файл /Out пишется в UTF-8 с BOM.
// До неё файл формировался в системной кодировке (cp1251).
var utf8OutSince = semver.MustParse("8.3.18")

const logErrorPrefix = "Для получения текста ошибки"

// Executor запускает платформу с собранными параметрами.
type Executor struct {
	runner ProcessRunner
	scope  scope.Scope
}

// NewExecutor создаёт Executor. При nil runner используется runner.Runner без рабочего каталога.
func NewExecutor(r ProcessRunner, s scope.Scope) *Executor {
	if r == nil {
		r = runner.New("", s.Logger())
	}
	return &Executor{runner: r, scope: s}
}

// Scope возвращает получателей событий, с которыми создан Executor.
func (e *Executor) Scope() scope.Scope {
	return e.scope
}

// Execute запускает platform.ExeName с параметрами params.
// Возвращает true только при коде завершения 0. При ненулевом коде в лог
// ошибок попадает код и содержимое служебного лога logFile (если он задан).
func (e *Executor) Execute(ctx context.Context, platform PlatformParams, logFile string, params []string) bool {
	log := e.scope.Logger()

	log.Debug("Параметры запуска: " + strings.Join(append([]string{platform.ExeName}, runner.MaskParams(params)...), " "))

	code, err := e.runner.Run(ctx, platform.ExeName, params)
	if err != nil {
		log.Error(fmt.Sprintf("Не удалось запустить %s: %v", platform.ExeName, err))
		return false
	}

	if e.scope.Metrics != nil && len(params) > 0 {
		e.scope.Metrics.RecordPlatformExit(params[0], code)
	}

	if code == 0 {
		return true
	}

	enc, err := logEncoding(platform.Version)
	if err != nil {
		log.Warn(fmt.Sprintf("Не удалось разобрать версию платформы %q, лог читается в UTF-8: %v", platform.Version, err))
	}
	content, errText := readIBLog(logFile, enc)
	log.Error(fmt.Sprintf("Код результата: %d: %s %s", code, content, errText), "exit_code", code)
	return false
}

// readIBLog читает служебный лог платформы. Вторым значением возвращается
// описание причины, по которой лог прочитать не удалось.
func readIBLog(fileName string, enc encoding.Encoding) (content, errText string) {
	if fileName == "" {
		return "", ""
	}

	data, err := os.ReadFile(fileName)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Sprintf("%s не найден файл лога 1С: %s", logErrorPrefix, fileName)
	case errors.Is(err, fs.ErrPermission):
		return "", fmt.Sprintf("%s не хватило прав для открытия файла лога 1С: %s", logErrorPrefix, fileName)
	case err != nil:
		return "", fmt.Sprintf("%s не удалось прочитать файла лога 1С: %s. Ошибка: %v", logErrorPrefix, fileName, err)
	}

	// Некорректные байты UTF-8 заменяются на U+FFFD, ошибки декодирования не возникает.
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Sprintf("%s не удалось прочитать файла лога 1С: %s. Ошибка: %v", logErrorPrefix, fileName, err)
	}
	return strings.TrimSpace(string(decoded)), ""
}

// logEncoding выбирает кодировку файла /Out по версии платформы.
// Пустая или неразборчивая версия считается современной; для неразборчивой
// дополнительно возвращается ошибка разбора.
func logEncoding(platformVersion string) (encoding.Encoding, error) {
	if platformVersion == "" {
		return unicode.UTF8BOM, nil
	}
	v, err := parsePlatformVersion(platformVersion)
	if err != nil {
		return unicode.UTF8BOM, err
	}
	if v.GTE(utf8OutSince) {
		return unicode.UTF8BOM, nil
	}
	return charmap.Windows1251, nil
}

// parsePlatformVersion разбирает первые три компонента версии вида 8.3.10.2753.
func parsePlatformVersion(s string) (semver.Version, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ".", 4)
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return semver.ParseTolerant(strings.Join(parts, "."))
}
