// Package runner запускает внешний исполняемый файл платформы и возвращает код завершения.
package runner

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/Kargones/v8run/internal/pkg/logging"
)

const (
	maxConsoleOut = 2048
	maskedValue   = "*****"
)

// repoPasswordFlag - флаг пароля хранилища, значение которого скрывается в логах.
const repoPasswordFlag = "/ConfigurationRepositoryP"

var passwordInConnString = regexp.MustCompile(`(Pwd=')[^']*(')`)

// Runner запускает процессы в рабочем каталоге с дополнительными переменными окружения.
type Runner struct {
	// WorkDir - рабочий каталог процесса. Пусто = текущий.
	WorkDir string

	// Env - переменные KEY=VALUE, добавляемые к окружению текущего процесса.
	Env []string

	// ConsoleOut - объединённый stdout/stderr последнего запуска.
	ConsoleOut []byte

	logger logging.Logger
}

// New создаёт Runner с логгером. nil логгер заменяется на NopLogger.
func New(workDir string, logger logging.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Runner{WorkDir: workDir, logger: logger}
}

// Run запускает name с аргументами args и ждёт завершения.
// Ненулевой код завершения не считается ошибкой: он возвращается как есть с nil.
// Ошибка возвращается, только если процесс не удалось запустить (код -1).
func (r *Runner) Run(ctx context.Context, name string, args []string) (int, error) {
	if name == "" {
		return -1, errors.New("executable path is empty")
	}

	// #nosec G204 - аргументы передаются как argv, без shell
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.WorkDir
	if len(r.Env) > 0 {
		cmd.Env = appendEnviron(r.Env...)
	}

	var err error
	r.ConsoleOut, err = cmd.CombinedOutput()
	if len(r.ConsoleOut) > 0 {
		r.logger.Debug("Вывод консоли", "output", TrimOut(r.ConsoleOut))
	}

	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}

// MaskParams возвращает копию параметров со скрытыми паролями для логирования.
// Маскируются значения Pwd/DBPwd/SPwd в строках соединения и пароль хранилища.
func MaskParams(params []string) []string {
	masked := make([]string, len(params))
	for i, p := range params {
		if strings.HasPrefix(p, repoPasswordFlag+" ") {
			masked[i] = repoPasswordFlag + " " + maskedValue
			continue
		}
		masked[i] = passwordInConnString.ReplaceAllString(p, "${1}"+maskedValue+"${2}")
	}
	return masked
}

func appendEnviron(kv ...string) []string {
	env := os.Environ()
	for _, newVar := range kv {
		eqIndex := strings.Index(newVar, "=")
		if eqIndex == -1 {
			continue
		}
		key := newVar[:eqIndex]
		found := false
		for i, v := range env {
			if strings.HasPrefix(v, key+"=") {
				env[i] = newVar
				found = true
				break
			}
		}
		if !found {
			env = append(env, newVar)
		}
	}
	return env
}

// TrimOut обрезает длинный вывод, оставляя начало и конец.
func TrimOut(b []byte) string {
	if len(b) < maxConsoleOut {
		return string(b)
	}
	return string(b[:1020]) + "\n********\n" + string(b[len(b)-1020:])
}
