package command

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"sync"
)

var (
	// registry хранит зарегистрированные обработчики команд.
	registry = make(map[string]Handler)
	mu       sync.RWMutex
	// commandNamePattern - strict kebab-case: a-z, 0-9, одиночные дефисы, начинается с буквы.
	commandNamePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)
)

// ErrDuplicateHandler - команда с таким именем уже зарегистрирована.
var ErrDuplicateHandler = errors.New("command: duplicate handler registration")

// Register регистрирует обработчик команды в глобальном реестре.
// Вызывается из RegisterCmd() пакетов-обработчиков.
//
// Формат имени команды: kebab-case, например "load-cfg", "update-from-repo".
func Register(h Handler) error {
	if h == nil {
		return errors.New("command: nil handler")
	}
	name := h.Name()
	if name == "" {
		return errors.New("command: empty handler name")
	}
	if !commandNamePattern.MatchString(name) {
		return fmt.Errorf("command: invalid handler name format (must be kebab-case): %s", name)
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := registry[name]; exists {
		return fmt.Errorf("%w for %s", ErrDuplicateHandler, name)
	}
	registry[name] = h
	return nil
}

// Get возвращает обработчик команды по имени.
func Get(name string) (Handler, bool) {
	mu.RLock()
	defer mu.RUnlock()
	h, ok := registry[name]
	return h, ok
}

// All возвращает копию всех зарегистрированных обработчиков.
func All() map[string]Handler {
	mu.RLock()
	defer mu.RUnlock()
	result := make(map[string]Handler, len(registry))
	for k, v := range registry {
		result[k] = v
	}
	return result
}

// Names возвращает отсортированный список имён зарегистрированных команд.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// clearRegistry очищает реестр. Используется только в тестах.
func clearRegistry() {
	mu.Lock()
	defer mu.Unlock()
	registry = make(map[string]Handler)
}
