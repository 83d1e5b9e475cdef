// Package params читает ini-файл параметров скрипта.
//
// Ключи секции [common] (и ключи вне секций) доступны под своими именами,
// ключи прочих секций - как "<секция>_<ключ>". Файл обязан содержать
// ini_version, совпадающий с ожидаемой версией.
package params

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
	"gopkg.in/ini.v1"
)

// Служебные ключи.
const (
	KeyIniVersion = "ini_version"
	KeyLogDir     = "log_dir"
)

const (
	commonSection   = "common"
	timestampLayout = "20060102150405"
	defaultLogDir   = "."
)

// ErrCouldNotReadParametersFile - файл параметров не найден или не читается.
var ErrCouldNotReadParametersFile = errors.New("не удалось прочитать файл параметров")

// ErrWrongParametersFileVersion - ini_version файла не совпадает с ожидаемой.
var ErrWrongParametersFileVersion = errors.New("неверная версия файла параметров")

// Params - параметры, прочитанные из ini-файла.
type Params struct {
	values map[string]string

	// LogFileName - файл лога скрипта: <log_dir>/<скрипт>.<ГГГГММДДччммсс>.log.
	LogFileName string
	// IBLogFileNamePrefix - префикс служебных логов платформы: <log_dir>/<скрипт>.<ГГГГММДДччммсс>.IB.
	IBLogFileNamePrefix string
}

// Option настраивает Load.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock подменяет источник текущего времени для имён логов.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Load читает iniFile в кодировке Windows-1251 и проверяет ini_version.
// scriptFullFileName задаёт имя скрипта в именах файлов лога (без каталога и расширения).
func Load(iniFile, scriptFullFileName, requiredVersion string, opts ...Option) (*Params, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	raw, err := os.ReadFile(iniFile)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrCouldNotReadParametersFile, iniFile, err)
	}
	data, err := charmap.Windows1251.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrCouldNotReadParametersFile, iniFile, err)
	}

	p, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrCouldNotReadParametersFile, iniFile, err)
	}

	if actual := p.values[KeyIniVersion]; actual != requiredVersion {
		return nil, fmt.Errorf("%w. Требуется: %s, фактическая: %s, файл: %s",
			ErrWrongParametersFileVersion, requiredVersion, actual, iniFile)
	}

	p.setLogFileNames(scriptFullFileName, o.now())
	return p, nil
}

func parse(data []byte) (*Params, error) {
	// Пути Windows оканчиваются на '\', кавычки в значениях сохраняются как есть.
	file, err := ini.LoadSources(ini.LoadOptions{
		Insensitive:             true,
		IgnoreInlineComment:     true,
		IgnoreContinuation:      true,
		PreserveSurroundedQuote: true,
	}, data)
	if err != nil {
		return nil, err
	}

	p := &Params{values: make(map[string]string)}
	for _, section := range file.Sections() {
		name := section.Name()
		prefix := ""
		if name != commonSection && !strings.EqualFold(name, ini.DefaultSection) {
			prefix = name + "_"
		}
		for _, key := range section.Keys() {
			p.values[prefix+key.Name()] = key.Value()
		}
	}
	return p, nil
}

func (p *Params) setLogFileNames(scriptFullFileName string, now time.Time) {
	logDir := p.values[KeyLogDir]
	if logDir == "" {
		logDir = defaultLogDir
	}
	script := strings.TrimSuffix(filepath.Base(scriptFullFileName), filepath.Ext(scriptFullFileName))
	base := filepath.Join(logDir, script+"."+now.Format(timestampLayout))

	p.LogFileName = base + ".log"
	p.IBLogFileNamePrefix = base + ".IB"
}

// Get возвращает значение ключа и признак его наличия.
func (p *Params) Get(key string) (string, bool) {
	v, ok := p.values[strings.ToLower(key)]
	return v, ok
}

// Value возвращает значение ключа или пустую строку.
func (p *Params) Value(key string) string {
	v, _ := p.Get(key)
	return v
}

// ValueOr возвращает значение ключа или def, если ключ отсутствует или пуст.
func (p *Params) ValueOr(key, def string) string {
	if v := p.Value(key); v != "" {
		return v
	}
	return def
}

// Require проверяет наличие непустых значений ключей.
// Ошибка перечисляет все отсутствующие ключи.
func (p *Params) Require(keys ...string) error {
	var missing []string
	for _, k := range keys {
		if p.Value(k) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("в файле параметров не заданы: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Bool разбирает логический ключ: 1, true, yes, y, да - истина.
// Отсутствующий ключ - ложь.
func (p *Params) Bool(key string) bool {
	return p.BoolOr(key, false)
}

// BoolOr разбирает логический ключ, возвращая def для отсутствующего или пустого ключа.
func (p *Params) BoolOr(key string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(p.Value(key)))
	switch v {
	case "":
		return def
	case "1", "true", "yes", "y", "да":
		return true
	default:
		return false
	}
}

// Int разбирает целочисленный ключ. Отсутствующий ключ - 0.
func (p *Params) Int(key string) (int, error) {
	v := strings.TrimSpace(p.Value(key))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("параметр %s: ожидается целое число, получено %q", key, v)
	}
	return n, nil
}

// Fields разбивает значение ключа по пробелам.
func (p *Params) Fields(key string) []string {
	return strings.Fields(p.Value(key))
}

// Keys возвращает отсортированный список ключей.
func (p *Params) Keys() []string {
	keys := make([]string, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
