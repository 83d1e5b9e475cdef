// Package baselist редактирует файл списка информационных баз 1С (ibases.v8i).
package baselist

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/Kargones/v8run/internal/constants"
	"github.com/Kargones/v8run/internal/pkg/logging"
	"github.com/Kargones/v8run/internal/pkg/scope"

	"github.com/gofrs/flock"
	"golang.org/x/text/encoding/unicode"
	"gopkg.in/ini.v1"
)

// Ключи параметров базы в списке.
const (
	KeyAdditionalParameters = "AdditionalParameters"
	KeyVersion              = "Version"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// loadOptions: строки Connect содержат ';' и '\', которые не должны
// трактоваться как комментарий или перенос строки.
var loadOptions = ini.LoadOptions{
	IgnoreInlineComment:     true,
	IgnoreContinuation:      true,
	PreserveSurroundedQuote: true,
	KeyValueDelimiters:      "=",
}

func init() {
	// Платформа пишет key=value без пробелов.
	ini.PrettyFormat = false
	ini.PrettyEqual = false
}

// SetBaseParameters устанавливает дополнительные параметры запуска и версию платформы
// у базы baseName в файле списка баз fileName. Пустые значения не меняются.
// Секция baseName должна существовать. Ошибки пишутся в лог, результат - признак успеха.
func SetBaseParameters(ctx context.Context, sc scope.Scope, fileName, baseName, additionalParameters, version string) bool {
	return scope.Measure(ctx, sc, "SetBaseParameters", func(context.Context) bool {
		return setBaseParameters(sc.Logger(), fileName, baseName, additionalParameters, version)
	})
}

func setBaseParameters(log logging.Logger, fileName, baseName, additionalParameters, version string) bool {
	lock := flock.New(fileName + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		log.Error(fmt.Sprintf("Не удалось заблокировать файл %s. Ошибка: %v", fileName, err))
		return false
	}
	if !locked {
		log.Error(fmt.Sprintf("Файл %s заблокирован другим процессом", fileName))
		return false
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			log.Warn("Не удалось снять блокировку файла", "file", fileName, "error", unlockErr)
		}
	}()

	file, mode, err := read(fileName)
	if err != nil {
		log.Error(fmt.Sprintf("Не удалось прочитать файл %s. Ошибка: %v", fileName, err))
		return false
	}

	if err := write(file, fileName, mode, baseName, additionalParameters, version); err != nil {
		log.Error(fmt.Sprintf("Не удалось записать файл %s. Ошибка: %v", fileName, err))
		return false
	}
	return true
}

// read читает файл списка баз, отбрасывая BOM.
func read(fileName string) (*ini.File, fs.FileMode, error) {
	info, err := os.Stat(fileName)
	if err != nil {
		return nil, 0, err
	}
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, 0, err
	}
	data, err = unicode.UTF8BOM.NewDecoder().Bytes(data)
	if err != nil {
		return nil, 0, err
	}
	file, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, 0, err
	}
	return file, info.Mode().Perm(), nil
}

func write(file *ini.File, fileName string, mode fs.FileMode, baseName, additionalParameters, version string) error {
	section, err := file.GetSection(baseName)
	if err != nil {
		return fmt.Errorf("база %q отсутствует в списке: %w", baseName, err)
	}

	if additionalParameters != "" {
		section.Key(KeyAdditionalParameters).SetValue(additionalParameters)
	}
	if version != "" {
		section.Key(KeyVersion).SetValue(version)
	}

	var buf bytes.Buffer
	buf.Write(utf8BOM)
	if _, err := file.WriteTo(&buf); err != nil {
		return err
	}

	if mode == 0 {
		mode = constants.FilePermReadWrite
	}
	return os.WriteFile(fileName, buf.Bytes(), mode)
}

// Read возвращает параметры базы baseName из файла списка баз.
func Read(fileName, baseName string) (map[string]string, error) {
	file, _, err := read(fileName)
	if err != nil {
		return nil, err
	}
	section, err := file.GetSection(baseName)
	if err != nil {
		return nil, err
	}
	return section.KeysHash(), nil
}
