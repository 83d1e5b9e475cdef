package shared

import (
	"fmt"

	"github.com/Kargones/v8run/internal/params"
	"github.com/Kargones/v8run/internal/pkg/apperrors"
)

// OperationData - результат операции с базой.
type OperationData struct {
	// Operation - имя операции, например LoadCfg.
	Operation string `json:"operation"`
	// Infobase - адрес базы без учётных данных (Target.String).
	Infobase string `json:"infobase"`
	// IBLogFile - служебный лог платформы, если вёлся.
	IBLogFile string `json:"ib_log_file,omitempty"`
	// Details - дополнительные сведения операции.
	Details map[string]string `json:"details,omitempty"`
}

// OperationFailed возвращает ошибку неуспешной операции.
func OperationFailed(operation, ibLogFile string) error {
	msg := fmt.Sprintf("операция %s завершилась неуспешно", operation)
	if ibLogFile != "" {
		msg += ", служебный лог платформы: " + ibLogFile
	}
	return apperrors.NewAppError(apperrors.ErrCommandOperation, msg, nil)
}

// InvalidValue оборачивает ошибку разбора значения параметра.
func InvalidValue(key string, err error) error {
	return apperrors.NewAppError(apperrors.ErrParamsInvalidValue, "некорректное значение параметра "+key, err)
}

// Require проверяет обязательные ключи файла параметров.
func Require(p *params.Params, keys ...string) error {
	if err := p.Require(keys...); err != nil {
		return apperrors.NewAppError(apperrors.ErrParamsKeyMissing, err.Error(), nil)
	}
	return nil
}

// ParseOptional разбирает необязательный ключ перечислимого типа; пустое значение даёт нулевое.
func ParseOptional[T ~string](p *params.Params, key string, parse func(string) (T, error)) (T, error) {
	v := p.Value(key)
	if v == "" {
		return "", nil
	}
	parsed, err := parse(v)
	if err != nil {
		return "", InvalidValue(key, err)
	}
	return parsed, nil
}

// Int разбирает целочисленный ключ.
func Int(p *params.Params, key string) (int, error) {
	n, err := p.Int(key)
	if err != nil {
		return 0, InvalidValue(key, err)
	}
	return n, nil
}
