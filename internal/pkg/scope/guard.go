package scope

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/Kargones/v8run/internal/pkg/logging"
)

// ErrPanicRecovered оборачивает перехваченную панику.
var ErrPanicRecovered = errors.New("перехвачена паника")

// Guard выполняет fn как границу ошибок верхнего уровня.
//
// Если к логгеру подключён вывод, паника перехватывается, пишется в лог со стеком
// и возвращается как ошибка ErrPanicRecovered; ошибка fn пишется в лог и возвращается.
// Без вывода паника пробрасывается дальше, ошибка fn возвращается без логирования,
// так что сбой не теряется молча.
func Guard(log logging.Logger, fn func() error) (err error) {
	sink := logging.HasSink(log)

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if !sink {
			panic(r)
		}
		log.Error(fmt.Sprintf("%v\n%s", r, debug.Stack()))
		err = fmt.Errorf("%w: %v", ErrPanicRecovered, r)
	}()

	err = fn()
	if err != nil && sink {
		log.Error(err.Error())
	}
	return err
}
