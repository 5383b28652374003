// Package fault - единый на процесс обработчик ошибок, которые вышли
// за границу обработки отправки (паника в горутине, в HTTP-обработчике, в gRPC-методе).
// Обработчик регистрируется один раз при старте и не снимается.
// Вместо стандартного поведения среды (аварийное завершение, дамп стека в stderr)
// он пишет одну структурированную строку в лог и передает ошибку в Tracker.
package fault

import (
	"fmt"
	"log"
	"runtime/debug"
	"sync"
)

// Tracker: точка подключения внешнего сервиса отслеживания ошибок.
// Интеграция с внешней телеметрией не входит в проект, поэтому есть только NopTracker.
type Tracker interface {
	Track(err error)
}

// NopTracker ничего не отправляет.
type NopTracker struct{}

func (NopTracker) Track(error) {}

// PanicError: паника, превращенная в ошибку. Value - исходное значение recover().
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap возвращает исходную ошибку, если паника была вызвана значением типа error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// handler - зарегистрированный обработчик процесса.
type handler struct {
	logger  *log.Logger
	tracker Tracker
}

var (
	installOnce sync.Once
	current     *handler
	mu          sync.RWMutex
)

// Install регистрирует обработчик процесса. Повторные вызовы игнорируются.
// logger == nil означает стандартный логгер, tracker == nil означает NopTracker.
func Install(logger *log.Logger, tracker Tracker) {
	installOnce.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		current = newHandler(logger, tracker)
	})
}

func newHandler(logger *log.Logger, tracker Tracker) *handler {
	if logger == nil {
		logger = log.Default()
	}
	if tracker == nil {
		tracker = NopTracker{}
	}
	return &handler{logger: logger, tracker: tracker}
}

// get возвращает зарегистрированный обработчик или обработчик по умолчанию,
// если Install еще не вызывался.
func get() *handler {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return newHandler(nil, nil)
	}
	return current
}

// Report записывает ошибку в лог и передает ее в Tracker.
func Report(err error) {
	if err == nil {
		return
	}
	h := get()
	h.logger.Printf("Global error caught: %v", err)
	h.tracker.Track(err)
}

// ReportPanic оформляет значение recover() как *PanicError и сообщает о нем.
// Возвращает получившуюся ошибку (nil, если v == nil).
func ReportPanic(v any) error {
	if v == nil {
		return nil
	}
	err := &PanicError{Value: v, Stack: debug.Stack()}
	Report(err)
	return err
}

// Go запускает fn в отдельной горутине. Паника внутри fn не роняет процесс,
// а попадает в обработчик процесса.
func Go(fn func()) {
	go func() {
		defer func() {
			ReportPanic(recover())
		}()
		fn()
	}()
}
