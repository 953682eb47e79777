package interviewer

import (
	"errors"
	"fmt"
)

// Ошибки валидации: отклоняются до любого изменения состояния,
// сессия в хранилище остается нетронутой
var (
	ErrEmptyAnswer      = errors.New("ответ не может быть пустым")
	ErrNoActiveQuestion = errors.New("нет активного вопроса: интервью завершено")
)

// SaveError — фатальная ошибка сохранения сессии. Единственная ошибка
// внешнего мира, которая доходит до вызывающего: без устойчивой записи
// продвижению машины доверять нельзя.
type SaveError struct {
	Err error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("ошибка сохранения сессии: %v", e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}
