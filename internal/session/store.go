package session

import (
	"log"

	"lifestory-core/internal/config"
	"lifestory-core/internal/interview"
)

// Store выдает и сохраняет состояние интервью по идентификатору сессии.
//
// Блокировок нет: два конкурентных запроса к одной сессии дают гонку
// "последняя запись побеждает" — поздний Save молча перетирает ранний,
// ответ может потеряться. Это осознанное ограничение для
// однопользовательского сценария (одна вкладка на сессию).
type Store struct {
	persist Persistence
	bank    *config.Config
}

func NewStore(persist Persistence, bank *config.Config) *Store {
	return &Store{persist: persist, bank: bank}
}

// GetOrCreate возвращает состояние сессии. На отсутствующую или
// нечитаемую запись отвечает свежим начальным состоянием — поврежденная
// сессия заменяется, а не чинится. Второе значение — true, если
// состояние создано заново.
func (s *Store) GetOrCreate(sessionID string) (*interview.State, bool) {
	state, err := s.persist.Get(sessionID)
	if err != nil {
		log.Printf("Сессия %s не читается: %v — создаю новую", sessionID, err)
		return interview.NewState(s.bank), true
	}
	if state == nil {
		return interview.NewState(s.bank), true
	}
	return state, false
}

// Save сохраняет состояние сессии. Ошибка сохранения фатальна для
// запроса: продвижение машины без устойчивой записи доверять нельзя.
func (s *Store) Save(sessionID string, state *interview.State) error {
	return s.persist.Put(sessionID, state)
}
