package cards

import "time"

// Type — дискриминатор типа карточки
type Type string

const (
	TypePlace  Type = "place"
	TypePerson Type = "person"
	TypeEvent  Type = "event"
	TypeMemory Type = "memory"
)

// Draft — типизированная заготовка карточки, синтезированная из одного
// ответа интервью. Одна структура с дискриминатором Type вместо иерархии
// классов: типоспецифичные поля заполняются только для своего типа.
type Draft struct {
	ID          string    `json:"id"`
	Type        Type      `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	ImageURL    string    `json:"image_url"`
	SessionID   string    `json:"session_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Типоспецифичные поля
	Location string   `json:"location,omitempty"` // place
	People   []string `json:"people,omitempty"`   // person
}
