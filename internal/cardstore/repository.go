package cardstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"lifestory-core/internal/cards"
)

// Repository хранит синтезированные карточки в SQLite
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Save сохраняет заготовку карточки
func (r *Repository) Save(ctx context.Context, draft *cards.Draft) error {
	var people sql.NullString
	if len(draft.People) > 0 {
		encoded, err := json.Marshal(draft.People)
		if err != nil {
			return fmt.Errorf("ошибка сериализации списка людей: %w", err)
		}
		people = sql.NullString{String: string(encoded), Valid: true}
	}

	var location sql.NullString
	if draft.Location != "" {
		location = sql.NullString{String: draft.Location, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cards (id, session_id, type, title, description, date, image_url, location, people, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		draft.ID, draft.SessionID, string(draft.Type), draft.Title, draft.Description,
		draft.Date.UTC().Format(time.RFC3339), draft.ImageURL, location, people,
		draft.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("ошибка сохранения карточки %s: %w", draft.ID, err)
	}

	return nil
}

// LoadForSession возвращает карточки сессии в порядке создания
func (r *Repository) LoadForSession(ctx context.Context, sessionID string) ([]*cards.Draft, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, session_id, type, title, description, date, image_url, location, people, created_at
		FROM cards WHERE session_id = ? ORDER BY created_at`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки карточек сессии %s: %w", sessionID, err)
	}
	defer rows.Close()

	return scanDrafts(rows)
}

// Timeline возвращает карточки сессии, отсортированные по дате по убыванию
func (r *Repository) Timeline(ctx context.Context, sessionID string) ([]*cards.Draft, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, session_id, type, title, description, date, image_url, location, people, created_at
		FROM cards WHERE session_id = ? ORDER BY date DESC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки таймлайна сессии %s: %w", sessionID, err)
	}
	defer rows.Close()

	return scanDrafts(rows)
}

func scanDrafts(rows *sql.Rows) ([]*cards.Draft, error) {
	var drafts []*cards.Draft

	for rows.Next() {
		var (
			draft     cards.Draft
			cardType  string
			date      string
			createdAt string
			imageURL  sql.NullString
			location  sql.NullString
			people    sql.NullString
		)

		err := rows.Scan(&draft.ID, &draft.SessionID, &cardType, &draft.Title, &draft.Description,
			&date, &imageURL, &location, &people, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения строки карточки: %w", err)
		}

		draft.Type = cards.Type(cardType)
		draft.ImageURL = imageURL.String
		draft.Location = location.String

		if draft.Date, err = time.Parse(time.RFC3339, date); err != nil {
			return nil, fmt.Errorf("ошибка разбора даты карточки %s: %w", draft.ID, err)
		}
		if draft.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("ошибка разбора created_at карточки %s: %w", draft.ID, err)
		}

		if people.Valid {
			if err := json.Unmarshal([]byte(people.String), &draft.People); err != nil {
				return nil, fmt.Errorf("ошибка разбора списка людей карточки %s: %w", draft.ID, err)
			}
		}

		drafts = append(drafts, &draft)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка обхода карточек: %w", err)
	}

	return drafts, nil
}
