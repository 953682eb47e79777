package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"lifestory-core/internal/interview"
)

// Persistence описывает хранилище сериализованных состояний сессий.
// Get возвращает (nil, nil), если записи для сессии нет.
type Persistence interface {
	Get(sessionID string) (*interview.State, error)
	Put(sessionID string, state *interview.State) error
}

// FilePersistence хранит каждую сессию отдельным JSON файлом
type FilePersistence struct {
	dir string
}

func NewFilePersistence(dir string) *FilePersistence {
	return &FilePersistence{dir: dir}
}

func (p *FilePersistence) path(sessionID string) string {
	filename := fmt.Sprintf("session_%s.json", sessionID)
	return filepath.Join(p.dir, filename)
}

// Get загружает состояние сессии из JSON файла
func (p *FilePersistence) Get(sessionID string) (*interview.State, error) {
	data, err := os.ReadFile(p.path(sessionID))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла сессии %s: %w", sessionID, err)
	}

	var state interview.State
	err = json.Unmarshal(data, &state)
	if err != nil {
		return nil, fmt.Errorf("ошибка десериализации сессии %s: %w", sessionID, err)
	}

	return &state, nil
}

// Put сохраняет состояние сессии в JSON файл
func (p *FilePersistence) Put(sessionID string, state *interview.State) error {
	// Создаем директорию если её нет
	err := os.MkdirAll(p.dir, 0755)
	if err != nil {
		return fmt.Errorf("ошибка создания директории %s: %w", p.dir, err)
	}

	jsonData, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("ошибка сериализации сессии %s: %w", sessionID, err)
	}

	err = os.WriteFile(p.path(sessionID), jsonData, 0644)
	if err != nil {
		return fmt.Errorf("ошибка записи файла сессии %s: %w", sessionID, err)
	}

	return nil
}
