package cards

import (
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"lifestory-core/internal/extractor"
	"lifestory-core/internal/prompts"
)

// ImageSynthesizer генерирует изображение по текстовому описанию.
// Возвращенный URL попадает в карточку; ошибка или пустой результат
// заменяются заглушкой и создание карточки не прерывают.
type ImageSynthesizer interface {
	GenerateImage(prompt string) (string, error)
}

// PlaceholderImageURL подставляется, когда генерация изображения
// недоступна или упала
const PlaceholderImageURL = "https://placehold.co/1024x1024?text=Lifestory"

// Ключевые слова классификации. Правила пробуются по порядку типов:
// place, person, event; первый сработавший побеждает, иначе memory.
var (
	placeKeywords  = []string{"born", "grew up", "lived", "city", "town", "country"}
	personKeywords = []string{"mother", "father", "parent", "sister", "brother", "family member"}
	eventKeywords  = []string{"graduated", "wedding", "birthday", "ceremony"}

	plausibleYear = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
)

// Classify определяет тип карточки по тексту ответа.
// Родственное слово сильнее года: ответ с "mother" и "2010" — person.
func Classify(answer string) Type {
	lower := strings.ToLower(answer)

	for _, keyword := range placeKeywords {
		if strings.Contains(lower, keyword) {
			return TypePlace
		}
	}

	for _, keyword := range personKeywords {
		if strings.Contains(lower, keyword) {
			return TypePerson
		}
	}

	for _, keyword := range eventKeywords {
		if strings.Contains(lower, keyword) {
			return TypeEvent
		}
	}
	if plausibleYear.MatchString(answer) {
		return TypeEvent
	}

	return TypeMemory
}

// Synthesizer собирает заготовку карточки из ответа
type Synthesizer struct {
	extractor extractor.Extractor
	images    ImageSynthesizer // nil — сразу заглушка
}

func NewSynthesizer(ex extractor.Extractor, images ImageSynthesizer) *Synthesizer {
	return &Synthesizer{extractor: ex, images: images}
}

// Build классифицирует ответ, извлекает типоспецифичные данные и
// возвращает заготовку карточки, принадлежащую сессии sessionID
func (s *Synthesizer) Build(sessionID, answer string) *Draft {
	cardType := Classify(answer)
	extracted := s.extractor.Extract(answer)
	now := time.Now().UTC()

	draft := &Draft{
		ID:          uuid.New().String(),
		Type:        cardType,
		Description: answer,
		Date:        now,
		SessionID:   sessionID,
		CreatedAt:   now,
	}

	if extracted.Date != nil {
		draft.Date = *extracted.Date
	}

	switch cardType {
	case TypePlace:
		draft.Location = extracted.Location
		draft.Title = extracted.Location
		if draft.Title == "" {
			draft.Title = "A place from my story"
		}
	case TypePerson:
		draft.People = extracted.People
		if len(extracted.People) > 0 {
			draft.Title = "My " + extracted.People[0]
		} else {
			draft.Title = "Someone important to me"
		}
	case TypeEvent:
		if extracted.Date != nil {
			draft.Title = fmt.Sprintf("An event in %d", extracted.Date.Year())
		} else {
			draft.Title = "A life event"
		}
	default:
		draft.Title = "A memory"
	}

	draft.ImageURL = s.generateImage(draft)

	return draft
}

func (s *Synthesizer) generateImage(draft *Draft) string {
	if s.images == nil {
		return PlaceholderImageURL
	}

	prompt := prompts.ImagePrompt(string(draft.Type), draft.Title, draft.Description)
	url, err := s.images.GenerateImage(prompt)
	if err != nil || url == "" {
		log.Printf("Генерация изображения для карточки %s не удалась: %v — ставлю заглушку", draft.ID, err)
		return PlaceholderImageURL
	}
	return url
}
