package extractor

import (
	"regexp"
	"strings"
	"time"
)

// Extracted — результат эвристического разбора одного ответа
type Extracted struct {
	Location string
	People   []string
	Date     *time.Time
}

// Extractor — узкий интерфейс извлечения сущностей из текста.
// Сегодня за ним стоят ключевые слова и регулярные выражения; интерфейс
// позволяет подменить их настоящим NLP-бэкендом, не трогая машину
// интервью и синтезатор карточек.
type Extractor interface {
	Extract(text string) Extracted
}

// Service реализует Extractor на эвристиках. Все функции чистые:
// одинаковый вход всегда дает одинаковый результат.
type Service struct{}

func New() *Service {
	return &Service{}
}

func (s *Service) Extract(text string) Extracted {
	return Extracted{
		Location: ExtractLocation(text),
		People:   ExtractPeople(text),
		Date:     ExtractDate(text),
	}
}

// Шаблоны мест в порядке приоритета: первый сработавший побеждает
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bin\s+([^.!?\n]+)`),
	regexp.MustCompile(`(?i)\bfrom\s+([^.!?\n]+)`),
	regexp.MustCompile(`(?i)\bat\s+([^.!?\n]+)`),
	regexp.MustCompile(`(?i)\bto\s+([^.!?\n]+)`),
	regexp.MustCompile(`(?i)\bborn in\s+([^.!?\n]+)`),
}

// ExtractLocation вытаскивает место из текста ответа. Если ни один
// шаблон не сработал, возвращает текст до первой точки.
func ExtractLocation(text string) string {
	for _, pattern := range locationPatterns {
		if match := pattern.FindStringSubmatch(text); match != nil {
			return strings.TrimSpace(match[1])
		}
	}

	if idx := strings.Index(text, "."); idx >= 0 {
		return strings.TrimSpace(text[:idx])
	}
	return strings.TrimSpace(text)
}

// Таблица родственных отношений; порядок таблицы задает порядок результата
var relationKeywords = []string{
	"mother",
	"father",
	"sister",
	"brother",
	"grandmother",
	"grandfather",
	"aunt",
	"uncle",
	"cousin",
	"spouse",
	"child",
}

// ExtractPeople возвращает упомянутые в тексте родственные отношения
// в порядке таблицы ключевых слов, без повторов
func ExtractPeople(text string) []string {
	lower := strings.ToLower(text)

	var people []string
	for _, keyword := range relationKeywords {
		if strings.Contains(lower, keyword) {
			people = append(people, keyword)
		}
	}
	return people
}

var (
	yearPattern      = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
	monthYearPattern = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{4})\b`)
	numericPattern   = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{4})\b`)
)

var monthsByName = map[string]time.Month{
	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"may":       time.May,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
}

// ExtractDate ищет дату в тексте ответа. Шаблоны пробуются по порядку:
// голый четырехзначный год (1900–2099) дает 1 января этого года,
// "Month YYYY" — первое число месяца, затем числовые D/M/YYYY и D-M-YYYY.
// Голым считается год, не входящий в числовую дату и не стоящий сразу
// после названия месяца — иначе поздние шаблоны были бы недостижимы.
// Если ничего не нашлось, возвращается nil и вызывающий подставляет
// текущую дату.
func ExtractDate(text string) *time.Time {
	if year, ok := findBareYear(text); ok {
		date := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return &date
	}

	if match := monthYearPattern.FindStringSubmatch(text); match != nil {
		month := monthsByName[strings.ToLower(match[1])]
		year := atoi(match[2])
		if year >= 1900 && year <= 2099 {
			date := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
			return &date
		}
	}

	if match := numericPattern.FindStringSubmatch(text); match != nil {
		day := atoi(match[1])
		month := atoi(match[2])
		year := atoi(match[3])
		if day >= 1 && day <= 31 && month >= 1 && month <= 12 && year >= 1900 && year <= 2099 {
			date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			return &date
		}
	}

	return nil
}

func findBareYear(text string) (int, bool) {
	for _, idx := range yearPattern.FindAllStringSubmatchIndex(text, -1) {
		start, end := idx[2], idx[3]

		if start > 0 && (text[start-1] == '/' || text[start-1] == '-') {
			continue
		}
		if end < len(text) && (text[end] == '/' || text[end] == '-') {
			continue
		}
		if precededByMonth(text, start) {
			continue
		}

		return atoi(text[start:end]), true
	}
	return 0, false
}

func precededByMonth(text string, start int) bool {
	prefix := strings.ToLower(strings.TrimRight(text[:start], " "))
	for name := range monthsByName {
		if strings.HasSuffix(prefix, name) {
			return true
		}
	}
	return false
}

// atoi без ошибки: шаблоны уже гарантируют, что на входе только цифры
func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
