package prompts

import (
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// RenderFollowUp подставляет значения накопленного контекста в шаблон
// уточняющего вопроса. Каждый плейсхолдер {key} заменяется на
// context[key], если значение есть; плейсхолдер без значения остается
// в тексте как есть. Функция чистая и никогда не возвращает ошибку.
func RenderFollowUp(template string, context map[string]string) string {
	if template == "" {
		return ""
	}

	return placeholderPattern.ReplaceAllStringFunc(template, func(placeholder string) string {
		key := placeholder[1 : len(placeholder)-1]
		if value, ok := context[key]; ok && value != "" {
			return value
		}
		return placeholder
	})
}

// ImagePrompt собирает текстовый запрос к генератору изображений
// для карточки данного типа
func ImagePrompt(cardType, title, description string) string {
	var builder strings.Builder

	switch cardType {
	case "place":
		builder.WriteString("A warm, nostalgic illustration of a place from someone's life story: ")
	case "person":
		builder.WriteString("A gentle portrait-style illustration of a loved one from a life story: ")
	case "event":
		builder.WriteString("An evocative illustration of a meaningful life event: ")
	default:
		builder.WriteString("A soft, dreamlike illustration of a personal memory: ")
	}

	builder.WriteString(title)
	builder.WriteString(". ")
	builder.WriteString(truncate(description, 300))
	builder.WriteString(" Soft colors, storybook style, no text.")

	return builder.String()
}

func truncate(text string, limit int) string {
	text = strings.TrimSpace(text)
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}
