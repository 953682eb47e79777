package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderFollowUp(t *testing.T) {
	context := map[string]string{
		"birthplace": "Portland, Oregon",
		"empty":      "",
	}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{
			name:     "подстановка значения",
			template: "What do you remember most about {birthplace}?",
			want:     "What do you remember most about Portland, Oregon?",
		},
		{
			name:     "неизвестный ключ остается как есть",
			template: "Tell me about {hometown} and {birthplace}.",
			want:     "Tell me about {hometown} and Portland, Oregon.",
		},
		{
			name:     "пустое значение не подставляется",
			template: "And {empty}?",
			want:     "And {empty}?",
		},
		{
			name:     "шаблон без плейсхолдеров",
			template: "Anything else?",
			want:     "Anything else?",
		},
		{
			name:     "пустой шаблон",
			template: "",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderFollowUp(tt.template, context))
		})
	}
}

func TestRenderFollowUpNilContext(t *testing.T) {
	assert.Equal(t, "Hello {name}", RenderFollowUp("Hello {name}", nil))
}

func TestImagePromptPerType(t *testing.T) {
	for _, cardType := range []string{"place", "person", "event", "memory"} {
		prompt := ImagePrompt(cardType, "Portland, Oregon", "I was born there.")
		assert.Contains(t, prompt, "Portland, Oregon")
		assert.Contains(t, prompt, "I was born there.")
	}

	// Разные типы — разные вступления
	assert.NotEqual(t,
		ImagePrompt("place", "t", "d"),
		ImagePrompt("person", "t", "d"))
}

func TestImagePromptTruncatesLongDescription(t *testing.T) {
	long := ""
	for i := 0; i < 50; i++ {
		long += "very long answer "
	}

	prompt := ImagePrompt("memory", "A memory", long)
	assert.Less(t, len(prompt), 500)
}
