package interview

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifestory-core/internal/config"
)

// Тестовый банк отличается от боевого: машина не должна зависеть
// от конкретного набора вопросов
func testBank() *config.Config {
	return &config.Config{
		Stages: []config.Stage{
			{
				Name:  "intro",
				Title: "Intro",
				Questions: []config.Question{
					{Text: "Ready?"},
				},
			},
			{
				Name:  "roots",
				Title: "Roots",
				Questions: []config.Question{
					{Text: "Where are you from?", ContextKey: "hometown"},
					{Text: "Who raised you?"},
				},
			},
			{
				Name:  "school",
				Title: "School",
				Questions: []config.Question{
					{Text: "What did you study?"},
					{Text: "Who was your favorite teacher?"},
					{Text: "What did you do after classes?"},
				},
			},
		},
	}
}

func TestAdvanceVisitsEveryQuestionOnceInOrder(t *testing.T) {
	bank := testBank()
	machine := NewMachine(bank, NewState(bank))

	var visited [][2]any
	for {
		question := machine.CurrentQuestion()
		require.NotNil(t, question)
		visited = append(visited, [2]any{machine.State().CurrentStage, machine.State().CurrentQuestionIndex})
		if machine.Advance() {
			break
		}
	}

	expected := [][2]any{
		{"intro", 0},
		{"roots", 0}, {"roots", 1},
		{"school", 0}, {"school", 1}, {"school", 2},
	}
	assert.Equal(t, expected, visited)
	assert.True(t, machine.State().Completed)
	assert.Nil(t, machine.CurrentQuestion())
}

func TestProgressMonotonicAndCompletesAt100(t *testing.T) {
	bank := testBank()
	machine := NewMachine(bank, NewState(bank))

	previous := -1.0
	for !machine.State().Completed {
		progress := machine.Progress()
		assert.GreaterOrEqual(t, progress, previous)
		assert.Less(t, progress, 100.0, "100 только на завершенном интервью")
		previous = progress
		machine.Advance()
	}

	assert.Equal(t, 100.0, machine.Progress())
}

func TestProgressFormula(t *testing.T) {
	bank := testBank()
	machine := NewMachine(bank, NewState(bank))

	// 6 вопросов всего; intro пройден, roots на втором вопросе
	machine.Advance()
	machine.Advance()
	require.Equal(t, "roots", machine.State().CurrentStage)
	require.Equal(t, 1, machine.State().CurrentQuestionIndex)

	assert.InDelta(t, 2.0/6.0*100.0, machine.Progress(), 0.001)
}

func TestAdvanceOnCompletedIsNoOp(t *testing.T) {
	bank := testBank()
	machine := NewMachine(bank, NewState(bank))

	for !machine.Advance() {
	}

	state := *machine.State()
	assert.True(t, machine.Advance())
	assert.Equal(t, state, *machine.State())
}

func TestAddAnswerRecordsActiveStage(t *testing.T) {
	bank := testBank()
	machine := NewMachine(bank, NewState(bank))

	machine.AddAnswer("yes")
	machine.Advance()
	machine.AddAnswer("Lisbon")

	answers := machine.State().Answers
	require.Len(t, answers, 2)
	assert.Equal(t, "Ready?", answers[0].Question)
	assert.Equal(t, "intro", answers[0].Stage)
	assert.Equal(t, "Where are you from?", answers[1].Question)
	assert.Equal(t, "roots", answers[1].Stage)
}

func TestUnknownStageResetsToInitialState(t *testing.T) {
	bank := testBank()
	state := NewState(bank)
	state.CurrentStage = "no-such-stage"
	state.CurrentQuestionIndex = 7
	state.Answers = append(state.Answers, AnswerRecord{Question: "q", Answer: "a", Stage: "no-such-stage"})

	machine := NewMachine(bank, state)

	assert.Equal(t, "intro", state.CurrentStage)
	assert.Equal(t, 0, state.CurrentQuestionIndex)
	assert.Empty(t, state.Answers)
	assert.False(t, state.Completed)
	require.NotNil(t, machine.CurrentQuestion())
	assert.Equal(t, "Ready?", machine.CurrentQuestion().Text)
}

func TestOutOfRangeIndexResets(t *testing.T) {
	bank := testBank()
	state := NewState(bank)
	state.CurrentStage = "roots"
	state.CurrentQuestionIndex = 99

	NewMachine(bank, state)

	assert.Equal(t, "intro", state.CurrentStage)
	assert.Equal(t, 0, state.CurrentQuestionIndex)
}

func TestCompletedStateIsNotReset(t *testing.T) {
	bank := testBank()
	state := NewState(bank)
	state.Completed = true
	state.CurrentStage = "school"
	state.CurrentQuestionIndex = 2
	state.Answers = append(state.Answers, AnswerRecord{Question: "q", Answer: "a", Stage: "school"})

	machine := NewMachine(bank, state)

	assert.True(t, state.Completed)
	assert.Len(t, state.Answers, 1)
	assert.Nil(t, machine.CurrentQuestion())
}

func TestStateRoundTrip(t *testing.T) {
	bank := testBank()
	state := NewState(bank)
	state.CurrentStage = "roots"
	state.CurrentQuestionIndex = 1
	state.Context["hometown"] = "Lisbon, Portugal"
	state.CreatedAt = time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	state.Answers = []AnswerRecord{
		{Question: "Ready?", Answer: "yes", Stage: "intro", Timestamp: time.Date(2024, 5, 1, 10, 31, 0, 0, time.UTC)},
		{Question: "Where are you from?", Answer: "Lisbon", Stage: "roots", Timestamp: time.Date(2024, 5, 1, 10, 32, 0, 0, time.UTC)},
	}

	data, err := json.Marshal(state)
	require.NoError(t, err)

	// Таймстемпы сериализуются как ISO-8601
	assert.Contains(t, string(data), "2024-05-01T10:31:00Z")

	var restored State
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, *state, restored)
}

func TestDeterministicRuns(t *testing.T) {
	bank := testBank()

	run := func() [][2]any {
		machine := NewMachine(bank, NewState(bank))
		var visited [][2]any
		for machine.CurrentQuestion() != nil {
			visited = append(visited, [2]any{machine.State().CurrentStage, machine.State().CurrentQuestionIndex})
			machine.Advance()
		}
		return visited
	}

	assert.Equal(t, run(), run())
}
