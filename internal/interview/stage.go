package interview

import (
	"log"
	"time"

	"lifestory-core/internal/config"
)

// Machine — конечный автомат интервью поверх банка вопросов.
// Состояния — пары (этап, индекс вопроса) в порядке, объявленном банком,
// плюс поглощающее терминальное состояние Completed. Переходы только
// вперед; возврата к уже отвеченным вопросам нет.
type Machine struct {
	bank  *config.Config
	state *State
}

// NewState создает начальное состояние: первый этап, первый вопрос
func NewState(bank *config.Config) *State {
	return &State{
		CurrentStage:         bank.FirstStage(),
		CurrentQuestionIndex: 0,
		Answers:              []AnswerRecord{},
		Completed:            false,
		CreatedAt:            time.Now().UTC(),
		Context:              map[string]string{},
	}
}

// NewMachine привязывает состояние к банку вопросов. Состояние с этапом,
// которого нет в банке, или с индексом за пределами этапа считается
// поврежденным и сбрасывается к начальному с пустым журналом ответов.
func NewMachine(bank *config.Config, state *State) *Machine {
	m := &Machine{bank: bank, state: state}

	if state.Context == nil {
		state.Context = map[string]string{}
	}

	if !state.Completed {
		questions := bank.GetStageQuestions(state.CurrentStage)
		if questions == nil || state.CurrentQuestionIndex < 0 || state.CurrentQuestionIndex >= len(questions) {
			log.Printf("Поврежденное состояние интервью (этап %q, вопрос %d) — сброс к началу",
				state.CurrentStage, state.CurrentQuestionIndex)
			m.reset()
		}
	}

	return m
}

func (m *Machine) reset() {
	*m.state = *NewState(m.bank)
}

// State возвращает текущее состояние машины
func (m *Machine) State() *State {
	return m.state
}

// CurrentQuestion возвращает текущий вопрос или nil, если интервью завершено
func (m *Machine) CurrentQuestion() *config.Question {
	if m.state.Completed {
		return nil
	}

	questions := m.bank.GetStageQuestions(m.state.CurrentStage)
	if m.state.CurrentQuestionIndex < len(questions) {
		return &questions[m.state.CurrentQuestionIndex]
	}
	return nil
}

// AddAnswer записывает ответ на текущий вопрос в журнал.
// Этап записи всегда равен этапу, активному в момент ответа.
func (m *Machine) AddAnswer(answer string) {
	question := m.CurrentQuestion()
	if question == nil {
		return
	}

	m.state.Answers = append(m.state.Answers, AnswerRecord{
		Question:  question.Text,
		Answer:    answer,
		Stage:     m.state.CurrentStage,
		Timestamp: time.Now().UTC(),
	})
}

// SetContext сохраняет извлеченное значение в накопленный контекст
func (m *Machine) SetContext(key, value string) {
	if key == "" || value == "" {
		return
	}
	m.state.Context[key] = value
}

// Advance переводит машину к следующему вопросу. Возвращает true, когда
// интервью завершено. Внутри этапа растет индекс; исчерпанный этап
// сменяется следующим по порядку банка; после последнего этапа
// выставляется Completed. На завершенном состоянии — no-op с true.
func (m *Machine) Advance() bool {
	if m.state.Completed {
		return true
	}

	questions := m.bank.GetStageQuestions(m.state.CurrentStage)
	if m.state.CurrentQuestionIndex < len(questions)-1 {
		m.state.CurrentQuestionIndex++
		return false
	}

	stageIndex := m.bank.GetStageIndex(m.state.CurrentStage)
	if stageIndex < 0 {
		m.state.Completed = true
		return true
	}

	if stageIndex < m.bank.GetTotalStages()-1 {
		m.state.CurrentStage = m.bank.Stages[stageIndex+1].Name
		m.state.CurrentQuestionIndex = 0
		return false
	}

	m.state.Completed = true
	return true
}

// Progress возвращает прогресс интервью в процентах [0, 100].
// Формула: (вопросы пройденных этапов + индекс текущего) / всего * 100.
// Ровно 100 только на завершенном интервью.
func (m *Machine) Progress() float64 {
	if m.state.Completed {
		return 100.0
	}

	total := m.bank.GetTotalQuestions()
	if total == 0 {
		return 0.0
	}

	completed := 0
	for _, stage := range m.bank.Stages {
		if stage.Name == m.state.CurrentStage {
			break
		}
		completed += len(stage.Questions)
	}
	completed += m.state.CurrentQuestionIndex

	return float64(completed) / float64(total) * 100.0
}
