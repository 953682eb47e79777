package interview

import "time"

// AnswerRecord представляет один записанный ответ.
// После добавления запись не изменяется.
type AnswerRecord struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Stage     string    `json:"stage"`
	Timestamp time.Time `json:"timestamp"`
}

// State представляет сериализуемое состояние одного интервью.
// Формат JSON полей совпадает с записью сессии в хранилище:
// таймстемпы ISO-8601, порядок ответов сохраняется.
type State struct {
	CurrentStage         string            `json:"current_stage"`
	CurrentQuestionIndex int               `json:"current_question_index"`
	Answers              []AnswerRecord    `json:"answers"`
	Completed            bool              `json:"completed"`
	CreatedAt            time.Time         `json:"created_at"`
	Context              map[string]string `json:"context"`
}
