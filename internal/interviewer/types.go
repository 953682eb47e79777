package interviewer

// CompletionMessage показывается вместо вопроса на завершенном интервью
const CompletionMessage = "Thank you for sharing your story!"

// QuestionResponse — ответ begin_or_resume
type QuestionResponse struct {
	Question     string  `json:"question"`
	CurrentStage string  `json:"current_stage"`
	Progress     float64 `json:"progress"`
	Completed    bool    `json:"completed"`
}

// AnswerResponse — ответ submit_answer
type AnswerResponse struct {
	Success      bool    `json:"success"`
	NextQuestion string  `json:"next_question,omitempty"`
	FollowUp     string  `json:"follow_up,omitempty"`
	CurrentStage string  `json:"current_stage"`
	Progress     float64 `json:"progress"`
	Completed    bool    `json:"completed"`
	CardCreated  string  `json:"card_created,omitempty"`
}

// ProgressResponse — ответ get_progress
type ProgressResponse struct {
	CurrentStage string  `json:"current_stage"`
	Progress     float64 `json:"progress"`
	IsComplete   bool    `json:"is_complete"`
}
