package interviewer

import (
	"context"
	"log"
	"strings"

	"lifestory-core/internal/cards"
	"lifestory-core/internal/config"
	"lifestory-core/internal/extractor"
	"lifestory-core/internal/interview"
	"lifestory-core/internal/metrics"
	"lifestory-core/internal/prompts"
	"lifestory-core/internal/session"
)

// QuestionOracle может персонализировать текст следующего вопроса по
// предыдущим ответам. Любая ошибка приводит к использованию вопроса
// из банка как есть; на ход интервью оракул не влияет.
type QuestionOracle interface {
	NextQuestion(stage, baseQuestion string, priorAnswers []string) (string, error)
}

// CardRepository — внешнее хранилище синтезированных карточек.
// Ошибка сохранения логируется и не прерывает интервью.
type CardRepository interface {
	Save(ctx context.Context, draft *cards.Draft) error
}

// Service — ядро интервью: загрузка сессии, машина этапов, извлечение,
// синтез карточек, сохранение. Каждый вызов обрабатывается целиком
// в одном контексте исполнения: загрузка → изменение → запись.
type Service struct {
	bank     *config.Config
	sessions *session.Store
	extract  extractor.Extractor
	synth    *cards.Synthesizer
	cardRepo CardRepository // nil — карточки не сохраняются
	oracle   QuestionOracle // nil — всегда вопрос из банка
	metrics  *metrics.Metrics
}

func New(
	bank *config.Config,
	sessions *session.Store,
	extract extractor.Extractor,
	synth *cards.Synthesizer,
	cardRepo CardRepository,
	oracle QuestionOracle,
	m *metrics.Metrics,
) *Service {
	return &Service{
		bank:     bank,
		sessions: sessions,
		extract:  extract,
		synth:    synth,
		cardRepo: cardRepo,
		oracle:   oracle,
		metrics:  m,
	}
}

// BeginOrResume возвращает текущий вопрос сессии, создавая состояние
// при первом обращении
func (s *Service) BeginOrResume(sessionID string) (*QuestionResponse, error) {
	state, created := s.sessions.GetOrCreate(sessionID)
	machine := interview.NewMachine(s.bank, state)

	if created {
		s.metrics.IncrementSessionsStarted()
		if err := s.sessions.Save(sessionID, state); err != nil {
			return nil, &SaveError{Err: err}
		}
	}

	if state.Completed {
		return &QuestionResponse{
			Question:     CompletionMessage,
			CurrentStage: state.CurrentStage,
			Progress:     100.0,
			Completed:    true,
		}, nil
	}

	question := machine.CurrentQuestion()

	return &QuestionResponse{
		Question:     s.questionText(state, question),
		CurrentStage: state.CurrentStage,
		Progress:     machine.Progress(),
		Completed:    false,
	}, nil
}

// SubmitAnswer принимает ответ на текущий вопрос: проверяет его,
// записывает в журнал, синтезирует карточку, продвигает машину и
// сохраняет сессию. Сбои извлечения, генерации изображения и
// сохранения карточки локальны: пишутся в лог, интервью продолжается.
func (s *Service) SubmitAnswer(ctx context.Context, sessionID, answer string) (*AnswerResponse, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, ErrEmptyAnswer
	}

	state, created := s.sessions.GetOrCreate(sessionID)
	machine := interview.NewMachine(s.bank, state)
	if created {
		s.metrics.IncrementSessionsStarted()
	}

	question := machine.CurrentQuestion()
	if question == nil {
		return nil, ErrNoActiveQuestion
	}

	machine.AddAnswer(answer)
	s.metrics.IncrementAnswersAccepted()

	extracted := s.extract.Extract(answer)
	if question.ContextKey != "" {
		machine.SetContext(question.ContextKey, extracted.Location)
	}

	cardType := s.synthesizeCard(ctx, sessionID, answer)

	followUp := ""
	if question.FollowUpTemplate != "" {
		followUp = prompts.RenderFollowUp(question.FollowUpTemplate, state.Context)
	}

	completed := machine.Advance()

	if err := s.sessions.Save(sessionID, state); err != nil {
		return nil, &SaveError{Err: err}
	}

	response := &AnswerResponse{
		Success:      true,
		FollowUp:     followUp,
		CurrentStage: state.CurrentStage,
		Progress:     machine.Progress(),
		Completed:    completed,
		CardCreated:  cardType,
	}

	if completed {
		s.metrics.IncrementInterviewsCompleted()
		return response, nil
	}

	response.NextQuestion = s.questionText(state, machine.CurrentQuestion())
	return response, nil
}

// GetProgress возвращает прогресс сессии, не изменяя ее
func (s *Service) GetProgress(sessionID string) (*ProgressResponse, error) {
	state, _ := s.sessions.GetOrCreate(sessionID)
	machine := interview.NewMachine(s.bank, state)

	return &ProgressResponse{
		CurrentStage: state.CurrentStage,
		Progress:     machine.Progress(),
		IsComplete:   state.Completed,
	}, nil
}

// synthesizeCard строит карточку из ответа и отдает ее во внешнее
// хранилище. Возвращает тип карточки или пустую строку, если сохранение
// не удалось: для пользователя сбой невидим, но остается в логах.
func (s *Service) synthesizeCard(ctx context.Context, sessionID, answer string) string {
	draft := s.synth.Build(sessionID, answer)

	if s.cardRepo != nil {
		if err := s.cardRepo.Save(ctx, draft); err != nil {
			log.Printf("Сохранение карточки %s (сессия %s) не удалось: %v — пропускаю", draft.ID, sessionID, err)
			return ""
		}
	}

	s.metrics.IncrementCardsCreated()
	return string(draft.Type)
}

// questionText возвращает текст вопроса, по возможности
// персонализированный оракулом; вопрос банка — документированный фолбэк
func (s *Service) questionText(state *interview.State, question *config.Question) string {
	if question == nil {
		return CompletionMessage
	}

	if s.oracle == nil {
		return question.Text
	}

	prior := make([]string, 0, len(state.Answers))
	for _, record := range state.Answers {
		prior = append(prior, record.Answer)
	}

	text, err := s.oracle.NextQuestion(state.CurrentStage, question.Text, prior)
	s.metrics.IncrementAPICall(err == nil)
	if err != nil || text == "" {
		log.Printf("Оракул вопросов недоступен: %v — использую вопрос из банка", err)
		return question.Text
	}

	return text
}
