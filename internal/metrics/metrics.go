package metrics

import (
	"sync"
	"time"
)

// Metrics — внутрипроцессные счетчики хода интервью
type Metrics struct {
	mu                  sync.RWMutex
	SessionsStarted     int64
	AnswersAccepted     int64
	CardsCreated        int64
	InterviewsCompleted int64
	APICallsTotal       int64
	APICallsSuccessful  int64
	LastUpdateTime      time.Time
}

func New() *Metrics {
	return &Metrics{
		LastUpdateTime: time.Now(),
	}
}

func (m *Metrics) IncrementSessionsStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SessionsStarted++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementAnswersAccepted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AnswersAccepted++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementCardsCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CardsCreated++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementInterviewsCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InterviewsCompleted++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementAPICall(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.APICallsTotal++
	if success {
		m.APICallsSuccessful++
	}
	m.LastUpdateTime = time.Now()
}

// GetSnapshot возвращает копию счетчиков для чтения
func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		SessionsStarted:     m.SessionsStarted,
		AnswersAccepted:     m.AnswersAccepted,
		CardsCreated:        m.CardsCreated,
		InterviewsCompleted: m.InterviewsCompleted,
		APICallsTotal:       m.APICallsTotal,
		APICallsSuccessful:  m.APICallsSuccessful,
		LastUpdateTime:      m.LastUpdateTime,
	}
}

// Snapshot — снимок счетчиков без мьютекса, пригодный для сериализации
type Snapshot struct {
	SessionsStarted     int64     `json:"sessions_started"`
	AnswersAccepted     int64     `json:"answers_accepted"`
	CardsCreated        int64     `json:"cards_created"`
	InterviewsCompleted int64     `json:"interviews_completed"`
	APICallsTotal       int64     `json:"api_calls_total"`
	APICallsSuccessful  int64     `json:"api_calls_successful"`
	LastUpdateTime      time.Time `json:"last_update_time"`
}
