package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"

	"lifestory-core/internal/cardstore"
	"lifestory-core/internal/config"
	"lifestory-core/internal/interviewer"
	"lifestory-core/internal/metrics"
)

const sessionCookieName = "session_id"

// Server — тонкий HTTP слой над ядром интервью. Вся логика живет в
// interviewer.Service; здесь только идентификатор сессии из cookie,
// разбор JSON и коды ответов.
type Server struct {
	svc     *interviewer.Service
	cards   *cardstore.Repository
	metrics *metrics.Metrics
}

func New(svc *interviewer.Service, cards *cardstore.Repository, m *metrics.Metrics) *Server {
	return &Server{svc: svc, cards: cards, metrics: m}
}

// Handler собирает маршруты API
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/interview", s.handleInterview)
	mux.HandleFunc("/interview/progress", s.handleProgress)
	mux.HandleFunc("/cards", s.handleCards)
	mux.HandleFunc("/timeline", s.handleTimeline)
	mux.HandleFunc("/metrics", s.handleMetrics)
	return mux
}

// Run запускает HTTP сервер с таймаутами из конфигурации
func (s *Server) Run(cfg config.ServerConfig) error {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return server.ListenAndServe()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	fmt.Fprint(w, "Lifestory API is running!")
}

func (s *Server) handleInterview(w http.ResponseWriter, r *http.Request) {
	sessionID := s.sessionID(w, r)

	switch r.Method {
	case http.MethodGet:
		response, err := s.svc.BeginOrResume(sessionID)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, response)

	case http.MethodPost:
		var payload struct {
			Answer string `json:"answer"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "некорректный JSON в теле запроса"})
			return
		}

		response, err := s.svc.SubmitAnswer(r.Context(), sessionID, payload.Answer)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, response)

	default:
		w.Header().Set("Allow", "GET, POST")
		s.writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "метод не поддерживается"})
	}
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "метод не поддерживается"})
		return
	}

	response, err := s.svc.GetProgress(s.sessionID(w, r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "метод не поддерживается"})
		return
	}

	drafts, err := s.cards.LoadForSession(r.Context(), s.sessionID(w, r))
	if err != nil {
		log.Printf("Ошибка выборки карточек: %v", err)
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "не удалось загрузить карточки"})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"cards": drafts})
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "метод не поддерживается"})
		return
	}

	drafts, err := s.cards.Timeline(r.Context(), s.sessionID(w, r))
	if err != nil {
		log.Printf("Ошибка выборки таймлайна: %v", err)
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "не удалось загрузить таймлайн"})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"timeline": drafts})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.metrics.GetSnapshot())
}

// sessionID читает идентификатор сессии из cookie или выдает новый
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// writeError переводит ошибки ядра в коды HTTP: валидация — 400,
// фатальное сохранение сессии — 500
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var saveErr *interviewer.SaveError

	switch {
	case errors.Is(err, interviewer.ErrEmptyAnswer), errors.Is(err, interviewer.ErrNoActiveQuestion):
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.As(err, &saveErr):
		log.Printf("Фатальная ошибка сохранения: %v", err)
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "не удалось сохранить сессию"})
	default:
		log.Printf("Внутренняя ошибка: %v", err)
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "внутренняя ошибка"})
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Ошибка записи ответа: %v", err)
	}
}
