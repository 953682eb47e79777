package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"lifestory-core/internal/config"
)

const baseURL = "https://api.openai.com/v1"

// Client — клиент OpenAI API: персонализация вопросов интервью и
// генерация изображений для карточек. Все вызовы синхронные с общим
// таймаутом из конфигурации; любая ошибка возвращается вызывающему,
// который подставляет документированный фолбэк.
type Client struct {
	cfg    config.OpenAIConfig
	client *http.Client
}

func NewClient(cfg config.OpenAIConfig) *Client {
	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *apiError    `json:"error,omitempty"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type imageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type imageResponse struct {
	Data  []imageData `json:"data"`
	Error *apiError   `json:"error,omitempty"`
}

type imageData struct {
	URL string `json:"url"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

// NextQuestion просит модель переформулировать вопрос из банка теплее и
// с учетом предыдущих ответов. Смысл вопроса меняться не должен; при
// любой ошибке вызывающий использует вопрос банка как есть.
func (c *Client) NextQuestion(stage, baseQuestion string, priorAnswers []string) (string, error) {
	var prompt strings.Builder
	prompt.WriteString("You are a warm, attentive biographer conducting a life story interview.\n\n")
	prompt.WriteString(fmt.Sprintf("CURRENT STAGE: %s\n", stage))
	prompt.WriteString(fmt.Sprintf("NEXT QUESTION TO ASK: %s\n\n", baseQuestion))

	if len(priorAnswers) > 0 {
		prompt.WriteString("WHAT THE PERSON HAS SHARED SO FAR:\n")
		for _, answer := range priorAnswers {
			prompt.WriteString("- ")
			prompt.WriteString(answer)
			prompt.WriteString("\n")
		}
		prompt.WriteString("\n")
	}

	prompt.WriteString("Rephrase the question naturally, referencing what was shared when it helps. ")
	prompt.WriteString("Keep the meaning of the question intact. Reply with the question text only.")

	reqBody := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt.String()},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("ошибка сериализации запроса: %w", err)
	}

	body, err := c.post("/chat/completions", jsonBody)
	if err != nil {
		return "", err
	}

	var response chatResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("ошибка разбора ответа: %w", err)
	}

	if response.Error != nil {
		return "", fmt.Errorf("OpenAI API вернул ошибку: %s", response.Error.Message)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("OpenAI API не вернул вариантов ответа")
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

// GenerateImage генерирует изображение для карточки и возвращает его URL
func (c *Client) GenerateImage(prompt string) (string, error) {
	reqBody := imageRequest{
		Model:  c.cfg.ImageModel,
		Prompt: prompt,
		N:      1,
		Size:   "1024x1024",
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("ошибка сериализации запроса: %w", err)
	}

	body, err := c.post("/images/generations", jsonBody)
	if err != nil {
		return "", err
	}

	var response imageResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("ошибка разбора ответа: %w", err)
	}

	if response.Error != nil {
		return "", fmt.Errorf("OpenAI API вернул ошибку: %s", response.Error.Message)
	}

	if len(response.Data) == 0 {
		return "", fmt.Errorf("OpenAI API не вернул изображений")
	}

	return response.Data[0].URL, nil
}

func (c *Client) post(path string, jsonBody []byte) ([]byte, error) {
	req, err := http.NewRequest("POST", baseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenAI API: статус %d, тело: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
