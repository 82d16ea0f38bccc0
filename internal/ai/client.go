package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
)

var log = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()

// ErrGenerationFailed - транспортная ошибка при обращении к API генерации.
var ErrGenerationFailed = errors.New("generation request failed")

// Параметры генерации фиксированы: короткий JSON-объект, сэмплирование выключено.
const (
	completionMaxTokens = 100
	completionTopP      = 1
)

// Client предоставляет интерфейс для работы с API нейросети.
type Client struct {
	client    *openai.Client
	modelName string
}

// Config содержит конфигурацию для клиента нейросети.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// New создает новый экземпляр клиента нейросети.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("AI API key is not set")
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-3.5-turbo"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{
		Timeout: cfg.Timeout,
	}

	return &Client{
		client:    openai.NewClientWithConfig(clientConfig),
		modelName: cfg.Model,
	}, nil
}

// Generate отправляет единственное пользовательское сообщение и возвращает текст
// первого варианта ответа. Если API ответил неуспешно, возвращается пустая строка
// без ошибки; ошибкой считается только сбой самого запроса.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens: completionMaxTokens,
		TopP:      completionTopP,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			// Сервер ответил, но неуспешно: считаем, что генерации нет
			log.Warn().Int("status", apiErr.HTTPStatusCode).Str("model", c.modelName).
				Msg("Completion API returned an error response")
			return "", nil
		}
		log.Error().Err(err).Str("model", c.modelName).Msg("Completion request failed")
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	if len(resp.Choices) == 0 {
		log.Warn().Str("model", c.modelName).Msg("Completion response contained no choices")
		return "", nil
	}

	return resp.Choices[0].Message.Content, nil
}
