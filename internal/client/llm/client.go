// Package llm - клиент OpenAI-совместимого API для подсказок по заданиям
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel   = "deepseek/deepseek-r1:free"
)

var ErrEmptyAnswer = errors.New("llm returned empty answer")

const promptTemplate = `Помоги разобраться с заданием. Его текст звучит так: %s
У меня есть несколько вопросов:
1. Посоветуй литературу или статьи, где можно изучить основы этой темы.
2. Дай идеи для решения: какие подходы/алгоритмы уместны, на что обратить внимание.
3. Если это задание требует программирования, покажи каркас кода (например, структуру классов или функций без реализации логики), но не готовый код.
4. Не давай полное решение, хочу разобраться сам.
5. Можешь предложить контрольные вопросы, чтобы проверить мое понимание.
6. Как бы ты разбил эту задачу на подзадачи? Хочу понять с чего начать.`

// Prompt подставляет текст задания в шаблон запроса
func Prompt(taskText string) string {
	return fmt.Sprintf(promptTemplate, strings.TrimSpace(taskText))
}

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type Client struct {
	api    *openai.Client
	model  string
	logger *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 2 * time.Minute
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		api:    openai.NewClientWithConfig(oc),
		model:  cfg.Model,
		logger: logger,
	}
}

// Hint запрашивает подсказку по тексту задания
func (c *Client) Hint(ctx context.Context, taskText string) (string, error) {
	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: Prompt(taskText)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyAnswer
	}

	c.logger.Debug("LLM hint received",
		zap.String("model", c.model),
		zap.Duration("took", time.Since(start)))

	return resp.Choices[0].Message.Content, nil
}

const markdownSpecial = "_*[]()~`>#+-=|{}.!\\"

// EscapeMarkdownV2 экранирует служебные символы Telegram MarkdownV2
func EscapeMarkdownV2(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if strings.ContainsRune(markdownSpecial, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
