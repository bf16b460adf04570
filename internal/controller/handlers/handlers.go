// Package handlers - обработчики Telegram: команды, кнопки меню, мастера и inline кнопки
package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/study_tracker/internal/client/backend"
	"github.com/Freeeeeet/study_tracker/internal/client/llm"
	"github.com/Freeeeeet/study_tracker/internal/client/petrsu"
	"github.com/Freeeeeet/study_tracker/internal/controller/state"
	"github.com/Freeeeeet/study_tracker/internal/controller/wizard"
)

// Handlers содержит все зависимости для обработки обновлений
type Handlers struct {
	api      *backend.Client
	petrsu   *petrsu.Client
	llm      *llm.Client // nil, если ключ LLM не задан
	sessions *state.Manager
	engine   *wizard.Engine
	logger   *zap.Logger

	bot        *bot.Bot
	downloader *http.Client

	locksMu sync.Mutex
	locks   map[int64]*userLock
}

// userLock удаляется из карты, когда его никто не держит и не ждёт
type userLock struct {
	mu   sync.Mutex
	refs int
}

type Deps struct {
	API      *backend.Client
	PetrSU   *petrsu.Client
	LLM      *llm.Client
	Sessions *state.Manager
	Logger   *zap.Logger
}

// New создаёт обработчики и мастера ввода
func New(deps Deps) (*Handlers, error) {
	h := &Handlers{
		api:        deps.API,
		petrsu:     deps.PetrSU,
		llm:        deps.LLM,
		sessions:   deps.Sessions,
		logger:     deps.Logger,
		downloader: &http.Client{Timeout: 60 * time.Second},
		locks:      make(map[int64]*userLock),
	}

	engine, err := wizard.NewEngine(deps.Logger, wizard.Definitions(wizard.Deps{
		API:    deps.API,
		PetrSU: deps.PetrSU,
		Fetch:  h.downloadFile,
		Logger: deps.Logger,
	})...)
	if err != nil {
		return nil, fmt.Errorf("build wizards: %w", err)
	}
	h.engine = engine
	return h, nil
}

// Register регистрирует команды и inline кнопки.
// Остальные сообщения приходят в HandleMessage через bot.WithDefaultHandler.
func (h *Handlers) Register(ctx context.Context, b *bot.Bot) error {
	h.bot = b

	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, h.HandleStart)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, h.HandleHelp)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/menu", bot.MatchTypeExact, h.HandleMenu)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, h.HandleCancel)

	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, h.HandleCallback)

	return h.setCommands(ctx, b)
}

// setCommands устанавливает список команд в меню бота
func (h *Handlers) setCommands(ctx context.Context, b *bot.Bot) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "menu", Description: "🏠 Главное меню"},
		{Command: "cancel", Description: "❌ Отменить текущее действие"},
		{Command: "help", Description: "❓ Справка"},
	}

	_, err := b.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})
	if err != nil {
		h.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	h.logger.Info("✅ Bot commands menu set")
	return nil
}

// lock сериализует обработку обновлений одного пользователя
func (h *Handlers) lock(telegramID int64) func() {
	h.locksMu.Lock()
	l, ok := h.locks[telegramID]
	if !ok {
		l = &userLock{}
		h.locks[telegramID] = l
	}
	l.refs++
	h.locksMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		h.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(h.locks, telegramID)
		}
		h.locksMu.Unlock()
	}
}

// downloadFile скачивает файл Telegram по file_id
func (h *Handlers) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	if h.bot == nil {
		return nil, fmt.Errorf("bot is not registered")
	}
	f, err := h.bot.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file %s: %w", fileID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.bot.FileDownloadLink(f), nil)
	if err != nil {
		return nil, fmt.Errorf("create download request: %w", err)
	}
	resp, err := h.downloader.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file %s: status %d", fileID, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
