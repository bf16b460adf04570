package handlers

import (
	"errors"

	"github.com/Freeeeeet/study_tracker/internal/chart"
	"github.com/Freeeeeet/study_tracker/internal/client/backend"
	"github.com/Freeeeeet/study_tracker/internal/client/llm"
	"github.com/Freeeeeet/study_tracker/internal/client/petrsu"
	"github.com/Freeeeeet/study_tracker/internal/controller/common/formatting"
	"github.com/Freeeeeet/study_tracker/internal/controller/wizard"
)

// Общие ошибки для обработчиков
var (
	ErrNotRegistered = errors.New("user is not registered")
	ErrInvalidFormat = errors.New("invalid callback format")
	ErrItemNotFound  = errors.New("item not found")
	ErrNotStudent    = errors.New("user is not a PetrSU student")
	ErrNoTaskText    = errors.New("task has no text")
	ErrLLMDisabled   = errors.New("llm client is not configured")
	ErrStale         = errors.New("stale button")
	ErrAPINameLocked = errors.New("schedule discipline name is read-only")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки (HTML).
// Текст ошибки REST API показывается как есть, но экранируется.
func ErrorMessage(err error) string {
	var (
		inputErr  *wizard.InputError
		apiErr    *backend.APIError
		petrsuErr *petrsu.StatusError
	)
	switch {
	case errors.Is(err, ErrNotRegistered):
		return "❌ Вы ещё не зарегистрированы. Используйте /start"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	case errors.Is(err, ErrItemNotFound):
		return "❌ Запись не найдена. Возможно, она уже удалена"
	case errors.Is(err, ErrNotStudent):
		return "❌ Функция доступна только студентам ПетрГУ. Укажите группу в настройках"
	case errors.Is(err, ErrNoTaskText):
		return "❌ У задания нет текста. Воспользуйтесь подсказкой по новому тексту"
	case errors.Is(err, ErrLLMDisabled):
		return "❌ Подсказки ИИ сейчас недоступны"
	case errors.Is(err, llm.ErrEmptyAnswer):
		return "❌ Модель не дала ответа, попробуйте позже"
	case errors.Is(err, ErrStale):
		return "⌛ Кнопка устарела, откройте меню заново"
	case errors.Is(err, ErrAPINameLocked):
		return "❌ Название дисциплины из расписания ПетрГУ изменить нельзя"
	case errors.Is(err, wizard.ErrNotEditable):
		return "❌ Это поле сейчас нельзя изменить"
	case errors.Is(err, chart.ErrNoTasks):
		return "📭 Нет заданий для выбранного периода"
	case errors.As(err, &inputErr):
		return "⚠️ " + formatting.Escape(inputErr.Hint)
	case errors.As(err, &apiErr):
		return "❌ " + formatting.Escape(apiErr.Detail)
	case errors.As(err, &petrsuErr):
		return "❌ " + formatting.Escape(petrsuErr.Error())
	default:
		return "❌ Произошла ошибка. Попробуйте позже."
	}
}
