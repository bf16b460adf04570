package wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/study_tracker/internal/controller/state"
)

// Input определяет, какую клавиатуру показывает шаг
type Input int

const (
	InputText Input = iota
	InputOptions
	InputCalendar
	InputHour
	InputMinute
	InputYesNo
	InputFiles
)

// User - автор действия
type User struct {
	TelegramID int64
	ID         int64 // 0 до регистрации
}

// Option - вариант выбора со стабильным ID
type Option struct {
	ID    string
	Label string
	Value string
}

// Validator проверяет ввод и возвращает нормализованное значение поля
type Validator func(ctx context.Context, d Draft, raw string) (string, error)

// Picker загружает варианты выбора для шага
type Picker func(ctx context.Context, u User, d Draft) ([]Option, error)

// InputError - ошибка ввода пользователя, текст показывается как подсказка
type InputError struct {
	Hint string
}

func (e *InputError) Error() string {
	return e.Hint
}

func invalid(format string, args ...any) error {
	return &InputError{Hint: fmt.Sprintf(format, args...)}
}

var (
	ErrUnexpected  = &InputError{Hint: "Воспользуйтесь кнопками под сообщением"}
	ErrStaleOption = &InputError{Hint: "Этот вариант больше недоступен, выберите из обновлённого списка"}
	ErrNotEditable = errors.New("field is not editable")
)

type Step struct {
	// Field - поле черновика, в которое записывается значение
	Field string
	// State - состояние сессии на этом шаге, по умолчанию <flow>:<field>
	State  state.State
	Prompt string
	Input  Input
	Picker Picker
	// Text принимает текстовый ввод. nil - текст на шаге не принимается.
	Text Validator
	// Choice проверяет значение кнопки для шагов без Picker (дата, час, минуты)
	Choice Validator
	// Empty - сообщение, если Picker вернул пустой список у обязательного шага
	Empty    string
	Optional bool
	// Multi - шаг собирает несколько файлов до finish
	Multi bool
	// Continues - при редактировании после этого шага идёт следующий, а не возврат
	Continues bool
	// EditOnly - шаг пропускается при создании
	EditOnly bool
	When     func(d Draft) bool
}

func (s *Step) choosable() bool {
	return s.Picker != nil || s.Input == InputCalendar || s.Input == InputHour ||
		s.Input == InputMinute || s.Input == InputYesNo
}

// Editable - поле, доступное для изменения. From - поле шага, с которого начинается ввод.
type Editable struct {
	Field string
	Label string
	From  string
}

type Definition struct {
	Flow  string
	Steps []Step
	// Summary - текст подтверждения (HTML)
	Summary func(d Draft) string
	Submit  func(ctx context.Context, u User, d Draft) error
	// Update сохраняет изменённые поля существующей записи
	Update   func(ctx context.Context, u User, itemID int64, d Draft, changed []string) error
	Editable []Editable
	// AutoSubmit - отправка без подтверждения после последнего шага
	AutoSubmit bool
	Done       string
	Edited     string
}

// ConfirmState - состояние подтверждения черновика
func (d *Definition) ConfirmState() state.State {
	return state.State(d.Flow + ":confirm")
}

func (d *Definition) stepIndex(st state.State) int {
	for i := range d.Steps {
		if d.Steps[i].State == st {
			return i
		}
	}
	return -1
}

func (d *Definition) editable(field string, s *state.Session) (Editable, bool) {
	for _, e := range d.Editables(s) {
		if e.Field == field {
			return e, true
		}
	}
	return Editable{}, false
}

// Editables - поля, которые можно изменить в текущем черновике.
// Шаги EditOnly доступны только для существующей записи, шаги с ложным When скрыты.
func (d *Definition) Editables(s *state.Session) []Editable {
	out := make([]Editable, 0, len(d.Editable))
	for _, e := range d.Editable {
		if e.From == "" {
			e.From = e.Field
		}
		idx := d.find(e.From, s)
		if idx < 0 {
			continue
		}
		if d.Steps[idx].EditOnly && s.ItemID == 0 {
			continue
		}
		out = append(out, e)
	}
	return out
}

// next возвращает индекс первого применимого шага начиная с from или -1
func (d *Definition) next(from int, s *state.Session) int {
	draft := DraftOf(s)
	for i := from; i < len(d.Steps); i++ {
		st := &d.Steps[i]
		if st.EditOnly && s.Editing == "" {
			continue
		}
		if st.When != nil && !st.When(draft) {
			continue
		}
		return i
	}
	return -1
}

// find возвращает первый применимый шаг, пишущий в поле
func (d *Definition) find(field string, s *state.Session) int {
	draft := DraftOf(s)
	for i := range d.Steps {
		st := &d.Steps[i]
		if st.Field != field {
			continue
		}
		if st.When != nil && !st.When(draft) {
			continue
		}
		return i
	}
	return -1
}

func (d *Definition) validate() error {
	if d.Flow == "" || len(d.Steps) == 0 {
		return fmt.Errorf("wizard %q: no steps", d.Flow)
	}
	if d.Submit == nil {
		return fmt.Errorf("wizard %q: no submit", d.Flow)
	}
	seen := map[state.State]bool{d.ConfirmState(): true}
	for i := range d.Steps {
		st := &d.Steps[i]
		if st.State == "" {
			st.State = state.State(d.Flow + ":" + st.Field)
		}
		if seen[st.State] {
			return fmt.Errorf("wizard %q: duplicate state %q", d.Flow, st.State)
		}
		seen[st.State] = true
		if st.Input == InputOptions && st.Picker == nil {
			return fmt.Errorf("wizard %q: step %q has no picker", d.Flow, st.Field)
		}
	}
	for _, e := range d.Editable {
		from := e.From
		if from == "" {
			from = e.Field
		}
		found := false
		for i := range d.Steps {
			if d.Steps[i].Field == from {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("wizard %q: editable %q has no step %q", d.Flow, e.Field, from)
		}
	}
	return nil
}
