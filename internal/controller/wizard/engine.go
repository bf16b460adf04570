// Package wizard - пошаговый ввод сущностей: шаги, подтверждение, редактирование полей
package wizard

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Freeeeeet/study_tracker/internal/controller/state"
)

type ReplyKind int

const (
	// ReplyIgnored - сессия не в мастере, событие не обработано
	ReplyIgnored ReplyKind = iota
	ReplyPrompt
	ReplyAccepted
	ReplyInvalid
	ReplyConfirm
	ReplyDone
	ReplyEdited
	ReplyCancelled
	ReplyFailed
)

// Reply описывает, что показать пользователю
type Reply struct {
	Kind    ReplyKind
	Flow    string
	Step    *Step
	Options []Option
	// Editing - шаг открыт для изменения одного поля
	Editing bool
	Summary string
	Message string
	Err     error
}

type Engine struct {
	defs   map[string]*Definition
	tables map[string]Table
	logger *zap.Logger
}

func NewEngine(logger *zap.Logger, defs ...*Definition) (*Engine, error) {
	e := &Engine{
		defs:   make(map[string]*Definition, len(defs)),
		tables: make(map[string]Table, len(defs)),
		logger: logger,
	}
	for _, d := range defs {
		if err := d.validate(); err != nil {
			return nil, err
		}
		if _, dup := e.defs[d.Flow]; dup {
			return nil, fmt.Errorf("wizard %q registered twice", d.Flow)
		}
		e.defs[d.Flow] = d
		e.tables[d.Flow] = d.Table()
	}
	return e, nil
}

func (e *Engine) Definition(flow string) (*Definition, bool) {
	d, ok := e.defs[flow]
	return d, ok
}

// Active - сессия находится внутри мастера
func (e *Engine) Active(s *state.Session) bool {
	_, ok := e.defs[s.Flow]
	return ok && s.State != state.StateIdle
}

// Start начинает создание сущности с первого шага
func (e *Engine) Start(ctx context.Context, u User, s *state.Session, flow string) Reply {
	def, ok := e.defs[flow]
	if !ok {
		return Reply{Kind: ReplyFailed, Err: fmt.Errorf("unknown wizard %q", flow)}
	}
	s.ResetDraft()
	s.Flow = flow

	idx := def.next(0, s)
	if idx < 0 {
		return e.complete(ctx, u, s, def)
	}
	s.State = def.Steps[idx].State
	return e.prompt(ctx, u, s, def, idx)
}

// StartEdit открывает изменение одного поля существующей записи.
// seed - текущие значения записи, нужны условиям и проверкам шагов.
func (e *Engine) StartEdit(ctx context.Context, u User, s *state.Session, flow string, itemID int64, field string, seed map[string]string) Reply {
	def, ok := e.defs[flow]
	if !ok || def.Update == nil {
		return Reply{Kind: ReplyFailed, Err: fmt.Errorf("wizard %q: %w", flow, ErrNotEditable)}
	}
	s.ResetDraft()
	s.Flow = flow
	s.ItemID = itemID
	s.UpdateFields(seed)
	if _, ok := def.editable(field, s); !ok {
		s.ResetDraft()
		return Reply{Kind: ReplyFailed, Flow: flow, Err: fmt.Errorf("%w: %s", ErrNotEditable, field)}
	}
	return e.beginEdit(ctx, u, s, def, field)
}

// Prompt повторно показывает текущий шаг или подтверждение
func (e *Engine) Prompt(ctx context.Context, u User, s *state.Session) Reply {
	def, ok := e.defs[s.Flow]
	if !ok || s.State == state.StateIdle {
		return Reply{Kind: ReplyIgnored}
	}
	return e.current(ctx, u, s, def)
}

// Handle применяет событие к сессии
func (e *Engine) Handle(ctx context.Context, u User, s *state.Session, ev Event) Reply {
	def, ok := e.defs[s.Flow]
	if !ok || s.State == state.StateIdle {
		return Reply{Kind: ReplyIgnored}
	}

	tr, ok := e.tables[def.Flow][s.State][ev.Kind]
	if !ok {
		return e.reject(ctx, u, s, def, ErrUnexpected)
	}

	switch tr.Action {
	case ActionStore:
		return e.store(ctx, u, s, def, ev)
	case ActionSkip:
		idx := def.stepIndex(s.State)
		s.DeleteField(def.Steps[idx].Field)
		delete(s.Fields, def.Steps[idx].Field+labelSuffix)
		e.markChanged(s, def.Steps[idx].Field)
		return e.advance(ctx, u, s, def, idx)
	case ActionAppend:
		if _, ok := ParseFileRef(ev.Value); !ok {
			return e.reject(ctx, u, s, def, invalid("Не удалось прочитать файл"))
		}
		idx := def.stepIndex(s.State)
		s.Append(def.Steps[idx].Field, ev.Value)
		return Reply{
			Kind:    ReplyAccepted,
			Flow:    def.Flow,
			Step:    &def.Steps[idx],
			Message: fmt.Sprintf("📎 Файл добавлен (%d)", len(s.List(def.Steps[idx].Field))),
		}
	case ActionFinish:
		return e.advance(ctx, u, s, def, def.stepIndex(s.State))
	case ActionSubmit:
		return e.submit(ctx, u, s, def)
	case ActionCancel:
		s.ResetDraft()
		return Reply{Kind: ReplyCancelled, Flow: def.Flow, Message: "❌ Действие отменено"}
	case ActionEdit:
		return e.beginEdit(ctx, u, s, def, ev.Value)
	}
	return e.reject(ctx, u, s, def, ErrUnexpected)
}

func (e *Engine) store(ctx context.Context, u User, s *state.Session, def *Definition, ev Event) Reply {
	idx := def.stepIndex(s.State)
	step := &def.Steps[idx]
	draft := DraftOf(s)

	var value, label string
	var err error
	switch {
	case ev.Kind == EventChoose && step.Picker != nil:
		key := optionKey(step.Field, ev.Value)
		v, ok := s.Option(key)
		if !ok {
			return e.reject(ctx, u, s, def, ErrStaleOption)
		}
		value = v
		label, _ = s.Option(key + labelSuffix)
	case ev.Kind == EventChoose:
		value = ev.Value
		if step.Choice != nil {
			value, err = step.Choice(ctx, draft, ev.Value)
		}
	default:
		value, err = step.Text(ctx, draft, strings.TrimSpace(ev.Value))
	}
	if err != nil {
		return e.reject(ctx, u, s, def, err)
	}

	s.SetField(step.Field, value)
	if label != "" {
		s.SetField(step.Field+labelSuffix, label)
	} else {
		delete(s.Fields, step.Field+labelSuffix)
	}
	e.markChanged(s, step.Field)
	return e.advance(ctx, u, s, def, idx)
}

func (e *Engine) markChanged(s *state.Session, field string) {
	if s.Editing != "" {
		s.MarkChanged(field)
	}
}

// advance переходит к следующему шагу после idx
func (e *Engine) advance(ctx context.Context, u User, s *state.Session, def *Definition, idx int) Reply {
	if s.Editing != "" && !def.Steps[idx].Continues {
		return e.finishEdit(ctx, u, s, def)
	}
	next := def.next(idx+1, s)
	if next < 0 {
		if s.Editing != "" {
			return e.finishEdit(ctx, u, s, def)
		}
		return e.complete(ctx, u, s, def)
	}
	s.State = def.Steps[next].State
	return e.prompt(ctx, u, s, def, next)
}

// complete - все шаги пройдены при создании
func (e *Engine) complete(ctx context.Context, u User, s *state.Session, def *Definition) Reply {
	if def.AutoSubmit {
		return e.submit(ctx, u, s, def)
	}
	s.State = def.ConfirmState()
	return e.confirm(s, def)
}

func (e *Engine) submit(ctx context.Context, u User, s *state.Session, def *Definition) Reply {
	draft := DraftOf(s)
	if err := def.Submit(ctx, u, draft); err != nil {
		e.logger.Warn("Wizard submit failed",
			zap.String("flow", def.Flow),
			zap.Int64("telegram_id", u.TelegramID),
			zap.Error(err))
		r := e.current(ctx, u, s, def)
		r.Kind = ReplyFailed
		r.Err = err
		return r
	}

	e.logger.Info("Wizard submitted",
		zap.String("flow", def.Flow),
		zap.Int64("telegram_id", u.TelegramID))

	s.ResetDraft()
	return Reply{Kind: ReplyDone, Flow: def.Flow, Message: def.Done}
}

func (e *Engine) beginEdit(ctx context.Context, u User, s *state.Session, def *Definition, field string) Reply {
	ed, ok := def.editable(field, s)
	if !ok {
		return e.reject(ctx, u, s, def, fmt.Errorf("%w: %s", ErrNotEditable, field))
	}
	s.Editing = ed.Field
	idx := def.find(ed.From, s)
	s.State = def.Steps[idx].State
	return e.prompt(ctx, u, s, def, idx)
}

// finishEdit возвращает к подтверждению или сохраняет изменения записи
func (e *Engine) finishEdit(ctx context.Context, u User, s *state.Session, def *Definition) Reply {
	s.Editing = ""
	if s.ItemID == 0 {
		s.Changed = nil
		s.State = def.ConfirmState()
		return e.confirm(s, def)
	}

	itemID := s.ItemID
	changed := s.Changed
	err := def.Update(ctx, u, itemID, DraftOf(s), changed)
	s.ResetDraft()
	if err != nil {
		e.logger.Warn("Wizard update failed",
			zap.String("flow", def.Flow),
			zap.Int64("item_id", itemID),
			zap.Strings("changed", changed),
			zap.Error(err))
		return Reply{Kind: ReplyFailed, Flow: def.Flow, Err: err}
	}
	return Reply{Kind: ReplyEdited, Flow: def.Flow, Message: def.Edited}
}

func (e *Engine) current(ctx context.Context, u User, s *state.Session, def *Definition) Reply {
	if s.State == def.ConfirmState() {
		return e.confirm(s, def)
	}
	idx := def.stepIndex(s.State)
	if idx < 0 {
		return Reply{Kind: ReplyFailed, Flow: def.Flow, Err: fmt.Errorf("wizard %q: unknown state %q", def.Flow, s.State)}
	}
	return e.prompt(ctx, u, s, def, idx)
}

func (e *Engine) confirm(s *state.Session, def *Definition) Reply {
	summary := ""
	if def.Summary != nil {
		summary = def.Summary(DraftOf(s))
	}
	return Reply{Kind: ReplyConfirm, Flow: def.Flow, Summary: summary}
}

func (e *Engine) prompt(ctx context.Context, u User, s *state.Session, def *Definition, idx int) Reply {
	step := &def.Steps[idx]
	r := Reply{Kind: ReplyPrompt, Flow: def.Flow, Step: step, Editing: s.Editing != ""}
	if step.Picker == nil {
		return r
	}

	options, err := step.Picker(ctx, u, DraftOf(s))
	if err != nil {
		return Reply{Kind: ReplyFailed, Flow: def.Flow, Step: step, Err: err}
	}
	if len(options) == 0 && !step.Optional && step.Text == nil {
		msg := step.Empty
		if msg == "" {
			msg = "Нет вариантов для выбора"
		}
		err := &InputError{Hint: msg}
		if s.Editing != "" && s.ItemID == 0 {
			// Черновик сохраняется, возвращаемся к подтверждению
			s.Editing = ""
			s.State = def.ConfirmState()
			r := e.confirm(s, def)
			r.Kind = ReplyInvalid
			r.Err = err
			return r
		}
		s.ResetDraft()
		return Reply{Kind: ReplyFailed, Flow: def.Flow, Err: err}
	}

	for _, o := range options {
		key := optionKey(step.Field, o.ID)
		value := o.Value
		if value == "" {
			value = o.ID
		}
		s.AddOption(key, value)
		s.AddOption(key+labelSuffix, o.Label)
	}
	r.Options = options
	return r
}

// reject оставляет состояние без изменений и повторяет запрос
func (e *Engine) reject(ctx context.Context, u User, s *state.Session, def *Definition, err error) Reply {
	r := e.current(ctx, u, s, def)
	if r.Kind == ReplyFailed {
		return r
	}
	r.Kind = ReplyInvalid
	r.Err = err
	return r
}

func optionKey(field, id string) string {
	return field + "/" + id
}
