package state

import "maps"

// State - положение пользователя в диалоге: шаг мастера или пункт меню
type State string

// StateIdle - нет активного мастера
const StateIdle State = "idle"

// Session хранит состояние диалога одного чата
type Session struct {
	State State `json:"state"`
	// Menu - текущий пункт меню (см. пакет menu)
	Menu string `json:"menu,omitempty"`
	// Flow - активный мастер (teacher, discipline, ...)
	Flow string `json:"flow,omitempty"`
	// Fields - введённые значения полей черновика
	Fields map[string]string `json:"fields,omitempty"`
	// Lists - многозначные поля (файлы задания)
	Lists map[string][]string `json:"lists,omitempty"`
	// Options - стабильный ID варианта выбора -> значение
	Options map[string]string `json:"options,omitempty"`
	// ItemID - редактируемая сущность, 0 при создании
	ItemID int64 `json:"item_id,omitempty"`
	// Editing - поле, которое редактируется из подтверждения или меню элемента
	Editing string `json:"editing,omitempty"`
	// Changed - поля, изменённые в режиме редактирования
	Changed []string `json:"changed,omitempty"`
	// Data - прочие данные обработчиков (фильтры, выбранный элемент)
	Data map[string]string `json:"data,omitempty"`
}

func NewSession() *Session {
	return &Session{State: StateIdle}
}

// Field возвращает значение поля черновика
func (s *Session) Field(name string) (string, bool) {
	v, ok := s.Fields[name]
	return v, ok
}

// UpdateFields сливает значения в черновик, последняя запись побеждает
func (s *Session) UpdateFields(partial map[string]string) {
	if s.Fields == nil {
		s.Fields = make(map[string]string, len(partial))
	}
	maps.Copy(s.Fields, partial)
}

func (s *Session) SetField(name, value string) {
	s.UpdateFields(map[string]string{name: value})
}

func (s *Session) DeleteField(name string) {
	delete(s.Fields, name)
	delete(s.Lists, name)
}

func (s *Session) Append(name, value string) {
	if s.Lists == nil {
		s.Lists = make(map[string][]string)
	}
	s.Lists[name] = append(s.Lists[name], value)
}

func (s *Session) List(name string) []string {
	return s.Lists[name]
}

// AddOption регистрирует вариант выбора под стабильным ID
func (s *Session) AddOption(id, value string) {
	if s.Options == nil {
		s.Options = make(map[string]string)
	}
	s.Options[id] = value
}

func (s *Session) Option(id string) (string, bool) {
	v, ok := s.Options[id]
	return v, ok
}

func (s *Session) Get(key string) string {
	return s.Data[key]
}

func (s *Session) Set(key, value string) {
	if s.Data == nil {
		s.Data = make(map[string]string)
	}
	s.Data[key] = value
}

// MarkChanged запоминает поле для частичного обновления
func (s *Session) MarkChanged(field string) {
	for _, f := range s.Changed {
		if f == field {
			return
		}
	}
	s.Changed = append(s.Changed, field)
}

// ResetDraft очищает мастер, сохраняя пункт меню и данные обработчиков
func (s *Session) ResetDraft() {
	s.State = StateIdle
	s.Flow = ""
	s.Fields = nil
	s.Lists = nil
	s.Options = nil
	s.ItemID = 0
	s.Editing = ""
	s.Changed = nil
}

// Clone возвращает глубокую копию
func (s *Session) Clone() *Session {
	c := *s
	c.Fields = maps.Clone(s.Fields)
	c.Options = maps.Clone(s.Options)
	c.Data = maps.Clone(s.Data)
	if s.Lists != nil {
		c.Lists = make(map[string][]string, len(s.Lists))
		for k, v := range s.Lists {
			c.Lists[k] = append([]string(nil), v...)
		}
	}
	if s.Changed != nil {
		c.Changed = append([]string(nil), s.Changed...)
	}
	return &c
}
