package wizard

import "strings"

// EventKind - тип пользовательского действия в мастере
type EventKind string

const (
	EventText   EventKind = "text"
	EventChoose EventKind = "choose"
	EventSkip   EventKind = "skip"
	EventFile   EventKind = "file"
	EventFinish EventKind = "finish"
	EventSubmit EventKind = "submit"
	EventCancel EventKind = "cancel"
	EventEdit   EventKind = "edit"
)

// CallbackPrefix - префикс callback data кнопок мастера
const CallbackPrefix = "wz:"

// Event - действие пользователя. Value: текст, ID варианта, ссылка на файл или имя поля.
type Event struct {
	Kind  EventKind
	Value string
}

func Text(s string) Event          { return Event{Kind: EventText, Value: s} }
func Choose(id string) Event       { return Event{Kind: EventChoose, Value: id} }
func Skip() Event                  { return Event{Kind: EventSkip} }
func File(ref FileRef) Event       { return Event{Kind: EventFile, Value: ref.Encode()} }
func Finish() Event                { return Event{Kind: EventFinish} }
func Submit() Event                { return Event{Kind: EventSubmit} }
func Cancel() Event                { return Event{Kind: EventCancel} }
func EditField(field string) Event { return Event{Kind: EventEdit, Value: field} }

// Callback кодирует событие в callback data: wz:choose:42
func (e Event) Callback() string {
	if e.Value == "" {
		return CallbackPrefix + string(e.Kind)
	}
	return CallbackPrefix + string(e.Kind) + ":" + e.Value
}

// ParseCallback разбирает callback data кнопки мастера
func ParseCallback(data string) (Event, bool) {
	rest, ok := strings.CutPrefix(data, CallbackPrefix)
	if !ok {
		return Event{}, false
	}
	kind, value, _ := strings.Cut(rest, ":")
	switch EventKind(kind) {
	case EventChoose, EventEdit:
		if value == "" {
			return Event{}, false
		}
	case EventSkip, EventFinish, EventSubmit, EventCancel:
	default:
		return Event{}, false
	}
	return Event{Kind: EventKind(kind), Value: value}, true
}

// FileRef - ссылка на файл Telegram, сохранённая в черновике до отправки
type FileRef struct {
	FileID string
	Type   string
	Name   string
}

func (r FileRef) Encode() string {
	return r.Type + "|" + r.FileID + "|" + r.Name
}

func ParseFileRef(s string) (FileRef, bool) {
	parts := strings.SplitN(s, "|", 3)
	if len(parts) != 3 || parts[1] == "" {
		return FileRef{}, false
	}
	return FileRef{Type: parts[0], FileID: parts[1], Name: parts[2]}, true
}
