package wizard

import (
	"fmt"
	"strconv"

	"github.com/Freeeeeet/study_tracker/internal/controller/state"
	"github.com/Freeeeeet/study_tracker/internal/model"
)

const labelSuffix = ":label"

// Draft - только для чтения представление черновика сессии
type Draft struct {
	fields map[string]string
	lists  map[string][]string
}

func DraftOf(s *state.Session) Draft {
	return Draft{fields: s.Fields, lists: s.Lists}
}

// NewDraft строит черновик из готовых значений
func NewDraft(fields map[string]string) Draft {
	return Draft{fields: fields}
}

func (d Draft) Has(field string) bool {
	v, ok := d.fields[field]
	return ok && v != ""
}

func (d Draft) String(field string) string {
	return d.fields[field]
}

// Label - подпись выбранного варианта или само значение
func (d Draft) Label(field string) string {
	if l, ok := d.fields[field+labelSuffix]; ok {
		return l
	}
	return d.fields[field]
}

// Opt возвращает nil для пропущенного поля
func (d Draft) Opt(field string) *string {
	if !d.Has(field) {
		return nil
	}
	v := d.fields[field]
	return &v
}

func (d Draft) List(field string) []string {
	return d.lists[field]
}

func (d Draft) ID(field string) (int64, error) {
	id, err := strconv.ParseInt(d.fields[field], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("draft field %s: %w", field, err)
	}
	return id, nil
}

func (d Draft) OptID(field string) (*int64, error) {
	if !d.Has(field) {
		return nil, nil
	}
	id, err := d.ID(field)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (d Draft) Int(field string) (int, error) {
	n, err := strconv.Atoi(d.fields[field])
	if err != nil {
		return 0, fmt.Errorf("draft field %s: %w", field, err)
	}
	return n, nil
}

func (d Draft) Date(field string) (model.Date, error) {
	return model.ParseDate(d.fields[field])
}

func (d Draft) Clock(field string) (model.ClockTime, error) {
	return model.ParseClockTime(d.fields[field])
}
