package keyboard

import (
	"fmt"

	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/study_tracker/internal/controller/wizard"
)

// Item - элемент списка
type Item struct {
	ID    int64
	Label string
}

// List - страница списка сущностей
func List(entity string, items []Item, page int) *models.InlineKeyboardMarkup {
	b := NewBuilder()
	pageItems, page, _ := Page(items, page)
	for _, it := range pageItems {
		b.Row(Button(it.Label, fmt.Sprintf("%s%s:%d", PrefixItem, entity, it.ID)))
	}
	b.AddPagination(fmt.Sprintf("%s%s:", PrefixList, entity), page, len(items))
	return b.Build()
}

// ItemMenu - Изменить / Удалить / Назад и дополнительные ряды
func ItemMenu(entity string, id int64, extra ...[]models.InlineKeyboardButton) *models.InlineKeyboardMarkup {
	b := NewBuilder()
	for _, row := range extra {
		b.Row(row...)
	}
	b.Row(
		Button("✏️ Изменить", fmt.Sprintf("%s%s:%d", PrefixEditMenu, entity, id)),
		Button("🗑 Удалить", fmt.Sprintf("%s%s:%d", PrefixDelete, entity, id)),
	)
	b.Row(Button(BtnBack, fmt.Sprintf("%s%s:0", PrefixList, entity)))
	return b.Build()
}

// EditFields - выбор поля для изменения
func EditFields(entity string, id int64, fields []wizard.Editable) *models.InlineKeyboardMarkup {
	b := NewBuilder()
	buttons := make([]models.InlineKeyboardButton, 0, len(fields))
	for _, f := range fields {
		buttons = append(buttons, Button(f.Label, fmt.Sprintf("%s%s:%d:%s", PrefixEditField, entity, id, f.Field)))
	}
	b.Grid(2, buttons...)
	b.Row(Button(BtnBack, fmt.Sprintf("%s%s:%d", PrefixItem, entity, id)))
	return b.Build()
}

// ConfirmDelete - подтверждение удаления
func ConfirmDelete(entity string, id int64) *models.InlineKeyboardMarkup {
	return NewBuilder().Row(
		Button("✅ Да", fmt.Sprintf("%s%s:%d", PrefixDeleteOK, entity, id)),
		Button("❌ Нет", fmt.Sprintf("%s%s:%d", PrefixItem, entity, id)),
	).Build()
}

// TaskFilters - фильтры списка заданий
func TaskFilters() *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(Button("📋 Все", PrefixFilter+FilterAll), Button("📆 На неделю", PrefixFilter+FilterWeek)).
		Row(Button("🏷 По статусу", PrefixFilter+FilterStatus), Button("📚 По дисциплине", PrefixFilter+FilterDiscipline)).
		Build()
}

// TaskExtras - файлы и подсказка ИИ в меню задания
func TaskExtras(taskID int64) [][]models.InlineKeyboardButton {
	return [][]models.InlineKeyboardButton{
		{Button("📎 Файлы", fmt.Sprintf("%s%d", PrefixFiles, taskID))},
		{
			Button("🤖 Подсказка по тексту", fmt.Sprintf("%s%d:cur", PrefixAI, taskID)),
			Button("🤖 По новому тексту", fmt.Sprintf("%s%d:new", PrefixAI, taskID)),
		},
	}
}
