package keyboard

import (
	"fmt"

	"github.com/go-telegram/bot/models"
)

// PageSize - элементов на странице списка
const PageSize = 5

// Page возвращает элементы страницы [5k, min(5k+5, N)) и число страниц.
// Номер страницы приводится к допустимому диапазону.
func Page[T any](items []T, page int) ([]T, int, int) {
	pages := (len(items) + PageSize - 1) / PageSize
	if pages == 0 {
		return nil, 0, 0
	}
	page = max(0, min(page, pages-1))
	start := page * PageSize
	end := min(start+PageSize, len(items))
	return items[start:end], page, pages
}

// PaginationButtons создаёт ряд кнопок пагинации.
// "Назад" есть при page > 0, "Вперёд" при 5*page+5 < total.
func PaginationButtons(prefix string, page, total int) []models.InlineKeyboardButton {
	pages := (total + PageSize - 1) / PageSize
	if pages <= 1 {
		return nil
	}

	var buttons []models.InlineKeyboardButton
	if page > 0 {
		buttons = append(buttons, Button("⬅️", fmt.Sprintf("%s%d", prefix, page-1)))
	}
	buttons = append(buttons, Button(fmt.Sprintf("📄 %d/%d", page+1, pages), Noop))
	if page*PageSize+PageSize < total {
		buttons = append(buttons, Button("➡️", fmt.Sprintf("%s%d", prefix, page+1)))
	}
	return buttons
}

// AddPagination добавляет пагинацию к builder
func (b *Builder) AddPagination(prefix string, page, total int) *Builder {
	return b.Row(PaginationButtons(prefix, page, total)...)
}
