package chart

import (
	"fmt"

	"github.com/fogleman/gg"

	"github.com/Freeeeeet/study_tracker/internal/model"
)

// Размеры канбан-доски
const (
	kanbanColumnWidth = 330
	kanbanGap         = 20
	kanbanHeader      = 90
	kanbanCardHeight  = 78
	kanbanCardGap     = 12
	kanbanMinCards    = 3
)

// Kanban рисует PNG доски с колонкой на каждый статус
func Kanban(tasks []model.Task, disciplines map[int64]string, today model.Date) ([]byte, error) {
	if len(tasks) == 0 {
		return nil, ErrNoTasks
	}

	columns := make(map[model.Status][]model.Task, len(model.Statuses))
	maxCards := kanbanMinCards
	for _, t := range tasks {
		columns[t.Status] = append(columns[t.Status], t)
	}
	for _, s := range model.Statuses {
		sortByStart(columns[s])
		maxCards = max(maxCards, len(columns[s]))
	}

	width := len(model.Statuses)*(kanbanColumnWidth+kanbanGap) + kanbanGap
	height := kanbanHeader + maxCards*(kanbanCardHeight+kanbanCardGap) + 2*kanbanGap
	dc := gg.NewContext(width, height)
	dc.SetColor(bgColor)
	dc.Clear()

	for i, s := range model.Statuses {
		x := float64(kanbanGap + i*(kanbanColumnWidth+kanbanGap))
		drawColumn(dc, s, columns[s], disciplines, x, float64(height-kanbanGap), today)
	}
	return encodeImage(dc)
}

func drawColumn(dc *gg.Context, s model.Status, tasks []model.Task, disciplines map[int64]string, x, bottom float64, today model.Date) {
	dc.SetColor(columnBgColor)
	dc.DrawRoundedRectangle(x, kanbanGap, kanbanColumnWidth, bottom-kanbanGap, 10)
	dc.Fill()

	dc.SetColor(StatusColor(s))
	dc.DrawRoundedRectangle(x, kanbanGap, kanbanColumnWidth, 44, 10)
	dc.Fill()

	loadFont(dc, labelFontSize, FontBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(fmt.Sprintf("%s (%d)", s.Label(), len(tasks)), x+kanbanColumnWidth/2, kanbanGap+22, 0.5, 0.35)

	for i, t := range tasks {
		y := float64(kanbanHeader + i*(kanbanCardHeight+kanbanCardGap))
		drawCard(dc, t, disciplines[t.DisciplineID], x+10, y, today)
	}
}

func drawCard(dc *gg.Context, t model.Task, discipline string, x, y float64, today model.Date) {
	w := float64(kanbanColumnWidth - 20)

	dc.SetColor(shadowColor)
	dc.DrawRoundedRectangle(x+2, y+2, w, kanbanCardHeight, 6)
	dc.Fill()
	dc.SetColor(cardColor)
	dc.DrawRoundedRectangle(x, y, w, kanbanCardHeight, 6)
	dc.Fill()

	loadFont(dc, cardFontSize, FontBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(fit(dc, t.Name, w-20), x+10, y+20, 0, 0.35)

	loadFont(dc, dateFontSize, FontRegular)
	dc.SetColor(mutedColor)
	if discipline != "" {
		dc.DrawStringAnchored(fit(dc, discipline, w-20), x+10, y+43, 0, 0.35)
	}
	if t.Overdue(today) {
		dc.SetColor(overdueColor)
	}
	dc.DrawStringAnchored("до "+t.EndDate.Format("02.01.2006"), x+10, y+64, 0, 0.35)
}
