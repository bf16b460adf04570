package chart

import (
	"fmt"
	"time"

	"github.com/fogleman/gg"

	"github.com/Freeeeeet/study_tracker/internal/model"
)

// Размеры диаграммы Ганта
const (
	ganttWidth      = 1400
	ganttHeader     = 110
	ganttFooter     = 70
	ganttLabelWidth = 380
	ganttRowHeight  = 42
	ganttBarPadding = 8
	ganttPaddingX   = 30
	maxDateLabels   = 14
)

const (
	titleFontSize  = 26.0
	labelFontSize  = 17.0
	dateFontSize   = 14.0
	legendFontSize = 15.0
	cardFontSize   = 16.0
)

var periodTitles = map[Period]string{
	PeriodAll:      "Все задания",
	PeriodMonth:    "Задания текущего месяца",
	PeriodTwoWeeks: "Задания на две недели",
}

// Gantt рисует PNG диаграммы Ганта. today - текущая дата, отмечается линией.
func Gantt(tasks []model.Task, disciplines map[int64]string, p Period, today model.Date) ([]byte, error) {
	selected := Select(tasks, p, today)
	if len(selected) == 0 {
		return nil, ErrNoTasks
	}
	sortByStart(selected)

	from, to := span(selected)
	if p == PeriodTwoWeeks {
		from, to = today.AddDays(-7), today.AddDays(7)
	}
	days := int(to.Sub(from.Time).Hours()/24) + 1

	height := ganttHeader + ganttFooter + len(selected)*ganttRowHeight
	dc := gg.NewContext(ganttWidth, height)
	dc.SetColor(bgColor)
	dc.Clear()

	chartX := float64(ganttLabelWidth)
	chartW := float64(ganttWidth - ganttLabelWidth - ganttPaddingX)
	dayW := chartW / float64(days)
	xOf := func(d model.Date) float64 {
		return chartX + d.Sub(from.Time).Hours()/24*dayW
	}

	loadFont(dc, titleFontSize, FontBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(periodTitles[p], ganttPaddingX, 40, 0, 0.5)

	drawDateAxis(dc, from, days, chartX, dayW, float64(height-ganttFooter))

	for i, t := range selected {
		y := float64(ganttHeader + i*ganttRowHeight)
		drawGanttRow(dc, t, label(t, disciplines), y, xOf, dayW, today, chartX, chartX+chartW)
	}

	if !today.Before(from) && !today.After(to) {
		x := xOf(today) + dayW/2
		dc.SetColor(todayColor)
		dc.SetLineWidth(2)
		dc.SetDash(8, 6)
		dc.DrawLine(x, ganttHeader-20, x, float64(height-ganttFooter))
		dc.Stroke()
		dc.SetDash()
	}

	drawLegend(dc, ganttPaddingX, float64(height-ganttFooter/2))
	return encodeImage(dc)
}

// span возвращает самую раннюю дату начала и самый поздний срок
func span(tasks []model.Task) (model.Date, model.Date) {
	from, to := tasks[0].StartDate, tasks[0].EndDate
	for _, t := range tasks[1:] {
		if t.StartDate.Before(from) {
			from = t.StartDate
		}
		if t.EndDate.After(to) {
			to = t.EndDate
		}
	}
	if to.Before(from) {
		to = from
	}
	return from, to
}

// drawDateAxis рисует подписи дат и вертикальную сетку
func drawDateAxis(dc *gg.Context, from model.Date, days int, x, dayW, bottom float64) {
	step := 1
	for days/step > maxDateLabels {
		step++
	}

	loadFont(dc, dateFontSize, FontRegular)
	dc.SetLineWidth(0.5)
	for i := 0; i < days; i += step {
		d := from.AddDays(i)
		dx := x + float64(i)*dayW
		dc.SetColor(gridColor)
		dc.DrawLine(dx, ganttHeader-10, dx, bottom)
		dc.Stroke()

		dc.SetColor(mutedColor)
		dc.DrawStringAnchored(d.Format("02.01"), dx+dayW/2, ganttHeader-25, 0.5, 0.5)
		if d.Weekday() == time.Monday || i == 0 {
			dc.DrawStringAnchored(shortWeekday(d.Weekday()), dx+dayW/2, ganttHeader-45, 0.5, 0.5)
		}
	}
}

// drawGanttRow рисует подпись и полосу задания, обрезанную по границам [left, right]
func drawGanttRow(dc *gg.Context, t model.Task, text string, y float64, xOf func(model.Date) float64, dayW float64, today model.Date, left, right float64) {
	loadFont(dc, labelFontSize, FontRegular)
	dc.SetColor(textColor)
	if t.Overdue(today) {
		dc.SetColor(overdueColor)
	}
	dc.DrawStringAnchored(fit(dc, text, ganttLabelWidth-ganttPaddingX-15), ganttPaddingX, y+ganttRowHeight/2, 0, 0.35)

	start := max(xOf(t.StartDate), left)
	end := min(xOf(t.EndDate)+dayW, right)
	if end < start+dayW {
		end = start + dayW
	}
	barY := y + ganttBarPadding
	barH := float64(ganttRowHeight - 2*ganttBarPadding)

	dc.SetColor(shadowColor)
	dc.DrawRoundedRectangle(start+2, barY+2, end-start, barH, 6)
	dc.Fill()
	dc.SetColor(StatusColor(t.Status))
	dc.DrawRoundedRectangle(start, barY, end-start, barH, 6)
	dc.Fill()

	period := fmt.Sprintf("%s – %s", t.StartDate.Format("02.01"), t.EndDate.Format("02.01"))
	loadFont(dc, dateFontSize, FontRegular)
	if w, _ := dc.MeasureString(period); w+10 < end-start {
		dc.SetColor(textColor)
		dc.DrawStringAnchored(period, (start+end)/2, barY+barH/2, 0.5, 0.35)
	}
}

func shortWeekday(w time.Weekday) string {
	names := [...]string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	return names[w]
}
