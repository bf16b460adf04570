// render_chart рисует диаграмму Ганта и канбан-доску по демонстрационным заданиям в PNG файлы
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Freeeeeet/study_tracker/internal/chart"
	"github.com/Freeeeeet/study_tracker/internal/model"
)

func main() {
	period := flag.String("period", "all", "период диаграммы Ганта: all, month, weeks")
	out := flag.String("out", ".", "каталог для PNG файлов")
	flag.Parse()

	p, err := chart.ParsePeriod(*period)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	today := model.Today()
	disciplines := map[int64]string{
		1: "Базы данных",
		2: "Компьютерные сети",
		3: "Операционные системы",
	}
	tasks := []model.Task{
		{ID: 1, DisciplineID: 1, Name: "ER-диаграмма", StartDate: today.AddDays(-20), EndDate: today.AddDays(-3), Status: model.StatusSubmitted},
		{ID: 2, DisciplineID: 1, Name: "Нормализация схемы", StartDate: today.AddDays(-10), EndDate: today.AddDays(-1), Status: model.StatusInProgress},
		{ID: 3, DisciplineID: 2, Name: "Анализ трафика Wireshark", StartDate: today.AddDays(-5), EndDate: today.AddDays(4), Status: model.StatusInProgress},
		{ID: 4, DisciplineID: 2, Name: "Настройка VLAN", StartDate: today, EndDate: today.AddDays(12), Status: model.StatusNotStarted},
		{ID: 5, DisciplineID: 3, Name: "Планировщик процессов", StartDate: today.AddDays(-2), EndDate: today.AddDays(6), Status: model.StatusDone},
		{ID: 6, DisciplineID: 3, Name: "Файловая система", StartDate: today.AddDays(8), EndDate: today.AddDays(30), Status: model.StatusNotStarted},
	}

	gantt, err := chart.Gantt(tasks, disciplines, p, today)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gantt:", err)
		os.Exit(1)
	}
	kanban, err := chart.Kanban(tasks, disciplines, today)
	if err != nil {
		fmt.Fprintln(os.Stderr, "kanban:", err)
		os.Exit(1)
	}

	for name, data := range map[string][]byte{"gantt.png": gantt, "kanban.png": kanban} {
		path := *out + string(os.PathSeparator) + name
		if err := os.WriteFile(path, data, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println("✅ Saved", path)
	}
}
