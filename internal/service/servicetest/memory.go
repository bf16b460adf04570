// Package servicetest содержит хранилища в памяти для тестов сервисов и HTTP-обработчиков
package servicetest

import (
	"context"
	"sort"
	"sync"

	"github.com/Freeeeeet/study_tracker/internal/model"
	"github.com/Freeeeeet/study_tracker/internal/service"
	"go.uber.org/zap"
)

// Repos - набор связанных хранилищ с каскадным удалением как в схеме БД
type Repos struct {
	mu sync.Mutex

	Users       *Users
	Teachers    *Teachers
	Disciplines *Disciplines
	Tasks       *Tasks
	Files       *Files
	Lessons     *Lessons
}

func NewRepos() *Repos {
	r := &Repos{}
	r.Users = &Users{r: r, byID: map[int64]*model.User{}}
	r.Teachers = &Teachers{r: r, byID: map[int64]*model.Teacher{}}
	r.Disciplines = &Disciplines{r: r, byID: map[int64]*model.Discipline{}}
	r.Tasks = &Tasks{r: r, byID: map[int64]*model.Task{}}
	r.Files = &Files{r: r, byID: map[int64]*model.File{}}
	r.Lessons = &Lessons{r: r, byID: map[int64]*model.Lesson{}}
	return r
}

// ========================
// Users
// ========================

type Users struct {
	r      *Repos
	byID   map[int64]*model.User
	nextID int64
}

func (u *Users) Create(_ context.Context, user *model.User) error {
	u.r.mu.Lock()
	defer u.r.mu.Unlock()
	u.nextID++
	user.ID = u.nextID
	c := *user
	u.byID[c.ID] = &c
	return nil
}

func (u *Users) GetByTelegramID(_ context.Context, telegramID int64) (*model.User, error) {
	u.r.mu.Lock()
	defer u.r.mu.Unlock()
	for _, user := range u.byID {
		if user.TelegramID == telegramID {
			c := *user
			return &c, nil
		}
	}
	return nil, nil
}

func (u *Users) GetByID(_ context.Context, id int64) (*model.User, error) {
	u.r.mu.Lock()
	defer u.r.mu.Unlock()
	if user, ok := u.byID[id]; ok {
		c := *user
		return &c, nil
	}
	return nil, nil
}

func (u *Users) UpdateProfile(_ context.Context, telegramID int64, isPetrSUStudent bool, group string) (bool, error) {
	u.r.mu.Lock()
	defer u.r.mu.Unlock()
	for _, user := range u.byID {
		if user.TelegramID == telegramID {
			user.IsPetrSUStudent = isPetrSUStudent
			user.Group = group
			return true, nil
		}
	}
	return false, nil
}

// ========================
// Teachers
// ========================

type Teachers struct {
	r      *Repos
	byID   map[int64]*model.Teacher
	nextID int64
}

func (t *Teachers) Create(_ context.Context, teacher *model.Teacher) error {
	t.r.mu.Lock()
	defer t.r.mu.Unlock()
	t.nextID++
	teacher.ID = t.nextID
	c := *teacher
	t.byID[c.ID] = &c
	return nil
}

func (t *Teachers) GetByID(_ context.Context, id int64) (*model.Teacher, error) {
	t.r.mu.Lock()
	defer t.r.mu.Unlock()
	if teacher, ok := t.byID[id]; ok {
		c := *teacher
		return &c, nil
	}
	return nil, nil
}

func (t *Teachers) ListByUser(_ context.Context, userID int64) ([]model.Teacher, error) {
	t.r.mu.Lock()
	defer t.r.mu.Unlock()
	res := make([]model.Teacher, 0)
	for _, teacher := range t.byID {
		if teacher.UserID == userID {
			res = append(res, *teacher)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (t *Teachers) Update(_ context.Context, id int64, edit model.TeacherEdit) (bool, error) {
	t.r.mu.Lock()
	defer t.r.mu.Unlock()
	teacher, ok := t.byID[id]
	if !ok {
		return false, nil
	}
	switch e := edit.(type) {
	case model.TeacherName:
		teacher.Name = string(e)
	case model.TeacherPhone:
		teacher.PhoneNumber = e.Value
	case model.TeacherEmail:
		teacher.Email = e.Value
	case model.TeacherSocial:
		teacher.SocialPageLink = e.Value
	case model.TeacherClassroom:
		teacher.Classroom = e.Value
	}
	return true, nil
}

func (t *Teachers) Delete(_ context.Context, id int64) (bool, error) {
	t.r.mu.Lock()
	defer t.r.mu.Unlock()
	if _, ok := t.byID[id]; !ok {
		return false, nil
	}
	delete(t.byID, id)
	for _, d := range t.r.Disciplines.byID {
		if d.TeacherID != nil && *d.TeacherID == id {
			d.TeacherID = nil
		}
	}
	return true, nil
}

// ========================
// Disciplines
// ========================

type Disciplines struct {
	r      *Repos
	byID   map[int64]*model.Discipline
	nextID int64
}

func (d *Disciplines) Create(_ context.Context, discipline *model.Discipline) error {
	d.r.mu.Lock()
	defer d.r.mu.Unlock()
	d.nextID++
	discipline.ID = d.nextID
	c := *discipline
	d.byID[c.ID] = &c
	return nil
}

func (d *Disciplines) GetByID(_ context.Context, id int64) (*model.Discipline, error) {
	d.r.mu.Lock()
	defer d.r.mu.Unlock()
	if discipline, ok := d.byID[id]; ok {
		c := *discipline
		return &c, nil
	}
	return nil, nil
}

func (d *Disciplines) ListByUser(_ context.Context, userID int64) ([]model.Discipline, error) {
	d.r.mu.Lock()
	defer d.r.mu.Unlock()
	res := make([]model.Discipline, 0)
	for _, discipline := range d.byID {
		if discipline.UserID == userID {
			res = append(res, *discipline)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (d *Disciplines) Update(_ context.Context, id int64, edit model.DisciplineEdit) (bool, error) {
	d.r.mu.Lock()
	defer d.r.mu.Unlock()
	discipline, ok := d.byID[id]
	if !ok {
		return false, nil
	}
	switch e := edit.(type) {
	case model.DisciplineName:
		discipline.Name = string(e)
	case model.DisciplineTeacher:
		discipline.TeacherID = e.Value
	}
	return true, nil
}

func (d *Disciplines) Delete(_ context.Context, id int64) (bool, error) {
	d.r.mu.Lock()
	defer d.r.mu.Unlock()
	if _, ok := d.byID[id]; !ok {
		return false, nil
	}
	delete(d.byID, id)
	for taskID, t := range d.r.Tasks.byID {
		if t.DisciplineID == id {
			d.r.Tasks.deleteLocked(taskID)
		}
	}
	for lessonID, l := range d.r.Lessons.byID {
		if l.DisciplineID == id {
			delete(d.r.Lessons.byID, lessonID)
		}
	}
	return true, nil
}

// ========================
// Tasks
// ========================

type Tasks struct {
	r      *Repos
	byID   map[int64]*model.Task
	nextID int64
}

func (t *Tasks) Create(_ context.Context, task *model.Task) error {
	t.r.mu.Lock()
	defer t.r.mu.Unlock()
	t.nextID++
	task.ID = t.nextID
	c := *task
	t.byID[c.ID] = &c
	return nil
}

func (t *Tasks) GetByID(_ context.Context, id int64) (*model.Task, error) {
	t.r.mu.Lock()
	defer t.r.mu.Unlock()
	if task, ok := t.byID[id]; ok {
		c := *task
		return &c, nil
	}
	return nil, nil
}

func (t *Tasks) ListByUser(_ context.Context, userID int64) ([]model.Task, error) {
	t.r.mu.Lock()
	defer t.r.mu.Unlock()
	res := make([]model.Task, 0)
	for _, task := range t.byID {
		if task.UserID == userID {
			res = append(res, *task)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (t *Tasks) Update(_ context.Context, id int64, edit model.TaskEdit) (bool, error) {
	t.r.mu.Lock()
	defer t.r.mu.Unlock()
	task, ok := t.byID[id]
	if !ok {
		return false, nil
	}
	switch e := edit.(type) {
	case model.TaskDiscipline:
		task.DisciplineID = int64(e)
	case model.TaskName:
		task.Name = string(e)
	case model.TaskText:
		task.TaskText = e.Value
	case model.TaskLink:
		task.TaskLink = e.Value
	case model.TaskStartDate:
		task.StartDate = model.Date(e)
	case model.TaskEndDate:
		task.EndDate = model.Date(e)
	case model.TaskExtraInfo:
		task.ExtraInfo = e.Value
	case model.TaskStatus:
		task.Status = model.Status(e)
	}
	return true, nil
}

func (t *Tasks) Delete(_ context.Context, id int64) (bool, error) {
	t.r.mu.Lock()
	defer t.r.mu.Unlock()
	if _, ok := t.byID[id]; !ok {
		return false, nil
	}
	t.deleteLocked(id)
	return true, nil
}

func (t *Tasks) deleteLocked(id int64) {
	delete(t.byID, id)
	for fileID, f := range t.r.Files.byID {
		if f.TaskID == id {
			delete(t.r.Files.byID, fileID)
		}
	}
}

func (t *Tasks) DeadlinesOn(_ context.Context, day model.Date) ([]model.Deadline, error) {
	t.r.mu.Lock()
	defer t.r.mu.Unlock()
	res := make([]model.Deadline, 0)
	for _, task := range t.byID {
		if !task.EndDate.Equal(day.Time) || task.Status == model.StatusSubmitted {
			continue
		}
		user, ok := t.r.Users.byID[task.UserID]
		if !ok {
			continue
		}
		res = append(res, model.Deadline{TelegramID: user.TelegramID, TaskID: task.ID, Name: task.Name, EndDate: task.EndDate})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].TaskID < res[j].TaskID })
	return res, nil
}

// ========================
// Files
// ========================

type Files struct {
	r      *Repos
	byID   map[int64]*model.File
	nextID int64
}

func (f *Files) Create(_ context.Context, file *model.File) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	f.nextID++
	file.ID = f.nextID
	c := *file
	f.byID[c.ID] = &c
	return nil
}

func (f *Files) ListByTask(_ context.Context, taskID int64) ([]model.File, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	res := make([]model.File, 0)
	for _, file := range f.byID {
		if file.TaskID == taskID {
			res = append(res, *file)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (f *Files) DeleteByTask(_ context.Context, taskID int64) (int64, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	var n int64
	for id, file := range f.byID {
		if file.TaskID == taskID {
			delete(f.byID, id)
			n++
		}
	}
	return n, nil
}

// ========================
// Lessons
// ========================

type Lessons struct {
	r      *Repos
	byID   map[int64]*model.Lesson
	nextID int64
}

func (l *Lessons) Create(_ context.Context, lesson *model.Lesson) error {
	l.r.mu.Lock()
	defer l.r.mu.Unlock()
	l.nextID++
	lesson.ID = l.nextID
	c := *lesson
	l.byID[c.ID] = &c
	return nil
}

func (l *Lessons) GetByID(_ context.Context, id int64) (*model.Lesson, error) {
	l.r.mu.Lock()
	defer l.r.mu.Unlock()
	if lesson, ok := l.byID[id]; ok {
		c := *lesson
		return &c, nil
	}
	return nil, nil
}

func (l *Lessons) ListByUser(_ context.Context, userID int64) ([]model.Lesson, error) {
	l.r.mu.Lock()
	defer l.r.mu.Unlock()
	res := make([]model.Lesson, 0)
	for _, lesson := range l.byID {
		if lesson.UserID == userID {
			res = append(res, *lesson)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (l *Lessons) Update(_ context.Context, id int64, edit model.LessonEdit) (bool, error) {
	l.r.mu.Lock()
	defer l.r.mu.Unlock()
	lesson, ok := l.byID[id]
	if !ok {
		return false, nil
	}
	switch e := edit.(type) {
	case model.LessonDiscipline:
		lesson.DisciplineID = int64(e)
	case model.LessonClassroom:
		lesson.Classroom = string(e)
	case model.LessonDate:
		lesson.Date = model.Date(e)
	case model.LessonStartTime:
		lesson.StartTime = model.ClockTime(e)
	case model.LessonEndTime:
		lesson.EndTime = model.ClockTime(e)
	case model.LessonPeriodicity:
		lesson.PeriodicityDays = int(e)
	}
	return true, nil
}

func (l *Lessons) Delete(_ context.Context, id int64) (bool, error) {
	l.r.mu.Lock()
	defer l.r.mu.Unlock()
	if _, ok := l.byID[id]; !ok {
		return false, nil
	}
	delete(l.byID, id)
	return true, nil
}

// Services собирает сервисы поверх хранилищ в памяти
func (r *Repos) Services(logger *zap.Logger) *service.Services {
	return service.New(r.Users, r.Teachers, r.Disciplines, r.Tasks, r.Files, r.Lessons, logger)
}
