package wizard

import (
	"context"
	"errors"
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/study_tracker/internal/client/backend"
	"github.com/Freeeeeet/study_tracker/internal/client/petrsu"
	"github.com/Freeeeeet/study_tracker/internal/controller/state"
	"github.com/Freeeeeet/study_tracker/internal/model"
)

type fakeBackend struct {
	group       string
	teachers    []model.Teacher
	disciplines []model.Discipline

	users          []bool
	groupChanges   []string
	addedTeachers  []backend.NewTeacher
	addedDisc      []backend.NewDiscipline
	addedLabs      []backend.NewLab
	addedFiles     []backend.NewFile
	addedLessons   []backend.NewLesson
	teacherEdits   []model.TeacherEdit
	disciplineEdit []model.DisciplineEdit
	labEdits       []model.TaskEdit
	lessonEdits    []model.LessonEdit
	failSubmit     error
}

func (f *fakeBackend) calls() int {
	return len(f.users) + len(f.groupChanges) + len(f.addedTeachers) + len(f.addedDisc) +
		len(f.addedLabs) + len(f.addedFiles) + len(f.addedLessons) + len(f.teacherEdits) +
		len(f.disciplineEdit) + len(f.labEdits) + len(f.lessonEdits)
}

func (f *fakeBackend) AddUser(_ context.Context, _ int64, isStudent bool, group string) error {
	f.users = append(f.users, isStudent)
	f.groupChanges = append(f.groupChanges, group)
	return nil
}

func (f *fakeBackend) ChangeUserGroup(_ context.Context, _ int64, group string) error {
	f.groupChanges = append(f.groupChanges, group)
	return nil
}

func (f *fakeBackend) ChangeUserStatus(_ context.Context, _ int64, isStudent bool, group string) error {
	f.users = append(f.users, isStudent)
	f.groupChanges = append(f.groupChanges, group)
	return nil
}

func (f *fakeBackend) UserGroup(context.Context, int64) (string, error) { return f.group, nil }

func (f *fakeBackend) AddTeacher(_ context.Context, t backend.NewTeacher) (int64, error) {
	f.addedTeachers = append(f.addedTeachers, t)
	return 1, nil
}

func (f *fakeBackend) Teachers(context.Context, int64) ([]model.Teacher, error) {
	return f.teachers, nil
}

func (f *fakeBackend) EditTeacher(_ context.Context, _ int64, e model.TeacherEdit) error {
	f.teacherEdits = append(f.teacherEdits, e)
	return nil
}

func (f *fakeBackend) AddDiscipline(_ context.Context, d backend.NewDiscipline) (int64, error) {
	if f.failSubmit != nil {
		return 0, f.failSubmit
	}
	f.addedDisc = append(f.addedDisc, d)
	return 1, nil
}

func (f *fakeBackend) Disciplines(context.Context, int64) ([]model.Discipline, error) {
	return f.disciplines, nil
}

func (f *fakeBackend) EditDiscipline(_ context.Context, _ int64, e model.DisciplineEdit) error {
	f.disciplineEdit = append(f.disciplineEdit, e)
	return nil
}

func (f *fakeBackend) AddLab(_ context.Context, lab backend.NewLab) (int64, error) {
	f.addedLabs = append(f.addedLabs, lab)
	return 10, nil
}

func (f *fakeBackend) EditLab(_ context.Context, _ int64, e model.TaskEdit) error {
	f.labEdits = append(f.labEdits, e)
	return nil
}

func (f *fakeBackend) AddFile(_ context.Context, file backend.NewFile) (int64, error) {
	f.addedFiles = append(f.addedFiles, file)
	return 1, nil
}

func (f *fakeBackend) AddLesson(_ context.Context, l backend.NewLesson) (int64, error) {
	f.addedLessons = append(f.addedLessons, l)
	return 1, nil
}

func (f *fakeBackend) EditLesson(_ context.Context, _ int64, e model.LessonEdit) error {
	f.lessonEdits = append(f.lessonEdits, e)
	return nil
}

type fakeSchedule struct{}

func (fakeSchedule) GroupExists(_ context.Context, group string) (bool, error) {
	return group == "22207", nil
}

func (fakeSchedule) Schedule(context.Context, string) (*petrsu.Schedule, error) {
	return &petrsu.Schedule{
		Numerator: [][]petrsu.Lesson{{
			{Title: "Алгоритмы", Lecturer: "Иванов И.И."},
			{Title: "Базы данных", Lecturer: "Петров П.П."},
		}},
	}, nil
}

var testUser = User{TelegramID: 100, ID: 3}

func newTestEngine(t *testing.T, api *fakeBackend) *Engine {
	t.Helper()
	deps := Deps{
		API:    api,
		PetrSU: fakeSchedule{},
		Fetch: func(_ context.Context, fileID string) ([]byte, error) {
			if fileID == "broken" {
				return nil, errors.New("telegram unavailable")
			}
			return []byte("data:" + fileID), nil
		},
		Logger: zap.NewNop(),
	}
	e, err := NewEngine(zap.NewNop(), Definitions(deps)...)
	require.NoError(t, err)
	return e
}

func TestDisciplineManualScenario(t *testing.T) {
	ctx := context.Background()
	api := &fakeBackend{}
	e := newTestEngine(t, api)
	s := state.NewSession()

	r := e.Start(ctx, testUser, s, FlowDiscipline)
	require.Equal(t, ReplyPrompt, r.Kind)
	require.Len(t, r.Options, 1)
	assert.Equal(t, SourceManual, r.Options[0].ID)

	r = e.Handle(ctx, testUser, s, Choose(SourceManual))
	require.Equal(t, ReplyPrompt, r.Kind)
	assert.Equal(t, state.State("discipline:name"), s.State)

	r = e.Handle(ctx, testUser, s, Text("Алгоритмы"))
	require.Equal(t, ReplyPrompt, r.Kind)
	assert.Equal(t, "teacher_id", r.Step.Field)

	r = e.Handle(ctx, testUser, s, Skip())
	require.Equal(t, ReplyConfirm, r.Kind)
	assert.Contains(t, r.Summary, "Алгоритмы")
	assert.Zero(t, api.calls())

	r = e.Handle(ctx, testUser, s, Submit())
	require.Equal(t, ReplyDone, r.Kind)

	require.Len(t, api.addedDisc, 1)
	assert.Equal(t, backend.NewDiscipline{UserID: 3, TeacherID: nil, Name: "Алгоритмы", IsFromAPI: false}, api.addedDisc[0])
	assert.Equal(t, 1, api.calls())
	assert.Equal(t, state.StateIdle, s.State)
	assert.Empty(t, s.Fields)
}

func TestTeacherInvalidPhone(t *testing.T) {
	ctx := context.Background()
	api := &fakeBackend{}
	e := newTestEngine(t, api)
	s := state.NewSession()

	e.Start(ctx, testUser, s, FlowTeacher)
	r := e.Handle(ctx, testUser, s, Text("Иванов Иван Иванович"))
	require.Equal(t, ReplyPrompt, r.Kind)

	r = e.Handle(ctx, testUser, s, Text("12345"))
	require.Equal(t, ReplyInvalid, r.Kind)
	assert.Equal(t, state.State("teacher:phone_number"), s.State)
	assert.Equal(t, "phone_number", r.Step.Field)
	assert.Contains(t, r.Err.Error(), "+7XXXXXXXXXX")

	var inputErr *InputError
	assert.ErrorAs(t, r.Err, &inputErr)
	assert.Zero(t, api.calls())
}

func completeTeacher(t *testing.T, e *Engine, s *state.Session) {
	t.Helper()
	ctx := context.Background()
	e.Start(ctx, testUser, s, FlowTeacher)
	for _, ev := range []Event{
		Text("Иванов Иван Иванович"),
		Text("+79001234567"),
		Text("ivanov@petrsu.ru"),
		Skip(),
		Text("245"),
	} {
		r := e.Handle(ctx, testUser, s, ev)
		require.NotEqual(t, ReplyInvalid, r.Kind, "event %v: %v", ev, r.Err)
	}
	require.Equal(t, state.State("teacher:confirm"), s.State)
}

func TestCancelAtConfirmation(t *testing.T) {
	api := &fakeBackend{}
	e := newTestEngine(t, api)
	s := state.NewSession()
	completeTeacher(t, e, s)

	r := e.Handle(context.Background(), testUser, s, Cancel())
	assert.Equal(t, ReplyCancelled, r.Kind)
	assert.Equal(t, state.StateIdle, s.State)
	assert.Empty(t, s.Fields)
	assert.Zero(t, api.calls())
}

func TestEditFromConfirmationChangesOnlyTarget(t *testing.T) {
	ctx := context.Background()
	api := &fakeBackend{}
	e := newTestEngine(t, api)
	s := state.NewSession()
	completeTeacher(t, e, s)

	r := e.Handle(ctx, testUser, s, EditField("email"))
	require.Equal(t, ReplyPrompt, r.Kind)
	assert.True(t, r.Editing)
	assert.Equal(t, "email", r.Step.Field)

	r = e.Handle(ctx, testUser, s, Text("new@petrsu.ru"))
	require.Equal(t, ReplyConfirm, r.Kind)

	r = e.Handle(ctx, testUser, s, Submit())
	require.Equal(t, ReplyDone, r.Kind)

	require.Len(t, api.addedTeachers, 1)
	got := api.addedTeachers[0]
	assert.Equal(t, "Иванов Иван Иванович", got.Name)
	assert.Equal(t, "+79001234567", *got.PhoneNumber)
	assert.Equal(t, "new@petrsu.ru", *got.Email)
	assert.Nil(t, got.SocialPageLink)
	assert.Equal(t, "245", *got.Classroom)
}

func TestEditUnknownField(t *testing.T) {
	api := &fakeBackend{}
	e := newTestEngine(t, api)
	s := state.NewSession()
	completeTeacher(t, e, s)

	r := e.Handle(context.Background(), testUser, s, EditField("user_id"))
	assert.Equal(t, ReplyInvalid, r.Kind)
	assert.ErrorIs(t, r.Err, ErrNotEditable)
	assert.Equal(t, state.State("teacher:confirm"), s.State)
}

func TestSubmitFailureKeepsConfirmation(t *testing.T) {
	ctx := context.Background()
	api := &fakeBackend{failSubmit: &backend.APIError{Status: 400, Detail: "Дисциплина уже существует"}}
	e := newTestEngine(t, api)
	s := state.NewSession()

	e.Start(ctx, testUser, s, FlowDiscipline)
	e.Handle(ctx, testUser, s, Choose(SourceManual))
	e.Handle(ctx, testUser, s, Text("Алгоритмы"))
	e.Handle(ctx, testUser, s, Skip())

	r := e.Handle(ctx, testUser, s, Submit())
	require.Equal(t, ReplyFailed, r.Kind)
	assert.Equal(t, "Дисциплина уже существует", r.Err.Error())
	assert.Equal(t, state.State("discipline:confirm"), s.State)
	assert.Equal(t, "Алгоритмы", s.Fields["name"])
}

func TestStaleAndUnexpectedEvents(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, &fakeBackend{})
	s := state.NewSession()

	e.Start(ctx, testUser, s, FlowDiscipline)

	r := e.Handle(ctx, testUser, s, Choose("deadbeef"))
	assert.Equal(t, ReplyInvalid, r.Kind)
	assert.ErrorIs(t, r.Err, ErrStaleOption)

	r = e.Handle(ctx, testUser, s, Text("Алгоритмы"))
	assert.Equal(t, ReplyInvalid, r.Kind)
	assert.ErrorIs(t, r.Err, ErrUnexpected)
	assert.Equal(t, state.State("discipline:source"), s.State)

	idle := state.NewSession()
	assert.Equal(t, ReplyIgnored, e.Handle(ctx, testUser, idle, Text("привет")).Kind)
}

func TestDisciplineFromSchedule(t *testing.T) {
	ctx := context.Background()
	api := &fakeBackend{
		group:       "22207",
		disciplines: []model.Discipline{{ID: 1, Name: "Алгоритмы"}},
		teachers:    []model.Teacher{{ID: 4, Name: "Петров Пётр Петрович"}},
	}
	e := newTestEngine(t, api)
	s := state.NewSession()

	r := e.Start(ctx, testUser, s, FlowDiscipline)
	require.Len(t, r.Options, 2)

	r = e.Handle(ctx, testUser, s, Choose(SourceAPI))
	require.Equal(t, ReplyPrompt, r.Kind)
	require.Len(t, r.Options, 1)
	assert.Equal(t, "Базы данных", r.Options[0].Label)
	assert.Equal(t, StableID("Базы данных"), r.Options[0].ID)

	e.Handle(ctx, testUser, s, Choose(StableID("Базы данных")))
	r = e.Handle(ctx, testUser, s, Choose("4"))
	require.Equal(t, ReplyConfirm, r.Kind)
	assert.Contains(t, r.Summary, "Петров Пётр Петрович")

	e.Handle(ctx, testUser, s, Submit())
	require.Len(t, api.addedDisc, 1)
	teacherID := int64(4)
	assert.Equal(t, backend.NewDiscipline{UserID: 3, TeacherID: &teacherID, Name: "Базы данных", IsFromAPI: true}, api.addedDisc[0])
}

func TestTaskWithFiles(t *testing.T) {
	ctx := context.Background()
	api := &fakeBackend{disciplines: []model.Discipline{{ID: 2, Name: "ОС"}}}
	e := newTestEngine(t, api)
	s := state.NewSession()

	e.Start(ctx, testUser, s, FlowTask)
	for _, ev := range []Event{
		Choose("2"),
		Text("ЛР1"),
		Skip(),
		File(FileRef{FileID: "f1", Type: "document", Name: "task.pdf"}),
		File(FileRef{FileID: "broken", Type: "photo", Name: "photo.jpg"}),
		File(FileRef{FileID: "f3", Type: "audio", Name: "lecture.mp3"}),
		Finish(),
		Skip(),
		Choose("2025-02-10"),
	} {
		r := e.Handle(ctx, testUser, s, ev)
		require.NotEqual(t, ReplyInvalid, r.Kind, "event %v: %v", ev, r.Err)
	}

	r := e.Handle(ctx, testUser, s, Choose("2025-02-01"))
	require.Equal(t, ReplyInvalid, r.Kind)
	assert.Equal(t, state.State("task:end_date"), s.State)

	e.Handle(ctx, testUser, s, Text("20.02.2025"))
	r = e.Handle(ctx, testUser, s, Skip())
	require.Equal(t, ReplyConfirm, r.Kind, "status step is skipped on create")
	assert.Contains(t, r.Summary, "Файлы: 3")

	r = e.Handle(ctx, testUser, s, Submit())
	require.Equal(t, ReplyDone, r.Kind)

	require.Len(t, api.addedLabs, 1)
	lab := api.addedLabs[0]
	assert.Equal(t, int64(2), lab.DisciplineID)
	assert.Nil(t, lab.TaskText)
	assert.Equal(t, "2025-02-20", lab.EndDate.String())
	assert.Equal(t, model.StatusNotStarted, lab.Status)

	require.Len(t, api.addedFiles, 2)
	assert.Equal(t, "task.pdf", api.addedFiles[0].FileName)
	assert.Equal(t, model.FileTypeAudio, api.addedFiles[1].FileType)
	assert.Equal(t, int64(10), api.addedFiles[1].TaskID)
}

func TestLessonWithPeriodicity(t *testing.T) {
	ctx := context.Background()
	api := &fakeBackend{disciplines: []model.Discipline{{ID: 2, Name: "ОС"}}}
	e := newTestEngine(t, api)
	s := state.NewSession()

	e.Start(ctx, testUser, s, FlowLesson)
	for _, ev := range []Event{
		Choose("2"), Text("301"), Choose("2025-02-10"),
		Choose("10"), Choose("15"),
		Choose("11"),
	} {
		r := e.Handle(ctx, testUser, s, ev)
		require.NotEqual(t, ReplyInvalid, r.Kind, "event %v: %v", ev, r.Err)
	}

	r := e.Handle(ctx, testUser, s, Text("61"))
	require.Equal(t, ReplyInvalid, r.Kind)
	r = e.Handle(ctx, testUser, s, Text("50"))
	require.Equal(t, ReplyPrompt, r.Kind)

	e.Handle(ctx, testUser, s, Choose(Yes))
	e.Handle(ctx, testUser, s, Choose(UnitWeek))
	r = e.Handle(ctx, testUser, s, Text("2"))
	require.Equal(t, ReplyConfirm, r.Kind)
	assert.Contains(t, r.Summary, "каждые 2 недели")

	e.Handle(ctx, testUser, s, Submit())
	require.Len(t, api.addedLessons, 1)
	l := api.addedLessons[0]
	assert.Equal(t, "10:15", l.StartTime.Short())
	assert.Equal(t, "11:50", l.EndTime.Short())
	assert.Equal(t, 14, l.PeriodicityDays)
	assert.Equal(t, "301", l.Classroom)
}

func completeTask(t *testing.T, e *Engine, s *state.Session) {
	t.Helper()
	ctx := context.Background()
	e.Start(ctx, testUser, s, FlowTask)
	for _, ev := range []Event{
		Choose("2"), Text("ЛР1"), Skip(), Finish(), Skip(),
		Choose("2025-02-10"), Choose("2025-02-20"), Skip(),
	} {
		r := e.Handle(ctx, testUser, s, ev)
		require.NotEqual(t, ReplyInvalid, r.Kind, "event %v: %v", ev, r.Err)
	}
	require.Equal(t, state.State("task:confirm"), s.State)
}

func TestTaskStatusNotEditableOnCreate(t *testing.T) {
	ctx := context.Background()
	api := &fakeBackend{disciplines: []model.Discipline{{ID: 2, Name: "ОС"}}}
	e := newTestEngine(t, api)
	s := state.NewSession()
	completeTask(t, e, s)

	def, _ := e.Definition(FlowTask)
	for _, ed := range def.Editables(s) {
		assert.NotEqual(t, "status", ed.Field)
	}

	r := e.Handle(ctx, testUser, s, EditField("status"))
	require.Equal(t, ReplyInvalid, r.Kind)
	assert.ErrorIs(t, r.Err, ErrNotEditable)
	assert.Equal(t, state.State("task:confirm"), s.State)
	assert.Empty(t, s.Editing)

	r = e.Handle(ctx, testUser, s, Choose(string(model.StatusDone)))
	assert.Equal(t, ReplyInvalid, r.Kind)

	r = e.Handle(ctx, testUser, s, Submit())
	require.Equal(t, ReplyDone, r.Kind)
	require.Len(t, api.addedLabs, 1)
	assert.Equal(t, model.StatusNotStarted, api.addedLabs[0].Status)
}

func TestEditWithNoOptionsKeepsDraft(t *testing.T) {
	ctx := context.Background()
	api := &fakeBackend{disciplines: []model.Discipline{{ID: 2, Name: "ОС"}}}
	e := newTestEngine(t, api)
	s := state.NewSession()

	e.Start(ctx, testUser, s, FlowLesson)
	for _, ev := range []Event{
		Choose("2"), Text("301"), Choose("2025-02-10"),
		Choose("10"), Choose("15"), Choose("11"), Choose("50"),
		Choose(No),
	} {
		r := e.Handle(ctx, testUser, s, ev)
		require.NotEqual(t, ReplyInvalid, r.Kind, "event %v: %v", ev, r.Err)
	}
	require.Equal(t, state.State("lesson:confirm"), s.State)
	before := maps.Clone(s.Fields)

	// Дисциплину удалили из другого сообщения
	api.disciplines = nil
	r := e.Handle(ctx, testUser, s, EditField("discipline_id"))
	require.Equal(t, ReplyInvalid, r.Kind)
	assert.Contains(t, r.Err.Error(), "нет дисциплин")
	assert.Nil(t, r.Step)
	assert.NotEmpty(t, r.Summary)
	assert.Equal(t, FlowLesson, s.Flow)
	assert.Equal(t, state.State("lesson:confirm"), s.State)
	assert.Empty(t, s.Editing)
	assert.Equal(t, before, s.Fields)

	r = e.Handle(ctx, testUser, s, Submit())
	require.Equal(t, ReplyDone, r.Kind)
	require.Len(t, api.addedLessons, 1)
	assert.Equal(t, "301", api.addedLessons[0].Classroom)
}

func TestLessonEndBeforeStart(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, &fakeBackend{disciplines: []model.Discipline{{ID: 2, Name: "ОС"}}})
	s := state.NewSession()

	e.Start(ctx, testUser, s, FlowLesson)
	for _, ev := range []Event{Choose("2"), Text("301"), Choose("2025-02-10"), Choose("10"), Choose("30"), Choose("10")} {
		e.Handle(ctx, testUser, s, ev)
	}
	r := e.Handle(ctx, testUser, s, Choose("15"))
	assert.Equal(t, ReplyInvalid, r.Kind)
	assert.Equal(t, state.State("lesson:end_time"), s.State)
}

func TestItemEditStatus(t *testing.T) {
	ctx := context.Background()
	api := &fakeBackend{}
	e := newTestEngine(t, api)
	s := state.NewSession()

	task := model.Task{
		ID: 7, DisciplineID: 2, Name: "ЛР1",
		StartDate: model.NewDate(2025, 2, 1), EndDate: model.NewDate(2025, 2, 20),
		Status: model.StatusInProgress,
	}
	r := e.StartEdit(ctx, testUser, s, FlowTask, task.ID, "status", TaskSeed(task))
	require.Equal(t, ReplyPrompt, r.Kind)
	assert.Equal(t, "status", r.Step.Field)
	require.Len(t, r.Options, len(model.Statuses))

	r = e.Handle(ctx, testUser, s, Choose(string(model.StatusSubmitted)))
	require.Equal(t, ReplyEdited, r.Kind)
	assert.Equal(t, []model.TaskEdit{model.TaskStatus(model.StatusSubmitted)}, api.labEdits)
	assert.Equal(t, state.StateIdle, s.State)
}

func TestItemEditStartDateRespectsEnd(t *testing.T) {
	ctx := context.Background()
	api := &fakeBackend{}
	e := newTestEngine(t, api)
	s := state.NewSession()

	task := model.Task{ID: 7, DisciplineID: 2, Name: "ЛР1",
		StartDate: model.NewDate(2025, 2, 1), EndDate: model.NewDate(2025, 2, 20)}
	e.StartEdit(ctx, testUser, s, FlowTask, task.ID, "start_date", TaskSeed(task))

	r := e.Handle(ctx, testUser, s, Choose("2025-03-01"))
	assert.Equal(t, ReplyInvalid, r.Kind)
	assert.Empty(t, api.labEdits)
}

func TestItemEditLessonPeriodicity(t *testing.T) {
	ctx := context.Background()
	api := &fakeBackend{}
	e := newTestEngine(t, api)
	s := state.NewSession()

	start, _ := model.NewClockTime(10, 0)
	end, _ := model.NewClockTime(11, 30)
	lesson := model.Lesson{ID: 5, DisciplineID: 2, Classroom: "301",
		Date: model.NewDate(2025, 2, 10), StartTime: start, EndTime: end}

	r := e.StartEdit(ctx, testUser, s, FlowLesson, lesson.ID, "periodicity_days", LessonSeed(lesson))
	require.Equal(t, ReplyPrompt, r.Kind)
	assert.Equal(t, "periodic", r.Step.Field)

	e.Handle(ctx, testUser, s, Choose(Yes))
	e.Handle(ctx, testUser, s, Choose(UnitWeek))
	r = e.Handle(ctx, testUser, s, Text("1"))
	require.Equal(t, ReplyEdited, r.Kind)
	assert.Equal(t, []model.LessonEdit{model.LessonPeriodicity(7)}, api.lessonEdits)
}

func TestItemEditLessonStartTime(t *testing.T) {
	ctx := context.Background()
	api := &fakeBackend{}
	e := newTestEngine(t, api)
	s := state.NewSession()

	start, _ := model.NewClockTime(10, 0)
	end, _ := model.NewClockTime(11, 30)
	lesson := model.Lesson{ID: 5, DisciplineID: 2, Classroom: "301",
		Date: model.NewDate(2025, 2, 10), StartTime: start, EndTime: end}

	e.StartEdit(ctx, testUser, s, FlowLesson, lesson.ID, "start_time", LessonSeed(lesson))
	e.Handle(ctx, testUser, s, Choose("9"))
	r := e.Handle(ctx, testUser, s, Choose("45"))
	require.Equal(t, ReplyEdited, r.Kind)

	want, _ := model.NewClockTime(9, 45)
	assert.Equal(t, []model.LessonEdit{model.LessonStartTime(want)}, api.lessonEdits)
}

func TestRegistrationAndGroupChange(t *testing.T) {
	ctx := context.Background()
	api := &fakeBackend{}
	e := newTestEngine(t, api)
	s := state.NewSession()

	e.Start(ctx, User{TelegramID: 100}, s, FlowUser)
	e.Handle(ctx, User{TelegramID: 100}, s, Choose(Yes))

	r := e.Handle(ctx, User{TelegramID: 100}, s, Text("99999"))
	require.Equal(t, ReplyInvalid, r.Kind)
	assert.Contains(t, r.Err.Error(), "99999")

	r = e.Handle(ctx, User{TelegramID: 100}, s, Text("22207"))
	require.Equal(t, ReplyConfirm, r.Kind)
	e.Handle(ctx, User{TelegramID: 100}, s, Submit())
	assert.Equal(t, []bool{true}, api.users)
	assert.Equal(t, []string{"22207"}, api.groupChanges)

	r = e.Start(ctx, testUser, s, FlowGroup)
	require.Equal(t, ReplyPrompt, r.Kind)
	r = e.Handle(ctx, testUser, s, Text("22207"))
	require.Equal(t, ReplyDone, r.Kind)
	assert.Equal(t, []string{"22207", "22207"}, api.groupChanges)

	r = e.Start(ctx, testUser, s, FlowStudent)
	require.Equal(t, ReplyPrompt, r.Kind)
	r = e.Handle(ctx, testUser, s, Text("22207"))
	require.Equal(t, ReplyDone, r.Kind)
	assert.Equal(t, []bool{true, true}, api.users)
	assert.Equal(t, state.StateIdle, s.State)
}

func TestRegistrationNotStudent(t *testing.T) {
	ctx := context.Background()
	api := &fakeBackend{}
	e := newTestEngine(t, api)
	s := state.NewSession()

	e.Start(ctx, User{TelegramID: 100}, s, FlowUser)
	r := e.Handle(ctx, User{TelegramID: 100}, s, Choose(No))
	require.Equal(t, ReplyConfirm, r.Kind)
	assert.NotContains(t, r.Summary, "Группа")

	def, _ := e.Definition(FlowUser)
	assert.Equal(t, []Editable{{Field: "is_petrsu_student", Label: "Студент ПетрГУ", From: "is_petrsu_student"}}, def.Editables(s))

	r = e.Handle(ctx, User{TelegramID: 100}, s, EditField("group"))
	assert.Equal(t, ReplyInvalid, r.Kind)
	assert.ErrorIs(t, r.Err, ErrNotEditable)
	assert.Equal(t, state.State("user:confirm"), s.State)
	assert.Zero(t, api.calls())
}

func TestTable(t *testing.T) {
	e := newTestEngine(t, &fakeBackend{})

	teacher, ok := e.Definition(FlowTeacher)
	require.True(t, ok)
	table := teacher.Table()

	assert.Equal(t, Transition{Action: ActionStore, Next: "teacher:phone_number"}, table["teacher:name"][EventText])
	_, canSkip := table["teacher:name"][EventSkip]
	assert.False(t, canSkip)
	assert.Equal(t, Transition{Action: ActionSkip, Next: "teacher:email"}, table["teacher:phone_number"][EventSkip])
	assert.Equal(t, Transition{Action: ActionStore, Next: "teacher:confirm"}, table["teacher:classroom"][EventText])

	confirm := table[teacher.ConfirmState()]
	assert.Equal(t, ActionSubmit, confirm[EventSubmit].Action)
	assert.Equal(t, ActionCancel, confirm[EventCancel].Action)
	assert.Equal(t, ActionEdit, confirm[EventEdit].Action)

	task, _ := e.Definition(FlowTask)
	files := task.Table()["task:files"]
	assert.Equal(t, Transition{Action: ActionAppend, Next: "task:files"}, files[EventFile])
	assert.Equal(t, ActionFinish, files[EventFinish].Action)
	_, textOnFiles := files[EventText]
	assert.False(t, textOnFiles)
}

func TestDefinitionValidation(t *testing.T) {
	submit := func(context.Context, User, Draft) error { return nil }

	_, err := NewEngine(zap.NewNop(), &Definition{Flow: "x", Submit: submit,
		Steps: []Step{{Field: "a"}, {Field: "a"}}})
	assert.Error(t, err)

	_, err = NewEngine(zap.NewNop(), &Definition{Flow: "x", Submit: submit,
		Steps:    []Step{{Field: "a"}},
		Editable: []Editable{{Field: "b"}}})
	assert.Error(t, err)

	_, err = NewEngine(zap.NewNop(), &Definition{Flow: "x", Submit: submit,
		Steps: []Step{{Field: "a", Input: InputOptions}}})
	assert.Error(t, err)
}

func TestCallbackRoundTrip(t *testing.T) {
	for _, ev := range []Event{Choose("42"), Choose("2025-02-10"), Skip(), Finish(), Submit(), Cancel(), EditField("email")} {
		got, ok := ParseCallback(ev.Callback())
		require.True(t, ok, ev.Callback())
		assert.Equal(t, ev, got)
	}

	for _, bad := range []string{"wz:", "wz:choose", "wz:text:abc", "menu:main", "wz:edit:"} {
		_, ok := ParseCallback(bad)
		assert.False(t, ok, bad)
	}

	ref := FileRef{FileID: "AgAD", Type: "photo", Name: "a|b.jpg"}
	got, ok := ParseFileRef(ref.Encode())
	require.True(t, ok)
	assert.Equal(t, ref, got)
}

func TestStableID(t *testing.T) {
	id := StableID("Алгоритмы")
	assert.Len(t, id, 8)
	assert.Equal(t, id, StableID("Алгоритмы"))
	assert.NotEqual(t, id, StableID("Базы данных"))
}
