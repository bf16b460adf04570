package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusLabels(t *testing.T) {
	expected := map[Status]string{
		StatusNotStarted: "Не начато",
		StatusInProgress: "В процессе",
		StatusDone:       "Готово к сдаче",
		StatusSubmitted:  "Сдано",
	}
	for status, label := range expected {
		assert.Equal(t, label, status.Label())

		parsed, err := ParseStatus(string(status))
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}

	_, err := ParseStatus("Сдано")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestTaskStatusEditKeepsEnumMember(t *testing.T) {
	for _, status := range Statuses {
		raw, err := json.Marshal(TaskStatus(status).Arg())
		require.NoError(t, err)

		edit, err := ParseTaskEdit("status", raw)
		require.NoError(t, err)
		assert.Equal(t, TaskStatus(status), edit)
		assert.Equal(t, "status", edit.Column())
	}
}

func TestValidators(t *testing.T) {
	assert.NoError(t, ValidateFIO("Иванов Иван Иванович"))
	assert.NoError(t, ValidateFIO("Ли Анна"))
	assert.Error(t, ValidateFIO("иванов иван"))
	assert.Error(t, ValidateFIO("Ivanov Ivan"))
	assert.Error(t, ValidateFIO("Иванов"))

	assert.NoError(t, ValidatePhone("+79001234567"))
	assert.Error(t, ValidatePhone("12345"))
	assert.Error(t, ValidatePhone("89001234567"))

	assert.NoError(t, ValidateEmail("student@petrsu.ru"))
	assert.Error(t, ValidateEmail("student@"))

	assert.NoError(t, ValidateLink("https://vk.com/id1"))
	assert.Error(t, ValidateLink("vk.com/id1"))
}

func TestParseMinutes(t *testing.T) {
	m, err := ParseMinutes("07")
	require.NoError(t, err)
	assert.Equal(t, 7, m)

	for _, bad := range []string{"", "60", "-1", "1.5", "ab"} {
		_, err := ParseMinutes(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseEditRejectsUnknownAttribute(t *testing.T) {
	_, err := ParseTeacherEdit("user_id", json.RawMessage(`5`))
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = ParseDisciplineEdit("is_from_API", json.RawMessage(`true`))
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = ParseLessonEdit("user_id", json.RawMessage(`1`))
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestParseEditValues(t *testing.T) {
	edit, err := ParseTeacherEdit("phone_number", json.RawMessage(`null`))
	require.NoError(t, err)
	assert.Equal(t, TeacherPhone{}, edit)

	_, err = ParseTeacherEdit("phone_number", json.RawMessage(`"12345"`))
	assert.ErrorIs(t, err, ErrInvalidValue)

	dEdit, err := ParseDisciplineEdit("teacher_id", json.RawMessage(`7`))
	require.NoError(t, err)
	require.IsType(t, DisciplineTeacher{}, dEdit)
	assert.Equal(t, int64(7), *dEdit.(DisciplineTeacher).Value)

	lEdit, err := ParseLessonEdit("start_time", json.RawMessage(`"08:30:00"`))
	require.NoError(t, err)
	assert.Equal(t, LessonStartTime(ClockTime{Hour: 8, Minute: 30}), lEdit)

	tEdit, err := ParseTaskEdit("end_date", json.RawMessage(`"2024-12-20"`))
	require.NoError(t, err)
	assert.Equal(t, TaskEndDate(NewDate(2024, 12, 20)), tEdit)
}

func TestDateAndClockJSON(t *testing.T) {
	lesson := Lesson{Date: NewDate(2024, 9, 2), StartTime: ClockTime{Hour: 9, Minute: 45}}
	data, err := json.Marshal(lesson)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"date":"2024-09-02"`)
	assert.Contains(t, string(data), `"start_time":"09:45:00"`)

	var decoded Lesson
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Date.Equal(lesson.Date.Time))
	assert.Equal(t, lesson.StartTime, decoded.StartTime)
}

func TestClockMicrosRoundTrip(t *testing.T) {
	c := ClockTime{Hour: 13, Minute: 5, Second: 9}
	assert.Equal(t, c, ClockFromMicros(c.Micros()))
}

func TestTaskOverdue(t *testing.T) {
	today := NewDate(2024, 10, 10)
	task := Task{EndDate: NewDate(2024, 10, 9), Status: StatusInProgress}
	assert.True(t, task.Overdue(today))

	task.Status = StatusSubmitted
	assert.False(t, task.Overdue(today))

	task = Task{EndDate: today, Status: StatusNotStarted}
	assert.False(t, task.Overdue(today))
}
