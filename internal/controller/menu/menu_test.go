package menu

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/study_tracker/internal/controller/state"
)

func TestNavigation(t *testing.T) {
	ctx := context.Background()
	n := New("")
	assert.Equal(t, Main, n.Current())

	for _, step := range []struct {
		ev   Event
		want Menu
	}{
		{OpenDisciplines, Disciplines},
		{OpenList, DisciplineList},
		{OpenItem, DisciplineItem},
		{Back, DisciplineList},
		{Back, Disciplines},
		{Back, Main},
		{OpenTasks, Tasks},
		{OpenLessons, Lessons},
		{ToMain, Main},
	} {
		got, err := n.Fire(ctx, step.ev)
		require.NoError(t, err, step.ev)
		assert.Equal(t, step.want, got, step.ev)
	}
}

func TestEveryMenuHasBack(t *testing.T) {
	ctx := context.Background()
	for _, m := range all {
		if m == Main {
			continue
		}
		n := New(string(m))
		got, err := n.Fire(ctx, Back)
		require.NoError(t, err, m)
		assert.Equal(t, Parent(m), got)
	}
}

func TestInvalidTransition(t *testing.T) {
	ctx := context.Background()
	n := New(string(Gantt))

	assert.False(t, n.Can(OpenItem))
	_, err := n.Fire(ctx, OpenItem)
	assert.Error(t, err)
	assert.Equal(t, Gantt, n.Current())

	_, err = n.Fire(ctx, Back)
	require.NoError(t, err)
	_, err = n.Fire(ctx, Back)
	assert.Error(t, err, "main has no parent")
}

func TestSameSectionIsNotAnError(t *testing.T) {
	n := New(string(Tasks))
	got, err := n.Fire(context.Background(), OpenTasks)
	require.NoError(t, err)
	assert.Equal(t, Tasks, got)
}

func TestNavigateClearsWizard(t *testing.T) {
	s := state.NewSession()
	s.Menu = string(Teachers)
	s.Flow = "teacher"
	s.State = "teacher:email"
	s.SetField("name", "Иванов Иван")
	s.Set("page", "2")

	m, err := Navigate(context.Background(), s, Back)
	require.NoError(t, err)
	assert.Equal(t, Main, m)
	assert.Equal(t, string(Main), s.Menu)
	assert.Equal(t, state.StateIdle, s.State)
	assert.Empty(t, s.Fields)
	assert.Equal(t, "2", s.Get("page"))
}

func TestUnknownStoredMenu(t *testing.T) {
	assert.Equal(t, Main, New("nonsense").Current())
}

func TestEnterFromAnotherSection(t *testing.T) {
	ctx := context.Background()
	s := state.NewSession()
	s.Menu = string(LessonItem)
	s.Flow = "task"
	s.State = "task:name"

	m, err := Enter(ctx, s, TaskItem)
	require.NoError(t, err)
	assert.Equal(t, TaskItem, m)
	assert.Equal(t, string(TaskItem), s.Menu)
	assert.Equal(t, state.StateIdle, s.State)

	m, err = Enter(ctx, s, TaskList)
	require.NoError(t, err)
	assert.Equal(t, TaskList, m)

	m, err = Enter(ctx, s, Main)
	require.NoError(t, err)
	assert.Equal(t, Main, m)

	_, err = Enter(ctx, s, Menu("unknown"))
	assert.Error(t, err)
}
