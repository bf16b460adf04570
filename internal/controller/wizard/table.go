package wizard

import "github.com/Freeeeeet/study_tracker/internal/controller/state"

// Action - что делает мастер по событию
type Action string

const (
	ActionStore  Action = "store"
	ActionSkip   Action = "skip"
	ActionAppend Action = "append"
	ActionFinish Action = "finish"
	ActionSubmit Action = "submit"
	ActionCancel Action = "cancel"
	ActionEdit   Action = "edit"
)

// Transition - действие и номинальное следующее состояние.
// Шаги с условием When пропускаются уже при выполнении.
type Transition struct {
	Action Action
	Next   state.State
}

// Table - (State, EventKind) -> Transition
type Table map[state.State]map[EventKind]Transition

// Table строит таблицу переходов мастера
func (d *Definition) Table() Table {
	t := make(Table, len(d.Steps)+1)
	confirm := d.ConfirmState()

	for i := range d.Steps {
		st := &d.Steps[i]
		next := confirm
		if i+1 < len(d.Steps) {
			next = d.Steps[i+1].State
		}

		row := map[EventKind]Transition{
			EventCancel: {Action: ActionCancel, Next: state.StateIdle},
		}
		if st.Text != nil {
			row[EventText] = Transition{Action: ActionStore, Next: next}
		}
		if st.choosable() {
			row[EventChoose] = Transition{Action: ActionStore, Next: next}
		}
		if st.Optional {
			row[EventSkip] = Transition{Action: ActionSkip, Next: next}
		}
		if st.Multi {
			row[EventFile] = Transition{Action: ActionAppend, Next: st.State}
			row[EventFinish] = Transition{Action: ActionFinish, Next: next}
		}
		t[st.State] = row
	}

	t[confirm] = map[EventKind]Transition{
		EventSubmit: {Action: ActionSubmit, Next: state.StateIdle},
		EventCancel: {Action: ActionCancel, Next: state.StateIdle},
		EventEdit:   {Action: ActionEdit, Next: confirm},
	}
	return t
}
