package api

import (
	"net/http"

	"github.com/Freeeeeet/study_tracker/internal/model"
)

type teacherEditRequest struct {
	TeacherID int64 `json:"teacher_id"`
	editRequest
}

type teacherIDRequest struct {
	TeacherID int64 `json:"teacher_id"`
}

func (h *Handler) addTeacher(w http.ResponseWriter, r *http.Request) {
	var t model.Teacher
	if err := decodeJSON(r, &t); err != nil {
		h.writeError(w, r, err)
		return
	}
	t.ID = 0

	if err := h.services.Teachers.Create(r.Context(), &t); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"teacher_id": t.ID})
}

func (h *Handler) getTeachers(w http.ResponseWriter, r *http.Request) {
	userID, err := queryInt64(r, "user_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	teachers, err := h.services.Teachers.List(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]model.Teacher{"teachers": teachers})
}

func (h *Handler) getTeacher(w http.ResponseWriter, r *http.Request) {
	id, err := queryInt64(r, "teacher_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	t, err := h.services.Teachers.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) editTeacher(w http.ResponseWriter, r *http.Request) {
	var req teacherEditRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	edit, err := model.ParseTeacherEdit(req.Attribute, req.value())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.services.Teachers.Update(r.Context(), req.TeacherID, edit); err != nil {
		h.writeError(w, r, err)
		return
	}

	t, err := h.services.Teachers.Get(r.Context(), req.TeacherID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) deleteTeacher(w http.ResponseWriter, r *http.Request) {
	var req teacherIDRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.Teachers.Delete(r.Context(), req.TeacherID); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"teacher_id": req.TeacherID})
}
