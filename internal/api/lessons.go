package api

import (
	"net/http"

	"github.com/Freeeeeet/study_tracker/internal/model"
)

type lessonEditRequest struct {
	LessonID int64 `json:"lesson_id"`
	editRequest
}

type lessonIDRequest struct {
	LessonID int64 `json:"lesson_id"`
}

func (h *Handler) addLesson(w http.ResponseWriter, r *http.Request) {
	var l model.Lesson
	if err := decodeJSON(r, &l); err != nil {
		h.writeError(w, r, err)
		return
	}
	l.ID = 0

	if err := h.services.Lessons.Create(r.Context(), &l); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"lesson_id": l.ID})
}

func (h *Handler) getLessons(w http.ResponseWriter, r *http.Request) {
	userID, err := queryInt64(r, "user_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	lessons, err := h.services.Lessons.List(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]model.Lesson{"lessons": lessons})
}

func (h *Handler) editLesson(w http.ResponseWriter, r *http.Request) {
	var req lessonEditRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	edit, err := model.ParseLessonEdit(req.Attribute, req.value())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.services.Lessons.Update(r.Context(), req.LessonID, edit); err != nil {
		h.writeError(w, r, err)
		return
	}

	l, err := h.services.Lessons.Get(r.Context(), req.LessonID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *Handler) deleteLesson(w http.ResponseWriter, r *http.Request) {
	var req lessonIDRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.Lessons.Delete(r.Context(), req.LessonID); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"lesson_id": req.LessonID})
}
