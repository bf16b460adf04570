package api

import (
	"net/http"

	"github.com/Freeeeeet/study_tracker/internal/model"
)

type disciplineEditRequest struct {
	DisciplineID int64 `json:"discipline_id"`
	editRequest
}

type disciplineIDRequest struct {
	DisciplineID int64 `json:"discipline_id"`
}

func (h *Handler) addDiscipline(w http.ResponseWriter, r *http.Request) {
	var d model.Discipline
	if err := decodeJSON(r, &d); err != nil {
		h.writeError(w, r, err)
		return
	}
	d.ID = 0

	if err := h.services.Disciplines.Create(r.Context(), &d); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"discipline_id": d.ID})
}

func (h *Handler) getDisciplines(w http.ResponseWriter, r *http.Request) {
	userID, err := queryInt64(r, "user_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	disciplines, err := h.services.Disciplines.List(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]model.Discipline{"disciplines": disciplines})
}

func (h *Handler) getDiscipline(w http.ResponseWriter, r *http.Request) {
	id, err := queryInt64(r, "discipline_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	d, err := h.services.Disciplines.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handler) getDisciplineAPIStatus(w http.ResponseWriter, r *http.Request) {
	id, err := queryInt64(r, "discipline_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	d, err := h.services.Disciplines.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"is_from_API": d.IsFromAPI})
}

func (h *Handler) editDiscipline(w http.ResponseWriter, r *http.Request) {
	var req disciplineEditRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	edit, err := model.ParseDisciplineEdit(req.Attribute, req.value())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.services.Disciplines.Update(r.Context(), req.DisciplineID, edit); err != nil {
		h.writeError(w, r, err)
		return
	}

	d, err := h.services.Disciplines.Get(r.Context(), req.DisciplineID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handler) deleteDiscipline(w http.ResponseWriter, r *http.Request) {
	var req disciplineIDRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.Disciplines.Delete(r.Context(), req.DisciplineID); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"discipline_id": req.DisciplineID})
}
