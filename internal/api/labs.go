package api

import (
	"net/http"

	"github.com/Freeeeeet/study_tracker/internal/model"
)

type labEditRequest struct {
	TaskID int64 `json:"task_id"`
	editRequest
}

type taskIDRequest struct {
	TaskID int64 `json:"task_id"`
}

func (h *Handler) addLab(w http.ResponseWriter, r *http.Request) {
	var t model.Task
	if err := decodeJSON(r, &t); err != nil {
		h.writeError(w, r, err)
		return
	}
	t.ID = 0

	if err := h.services.Tasks.Create(r.Context(), &t); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"task_id": t.ID})
}

func (h *Handler) getLabs(w http.ResponseWriter, r *http.Request) {
	userID, err := queryInt64(r, "user_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	labs, err := h.services.Tasks.List(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]model.Task{"labs": labs})
}

func (h *Handler) editLab(w http.ResponseWriter, r *http.Request) {
	var req labEditRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	edit, err := model.ParseTaskEdit(req.Attribute, req.value())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.services.Tasks.Update(r.Context(), req.TaskID, edit); err != nil {
		h.writeError(w, r, err)
		return
	}

	t, err := h.services.Tasks.Get(r.Context(), req.TaskID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) deleteLab(w http.ResponseWriter, r *http.Request) {
	var req taskIDRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.Tasks.Delete(r.Context(), req.TaskID); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"task_id": req.TaskID})
}

func (h *Handler) addFile(w http.ResponseWriter, r *http.Request) {
	var f model.File
	if err := decodeJSON(r, &f); err != nil {
		h.writeError(w, r, err)
		return
	}
	f.ID = 0
	if f.FileType != "" {
		if _, err := model.ParseFileType(string(f.FileType)); err != nil {
			h.writeError(w, r, err)
			return
		}
	}

	if err := h.services.Tasks.AddFile(r.Context(), &f); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"file_id": f.ID})
}

func (h *Handler) getLabFiles(w http.ResponseWriter, r *http.Request) {
	taskID, err := queryInt64(r, "task_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	files, err := h.services.Tasks.Files(r.Context(), taskID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]model.File{"files": files})
}

func (h *Handler) deleteFiles(w http.ResponseWriter, r *http.Request) {
	var req taskIDRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	n, err := h.services.Tasks.DeleteFiles(r.Context(), req.TaskID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}

func (h *Handler) getDeadlines(w http.ResponseWriter, r *http.Request) {
	day, err := model.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	deadlines, err := h.services.Tasks.Deadlines(r.Context(), day)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]model.Deadline{"deadlines": deadlines})
}
