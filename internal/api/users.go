package api

import (
	"net/http"
)

type addUserRequest struct {
	TelegramID      int64  `json:"telegram_id"`
	IsPetrSUStudent bool   `json:"is_petrsu_student"`
	Group           string `json:"group"`
}

type changeGroupRequest struct {
	TelegramID int64  `json:"telegram_id"`
	Group      string `json:"group"`
}

func (h *Handler) checkUser(w http.ResponseWriter, r *http.Request) {
	telegramID, err := queryInt64(r, "telegram_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	exists, err := h.services.Users.Exists(r.Context(), telegramID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

func (h *Handler) getUserID(w http.ResponseWriter, r *http.Request) {
	telegramID, err := queryInt64(r, "telegram_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.Users.GetByTelegramID(r.Context(), telegramID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"user_id": user.ID})
}

func (h *Handler) checkIsPetrSUStudent(w http.ResponseWriter, r *http.Request) {
	telegramID, err := queryInt64(r, "telegram_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.Users.GetByTelegramID(r.Context(), telegramID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"is_petrsu_student": user.IsPetrSUStudent,
		"group":             user.Group,
	})
}

func (h *Handler) getUserGroup(w http.ResponseWriter, r *http.Request) {
	telegramID, err := queryInt64(r, "telegram_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.Users.GetByTelegramID(r.Context(), telegramID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"group": user.Group})
}

func (h *Handler) addUser(w http.ResponseWriter, r *http.Request) {
	var req addUserRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.Users.Register(r.Context(), req.TelegramID, req.IsPetrSUStudent, req.Group)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"user_id": user.ID})
}

func (h *Handler) changeUserGroup(w http.ResponseWriter, r *http.Request) {
	var req changeGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.Users.ChangeGroup(r.Context(), req.TelegramID, req.Group); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"group": req.Group})
}

func (h *Handler) changeUserStatus(w http.ResponseWriter, r *http.Request) {
	var req addUserRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.Users.ChangeStatus(r.Context(), req.TelegramID, req.IsPetrSUStudent, req.Group); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"is_petrsu_student": req.IsPetrSUStudent})
}
