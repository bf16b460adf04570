// Package api реализует REST API трекера заданий
package api

import (
	"net/http"
	"time"

	"github.com/Freeeeeet/study_tracker/internal/service"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Handler обрабатывает HTTP-запросы поверх сервисов
type Handler struct {
	services *service.Services
	logger   *zap.Logger
}

func NewHandler(services *service.Services, logger *zap.Logger) *Handler {
	return &Handler{services: services, logger: logger}
}

// Router регистрирует все эндпоинты
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware, loggingMiddleware(h.logger), recoveryMiddleware(h.logger))

	r.HandleFunc("/health", h.health).Methods(http.MethodGet)

	// Пользователи
	r.HandleFunc("/check_user", h.checkUser).Methods(http.MethodGet)
	r.HandleFunc("/get_user_id", h.getUserID).Methods(http.MethodGet)
	r.HandleFunc("/check_is_petrsu_student", h.checkIsPetrSUStudent).Methods(http.MethodGet)
	r.HandleFunc("/get_user_group", h.getUserGroup).Methods(http.MethodGet)
	r.HandleFunc("/add_user", h.addUser).Methods(http.MethodPost)
	r.HandleFunc("/change_user_group", h.changeUserGroup).Methods(http.MethodPost)
	r.HandleFunc("/change_user_status", h.changeUserStatus).Methods(http.MethodPost)

	// Преподаватели
	r.HandleFunc("/add_teacher", h.addTeacher).Methods(http.MethodPost)
	r.HandleFunc("/get_teachers", h.getTeachers).Methods(http.MethodGet)
	r.HandleFunc("/get_teacher", h.getTeacher).Methods(http.MethodGet)
	r.HandleFunc("/edit_teacher", h.editTeacher).Methods(http.MethodPost)
	r.HandleFunc("/delete_teacher", h.deleteTeacher).Methods(http.MethodDelete)

	// Дисциплины
	r.HandleFunc("/add_discipline", h.addDiscipline).Methods(http.MethodPost)
	r.HandleFunc("/get_disciplines", h.getDisciplines).Methods(http.MethodGet)
	r.HandleFunc("/get_discipline", h.getDiscipline).Methods(http.MethodGet)
	r.HandleFunc("/get_discipline_api_status", h.getDisciplineAPIStatus).Methods(http.MethodGet)
	r.HandleFunc("/edit_discipline", h.editDiscipline).Methods(http.MethodPost)
	r.HandleFunc("/delete_discipline", h.deleteDiscipline).Methods(http.MethodDelete)

	// Задания и файлы
	r.HandleFunc("/add_lab", h.addLab).Methods(http.MethodPost)
	r.HandleFunc("/get_labs", h.getLabs).Methods(http.MethodGet)
	r.HandleFunc("/edit_lab", h.editLab).Methods(http.MethodPost)
	r.HandleFunc("/delete_lab", h.deleteLab).Methods(http.MethodDelete)
	r.HandleFunc("/add_file", h.addFile).Methods(http.MethodPost)
	r.HandleFunc("/get_lab_files", h.getLabFiles).Methods(http.MethodGet)
	r.HandleFunc("/delete_files", h.deleteFiles).Methods(http.MethodDelete)
	r.HandleFunc("/get_deadlines", h.getDeadlines).Methods(http.MethodGet)

	// Занятия
	r.HandleFunc("/add_lesson", h.addLesson).Methods(http.MethodPost)
	r.HandleFunc("/get_lessons", h.getLessons).Methods(http.MethodGet)
	r.HandleFunc("/edit_lesson", h.editLesson).Methods(http.MethodPost)
	r.HandleFunc("/delete_lesson", h.deleteLesson).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	return r
}

// NewServer создаёт http.Server с таймаутами
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
