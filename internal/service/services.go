package service

import "go.uber.org/zap"

// Services собирает все сервисы REST API
type Services struct {
	Users       *UserService
	Teachers    *TeacherService
	Disciplines *DisciplineService
	Tasks       *TaskService
	Lessons     *LessonService
}

func New(
	users UserRepository,
	teachers TeacherRepository,
	disciplines DisciplineRepository,
	tasks TaskRepository,
	files FileRepository,
	lessons LessonRepository,
	logger *zap.Logger,
) *Services {
	return &Services{
		Users:       NewUserService(users, logger),
		Teachers:    NewTeacherService(teachers, users, logger),
		Disciplines: NewDisciplineService(disciplines, teachers, users, logger),
		Tasks:       NewTaskService(tasks, files, disciplines, users, logger),
		Lessons:     NewLessonService(lessons, disciplines, users, logger),
	}
}
