package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/study_tracker/internal/model"
	"go.uber.org/zap"
)

type UserService struct {
	userRepo UserRepository
	logger   *zap.Logger
}

func NewUserService(userRepo UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Exists проверяет, зарегистрирован ли пользователь
func (s *UserService) Exists(ctx context.Context, telegramID int64) (bool, error) {
	user, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return false, fmt.Errorf("check user: %w", err)
	}
	return user != nil, nil
}

// GetByTelegramID возвращает NotFoundError для незарегистрированного пользователя
func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	user, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, NotFound(EntityUser, telegramID)
	}
	return user, nil
}

// Register регистрирует нового пользователя
func (s *UserService) Register(ctx context.Context, telegramID int64, isPetrSUStudent bool, group string) (*model.User, error) {
	group, err := checkGroup(isPetrSUStudent, group)
	if err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		return nil, Invalid("Пользователь уже зарегистрирован")
	}

	user := &model.User{
		TelegramID:      telegramID,
		IsPetrSUStudent: isPetrSUStudent,
		Group:           group,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("New user registered",
		zap.Int64("user_id", user.ID),
		zap.Int64("telegram_id", telegramID),
		zap.Bool("is_petrsu_student", isPetrSUStudent),
		zap.String("group", group),
	)

	return user, nil
}

// ChangeGroup меняет группу студента ПетрГУ
func (s *UserService) ChangeGroup(ctx context.Context, telegramID int64, group string) error {
	user, err := s.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return err
	}
	if !user.IsPetrSUStudent {
		return Invalid("Группу можно указать только студенту ПетрГУ")
	}
	return s.ChangeStatus(ctx, telegramID, true, group)
}

// ChangeStatus меняет признак студента ПетрГУ вместе с группой
func (s *UserService) ChangeStatus(ctx context.Context, telegramID int64, isPetrSUStudent bool, group string) error {
	group, err := checkGroup(isPetrSUStudent, group)
	if err != nil {
		return err
	}

	ok, err := s.userRepo.UpdateProfile(ctx, telegramID, isPetrSUStudent, group)
	if err != nil {
		return fmt.Errorf("update user profile: %w", err)
	}
	if !ok {
		return NotFound(EntityUser, telegramID)
	}

	s.logger.Info("User profile changed",
		zap.Int64("telegram_id", telegramID),
		zap.Bool("is_petrsu_student", isPetrSUStudent),
		zap.String("group", group))
	return nil
}

func checkGroup(isPetrSUStudent bool, group string) (string, error) {
	group = strings.TrimSpace(group)
	if !isPetrSUStudent {
		return "", nil
	}
	if group == "" {
		return "", Invalid("Для студента ПетрГУ нужно указать группу")
	}
	if len([]rune(group)) > model.MaxNameLength {
		return "", Invalid("Слишком длинный номер группы")
	}
	return group, nil
}

// requireUser проверяет существование пользователя по внутреннему ID
func requireUser(ctx context.Context, users UserRepository, userID int64) error {
	user, err := users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return NotFound(EntityUser, userID)
	}
	return nil
}
