package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"emojifeedback/internal/apperrors"
	"emojifeedback/internal/entity"
	"emojifeedback/internal/logger"
)

type AuthService struct {
	users UserStore
	cost  int
}

func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users, cost: bcrypt.DefaultCost}
}

type RegisterInput struct {
	Username        string
	Password        string
	ConfirmPassword string
	Role            string
	FullName        string
	Email           string
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, apperrors.NewValidationError("username and password are required")
	}
	if in.Password != in.ConfirmPassword {
		return nil, apperrors.NewValidationError("passwords do not match")
	}

	roleName := in.Role
	if roleName == "" {
		roleName = string(entity.RoleStudent)
	}
	role, err := entity.ParseRole(roleName)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("username already exists")
	}

	hash, err := HashPassword(in.Password, s.cost)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	u := &entity.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		FullName:     strings.TrimSpace(in.FullName),
		Email:        strings.TrimSpace(in.Email),
	}
	id, err := s.users.Create(ctx, u)
	if err != nil {
		return nil, err
	}
	u.ID = id

	logger.FromContext(ctx).Info().Int("user_id", id).Str("role", role.String()).Msg("user registered")
	return u, nil
}

// Login проверяет пароль; на неверный логин и неверный пароль одна и та же ошибка
func (s *AuthService) Login(ctx context.Context, username, password string) (*entity.User, error) {
	u, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if u == nil || !CheckPassword(u.PasswordHash, password) {
		return nil, apperrors.NewUnauthorizedError("invalid username or password")
	}
	return u, nil
}

func (s *AuthService) GetByID(ctx context.Context, id int) (*entity.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *AuthService) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return s.users.GetByUsername(ctx, username)
}

func (s *AuthService) ChangePassword(ctx context.Context, u *entity.User, oldPassword, newPassword, confirm string) error {
	if !CheckPassword(u.PasswordHash, oldPassword) {
		return apperrors.NewValidationError("current password is incorrect")
	}
	if newPassword == "" {
		return apperrors.NewValidationError("new password is required")
	}
	if newPassword != confirm {
		return apperrors.NewValidationError("new passwords do not match")
	}

	hash, err := HashPassword(newPassword, s.cost)
	if err != nil {
		return apperrors.NewInternalError("failed to hash password", err)
	}
	if err := s.users.UpdatePasswordHash(ctx, u.ID, hash); err != nil {
		return err
	}
	u.PasswordHash = hash

	logger.FromContext(ctx).Info().Int("user_id", u.ID).Msg("password changed")
	return nil
}

func (s *AuthService) ListUsers(ctx context.Context, role *entity.Role) ([]entity.User, error) {
	return s.users.List(ctx, role)
}

func (s *AuthService) CountUsers(ctx context.Context) (int, error) {
	return s.users.Count(ctx)
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
