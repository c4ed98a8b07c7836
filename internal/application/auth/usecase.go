// Package auth implementa registro e inicio de sesión con bcrypt y JWT.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pukassein/teysa/internal/domain"
	"github.com/pukassein/teysa/internal/domain/entity"
	"github.com/pukassein/teysa/internal/domain/repository"
	"github.com/pukassein/teysa/pkg/config"
	"github.com/pukassein/teysa/pkg/jwt"
	"github.com/pukassein/teysa/pkg/logger"
)

// UseCase casos de uso de autenticación.
type UseCase struct {
	userRepo repository.UserRepository
	jwtCfg   config.JWTConfig
	log      *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(userRepo repository.UserRepository, jwtCfg config.JWTConfig, log *logger.Logger) *UseCase {
	return &UseCase{userRepo: userRepo, jwtCfg: jwtCfg, log: log}
}

// RegisterInput datos de registro de usuario.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// Session resultado de un login exitoso.
type Session struct {
	Token string
	User  *entity.User
}

func validRole(role string) bool {
	switch role {
	case entity.RoleAdmin, entity.RoleSupervisor, entity.RoleOperario:
		return true
	}
	return false
}

// Register crea un usuario con contraseña hasheada. Rechaza emails ya
// registrados y roles desconocidos.
func (uc *UseCase) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || len(in.Password) < 8 || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Role == "" {
		in.Role = entity.RoleOperario
	}
	if !validRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashear contraseña: %w", err)
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Role:         in.Role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("crear usuario: %w", err)
	}
	uc.log.Info().Str("email", user.Email).Str("role", user.Role).Msg("usuario registrado")
	return user, nil
}

// Login valida credenciales y emite un JWT. Credenciales inválidas y usuarios
// deshabilitados responden el mismo ErrUnauthorized para no filtrar cuáles
// emails existen.
func (uc *UseCase) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := uc.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != "active" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, fmt.Errorf("emitir token: %w", err)
	}
	return &Session{Token: token, User: user}, nil
}

// Me retorna el usuario autenticado.
func (uc *UseCase) Me(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
