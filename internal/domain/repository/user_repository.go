package repository

import "github.com/pukassein/teysa/internal/domain/entity"

// UserRepository acceso a usuarios del sistema.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	// FindByEmail retorna nil, nil si el email no está registrado.
	FindByEmail(email string) (*entity.User, error)
}
