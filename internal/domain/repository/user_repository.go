package repository

import "github.com/jhoicas/Rentario-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (auth).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	ListByEmail(email string) ([]*entity.User, error)
	GetByEmailAndTenant(email, tenantID string) (*entity.User, error)
}
