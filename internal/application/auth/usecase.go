package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Rentario-api/internal/application/dto"
	"github.com/jhoicas/Rentario-api/internal/domain"
	"github.com/jhoicas/Rentario-api/internal/domain/entity"
	"github.com/jhoicas/Rentario-api/internal/domain/repository"
	"github.com/jhoicas/Rentario-api/pkg/config"
	"github.com/jhoicas/Rentario-api/pkg/jwt"
	"github.com/jhoicas/Rentario-api/pkg/logger"
)

// UseCase registro y login de usuarios operadores. Cada usuario pertenece a un
// tenant; el token emitido lleva tenant y rol para el scoping del middleware.
type UseCase struct {
	userRepo   repository.UserRepository
	tenantRepo repository.TenantRepository
	jwtCfg     config.JWTConfig
	log        *logger.Logger
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(userRepo repository.UserRepository, tenantRepo repository.TenantRepository, jwtCfg config.JWTConfig, log *logger.Logger) *UseCase {
	return &UseCase{userRepo: userRepo, tenantRepo: tenantRepo, jwtCfg: jwtCfg, log: log}
}

// Register da de alta un usuario operador dentro de un tenant existente.
// El rol superadmin no se puede auto-asignar por esta vía (solo seed).
func (uc *UseCase) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" || req.TenantID == "" {
		return nil, fmt.Errorf("%w: tenant_id, email y password son obligatorios", domain.ErrInvalidInput)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: el password debe tener al menos 8 caracteres", domain.ErrInvalidInput)
	}

	role := req.Role
	if role == "" {
		role = entity.RoleStaff
	}
	switch role {
	case entity.RoleAdmin, entity.RoleStaff:
	default:
		return nil, fmt.Errorf("%w: rol inválido %q", domain.ErrInvalidInput, req.Role)
	}

	tenant, err := uc.tenantRepo.GetByID(req.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, fmt.Errorf("%w: tenant %s", domain.ErrNotFound, req.TenantID)
	}

	existing, err := uc.userRepo.GetByEmailAndTenant(email, tenant.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.NewString(),
		TenantID:     tenant.ID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}

	uc.log.Info().Str("user_id", user.ID).Str("tenant_id", user.TenantID).Msg("usuario registrado")
	resp := userToResponse(user)
	return &resp, nil
}

// Login valida credenciales y emite un JWT con user, tenant y rol. La unicidad
// de email es por tenant: cuando el mismo email existe en varios tenants,
// tenant_slug decide qué cuenta entra; sin él el login ambiguo se rechaza (el
// claim de tenant del token gobierna todo el scoping posterior y no puede
// depender del orden de las filas).
func (uc *UseCase) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email y password son obligatorios", domain.ErrInvalidInput)
	}

	var user *entity.User
	if tenantSlug := strings.TrimSpace(strings.ToLower(req.TenantSlug)); tenantSlug != "" {
		tenant, err := uc.tenantRepo.GetBySlug(tenantSlug)
		if err != nil {
			return nil, err
		}
		if tenant != nil {
			user, err = uc.userRepo.GetByEmailAndTenant(email, tenant.ID)
			if err != nil {
				return nil, err
			}
		}
	} else {
		candidates, err := uc.userRepo.ListByEmail(email)
		if err != nil {
			return nil, err
		}
		if len(candidates) > 1 {
			return nil, fmt.Errorf("%w: el email existe en más de un tenant, indique tenant_slug", domain.ErrInvalidInput)
		}
		if len(candidates) == 1 {
			user = candidates[0]
		}
	}

	// Mismo error para usuario inexistente y password incorrecto.
	if user == nil || user.Status != "active" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.TenantID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}

	return &dto.LoginResponse{Token: token, User: userToResponse(user)}, nil
}

func userToResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       u.ID,
		TenantID: u.TenantID,
		Email:    u.Email,
		Name:     u.Name,
		Role:     u.Role,
		Status:   u.Status,
	}
}
