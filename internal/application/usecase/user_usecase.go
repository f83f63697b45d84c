package usecase

import (
	"context"
	"strings"

	"github.com/Mnpaulon/final-pd-acn4bv-paulon/internal/application/dto"
	"github.com/Mnpaulon/final-pd-acn4bv-paulon/internal/domain"
	"github.com/Mnpaulon/final-pd-acn4bv-paulon/internal/domain/entity"
	"github.com/Mnpaulon/final-pd-acn4bv-paulon/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase aplica reglas de negocio para la gestión de usuarios.
type UserUseCase struct {
	repo repository.UserRepository
	tx   UserTxRunner
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia y el tx runner.
func NewUserUseCase(repo repository.UserRepository, tx UserTxRunner) *UserUseCase {
	return &UserUseCase{repo: repo, tx: tx}
}

// List devuelve todos los usuarios (id, username, role), ordenados por id.
// Nunca expone el password_hash.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

// Create registra un usuario: hashea el password con bcrypt y persiste.
// El rol se normaliza (solo "admin" se respeta; el resto cae a "usuario").
// Devuelve domain.ErrDuplicateUsername si el username ya existe (match exacto,
// sensible a mayúsculas).
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)

	existing, err := uc.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         entity.NormalizeRole(in.Role),
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Delete elimina un usuario. Reglas:
//   - nadie puede eliminar su propia cuenta (domain.ErrSelfDeletion);
//   - domain.ErrUserNotFound si el id no existe;
//   - el último admin está protegido (domain.ErrLastAdmin).
//
// El chequeo de último admin y el delete corren en la misma transacción.
func (uc *UserUseCase) Delete(ctx context.Context, id, requesterID int64) error {
	if id == requesterID {
		return domain.ErrSelfDeletion
	}
	return uc.tx.RunUsers(ctx, func(userRepo repository.UserRepository) error {
		user, err := userRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		if user.Role == entity.RoleAdmin {
			admins, err := userRepo.CountByRole(ctx, entity.RoleAdmin)
			if err != nil {
				return err
			}
			if admins <= 1 {
				return domain.ErrLastAdmin
			}
		}
		_, err = userRepo.Delete(ctx, id)
		return err
	})
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
	}
}
