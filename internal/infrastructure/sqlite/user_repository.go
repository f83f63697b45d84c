package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Mnpaulon/final-pd-acn4bv-paulon/internal/domain"
	"github.com/Mnpaulon/final-pd-acn4bv-paulon/internal/domain/entity"
	"github.com/Mnpaulon/final-pd-acn4bv-paulon/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre SQLite.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario y asigna el id generado.
// La constraint UNIQUE de username respalda el chequeo de duplicados del use case.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO usuarios (username, password_hash, role) VALUES (?, ?, ?)`,
		user.Username, user.PasswordHash, user.Role,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateUsername
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id usuario: %w", err)
	}
	user.ID = id
	return nil
}

// GetByID obtiene un usuario por id. Devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRowContext(ctx,
		`SELECT id, username, password_hash, role FROM usuarios WHERE id = ?`, id,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario por id: %w", err)
	}
	return &u, nil
}

// GetByUsername obtiene un usuario por username (match exacto, sensible a mayúsculas).
// Devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRowContext(ctx,
		`SELECT id, username, password_hash, role FROM usuarios WHERE username = ?`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario por username: %w", err)
	}
	return &u, nil
}

// List devuelve todos los usuarios ordenados por id. No carga el password_hash.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, username, role FROM usuarios ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Role); err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Delete elimina un usuario por id. Devuelve false si no afectó filas.
func (r *UserRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM usuarios WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete usuario: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected usuario: %w", err)
	}
	return n > 0, nil
}

// CountByRole cuenta los usuarios con el rol dado (chequeo de último admin).
func (r *UserRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	var total int64
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM usuarios WHERE role = ?`, role).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("contar usuarios por rol: %w", err)
	}
	return total, nil
}
