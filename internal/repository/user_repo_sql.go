package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Domenick1991/airadmin/internal/domain"
)

type UserRepository interface {
	Page(ctx context.Context, page domain.PageRequest) ([]domain.User, int, error)
	All(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	// Update stores name and email. PasswordHash is only written when set.
	Update(ctx context.Context, user *domain.User) error
	DeleteUnreferenced(ctx context.Context, ids []int64) (domain.BatchResult, error)
}

type SQLUserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) UserRepository {
	return &SQLUserRepository{db: db}
}

const userColumns = `id, name, email, password`

func (r *SQLUserRepository) Page(ctx context.Context, page domain.PageRequest) ([]domain.User, int, error) {
	page = page.Normalize()

	rows, err := r.db.query(ctx, `SELECT `+userColumns+` FROM users ORDER BY name, id LIMIT ? OFFSET ?`, page.Size, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	users, err := scanUsers(rows)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.db.CountRows(ctx, TableUsers)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *SQLUserRepository) All(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.query(ctx, `SELECT `+userColumns+` FROM users ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return scanUsers(rows)
}

func (r *SQLUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.get(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *SQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.get(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (r *SQLUserRepository) get(ctx context.Context, q string, arg any) (*domain.User, error) {
	u, err := scanUser(r.db.queryRow(ctx, q, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound("user")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (r *SQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.queryRow(ctx, `INSERT INTO users (name, email, password) VALUES (?, ?, ?) RETURNING id`,
		user.Name, user.Email, user.PasswordHash).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *SQLUserRepository) Update(ctx context.Context, user *domain.User) error {
	var (
		res sql.Result
		err error
	)
	if user.PasswordHash != "" {
		res, err = r.db.exec(ctx, `UPDATE users SET name = ?, email = ?, password = ? WHERE id = ?`,
			user.Name, user.Email, user.PasswordHash, user.ID)
	} else {
		res, err = r.db.exec(ctx, `UPDATE users SET name = ?, email = ? WHERE id = ?`,
			user.Name, user.Email, user.ID)
	}
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailExists
		}
		return fmt.Errorf("update user %d: %w", user.ID, err)
	}
	return requireAffected(res, "user")
}

// DeleteUnreferenced deletes every user that exists and has no bookings.
// Other ids are reported in the result's failures.
func (r *SQLUserRepository) DeleteUnreferenced(ctx context.Context, ids []int64) (domain.BatchResult, error) {
	return r.db.deleteEach(ctx, ids, func(ctx context.Context, tx *sql.Tx, id int64) error {
		return r.db.guardedDelete(ctx, tx, TableUsers, "user", "user_id", id)
	})
}

func scanUsers(rows *sql.Rows) ([]domain.User, error) {
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func scanUser(row scannable) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash)
	return u, err
}

var _ UserRepository = (*SQLUserRepository)(nil)
