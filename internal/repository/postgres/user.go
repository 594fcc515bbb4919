package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fleetyard-backend/internal/domain"
	"fleetyard-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, email, password_hash, role, permissions, created_by, created_on`

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	query := `INSERT INTO users (id, username, email, password_hash, role, permissions, created_by, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	now := time.Now().Format(time.RFC3339)
	_, err := querier(ctx, r.db).ExecContext(ctx, query,
		u.ID, u.Username, u.Email, u.PasswordHash, u.Role, pq.Array(capabilityStrings(u.Permissions)), u.CreatedBy, now)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: username or email already taken", domain.ErrConflict)
	}
	if err != nil {
		return err
	}
	u.CreatedOn = now
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := querier(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, id)
	}
	return u, err
}

func (r *userRepository) GetByLogin(ctx context.Context, usernameOrEmail string) (*domain.User, error) {
	row := querier(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1 OR email = $1`, usernameOrEmail)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, usernameOrEmail)
	}
	return u, err
}

func (r *userRepository) List(ctx context.Context, createdBy string) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	var args []interface{}
	if createdBy != "" {
		query += ` WHERE created_by = $1`
		args = append(args, createdBy)
	}
	query += ` ORDER BY created_on`

	rows, err := querier(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET username=$1, email=$2, password_hash=$3, role=$4, permissions=$5 WHERE id=$6`
	res, err := querier(ctx, r.db).ExecContext(ctx, query,
		u.Username, u.Email, u.PasswordHash, u.Role, pq.Array(capabilityStrings(u.Permissions)), u.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: user %s", domain.ErrNotFound, u.ID)
	}
	return nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	u := &domain.User{}
	var perms pq.StringArray
	var createdBy sql.NullString
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &perms, &createdBy, &u.CreatedOn)
	if err != nil {
		return nil, err
	}
	for _, p := range perms {
		u.Permissions = append(u.Permissions, domain.Capability(p))
	}
	if createdBy.Valid {
		u.CreatedBy = &createdBy.String
	}
	return u, nil
}

func capabilityStrings(caps []domain.Capability) []string {
	out := make([]string, len(caps))
	for i, c := range caps {
		out[i] = string(c)
	}
	return out
}
