package postgres

import (
	"context"
	"strings"

	"vet-clinic/internal/domain/actor"
	"vet-clinic/internal/domain/users"
	"vet-clinic/internal/ports/storage"
)

type UsersRepo struct {
	q Querier
}

func NewUsersRepo(q Querier) *UsersRepo {
	return &UsersRepo{q: q}
}

const userColumns = `id, name, email, password_hash, phone, role,
	occupation, availability, leave_days, profile_image,
	created_at, updated_at`

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		u.ID,
		u.Name,
		users.NormalizeEmail(u.Email),
		u.PasswordHash,
		u.Phone,
		string(u.Role),
		u.Occupation,
		u.Availability,
		textArray(u.LeaveDays),
		u.ProfileImage,
		u.CreatedAt,
		u.UpdatedAt,
	)
	return mapErr(err)
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE users
		SET
			name = $2,
			email = $3,
			password_hash = $4,
			phone = $5,
			role = $6,
			occupation = $7,
			availability = $8,
			leave_days = $9,
			profile_image = $10,
			updated_at = $11
		WHERE id = $1
	`,
		u.ID,
		u.Name,
		users.NormalizeEmail(u.Email),
		u.PasswordHash,
		u.Phone,
		string(u.Role),
		u.Occupation,
		u.Availability,
		textArray(u.LeaveDays),
		u.ProfileImage,
		u.UpdatedAt,
	)
	if err != nil {
		return mapErr(err)
	}
	return mustAffect(res)
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return users.User{}, storage.ErrNotFound
	}
	row := r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	email = users.NormalizeEmail(email)
	if email == "" {
		return users.User{}, storage.ErrNotFound
	}
	row := r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = $1`, email)
	return scanUser(row)
}

func (r *UsersRepo) List(ctx context.Context, filter users.ListFilter) ([]users.User, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE ($1 = '' OR role = $1)
		ORDER BY created_at ASC
	`, string(filter.Role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]users.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UsersRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (users.User, error) {
	var (
		u    users.User
		role string
	)
	err := s.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Phone,
		&role,
		&u.Occupation,
		&u.Availability,
		typeMap.SQLScanner(&u.LeaveDays),
		&u.ProfileImage,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return users.User{}, mapErr(err)
	}
	u.Role = actor.Role(role)
	return u, nil
}
