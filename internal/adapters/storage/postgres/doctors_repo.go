package postgres

import (
	"context"
	"strings"

	"vet-clinic/internal/domain/doctors"
	"vet-clinic/internal/ports/storage"
)

type DoctorsRepo struct {
	q Querier
}

func NewDoctorsRepo(q Querier) *DoctorsRepo {
	return &DoctorsRepo{q: q}
}

const doctorColumns = `id, user_id, specialization, experience_years, consultation_fee,
	available_days, available_times, leave_days, bio, verified,
	created_at, updated_at`

func (r *DoctorsRepo) Create(ctx context.Context, d doctors.Doctor) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO doctors (`+doctorColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		d.ID,
		d.UserID,
		d.Specialization,
		d.ExperienceYears,
		d.ConsultationFee,
		textArray(d.AvailableDays),
		textArray(d.AvailableTimes),
		textArray(d.LeaveDays),
		d.Bio,
		d.Verified,
		d.CreatedAt,
		d.UpdatedAt,
	)
	return mapErr(err)
}

func (r *DoctorsRepo) Update(ctx context.Context, d doctors.Doctor) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE doctors
		SET
			specialization = $2,
			experience_years = $3,
			consultation_fee = $4,
			available_days = $5,
			available_times = $6,
			leave_days = $7,
			bio = $8,
			verified = $9,
			updated_at = $10
		WHERE id = $1
	`,
		d.ID,
		d.Specialization,
		d.ExperienceYears,
		d.ConsultationFee,
		textArray(d.AvailableDays),
		textArray(d.AvailableTimes),
		textArray(d.LeaveDays),
		d.Bio,
		d.Verified,
		d.UpdatedAt,
	)
	if err != nil {
		return mapErr(err)
	}
	return mustAffect(res)
}

func (r *DoctorsRepo) GetByID(ctx context.Context, id string) (doctors.Doctor, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return doctors.Doctor{}, storage.ErrNotFound
	}
	row := r.q.QueryRowContext(ctx, `SELECT `+doctorColumns+` FROM doctors WHERE id = $1`, id)
	return scanDoctor(row)
}

func (r *DoctorsRepo) GetByUserID(ctx context.Context, userID string) (doctors.Doctor, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return doctors.Doctor{}, storage.ErrNotFound
	}
	row := r.q.QueryRowContext(ctx, `SELECT `+doctorColumns+` FROM doctors WHERE user_id = $1`, userID)
	return scanDoctor(row)
}

func (r *DoctorsRepo) List(ctx context.Context) ([]doctors.Doctor, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+doctorColumns+` FROM doctors ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]doctors.Doctor, 0)
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DoctorsRepo) DeleteByUserID(ctx context.Context, userID string) (int, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM doctors WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return affected(res), nil
}

func scanDoctor(s scanner) (doctors.Doctor, error) {
	var d doctors.Doctor
	err := s.Scan(
		&d.ID,
		&d.UserID,
		&d.Specialization,
		&d.ExperienceYears,
		&d.ConsultationFee,
		typeMap.SQLScanner(&d.AvailableDays),
		typeMap.SQLScanner(&d.AvailableTimes),
		typeMap.SQLScanner(&d.LeaveDays),
		&d.Bio,
		&d.Verified,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return doctors.Doctor{}, mapErr(err)
	}
	return d, nil
}
