package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/ports/storage"
)

type AppointmentsRepo struct {
	q Querier
}

func NewAppointmentsRepo(q Querier) *AppointmentsRepo {
	return &AppointmentsRepo{q: q}
}

const appointmentSelect = `SELECT id, pet_id, doctor_id, owner_user_id,
	to_char(appt_date, 'YYYY-MM-DD'), appt_time, reason, notes, status,
	report_id, reschedule, created_at, updated_at
	FROM appointments`

func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	resched, err := marshalReschedule(a.Reschedule)
	if err != nil {
		return err
	}
	_, err = r.q.ExecContext(ctx, `
		INSERT INTO appointments (
			id, pet_id, doctor_id, owner_user_id,
			appt_date, appt_time, reason, notes, status,
			report_id, reschedule, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5::date,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		a.ID,
		a.PetID,
		a.DoctorID,
		a.OwnerUserID,
		a.Date,
		a.Time,
		a.Reason,
		a.Notes,
		string(a.Status),
		a.ReportID,
		resched,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return mapErr(err)
}

func (r *AppointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	resched, err := marshalReschedule(a.Reschedule)
	if err != nil {
		return err
	}
	res, err := r.q.ExecContext(ctx, `
		UPDATE appointments
		SET
			pet_id = $2,
			doctor_id = $3,
			owner_user_id = $4,
			appt_date = $5::date,
			appt_time = $6,
			reason = $7,
			notes = $8,
			status = $9,
			report_id = $10,
			reschedule = $11,
			updated_at = $12
		WHERE id = $1
	`,
		a.ID,
		a.PetID,
		a.DoctorID,
		a.OwnerUserID,
		a.Date,
		a.Time,
		a.Reason,
		a.Notes,
		string(a.Status),
		a.ReportID,
		resched,
		a.UpdatedAt,
	)
	if err != nil {
		return mapErr(err)
	}
	return mustAffect(res)
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return appointments.Appointment{}, storage.ErrNotFound
	}
	row := r.q.QueryRowContext(ctx, appointmentSelect+` WHERE id = $1`, id)
	return scanAppointment(row)
}

func (r *AppointmentsRepo) List(ctx context.Context, filter appointments.ListFilter) ([]appointments.Appointment, error) {
	query := appointmentSelect + ` WHERE 1=1`
	args := make([]any, 0, 5)
	add := func(clause string, v any) {
		args = append(args, v)
		query += fmt.Sprintf(clause, len(args))
	}
	if filter.OwnerUserID != "" {
		add(" AND owner_user_id = $%d", filter.OwnerUserID)
	}
	if filter.DoctorID != "" {
		add(" AND doctor_id = $%d", filter.DoctorID)
	}
	if filter.PetID != "" {
		add(" AND pet_id = $%d", filter.PetID)
	}
	if filter.Status != "" {
		add(" AND status = $%d", string(filter.Status))
	}
	if filter.Date != "" {
		add(" AND appt_date = $%d::date", filter.Date)
	}
	query += " ORDER BY appt_date ASC, appt_time ASC, created_at ASC"

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AppointmentsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

func (r *AppointmentsRepo) DeleteByOwner(ctx context.Context, ownerUserID string) (int, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM appointments WHERE owner_user_id = $1`, ownerUserID)
	if err != nil {
		return 0, err
	}
	return affected(res), nil
}

func (r *AppointmentsRepo) DeleteByPets(ctx context.Context, petIDs []string) (int, error) {
	if len(petIDs) == 0 {
		return 0, nil
	}
	res, err := r.q.ExecContext(ctx, `DELETE FROM appointments WHERE pet_id = ANY($1)`, petIDs)
	if err != nil {
		return 0, err
	}
	return affected(res), nil
}

func marshalReschedule(info *appointments.RescheduleInfo) ([]byte, error) {
	if info == nil {
		return nil, nil
	}
	b, err := json.Marshal(info)
	if err != nil {
		return nil, fmt.Errorf("encode reschedule: %w", err)
	}
	return b, nil
}

func scanAppointment(s scanner) (appointments.Appointment, error) {
	var (
		a       appointments.Appointment
		status  string
		resched []byte
	)
	err := s.Scan(
		&a.ID,
		&a.PetID,
		&a.DoctorID,
		&a.OwnerUserID,
		&a.Date,
		&a.Time,
		&a.Reason,
		&a.Notes,
		&status,
		&a.ReportID,
		&resched,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return appointments.Appointment{}, mapErr(err)
	}
	a.Status = appointments.Status(status)
	if len(resched) > 0 {
		var info appointments.RescheduleInfo
		if err := json.Unmarshal(resched, &info); err != nil {
			return appointments.Appointment{}, fmt.Errorf("decode reschedule: %w", err)
		}
		a.Reschedule = &info
	}
	return a, nil
}
