package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"vet-clinic/internal/domain/reports"
	"vet-clinic/internal/ports/storage"
)

type ReportsRepo struct {
	q Querier
}

func NewReportsRepo(q Querier) *ReportsRepo {
	return &ReportsRepo{q: q}
}

const reportColumns = `id, pet_id, owner_user_id, doctor_id, appointment_id,
	report_date, summary, diagnosis, prescription, notes,
	medications, recommendations, created_at, updated_at`

func (r *ReportsRepo) Create(ctx context.Context, rep reports.Report) error {
	meds, err := marshalMedications(rep.Medications)
	if err != nil {
		return err
	}
	_, err = r.q.ExecContext(ctx, `
		INSERT INTO reports (`+reportColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		rep.ID,
		rep.PetID,
		rep.OwnerUserID,
		rep.DoctorID,
		rep.AppointmentID,
		rep.Date,
		rep.Summary,
		rep.Diagnosis,
		rep.Prescription,
		rep.Notes,
		meds,
		textArray(rep.Recommendations),
		rep.CreatedAt,
		rep.UpdatedAt,
	)
	return mapErr(err)
}

func (r *ReportsRepo) Update(ctx context.Context, rep reports.Report) error {
	meds, err := marshalMedications(rep.Medications)
	if err != nil {
		return err
	}
	res, err := r.q.ExecContext(ctx, `
		UPDATE reports
		SET
			appointment_id = $2,
			report_date = $3,
			summary = $4,
			diagnosis = $5,
			prescription = $6,
			notes = $7,
			medications = $8,
			recommendations = $9,
			updated_at = $10
		WHERE id = $1
	`,
		rep.ID,
		rep.AppointmentID,
		rep.Date,
		rep.Summary,
		rep.Diagnosis,
		rep.Prescription,
		rep.Notes,
		meds,
		textArray(rep.Recommendations),
		rep.UpdatedAt,
	)
	if err != nil {
		return mapErr(err)
	}
	return mustAffect(res)
}

func (r *ReportsRepo) GetByID(ctx context.Context, id string) (reports.Report, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return reports.Report{}, storage.ErrNotFound
	}
	row := r.q.QueryRowContext(ctx, `SELECT `+reportColumns+` FROM reports WHERE id = $1`, id)
	return scanReport(row)
}

func (r *ReportsRepo) List(ctx context.Context, filter reports.ListFilter) ([]reports.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE 1=1`
	args := make([]any, 0, 3)
	add := func(clause string, v any) {
		args = append(args, v)
		query += fmt.Sprintf(clause, len(args))
	}
	if filter.PetID != "" {
		add(" AND pet_id = $%d", filter.PetID)
	}
	if filter.DoctorID != "" {
		add(" AND doctor_id = $%d", filter.DoctorID)
	}
	if filter.OwnerUserID != "" {
		add(" AND owner_user_id = $%d", filter.OwnerUserID)
	}
	query += " ORDER BY report_date DESC, created_at DESC"

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reports.Report, 0)
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

func (r *ReportsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

func (r *ReportsRepo) DeleteByPets(ctx context.Context, petIDs []string) (int, error) {
	if len(petIDs) == 0 {
		return 0, nil
	}
	res, err := r.q.ExecContext(ctx, `DELETE FROM reports WHERE pet_id = ANY($1)`, petIDs)
	if err != nil {
		return 0, err
	}
	return affected(res), nil
}

func marshalMedications(meds []reports.Medication) ([]byte, error) {
	if meds == nil {
		meds = []reports.Medication{}
	}
	b, err := json.Marshal(meds)
	if err != nil {
		return nil, fmt.Errorf("encode medications: %w", err)
	}
	return b, nil
}

func scanReport(s scanner) (reports.Report, error) {
	var (
		rep  reports.Report
		meds []byte
	)
	err := s.Scan(
		&rep.ID,
		&rep.PetID,
		&rep.OwnerUserID,
		&rep.DoctorID,
		&rep.AppointmentID,
		&rep.Date,
		&rep.Summary,
		&rep.Diagnosis,
		&rep.Prescription,
		&rep.Notes,
		&meds,
		typeMap.SQLScanner(&rep.Recommendations),
		&rep.CreatedAt,
		&rep.UpdatedAt,
	)
	if err != nil {
		return reports.Report{}, mapErr(err)
	}
	if len(meds) > 0 {
		if err := json.Unmarshal(meds, &rep.Medications); err != nil {
			return reports.Report{}, fmt.Errorf("decode medications: %w", err)
		}
	}
	return rep, nil
}
