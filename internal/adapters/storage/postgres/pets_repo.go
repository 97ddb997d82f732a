package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/ports/storage"
)

type PetsRepo struct {
	q Querier
}

func NewPetsRepo(q Querier) *PetsRepo {
	return &PetsRepo{q: q}
}

const petColumns = `id, owner_user_id, name, species, breed, age, weight,
	medical_history, vaccinations, prescriptions, allergies, report_ids,
	created_at, updated_at`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	vacc, presc, err := marshalPetJSON(p)
	if err != nil {
		return err
	}
	_, err = r.q.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		p.ID,
		p.OwnerUserID,
		p.Name,
		string(p.Species),
		p.Breed,
		p.Age,
		p.Weight,
		textArray(p.MedicalHistory),
		vacc,
		presc,
		textArray(p.Allergies),
		textArray(p.Reports),
		p.CreatedAt,
		p.UpdatedAt,
	)
	return mapErr(err)
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	vacc, presc, err := marshalPetJSON(p)
	if err != nil {
		return err
	}
	res, err := r.q.ExecContext(ctx, `
		UPDATE pets
		SET
			owner_user_id = $2,
			name = $3,
			species = $4,
			breed = $5,
			age = $6,
			weight = $7,
			medical_history = $8,
			vaccinations = $9,
			prescriptions = $10,
			allergies = $11,
			report_ids = $12,
			updated_at = $13
		WHERE id = $1
	`,
		p.ID,
		p.OwnerUserID,
		p.Name,
		string(p.Species),
		p.Breed,
		p.Age,
		p.Weight,
		textArray(p.MedicalHistory),
		vacc,
		presc,
		textArray(p.Allergies),
		textArray(p.Reports),
		p.UpdatedAt,
	)
	if err != nil {
		return mapErr(err)
	}
	return mustAffect(res)
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, storage.ErrNotFound
	}
	row := r.q.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)
	return scanPet(row)
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	return r.List(ctx, pets.ListFilter{OwnerUserID: ownerUserID})
}

func (r *PetsRepo) List(ctx context.Context, filter pets.ListFilter) ([]pets.Pet, error) {
	if filter.IDs != nil && len(filter.IDs) == 0 {
		return []pets.Pet{}, nil
	}

	query := `SELECT ` + petColumns + ` FROM pets WHERE 1=1`
	args := make([]any, 0, 3)
	if filter.OwnerUserID != "" {
		args = append(args, filter.OwnerUserID)
		query += fmt.Sprintf(" AND owner_user_id = $%d", len(args))
	}
	if filter.IDs != nil {
		args = append(args, filter.IDs)
		query += fmt.Sprintf(" AND id = ANY($%d)", len(args))
	}
	if filter.Species != "" {
		args = append(args, string(filter.Species))
		query += fmt.Sprintf(" AND species = $%d", len(args))
	}
	query += " ORDER BY created_at ASC"

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

func (r *PetsRepo) DeleteByOwner(ctx context.Context, ownerUserID string) (int, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM pets WHERE owner_user_id = $1`, ownerUserID)
	if err != nil {
		return 0, err
	}
	return affected(res), nil
}

func marshalPetJSON(p pets.Pet) ([]byte, []byte, error) {
	vacc := p.Vaccinations
	if vacc == nil {
		vacc = []pets.Vaccination{}
	}
	presc := p.Prescriptions
	if presc == nil {
		presc = []pets.Prescription{}
	}
	vb, err := json.Marshal(vacc)
	if err != nil {
		return nil, nil, fmt.Errorf("encode vaccinations: %w", err)
	}
	pb, err := json.Marshal(presc)
	if err != nil {
		return nil, nil, fmt.Errorf("encode prescriptions: %w", err)
	}
	return vb, pb, nil
}

func scanPet(s scanner) (pets.Pet, error) {
	var (
		p           pets.Pet
		species     string
		vacc, presc []byte
	)
	err := s.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&species,
		&p.Breed,
		&p.Age,
		&p.Weight,
		typeMap.SQLScanner(&p.MedicalHistory),
		&vacc,
		&presc,
		typeMap.SQLScanner(&p.Allergies),
		typeMap.SQLScanner(&p.Reports),
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return pets.Pet{}, mapErr(err)
	}
	p.Species = pets.Species(species)
	if len(vacc) > 0 {
		if err := json.Unmarshal(vacc, &p.Vaccinations); err != nil {
			return pets.Pet{}, fmt.Errorf("decode vaccinations: %w", err)
		}
	}
	if len(presc) > 0 {
		if err := json.Unmarshal(presc, &p.Prescriptions); err != nil {
			return pets.Pet{}, fmt.Errorf("decode prescriptions: %w", err)
		}
	}
	return p, nil
}
