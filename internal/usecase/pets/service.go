package pets

import (
	"context"
	"strings"

	"vet-clinic/internal/apperr"
	"vet-clinic/internal/domain/actor"
	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/domain/policy"
	"vet-clinic/internal/domain/reports"
	"vet-clinic/internal/ports/storage"
	"vet-clinic/internal/usecase"
)

type Service struct {
	usecase.Deps
}

func NewService(d usecase.Deps) *Service {
	return &Service{Deps: d.Normalize()}
}

type CreateInput struct {
	OwnerUserID string // vacío = el actor (dueño)
	Name        string
	Species     string
	Breed       string
	Age         int
	Weight      float64
	Allergies   []string
}

// Create: el dueño para sí mismo; admin o doctor en nombre de un pet_owner existente.
func (s *Service) Create(ctx context.Context, a actor.Actor, in CreateInput) (pets.Pet, error) {
	sub, err := s.Policy.Resolve(ctx, a)
	if err != nil {
		return pets.Pet{}, err
	}

	ownerID := strings.TrimSpace(in.OwnerUserID)
	if ownerID == "" {
		if !sub.Caps.MutateOwn {
			return pets.Pet{}, apperr.Validation("owner_required", "owner_user_id is required")
		}
		ownerID = a.ID
	}
	if err := sub.CanAct(policy.OpCreate, policy.Record{Entity: policy.EntityPet, OwnerID: ownerID}); err != nil {
		return pets.Pet{}, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return pets.Pet{}, apperr.Validation("name_required", "name is required")
	}
	species, err := parseSpecies(in.Species)
	if err != nil {
		return pets.Pet{}, err
	}
	if err := validateMeasures(in.Age, in.Weight); err != nil {
		return pets.Pet{}, err
	}

	now := s.Now()
	p := pets.Pet{
		ID:          s.NewID(),
		OwnerUserID: ownerID,
		Name:        name,
		Species:     species,
		Breed:       strings.TrimSpace(in.Breed),
		Age:         in.Age,
		Weight:      in.Weight,
		Allergies:   trimAll(in.Allergies),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	// Dueño e inserción en la misma unidad de trabajo que las cascadas.
	err = s.Store.WithinTx(ctx, func(ctx context.Context, tx storage.Repos) error {
		owner, err := tx.Users().GetByID(ctx, ownerID)
		if err != nil {
			return usecase.Lookup(err, policy.EntityUser, ownerID)
		}
		if owner.Role != actor.RolePetOwner {
			return apperr.Validation("invalid_owner", "pets can only belong to pet owners")
		}
		if err := tx.Pets().Create(ctx, p); err != nil {
			return usecase.Persist(err, "create pet")
		}
		return nil
	})
	if err != nil {
		return pets.Pet{}, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, a actor.Actor, id string) (pets.Pet, error) {
	sub, err := s.Policy.Resolve(ctx, a)
	if err != nil {
		return pets.Pet{}, err
	}
	p, err := s.Store.Pets().GetByID(ctx, id)
	if err != nil {
		return pets.Pet{}, usecase.Lookup(err, policy.EntityPet, id)
	}
	rec, err := s.record(ctx, s.Store, sub, p)
	if err != nil {
		return pets.Pet{}, err
	}
	if err := sub.CanAct(policy.OpRead, rec); err != nil {
		return pets.Pet{}, err
	}
	return p, nil
}

// List aplica el scope del actor y luego el filtro de consulta.
func (s *Service) List(ctx context.Context, a actor.Actor, filter pets.ListFilter) ([]pets.Pet, error) {
	sub, err := s.Policy.Resolve(ctx, a)
	if err != nil {
		return nil, err
	}
	scope := sub.Scope(policy.EntityPet)
	f, ok := scope.Pets(filter)
	if !ok {
		return []pets.Pet{}, nil
	}

	if scope.ViaDoctorID != "" {
		ids, err := PetIDsForDoctor(ctx, s.Store, scope.ViaDoctorID)
		if err != nil {
			return nil, err
		}
		if f.IDs != nil {
			ids = intersect(ids, f.IDs)
		}
		f.IDs = ids
	}

	out, err := s.Store.Pets().List(ctx, f)
	if err != nil {
		return nil, usecase.Persist(err, "list pets")
	}
	return out, nil
}

type UpdateInput struct {
	Name      *string
	Species   *string
	Breed     *string
	Age       *int
	Weight    *float64
	Allergies *[]string
}

// UpdateProfile: dueño o admin. El dueño de la mascota no se cambia.
func (s *Service) UpdateProfile(ctx context.Context, a actor.Actor, id string, in UpdateInput) (pets.Pet, error) {
	return s.mutate(ctx, a, id, false, func(p *pets.Pet) error {
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return apperr.Validation("name_required", "name cannot be empty")
			}
			p.Name = name
		}
		if in.Species != nil {
			sp, err := parseSpecies(*in.Species)
			if err != nil {
				return err
			}
			p.Species = sp
		}
		if in.Breed != nil {
			p.Breed = strings.TrimSpace(*in.Breed)
		}
		if in.Age != nil {
			p.Age = *in.Age
		}
		if in.Weight != nil {
			p.Weight = *in.Weight
		}
		if in.Allergies != nil {
			p.Allergies = trimAll(*in.Allergies)
		}
		return validateMeasures(p.Age, p.Weight)
	})
}

// AddMedicalHistory agrega una entrada; también el doctor asociado.
func (s *Service) AddMedicalHistory(ctx context.Context, a actor.Actor, id, entry string) (pets.Pet, error) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return pets.Pet{}, apperr.Validation("entry_required", "medical history entry is required")
	}
	return s.mutate(ctx, a, id, true, func(p *pets.Pet) error {
		p.MedicalHistory = append(p.MedicalHistory, entry)
		return nil
	})
}

func (s *Service) AddVaccination(ctx context.Context, a actor.Actor, id string, v pets.Vaccination) (pets.Pet, error) {
	v.Vaccine = strings.TrimSpace(v.Vaccine)
	if v.Vaccine == "" {
		return pets.Pet{}, apperr.Validation("vaccine_required", "vaccine is required")
	}
	return s.mutate(ctx, a, id, true, func(p *pets.Pet) error {
		if v.Date.IsZero() {
			v.Date = s.Now()
		}
		p.Vaccinations = append(p.Vaccinations, v)
		return nil
	})
}

func (s *Service) AddPrescription(ctx context.Context, a actor.Actor, id string, rx pets.Prescription) (pets.Pet, error) {
	rx.Medicine = strings.TrimSpace(rx.Medicine)
	if rx.Medicine == "" {
		return pets.Pet{}, apperr.Validation("medicine_required", "medicine is required")
	}
	return s.mutate(ctx, a, id, true, func(p *pets.Pet) error {
		if rx.Date.IsZero() {
			rx.Date = s.Now()
		}
		p.Prescriptions = append(p.Prescriptions, rx)
		return nil
	})
}

// mutate: withDoctors habilita al doctor asociado (entradas médicas).
func (s *Service) mutate(ctx context.Context, a actor.Actor, id string, withDoctors bool, fn func(p *pets.Pet) error) (pets.Pet, error) {
	sub, err := s.Policy.Resolve(ctx, a)
	if err != nil {
		return pets.Pet{}, err
	}

	var out pets.Pet
	err = s.Store.WithinTx(ctx, func(ctx context.Context, tx storage.Repos) error {
		p, err := tx.Pets().GetByID(ctx, id)
		if err != nil {
			return usecase.Lookup(err, policy.EntityPet, id)
		}

		rec := policy.PetRecord(p)
		if withDoctors {
			if rec, err = s.record(ctx, tx, sub, p); err != nil {
				return err
			}
		}
		if err := sub.CanAct(policy.OpUpdate, rec); err != nil {
			return err
		}

		owner := p.OwnerUserID
		if err := fn(&p); err != nil {
			return err
		}
		p.OwnerUserID = owner
		p.UpdatedAt = s.Now()

		if err := tx.Pets().Update(ctx, p); err != nil {
			return usecase.Persist(err, "update pet")
		}
		out = p
		return nil
	})
	if err != nil {
		return pets.Pet{}, err
	}
	return out, nil
}

// record arma el Record; para doctores carga los doctores asociados.
func (s *Service) record(ctx context.Context, repos storage.Repos, sub policy.Subject, p pets.Pet) (policy.Record, error) {
	if sub.DoctorID == "" {
		return policy.PetRecord(p), nil
	}
	linked, err := DoctorLinked(ctx, repos, sub.DoctorID, p.ID)
	if err != nil {
		return policy.Record{}, err
	}
	if linked {
		return policy.PetRecord(p, sub.DoctorID), nil
	}
	return policy.PetRecord(p), nil
}

// DoctorLinked: el doctor tiene alguna cita o reporte de la mascota.
func DoctorLinked(ctx context.Context, repos storage.Repos, doctorID, petID string) (bool, error) {
	appts, err := repos.Appointments().List(ctx, appointments.ListFilter{DoctorID: doctorID, PetID: petID})
	if err != nil {
		return false, usecase.Persist(err, "list appointments")
	}
	if len(appts) > 0 {
		return true, nil
	}
	reps, err := repos.Reports().List(ctx, reports.ListFilter{DoctorID: doctorID, PetID: petID})
	if err != nil {
		return false, usecase.Persist(err, "list reports")
	}
	return len(reps) > 0, nil
}

// PetIDsForDoctor devuelve las mascotas visibles vía citas o reportes del doctor.
func PetIDsForDoctor(ctx context.Context, repos storage.Repos, doctorID string) ([]string, error) {
	appts, err := repos.Appointments().List(ctx, appointments.ListFilter{DoctorID: doctorID})
	if err != nil {
		return nil, usecase.Persist(err, "list appointments")
	}
	reps, err := repos.Reports().List(ctx, reports.ListFilter{DoctorID: doctorID})
	if err != nil {
		return nil, usecase.Persist(err, "list reports")
	}

	seen := make(map[string]struct{}, len(appts)+len(reps))
	ids := make([]string, 0, len(appts)+len(reps))
	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, a := range appts {
		add(a.PetID)
	}
	for _, r := range reps {
		add(r.PetID)
	}
	return ids, nil
}

func parseSpecies(raw string) (pets.Species, error) {
	sp := pets.Species(strings.ToLower(strings.TrimSpace(raw)))
	switch sp {
	case pets.SpeciesDog, pets.SpeciesCat, pets.SpeciesBird, pets.SpeciesRabbit, pets.SpeciesOther:
		return sp, nil
	case "":
		return "", apperr.Validation("species_required", "species is required")
	}
	return "", apperr.Validation("invalid_species", "unknown species "+raw)
}

func validateMeasures(age int, weight float64) error {
	if age < 0 {
		return apperr.Validation("invalid_age", "age cannot be negative")
	}
	if weight < 0 {
		return apperr.Validation("invalid_weight", "weight cannot be negative")
	}
	return nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func intersect(a, b []string) []string {
	set := make(map[string]struct{}, len(b))
	for _, id := range b {
		set[id] = struct{}{}
	}
	out := make([]string, 0, len(a))
	for _, id := range a {
		if _, ok := set[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
