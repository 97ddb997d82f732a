package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/domain/users"
	"vet-clinic/internal/ports/storage"
)

func TestWithinTx_RollsBackOnError(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if err := s.Pets().Create(ctx, pets.Pet{ID: "pet-1", OwnerUserID: "owner-1"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	boom := errors.New("boom")
	err := s.WithinTx(ctx, func(ctx context.Context, tx storage.Repos) error {
		if err := tx.Pets().Delete(ctx, "pet-1"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	if _, err := s.Pets().GetByID(ctx, "pet-1"); err != nil {
		t.Fatalf("pet must survive rolled back tx: %v", err)
	}
}

func TestWithinTx_CommitsOnSuccess(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	err := s.WithinTx(ctx, func(ctx context.Context, tx storage.Repos) error {
		return tx.Pets().Create(ctx, pets.Pet{ID: "pet-1", OwnerUserID: "owner-1"})
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}
	if _, err := s.Pets().GetByID(ctx, "pet-1"); err != nil {
		t.Fatalf("expected committed pet: %v", err)
	}
}

func TestUsers_EmailUniqueCaseInsensitive(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if err := s.Users().Create(ctx, users.User{ID: "u1", Email: "ana@vet.io"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := s.Users().Create(ctx, users.User{ID: "u2", Email: " ANA@vet.io "})
	if !errors.Is(err, storage.ErrDuplicate) {
		t.Fatalf("expected duplicate, got %v", err)
	}

	u, err := s.Users().GetByEmail(ctx, "Ana@Vet.io")
	if err != nil || u.ID != "u1" {
		t.Fatalf("GetByEmail: %v %#v", err, u)
	}
}

func TestPets_ReturnedValuesAreCopies(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_ = s.Pets().Create(ctx, pets.Pet{ID: "pet-1", OwnerUserID: "o", Reports: []string{"r1"}, CreatedAt: time.Now()})

	p, _ := s.Pets().GetByID(ctx, "pet-1")
	p.Reports[0] = "mutated"

	again, _ := s.Pets().GetByID(ctx, "pet-1")
	if again.Reports[0] != "r1" {
		t.Fatalf("stored pet was mutated through returned copy")
	}
}

func TestPets_ListWithEmptyIDsReturnsNothing(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_ = s.Pets().Create(ctx, pets.Pet{ID: "pet-1", OwnerUserID: "o"})

	out, err := s.Pets().List(ctx, pets.ListFilter{IDs: []string{}})
	if err != nil || len(out) != 0 {
		t.Fatalf("expected empty list, got %d err=%v", len(out), err)
	}
}
