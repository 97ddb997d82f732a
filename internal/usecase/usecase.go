// Package usecase contiene lo que comparten los casos de uso: dependencias
// comunes y traducción de errores de storage.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"vet-clinic/internal/apperr"
	"vet-clinic/internal/domain/policy"
	"vet-clinic/internal/platform/logger"
	"vet-clinic/internal/ports/notify"
	"vet-clinic/internal/ports/storage"
)

// Deps son las dependencias de todos los servicios.
type Deps struct {
	Store     storage.Store
	Policy    *policy.Evaluator
	Publisher notify.Publisher
	Log       logger.Logger

	Now   func() time.Time
	NewID func() string
}

// Normalize completa los opcionales con defaults.
func (d Deps) Normalize() Deps {
	if d.Policy == nil && d.Store != nil {
		d.Policy = policy.NewEvaluator(d.Store.Doctors())
	}
	if d.Publisher == nil {
		d.Publisher = notify.Noop{}
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	if d.Now == nil {
		d.Now = func() time.Time { return time.Now().UTC() }
	}
	if d.NewID == nil {
		d.NewID = uuid.NewString
	}
	return d
}

// Publish es best-effort: un fallo solo se loguea.
func (d Deps) Publish(ctx context.Context, key string, payload any) {
	if err := d.Publisher.Publish(ctx, key, payload); err != nil {
		d.Log.Warn("publish failed", map[string]any{"key": key, "err": err})
	}
}

// Lookup traduce storage.ErrNotFound a apperr NotFound con un code por entidad.
func Lookup(err error, entity policy.Entity, id string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NotFound(string(entity)+"_not_found", fmt.Sprintf("%s %s not found", entity, id))
	}
	return fmt.Errorf("load %s %s: %w", entity, id, err)
}

// Persist envuelve errores de escritura.
func Persist(err error, what string) error {
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	return fmt.Errorf("%s: %w", what, err)
}
