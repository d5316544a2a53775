package chain

import (
	"context"
	"errors"
	"fmt"

	envstore "github.com/bnema/mission-control/internal/adapters/secrets/env"
	filestore "github.com/bnema/mission-control/internal/adapters/secrets/file"
	"github.com/bnema/mission-control/internal/ports"
)

// Store consults its backends in order. Reads return the first hit, writes
// land in the first backend that accepts them and deletes reach every
// backend.
type Store struct {
	stores []ports.SecretStore
}

var _ ports.SecretStore = (*Store)(nil)

var errNoStores = errors.New("secret chain needs at least one store")

func NewStore(stores ...ports.SecretStore) (*Store, error) {
	if len(stores) == 0 {
		return nil, errNoStores
	}
	for i, store := range stores {
		if store == nil {
			return nil, fmt.Errorf("secret store %d is nil", i)
		}
	}

	return &Store{stores: stores}, nil
}

// NewEnvFirstWithFileFallback reads MC_* variables before the file store
// rooted at fileRoot.
func NewEnvFirstWithFileFallback(fileRoot string) (*Store, error) {
	return NewStore(envstore.NewStore(envstore.DefaultPrefix), filestore.NewStore(fileRoot))
}

func (s *Store) Get(ctx context.Context, ref string) (string, error) {
	var errs []error
	for _, store := range s.stores {
		value, err := store.Get(ctx, ref)
		if err == nil {
			return value, nil
		}
		if shouldStop(err) {
			return "", err
		}
		errs = append(errs, err)
	}

	return "", fmt.Errorf("get secret %q: %w", ref, errors.Join(errs...))
}

func (s *Store) Put(ctx context.Context, ref string, value string) error {
	var errs []error
	for _, store := range s.stores {
		err := store.Put(ctx, ref, value)
		if err == nil {
			return nil
		}
		if shouldStop(err) {
			return err
		}
		errs = append(errs, err)
	}

	return fmt.Errorf("put secret %q: %w", ref, errors.Join(errs...))
}

func (s *Store) Delete(ctx context.Context, ref string) error {
	var errs []error
	for _, store := range s.stores {
		err := store.Delete(ctx, ref)
		if err == nil || errors.Is(err, envstore.ErrReadOnly) {
			continue
		}
		if shouldStop(err) {
			return err
		}
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("delete secret %q: %w", ref, errors.Join(errs...))
	}
	return nil
}

func shouldStop(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
