package ports

import "context"

// SecretStore resolves secret references such as "upstream/token". Get
// returns domain.ErrSecretNotFound for unknown references.
type SecretStore interface {
	Get(ctx context.Context, ref string) (string, error)
	Put(ctx context.Context, ref string, value string) error
	Delete(ctx context.Context, ref string) error
}
