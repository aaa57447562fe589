package ports

import "context"

// Serializer runs fn so that calls sharing a key never overlap. It is used to
// wrap read-modify-write cycles on a single post or profile document.
type Serializer interface {
	Do(ctx context.Context, key string, fn func(ctx context.Context) error) error
}
