package domain

import "context"

type identityKey struct{}

// Identity is the caller resolved from a bearer credential.
type Identity struct {
	SubjectID int64
	Email     string
}

// Valid reports whether the identity carries a usable subject id.
func (i Identity) Valid() bool { return i.SubjectID > 0 }

// WithIdentity stores an Identity in the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext extracts the Identity from the context.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
