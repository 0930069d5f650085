package di

// AnyToken identifies a registrable service by name. Two tokens with the
// same name refer to the same registration slot.
type AnyToken interface {
	Name() string
}

// Token is a typed service token. The type parameter is phantom: it never
// appears in a field, but it lets the generic Resolve helpers return a
// statically known type without casts at call sites.
type Token[T any] struct {
	name string
}

// NewToken creates a typed token with the given name.
func NewToken[T any](name string) Token[T] {
	return Token[T]{name: name}
}

// Name returns the token's registration name.
func (t Token[T]) Name() string { return t.name }
