// Package layered resolves a value from an ordered list of configuration
// layers. The first layer holding a non-empty value wins; layers are never
// merged with each other.
package layered

import "reflect"

// First returns the first layer for which empty reports false. When every
// layer is empty the zero value of T is returned.
func First[T any](empty func(T) bool, layers ...T) T {
	for _, layer := range layers {
		if !empty(layer) {
			return layer
		}
	}
	var zero T
	return zero
}

// Pointer returns the first layer that is non-nil and does not point at a zero
// value. An explicitly configured `{}` therefore falls through to the next
// layer, the same as an unset field.
func Pointer[T any](layers ...*T) *T {
	return First(IsEmptyPointer[T], layers...)
}

// Map returns the first non-empty map. The winning map is returned as-is;
// keys from lower layers are not folded in.
func Map[K comparable, V any](layers ...map[K]V) map[K]V {
	return First(func(m map[K]V) bool { return len(m) == 0 }, layers...)
}

// Slice returns the first non-empty slice.
func Slice[E any](layers ...[]E) []E {
	return First(func(s []E) bool { return len(s) == 0 }, layers...)
}

// String returns the first non-empty string.
func String(layers ...string) string {
	return First(func(s string) bool { return s == "" }, layers...)
}

// IsEmptyPointer reports whether p is nil or points at the zero value of T.
func IsEmptyPointer[T any](p *T) bool {
	if p == nil {
		return true
	}
	return reflect.ValueOf(p).Elem().IsZero()
}
