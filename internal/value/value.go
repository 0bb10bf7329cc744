// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package value provides utilities for working with generic type parameters
// as payload at runtime.
//
// Zero-sized type (ZST) detection via IsZST[E] is used in two places:
// the binary stream omits zero-sized payloads, gob can't encode them,
// and the tree diagram omits them, they carry no information and would
// only add line noise.
//
// This is an internal package used by the tokentree implementation.
package value

import (
	"reflect"
)

// IsZST reports whether type E is a zero-sized type (ZST).
//
// Zero-sized types such as struct{}, [0]byte, or structs/arrays with no fields
// occupy no memory. The Go runtime optimizes allocations of ZSTs by returning
// pointers to the same memory address (typically runtime.zerobase).
//
// This function exploits that optimization: it allocates two instances of E
// and compares their addresses. If the addresses are equal, E must be a ZST,
// since distinct non-zero-sized allocations would have different addresses.
func IsZST[E any]() bool {
	a, b := escapeToHeap[E]()
	return a == b
}

// escapeToHeap forces two allocations of type E to escape to the heap.
//
// The go:noinline directive prevents the compiler from inlining
// this function and proving that a == b at compile time.
//
//go:noinline
func escapeToHeap[E any]() (*E, *E) {
	return new(E), new(E)
}

// Equaler is a generic interface for types that can decide their own
// equality logic. It can be used to override the potentially expensive
// default comparison with [reflect.DeepEqual].
type Equaler[E any] interface {
	Equal(other E) bool
}

// Equal compares two values of type E for equality.
// If E implements Equaler[E], that custom equality method is used,
// avoiding the potentially expensive reflect.DeepEqual.
// Otherwise, reflect.DeepEqual is used as a fallback.
func Equal[E any](v1, v2 E) bool {
	// you can't assert directly on a type parameter
	if v1, ok := any(v1).(Equaler[E]); ok {
		return v1.Equal(v2)
	}
	// fallback
	return reflect.DeepEqual(v1, v2)
}

// Cloner is an interface that enables deep cloning of values of type E.
type Cloner[E any] interface {
	Clone() E
}

// CloneFunc is a type definition for a function that takes a value of type E
// and returns the (possibly cloned) value of type E.
type CloneFunc[E any] func(E) E

// CloneFnFactory returns a CloneFunc.
// If E implements Cloner[E], the returned function performs
// a deep copy using Clone(), otherwise it returns nil.
func CloneFnFactory[E any]() CloneFunc[E] {
	var zero E
	// you can't assert directly on a type parameter
	if _, ok := any(zero).(Cloner[E]); ok {
		return CloneVal[E]
	}
	return nil
}

// CloneVal returns a deep clone of val by calling Clone when
// val implements Cloner[E]. If val does not implement
// Cloner[E] or the Cloner receiver is nil (val is a nil pointer),
// CloneVal returns val unchanged.
func CloneVal[E any](val E) E {
	// you can't assert directly on a type parameter
	c, ok := any(val).(Cloner[E])
	if !ok || c == nil {
		return val
	}
	return c.Clone()
}

// CopyVal just copies the value of any type E.
func CopyVal[E any](val E) E {
	return val
}
