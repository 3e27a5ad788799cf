package reactivity

import (
	"math"
	"reflect"
)

// Equal is the default equality used by every signal unless a WithEqual
// option overrides it: "same-value" semantics per spec §3/§4.1 — NaN
// compares equal to itself, and +0/-0 are distinguished, exactly like
// JavaScript's Object.is. Types that aren't comparable with == (slices,
// maps, funcs nested in a struct, ...) fall back to reflect.DeepEqual.
func Equal[T any](a, b T) bool {
	av, bv := any(a), any(b)

	if af, ok := av.(float64); ok {
		return sameValueFloat64(af, bv.(float64))
	}
	if af, ok := av.(float32); ok {
		return sameValueFloat64(float64(af), float64(bv.(float32)))
	}

	t := reflect.TypeOf(av)
	if t == nil || t.Comparable() {
		return av == bv
	}
	return reflect.DeepEqual(av, bv)
}

func sameValueFloat64(a, b float64) bool {
	if a != a && b != b {
		return true
	}
	if a == 0 && b == 0 {
		return math.Signbit(a) == math.Signbit(b)
	}
	return a == b
}

func anyEqual[T any](equal func(a, b T) bool) func(a, b any) bool {
	return func(a, b any) bool {
		return equal(as[T](a), as[T](b))
	}
}
