package timing

import (
	"reflect"
	"runtime"
)

// fallbackTag is used when a function's runtime name cannot be resolved,
// which only happens for non-function values or stripped binaries.
const fallbackTag = "func"

// FuncName returns a stable identifier for fn: its fully qualified
// runtime name (import path, receiver and method or function name) when
// one can be resolved, otherwise a deterministic fallback. It never
// fails.
func FuncName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return fallbackTag
	}

	f := runtime.FuncForPC(v.Pointer())
	if f == nil || f.Name() == "" {
		return fallbackTag
	}

	return f.Name()
}

// resolveTag picks the explicit tag when given, else derives one from the
// function's identity.
func resolveTag(tag string, fn any) string {
	if tag != "" {
		return tag
	}

	return FuncName(fn)
}

// Wrap returns a function identical in behavior to fn except that every
// invocation is timed under tag. An empty tag derives one from fn's
// runtime name. The returned function forwards fn's result unchanged.
func Wrap[R any](r *Registry, tag string, fn func() R) func() R {
	tag = resolveTag(tag, fn)

	return func() R {
		defer r.Start(tag).Stop()

		return fn()
	}
}

// Wrap1 is Wrap for a one-argument function.
func Wrap1[A, R any](r *Registry, tag string, fn func(A) R) func(A) R {
	tag = resolveTag(tag, fn)

	return func(a A) R {
		defer r.Start(tag).Stop()

		return fn(a)
	}
}

// Wrap2 is Wrap for a two-argument function.
func Wrap2[A, B, R any](r *Registry, tag string, fn func(A, B) R) func(A, B) R {
	tag = resolveTag(tag, fn)

	return func(a A, b B) R {
		defer r.Start(tag).Stop()

		return fn(a, b)
	}
}

// WrapErr wraps a function returning a value and an error. The error is
// propagated to the caller unchanged; the timing measurement is still
// recorded because the span releases on every exit path.
func WrapErr[R any](r *Registry, tag string, fn func() (R, error)) func() (R, error) {
	tag = resolveTag(tag, fn)

	return func() (R, error) {
		defer r.Start(tag).Stop()

		return fn()
	}
}

// WrapErr1 is WrapErr for a one-argument function.
func WrapErr1[A, R any](r *Registry, tag string, fn func(A) (R, error)) func(A) (R, error) {
	tag = resolveTag(tag, fn)

	return func(a A) (R, error) {
		defer r.Start(tag).Stop()

		return fn(a)
	}
}
