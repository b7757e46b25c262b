package utils

import (
	"time"
)

// Or returns the first non-zero value.
func Or[T comparable](vals ...T) T {
	var zero T
	for _, v := range vals {
		if v != zero {
			return v
		}
	}
	return zero
}

func FilterSlice[S any, T any](in []S, f func(S) (T, bool)) []T {
	out := make([]T, 0, len(in))
	for _, s := range in {
		if t, ok := f(s); ok {
			out = append(out, t)
		}
	}
	return out
}

var location = time.UTC

func SetLocation(loc *time.Location) {
	if loc != nil {
		location = loc
	}
}

// Today is the current calendar date in the configured location, expressed
// as midnight UTC so it compares cleanly with DATE columns.
func Today() time.Time {
	return DateOf(time.Now().In(location))
}

func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Ptr[T any](v T) *T {
	return &v
}
