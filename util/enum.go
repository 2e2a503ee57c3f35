package util

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Enum maps a closed set of values to their textual names.
type Enum[T comparable] struct {
	Names     map[T]string
	Values    map[string]T
	errFormat string
}

func NewEnum[T comparable](names map[T]string) Enum[T] {
	values := lo.Invert(names)
	options := lo.Keys(values)
	slices.Sort(options)
	return Enum[T]{
		Names:     names,
		Values:    values,
		errFormat: "invalid value %q, expected one of: " + strings.Join(options, ", "),
	}
}

func (e Enum[T]) ToString(value T) string {
	return e.Names[value]
}

// ToValue resolves name; the empty name yields the zero value.
func (e Enum[T]) ToValue(name string) (T, bool) {
	if name == "" {
		var zero T
		return zero, true
	}
	value, ok := e.Values[strings.ToLower(name)]
	return value, ok
}

func (e Enum[T]) MarshalText(value T) (text []byte, err error) {
	return []byte(e.ToString(value)), nil
}
func (e Enum[T]) UnmarshalText(into *T, text []byte) error {
	val, ok := e.ToValue(string(text))
	if !ok {
		return fmt.Errorf(e.errFormat, string(text))
	}
	*into = val
	return nil
}
