package util

import (
	"encoding/json"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// Some holds zero or more values and decodes from either a scalar or a sequence.
// A nil Some means the field was absent, an empty non-nil one means explicitly none.
type Some[T any] []T

func Many[T any](a ...T) Some[T] {
	if a == nil {
		return Some[T]{}
	}
	return a
}
func One[T any](a T) Some[T] {
	return []T{a}
}

func (a Some[T]) IsZero() bool {
	return len(a) == 0
}
func (a Some[T]) IsSet() bool {
	return a != nil
}
func (a Some[T]) Elements() []T {
	return slices.Clone([]T(a))
}
func (a Some[T]) String() string {
	return fmt.Sprintf("%v", []T(a))
}
func (a Some[T]) MarshalYAML() (any, error) {
	return []T(a), nil
}
func (a *Some[T]) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		res := []T{}
		if err := node.Decode(&res); err != nil {
			return err
		}
		*a = res
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*a = nil
			return nil
		}
		var res T
		if err := node.Decode(&res); err != nil {
			return err
		}
		*a = []T{res}
	default:
		return fmt.Errorf("line %d: expected a scalar or a sequence", node.Line)
	}
	return nil
}
func (a Some[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal([]T(a))
}
func (a *Some[T]) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*a = nil
		return nil
	}
	if data[0] != '[' {
		var res T
		if err := json.Unmarshal(data, &res); err != nil {
			return err
		}
		*a = []T{res}
	} else {
		res := []T{}
		if err := json.Unmarshal(data, &res); err != nil {
			return err
		}
		*a = res
	}
	return nil
}
