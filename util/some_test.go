package util

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type aliasesDoc struct {
	Aliases Some[string] `yaml:"aliases,omitempty" json:"aliases,omitempty"`
}

func TestSomeYAML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Some[string]
		isSet bool
	}{
		{"scalar", "aliases: www.example.com", Some[string]{"www.example.com"}, true},
		{"sequence", "aliases: [a, b]", Some[string]{"a", "b"}, true},
		{"empty sequence", "aliases: []", Some[string]{}, true},
		{"null", "aliases: ~", nil, false},
		{"absent", "{}", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc aliasesDoc
			require.NoError(t, yaml.Unmarshal([]byte(tt.input), &doc))
			assert.Equal(t, tt.want, doc.Aliases)
			assert.Equal(t, tt.isSet, doc.Aliases.IsSet())
		})
	}

	var doc aliasesDoc
	assert.Error(t, yaml.Unmarshal([]byte("aliases: {a: b}"), &doc))
}

func TestSomeJSON(t *testing.T) {
	var doc aliasesDoc
	require.NoError(t, json.Unmarshal([]byte(`{"aliases":"www"}`), &doc))
	assert.Equal(t, Some[string]{"www"}, doc.Aliases)

	require.NoError(t, json.Unmarshal([]byte(`{"aliases":["a","b"]}`), &doc))
	assert.Equal(t, Some[string]{"a", "b"}, doc.Aliases)

	doc = aliasesDoc{}
	require.NoError(t, json.Unmarshal([]byte(`{"aliases":null}`), &doc))
	assert.False(t, doc.Aliases.IsSet())

	out, err := json.Marshal(aliasesDoc{Aliases: One("x")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"aliases":["x"]}`, string(out))
}

func TestSomeElementsCopies(t *testing.T) {
	s := Many("a", "b")
	e := s.Elements()
	e[0] = "z"
	assert.Equal(t, "a", s[0])
	assert.True(t, Many[string]().IsSet())
	assert.True(t, Many[string]().IsZero())
}
