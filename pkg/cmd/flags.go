package cmd

import (
	"maps"
	"strings"
)

// FlagMap maps a flag name to its raw value. A repeated name keeps the last value.
type FlagMap map[string]string

// FlagField is one named field of a flags object.
type FlagField struct {
	Name    string
	Type    Type
	Default any
}

// FlagSchema lists the fields a flags parameter accepts.
type FlagSchema struct {
	Fields []FlagField
}

func (s *FlagSchema) field(name string) (FlagField, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FlagField{}, false
}

// unknown returns the first flag, in input order, the schema does not declare.
func (s *FlagSchema) unknown(flagTokens []Token) (string, bool) {
	for _, t := range flagTokens {
		name, _ := splitFlag(t)
		if _, ok := s.field(name); !ok {
			return name, true
		}
	}
	return "", false
}

// Flags is a bound flags object. Fields not supplied hold their default.
type Flags struct {
	values map[string]any
}

func newFlags(s *FlagSchema) map[string]any {
	values := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		values[f.Name] = f.Default
	}
	return values
}

func (f Flags) Value(name string) any { return f.values[name] }

func (f Flags) String(name string) string {
	s, _ := f.values[name].(string)
	return s
}

func (f Flags) Number(name string) float64 {
	n, _ := f.values[name].(float64)
	return n
}

func (f Flags) Bool(name string) bool {
	b, _ := f.values[name].(bool)
	return b
}

// Map returns a copy of all field values.
func (f Flags) Map() map[string]any { return maps.Clone(f.values) }

// isFlag reports whether t is a --name[=value] token. Quoted tokens and a
// bare "--" are positional.
func isFlag(t Token) bool {
	if t.Quoted || !strings.HasPrefix(t.Text, "--") {
		return false
	}
	name, _, _ := strings.Cut(t.Text[2:], "=")
	return name != ""
}

// splitFlag returns the name and raw value of a flag token. A flag without
// "=value" is "true".
func splitFlag(t Token) (name, value string) {
	name, value, ok := strings.Cut(t.Text[2:], "=")
	if !ok {
		value = "true"
	}
	return name, value
}

// ExtractFlags moves flag tokens out of the positional stream. The remaining
// tokens keep their order and offsets.
func ExtractFlags(tokens []Token) ([]Token, FlagMap) {
	positional := make([]Token, 0, len(tokens))
	flags := FlagMap{}
	for _, t := range tokens {
		if !isFlag(t) {
			positional = append(positional, t)
			continue
		}
		name, value := splitFlag(t)
		flags[name] = value
	}
	return positional, flags
}
