// Package metadata provides the ordered, multi-valued store of song
// metadata collected from meta directives such as {title} and {composer}.
package metadata

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/ChordSheet/core/music"
)

// Well-known metadata names used by computed lookups.
const (
	KeyName  = "key"
	CapoName = "capo"
	Computed = "_key" // key with the capo applied; read-only
)

// Value holds one or more values of a metadata entry, in the order they
// were added.
type Value []string

// First returns the first value, or "" for an empty Value.
func (v Value) First() string {
	if len(v) == 0 {
		return ""
	}
	return v[0]
}

// IsMulti reports whether the entry accumulated more than one value.
func (v Value) IsMulti() bool { return len(v) > 1 }

// Join renders the value, joining multiple values with sep.
func (v Value) Join(sep string) string {
	return strings.Join(v, sep)
}

// Metadata maps directive names to values. Keys keep the order in which
// they were first added. The zero value is ready to use.
type Metadata struct {
	keys   []string
	values map[string]Value
}

// New creates an empty store.
func New() *Metadata {
	return &Metadata{values: make(map[string]Value)}
}

// FromPairs creates a store from alternating name, value arguments. A name
// given more than once accumulates values like Add.
func FromPairs(pairs ...string) *Metadata {
	m := New()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Add(pairs[i], pairs[i+1])
	}
	return m
}

func isReadOnly(name string) bool {
	return name == Computed
}

// Contains reports whether name has a stored value.
func (m *Metadata) Contains(name string) bool {
	_, ok := m.values[name]
	return ok
}

// Add appends value to name. A single stored value becomes a two-element
// sequence on the first collision, unless the new value repeats it. Later
// repeats are kept in order. Read-only names are ignored.
func (m *Metadata) Add(name, value string) {
	if isReadOnly(name) {
		return
	}
	if m.values == nil {
		m.values = make(map[string]Value)
	}
	current, ok := m.values[name]
	if !ok {
		m.keys = append(m.keys, name)
		m.values[name] = Value{value}
		return
	}
	if len(current) == 1 && current[0] == value {
		return
	}
	m.values[name] = append(current, value)
}

// Set replaces all values of name with value.
func (m *Metadata) Set(name, value string) {
	if isReadOnly(name) {
		return
	}
	m.Delete(name)
	m.Add(name, value)
}

// Delete removes name and all its values.
func (m *Metadata) Delete(name string) {
	if _, ok := m.values[name]; !ok {
		return
	}
	delete(m.values, name)
	for i, k := range m.keys {
		if k == name {
			m.keys = append(m.keys[:i:i], m.keys[i+1:]...)
			break
		}
	}
}

var arrayKeyPattern = regexp.MustCompile(`^(.+)\.(-?\d+)$`)

// Get resolves name to its value. Besides plain names it supports:
//   - "name.N": the Nth value, counting from 1
//   - "name.-N": the Nth value counting from the end
//   - "_key": the key with the capo applied
//
// Out of range indices report false.
func (m *Metadata) Get(name string) (Value, bool) {
	if name == Computed {
		if key, ok := m.CalculateKeyFromCapo(); ok {
			return Value{key}, true
		}
		return nil, false
	}
	if v, ok := m.values[name]; ok {
		return append(Value(nil), v...), true
	}
	if item, ok := m.arrayItem(name); ok {
		return Value{item}, true
	}
	return nil, false
}

// GetSingle returns the first value of name, or "".
func (m *Metadata) GetSingle(name string) string {
	v, _ := m.Get(name)
	return v.First()
}

func (m *Metadata) arrayItem(name string) (string, bool) {
	match := arrayKeyPattern.FindStringSubmatch(name)
	if match == nil {
		return "", false
	}
	index, err := strconv.Atoi(match[2])
	if err != nil || index == 0 {
		return "", false
	}
	values := m.values[match[1]]
	if index < 0 {
		index += len(values)
	} else {
		index--
	}
	if index < 0 || index >= len(values) {
		return "", false
	}
	return values[index], true
}

// Keys returns the stored names in insertion order.
func (m *Metadata) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Len returns the number of stored names.
func (m *Metadata) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Clone returns a deep copy. Changes to the copy never reach m.
func (m *Metadata) Clone() *Metadata {
	c := &Metadata{
		keys:   append([]string(nil), m.keys...),
		values: make(map[string]Value, len(m.values)),
	}
	for k, v := range m.values {
		c.values[k] = append(Value(nil), v...)
	}
	return c
}

// Merge returns a new store holding m's entries followed by other's.
// Values for names present in both accumulate; first-seen order is kept.
func (m *Metadata) Merge(other *Metadata) *Metadata {
	c := m.Clone()
	if other == nil {
		return c
	}
	for _, k := range other.keys {
		for _, v := range other.values[k] {
			c.Add(k, v)
		}
	}
	return c
}

// CalculateKeyFromCapo returns the song key moved up by the capo, when
// both the key and a numeric capo are set.
func (m *Metadata) CalculateKeyFromCapo() (string, bool) {
	capo := m.GetSingle(CapoName)
	keyText := m.GetSingle(KeyName)
	if capo == "" || keyText == "" {
		return "", false
	}
	frets, err := strconv.Atoi(strings.TrimSpace(capo))
	if err != nil {
		return "", false
	}
	key := music.ParseKey(keyText)
	if key == nil {
		return "", false
	}
	return key.Transpose(frets).Normalize().String(), true
}

// Equal reports whether two stores hold the same names in the same order
// with the same values.
func (m *Metadata) Equal(other *Metadata) bool {
	if m == nil || other == nil {
		return m.Len() == other.Len()
	}
	if len(m.keys) != len(other.keys) {
		return false
	}
	for i, k := range m.keys {
		if other.keys[i] != k {
			return false
		}
		a, b := m.values[k], other.values[k]
		if len(a) != len(b) {
			return false
		}
		for j := range a {
			if a[j] != b[j] {
				return false
			}
		}
	}
	return true
}
