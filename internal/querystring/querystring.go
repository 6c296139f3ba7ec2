// Package querystring decodes the key=value&key=value fragment that follows
// the '?' in a request path.
package querystring

import (
	"sort"
	"strings"
)

// Value is either a Single value or, for keys that appear more than once, a
// Multiple holding every value in order of appearance.
type Value interface {
	// Values returns the value(s) as a slice regardless of kind.
	Values() []string
	isValue()
}

// Single is the value of a key seen exactly once.
type Single string

// Multiple holds the values of a repeated key.
type Multiple []string

func (s Single) Values() []string   { return []string{string(s)} }
func (m Multiple) Values() []string { return []string(m) }

func (Single) isValue()   {}
func (Multiple) isValue() {}

// QueryString maps keys to their decoded values. Keys and values are
// substrings of the text given to Parse; no percent-decoding is applied.
type QueryString struct {
	data map[string]Value
}

// Parse decodes s. Empty segments are skipped, a segment without '=' maps its
// key to the empty string, and only the first '=' of a segment separates key
// from value.
func Parse(s string) QueryString {
	data := make(map[string]Value)

	for _, segment := range strings.Split(s, "&") {
		if segment == "" {
			continue
		}
		key, val, _ := strings.Cut(segment, "=")

		switch existing := data[key].(type) {
		case nil:
			data[key] = Single(val)
		case Single:
			data[key] = Multiple{string(existing), val}
		case Multiple:
			data[key] = append(existing, val)
		}
	}

	return QueryString{data: data}
}

// Get returns the value stored under key.
func (q QueryString) Get(key string) (Value, bool) {
	v, ok := q.data[key]
	return v, ok
}

// First returns the first value stored under key, or "" if there is none.
func (q QueryString) First(key string) string {
	v, ok := q.data[key]
	if !ok {
		return ""
	}
	return v.Values()[0]
}

// Len reports the number of distinct keys.
func (q QueryString) Len() int {
	return len(q.data)
}

// Keys returns the distinct keys in sorted order.
func (q QueryString) Keys() []string {
	keys := make([]string, 0, len(q.data))
	for k := range q.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
