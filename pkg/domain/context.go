package domain

import (
	"sort"
	"strings"
)

// ProjectContext holds optional facts about the surrounding project.
// Values are flattened to dotted keys ("engineering.stack") and stringified.
// It is treated as immutable once loaded.
type ProjectContext struct {
	// Source is the file the context was read from. Empty when no file was found.
	Source string
	Values map[string]string
}

// EmptyContext returns a context with no entries.
func EmptyContext() ProjectContext {
	return ProjectContext{Values: map[string]string{}}
}

// IsEmpty reports whether the context carries any entries.
func (c ProjectContext) IsEmpty() bool {
	return len(c.Values) == 0
}

// Keys returns the context keys in lexical order.
func (c ProjectContext) Keys() []string {
	keys := make([]string, 0, len(c.Values))
	for k := range c.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Entry is a single key/value pair of the context.
type Entry struct {
	Key   string
	Value string
}

// Entries returns the pairs in lexical key order.
func (c ProjectContext) Entries() []Entry {
	keys := c.Keys()
	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		out = append(out, Entry{Key: k, Value: c.Values[k]})
	}
	return out
}

// Format renders the context as "key: value" lines in key order.
func (c ProjectContext) Format() string {
	var b strings.Builder
	for i, e := range c.Entries() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(e.Key)
		b.WriteString(": ")
		b.WriteString(e.Value)
	}
	return b.String()
}
