package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/planner/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ContextFileNames lists the project-context documents looked up, in priority order.
var ContextFileNames = []string{
	"project.context.json",
	"project.context.yaml",
	"project.context.yml",
}

// LoadProjectContext reads the first context document found in dir.
// A missing document yields an empty context and no error.
// A malformed document also yields an empty context, together with a *domain.ConfigError
// the caller is expected to surface as a warning.
func LoadProjectContext(dir string) (domain.ProjectContext, error) {
	for _, name := range ContextFileNames {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return domain.EmptyContext(), &domain.ConfigError{Key: name, Reason: "failed to read context file", Err: err}
		}

		values, err := parseContext(name, data)
		if err != nil {
			return domain.EmptyContext(), &domain.ConfigError{Key: name, Reason: "malformed context file, continuing without context", Err: err}
		}
		return domain.ProjectContext{Source: name, Values: values}, nil
	}
	return domain.EmptyContext(), nil
}

func parseContext(name string, data []byte) (map[string]string, error) {
	var raw any
	if strings.ToLower(filepath.Ext(name)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
	}

	// An empty YAML document decodes to nil: treat it as no context.
	if raw == nil {
		return map[string]string{}, nil
	}
	if _, ok := asMap(raw); !ok {
		return nil, fmt.Errorf("%s: top-level value must be a mapping, got %T", name, raw)
	}

	out := make(map[string]string)
	flatten("", raw, out)
	return out, nil
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		conv := make(map[string]any, len(m))
		for k, val := range m {
			conv[fmt.Sprint(k)] = val
		}
		return conv, true
	}
	return nil, false
}

func flatten(prefix string, v any, out map[string]string) {
	if m, ok := asMap(v); ok {
		for k, val := range m {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flatten(key, val, out)
		}
		return
	}
	if prefix == "" {
		return
	}
	out[prefix] = stringify(v)
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if m, ok := asMap(item); ok {
				parts = append(parts, stringifyMap(m))
				continue
			}
			parts = append(parts, stringify(item))
		}
		return strings.Join(parts, ", ")
	default:
		if m, ok := asMap(v); ok {
			return stringifyMap(m)
		}
		return fmt.Sprint(t)
	}
}

func stringifyMap(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+stringify(m[k]))
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// ContextSummary picks the well-known keys used to greet the user.
type ContextSummary struct {
	ProductName string `mapstructure:"product.name"`
	ProjectName string `mapstructure:"project_name"`
	Stack       string `mapstructure:"engineering.stack"`
	TechStack   string `mapstructure:"tech_stack"`
}

// Summarize decodes the well-known keys of a context.
func Summarize(c domain.ProjectContext) ContextSummary {
	var s ContextSummary
	// Values is map[string]string and every field is a string: Decode cannot fail here.
	_ = mapstructure.Decode(c.Values, &s)
	return s
}

// Acknowledgement is the line shown to the user once the context has been loaded.
func Acknowledgement(c domain.ProjectContext) string {
	if c.IsEmpty() {
		return "Starting a new greenfield plan."
	}
	s := Summarize(c)
	name := firstNonEmpty(s.ProductName, s.ProjectName, "this project")
	stack := firstNonEmpty(s.Stack, s.TechStack, "defined")
	return fmt.Sprintf("Context loaded from ./%s. I see we're working on '%s' with a %s stack.", c.Source, name, stack)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
