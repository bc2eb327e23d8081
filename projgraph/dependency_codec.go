package projgraph

import (
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// UnmarshalJSON accepts a plain target name or the keyed encoding used by graph
// manifests, e.g. {"target":{"name":"Core"}} or {"project":{"target":"Core","path":"/p"}}.
func (d *Dependency) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	dep, err := dependencyFromValue(raw)
	if err != nil {
		return err
	}
	*d = dep
	return nil
}

// UnmarshalYAML accepts the same shapes as UnmarshalJSON.
func (d *Dependency) UnmarshalYAML(value *yaml.Node) error {
	var raw any
	if err := value.Decode(&raw); err != nil {
		return err
	}
	dep, err := dependencyFromValue(raw)
	if err != nil {
		return err
	}
	*d = dep
	return nil
}

func dependencyFromValue(raw any) (Dependency, error) {
	switch v := raw.(type) {
	case string:
		return Dependency{Kind: DependencyTarget, Name: v}, nil
	case map[string]any:
		if len(v) == 0 {
			return Dependency{}, fmt.Errorf("empty dependency")
		}
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		kind := keys[0]
		fields, _ := v[kind].(map[string]any)

		switch DependencyKind(kind) {
		case DependencyTarget:
			return Dependency{Kind: DependencyTarget, Name: stringField(fields, "name", v[kind])}, nil
		case DependencyProject:
			return Dependency{
				Kind: DependencyProject,
				Name: stringField(fields, "target", nil),
				Path: stringField(fields, "path", nil),
			}, nil
		case DependencyExternal:
			return Dependency{Kind: DependencyExternal, Name: stringField(fields, "name", v[kind])}, nil
		default:
			return Dependency{
				Kind: DependencyOther,
				Name: stringField(fields, "name", nil),
				Path: stringField(fields, "path", nil),
			}, nil
		}
	default:
		return Dependency{}, fmt.Errorf("unsupported dependency encoding %T", raw)
	}
}

// stringField reads key from fields, falling back to a bare string value.
func stringField(fields map[string]any, key string, bare any) string {
	if fields != nil {
		if s, ok := fields[key].(string); ok {
			return s
		}
	}
	if s, ok := bare.(string); ok {
		return s
	}
	return ""
}
