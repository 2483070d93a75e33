package startup

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MessageSet is one i18n catalog payload, keyed by message identifier.
type MessageSet map[string]string

// MergeMessages flattens catalogs into a single set, in order, with the last
// occurrence of a key winning. A nil result means no catalogs were supplied.
func MergeMessages(sets ...MessageSet) MessageSet {
	if len(sets) == 0 {
		return nil
	}
	merged := make(MessageSet)
	for _, set := range sets {
		for id, message := range set {
			merged[id] = message
		}
	}
	if len(merged) == 0 {
		return nil
	}
	return merged
}

// LoadMessageFiles reads YAML message catalogs from the given paths,
// preserving argument order so that later files override earlier ones when
// merged.
func LoadMessageFiles(paths ...string) ([]MessageSet, error) {
	sets := make([]MessageSet, 0, len(paths))
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read message catalog %s: %w", path, err)
		}
		var set MessageSet
		if err := yaml.Unmarshal(raw, &set); err != nil {
			return nil, fmt.Errorf("parse message catalog %s: %w", path, err)
		}
		sets = append(sets, set)
	}
	return sets, nil
}
