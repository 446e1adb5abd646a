package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/fontverify/internal/canonical"
)

// marshalSet stores a class or face set as a canonical JSON array.
func marshalSet(set []string) (string, error) {
	if set == nil {
		set = []string{}
	}
	data, err := canonical.Marshal(set)
	if err != nil {
		return "", fmt.Errorf("marshal set: %w", err)
	}
	return string(data), nil
}

func unmarshalSet(s string) ([]string, error) {
	var set []string
	if err := json.Unmarshal([]byte(s), &set); err != nil {
		return nil, fmt.Errorf("unmarshal set: %w", err)
	}
	if set == nil {
		set = []string{}
	}
	return set, nil
}
