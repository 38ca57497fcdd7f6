package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNothingToExport is returned by Export when no item has succeeded.
var ErrNothingToExport = errors.New("no successfully processed items to export")

// ParseInput decodes the input document: a JSON array of category objects.
// Any other top-level value is a format error, including literal null, which
// json.Unmarshal would otherwise accept silently as an empty slice.
func ParseInput(data []byte) ([]InputCategory, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil || tok != json.Delim('[') {
		return nil, fmt.Errorf("input must be a JSON array of {id, name, url?} objects")
	}

	var inputs []InputCategory
	if err := json.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("input must be a JSON array of {id, name, url?} objects: %w", err)
	}
	seen := make(map[int]struct{}, len(inputs))
	for _, in := range inputs {
		if _, dup := seen[in.ID]; dup {
			return nil, fmt.Errorf("duplicate id %d in input", in.ID)
		}
		seen[in.ID] = struct{}{}
	}
	return inputs, nil
}

// Export serializes the succeeded items, in list order, as a pretty-printed
// JSON array of {id, name, url} objects.
func Export(items []Item) ([]byte, error) {
	out := make([]OutputCategory, 0, len(items))
	for _, item := range items {
		if item.Status == StatusSucceeded {
			out = append(out, OutputCategory{ID: item.ID, Name: item.Name, URL: item.URL})
		}
	}
	if len(out) == 0 {
		return nil, ErrNothingToExport
	}
	return json.MarshalIndent(out, "", "  ")
}
