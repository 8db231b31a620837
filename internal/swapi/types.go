package swapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Film mirrors the subset of /api/films/{id}/ that holocron reads.
type Film struct {
	Title     string   `json:"title"`
	EpisodeID int      `json:"episode_id"`
	Species   []string `json:"species"`
	URL       string   `json:"url"`
}

// Species mirrors /api/species/{id}/.
type Species struct {
	Name           string   `json:"name"`
	Classification string   `json:"classification"`
	Designation    string   `json:"designation"`
	AverageHeight  Height   `json:"average_height"`
	Films          []string `json:"films"`
	Language       string   `json:"language"`
	URL            string   `json:"url"`
}

// Height is the raw average_height value. The API serves it as a string
// ("66", "unknown", "n/a") but a bare JSON number is accepted too.
type Height string

// UnmarshalJSON accepts a JSON string, number, or null.
func (h *Height) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*h = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("decode average_height: %w", err)
		}
		*h = Height(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("decode average_height: %w", err)
	}
	*h = Height(n.String())
	return nil
}

// String returns the raw value.
func (h Height) String() string {
	return string(h)
}
