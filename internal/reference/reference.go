// Package reference defines the publication record shown on a profile page.
package reference

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Publication is one entry of publications.json.
type Publication struct {
	Authors  string `json:"authors"` // Comma-separated, first entry is the first author
	Year     Year   `json:"year"`
	Journal  string `json:"journal"` // Venue; may carry a "(preprint)" marker
	Title    string `json:"title"`
	Link     string `json:"link"`
	Summary  string `json:"summary,omitempty"`
	Abstract string `json:"abstract,omitempty"`
}

// HasDetails reports whether the publication has long-form text to disclose.
func (p Publication) HasDetails() bool {
	return p.Summary != "" || p.Abstract != ""
}

// Year is a publication year that decodes from either a JSON number or a
// numeric string.
type Year int

func (y *Year) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*y = 0
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*y = Year(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("invalid year %q", s)
		}
		*y = Year(n)
		return nil
	}

	return fmt.Errorf("cannot unmarshal %s into Year", string(data))
}

func (y Year) String() string {
	return strconv.Itoa(int(y))
}
