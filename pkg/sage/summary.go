package sage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Summary is the sage's reading of the forecast for one hour.
type Summary struct {
	Hour             time.Time `json:"hour"`
	GeneratedAt      time.Time `json:"generated_at"`
	Location         string    `json:"location,omitempty"`
	Summary          string    `json:"summary"`
	InspiringMessage string    `json:"inspiring_message"`
	Clothing         []string  `json:"clothing"`
	Activities       []string  `json:"activities"`
}

// ParseSummary decodes the LLM reply. The JSON object may be wrapped in a
// fenced code block or surrounded by prose.
func ParseSummary(reply string) (Summary, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end < start {
		return Summary{}, fmt.Errorf("%w: no JSON object", ErrInvalidResponse)
	}

	var s Summary
	if err := json.Unmarshal([]byte(reply[start:end+1]), &s); err != nil {
		return Summary{}, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	s.Summary = strings.TrimSpace(s.Summary)
	s.InspiringMessage = strings.TrimSpace(s.InspiringMessage)
	if s.Summary == "" {
		return Summary{}, fmt.Errorf("%w: empty summary", ErrInvalidResponse)
	}
	s.Clothing = compact(s.Clothing)
	s.Activities = compact(s.Activities)

	return s, nil
}

func compact(items []string) []string {
	out := items[:0]
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
