package forecast

import (
	_ "embed"
	"fmt"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed codes.yaml
var codesYAML []byte

// Codes maps DataPoint codes to human-readable labels.
type Codes struct {
	WeatherTypes map[string]string `yaml:"weather_types"`
	Visibility   map[string]string `yaml:"visibility"`
	UVIndex      []UVBand          `yaml:"uv_index"`
}

// UVBand is an inclusive upper bound on the UV index and its advice.
type UVBand struct {
	Label string `yaml:"label"`
	Max   int    `yaml:"max"`
}

var (
	codesOnce sync.Once
	codes     *Codes
	codesErr  error
)

// DefaultCodes returns the embedded code table.
func DefaultCodes() (*Codes, error) {
	codesOnce.Do(func() {
		codes, codesErr = ParseCodes(codesYAML)
	})
	return codes, codesErr
}

// ParseCodes decodes a YAML code table.
func ParseCodes(data []byte) (*Codes, error) {
	var c Codes
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCodes, err)
	}
	if len(c.WeatherTypes) == 0 {
		return nil, fmt.Errorf("%w: no weather types", ErrInvalidCodes)
	}
	return &c, nil
}

// CodeMappings returns the raw YAML table, as included in prompts.
func CodeMappings() string {
	return string(codesYAML)
}

// Weather resolves a weather type code. Unknown codes are returned as is.
func (c *Codes) Weather(code string) string {
	if label, ok := c.WeatherTypes[code]; ok {
		return label
	}
	return code
}

// VisibilityLabel resolves a visibility code. Unknown codes are returned as is.
func (c *Codes) VisibilityLabel(code string) string {
	if label, ok := c.Visibility[code]; ok {
		return label
	}
	return code
}

// UV returns the advice for a UV index value, or "" if it is not a number.
func (c *Codes) UV(index string) string {
	n, err := strconv.Atoi(index)
	if err != nil {
		return ""
	}
	for _, b := range c.UVIndex {
		if n <= b.Max {
			return b.Label
		}
	}
	return ""
}
