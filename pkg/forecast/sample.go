package forecast

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed sample.json
var sampleJSON []byte

// StaticSource serves a fixed forecast.
type StaticSource struct {
	rep SiteRep
}

// Sample returns a Source backed by the embedded sample response.
func Sample() (*StaticSource, error) {
	return Decode(sampleJSON)
}

// Decode builds a StaticSource from a DataPoint JSON document.
func Decode(data []byte) (*StaticSource, error) {
	var out Response
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return &StaticSource{rep: out.SiteRep}, nil
}

// ThreeHourly returns the fixed forecast.
func (s *StaticSource) ThreeHourly(ctx context.Context) (SiteRep, error) {
	if err := ctx.Err(); err != nil {
		return SiteRep{}, err
	}
	return s.rep, nil
}

var _ Source = (*StaticSource)(nil)
