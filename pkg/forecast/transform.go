package forecast

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

var csvHeader = []string{"date", "time", "temp_c", "feels_like_c", "wind_mph", "wind_dir", "precip_prob", "uv", "uv_advice", "visibility", "weather"}

// Transform renders the forecast as CSV, one row per step, with weather,
// visibility and UV codes resolved through codes. A nil codes uses
// DefaultCodes.
func Transform(rep SiteRep, codes *Codes) ([]byte, error) {
	if codes == nil {
		var err error
		if codes, err = DefaultCodes(); err != nil {
			return nil, err
		}
	}

	periods := rep.DV.Location.Period
	if len(periods) == 0 {
		return nil, ErrEmptyForecast
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	for _, p := range periods {
		date := strings.TrimSuffix(p.Value, "Z")
		for _, r := range p.Rep {
			clock, err := minutesToClock(r.Minutes)
			if err != nil {
				return nil, fmt.Errorf("%w: period %s: %w", ErrDecode, p.Value, err)
			}
			row := []string{
				date,
				clock,
				r.Temperature,
				r.FeelsLike,
				r.WindSpeed,
				r.WindDirection,
				r.PrecipProb,
				r.UV,
				codes.UV(r.UV),
				codes.VisibilityLabel(r.Visibility),
				codes.Weather(r.WeatherType),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// minutesToClock converts a minutes-after-midnight offset to "HH:MM".
func minutesToClock(minutes string) (string, error) {
	n, err := strconv.Atoi(minutes)
	if err != nil || n < 0 || n >= 24*60 {
		return "", fmt.Errorf("invalid step offset %q", minutes)
	}
	return fmt.Sprintf("%02d:%02d", n/60, n%60), nil
}
