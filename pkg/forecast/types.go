package forecast

import (
	"bytes"
	"encoding/json"
)

// Response is the top-level DataPoint document.
type Response struct {
	SiteRep SiteRep `json:"SiteRep"`
}

// SiteRep holds the parameter legend and the data values.
type SiteRep struct {
	Wx Wx `json:"Wx"`
	DV DV `json:"DV"`
}

// Wx describes the fields present in each Rep.
type Wx struct {
	Param []Param `json:"Param"`
}

// Param is one legend entry, e.g. {"name":"T","units":"C","$":"Temperature"}.
type Param struct {
	Name  string `json:"name"`
	Units string `json:"units"`
	Label string `json:"$"`
}

// DV is the data-values block.
type DV struct {
	DataDate string   `json:"dataDate"`
	Type     string   `json:"type"`
	Location Location `json:"Location"`
}

// Location is a forecast site.
type Location struct {
	ID        string            `json:"i"`
	Name      string            `json:"name"`
	Country   string            `json:"country"`
	Latitude  string            `json:"lat"`
	Longitude string            `json:"lon"`
	Elevation string            `json:"elevation"`
	Period    oneOrMany[Period] `json:"Period"`
}

// Period is one day of forecast steps. Value is the day, e.g. "2026-10-16Z".
type Period struct {
	Type  string         `json:"type"`
	Value string         `json:"value"`
	Rep   oneOrMany[Rep] `json:"Rep"`
}

// Rep is a single 3-hourly step. Minutes is the offset from midnight.
type Rep struct {
	WindDirection string `json:"D"`
	FeelsLike     string `json:"F"`
	WindGust      string `json:"G"`
	Humidity      string `json:"H"`
	PrecipProb    string `json:"Pp"`
	WindSpeed     string `json:"S"`
	Temperature   string `json:"T"`
	Visibility    string `json:"V"`
	WeatherType   string `json:"W"`
	UV            string `json:"U"`
	Minutes       string `json:"$"`
}

// oneOrMany decodes DataPoint fields that hold an object when there is a
// single element and an array otherwise.
type oneOrMany[T any] []T

func (o *oneOrMany[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var many []T
		if err := json.Unmarshal(data, &many); err != nil {
			return err
		}
		*o = many
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*o = nil
		return nil
	}

	var one T
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*o = oneOrMany[T]{one}
	return nil
}
