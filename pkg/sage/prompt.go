package sage

import (
	"strings"
	"time"
)

const datetimeLayout = "2006-01-02 15:04:05"

const systemPrompt = `You are the Weather Sage, a cheerful and wise weather forecaster for the United Kingdom.
You read Met Office forecast data and explain today's weather in plain, warm language.`

const instructions = `The CSV below is the Met Office 3-hourly forecast. Columns are:
date, time (24h, local), temp_c, feels_like_c, wind_mph, wind_dir, precip_prob (percent), uv (index), uv_advice, visibility, weather.

Code mappings used by the Met Office:
%CODES%

Forecast:
%CSV%

The current date and time is %NOW%. Only describe the forecast from now until the end of today,
unless it is after 21:00, in which case describe tomorrow.

Reply with a single JSON object and nothing else, using exactly these keys:
{
  "summary": "two or three sentences describing the weather, in markdown",
  "inspiring_message": "one short uplifting sentence inspired by the weather",
  "clothing": ["what to wear", "..."],
  "activities": ["a suitable activity", "..."]
}`

// BuildPrompt returns the conversation asking for a summary of forecastCSV
// as seen at now.
func BuildPrompt(codeMappings string, forecastCSV []byte, now time.Time) []Message {
	user := strings.NewReplacer(
		"%CODES%", strings.TrimSpace(codeMappings),
		"%CSV%", strings.TrimSpace(string(forecastCSV)),
		"%NOW%", now.Format(datetimeLayout),
	).Replace(instructions)

	return []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: user},
	}
}
