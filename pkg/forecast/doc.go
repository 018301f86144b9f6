// Package forecast fetches Met Office DataPoint site forecasts and compacts
// them for prompting.
//
// Client.ThreeHourly fetches the 3-hourly forecast for the site configured
// in the data URL. Requests are rate limited on the client side so a burst
// of cache misses cannot exhaust the DataPoint quota.
//
//	c := forecast.NewClient(cfg.DataURL, cfg.APIKey,
//	    forecast.WithRateLimit(rate.Every(time.Second), 2),
//	)
//	rep, err := c.ThreeHourly(ctx)
//
// Transform turns the SiteRep into one CSV row per forecast step. Weather,
// visibility and UV codes are resolved with the embedded code table (see
// Codes), which is also rendered verbatim into prompts:
//
//	date,time,temp_c,feels_like_c,wind_mph,wind_dir,precip_prob,uv,uv_advice,visibility,weather
//	2026-10-16,09:00,12,10,9,SW,6,1,Low exposure. No protection required.,Good - between 10-20 km,Partly cloudy (day)
//
// Sample returns a Source backed by an embedded DataPoint response, for
// running without an API key.
package forecast
