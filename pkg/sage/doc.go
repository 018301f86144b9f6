// Package sage turns the Met Office forecast into a friendly daily summary.
//
// Service.Summary fetches the 3-hourly forecast, compacts it to CSV, asks an
// LLM for a summary with an inspiring message and clothing and activity
// suggestions, and parses the JSON reply. Results are cached per hour: every
// request within the same hour gets the same Summary, and concurrent misses
// share one upstream round trip.
//
//	svc := sage.NewService(forecastClient, sage.NewOpenAI(cfg.OpenAI),
//	    sage.WithCache(cache.NewRedis[sage.Summary](rdb, nil, cache.WithPrefix("summary"))),
//	    sage.WithLogger(log),
//	)
//	s, err := svc.Summary(ctx)
//
// # Warm-up
//
// Warmer computes the summary on a cron schedule (default: the top of every
// hour) so the first visitor of the hour does not wait for the LLM:
//
//	w, err := sage.NewWarmer(svc, "0 * * * *")
//	app.Run(":8080", sage.StartupHook(w.Start), sage.ShutdownHook(w.Stop))
//
// # Query Procedures
//
// Register exposes the summary as the "forecast.summary" query procedure.
package sage
