// Package query is the data-fetching client shared by every rendered page.
//
// A Client runs named procedures through a Link and memoizes their results
// for its own lifetime. Concurrent identical queries on one client share a
// single round trip. A document owns exactly one client: the Provider places
// it in the render context and every descendant reads it back with
// FromContext.
//
// # Provider
//
//	p := query.NewProvider(query.WithLink(query.LocalLink(router)))
//	s := shell.New(shell.WithProvider(p))
//
// Provider.Wrap renders one wrapper element and runs children with the
// client in ctx. When Middleware already installed a client for the request,
// Wrap reuses it, so full pages and HTMX fragments of the same request see
// the same instance.
//
// # Calling Procedures
//
//	summary, err := query.Call[sage.Summary](ctx, "forecast.summary", nil)
//
// # Server
//
// Router exposes procedures over HTTP using the tRPC-style envelope:
//
//	GET /api/trpc/forecast.summary?input={}
//	200 {"result":{"data":{...}}}
//	404 {"error":{"message":"...","code":"NOT_FOUND"}}
//
//	router := query.NewRouter(query.WithLogger(log))
//	router.Handle("forecast.summary", query.Procedure(svc.SummaryProcedure))
//	r.Mount("/api/trpc", router.Handler())
//
// HTTPLink calls a remote Router; LocalLink calls one in-process, which is
// what server-side rendering uses.
package query
