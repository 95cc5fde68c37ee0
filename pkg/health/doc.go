// Package health runs named readiness checks and renders the result for a
// probe endpoint.
//
// A check is any func(context.Context) error, such as the ping of a session
// store. Checks run concurrently under a shared timeout:
//
//	report := health.Run(ctx, health.Checks{
//	    "sessions": func(ctx context.Context) error { return client.Ping(ctx).Err() },
//	}, health.WithTimeout(2*time.Second))
//
//	code, mimeType, body := report.Render(wantsJSON)
//
// Plain text renders "OK" or "Service Unavailable"; JSON renders the status of
// every check:
//
//	{"checks":{"sessions":{"status":"unhealthy","error":"connection refused"}},"status":"unhealthy"}
package health
