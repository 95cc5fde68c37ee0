// Package middlewares provides net/http middleware to put in front of an
// appshell handler.
//
// # Request ID
//
// RequestID assigns an ID to each request, reusing an upstream
// X-Request-ID or X-Correlation-ID header when present. Combine it with
// RequestIDExtractor so every log record written with the request context
// carries request_id:
//
//	log := logger.New(logger.WithExtractors(middlewares.RequestIDExtractor()))
//
//	h := middlewares.Chain(
//	    appshell.Handler(run, appshell.WithLogger(log)),
//	    middlewares.RequestID(),
//	    middlewares.Recover(middlewares.WithRecoverLogger(log)),
//	)
//
// # Recover
//
// Recover answers 500 and logs the panic with its stack when a handler
// panics outside an application's execution routine.
package middlewares
