// Package internal implements the application shells re-exported by the
// root appshell package.
//
// [Application] runs an execution routine between the
// application.before_execute and application.after_execute events and
// turns any failure, panics included, into a single application.error
// event. [WebApplication] adds the HTTP response lifecycle on top: a
// buffered response, optional compression, cache headers, session cookies,
// redirects and CSRF tokens. [CliApplication] adds console input and output.
//
// [Handler] and [RouteHandler] create one WebApplication per HTTP request,
// and [Serve] runs them behind a gracefully stopping http.Server.
package internal
