// Package appshell bootstraps Go web services and command-line tools around
// a single execution routine.
//
// An application owns a configuration registry, a logger and an optional
// event dispatcher. Execute runs the routine between the
// application.before_execute and application.after_execute events; a
// returned error or a panic is logged and dispatched once as
// application.error and never reaches the caller.
//
// # Web applications
//
// A [WebApplication] serves one request. The routine fills a buffered
// response, and Execute then optionally compresses it (config key "gzip"),
// adds cache headers, saves the session and writes everything through a
// transport:
//
//	h := appshell.Handler(func(ctx context.Context) error {
//	    app, _ := appshell.FromContext(ctx)
//	    app.SetBody("<h1>Hello</h1>")
//	    return nil
//	}, appshell.WithConfig(cfg), appshell.WithLogger(log))
//
//	err := appshell.Serve(ctx, h, appshell.Address(":8080"))
//
// Routes map to controllers with package router, and package controller
// turns them into callables:
//
//	rt := router.New()
//	rt.Get("/articles/{slug}", controller.Action{Target: "Articles", Method: "Show"})
//
//	reg := controller.NewRegistry()
//	reg.MustRegisterClass("Articles", NewArticles)
//
//	h := appshell.RoutedHandler(rt, controller.NewResolver(reg))
//
// Redirect sends a 303 (or 301 when moved) with no-cache headers and closes
// the application. If headers were already sent it falls back to a script
// redirect in the body.
//
// # Sessions and CSRF
//
// With [WithSessionManager] the session is loaded on first use, and FormToken
// and CheckToken protect forms against cross-site request forgery.
// Respond saves modified sessions and adds the Set-Cookie header.
//
// # Command-line applications
//
// A [CliApplication] parses os.Args into cli.Parameters, writes with Out
// and reads answers with In:
//
//	app := appshell.NewCliApplication(appshell.WithExecute(func(ctx context.Context) error {
//	    cli, _ := appshell.CliFromContext(ctx)
//	    cli.Out("hello " + cli.Input().Get("name", "world"))
//	    return nil
//	}))
//	app.Execute(context.Background())
package appshell
