package main

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/appshell"
	"github.com/dmitrymomot/appshell/pkg/controller"
	"github.com/dmitrymomot/appshell/pkg/health"
	"github.com/dmitrymomot/appshell/pkg/router"
	"github.com/dmitrymomot/appshell/pkg/session"
)

const visitsKey = "visits"

// homeController renders the landing page with a form protected by the
// session form token.
type homeController struct{}

func (homeController) Execute(ctx context.Context) error {
	app, _ := appshell.FromContext(ctx)

	token, err := app.FormToken(false)
	if err != nil {
		return err
	}

	visits := 1
	if sess, err := app.Session(); err == nil {
		if s, ok := sess.(*session.Session); ok {
			visits = session.ValueOr(s, visitsKey, 0) + 1
			s.SetValue(visitsKey, visits)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<h1>appshell</h1>\n<p>Visit %d from %s (%s)</p>\n",
		visits,
		template.HTMLEscapeString(app.Client().UserAgent),
		template.HTMLEscapeString(string(app.Client().Browser)),
	)
	fmt.Fprintf(&b, `<form method="post" action="%ssubmit">`+
		`<input name="message"><input type="hidden" name="%s" value="1">`+
		`<button>Send</button></form>`,
		template.HTMLEscapeString(app.Config().String("uri.base.path", "/")),
		template.HTMLEscapeString(token),
	)
	app.SetBody(b.String())
	return nil
}

// helloController greets by route parameter.
type helloController struct{}

func (helloController) Show(ctx context.Context) error {
	app, _ := appshell.FromContext(ctx)
	app.SetMimeType("text/plain")
	app.SetBody("Hello, " + app.Input().Get("name") + "!")
	return nil
}

// submit accepts the home page form.
func submit(ctx context.Context) error {
	app, _ := appshell.FromContext(ctx)

	ok, err := app.CheckToken(http.MethodPost)
	if err != nil {
		return err
	}
	if !ok {
		return appshell.NewHTTPError(http.StatusForbidden, "invalid form token")
	}

	app.Redirect("/?sent="+url.QueryEscape(app.Input().Get("message")), false)
	return nil
}

// logout ends the session and returns to the home page.
func logout(ctx context.Context) error {
	app, _ := appshell.FromContext(ctx)
	if err := app.DestroySession(ctx); err != nil {
		return err
	}
	app.Redirect("/", false)
	return nil
}

// probe answers liveness (no checks) and readiness probes. ?format=json or
// an Accept header naming application/json selects the JSON report.
func probe(checks health.Checks) controller.Invocable {
	return func(ctx context.Context) error {
		app, _ := appshell.FromContext(ctx)
		req := app.Request()
		asJSON := app.Input().Get("format") == "json" ||
			strings.Contains(req.Header.Get("Accept"), "application/json")

		code, mimeType, body := health.Run(ctx, checks, health.WithLogger(app.Logger())).Render(asJSON)
		app.AllowCache(false)
		app.SetMimeType(mimeType)
		app.SetBody(body)
		return app.SetStatus(code)
	}
}

// routes wires the demo controllers.
func routes(ready health.Checks) (*router.Router, *controller.Resolver) {
	reg := controller.NewRegistry()
	reg.MustRegisterClass("Home", (*homeController)(nil))
	reg.MustRegisterClass("Hello", (*helloController)(nil))
	reg.MustRegisterFunc("submit", submit)
	reg.MustRegisterFunc("logout", logout)

	rt := router.New()
	rt.Get("/", "Home")
	rt.Get("/hello/{name}", controller.Action{Target: "Hello", Method: "Show"})
	rt.Post("/submit", "submit")
	rt.Post("/logout", "logout")
	rt.Get("/health/live", probe(nil))
	rt.Get("/health/ready", probe(ready))
	rt.Get("/home", func(ctx context.Context) error {
		app, _ := appshell.FromContext(ctx)
		app.Redirect("/", true)
		return nil
	})

	return rt, controller.NewResolver(reg)
}
