// Package router maps a request method and path to the controller value
// registered for it.
//
// Matching is delegated to a chi mux, so patterns use chi syntax with
// {name} and {name:regexp} parameters and a trailing /* wildcard:
//
//	r := router.New()
//	r.Get("/articles/{slug}", "ArticleController")
//	r.Post("/articles", controller.Action{Target: "ArticleController", Method: "Create"})
//
//	route, err := r.ParseRoute(http.MethodGet, "/articles/hello")
//	// route.Controller == "ArticleController", route.Params["slug"] == "hello"
//
// The controller value is opaque to the router; see package controller for
// how it is turned into something callable.
package router
