// Package controller turns the controller value of a matched route into a
// function the application can call.
//
// A route may carry one of:
//
//   - a function with one of the supported shapes (see [Invocable]),
//   - a value implementing [Invoker],
//   - an [Action] naming a class (or holding an instance) plus a method,
//   - the name of a function registered with [Registry.RegisterFunc],
//   - the name of a class registered with [Registry.RegisterClass] whose
//     instances implement [Controller].
//
// Classes are instantiated fresh on every resolution and only through a
// constructor without parameters. A constructor that declares parameters is
// rejected with [ErrConstructorArguments]; the resolver never guesses
// arguments.
//
//	reg := controller.NewRegistry()
//	reg.MustRegisterClass("ArticleController", NewArticleController)
//	reg.MustRegisterClass("Health", (*HealthController)(nil))
//
//	res := controller.NewResolver(reg)
//	fn, err := res.Resolve(route)
//	if err != nil {
//		var uerr *controller.UnresolvableError
//		errors.As(err, &uerr) // uerr.Path, uerr.Class
//	}
//	err = fn(ctx)
package controller
