package router

import "errors"

var (
	ErrRouteNotFound     = errors.New("router: route not found")
	ErrUnsupportedMethod = errors.New("router: unsupported HTTP method")
)
