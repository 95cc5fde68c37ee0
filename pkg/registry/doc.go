// Package registry is the application configuration store.
//
// Keys are dotted paths ("uri.base.full") resolved against nested maps.
// The store is backed by viper, so values can come from a YAML, JSON or TOML
// file, from environment variables, and from explicit Set calls, in
// increasing order of precedence. Keys are case-insensitive.
//
//	reg, err := registry.Load("config.yaml", registry.WithEnvPrefix("APPSHELL"))
//	if err != nil {
//	    return err
//	}
//	prev := reg.Set("site_uri", "https://example.com/")
//	gzip := reg.Bool("gzip", false)
package registry
