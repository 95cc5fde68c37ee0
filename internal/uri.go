package internal

import (
	"net/url"
	"strings"
)

var uriEscaper = strings.NewReplacer(`'`, "%27", `"`, "%22", "<", "%3C", ">", "%3E")

// IsSSLConnection reports whether the request arrived over TLS, directly or
// through a proxy that set X-Forwarded-Proto.
func (a *WebApplication) IsSSLConnection() bool {
	if a.request == nil {
		return false
	}
	if a.request.TLS != nil {
		return true
	}
	return strings.EqualFold(a.request.Header.Get("X-Forwarded-Proto"), "https")
}

func (a *WebApplication) detectRequestURI() string {
	if a.request == nil {
		return ""
	}

	scheme := "http://"
	if a.IsSSLConnection() {
		scheme = "https://"
	}

	requestURI := a.request.RequestURI
	if requestURI == "" && a.request.URL != nil {
		requestURI = a.request.URL.RequestURI()
	}

	return uriEscaper.Replace(scheme + a.request.Host + requestURI)
}

// loadSystemURIs stores the uri.* configuration keys for the request.
func (a *WebApplication) loadSystemURIs() {
	requestURI := a.detectRequestURI()
	a.Set("uri.request", requestURI)

	var host, path string
	if siteURI := strings.TrimSpace(a.config.String("site_uri", "")); siteURI != "" {
		if u, err := url.Parse(siteURI); err == nil {
			host = hostPrefix(u)
			path = u.Path
		}
	} else {
		if u, err := url.Parse(requestURI); err == nil {
			host = hostPrefix(u)
		}
		path = a.config.String("base_path", "")
	}

	path = strings.TrimRight(path, `/\`)
	if i := strings.Index(path, "index.php"); i >= 0 {
		path = path[:i] + path[i+len("index.php"):]
	}
	path = strings.TrimRight(path, `/\`)

	baseFull := host + path + "/"
	a.Set("uri.base.full", baseFull)
	a.Set("uri.base.host", host)
	a.Set("uri.base.path", path+"/")

	if requestURI != "" {
		a.Set("uri.route", strings.TrimPrefix(requestURI, baseFull))
	}

	mediaURI := strings.TrimSpace(a.config.String("media_uri", ""))
	switch {
	case mediaURI == "":
		a.Set("uri.media.full", baseFull+"media/")
		a.Set("uri.media.path", path+"/media/")
	case strings.Contains(mediaURI, "://"):
		a.Set("uri.media.full", mediaURI)
		a.Set("uri.media.path", mediaURI)
	default:
		mediaURI = strings.Trim(mediaURI, `/\`)
		if mediaURI != "" {
			mediaURI = "/" + mediaURI + "/"
		} else {
			mediaURI = "/"
		}
		a.Set("uri.media.full", host+mediaURI)
		a.Set("uri.media.path", mediaURI)
	}
}

func hostPrefix(u *url.URL) string {
	if u.Host == "" {
		return ""
	}
	prefix := u.Scheme + "://"
	if u.User != nil {
		prefix += u.User.String() + "@"
	}
	return prefix + u.Host
}
