package webclient

import (
	"net/http"
	"regexp"
	"strings"
)

// Platform identifies the client operating system.
type Platform string

const (
	PlatformWindows       Platform = "windows"
	PlatformWindowsPhone  Platform = "windows_phone"
	PlatformWindowsCE     Platform = "windows_ce"
	PlatformIPhone        Platform = "iphone"
	PlatformIPad          Platform = "ipad"
	PlatformIPod          Platform = "ipod"
	PlatformMac           Platform = "mac"
	PlatformBlackBerry    Platform = "blackberry"
	PlatformAndroid       Platform = "android"
	PlatformAndroidTablet Platform = "android_tablet"
	PlatformLinux         Platform = "linux"
)

// Engine identifies the rendering engine.
type Engine string

const (
	EngineTrident Engine = "trident"
	EngineWebKit  Engine = "webkit"
	EngineGecko   Engine = "gecko"
	EnginePresto  Engine = "presto"
	EngineKHTML   Engine = "khtml"
	EngineAmaya   Engine = "amaya"
	EngineEdge    Engine = "edge"
	EngineBlink   Engine = "blink"
)

// Browser identifies the user agent product.
type Browser string

const (
	BrowserIE      Browser = "ie"
	BrowserFirefox Browser = "firefox"
	BrowserChrome  Browser = "chrome"
	BrowserSafari  Browser = "safari"
	BrowserOpera   Browser = "opera"
	BrowserEdge    Browser = "edge"
	BrowserEdg     Browser = "edg"
)

// robotPattern matches known crawler signatures. An empty user agent is
// treated as a robot.
var robotPattern = regexp.MustCompile(`(?i)http://|bot|robot|spider|crawler|curl|^$`)

// Client is the capability descriptor of a single request's client.
// It is immutable once returned by Detect.
type Client struct {
	Headers        map[string]string
	UserAgent      string
	Platform       Platform
	Engine         Engine
	Browser        Browser
	BrowserVersion string
	Encodings      []string
	Languages      []string
	Mobile         bool
	Robot          bool
}

// Detect builds a Client from raw header values.
// headers may be nil.
func Detect(userAgent, acceptEncoding, acceptLanguage string, headers http.Header) *Client {
	c := &Client{
		UserAgent: userAgent,
		Encodings: splitList(acceptEncoding),
		Languages: splitList(acceptLanguage),
		Robot:     robotPattern.MatchString(userAgent),
		Headers:   flattenHeaders(headers),
	}

	ua := asciiLower(userAgent)
	c.Platform, c.Mobile = detectPlatform(ua)
	c.Engine = detectEngine(userAgent, ua)
	c.Browser, c.BrowserVersion = detectBrowser(userAgent, ua)

	return c
}

// FromRequest builds a Client from an incoming request.
func FromRequest(r *http.Request) *Client {
	c := Detect(
		r.UserAgent(),
		r.Header.Get("Accept-Encoding"),
		r.Header.Get("Accept-Language"),
		r.Header,
	)
	if r.Host != "" {
		c.Headers["Host"] = r.Host
	}
	return c
}

// AcceptsEncoding reports whether the client listed the given content coding.
func (c *Client) AcceptsEncoding(encoding string) bool {
	for _, e := range c.Encodings {
		if strings.EqualFold(e, encoding) {
			return true
		}
	}
	return false
}

// splitList splits a comma separated header value, trimming each token.
// Order is preserved and duplicates are kept.
func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h)+1)
	for name, values := range h {
		if len(values) == 0 {
			continue
		}
		out[http.CanonicalHeaderKey(name)] = values[0]
	}
	return out
}
