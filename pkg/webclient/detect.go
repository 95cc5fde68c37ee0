package webclient

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	macPattern          = regexp.MustCompile(`(?i)macintosh|mac os x`)
	operaVersionPattern = regexp.MustCompile(`Opera[/| ]?([0-9.]+)`)
	versionPattern      = regexp.MustCompile(`Version/([0-9.]+)`)

	browserPatterns = map[string]*regexp.Regexp{}
)

func init() {
	for _, p := range []string{"MSIE", " rv", "Edge", "Edg", "Firefox", "SeaMonkey", "Chrome", "Safari", "Opera"} {
		browserPatterns[p] = regexp.MustCompile(`(Version|` + regexp.QuoteMeta(p) + `)[/ :]+([0-9.|a-zA-Z.]*)`)
	}
}

// detectPlatform expects the lowercased user agent.
func detectPlatform(ua string) (Platform, bool) {
	switch {
	case strings.Contains(ua, "windows"):
		switch {
		case strings.Contains(ua, "windows phone"):
			return PlatformWindowsPhone, true
		case strings.Contains(ua, "windows ce"):
			return PlatformWindowsCE, true
		}
		return PlatformWindows, false

	case strings.Contains(ua, "iphone"):
		switch {
		case strings.Contains(ua, "ipad"):
			return PlatformIPad, true
		case strings.Contains(ua, "ipod"):
			return PlatformIPod, true
		}
		return PlatformIPhone, true

	case strings.Contains(ua, "ipad"):
		return PlatformIPad, true

	case strings.Contains(ua, "ipod"):
		return PlatformIPod, true

	case macPattern.MatchString(ua):
		return PlatformMac, false

	case strings.Contains(ua, "blackberry"):
		return PlatformBlackBerry, true

	case strings.Contains(ua, "android"):
		if strings.Contains(ua, "android 3") ||
			strings.Contains(ua, "tablet") ||
			!strings.Contains(ua, "mobile") ||
			strings.Contains(ua, "silk") {
			return PlatformAndroidTablet, true
		}
		return PlatformAndroid, true

	case strings.Contains(ua, "linux"):
		return PlatformLinux, false
	}

	return "", false
}

// detectEngine takes both the raw and the lowercased user agent; version
// patterns are case-sensitive, token checks are not.
func detectEngine(raw, ua string) Engine {
	switch {
	case strings.Contains(ua, "msie") || strings.Contains(ua, "trident"):
		return EngineTrident

	case strings.Contains(ua, "edge"):
		return EngineEdge

	case strings.Contains(ua, "edg"):
		return EngineBlink

	case strings.Contains(ua, "chrome"):
		// Chrome switched from WebKit to Blink at version 28.
		if chromeMajor(raw, ua) >= 28 {
			return EngineBlink
		}
		return EngineWebKit

	case strings.Contains(ua, "applewebkit") || strings.Contains(ua, "blackberry"):
		return EngineWebKit

	case strings.Contains(ua, "gecko") && !strings.Contains(ua, "like gecko"):
		return EngineGecko

	case strings.Contains(ua, "opera") || strings.Contains(ua, "presto"):
		// Opera switched from Presto to Blink at version 15.
		if operaVersion(raw) >= 15 {
			return EngineBlink
		}
		return EnginePresto

	case strings.Contains(ua, "khtml"):
		return EngineKHTML

	case strings.Contains(ua, "amaya"):
		return EngineAmaya
	}

	return ""
}

// chromeMajor returns the major version following the first "Chrome/" token,
// or 0 when it cannot be read.
func chromeMajor(raw, ua string) int {
	idx := strings.Index(ua, "chrome")
	if idx < 0 {
		return 0
	}

	parts := strings.SplitN(raw[idx:], "/", 3)
	if len(parts) < 2 {
		return 0
	}
	version, _, _ := strings.Cut(parts[1], " ")

	return leadingInt(version)
}

func operaVersion(raw string) float64 {
	var version float64
	if m := operaVersionPattern.FindStringSubmatch(raw); m != nil {
		version = parseFloat(m[1])
	}
	// Opera 10+ reports its real version in a trailing Version/ token.
	if m := versionPattern.FindStringSubmatch(raw); m != nil {
		if v := parseFloat(m[1]); v >= 10 {
			version = v
		}
	}
	return version
}

func detectBrowser(raw, ua string) (Browser, string) {
	var (
		browser Browser
		pattern string
	)

	switch {
	case strings.Contains(ua, "msie") && !strings.Contains(ua, "opera"):
		browser, pattern = BrowserIE, "MSIE"
	case strings.Contains(ua, "trident"):
		browser, pattern = BrowserIE, " rv"
	case strings.Contains(ua, "edge"):
		browser, pattern = BrowserEdge, "Edge"
	case strings.Contains(ua, "edg"):
		browser, pattern = BrowserEdg, "Edg"
	case strings.Contains(ua, "firefox") && !strings.Contains(ua, "like firefox"):
		browser, pattern = BrowserFirefox, "Firefox"
	case strings.Contains(ua, "seamonkey"):
		browser, pattern = BrowserFirefox, "SeaMonkey"
	case strings.Contains(ua, "chrome"):
		browser, pattern = BrowserChrome, "Chrome"
	case strings.Contains(ua, "safari"):
		browser, pattern = BrowserSafari, "Safari"
	case strings.Contains(ua, "opera"):
		browser, pattern = BrowserOpera, "Opera"
	default:
		return "", ""
	}

	return browser, browserVersion(raw, ua, pattern)
}

// browserVersion extracts the version for the detected browser. Many agents
// report both a product token and a Version/ token; which one wins depends
// on how many candidates were found and where they sit.
func browserVersion(raw, ua, pattern string) string {
	matches := browserPatterns[pattern].FindAllStringSubmatch(raw, -1)

	switch {
	case len(matches) == 0:
		return ""

	case len(matches) == 2:
		lastVersion := strings.LastIndex(ua, "version")
		lastProduct := strings.LastIndex(ua, strings.ToLower(pattern))
		if lastVersion < lastProduct {
			return matches[0][2]
		}
		return matches[1][2]

	case len(matches) > 2:
		for i, m := range matches {
			if m[1] != "Version" {
				continue
			}
			// A Version token in first position is ignored.
			if i > 0 {
				return m[2]
			}
			break
		}
		return ""
	}

	return matches[0][2]
}

// asciiLower lowercases ASCII letters only, so byte offsets stay valid
// against the original string.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func leadingInt(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, _ := strconv.Atoi(s[:end])
	return n
}

func parseFloat(s string) float64 {
	// Values like "9.80.1" keep only the first fractional part.
	if first, rest, ok := strings.Cut(s, "."); ok {
		if second, _, ok := strings.Cut(rest, "."); ok {
			s = first + "." + second
		}
	}
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
