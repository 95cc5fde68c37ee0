package internal

import (
	"context"
	"strings"

	"github.com/dmitrymomot/appshell/pkg/session"
)

// CSRFHeader carries the form token for script-driven requests.
const CSRFHeader = "X-CSRF-Token"

// Session returns the request session, loading it through the session
// manager on first use.
func (a *WebApplication) Session() (Session, error) {
	if a.session != nil {
		return a.session, nil
	}
	if a.sessions == nil {
		return nil, ErrSessionNotConfigured
	}

	s, err := a.sessions.Load(a.requestContext(), a.request)
	if err != nil {
		return nil, err
	}
	a.session = s
	return s, nil
}

// FormToken returns the session's form token, creating it when needed.
func (a *WebApplication) FormToken(forceNew bool) (string, error) {
	s, err := a.Session()
	if err != nil {
		return "", err
	}
	return s.GetToken(forceNew), nil
}

// CheckToken validates the form token of the request. The token may come
// in the X-CSRF-Token header, or as the name of a non-empty field of the
// form ("post") or query ("get").
func (a *WebApplication) CheckToken(method string) (bool, error) {
	s, err := a.Session()
	if err != nil {
		return false, err
	}
	token := s.GetToken(false)

	if header := alnum(a.request.Header.Get(CSRFHeader)); header != "" {
		return s.HasToken(header), nil
	}

	var source map[string][]string
	switch strings.ToLower(method) {
	case "get":
		source = a.request.URL.Query()
	default:
		_ = a.request.ParseForm()
		source = a.request.PostForm
	}

	values := source[token]
	if len(values) == 0 || alnum(values[0]) == "" {
		return false, nil
	}
	return s.HasToken(token), nil
}

// DestroySession deletes the current session from the store and buffers an
// expiring cookie. It does nothing when no session was loaded or created.
func (a *WebApplication) DestroySession(ctx context.Context) error {
	if a.sessions == nil {
		return ErrSessionNotConfigured
	}
	sess, err := a.Session()
	if err != nil {
		return err
	}
	s, ok := sess.(*session.Session)
	if !ok {
		return nil
	}

	cookie, err := a.sessions.Destroy(ctx, s)
	if err != nil {
		return err
	}
	a.session = nil
	a.SetHeader("Set-Cookie", cookie.String(), false)
	return nil
}

func (a *WebApplication) requestContext() context.Context {
	if a.request != nil {
		return a.request.Context()
	}
	return context.Background()
}

// saveSession persists a managed, modified session and buffers its cookie.
func (a *WebApplication) saveSession(ctx context.Context) error {
	if a.sessions == nil {
		return nil
	}
	s, ok := a.session.(*session.Session)
	if !ok {
		return nil
	}

	cookie, err := a.sessions.Save(ctx, s)
	if err != nil {
		return err
	}
	if cookie != nil {
		a.SetHeader("Set-Cookie", cookie.String(), false)
	}
	return nil
}

func alnum(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, s)
}
