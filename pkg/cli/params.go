package cli

import (
	"strconv"
	"strings"
)

// Parameters holds named options and positional arguments.
type Parameters struct {
	values map[string]string
	args   []string
}

// NewParameters returns an empty set.
func NewParameters() *Parameters {
	return &Parameters{values: make(map[string]string)}
}

// ParseArgs parses command-line arguments, without the program name.
func ParseArgs(argv []string) *Parameters {
	p := NewParameters()

	for i := 0; i < len(argv); i++ {
		arg := argv[i]

		switch {
		case arg == "--":
			p.args = append(p.args, argv[i+1:]...)
			return p

		case strings.HasPrefix(arg, "--"):
			name, value, hasValue := strings.Cut(arg[2:], "=")
			if !hasValue {
				if next, ok := valueAt(argv, i+1); ok {
					value = next
					i++
				} else {
					value = "true"
				}
			}
			p.values[name] = value

		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			flags := arg[1:]
			if name, value, ok := strings.Cut(flags, "="); ok {
				p.values[name] = value
				continue
			}
			for j := 0; j < len(flags)-1; j++ {
				p.values[flags[j:j+1]] = "true"
			}
			last := flags[len(flags)-1:]
			if next, ok := valueAt(argv, i+1); ok {
				p.values[last] = next
				i++
			} else {
				p.values[last] = "true"
			}

		default:
			p.args = append(p.args, arg)
		}
	}

	return p
}

// ParseString parses "name=value" pairs separated by spaces. Values may be
// wrapped in single or double quotes; a bare name is set to true.
func ParseString(s string) *Parameters {
	p := NewParameters()
	for _, token := range splitQuoted(s) {
		name, value, ok := strings.Cut(token, "=")
		if !ok {
			p.values[token] = "true"
			continue
		}
		p.values[name] = trimQuotes(value)
	}
	return p
}

// Get returns the option value or def when it was not given.
func (p *Parameters) Get(name, def string) string {
	if v, ok := p.values[name]; ok {
		return v
	}
	return def
}

// Bool reports whether the option was given with a truthy value.
func (p *Parameters) Bool(name string) bool {
	v, ok := p.values[name]
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// Has reports whether the option was given.
func (p *Parameters) Has(name string) bool {
	_, ok := p.values[name]
	return ok
}

// Set stores an option value and returns the previous one.
func (p *Parameters) Set(name, value string) string {
	prev := p.values[name]
	p.values[name] = value
	return prev
}

// Args returns the positional arguments.
func (p *Parameters) Args() []string {
	return p.args
}

// Values returns a copy of all named options.
func (p *Parameters) Values() map[string]string {
	out := make(map[string]string, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}

func valueAt(argv []string, i int) (string, bool) {
	if i >= len(argv) || strings.HasPrefix(argv[i], "-") {
		return "", false
	}
	return argv[i], true
}

// splitQuoted splits on spaces that are not inside quotes.
func splitQuoted(s string) []string {
	var (
		out   []string
		cur   strings.Builder
		quote rune
	)
	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
			cur.WriteRune(r)
		case r == '\'' || r == '"':
			quote = r
			cur.WriteRune(r)
		case r == ' ' || r == '\t':
			if cur.Len() > 0 {
				out = append(out, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

func trimQuotes(v string) string {
	if len(v) >= 2 {
		if (v[0] == '\'' && v[len(v)-1] == '\'') || (v[0] == '"' && v[len(v)-1] == '"') {
			return v[1 : len(v)-1]
		}
	}
	return v
}
