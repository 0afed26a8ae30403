package routing

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"viewset-bot/pkg/bot"
)

var (
	ErrRouteNotFound  = errors.New("route not found")
	ErrMalformedToken = errors.New("malformed route token")
	ErrNoReverseMatch = errors.New("no reverse match")
)

// Route is one registered pattern. Patterns ending with "/" mount a
// controller and match every token below them; other patterns are plain
// commands.
type Route struct {
	Pattern string
	Name    string
	Handler bot.Handler
}

func (r Route) IsMount() bool {
	return strings.HasSuffix(r.Pattern, "/")
}

func (r Route) matches(path string) bool {
	if r.IsMount() {
		return strings.HasPrefix(path, r.Pattern)
	}
	return path == r.Pattern || strings.HasPrefix(path, r.Pattern+" ")
}

// Match is a resolved token.
type Match struct {
	Route Route

	// Token is the normalized token: no leading "/" and no query suffix.
	Token string

	// Rest is the part of the token after the pattern.
	Rest string

	// Args are the space separated arguments of a plain command.
	Args []string
}

// Table maps patterns to handlers.
type Table struct {
	mu     sync.RWMutex
	routes []Route
	names  map[string]Route
}

func NewTable() *Table {
	return &Table{names: make(map[string]Route)}
}

// Register adds a pattern. Names must be unique when given.
func (t *Table) Register(pattern, name string, handler bot.Handler) error {
	pattern = strings.TrimPrefix(pattern, "/")
	if pattern == "" {
		return fmt.Errorf("empty route pattern")
	}
	if handler == nil {
		return fmt.Errorf("route %q has no handler", pattern)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, r := range t.routes {
		if r.Pattern == pattern {
			return fmt.Errorf("route %q already registered", pattern)
		}
	}
	route := Route{Pattern: pattern, Name: name, Handler: handler}
	if name != "" {
		if _, ok := t.names[name]; ok {
			return fmt.Errorf("route name %q already registered", name)
		}
		t.names[name] = route
	}
	t.routes = append(t.routes, route)
	return nil
}

// MustRegister is Register for static wiring.
func (t *Table) MustRegister(pattern, name string, handler bot.Handler) {
	if err := t.Register(pattern, name, handler); err != nil {
		panic(err)
	}
}

// Normalize strips the leading "/" and any "?query" suffix.
func Normalize(token string) string {
	token = strings.TrimPrefix(token, "/")
	if i := strings.Index(token, "?"); i >= 0 {
		token = token[:i]
	}
	return token
}

// Resolve finds the longest pattern matching token.
func (t *Table) Resolve(token string) (Match, error) {
	path := Normalize(token)
	if path == "" {
		return Match{}, ErrRouteNotFound
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	var best *Route
	for i := range t.routes {
		r := &t.routes[i]
		if r.matches(path) && (best == nil || len(r.Pattern) > len(best.Pattern)) {
			best = r
		}
	}
	if best == nil {
		return Match{}, fmt.Errorf("%w: %q", ErrRouteNotFound, path)
	}

	m := Match{Route: *best, Token: path, Rest: strings.TrimPrefix(path, best.Pattern)}
	if args := strings.Fields(m.Rest); !best.IsMount() && len(args) > 0 {
		m.Args = args
	}
	return m, nil
}

// Reverse returns the token for a named route. Arguments of a mount are
// joined with the codec separator; arguments of a command with spaces.
func (t *Table) Reverse(name string, args ...string) (string, error) {
	t.mu.RLock()
	route, ok := t.names[name]
	t.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNoReverseMatch, name)
	}
	if len(args) == 0 {
		return route.Pattern, nil
	}
	if route.IsMount() {
		return Codec{Prefix: route.Pattern}.Encode(args[0], nil, args[1:]...), nil
	}
	return route.Pattern + " " + strings.Join(args, " "), nil
}
