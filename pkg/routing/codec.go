package routing

import (
	"fmt"
	"strings"
)

// Separator joins the parts of a route token.
const Separator = "&"

// "?" is escaped as well since Normalize cuts a token at its query.
var (
	escaper   = strings.NewReplacer("%", "%25", Separator, "%26", "?", "%3F")
	unescaper = strings.NewReplacer("%26", Separator, "%3F", "?", "%25", "%")
)

// Codec builds and parses the tokens of one controller mount. FilterCount
// contextual filters always follow the action code.
type Codec struct {
	Prefix      string
	FilterCount int
}

// Decoded is a parsed route token.
type Decoded struct {
	Action  string
	Filters []string
	Args    []string
}

// Encode joins prefix, action, filters and args. Parts are escaped so that
// values containing the separator survive a round trip.
func (c Codec) Encode(action string, filters []string, args ...string) string {
	parts := make([]string, 0, 1+len(filters)+len(args))
	parts = append(parts, escaper.Replace(action))
	for _, f := range filters {
		parts = append(parts, escaper.Replace(f))
	}
	for _, a := range args {
		parts = append(parts, escaper.Replace(a))
	}
	return c.Prefix + strings.Join(parts, Separator)
}

// Decode is the inverse of Encode.
func (c Codec) Decode(token string) (Decoded, error) {
	if !strings.HasPrefix(token, c.Prefix) {
		return Decoded{}, fmt.Errorf("%w: %q does not start with %q", ErrMalformedToken, token, c.Prefix)
	}
	rest := strings.TrimPrefix(token, c.Prefix)
	if rest == "" {
		return Decoded{}, fmt.Errorf("%w: %q has no action", ErrMalformedToken, token)
	}

	raw := strings.Split(rest, Separator)
	parts := make([]string, len(raw))
	for i, p := range raw {
		parts[i] = unescaper.Replace(p)
	}
	if len(parts)-1 < c.FilterCount {
		return Decoded{}, fmt.Errorf("%w: %q carries %d filters, want %d",
			ErrMalformedToken, token, len(parts)-1, c.FilterCount)
	}

	d := Decoded{Action: parts[0]}
	d.Filters = append([]string{}, parts[1:1+c.FilterCount]...)
	d.Args = append([]string{}, parts[1+c.FilterCount:]...)
	return d, nil
}
