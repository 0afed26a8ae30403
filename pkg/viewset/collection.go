package viewset

import (
	"context"

	"viewset-bot/pkg/bot"
	"viewset-bot/pkg/cursor"
)

// Record is one item of a backing collection with its field values.
type Record struct {
	ID     string
	Values map[string]cursor.Value
}

// Scope is what a collection call is restricted to: the acting participant
// and the controller's contextual filters.
type Scope struct {
	Actor   bot.Actor
	Filters []string
}

// Filter returns the i-th contextual filter, or "".
func (s Scope) Filter(i int) string {
	if i < 0 || i >= len(s.Filters) {
		return ""
	}
	return s.Filters[i]
}

type ListOptions struct {
	Offset int
	Limit  int
	Order  string
}

// Collection is the backing store of a viewset. Get returns nil, nil when
// the record does not exist. List must use a stable total order.
type Collection interface {
	Get(ctx context.Context, scope Scope, id string) (*Record, error)
	List(ctx context.Context, scope Scope, opts ListOptions) ([]Record, int, error)
	Create(ctx context.Context, scope Scope, values map[string]cursor.Value) (*Record, error)
	Update(ctx context.Context, scope Scope, rec *Record, values map[string]cursor.Value) (*Record, error)
	Delete(ctx context.Context, scope Scope, rec *Record) error
}
