package viewsets

import (
	"context"
	"strings"
	"sync"
	"time"

	"viewset-bot/internal/entity"
	"viewset-bot/internal/repository/contract"
	"viewset-bot/internal/repository/specification"
	"viewset-bot/internal/repository/unitofwork"
)

// table is an in-memory repository. Rows keep insertion order, which
// matches ordering by id.
type table[T any] struct {
	mu    sync.Mutex
	rows  []*T
	next  uint
	id    func(*T) uint
	setID func(*T, uint)
	match func(*T, specification.Specification) bool
}

func (t *table[T]) create(row *T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	t.setID(row, t.next)
	cp := *row
	t.rows = append(t.rows, &cp)
}

func (t *table[T]) update(row *T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, r := range t.rows {
		if t.id(r) == t.id(row) {
			cp := *row
			t.rows[i] = &cp
		}
	}
}

func (t *table[T]) delete(id uint) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, r := range t.rows {
		if t.id(r) == id {
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
			return
		}
	}
}

func (t *table[T]) filter(specs []specification.Specification) []*T {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []*T
	var window *specification.Pagination
	for _, r := range t.rows {
		ok := true
		for _, spec := range specs {
			switch sp := spec.(type) {
			case specification.ByID:
				ok = ok && t.id(r) == sp.ID.(uint)
			case specification.OrderBy:
			case specification.Pagination:
				window = &sp
			default:
				ok = ok && t.match != nil && t.match(r, spec)
			}
		}
		if ok {
			cp := *r
			out = append(out, &cp)
		}
	}
	if window != nil {
		if window.Offset >= len(out) {
			return nil
		}
		out = out[window.Offset:]
		if window.Limit > 0 && window.Limit < len(out) {
			out = out[:window.Limit]
		}
	}
	return out
}

func (t *table[T]) findOne(specs []specification.Specification) *T {
	if rows := t.filter(specs); len(rows) > 0 {
		return rows[0]
	}
	return nil
}

type fakeStore struct {
	categories   *table[entity.Category]
	products     *table[entity.Product]
	orders       *table[entity.Order]
	menu         *table[entity.MenuElem]
	participants map[int64]*entity.Participant
	mu           sync.Mutex
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		categories: &table[entity.Category]{
			id:    func(c *entity.Category) uint { return c.Id },
			setID: func(c *entity.Category, id uint) { c.Id = id },
		},
		products: &table[entity.Product]{
			id:    func(p *entity.Product) uint { return p.Id },
			setID: func(p *entity.Product, id uint) { p.Id = id },
			match: func(p *entity.Product, spec specification.Specification) bool {
				_, visible := spec.(specification.VisibleOnly)
				return visible && p.IsVisible
			},
		},
		orders: &table[entity.Order]{
			id:    func(o *entity.Order) uint { return o.Id },
			setID: func(o *entity.Order, id uint) { o.Id = id },
			match: func(o *entity.Order, spec specification.Specification) bool {
				switch sp := spec.(type) {
				case specification.ByParticipant:
					return o.ParticipantId == sp.ParticipantID
				case specification.OrderHasProduct:
					for _, id := range o.ProductIds {
						if id == sp.ProductID {
							return true
						}
					}
				}
				return false
			},
		},
		menu: &table[entity.MenuElem]{
			id:    func(m *entity.MenuElem) uint { return m.Id },
			setID: func(m *entity.MenuElem, id uint) { m.Id = id },
			match: func(m *entity.MenuElem, spec specification.Specification) bool {
				sp, ok := spec.(specification.Contains)
				return ok && strings.Contains(strings.ToLower(m.Command), strings.ToLower(sp.Value))
			},
		},
		participants: map[int64]*entity.Participant{},
	}
}

func (s *fakeStore) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return fakeUoW{s} }

type fakeUoW struct{ s *fakeStore }

func (u fakeUoW) Begin(context.Context) error { return nil }
func (u fakeUoW) Commit() error               { return nil }
func (u fakeUoW) Rollback() error             { return nil }

func (u fakeUoW) ParticipantRepository() contract.ParticipantRepository { return fakeParticipants{u.s} }
func (u fakeUoW) ActionLogRepository() contract.ActionLogRepository     { return nil }
func (u fakeUoW) DeepLinkRepository() contract.DeepLinkRepository       { return nil }
func (u fakeUoW) MenuElemRepository() contract.MenuElemRepository       { return fakeMenu{u.s.menu} }
func (u fakeUoW) CategoryRepository() contract.CategoryRepository       { return fakeCategories{u.s.categories} }
func (u fakeUoW) ProductRepository() contract.ProductRepository         { return fakeProducts{u.s.products} }
func (u fakeUoW) OrderRepository() contract.OrderRepository             { return fakeOrders{u.s.orders} }

type fakeCategories struct{ t *table[entity.Category] }

func (r fakeCategories) Create(_ context.Context, c *entity.Category) error { r.t.create(c); return nil }
func (r fakeCategories) Update(_ context.Context, c *entity.Category) error { r.t.update(c); return nil }
func (r fakeCategories) Delete(_ context.Context, id uint) error            { r.t.delete(id); return nil }
func (r fakeCategories) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Category, error) {
	return r.t.findOne(specs), nil
}
func (r fakeCategories) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Category, error) {
	return r.t.filter(specs), nil
}
func (r fakeCategories) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.t.filter(specs))), nil
}

type fakeProducts struct{ t *table[entity.Product] }

func (r fakeProducts) Create(_ context.Context, p *entity.Product) error { r.t.create(p); return nil }
func (r fakeProducts) Update(_ context.Context, p *entity.Product) error { r.t.update(p); return nil }
func (r fakeProducts) Delete(_ context.Context, id uint) error           { r.t.delete(id); return nil }
func (r fakeProducts) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Product, error) {
	return r.t.findOne(specs), nil
}
func (r fakeProducts) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Product, error) {
	return r.t.filter(specs), nil
}
func (r fakeProducts) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.t.filter(specs))), nil
}

type fakeOrders struct{ t *table[entity.Order] }

func (r fakeOrders) Create(_ context.Context, o *entity.Order) error { r.t.create(o); return nil }
func (r fakeOrders) Update(_ context.Context, o *entity.Order) error { r.t.update(o); return nil }
func (r fakeOrders) Delete(_ context.Context, id uint) error         { r.t.delete(id); return nil }
func (r fakeOrders) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Order, error) {
	return r.t.findOne(specs), nil
}
func (r fakeOrders) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Order, error) {
	return r.t.filter(specs), nil
}
func (r fakeOrders) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.t.filter(specs))), nil
}

type fakeMenu struct{ t *table[entity.MenuElem] }

func (r fakeMenu) Create(_ context.Context, m *entity.MenuElem) error { r.t.create(m); return nil }
func (r fakeMenu) Update(_ context.Context, m *entity.MenuElem) error { r.t.update(m); return nil }
func (r fakeMenu) Delete(_ context.Context, id uint) error            { r.t.delete(id); return nil }
func (r fakeMenu) FindOne(_ context.Context, specs ...specification.Specification) (*entity.MenuElem, error) {
	return r.t.findOne(specs), nil
}
func (r fakeMenu) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.MenuElem, error) {
	return r.t.filter(specs), nil
}
func (r fakeMenu) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.t.filter(specs))), nil
}

type fakeParticipants struct{ s *fakeStore }

func (r fakeParticipants) Create(_ context.Context, p *entity.Participant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.participants[p.Id] = &cp
	return nil
}

func (r fakeParticipants) Update(ctx context.Context, p *entity.Participant) error {
	return r.Create(ctx, p)
}

func (r fakeParticipants) SaveCursor(context.Context, int64, string, []byte, time.Time) error {
	return nil
}

func (r fakeParticipants) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Participant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			if p, found := r.s.participants[byID.ID.(int64)]; found {
				cp := *p
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (r fakeParticipants) FindAll(context.Context, ...specification.Specification) ([]*entity.Participant, error) {
	return nil, nil
}

func (r fakeParticipants) Count(context.Context, ...specification.Specification) (int64, error) {
	return int64(len(r.s.participants)), nil
}
