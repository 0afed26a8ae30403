package service

import (
	"context"
	"sync"
	"time"

	"viewset-bot/internal/entity"
	"viewset-bot/internal/repository/contract"
	"viewset-bot/internal/repository/specification"
	"viewset-bot/internal/repository/unitofwork"
	"viewset-bot/pkg/events"

	"github.com/google/uuid"
)

// fakeStore backs every fake repository. Specifications are interpreted by
// type, which covers the ones the services use.
type fakeStore struct {
	mu           sync.Mutex
	participants map[int64]*entity.Participant
	logs         []*entity.ActionLog
	links        map[string]*entity.DeepLink
	menu         []*entity.MenuElem
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		participants: map[int64]*entity.Participant{},
		links:        map[string]*entity.DeepLink{},
	}
}

func (s *fakeStore) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return &fakeUoW{s: s}
}

func (s *fakeStore) logTypes(participantID int64) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, l := range s.logs {
		if l.ParticipantId == participantID {
			out = append(out, l.Type)
		}
	}
	return out
}

type fakeUoW struct{ s *fakeStore }

func (u *fakeUoW) Begin(context.Context) error { return nil }
func (u *fakeUoW) Commit() error               { return nil }
func (u *fakeUoW) Rollback() error             { return nil }

func (u *fakeUoW) ParticipantRepository() contract.ParticipantRepository { return fakeParticipants{u.s} }
func (u *fakeUoW) ActionLogRepository() contract.ActionLogRepository     { return fakeLogs{u.s} }
func (u *fakeUoW) DeepLinkRepository() contract.DeepLinkRepository       { return fakeLinks{u.s} }
func (u *fakeUoW) MenuElemRepository() contract.MenuElemRepository       { return fakeMenu{u.s} }
func (u *fakeUoW) CategoryRepository() contract.CategoryRepository       { return nil }
func (u *fakeUoW) ProductRepository() contract.ProductRepository         { return nil }
func (u *fakeUoW) OrderRepository() contract.OrderRepository             { return nil }

type fakeParticipants struct{ s *fakeStore }

func (r fakeParticipants) Create(_ context.Context, p *entity.Participant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.participants[p.Id] = &cp
	return nil
}

func (r fakeParticipants) Update(_ context.Context, p *entity.Participant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.participants[p.Id] = &cp
	return nil
}

func (r fakeParticipants) SaveCursor(_ context.Context, id int64, route string, snapshot []byte, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p := r.s.participants[id]
	p.Route, p.CursorSnapshot, p.RouteUpdatedAt = route, snapshot, &at
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

type fakeLogs struct{ s *fakeStore }

func (r fakeLogs) Create(_ context.Context, l *entity.ActionLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l.Id = uuid.New()
	cp := *l
	r.s.logs = append(r.s.logs, &cp)
	return nil
}

func (r fakeLogs) match(specs []specification.Specification) []*entity.ActionLog {
	var out []*entity.ActionLog
	for _, l := range r.s.logs {
		ok := true
		for _, spec := range specs {
			switch sp := spec.(type) {
			case specification.ByParticipant:
				ok = ok && l.ParticipantId == sp.ParticipantID
			case specification.ByActionType:
				ok = ok && l.Type == sp.Type
			case specification.CreatedSince:
				ok = ok && !l.CreatedAt.Before(sp.Since)
			}
		}
		if ok {
			out = append(out, l)
		}
	}
	return out
}

func (r fakeLogs) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.ActionLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.match(specs), nil
}

func (r fakeLogs) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.match(specs))), nil
}

type fakeLinks struct{ s *fakeStore }

func (r fakeLinks) Create(_ context.Context, l *entity.DeepLink) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *l
	r.s.links[l.Code] = &cp
	return nil
}

func (r fakeLinks) Update(ctx context.Context, l *entity.DeepLink) error {
	return r.Create(ctx, l)
}

func (r fakeLinks) FindOne(_ context.Context, specs ...specification.Specification) (*entity.DeepLink, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, spec := range specs {
		if byCode, ok := spec.(specification.ByDeepLinkCode); ok {
			if l, found := r.s.links[byCode.Code]; found {
				cp := *l
				cp.ParticipantIds = append([]int64(nil), l.ParticipantIds...)
				return &cp, nil
			}
		}
	}
	return nil, nil
}

type fakeMenu struct{ s *fakeStore }

func (r fakeMenu) Create(_ context.Context, e *entity.MenuElem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e.Id = uint(len(r.s.menu) + 1)
	r.s.menu = append(r.s.menu, e)
	return nil
}

func (r fakeMenu) Update(context.Context, *entity.MenuElem) error { return nil }
func (r fakeMenu) Delete(context.Context, uint) error             { return nil }

func (r fakeMenu) FindAll(context.Context, ...specification.Specification) ([]*entity.MenuElem, error) {
	return r.s.menu, nil
}

func (r fakeMenu) Count(context.Context, ...specification.Specification) (int64, error) {
	return int64(len(r.s.menu)), nil
}

func (r fakeMenu) FindOne(_ context.Context, specs ...specification.Specification) (*entity.MenuElem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.menu {
		ok := true
		for _, spec := range specs {
			switch sp := spec.(type) {
			case specification.ByCommand:
				ok = ok && e.Command == sp.Command
			case specification.HasCallback:
				ok = ok && e.HandlesCallback(sp.Data)
			case specification.VisibleOnly:
				ok = ok && e.IsVisible
			case specification.EmptyBlocks:
				ok = ok && e.EmptyBlock
			}
		}
		if ok {
			return e, nil
		}
	}
	return nil, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *fakePublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}
