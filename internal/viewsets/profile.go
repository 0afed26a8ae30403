package viewsets

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"viewset-bot/internal/entity"
	"viewset-bot/internal/repository/specification"
	"viewset-bot/internal/repository/unitofwork"
	"viewset-bot/pkg/bot"
	"viewset-bot/pkg/cursor"
	"viewset-bot/pkg/form"
	"viewset-bot/pkg/viewset"
)

var errReadOnly = errors.New("profile collection only supports get and update")

var ProfileForm = &form.Form{
	Name: "ProfileForm",
	Fields: []form.Field{
		{Name: "timezone", Label: "Timezone", Kind: cursor.KindString, Required: true, Rules: "max=8"},
		{Name: "language", Label: "Language", Kind: cursor.KindString, Required: true, Rules: "max=8"},
	},
}

// ProfileCollection exposes exactly one record: the actor's own participant.
type ProfileCollection struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewProfileCollection(uowFactory unitofwork.RepositoryFactory) *ProfileCollection {
	return &ProfileCollection{uowFactory: uowFactory}
}

func profileRecord(p *entity.Participant) *viewset.Record {
	return &viewset.Record{
		ID: strconv.FormatInt(p.Id, 10),
		Values: map[string]cursor.Value{
			"timezone": cursor.String(p.Timezone),
			"language": cursor.String(p.LanguageCode),
		},
	}
}

func (c *ProfileCollection) own(ctx context.Context, scope viewset.Scope, id string) (*entity.Participant, error) {
	if id != strconv.FormatInt(scope.Actor.ID, 10) {
		return nil, nil
	}
	return c.uowFactory.NewUnitOfWork(ctx).ParticipantRepository().FindOne(ctx, specification.ByID{ID: scope.Actor.ID})
}

func (c *ProfileCollection) Get(ctx context.Context, scope viewset.Scope, id string) (*viewset.Record, error) {
	p, err := c.own(ctx, scope, id)
	if err != nil || p == nil {
		return nil, err
	}
	return profileRecord(p), nil
}

func (c *ProfileCollection) List(context.Context, viewset.Scope, viewset.ListOptions) ([]viewset.Record, int, error) {
	return nil, 0, errReadOnly
}

func (c *ProfileCollection) Create(context.Context, viewset.Scope, map[string]cursor.Value) (*viewset.Record, error) {
	return nil, errReadOnly
}

func (c *ProfileCollection) Update(ctx context.Context, scope viewset.Scope, rec *viewset.Record, values map[string]cursor.Value) (*viewset.Record, error) {
	p, err := c.own(ctx, scope, rec.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("participant %s disappeared", rec.ID)
	}
	p.Timezone = textOf(values, "timezone")
	p.LanguageCode = textOf(values, "language")
	if err := c.uowFactory.NewUnitOfWork(ctx).ParticipantRepository().Update(ctx, p); err != nil {
		return nil, err
	}
	return profileRecord(p), nil
}

func (c *ProfileCollection) Delete(context.Context, viewset.Scope, *viewset.Record) error {
	return errReadOnly
}

func NewProfileViewset(uowFactory unitofwork.RepositoryFactory, tr bot.Translator) *viewset.Viewset {
	return viewset.MustNew(viewset.Config{
		Name:       "Profile",
		Form:       ProfileForm,
		Collection: NewProfileCollection(uowFactory),
		Actions:    []viewset.Action{viewset.ActionChange, viewset.ActionShowElem},
		Prechoices: map[string][]form.Choice{
			"timezone": {
				{Value: "-05:00", Label: "-05:00"},
				{Value: "+00:00", Label: "+00:00"},
				{Value: "+01:00", Label: "+01:00"},
				{Value: "+03:00", Label: "+03:00"},
			},
			"language": {
				{Value: "en", Label: "English"},
				{Value: "ru", Label: "Русский"},
			},
		},
		ChoiceColumns: 2,
		Translator:    tr,
	})
}
