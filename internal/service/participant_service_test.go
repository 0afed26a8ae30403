package service

import (
	"context"
	"testing"

	"viewset-bot/internal/constant"
	"viewset-bot/internal/entity"
	"viewset-bot/internal/pkg/logger"
	"viewset-bot/pkg/bot"
	"viewset-bot/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParticipantService(store *fakeStore, pub *fakePublisher, staff ...int64) IParticipantService {
	isStaff := func(id int64) bool {
		for _, s := range staff {
			if s == id {
				return true
			}
		}
		return false
	}
	var publisher EventPublisher
	if pub != nil {
		publisher = pub
	}
	return NewParticipantService(store, publisher, isStaff, "en", logger.NewNopLogger())
}

func TestResolveCreatesParticipant(t *testing.T) {
	store := newFakeStore()
	pub := &fakePublisher{}
	svc := newParticipantService(store, pub)

	actor, err := svc.Resolve(context.Background(), &bot.Event{
		ParticipantID: 42,
		Username:      "ann",
		FirstName:     "Ann",
		LanguageCode:  "ru",
		Text:          "/start promo",
	})
	require.NoError(t, err)

	assert.True(t, actor.Created)
	assert.Equal(t, int64(42), actor.ID)
	assert.Equal(t, "Ann", actor.Name)
	assert.Equal(t, "ru", actor.Locale)
	assert.False(t, actor.IsStaff)

	stored := store.participants[42]
	require.NotNil(t, stored)
	assert.True(t, stored.IsActive)
	assert.Equal(t, constant.DefaultTimezone, stored.Timezone)

	assert.Equal(t, []string{constant.ActionCreated}, store.logTypes(42))
	require.Contains(t, store.links, "promo")
	assert.Equal(t, []int64{42}, store.links["promo"].ParticipantIds)
	assert.Equal(t, []string{events.ParticipantJoined}, pub.types())
}

func TestResolveExistingParticipant(t *testing.T) {
	store := newFakeStore()
	store.participants[7] = &entity.Participant{Id: 7, Username: "bob", FirstName: "Bob", LanguageCode: "en", IsActive: true}
	svc := newParticipantService(store, nil, 7)

	actor, err := svc.Resolve(context.Background(), &bot.Event{ParticipantID: 7, Username: "bobby", Text: "hi"})
	require.NoError(t, err)

	assert.False(t, actor.Created)
	assert.True(t, actor.IsStaff)
	assert.Equal(t, "bobby", store.participants[7].Username)
	assert.Empty(t, store.logTypes(7))
}

func TestResolveReactivatesAndAttachesDeepLink(t *testing.T) {
	store := newFakeStore()
	store.participants[5] = &entity.Participant{Id: 5, FirstName: "Eve", IsActive: false}
	store.links["spring"] = &entity.DeepLink{Code: "spring", ParticipantIds: []int64{1}}
	svc := newParticipantService(store, nil)

	_, err := svc.Resolve(context.Background(), &bot.Event{ParticipantID: 5, Text: "/start spring"})
	require.NoError(t, err)

	assert.True(t, store.participants[5].IsActive)
	assert.Equal(t, []int64{1, 5}, store.links["spring"].ParticipantIds)

	_, err = svc.Resolve(context.Background(), &bot.Event{ParticipantID: 5, Text: "/start spring"})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 5}, store.links["spring"].ParticipantIds)
}

func TestResolveFallsBackToDefaultLocale(t *testing.T) {
	store := newFakeStore()
	svc := newParticipantService(store, nil)

	actor, err := svc.Resolve(context.Background(), &bot.Event{ParticipantID: 3, Username: "u3"})
	require.NoError(t, err)
	assert.Equal(t, "en", actor.Locale)
	assert.Equal(t, "u3", actor.Name)
}
