package service

import (
	"context"
	"testing"
	"time"

	"viewset-bot/internal/constant"
	"viewset-bot/internal/pkg/logger"
	"viewset-bot/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditServicePersistsAndForwards(t *testing.T) {
	store := newFakeStore()
	pub := &fakePublisher{}
	bus := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 16}, watermill.NopLogger{})
	defer bus.Close()

	svc := NewAuditService(bus, "audit", store, pub, logger.NewNopLogger()).(*auditService)
	day := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return day }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, svc.Consume(ctx))

	svc.Record(11, "cat/sl")
	svc.Record(11, "cat/se&3")

	require.Eventually(t, func() bool { return len(pub.types()) == 2 }, time.Second, 5*time.Millisecond)

	types := store.logTypes(11)
	assert.ElementsMatch(t, []string{"cat/sl", "cat/se&3", constant.ActionActiveToday}, types)
	assert.Equal(t, []string{events.BotAction, events.BotAction}, pub.types())

	svc.now = func() time.Time { return day.Add(24 * time.Hour) }
	svc.Record(11, "cat/sl")
	require.Eventually(t, func() bool { return len(pub.types()) == 3 }, time.Second, 5*time.Millisecond)

	active := 0
	for _, typ := range store.logTypes(11) {
		if typ == constant.ActionActiveToday {
			active++
		}
	}
	assert.Equal(t, 2, active)
}

func TestAuditServiceTruncatesLongRoutes(t *testing.T) {
	store := newFakeStore()
	bus := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer bus.Close()

	svc := NewAuditService(bus, "audit", store, nil, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, svc.Consume(ctx))

	long := make([]byte, 100)
	for i := range long {
		long[i] = 'a'
	}
	svc.Record(1, string(long))

	require.Eventually(t, func() bool { return len(store.logTypes(1)) == 2 }, time.Second, 5*time.Millisecond)
	for _, typ := range store.logTypes(1) {
		assert.LessOrEqual(t, len(typ), constant.ActionTypeMaxLength)
	}
}
