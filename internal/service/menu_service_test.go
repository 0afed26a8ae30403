package service

import (
	"context"
	"testing"

	"viewset-bot/internal/entity"
	"viewset-bot/pkg/bot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuLookup(t *testing.T) {
	store := newFakeStore()
	store.menu = []*entity.MenuElem{
		{Id: 1, Command: "help", Message: "Help text", IsVisible: true,
			Buttons: [][]entity.MenuButton{{{Text: "Site", URL: "https://example.org"}}}},
		{Id: 2, Command: "secret", Message: "Hidden", IsVisible: false},
		{Id: 3, Callbacks: []string{"promo", "promo2"}, Message: "Promo", IsVisible: true},
		{Id: 4, Message: "Default block", EmptyBlock: true, IsVisible: true},
	}
	svc := NewMenuService(store)

	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{name: "command", payload: "/help", want: "Help text"},
		{name: "command with args", payload: "/help me", want: "Help text"},
		{name: "hidden command", payload: "/secret", want: "Default block"},
		{name: "callback", payload: "promo2", want: "Promo"},
		{name: "unknown text", payload: "hello", want: "Default block"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Lookup(context.Background(), bot.Actor{}, tt.payload)
			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, tt.want, resp.Text)
		})
	}

	resp, err := svc.Lookup(context.Background(), bot.Actor{}, "/help")
	require.NoError(t, err)
	assert.Equal(t, bot.Keyboard{{{Text: "Site", URL: "https://example.org"}}}, resp.Buttons)
}

func TestMenuLookupNothing(t *testing.T) {
	svc := NewMenuService(newFakeStore())
	resp, err := svc.Lookup(context.Background(), bot.Actor{}, "/help")
	require.NoError(t, err)
	assert.Nil(t, resp)
}
