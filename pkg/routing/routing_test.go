package routing

import (
	"context"
	"errors"
	"testing"

	"viewset-bot/pkg/bot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop() bot.Handler {
	return bot.HandlerFunc(func(ctx context.Context, req *bot.Request) (*bot.Response, error) {
		return bot.NewResponse("ok", nil), nil
	})
}

func testTable(t *testing.T) *Table {
	t.Helper()
	table := NewTable()
	require.NoError(t, table.Register("me", "self_info", noop()))
	require.NoError(t, table.Register("start", "start", noop()))
	require.NoError(t, table.Register("cat/", "CategoryViewSet", noop()))
	require.NoError(t, table.Register("ent/", "EntityViewSet", noop()))
	require.NoError(t, table.Register("ent/sub/", "EntitySubViewSet", noop()))
	return table
}

func TestResolveExisting(t *testing.T) {
	table := testTable(t)

	tests := []struct {
		token   string
		pattern string
		rest    string
		args    []string
	}{
		{token: "cat/se", pattern: "cat/", rest: "se"},
		{token: "/cat/", pattern: "cat/", rest: ""},
		{token: "cat/up&1&2&3", pattern: "cat/", rest: "up&1&2&3"},
		{token: "ent/cr&some_name&cat/", pattern: "ent/", rest: "cr&some_name&cat/"},
		{token: "ent/sub/sl&2", pattern: "ent/sub/", rest: "sl&2"},
		{token: "start", pattern: "start"},
		{token: "/start ref42", pattern: "start", rest: " ref42", args: []string{"ref42"}},
		{token: "cat/sl?utm=1", pattern: "cat/", rest: "sl"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			m, err := table.Resolve(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.pattern, m.Route.Pattern)
			assert.Equal(t, tt.rest, m.Rest)
			assert.Equal(t, tt.args, m.Args)
		})
	}
}

func TestResolveMissing(t *testing.T) {
	table := testTable(t)

	for _, token := range []string{"abracadabra", "cat", "startstart/", "", "/"} {
		_, err := table.Resolve(token)
		assert.True(t, errors.Is(err, ErrRouteNotFound), "token %q", token)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	table := testTable(t)
	assert.Error(t, table.Register("cat/", "Other", noop()))
	assert.Error(t, table.Register("dog/", "CategoryViewSet", noop()))
	assert.Error(t, table.Register("", "", noop()))
}

func TestReverse(t *testing.T) {
	table := testTable(t)

	got, err := table.Reverse("CategoryViewSet")
	require.NoError(t, err)
	assert.Equal(t, "cat/", got)

	got, err = table.Reverse("self_info")
	require.NoError(t, err)
	assert.Equal(t, "me", got)

	got, err = table.Reverse("CategoryViewSet", "se", "5")
	require.NoError(t, err)
	assert.Equal(t, "cat/se&5", got)

	_, err = table.Reverse("abracadabra")
	assert.True(t, errors.Is(err, ErrNoReverseMatch))
}

func TestCodecRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		action  string
		filters []string
		args    []string
	}{
		{name: "no args", action: "sl"},
		{name: "page", action: "sl", args: []string{"1"}},
		{name: "field and value", action: "cr", args: []string{"name", "hat"}},
		{name: "one filter", action: "se", filters: []string{"12"}, args: []string{"3"}},
		{name: "empty filter", action: "sl", filters: []string{""}},
		{name: "two filters empty arg", action: "up", filters: []string{"a", "b"}, args: []string{"4", "info", ""}},
		{name: "separator in value", action: "cr", args: []string{"name", "salt & pepper"}},
		{name: "escape lookalikes", action: "cr", args: []string{"name", "50%26 off %25 %3F"}},
		{name: "query mark in value", action: "cr", args: []string{"info", "why? because&more"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec := Codec{Prefix: "cat/", FilterCount: len(tt.filters)}
			token := codec.Encode(tt.action, tt.filters, tt.args...)

			m, err := testTable(t).Resolve(token)
			require.NoError(t, err)
			assert.Equal(t, token, m.Token)

			d, err := codec.Decode(m.Token)
			require.NoError(t, err)
			assert.Equal(t, tt.action, d.Action)
			assert.Equal(t, nonNil(tt.filters), d.Filters)
			assert.Equal(t, nonNil(tt.args), d.Args)
		})
	}
}

func TestCodecEncodeLayout(t *testing.T) {
	assert.Equal(t, "cat/cr&name&hat", Codec{Prefix: "cat/"}.Encode("cr", nil, "name", "hat"))
	assert.Equal(t, "ord/sl&7&1", Codec{Prefix: "ord/", FilterCount: 1}.Encode("sl", []string{"7"}, "1"))
}

func TestCodecDecodeMalformed(t *testing.T) {
	codec := Codec{Prefix: "ord/", FilterCount: 2}

	for _, token := range []string{"cat/sl", "ord/", "ord/sl&1"} {
		_, err := codec.Decode(token)
		assert.True(t, errors.Is(err, ErrMalformedToken), "token %q", token)
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
