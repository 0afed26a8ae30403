package pagination

import (
	"strconv"
	"testing"

	"viewset-bot/pkg/bot"

	"github.com/stretchr/testify/assert"
)

func pageToken(page int) string { return "cat/sl&" + strconv.Itoa(page) }

func TestWindow(t *testing.T) {
	tests := []struct {
		name  string
		index int
		size  int
		total int
		want  Page
	}{
		{name: "empty", index: 0, size: 10, total: 0, want: Page{}},
		{name: "fits one page", index: 0, size: 10, total: 10, want: Page{End: 10}},
		{name: "first of three", index: 0, size: 1, total: 3, want: Page{End: 1, HasNext: true}},
		{name: "middle", index: 1, size: 1, total: 3, want: Page{Index: 1, Start: 1, End: 2, HasPrev: true, HasNext: true}},
		{name: "last", index: 2, size: 1, total: 3, want: Page{Index: 2, Start: 2, End: 3, HasPrev: true}},
		{name: "negative clamps to first", index: -4, size: 2, total: 5, want: Page{End: 2, HasNext: true}},
		{name: "past end clamps to last", index: 9, size: 2, total: 5, want: Page{Index: 2, Start: 4, End: 5, HasPrev: true}},
		{name: "short last page", index: 1, size: 3, total: 4, want: Page{Index: 1, Start: 3, End: 4, HasPrev: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Window(tt.index, tt.size, tt.total))
		})
	}
}

func TestNavRow(t *testing.T) {
	assert.Nil(t, Window(0, 10, 5).NavRow(pageToken))

	first := Window(0, 1, 3).NavRow(pageToken)
	assert.Equal(t, []bot.Button{{Text: NextText, Data: "cat/sl&1"}}, first)

	middle := Window(1, 1, 3).NavRow(pageToken)
	assert.Equal(t, []bot.Button{
		{Text: PrevText, Data: "cat/sl&0"},
		{Text: NextText, Data: "cat/sl&2"},
	}, middle)

	last := Window(2, 1, 3).NavRow(pageToken)
	assert.Equal(t, []bot.Button{{Text: PrevText, Data: "cat/sl&1"}}, last)
}

func TestButtonPaginationMarksSelected(t *testing.T) {
	p := &ButtonPagination{
		Items: []Item{
			{Text: "Hats", Value: "hats"},
			{Text: "Shoes", Value: "shoes"},
			{Text: "Cloth", Value: "cloth"},
		},
		Selected:   []string{"shoes"},
		Rows:       2,
		Columns:    1,
		ValueToken: func(v string) string { return "ord/up&1&products&" + v },
		PageToken:  func(p int) string { return "ord/up&1&products&!PG!" + strconv.Itoa(p) },
		Footer:     []bot.Button{{Text: "Next", Data: "ord/up&1&products&!NS!"}},
	}

	assert.Equal(t, 0, p.DefaultPage())

	kb := p.Build(0)
	assert.Equal(t, bot.Keyboard{
		{{Text: "Hats", Data: "ord/up&1&products&hats"}},
		{{Text: SelectedTick + "Shoes", Data: "ord/up&1&products&shoes"}},
		{{Text: NextText, Data: "ord/up&1&products&!PG!1"}},
		{{Text: "Next", Data: "ord/up&1&products&!NS!"}},
	}, kb)

	second := p.Build(1)
	assert.Equal(t, bot.Keyboard{
		{{Text: "Cloth", Data: "ord/up&1&products&cloth"}},
		{{Text: PrevText, Data: "ord/up&1&products&!PG!0"}},
		{{Text: "Next", Data: "ord/up&1&products&!NS!"}},
	}, second)
}

func TestButtonPaginationColumnsAndDefaultPage(t *testing.T) {
	items := make([]Item, 0, 5)
	for i := 1; i <= 5; i++ {
		s := strconv.Itoa(i)
		items = append(items, Item{Text: s, Value: s})
	}
	p := &ButtonPagination{
		Items:      items,
		Selected:   []string{"5"},
		Rows:       1,
		Columns:    2,
		ValueToken: func(v string) string { return v },
	}

	assert.Equal(t, 2, p.DefaultPage())
	assert.Equal(t, bot.Keyboard{{{Text: "1", Data: "1"}, {Text: "2", Data: "2"}}}, p.Build(0))
}
