package pagination

import "viewset-bot/pkg/bot"

const (
	PrevText = "◀️"
	NextText = "▶️"
)

// Page is the slice of a collection shown on one screen.
type Page struct {
	Index   int
	Start   int
	End     int
	HasPrev bool
	HasNext bool
}

// Window computes the bounds of page index for total items, size per page.
// Out of range indices are clamped, so every input yields a valid page.
func Window(index, size, total int) Page {
	if size <= 0 {
		size = 1
	}
	if total < 0 {
		total = 0
	}
	last := 0
	if total > 0 {
		last = (total - 1) / size
	}
	if index < 0 {
		index = 0
	}
	if index > last {
		index = last
	}

	start := index * size
	end := start + size
	if end > total {
		end = total
	}
	if start > total {
		start = total
	}
	return Page{
		Index:   index,
		Start:   start,
		End:     end,
		HasPrev: index > 0,
		HasNext: end < total,
	}
}

// Limit is the number of items on the page.
func (p Page) Limit() int {
	return p.End - p.Start
}

// NavRow builds the prev/next row. token maps a page index to the route
// token of its button. A nil row means everything fits on one page.
func (p Page) NavRow(token func(page int) string) []bot.Button {
	var row []bot.Button
	if p.HasPrev {
		row = append(row, bot.Button{Text: PrevText, Data: token(p.Index - 1)})
	}
	if p.HasNext {
		row = append(row, bot.Button{Text: NextText, Data: token(p.Index + 1)})
	}
	return row
}
