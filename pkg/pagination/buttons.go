package pagination

import "viewset-bot/pkg/bot"

// SelectedTick marks chosen values in a selection grid.
const SelectedTick = "✅ "

// Item is one selectable value.
type Item struct {
	Text  string
	Value string
}

// ButtonPagination lays out selectable items as a paged button grid, used
// for choice and multi-choice fields.
type ButtonPagination struct {
	Items    []Item
	Selected []string
	Rows     int
	Columns  int

	// ValueToken builds the token a value button carries.
	ValueToken func(value string) string

	// PageToken builds the token of a page navigation button.
	PageToken func(page int) string

	Header []bot.Button
	Footer []bot.Button
}

func (p *ButtonPagination) perPage() int {
	rows, cols := p.Rows, p.Columns
	if rows <= 0 {
		rows = 8
	}
	if cols <= 0 {
		cols = 1
	}
	return rows * cols
}

func (p *ButtonPagination) isSelected(value string) bool {
	for _, s := range p.Selected {
		if s == value {
			return true
		}
	}
	return false
}

// DefaultPage is the page holding the first selected value, or 0.
func (p *ButtonPagination) DefaultPage() int {
	if len(p.Selected) == 0 {
		return 0
	}
	for i, item := range p.Items {
		if item.Value == p.Selected[0] {
			return i / p.perPage()
		}
	}
	return 0
}

// Build renders one page of the grid: header rows, value rows, a
// navigation row when there is more than one page, footer rows.
func (p *ButtonPagination) Build(page int) bot.Keyboard {
	columns := p.Columns
	if columns <= 0 {
		columns = 1
	}
	window := Window(page, p.perPage(), len(p.Items))

	var kb bot.Keyboard
	for _, b := range p.Header {
		kb = append(kb, []bot.Button{b})
	}

	var row []bot.Button
	for _, item := range p.Items[window.Start:window.End] {
		text := item.Text
		if p.isSelected(item.Value) {
			text = SelectedTick + text
		}
		row = append(row, bot.Button{Text: text, Data: p.ValueToken(item.Value)})
		if len(row) == columns {
			kb = append(kb, row)
			row = nil
		}
	}
	if len(row) > 0 {
		kb = append(kb, row)
	}

	if p.PageToken != nil {
		if nav := window.NavRow(p.PageToken); len(nav) > 0 {
			kb = append(kb, nav)
		}
	}

	for _, b := range p.Footer {
		kb = append(kb, []bot.Button{b})
	}
	return kb
}
