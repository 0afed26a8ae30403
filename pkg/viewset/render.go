package viewset

import (
	"context"
	"fmt"
	"strings"

	"viewset-bot/pkg/bot"
	"viewset-bot/pkg/cursor"
	"viewset-bot/pkg/form"
	"viewset-bot/pkg/pagination"
)

const updateButtonsPerRow = 2

// fieldToken is the token a prompt for field waits on; typed text is
// routed back to it through the cursor.
func (c *Controller) fieldToken(a Action, id, field string, value ...string) string {
	args := []string{field}
	if a == ActionChange {
		args = []string{id, field}
	}
	return c.Token(a, append(args, value...)...)
}

func (c *Controller) prompt(ctx context.Context, a Action, id string, step form.Step) (*bot.Response, error) {
	f := step.Field
	msgs := c.vs.messages
	label := c.T(f.Label)

	c.cursor().Route = c.fieldToken(a, id, f.Name)

	var text strings.Builder
	if step.Outcome == form.OutcomeInvalid {
		errs := make([]string, 0, len(step.Errors))
		for _, e := range step.Errors {
			errs = append(errs, c.T(e))
		}
		text.WriteString(c.T(msgs.FieldErrors, label, strings.Join(errs, " ")))
	}

	withChoices := f.HasChoices() && step.Outcome != form.OutcomeAskText
	if withChoices {
		text.WriteString(c.T(msgs.FillField, label))
	} else {
		text.WriteString(c.T(msgs.WriteValue, label))
	}
	if f.HelpText != "" {
		text.WriteString(c.T(f.HelpText))
		text.WriteString("\n\n")
	}

	var footer []bot.Button
	if withChoices && !f.Strict {
		footer = append(footer, bot.Button{Text: c.T(msgs.ButtonWrite), Data: c.fieldToken(a, id, f.Name, form.WriteTextSentinel)})
	}
	if withChoices && f.IsMulti() {
		footer = append(footer, bot.Button{Text: c.T(msgs.ButtonNext), Data: c.fieldToken(a, id, f.Name, form.AdvanceSentinel)})
	}
	if !f.Required {
		footer = append(footer, bot.Button{Text: c.T(msgs.ButtonBlank), Data: c.fieldToken(a, id, f.Name, form.NullSentinel)})
	}
	switch {
	case a == ActionCreate && c.vs.cfg.CancelButton != nil:
		footer = append(footer, *c.vs.cfg.CancelButton)
	case a == ActionChange && !c.vs.cfg.HideGoBack && c.vs.enabled[ActionShowElem]:
		footer = append(footer, bot.Button{Text: c.T(msgs.ButtonGoBack), Data: c.Token(ActionShowElem, id)})
	}

	if !withChoices {
		var kb bot.Keyboard
		for _, b := range footer {
			kb = append(kb, []bot.Button{b})
		}
		return bot.NewResponse(text.String(), kb), nil
	}

	choices, err := f.ChoiceList(ctx)
	if err != nil {
		return nil, fmt.Errorf("load choices of %s: %w", f.Name, err)
	}
	items := make([]pagination.Item, 0, len(choices))
	for _, ch := range choices {
		if ch.Value == "" {
			continue
		}
		items = append(items, pagination.Item{Text: c.T(ch.Label), Value: ch.Value})
	}
	var selected []string
	if v, ok := step.Data[f.Name]; ok {
		selected = v.Items()
	}

	grid := &pagination.ButtonPagination{
		Items:    items,
		Selected: selected,
		Rows:     c.vs.cfg.ChoiceRows,
		Columns:  c.vs.cfg.ChoiceColumns,
		ValueToken: func(v string) string {
			return c.fieldToken(a, id, f.Name, v)
		},
		PageToken: func(p int) string {
			return c.fieldToken(a, id, f.Name, form.PageToken(p))
		},
		Footer: footer,
	}
	page := step.Page
	if page == form.DefaultPage {
		page = grid.DefaultPage()
	}
	return bot.NewResponse(text.String(), grid.Build(page)), nil
}

func (c *Controller) renderElem(ctx context.Context, rec *Record, prefix string) (*bot.Response, error) {
	lines, err := c.fieldLines(ctx, rec)
	if err != nil {
		return nil, err
	}
	text := prefix + fmt.Sprintf("%s #%s \n", c.T(c.vs.cfg.Name), rec.ID) + lines
	return bot.NewResponse(text, c.elemButtons(rec.ID)), nil
}

func (c *Controller) renderList(ctx context.Context, recs []Record, window pagination.Page) (*bot.Response, error) {
	name := c.T(c.vs.cfg.Name)

	var text strings.Builder
	var kb bot.Keyboard
	var row []bot.Button
	for i := range recs {
		rec := &recs[i]
		n := window.Start + i + 1
		lines, err := c.fieldLines(ctx, rec)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&text, "%d. %s #%s\n%s\n", n, name, rec.ID, lines)
		row = append(row, bot.Button{
			Text: fmt.Sprintf("%d. %s #%s", n, name, rec.ID),
			Data: c.Token(ActionShowElem, rec.ID),
		})
		if len(row) == c.vs.cfg.ListColumns {
			kb = append(kb, row)
			row = nil
		}
	}
	if len(row) > 0 {
		kb = append(kb, row)
	}

	if nav := window.NavRow(func(p int) string {
		return c.Token(ActionShowList, fmt.Sprint(p))
	}); len(nav) > 0 {
		kb = append(kb, nav)
	}
	return bot.NewResponse(text.String(), kb), nil
}

func (c *Controller) fieldLines(ctx context.Context, rec *Record) (string, error) {
	var b strings.Builder
	for _, f := range c.vs.form.Visible() {
		v, err := c.display(ctx, f, rec.Values[f.Name])
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%s: %s\n", c.T(f.Label), v)
	}
	return b.String(), nil
}

// display renders a stored value, mapping choice values to their labels.
func (c *Controller) display(ctx context.Context, f form.Field, v cursor.Value) (string, error) {
	if v.IsEmpty() {
		return "", nil
	}
	if !f.HasChoices() {
		return v.String(), nil
	}
	choices, err := f.ChoiceList(ctx)
	if err != nil {
		return "", fmt.Errorf("load choices of %s: %w", f.Name, err)
	}
	items := v.Items()
	labels := make([]string, 0, len(items))
	for _, item := range items {
		labels = append(labels, c.T(form.ChoiceLabel(choices, item)))
	}
	return strings.Join(labels, ", "), nil
}

func (c *Controller) elemButtons(id string) bot.Keyboard {
	msgs := c.vs.messages
	var kb bot.Keyboard

	if c.vs.enabled[ActionChange] {
		names := c.vs.cfg.UpdatingFields
		if len(names) == 0 {
			for _, f := range c.vs.form.Fields {
				names = append(names, f.Name)
			}
		}
		var row []bot.Button
		for _, name := range names {
			f, ok := c.vs.form.Field(name)
			if !ok || f.IsHidden() {
				continue
			}
			if len(row) == updateButtonsPerRow {
				kb = append(kb, row)
				row = nil
			}
			row = append(row, bot.Button{
				Text: c.T(msgs.ButtonUpdate, c.T(f.Label)),
				Data: c.Token(ActionChange, id, f.Name),
			})
		}
		if len(row) > 0 {
			kb = append(kb, row)
		}
	}

	if c.vs.enabled[ActionDelete] {
		kb = append(kb, []bot.Button{{Text: c.T(msgs.ButtonDelete, id), Data: c.Token(ActionDelete, id)}})
	}
	if c.vs.enabled[ActionShowList] {
		kb = append(kb, []bot.Button{{Text: c.T(msgs.ButtonList), Data: c.Token(ActionShowList)}})
	}
	return kb
}
