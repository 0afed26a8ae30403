package form

import (
	"context"
	"fmt"

	"viewset-bot/pkg/cursor"
)

type Mode int

const (
	ModeCreate Mode = iota
	ModeChange
)

type Outcome int

const (
	// OutcomePrompt asks for Field, with choice buttons when it has any.
	OutcomePrompt Outcome = iota
	// OutcomeAskText asks the participant to type the value of Field.
	OutcomeAskText
	// OutcomeInvalid re-asks Field and carries the validation errors.
	OutcomeInvalid
	// OutcomeComplete means Data is valid and nothing is left to collect.
	OutcomeComplete
)

// DefaultPage selects the choice page holding the current selection.
const DefaultPage = -1

// Step is the wizard's decision for one turn.
type Step struct {
	Outcome Outcome
	Field   Field
	Data    map[string]cursor.Value
	Errors  []string
	Page    int

	// Repeat is set when the same field is shown again after a change,
	// as multi-select fields do until the advance signal.
	Repeat bool
}

// Wizard drives field-by-field collection for one form.
type Wizard struct {
	Form      *Form
	Validator Validator
}

func NewWizard(f *Form, v Validator) *Wizard {
	return &Wizard{Form: f, Validator: v}
}

// Advance applies sig to the named field of data and decides what to ask
// next. An empty field name starts the flow from data as given. data is
// never mutated; Step.Data is the snapshot to persist.
func (w *Wizard) Advance(ctx context.Context, mode Mode, data map[string]cursor.Value, fieldName string, sig Signal) (Step, error) {
	prev := clone(data)
	next := clone(data)

	if fieldName == "" {
		return w.check(ctx, mode, prev, next, Field{}, false)
	}

	field, ok := w.Form.Field(fieldName)
	if !ok {
		return Step{}, fmt.Errorf("%w: %q in %s", ErrUnknownField, fieldName, w.Form.Name)
	}

	switch sig.Kind {
	case SignalNone:
		return Step{Outcome: OutcomePrompt, Field: field, Data: prev, Page: DefaultPage}, nil

	case SignalPage:
		return Step{Outcome: OutcomePrompt, Field: field, Data: prev, Page: sig.Page}, nil

	case SignalWriteText:
		return Step{Outcome: OutcomeAskText, Field: field, Data: prev, Page: DefaultPage}, nil

	case SignalNull:
		next[field.Name] = cursor.Null()
		return w.check(ctx, mode, prev, next, field, false)

	case SignalAdvance:
		if !field.IsMulti() {
			return Step{Outcome: OutcomePrompt, Field: field, Data: prev, Page: DefaultPage}, nil
		}
		if _, ok := next[field.Name]; !ok {
			next[field.Name] = cursor.RefList(nil)
		}
		return w.check(ctx, mode, prev, next, field, false)
	}

	if field.IsMulti() {
		var stored []string
		if v, ok := next[field.Name]; ok {
			stored = v.Items()
		}
		next[field.Name] = cursor.RefList(Reconcile(stored, cursor.SplitList(sig.Value)))
		return w.check(ctx, mode, prev, next, field, true)
	}

	v, err := cursor.Parse(field.Kind, sig.Value)
	if err != nil {
		return Step{Outcome: OutcomeInvalid, Field: field, Data: prev, Errors: []string{err.Error()}, Page: DefaultPage}, nil
	}
	next[field.Name] = v
	return w.check(ctx, mode, prev, next, field, false)
}

func (w *Wizard) check(ctx context.Context, mode Mode, prev, next map[string]cursor.Value, field Field, repeat bool) (Step, error) {
	res, err := w.Validator.Validate(ctx, w.Form, next)
	if err != nil {
		return Step{}, fmt.Errorf("validate %s: %w", w.Form.Name, err)
	}

	if field.Name != "" {
		if errs := res.Errors[field.Name]; len(errs) > 0 {
			return Step{Outcome: OutcomeInvalid, Field: field, Data: prev, Errors: errs, Page: DefaultPage}, nil
		}
		if repeat {
			return Step{Outcome: OutcomePrompt, Field: field, Data: next, Page: DefaultPage, Repeat: true}, nil
		}
	}

	if mode == ModeCreate && res.Next != "" {
		nf, _ := w.Form.Field(res.Next)
		return Step{Outcome: OutcomePrompt, Field: nf, Data: next, Page: DefaultPage}, nil
	}

	if !res.OK() {
		for _, f := range w.Form.Fields {
			if errs := res.Errors[f.Name]; len(errs) > 0 {
				return Step{Outcome: OutcomeInvalid, Field: f, Data: next, Errors: errs, Page: DefaultPage}, nil
			}
		}
	}
	return Step{Outcome: OutcomeComplete, Data: next, Page: DefaultPage}, nil
}

func clone(data map[string]cursor.Value) map[string]cursor.Value {
	out := make(map[string]cursor.Value, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
