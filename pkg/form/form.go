package form

import (
	"context"
	"errors"

	"viewset-bot/pkg/cursor"
)

var ErrUnknownField = errors.New("unknown form field")

type Widget int

const (
	WidgetVisible Widget = iota
	WidgetHidden
	WidgetMulti
)

// Choice is one enumerable value of a field.
type Choice struct {
	Value string
	Label string
}

// Field describes one input of a form. The wizard reads descriptors and
// never mutates them.
type Field struct {
	Name     string
	Label    string
	HelpText string

	Required bool

	// Prompt makes the wizard ask for an optional field during create.
	Prompt bool

	Kind   cursor.Kind
	Widget Widget

	// Choices are offered as buttons. Without Strict they are suggestions
	// and the participant may still type a value.
	Choices     []Choice
	LoadChoices func(ctx context.Context) ([]Choice, error)
	Strict      bool

	// Rules is a validator tag applied to the parsed value, e.g. "max=128".
	Rules string
}

func (f Field) IsHidden() bool { return f.Widget == WidgetHidden }

func (f Field) IsMulti() bool { return f.Widget == WidgetMulti }

// ChoiceList returns the static choices, or loads them.
func (f Field) ChoiceList(ctx context.Context) ([]Choice, error) {
	if f.LoadChoices != nil {
		return f.LoadChoices(ctx)
	}
	return f.Choices, nil
}

// HasChoices reports whether the field is rendered with choice buttons.
func (f Field) HasChoices() bool {
	return len(f.Choices) > 0 || f.LoadChoices != nil
}

// ChoiceLabel maps a stored value to its display label.
func ChoiceLabel(choices []Choice, value string) string {
	for _, c := range choices {
		if c.Value == value {
			return c.Label
		}
	}
	return value
}

// Form is an ordered list of fields identified by name.
type Form struct {
	Name   string
	Fields []Field
}

func (f *Form) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Visible returns the non-hidden fields in declaration order.
func (f *Form) Visible() []Field {
	out := make([]Field, 0, len(f.Fields))
	for _, field := range f.Fields {
		if !field.IsHidden() {
			out = append(out, field)
		}
	}
	return out
}

// NextField returns the first field, in declaration order, that is visible,
// absent from data and either required or flagged for prompting.
func (f *Form) NextField(data map[string]cursor.Value) (Field, bool) {
	for _, field := range f.Fields {
		if field.IsHidden() {
			continue
		}
		if _, ok := data[field.Name]; ok {
			continue
		}
		if field.Required || field.Prompt {
			return field, true
		}
	}
	return Field{}, false
}

// WithChoices returns a copy of the form where the named fields get the
// given choices as non-strict suggestions.
func (f *Form) WithChoices(prechoices map[string][]Choice) *Form {
	out := &Form{Name: f.Name, Fields: make([]Field, len(f.Fields))}
	copy(out.Fields, f.Fields)
	for i, field := range out.Fields {
		if choices, ok := prechoices[field.Name]; ok && !field.HasChoices() {
			out.Fields[i].Choices = choices
		}
	}
	return out
}
