package form

import (
	"context"
	"errors"
	"fmt"

	"viewset-bot/pkg/cursor"

	"github.com/go-playground/validator/v10"
)

const MessageRequired = "This field is required."

// Result is the outcome of validating a form's collected values.
type Result struct {
	// Errors holds messages per field name.
	Errors map[string][]string

	// Next is the next field to collect, empty when the data is complete.
	Next string
}

func (r Result) OK() bool { return len(r.Errors) == 0 }

func (r *Result) add(field, msg string) {
	if r.Errors == nil {
		r.Errors = map[string][]string{}
	}
	r.Errors[field] = append(r.Errors[field], msg)
}

// Validator checks the values collected for a form. Only present values are
// checked; absent fields are reported through Result.Next.
type Validator interface {
	Validate(ctx context.Context, f *Form, values map[string]cursor.Value) (Result, error)
}

// PlaygroundValidator applies each field's Rules tag with go-playground
// validator, and enforces required and strict choice fields.
type PlaygroundValidator struct {
	validate *validator.Validate
}

func NewPlaygroundValidator() *PlaygroundValidator {
	return &PlaygroundValidator{validate: validator.New()}
}

func (v *PlaygroundValidator) Validate(ctx context.Context, f *Form, values map[string]cursor.Value) (Result, error) {
	var res Result

	for _, field := range f.Fields {
		val, ok := values[field.Name]
		if !ok {
			continue
		}
		if val.IsEmpty() {
			if field.Required {
				res.add(field.Name, MessageRequired)
			}
			continue
		}

		if field.Strict && field.HasChoices() {
			choices, err := field.ChoiceList(ctx)
			if err != nil {
				return Result{}, fmt.Errorf("load choices of %s: %w", field.Name, err)
			}
			for _, item := range val.Items() {
				if !hasChoice(choices, item) {
					res.add(field.Name, fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", item))
				}
			}
		}

		if field.Rules == "" {
			continue
		}
		native, err := nativeValue(val)
		if err != nil {
			res.add(field.Name, "Enter a valid value.")
			continue
		}
		if err := v.validate.VarCtx(ctx, native, field.Rules); err != nil {
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				return Result{}, fmt.Errorf("validate %s: %w", field.Name, err)
			}
			for _, fe := range verrs {
				res.add(field.Name, ruleMessage(fe))
			}
		}
	}

	if next, ok := f.NextField(values); ok {
		res.Next = next.Name
	}
	return res, nil
}

func hasChoice(choices []Choice, value string) bool {
	for _, c := range choices {
		if c.Value == value {
			return true
		}
	}
	return false
}

func nativeValue(v cursor.Value) (interface{}, error) {
	switch v.Kind {
	case cursor.KindInt:
		return v.AsInt()
	case cursor.KindFloat:
		return v.AsFloat()
	case cursor.KindBool:
		return v.AsBool()
	case cursor.KindDate, cursor.KindDateTime:
		return v.AsTime()
	case cursor.KindRefList:
		return v.Items(), nil
	}
	return v.Text, nil
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MessageRequired
	case "max":
		return fmt.Sprintf("Ensure this value is at most %s.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this value is at least %s.", fe.Param())
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", fe.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "lt":
		return fmt.Sprintf("Ensure this value is less than %s.", fe.Param())
	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "email":
		return "Enter a valid email address."
	case "oneof":
		return fmt.Sprintf("Select one of: %s.", fe.Param())
	}
	return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
}
