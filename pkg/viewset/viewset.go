package viewset

import (
	"context"
	"fmt"

	"viewset-bot/pkg/bot"
	"viewset-bot/pkg/cursor"
	"viewset-bot/pkg/form"
	"viewset-bot/pkg/routing"
)

type Action string

const (
	ActionCreate   Action = "create"
	ActionChange   Action = "change"
	ActionDelete   Action = "delete"
	ActionShowElem Action = "show_elem"
	ActionShowList Action = "show_list"
)

// AllActions is the canonical action set in rendering order.
var AllActions = []Action{ActionCreate, ActionChange, ActionDelete, ActionShowElem, ActionShowList}

// Codes maps actions to their route codes.
type Codes map[Action]string

// DefaultCodes are the codes every viewset starts from.
var DefaultCodes = Codes{
	ActionCreate:   "cr",
	ActionChange:   "up",
	ActionDelete:   "de",
	ActionShowElem: "se",
	ActionShowList: "sl",
}

// MergeCodes layers overrides onto base, later layers winning per action.
func MergeCodes(base Codes, overrides ...Codes) Codes {
	out := make(Codes, len(base))
	for a, c := range base {
		out[a] = c
	}
	for _, o := range overrides {
		for a, c := range o {
			out[a] = c
		}
	}
	return out
}

// ActionFunc serves an action code. args are the decoded token arguments
// after the contextual filters.
type ActionFunc func(ctx context.Context, c *Controller, args []string) (*bot.Response, error)

// Config describes one viewset.
type Config struct {
	// Name is the display name of one record, e.g. "Category".
	Name       string
	Form       *form.Form
	Collection Collection

	// Actions enabled on this viewset; all five when empty.
	Actions []Action
	Codes   Codes
	Extra   map[string]ActionFunc

	Permissions []Permission

	FilterCount int
	Order       string
	// A list page shows PerPage rows of ListColumns record buttons.
	PerPage     int
	ListColumns int

	ChoiceRows    int
	ChoiceColumns int

	SkipDeleteConfirm bool

	// UpdatingFields limits the update buttons of show_elem.
	UpdatingFields []string

	// Prechoices offer suggested values for fields without choices.
	Prechoices map[string][]form.Choice

	// Initial seeds a fresh create flow.
	Initial func(ctx context.Context, scope Scope) map[string]cursor.Value

	CancelButton *bot.Button
	HideGoBack   bool

	Messages   Messages
	Validator  form.Validator
	Translator bot.Translator
}

// Viewset serves the five canonical actions over one collection.
type Viewset struct {
	cfg        Config
	form       *form.Form
	wizard     *form.Wizard
	codes      Codes
	enabled    map[Action]bool
	handlers   map[string]ActionFunc
	actionOf   map[string]Action
	messages   Messages
	translator bot.Translator
}

// New validates cfg and resolves the code to handler map once.
func New(cfg Config) (*Viewset, error) {
	if cfg.Form == nil {
		return nil, fmt.Errorf("viewset %q: form is required", cfg.Name)
	}
	if cfg.Collection == nil {
		return nil, fmt.Errorf("viewset %q: collection is required", cfg.Name)
	}
	if cfg.PerPage <= 0 {
		cfg.PerPage = 10
	}
	if cfg.ListColumns <= 0 {
		cfg.ListColumns = 1
	}
	if cfg.Validator == nil {
		cfg.Validator = form.NewPlaygroundValidator()
	}
	if cfg.Translator == nil {
		cfg.Translator = plainTranslator{}
	}
	actions := cfg.Actions
	if len(actions) == 0 {
		actions = AllActions
	}

	f := cfg.Form.WithChoices(cfg.Prechoices)
	v := &Viewset{
		cfg:        cfg,
		form:       f,
		wizard:     form.NewWizard(f, cfg.Validator),
		codes:      MergeCodes(DefaultCodes, cfg.Codes),
		enabled:    map[Action]bool{},
		handlers:   map[string]ActionFunc{},
		actionOf:   map[string]Action{},
		messages:   cfg.Messages.withDefaults(),
		translator: cfg.Translator,
	}

	builtin := map[Action]ActionFunc{
		ActionCreate: func(ctx context.Context, c *Controller, args []string) (*bot.Response, error) {
			return c.createArgs(ctx, args)
		},
		ActionChange: func(ctx context.Context, c *Controller, args []string) (*bot.Response, error) {
			return c.changeArgs(ctx, args)
		},
		ActionDelete: func(ctx context.Context, c *Controller, args []string) (*bot.Response, error) {
			return c.deleteArgs(ctx, args)
		},
		ActionShowElem: func(ctx context.Context, c *Controller, args []string) (*bot.Response, error) {
			return c.showElemArgs(ctx, args)
		},
		ActionShowList: func(ctx context.Context, c *Controller, args []string) (*bot.Response, error) {
			return c.showListArgs(ctx, args)
		},
	}
	for _, a := range actions {
		fn, ok := builtin[a]
		if !ok {
			return nil, fmt.Errorf("viewset %q: unknown action %q", cfg.Name, a)
		}
		code := v.codes[a]
		if code == "" {
			return nil, fmt.Errorf("viewset %q: action %q has no code", cfg.Name, a)
		}
		if err := v.bind(code, a, fn); err != nil {
			return nil, err
		}
		v.enabled[a] = true
	}
	for code, fn := range cfg.Extra {
		if err := v.bind(code, Action(code), fn); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// MustNew is New for static wiring.
func MustNew(cfg Config) *Viewset {
	v, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return v
}

func (v *Viewset) bind(code string, a Action, fn ActionFunc) error {
	if code == "" {
		return fmt.Errorf("viewset %q: empty action code", v.cfg.Name)
	}
	if _, dup := v.handlers[code]; dup {
		return fmt.Errorf("viewset %q: code %q bound twice", v.cfg.Name, code)
	}
	v.handlers[code] = fn
	v.actionOf[code] = a
	return nil
}

func (v *Viewset) Name() string { return v.cfg.Name }

func (v *Viewset) Form() *form.Form { return v.form }

// Code returns the route code of an action, or "" when it is not enabled.
func (v *Viewset) Code(a Action) string {
	if !v.enabled[a] {
		return ""
	}
	return v.codes[a]
}

func (v *Viewset) Enabled(a Action) bool { return v.enabled[a] }

// Controller binds the viewset to a mount prefix and one request.
func (v *Viewset) Controller(prefix string, req *bot.Request) *Controller {
	return &Controller{
		vs:    v,
		codec: routing.Codec{Prefix: prefix, FilterCount: v.cfg.FilterCount},
		req:   req,
		scope: Scope{Actor: req.Actor},
	}
}

// Handle lets a viewset be mounted on a route table.
func (v *Viewset) Handle(ctx context.Context, req *bot.Request) (*bot.Response, error) {
	return v.Controller(req.Prefix, req).Dispatch(ctx)
}

type plainTranslator struct{}

func (plainTranslator) Sprintf(_ string, format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
