package viewsets

import (
	"context"
	"fmt"

	"viewset-bot/internal/entity"
	"viewset-bot/internal/repository/specification"
	"viewset-bot/internal/repository/unitofwork"
	"viewset-bot/pkg/bot"
	"viewset-bot/pkg/cursor"
	"viewset-bot/pkg/form"
	"viewset-bot/pkg/viewset"
)

var orderStatuses = []form.Choice{
	{Value: entity.OrderStatusNew, Label: "New"},
	{Value: entity.OrderStatusPaid, Label: "Paid"},
	{Value: entity.OrderStatusShipped, Label: "Shipped"},
}

func productChoices(uowFactory unitofwork.RepositoryFactory) func(ctx context.Context) ([]form.Choice, error) {
	return func(ctx context.Context) ([]form.Choice, error) {
		products, err := uowFactory.NewUnitOfWork(ctx).ProductRepository().FindAll(ctx,
			specification.VisibleOnly{},
			specification.OrderBy{Field: "id"},
		)
		if err != nil {
			return nil, fmt.Errorf("load products: %w", err)
		}
		out := make([]form.Choice, 0, len(products))
		for _, p := range products {
			out = append(out, form.Choice{Value: formatID(p.Id), Label: p.Name})
		}
		return out, nil
	}
}

func OrderForm(uowFactory unitofwork.RepositoryFactory) *form.Form {
	return &form.Form{
		Name: "OrderForm",
		Fields: []form.Field{
			{Name: "info", Label: "Info", Kind: cursor.KindString, Prompt: true, Rules: "max=512"},
			{Name: "status", Label: "Status", Kind: cursor.KindString, Required: true, Strict: true, Choices: orderStatuses},
			{Name: "products", Label: "Products", Kind: cursor.KindRefList, Widget: form.WidgetMulti, Prompt: true, Strict: true, LoadChoices: productChoices(uowFactory)},
		},
	}
}

// OrderCollection lists the actor's own orders, or every order for staff.
// The first contextual filter, when set, is a product id the orders must
// include.
type OrderCollection struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewOrderCollection(uowFactory unitofwork.RepositoryFactory) *OrderCollection {
	return &OrderCollection{uowFactory: uowFactory}
}

func orderRecord(o *entity.Order) *viewset.Record {
	return &viewset.Record{
		ID: formatID(o.Id),
		Values: map[string]cursor.Value{
			"info":     cursor.String(o.Info),
			"status":   cursor.String(o.Status),
			"products": refList(o.ProductIds),
		},
	}
}

func (c *OrderCollection) scoped(scope viewset.Scope) []specification.Specification {
	var specs []specification.Specification
	if !scope.Actor.IsStaff {
		specs = append(specs, specification.ByParticipant{ParticipantID: scope.Actor.ID})
	}
	if product, ok := parseID(scope.Filter(0)); ok {
		specs = append(specs, specification.OrderHasProduct{ProductID: product})
	}
	return specs
}

func (c *OrderCollection) find(ctx context.Context, scope viewset.Scope, id string) (*entity.Order, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	specs := append(c.scoped(scope), specification.ByID{ID: key})
	return c.uowFactory.NewUnitOfWork(ctx).OrderRepository().FindOne(ctx, specs...)
}

func (c *OrderCollection) Get(ctx context.Context, scope viewset.Scope, id string) (*viewset.Record, error) {
	o, err := c.find(ctx, scope, id)
	if err != nil || o == nil {
		return nil, err
	}
	return orderRecord(o), nil
}

func (c *OrderCollection) List(ctx context.Context, scope viewset.Scope, opts viewset.ListOptions) ([]viewset.Record, int, error) {
	repo := c.uowFactory.NewUnitOfWork(ctx).OrderRepository()
	specs := c.scoped(scope)
	total, err := repo.Count(ctx, specs...)
	if err != nil {
		return nil, 0, err
	}
	orders, err := repo.FindAll(ctx, append(specs, page(opts)...)...)
	if err != nil {
		return nil, 0, err
	}
	out := make([]viewset.Record, 0, len(orders))
	for _, o := range orders {
		out = append(out, *orderRecord(o))
	}
	return out, int(total), nil
}

func (c *OrderCollection) Create(ctx context.Context, scope viewset.Scope, values map[string]cursor.Value) (*viewset.Record, error) {
	o := &entity.Order{
		ParticipantId: scope.Actor.ID,
		Info:          textOf(values, "info"),
		Status:        textOf(values, "status"),
		ProductIds:    idsOf(values, "products"),
	}
	if o.Status == "" {
		o.Status = entity.OrderStatusNew
	}
	if err := c.uowFactory.NewUnitOfWork(ctx).OrderRepository().Create(ctx, o); err != nil {
		return nil, err
	}
	return orderRecord(o), nil
}

func (c *OrderCollection) Update(ctx context.Context, scope viewset.Scope, rec *viewset.Record, values map[string]cursor.Value) (*viewset.Record, error) {
	o, err := c.find(ctx, scope, rec.ID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("order %s disappeared", rec.ID)
	}
	o.Info = textOf(values, "info")
	o.Status = textOf(values, "status")
	o.ProductIds = idsOf(values, "products")
	if err := c.uowFactory.NewUnitOfWork(ctx).OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}
	return orderRecord(o), nil
}

func (c *OrderCollection) Delete(ctx context.Context, _ viewset.Scope, rec *viewset.Record) error {
	id, _ := parseID(rec.ID)
	return c.uowFactory.NewUnitOfWork(ctx).OrderRepository().Delete(ctx, id)
}

// orderInitial starts a new order as "new", with the filtered product
// already selected.
func orderInitial(_ context.Context, scope viewset.Scope) map[string]cursor.Value {
	values := map[string]cursor.Value{"status": cursor.String(entity.OrderStatusNew)}
	if product, ok := parseID(scope.Filter(0)); ok {
		values["products"] = refList([]uint{product})
	}
	return values
}

func NewOrderViewset(uowFactory unitofwork.RepositoryFactory, tr bot.Translator) *viewset.Viewset {
	return viewset.MustNew(viewset.Config{
		Name:          "Order",
		Form:          OrderForm(uowFactory),
		Collection:    NewOrderCollection(uowFactory),
		FilterCount:   1,
		Initial:       orderInitial,
		ChoiceColumns: 2,
		Translator:    tr,
	})
}
