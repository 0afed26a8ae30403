package viewsets

import (
	"viewset-bot/internal/repository/unitofwork"
	"viewset-bot/pkg/bot"
	"viewset-bot/pkg/routing"
)

// Mount prefixes of the bundled viewsets.
const (
	CategoryPrefix = "cat/"
	ProductPrefix  = "prod/"
	OrderPrefix    = "ord/"
	ProfilePrefix  = "us/"
	MenuPrefix     = "menu/"
)

// Register mounts every bundled viewset on the table.
func Register(table *routing.Table, uowFactory unitofwork.RepositoryFactory, tr bot.Translator) error {
	mounts := []struct {
		prefix, name string
		handler      bot.Handler
	}{
		{CategoryPrefix, "category", NewCategoryViewset(uowFactory, tr)},
		{ProductPrefix, "product", NewProductViewset(uowFactory, tr)},
		{OrderPrefix, "order", NewOrderViewset(uowFactory, tr)},
		{ProfilePrefix, "profile", NewProfileViewset(uowFactory, tr)},
		{MenuPrefix, "menu", NewMenuElemViewset(uowFactory, tr)},
	}
	for _, m := range mounts {
		if err := table.Register(m.prefix, m.name, m.handler); err != nil {
			return err
		}
	}
	return nil
}
