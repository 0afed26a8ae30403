package viewset

import (
	"context"
	"errors"

	"viewset-bot/pkg/bot"
)

var ErrPermissionDenied = errors.New("permission denied")

// Permission decides whether actor may run action with the decoded args.
type Permission interface {
	Allow(ctx context.Context, actor bot.Actor, action Action, args []string) bool
}

type PermissionFunc func(ctx context.Context, actor bot.Actor, action Action, args []string) bool

func (f PermissionFunc) Allow(ctx context.Context, actor bot.Actor, action Action, args []string) bool {
	return f(ctx, actor, action, args)
}

var AllowAny = PermissionFunc(func(context.Context, bot.Actor, Action, []string) bool { return true })

// StaffOnly allows only staff participants.
var StaffOnly = PermissionFunc(func(_ context.Context, actor bot.Actor, _ Action, _ []string) bool {
	return actor.IsStaff
})

// checkPermissions runs every permission in order and stops at the first
// denial.
func checkPermissions(ctx context.Context, perms []Permission, actor bot.Actor, action Action, args []string) error {
	for _, p := range perms {
		if !p.Allow(ctx, actor, action, args) {
			return ErrPermissionDenied
		}
	}
	return nil
}
