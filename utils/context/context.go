package context

import (
	"context"

	"github.com/cargomarket/backend/constant"
)

func GetUserID(ctx context.Context) (uint64, bool) {
	v := ctx.Value(constant.UserIDKey)
	if v == nil {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}

// GetTokenScope returns the scope of the token that authenticated the request.
// Missing scope is treated as no authentication.
func GetTokenScope(ctx context.Context) (string, bool) {
	v := ctx.Value(constant.TokenScopeKey)
	if v == nil {
		return "", false
	}
	scope, ok := v.(string)
	return scope, ok
}

func WithUserID(ctx context.Context, id uint64) context.Context {
	return context.WithValue(ctx, constant.UserIDKey, id)
}

func WithTokenScope(ctx context.Context, scope string) context.Context {
	return context.WithValue(ctx, constant.TokenScopeKey, scope)
}
