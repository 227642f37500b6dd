package auth

import "context"

type contextKey string

const (
	userIDKey    contextKey = "user_id"
	userEmailKey contextKey = "email"
	userRoleKey  contextKey = "role"
	tokenKey     contextKey = "access_token"
)

// SetUserContext stores the authenticated identity (called by middleware).
func SetUserContext(ctx context.Context, id, email, role, token string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, id)
	ctx = context.WithValue(ctx, userEmailKey, email)
	ctx = context.WithValue(ctx, userRoleKey, role)
	ctx = context.WithValue(ctx, tokenKey, token)
	return ctx
}

func UserIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

func UserEmailFrom(ctx context.Context) string {
	email, _ := ctx.Value(userEmailKey).(string)
	return email
}

func UserRoleFrom(ctx context.Context) string {
	role, _ := ctx.Value(userRoleKey).(string)
	return role
}

func IsAdmin(ctx context.Context) bool {
	return UserRoleFrom(ctx) == RoleAdmin
}

// TokenFrom returns the raw session token so outbound API calls can forward it.
func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}
