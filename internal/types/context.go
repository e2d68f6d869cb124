package types

import (
	"context"
)

type ContextKey string

const (
	CtxRequestID    ContextKey = "ctx_request_id"
	CtxActorID      ContextKey = "ctx_actor_id"
	CtxActorRole    ContextKey = "ctx_actor_role"
	CtxSessionToken ContextKey = "ctx_session_token"
)

// ActorRole identifies who is driving the console session.
type ActorRole string

const (
	ActorRoleAdmin  ActorRole = "admin"
	ActorRoleVendor ActorRole = "vendor"
)

func GetRequestID(ctx context.Context) string {
	return getString(ctx, CtxRequestID)
}

func GetActorID(ctx context.Context) string {
	return getString(ctx, CtxActorID)
}

func GetActorRole(ctx context.Context) ActorRole {
	if v, ok := ctx.Value(CtxActorRole).(ActorRole); ok {
		return v
	}
	return ""
}

func GetSessionToken(ctx context.Context) string {
	return getString(ctx, CtxSessionToken)
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, CtxRequestID, requestID)
}

func WithActor(ctx context.Context, actorID string, role ActorRole) context.Context {
	ctx = context.WithValue(ctx, CtxActorID, actorID)
	return context.WithValue(ctx, CtxActorRole, role)
}

func WithSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, CtxSessionToken, token)
}

// IsModerator reports whether the context actor may perform moderation
// actions. Vendors manage only their own listings.
func IsModerator(ctx context.Context) bool {
	return GetActorRole(ctx) == ActorRoleAdmin
}

func getString(ctx context.Context, key ContextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
