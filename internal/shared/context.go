package shared

import "context"

// Actor identifies the authenticated caller of a request. It is carried
// explicitly through context rather than read from ambient request state.
type Actor struct {
	UserID    int64
	CompanyID int64
	Email     string
}

// Authenticated reports whether the actor refers to a real user.
func (a Actor) Authenticated() bool {
	return a.UserID > 0
}

type actorContextKey struct{}

// ContextWithActor stores the actor in context.
func ContextWithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext extracts the actor from context. The zero Actor is
// returned for unauthenticated requests.
func ActorFromContext(ctx context.Context) Actor {
	actor, _ := ctx.Value(actorContextKey{}).(Actor)
	return actor
}
