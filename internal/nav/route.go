// Package nav implements the navigation/selection kernel of §4.7: a
// small, non-empty stack of routes plus per-route selection state.
package nav

import "github.com/google/uuid"

// Kind identifies a route's page type.
type Kind string

const (
	Home     Kind = "home"
	Search   Kind = "search"
	Playlist Kind = "playlist"
	Album    Kind = "album"
	Artist   Kind = "artist"
	Show     Kind = "show"
	Error    Kind = "error"
	Help     Kind = "help"
)

// staticRoutes never carry a dynamic target id; their RouteID is the
// fixed string form of the Kind itself, matching the teacher's
// Panel/route-by-name style.
var staticRoutes = map[Kind]bool{
	Home:   true,
	Search: true,
	Error:  true,
	Help:   true,
}

// Route is one frame of the navigation stack.
type Route struct {
	Kind Kind
	// TargetID is the Spotify id of the playlist/album/artist/show this
	// route displays; empty for static routes.
	TargetID string
	// RouteID uniquely identifies this route for push-idempotence. For
	// static routes it equals string(Kind); for dynamic routes it's
	// derived from a uuid minted when the route was first opened so that
	// re-opening the same playlist from two different places still
	// collapses to one stack frame if pushed back-to-back.
	RouteID string
	// ErrorMessage carries the body text for an Error route.
	ErrorMessage string
}

// NewStaticRoute builds a route for one of the fixed pages (Home, Search,
// Error, Help).
func NewStaticRoute(kind Kind) Route {
	return Route{Kind: kind, RouteID: string(kind)}
}

// NewErrorRoute builds an Error route carrying an explanatory body.
func NewErrorRoute(message string) Route {
	return Route{Kind: Error, RouteID: string(Error), ErrorMessage: message}
}

// NewDynamicRoute builds a route for a specific playlist/album/artist/show.
// routeID should be stable across re-navigation to the same target within
// one process lifetime (derived from a uuid the first time the target is
// opened), so pushing the same target twice in a row is a no-op per push's
// idempotence rule.
func NewDynamicRoute(kind Kind, targetID string, routeID string) Route {
	if routeID == "" {
		routeID = uuid.NewString()
	}
	return Route{Kind: kind, TargetID: targetID, RouteID: routeID}
}
