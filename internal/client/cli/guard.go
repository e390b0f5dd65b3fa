package cli

import (
	"fmt"

	"github.com/dmitrijs2005/estatekeeper/internal/client/session"
)

// routeGuard is the single subscriber on session state. It switches the
// active command group when the signed-in state and the group disagree,
// and stays quiet while the session is still loading so the splash is
// never interrupted by a premature redirect.
type routeGuard struct {
	app *App
}

func newRouteGuard(a *App) *routeGuard {
	return &routeGuard{app: a}
}

func (g *routeGuard) onState(s session.State) {
	if s.Loading {
		return
	}
	current := g.app.Group()
	switch {
	case !s.SignedIn && current != GroupAuth:
		g.app.setGroup(GroupAuth)
		fmt.Fprintln(g.app.out, "You are signed out. Use 'login' or 'register' to continue.")
	case s.SignedIn && current != GroupMain:
		g.app.setGroup(GroupMain)
		fmt.Fprintln(g.app.out, "Signed in. Type 'help' to see the available commands.")
	}
}
