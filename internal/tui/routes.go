package tui

type Route int

const (
	RouteLogin Route = iota
	RouteRegister
	RouteDashboard
)

func (r Route) String() string {
	switch r {
	case RouteLogin:
		return "login"
	case RouteRegister:
		return "register"
	case RouteDashboard:
		return "dashboard"
	}
	return "unknown"
}

// Protected reports whether the route needs a stored token.
func (r Route) Protected() bool {
	return r == RouteDashboard
}

type Pane int

const (
	PaneSearch Pane = iota
	PaneResults
	PaneHistory
	paneCount
)
