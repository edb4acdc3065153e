package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/dnafinder/internal/api"
	"github.com/altinukshini/dnafinder/internal/config"
	"github.com/altinukshini/dnafinder/internal/export"
	"github.com/altinukshini/dnafinder/internal/logger"
	"github.com/altinukshini/dnafinder/internal/model"
	"github.com/altinukshini/dnafinder/internal/ops"
	"github.com/altinukshini/dnafinder/internal/session"
	"github.com/altinukshini/dnafinder/internal/tui/authform"
	"github.com/altinukshini/dnafinder/internal/tui/confirm"
	"github.com/altinukshini/dnafinder/internal/tui/historylist"
	"github.com/altinukshini/dnafinder/internal/tui/infoview"
	"github.com/altinukshini/dnafinder/internal/tui/resultsview"
	"github.com/altinukshini/dnafinder/internal/tui/searchform"
	"github.com/altinukshini/dnafinder/internal/ui"
	"github.com/altinukshini/dnafinder/internal/validation"
)

type App struct {
	cfg config.Config
	env ops.Env
	log logger.Logger

	// Views
	authForm      authform.Model
	searchForm    searchform.Model
	resultsView   resultsview.Model
	historyList   historylist.Model
	infoView      infoview.Model
	confirmDialog confirm.Model

	// State
	route       Route
	focusedPane Pane
	width       int
	height      int
	status      string
	statusErr   bool
	showHelp    bool

	infoFullScreen bool

	initCmd tea.Cmd
}

func NewApp(cfg config.Config, env ops.Env, log logger.Logger) App {
	a := App{
		cfg:         cfg,
		env:         env,
		log:         log,
		searchForm:  searchform.New(cfg.Algorithm),
		resultsView: resultsview.New(),
		historyList: historylist.New(),
		infoView:    infoview.New(),
	}

	last, err := env.Store.LastResult()
	if err != nil {
		log.Warn("load last result", "err", err)
	} else if last != nil {
		a.resultsView.SetResult(last)
	}

	a.initCmd = a.navigate(RouteDashboard)
	return a
}

func (a App) Init() tea.Cmd {
	return a.initCmd
}

func (a App) Route() Route { return a.route }

// guard redirects protected routes to login while no token is stored.
func (a App) guard(r Route) Route {
	if r.Protected() && !a.env.Store.Authenticated() {
		return RouteLogin
	}
	return r
}

func (a *App) navigate(r Route) tea.Cmd {
	r = a.guard(r)
	a.route = r
	a.showHelp = false
	a.infoFullScreen = false
	a.log.Debug("navigate", "route", r.String())

	switch r {
	case RouteLogin, RouteRegister:
		mode := authform.ModeLogin
		if r == RouteRegister {
			mode = authform.ModeRegister
		}
		a.authForm = authform.New(mode)
		a.propagateSize()
		return a.authForm.Init()
	}

	a.focusedPane = PaneSearch
	a.propagateSize()
	return tea.Batch(a.applyFocus(), a.fetchHistory())
}

// expire sends the user back to login after the backend rejected the token.
func (a *App) expire() tea.Cmd {
	if !a.route.Protected() {
		return nil
	}
	a.setStatus("Session expired, please log in again", true)
	return a.navigate(RouteLogin)
}

func (a *App) setStatus(text string, isErr bool) {
	a.status = text
	a.statusErr = isErr
}

// --- Commands ---

func (a *App) fetchHistory() tea.Cmd {
	tick := a.historyList.Loading()
	env, limit := a.env, a.cfg.HistoryLimit
	return tea.Batch(tick, func() tea.Msg {
		entries, err := ops.RecentHistory(context.Background(), env, limit)
		return ui.HistoryLoadedMsg{Entries: entries, Err: err}
	})
}

func (a App) doLogin(creds model.Credentials) tea.Cmd {
	env := a.env
	return func() tea.Msg {
		err := ops.Login(context.Background(), env, creds)
		return ui.LoginDoneMsg{Email: creds.Email, Err: err}
	}
}

func (a App) doRegister(creds model.Credentials) tea.Cmd {
	env := a.env
	return func() tea.Msg {
		err := ops.Register(context.Background(), env, creds)
		return ui.RegisterDoneMsg{Email: creds.Email, Err: err}
	}
}

func (a App) doLogout() tea.Cmd {
	env := a.env
	return func() tea.Msg {
		return ui.LogoutDoneMsg{Err: ops.Logout(env)}
	}
}

func (a App) doSearch(in validation.SearchInput) tea.Cmd {
	env, mode := a.env, a.cfg.SearchMode
	return func() tea.Msg {
		result, err := ops.RunSearch(context.Background(), env, in, mode)
		return ui.SearchDoneMsg{Result: result, Err: err}
	}
}

func (a App) doExport(r model.SearchResult) tea.Cmd {
	dir := a.cfg.ExportDir
	return func() tea.Msg {
		path, err := export.WriteFile(dir, r)
		return ui.ExportDoneMsg{Path: path, Err: err}
	}
}

// --- Update ---

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.propagateSize()
		return &a, nil

	case ui.SessionChangedMsg:
		switch msg.Kind {
		case session.EventExpired:
			return &a, a.expire()
		case session.EventLogout:
			if a.route.Protected() {
				return &a, a.navigate(RouteLogin)
			}
		}
		return &a, nil

	case confirm.ResultMsg:
		if msg.Confirmed && msg.Action == confirm.ActionLogout {
			a.setStatus("Logging out...", false)
			return &a, a.doLogout()
		}
		return &a, nil

	case authform.SubmitMsg:
		if msg.Mode == authform.ModeRegister {
			return &a, a.doRegister(msg.Creds)
		}
		return &a, a.doLogin(msg.Creds)

	case authform.SwitchMsg:
		if msg.To == authform.ModeRegister {
			return &a, a.navigate(RouteRegister)
		}
		return &a, a.navigate(RouteLogin)

	case ui.LoginDoneMsg:
		if msg.Err != nil {
			a.log.Info("login failed", "email", msg.Email, "err", msg.Err)
			a.authForm.SetError(ops.Describe(msg.Err, ops.FallbackLogin))
			return &a, nil
		}
		a.setStatus("Logged in as "+msg.Email, false)
		return &a, a.navigate(RouteDashboard)

	case ui.RegisterDoneMsg:
		if msg.Err != nil {
			a.log.Info("register failed", "email", msg.Email, "err", msg.Err)
			a.authForm.SetError(ops.Describe(msg.Err, ops.FallbackRegister))
			return &a, nil
		}
		cmd := a.navigate(RouteLogin)
		a.authForm.SetEmail(msg.Email)
		a.authForm.SetNotice("Registration complete, please log in")
		return &a, cmd

	case ui.LogoutDoneMsg:
		if msg.Err != nil {
			a.log.Error("logout", "err", msg.Err)
			a.setStatus("Logout failed: "+msg.Err.Error(), true)
			return &a, nil
		}
		a.setStatus("Logged out", false)
		return &a, a.navigate(RouteLogin)

	case searchform.SubmitMsg:
		return &a, tea.Batch(a.searchForm.Searching(), a.doSearch(msg.Input))

	case ui.SearchDoneMsg:
		if msg.Result == nil {
			a.searchForm.Done(ops.Describe(msg.Err, ops.FallbackSearch), false)
			if errors.Is(msg.Err, api.ErrUnauthorized) {
				return &a, a.expire()
			}
			return &a, nil
		}
		if msg.Err != nil {
			a.log.Warn("search finished with error", "err", msg.Err)
		}
		a.resultsView.SetResult(msg.Result)
		a.searchForm.Done(fmt.Sprintf("Search completed: %d matches", msg.Result.MatchCount), true)
		a.focusedPane = PaneResults
		return &a, a.applyFocus()

	case ui.HistoryLoadedMsg:
		var cmd tea.Cmd
		a.historyList, cmd = a.historyList.Update(msg)
		if msg.Err != nil {
			a.log.Error("load history", "err", msg.Err)
			if errors.Is(msg.Err, api.ErrUnauthorized) {
				return &a, tea.Batch(cmd, a.expire())
			}
		}
		return &a, cmd

	case ui.ExportDoneMsg:
		if msg.Err != nil {
			a.log.Error("export results", "err", msg.Err)
			a.setStatus("Export failed: "+msg.Err.Error(), true)
		} else {
			a.setStatus("Exported to "+msg.Path, false)
		}
		return &a, nil

	case ui.StatusMsg:
		a.setStatus(msg.Text, false)
		return &a, nil

	case spinner.TickMsg:
		var c1, c2 tea.Cmd
		a.searchForm, c1 = a.searchForm.Update(msg)
		a.historyList, c2 = a.historyList.Update(msg)
		return &a, tea.Batch(c1, c2)

	case searchform.PreviewLoadedMsg:
		var cmd tea.Cmd
		a.searchForm, cmd = a.searchForm.Update(msg)
		return &a, cmd

	case tea.KeyMsg:
		return &a, a.handleKey(msg)
	}

	// Anything else (cursor blinks) goes to the active form.
	var cmd tea.Cmd
	if a.route.Protected() {
		a.searchForm, cmd = a.searchForm.Update(msg)
	} else {
		a.authForm, cmd = a.authForm.Update(msg)
	}
	return &a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, ui.Keys.ForceQuit) {
		return tea.Quit
	}

	if a.confirmDialog.IsActive() {
		var cmd tea.Cmd
		a.confirmDialog, cmd = a.confirmDialog.Update(msg)
		return cmd
	}

	if a.showHelp {
		a.showHelp = false
		return nil
	}

	if !a.route.Protected() {
		var cmd tea.Cmd
		a.authForm, cmd = a.authForm.Update(msg)
		return cmd
	}

	if a.infoFullScreen {
		if key.Matches(msg, ui.Keys.Back) {
			a.infoFullScreen = false
			return nil
		}
		var cmd tea.Cmd
		a.infoView, cmd = a.infoView.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, ui.Keys.Tab):
		a.focusedPane = (a.focusedPane + 1) % paneCount
		return a.applyFocus()
	case key.Matches(msg, ui.Keys.ShiftTab):
		a.focusedPane = (a.focusedPane + paneCount - 1) % paneCount
		return a.applyFocus()
	}

	if a.focusedPane == PaneSearch {
		if key.Matches(msg, ui.Keys.Back) {
			a.focusedPane = PaneResults
			return a.applyFocus()
		}
		var cmd tea.Cmd
		a.searchForm, cmd = a.searchForm.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, ui.Keys.Quit):
		return tea.Quit
	case key.Matches(msg, ui.Keys.Help):
		a.showHelp = true
		return nil
	case key.Matches(msg, ui.Keys.Logout):
		a.confirmDialog = confirm.New("Log out",
			"End the session for "+a.env.Store.Session().Email+"?", confirm.ActionLogout)
		return nil
	case key.Matches(msg, ui.Keys.Back):
		a.focusedPane = PaneSearch
		return a.applyFocus()
	}

	var cmd tea.Cmd
	switch a.focusedPane {
	case PaneResults:
		if key.Matches(msg, ui.Keys.Export) {
			r := a.resultsView.Result()
			if r == nil {
				a.setStatus("Nothing to export yet", true)
				return nil
			}
			return a.doExport(*r)
		}
		a.resultsView, cmd = a.resultsView.Update(msg)
	case PaneHistory:
		if key.Matches(msg, ui.Keys.Refresh) {
			return a.fetchHistory()
		}
		if key.Matches(msg, ui.Keys.Enter) {
			if e := a.historyList.SelectedEntry(); e != nil {
				entry := *e
				a.infoView.SetEntry(&entry)
				a.infoFullScreen = true
			}
			return nil
		}
		a.historyList, cmd = a.historyList.Update(msg)
	}
	return cmd
}

// applyFocus moves input focus to the focused pane.
func (a *App) applyFocus() tea.Cmd {
	a.searchForm.Blur()
	a.resultsView.Blur()
	switch a.focusedPane {
	case PaneSearch:
		return a.searchForm.Focus()
	case PaneResults:
		a.resultsView.Focus()
	}
	return nil
}

// --- Layout ---

// layout returns the inner sizes of the dashboard panes.
func (a App) layout() (leftW, rightW, searchH, historyH, contentH int) {
	// header(1) + status(1) of chrome, plus 2 lines of border per pane.
	contentH = a.height - 4
	if contentH < 1 {
		contentH = 1
	}
	leftW = a.width * 45 / 100
	rightW = a.width - leftW - 4
	if rightW < 1 {
		rightW = 1
	}
	searchH = 16
	if searchH > contentH/2+4 {
		searchH = contentH/2 + 4
	}
	historyH = contentH - searchH - 2
	if historyH < 1 {
		historyH = 1
	}
	return leftW, rightW, searchH, historyH, contentH
}

func (a *App) propagateSize() {
	if a.width == 0 {
		return
	}
	leftW, rightW, searchH, historyH, contentH := a.layout()

	a.authForm, _ = a.authForm.Update(tea.WindowSizeMsg{Width: min(a.width-4, 60), Height: contentH})
	a.searchForm, _ = a.searchForm.Update(tea.WindowSizeMsg{Width: leftW, Height: searchH})
	a.historyList, _ = a.historyList.Update(tea.WindowSizeMsg{Width: leftW, Height: historyH})
	a.resultsView, _ = a.resultsView.Update(tea.WindowSizeMsg{Width: rightW, Height: contentH})
	a.infoView, _ = a.infoView.Update(tea.WindowSizeMsg{Width: a.width - 4, Height: contentH})
}

func (a App) View() string {
	header := RenderHeader(a.cfg.APIURL, a.env.Store.Session().Email, a.width)

	var content string
	switch {
	case a.showHelp:
		content = a.renderHelp()
	case a.confirmDialog.IsActive():
		content = lipgloss.Place(a.width, a.height-2, lipgloss.Center, lipgloss.Center, a.confirmDialog.View())
	case a.route.Protected() && a.infoFullScreen:
		_, _, _, _, contentH := a.layout()
		content = ui.StylePaneFocused.Width(a.width - 2).Height(contentH).Render(a.infoView.View())
	case a.route.Protected():
		content = a.renderDashboard()
	default:
		box := ui.StylePaneFocused.Render(a.authForm.View())
		content = lipgloss.Place(a.width, a.height-2, lipgloss.Center, lipgloss.Center, box)
	}

	statusBar := RenderStatusBar(a.status, a.statusErr, a.contextHints(), a.width)

	// Hard clamp so the status bar always stays on screen.
	maxContentLines := a.height - 2
	if maxContentLines > 0 {
		lines := strings.Split(content, "\n")
		if len(lines) > maxContentLines {
			content = strings.Join(lines[:maxContentLines], "\n")
		}
	}

	return header + "\n" + content + "\n" + statusBar
}

func (a App) paneStyle(p Pane) lipgloss.Style {
	if a.focusedPane == p {
		return ui.StylePaneFocused
	}
	return ui.StylePane
}

func (a App) renderDashboard() string {
	leftW, rightW, searchH, historyH, contentH := a.layout()

	search := a.paneStyle(PaneSearch).Width(leftW).Height(searchH).Render(a.searchForm.View())
	history := a.paneStyle(PaneHistory).Width(leftW).Height(historyH).Render(a.historyList.View())
	results := a.paneStyle(PaneResults).Width(rightW).Height(contentH + 2).Render(a.resultsView.View())

	left := lipgloss.JoinVertical(lipgloss.Left, search, history)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, results)
}

func (a App) contextHints() string {
	if a.confirmDialog.IsActive() {
		return "y:yes  n:no  tab:toggle"
	}
	if a.showHelp {
		return "any key:close"
	}
	switch a.route {
	case RouteLogin:
		return "enter:log in  ctrl+r:register  ctrl+c:quit"
	case RouteRegister:
		return "enter:register  ctrl+l:log in  ctrl+c:quit"
	}
	if a.infoFullScreen {
		return "j/k:scroll  PgUp/PgDn:page  esc:back"
	}
	switch a.focusedPane {
	case PaneSearch:
		return "enter:search  ctrl+t:algorithm  tab:pane  esc:leave form"
	case PaneResults:
		return "e:export  j/k:scroll  L:log out  tab:pane  ?:help  q:quit"
	case PaneHistory:
		return "enter:details  r:refresh  j/k:navigate  L:log out  tab:pane  ?:help  q:quit"
	}
	return "?:help  q:quit"
}

func (a App) renderHelp() string {
	bold := lipgloss.NewStyle().Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(ui.ColorPrimary).Bold(true).Width(14)
	desc := lipgloss.NewStyle().Foreground(lipgloss.Color("#D1D5DB"))

	row := func(k, d string) string {
		return "  " + keyStyle.Render(k) + desc.Render(d) + "\n"
	}

	var b strings.Builder
	b.WriteString("\n" + bold.Render("  Navigation") + "\n\n")
	b.WriteString(row("tab", "Next pane"))
	b.WriteString(row("shift+tab", "Previous pane"))
	b.WriteString(row("esc", "Leave / return to the search form"))
	b.WriteString(row("L", "Log out"))
	b.WriteString(row("q / ctrl+c", "Quit"))

	b.WriteString("\n" + bold.Render("  Search") + "\n\n")
	b.WriteString(row("up / down", "Move between fields"))
	b.WriteString(row("ctrl+t", "Switch algorithm (KMP, Rabin-Karp)"))
	b.WriteString(row("enter", "Run search"))

	b.WriteString("\n" + bold.Render("  Results") + "\n\n")
	b.WriteString(row("j / k", "Scroll matches"))
	b.WriteString(row("e", "Export to "+export.FileName))

	b.WriteString("\n" + bold.Render("  History") + "\n\n")
	b.WriteString(row("r", "Reload recent searches"))
	b.WriteString(row("enter", "Show search details"))

	b.WriteString("\n" + ui.StyleMuted.Render("  Press any key to close") + "\n")

	_, _, _, _, contentH := a.layout()
	return ui.StylePaneFocused.Width(a.width - 2).Height(contentH).Render(b.String())
}
