// Package cli is the interactive admin console: the presentation layer over
// the domain repositories and local stores.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/techboard/techboard/internal/api"
	"github.com/techboard/techboard/internal/auth"
	"github.com/techboard/techboard/internal/config"
	"github.com/techboard/techboard/internal/draft"
	"github.com/techboard/techboard/internal/query"
	"github.com/techboard/techboard/internal/repository"
	"github.com/techboard/techboard/internal/theme"
)

type App struct {
	cfg    *config.Config
	log    zerolog.Logger
	repos  *repository.Set
	auth   *auth.Store
	ui     *theme.Store
	drafts *draft.Store

	reader *bufio.Reader
	styles *Styles
}

func NewApp(cfg *config.Config, log zerolog.Logger, repos *repository.Set, authStore *auth.Store, uiStore *theme.Store, drafts *draft.Store) *App {
	return &App{
		cfg:    cfg,
		log:    log,
		repos:  repos,
		auth:   authStore,
		ui:     uiStore,
		drafts: drafts,
		reader: bufio.NewReader(os.Stdin),
		styles: StylesFor(theme.Theme(config.DefaultTheme)),
	}
}

// SetUI attaches the UI store once it is built with the app's theme applier.
func (a *App) SetUI(uiStore *theme.Store) {
	a.ui = uiStore
}

// ApplyTheme is wired into the UI store as its Applier, so the styles follow
// every toggle and the rehydrated theme lands before the first menu paints.
func (a *App) ApplyTheme(t theme.Theme) {
	a.styles = StylesFor(t)
}

func (a *App) Run(ctx context.Context) error {
	for {
		a.printMenu()
		choice, err := a.promptInt("Select an option")
		if err != nil {
			a.errorln(err.Error())
			continue
		}

		switch choice {
		case 1:
			a.browsePosts(ctx)
		case 2:
			a.searchPosts(ctx)
		case 3:
			a.browseCategories(ctx)
		case 4:
			a.browseTags(ctx)
		case 5:
			a.browseReviews(ctx)
		case 6:
			a.managePosts(ctx)
		case 7:
			a.manageReviews(ctx)
		case 8:
			a.session()
		case 9:
			next := a.ui.ToggleTheme()
			a.successln("Theme is now " + string(next))
		case 0:
			return nil
		default:
			a.errorln("Unknown option")
		}
	}
}

func (a *App) printMenu() {
	fmt.Println()
	fmt.Println(a.styles.Title.Render("techboard"))

	user, ok := a.auth.User()
	if ok {
		fmt.Println(a.styles.Muted.Render("signed in as " + user.Username + " (" + user.Role + ")"))
	} else {
		fmt.Println(a.styles.Muted.Render("not signed in"))
	}

	fmt.Println(a.styles.Item.Render(" 1) Posts"))
	fmt.Println(a.styles.Item.Render(" 2) Search posts"))
	fmt.Println(a.styles.Item.Render(" 3) Categories"))
	fmt.Println(a.styles.Item.Render(" 4) Tags"))
	fmt.Println(a.styles.Item.Render(" 5) Reviews"))
	fmt.Println(a.styles.Item.Render(" 6) Manage posts (admin)"))
	fmt.Println(a.styles.Item.Render(" 7) Manage reviews (admin)"))
	fmt.Println(a.styles.Item.Render(" 8) Sign in / out"))
	fmt.Println(a.styles.Item.Render(" 9) Toggle theme"))
	fmt.Println(a.styles.Item.Render(" 0) Quit"))
}

// requireAdmin gates the admin sections on the local session.
func (a *App) requireAdmin() bool {
	if a.auth.IsAuthenticated() {
		return true
	}
	a.errorln("Sign in first (option 8)")
	return false
}

func (a *App) prompt(label string) string {
	fmt.Print(a.styles.Header.Render(label + ": "))
	input, err := a.reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(input)
}

func (a *App) promptInt(label string) (int, error) {
	input := a.prompt(label)
	n, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("please enter a valid number")
	}
	return n, nil
}

// promptMultiline reads lines until a single "." line.
func (a *App) promptMultiline(label string) string {
	fmt.Println(a.styles.Header.Render(label + " (finish with a single '.' line):"))
	var b strings.Builder
	for {
		line, err := a.reader.ReadString('\n')
		if err != nil {
			break
		}
		if strings.TrimRight(line, "\r\n") == "." {
			break
		}
		b.WriteString(line)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) errorln(msg string) {
	fmt.Println(a.styles.Error.Render(msg))
}

func (a *App) successln(msg string) {
	fmt.Println(a.styles.Success.Render(msg))
}

func (a *App) noticeln(msg string) {
	fmt.Println(a.styles.Notice.Render(msg))
}

// reportError renders a failure with its category: API errors keep the server
// message, network errors suggest the user-triggered retry that is the only
// recovery path, guarded queries read as "nothing yet".
func (a *App) reportError(err error) {
	var apiErr *api.APIError
	var netErr *api.NetworkError

	switch {
	case errors.Is(err, query.ErrNotLoaded):
		a.noticeln("Nothing to load yet")
	case errors.As(err, &apiErr):
		a.errorln(fmt.Sprintf("Server error %d: %s", apiErr.Status, apiErr.Message))
	case errors.As(err, &netErr):
		a.errorln("No response from the server; try again")
	default:
		a.errorln(err.Error())
	}
}

func (a *App) session() {
	if a.auth.IsAuthenticated() {
		a.auth.Logout()
		a.successln("Signed out")
		return
	}

	username := a.prompt("Username")
	password := a.prompt("Password")
	if a.auth.Login(username, password) {
		a.successln("Signed in")
	} else {
		a.errorln("Invalid credentials")
	}
}
