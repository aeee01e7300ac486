// Package cli is the terminal front of CardCore: a small REPL for accounts,
// stacks, the study loop and the scribble pad. All study logic lives in
// internal/client/study; this package only renders and prompts.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cardcore/cardcore/internal/client/api"
	"github.com/cardcore/cardcore/internal/client/auth"
	"github.com/cardcore/cardcore/internal/client/config"
	"github.com/cardcore/cardcore/internal/client/models"
)

type App struct {
	config   *config.Config
	api      *api.Client
	identity *auth.Provider
	reader   *bufio.Reader
	out      io.Writer

	// stacks as last listed, so study/select commands can take an index
	lastStacks []*models.Stack
}

func NewApp(c *config.Config) *App {
	identity := auth.NewProvider()
	apiClient := api.NewClient(c.ServerEndpointAddr, c.APIKey, identity.Token)

	return &App{
		config:   c,
		api:      apiClient,
		identity: identity,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}
}

func (a *App) isLoggedIn() bool {
	return a.identity.LoggedIn()
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return ""
	}
	return fmt.Sprintf("(%s)", a.identity.Identity().Username)
}

func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to CardCore CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}
