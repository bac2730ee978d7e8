package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"consultbr_backend/internal/client"

	"github.com/spf13/cobra"
)

const defaultAPI = "http://localhost:5000"

// App - общее состояние команд consultctl
type App struct {
	In  io.Reader
	Out io.Writer

	api         string
	sessionPath string
	cookieName  string
	session     *Session
}

func NewApp(in io.Reader, out io.Writer) *App {
	return &App{In: in, Out: out}
}

// NewRootCommand собирает дерево команд consultctl
func NewRootCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "consultctl",
		Short:         "Command line client for the ConsultBR marketplace",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.loadSession()
		},
	}

	cmd.PersistentFlags().StringVar(&app.api, "api", envOr("CONSULTCTL_API", ""), "Base URL of the ConsultBR server")
	cmd.PersistentFlags().StringVar(&app.sessionPath, "session-file", envOr("CONSULTCTL_SESSION", DefaultSessionPath()), "Where the session token is stored")
	cmd.PersistentFlags().StringVar(&app.cookieName, "cookie-name", "connect.sid", "Session cookie name configured on the server")

	cmd.AddCommand(
		newLoginCommand(app),
		newWhoamiCommand(app),
		newOnboardCommand(app),
		newProjectsCommand(app),
		newProposalsCommand(app),
		newConversationsCommand(app),
		newMessagesCommand(app),
		newFavoritesCommand(app),
		newStatsCommand(app),
		newConsultantsCommand(app),
	)
	return cmd
}

// Execute - точка входа cmd/consultctl
func Execute(ctx context.Context) int {
	app := NewApp(os.Stdin, os.Stdout)
	if err := NewRootCommand(app).ExecuteContext(ctx); err != nil {
		if client.IsUnauthorized(err) {
			fmt.Fprintln(os.Stderr, "session expired or missing, run `consultctl login` first")
			return 2
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func (a *App) loadSession() error {
	s, err := LoadSession(a.sessionPath)
	if err != nil {
		return err
	}
	if a.api == "" {
		a.api = s.API
	}
	if a.api == "" {
		a.api = defaultAPI
	}
	a.session = s
	return nil
}

func (a *App) saveSession(token string) error {
	a.session = &Session{API: a.api, Token: token}
	return SaveSession(a.sessionPath, a.session)
}

// client - клиент с сохраненной сессией
func (a *App) client() (*client.Client, error) {
	opts := []client.Option{client.WithCookieName(a.cookieName)}
	if a.session != nil && a.session.Token != "" {
		opts = append(opts, client.WithSession(a.session.Token))
	}
	return client.New(a.api, opts...)
}

// authedClient - то же, но без сессии сразу отказ
func (a *App) authedClient() (*client.Client, error) {
	if a.session == nil || a.session.Token == "" {
		return nil, errNotLoggedIn
	}
	return a.client()
}

var errNotLoggedIn = errors.New("not logged in, run `consultctl login` first")

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
