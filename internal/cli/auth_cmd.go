package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"consultbr_backend/internal/auth"
	"consultbr_backend/internal/services/dto"
	"consultbr_backend/internal/wizard"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
)

func newLoginCommand(app *App) *cobra.Command {
	var (
		token     string
		devSecret string
		subject   string
		email     string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Exchange an identity provider token for a session",
		Long: "Without flags prints the browser login URL. With --token exchanges the\n" +
			"provider token for a session. With --dev-secret signs a token locally,\n" +
			"which only works against a server sharing that identity secret.",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.client()
			if err != nil {
				return err
			}

			if token == "" && devSecret != "" {
				if subject == "" {
					return errors.New("--sub is required with --dev-secret")
				}
				token, err = auth.SignIdentity(devSecret, auth.IdentityClaims{
					Email:         email,
					EmailVerified: email != "",
					RegisteredClaims: jwt.RegisteredClaims{
						Subject:   subject,
						IssuedAt:  jwt.NewNumericDate(time.Now()),
						ExpiresAt: jwt.NewNumericDate(time.Now().Add(5 * time.Minute)),
					},
				})
				if err != nil {
					return fmt.Errorf("sign dev identity: %w", err)
				}
			}

			if token == "" {
				fmt.Fprintf(app.Out, "Open %s in a browser, then run `consultctl login --token <token>`\n", c.LoginURL())
				return nil
			}

			session, err := c.Login(ctxOf(cmd), token)
			if err != nil {
				return err
			}
			if err := app.saveSession(session); err != nil {
				return err
			}
			fmt.Fprintln(app.Out, "Logged in.")
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Identity token issued by the provider")
	cmd.Flags().StringVar(&devSecret, "dev-secret", "", "Sign an identity token locally with this secret")
	cmd.Flags().StringVar(&subject, "sub", "", "User id for --dev-secret")
	cmd.Flags().StringVar(&email, "email", "", "Email for --dev-secret")
	return cmd
}

func newWhoamiCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current user and profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.authedClient()
			if err != nil {
				return err
			}
			user, err := c.CurrentUser(ctxOf(cmd))
			if err != nil {
				return err
			}

			role := "-"
			if user.Role != nil {
				role = string(*user.Role)
			}
			fmt.Fprintf(app.Out, "id:     %s\n", user.ID)
			fmt.Fprintf(app.Out, "name:   %s\n", user.DisplayName())
			fmt.Fprintf(app.Out, "role:   %s\n", role)
			fmt.Fprintf(app.Out, "status: %s\n", user.Status)
			if user.Profile == nil {
				fmt.Fprintln(app.Out, "profile: none, run `consultctl onboard entrepreneur|consultant`")
			}
			return nil
		},
	}
}

func newOnboardCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Create your entrepreneur or consultant profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "entrepreneur",
		Short: "Interactive entrepreneur onboarding",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.authedClient()
			if err != nil {
				return err
			}
			w := wizard.NewEntrepreneurOnboarding(func(ctx context.Context, req *dto.CreateEntrepreneurProfileRequest) error {
				_, err := c.CreateEntrepreneurProfile(ctx, req)
				return err
			})
			if err := RunWizard(ctxOf(cmd), w, app.In, app.Out); err != nil {
				return err
			}
			fmt.Fprintln(app.Out, "Perfil criado com sucesso!")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "consultant",
		Short: "Interactive consultant onboarding",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.authedClient()
			if err != nil {
				return err
			}
			w := wizard.NewConsultantOnboarding(func(ctx context.Context, req *dto.CreateConsultantProfileRequest) error {
				_, err := c.CreateConsultantProfile(ctx, req)
				return err
			})
			if err := RunWizard(ctxOf(cmd), w, app.In, app.Out); err != nil {
				return err
			}
			fmt.Fprintln(app.Out, "Perfil criado com sucesso!")
			return nil
		},
	})
	return cmd
}
