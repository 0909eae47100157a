package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"journal/internal/app"
	"journal/internal/auth"
	"journal/internal/config"
	"journal/internal/printers"
	serviceAuth "journal/internal/service/auth"
)

func addLogin(topLevel *cobra.Command) {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and print an access token",
		Long: `Signs in with email and password against the authentication provider and
prints the access token to use as a bearer token with the API server.
The password is read from stdin when --password is not given.`,
		Example: `
journal login --email intern@example.com
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if cfg.SupabaseURL == "" || cfg.SupabaseAnonKey == "" {
				return errors.New("SUPABASE_URL and SUPABASE_ANON_KEY are required to sign in")
			}

			logger, closeLog := app.NewLogger(cfg, os.Stderr)
			defer closeLog()

			if !cmd.Flags().Changed("password") {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			printer := &printers.Pretty{Out: cmd.OutOrStdout()}
			signIn := serviceAuth.NewSignInService(auth.NewPasswordClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, logger), logger)
			session := serviceAuth.NewSessionService(signIn, logger)

			form := serviceAuth.NewLoginForm(session, printer)
			release := form.Start()
			defer release()

			form.SetEmail(email)
			form.SetPassword(password)
			if err := form.Submit(cmd.Context()); err != nil {
				return errors.New(form.State().Error)
			}

			printer.Credential(session.Credential())
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")

	topLevel.AddCommand(cmd)
}
