package main

import (
	"fmt"

	"github.com/example/taskify/tasklist"
	"github.com/spf13/cobra"
)

func newRegisterCmd(app *App) *cobra.Command {
	var reg tasklist.Registration

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg.ConfirmPassword = reg.Password
			if err := tasklist.Register(cmd.Context(), app.client, app.Server, reg); err != nil {
				return fmt.Errorf("registering: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s\n", reg.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&reg.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&reg.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&reg.Password, "password", "", "Password")
	cmd.Flags().BoolVar(&reg.AcceptTerms, "accept-terms", false, "Accept the terms of service")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and print an access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := tasklist.Login(cmd.Context(), app.client, app.Server, email, password)
			if err != nil {
				return fmt.Errorf("signing in: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tokens.AccessToken)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
