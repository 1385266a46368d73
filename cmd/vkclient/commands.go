package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jrsteele09/go-vk-client/internal/callback"
	"github.com/jrsteele09/go-vk-client/response"
	"github.com/jrsteele09/go-vk-client/uri"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "vkclient",
		Short:        "Authorize against VK and call API methods",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "TOML config file; VK_* environment variables override it")

	root.AddCommand(
		newAuthURICmd(a),
		newLoginCmd(a),
		newAuthorizeCmd(a),
		newCallCmd(a),
		newWhoamiCmd(a),
	)
	return root
}

func newAuthURICmd(a *app) *cobra.Command {
	var redirectURI, state string
	cmd := &cobra.Command{
		Use:   "auth-uri",
		Short: "Print the authorization link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if redirectURI == "" {
				redirectURI = a.cfg.GetRedirectURI()
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.client.AuthURIWithState(redirectURI, state))
			return nil
		},
	}
	cmd.Flags().StringVar(&redirectURI, "redirect-uri", "", "redirect target, defaults to VK_REDIRECT_URI")
	cmd.Flags().StringVar(&state, "state", "", "opaque value echoed back by VK")
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var (
		listen    string
		noBrowser bool
		timeout   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authorize through the browser using a loopback redirect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			displayAppname(a.cfg.GetAppName())
			if a.client.Authenticated(cmd.Context()) {
				fmt.Fprintln(cmd.OutOrStdout(), "Already authorized.")
				return nil
			}

			state := callback.NewState()
			receiver := callback.NewReceiver(state, a.client,
				callback.WithLogger(log.Logger),
				callback.WithForwardOrigins(a.cfg.GetForwardURL(), a.cfg.GetRedirectURI()))
			if err := receiver.Start(listen); err != nil {
				return err
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := receiver.Stop(ctx); err != nil {
					log.Warn().Err(err).Msg("callback server shutdown")
				}
			}()

			authURI := a.client.AuthURIWithState(receiver.RedirectURI(), state)
			fmt.Fprintln(cmd.OutOrStdout(), "Open this link to authorize:")
			fmt.Fprintln(cmd.OutOrStdout(), authURI)
			if !noBrowser {
				if err := callback.OpenBrowser(authURI); err != nil {
					log.Warn().Err(err).Msg("could not open a browser")
				}
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			if _, err := receiver.Wait(ctx); err != nil {
				return err
			}
			return printSession(cmd, a)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "127.0.0.1:8976", "loopback address for the redirect")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "only print the link")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "how long to wait for the redirect")
	return cmd
}

func newAuthorizeCmd(a *app) *cobra.Command {
	var redirectURI string
	cmd := &cobra.Command{
		Use:   "authorize <code>",
		Short: "Exchange an authorization code for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if redirectURI != "" {
				a.client.SetRedirectURI(redirectURI)
			}
			if !a.client.Authorize(cmd.Context(), args[0]) {
				return errors.Errorf("authorization failed: %s", a.client.ErrorMessage())
			}
			return printSession(cmd, a)
		},
	}
	cmd.Flags().StringVar(&redirectURI, "redirect-uri", "", "redirect target used in the authorization link")
	return cmd
}

func newCallCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "call <method> [key=value ...]",
		Short: "Call an API method, e.g. users.get or UsersGet",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(args[1:])
			if err != nil {
				return err
			}
			payload, err := a.client.Invoke(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}
			if msg := a.client.ErrorMessage(); msg != "" {
				log.Warn().Str("warning", msg).Msg("call succeeded with a warning")
			}
			return printPayload(cmd, payload)
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printSession(cmd, a)
		},
	}
}

// parseParams turns key=value arguments into query parameters, keeping order.
func parseParams(args []string) (uri.Params, error) {
	params := uri.Params{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, errors.Errorf("parameter %q is not key=value", arg)
		}
		params = params.Set(key, value)
	}
	return params, nil
}

func printPayload(cmd *cobra.Command, payload response.Payload) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, payload.Raw(), "", "  "); err != nil {
		return errors.Wrap(err, "[printPayload] indent")
	}
	fmt.Fprintln(cmd.OutOrStdout(), buf.String())
	return nil
}

func printSession(cmd *cobra.Command, a *app) error {
	session, err := a.client.Session(cmd.Context())
	if err != nil {
		return err
	}
	if !session.Authenticated() {
		fmt.Fprintln(cmd.OutOrStdout(), "Not authorized. Run vkclient login.")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Session:  %s\n", a.client.SessionKey())
	if userID, ok := a.client.UserID(cmd.Context()); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "User ID:  %d\n", userID)
	}
	if email := session.Email; email != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Email:    %s\n", email)
	}
	if expiresIn, ok := a.client.ExpiresIn(cmd.Context()); ok {
		if expiresIn == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Expires:  never (offline)")
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Expires:  %s after authorization\n", time.Duration(expiresIn)*time.Second)
		}
	}
	return nil
}
