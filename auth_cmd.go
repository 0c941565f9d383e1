package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/jko/gdrive-go/internal/drive"
)

func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authorize access to Google Drive",
		Long: `Run the OAuth2 browser flow and save the resulting token.

Requires an installed-app client secret JSON file from the Google Cloud
console. Its default location is client_secret.json in the config directory;
override with --client-secret or the auth.client_secret config key.`,
		Args: cobra.NoArgs,
		RunE: runLogin,
	}

	cmd.Flags().String("client-secret", "", "path to the client secret JSON file")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the saved Google Drive token",
		Args:  cobra.NoArgs,
		RunE:  runLogout,
	}
}

func runLogin(cmd *cobra.Command, _ []string) error {
	logger := buildLogger()

	clientSecret, _ := cmd.Flags().GetString("client-secret")
	if clientSecret == "" {
		clientSecret = loadedCfg.Auth.ClientSecret
	}

	_, err := drive.Login(cmd.Context(), clientSecret, loadedCfg.Auth.TokenFile, openBrowser, logger)
	if err != nil {
		return err
	}

	statusf(flagQuiet, "Logged in. Token saved to %s\n", loadedCfg.Auth.TokenFile)

	return nil
}

func runLogout(_ *cobra.Command, _ []string) error {
	logger := buildLogger()

	if err := drive.Logout(loadedCfg.Auth.TokenFile, logger); err != nil {
		return err
	}

	statusf(flagQuiet, "Logged out.\n")

	return nil
}

// driveClient loads the saved token and returns a ready Drive client.
func driveClient(ctx context.Context) (*drive.Client, *slog.Logger, error) {
	logger := buildLogger()

	ts, err := drive.TokenSourceFromPath(ctx, loadedCfg.Auth.ClientSecret, loadedCfg.Auth.TokenFile, logger)
	if err != nil {
		if errors.Is(err, drive.ErrNotLoggedIn) {
			return nil, nil, fmt.Errorf("not logged in: run 'gdrive-go login' first")
		}

		return nil, nil, err
	}

	return drive.NewClient(drive.DefaultBaseURL, defaultHTTPClient(), ts, logger), logger, nil
}

// openBrowser launches the platform's URL opener.
func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
