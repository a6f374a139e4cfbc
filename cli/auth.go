// ABOUTME: Interactive OAuth bootstrap command
// ABOUTME: Runs the one-time authorization-code exchange via a localhost callback
package cli

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os/exec"
	"runtime"

	"golang.org/x/oauth2"

	"github.com/harperreed/classwatch/classroom"
	"github.com/harperreed/classwatch/config"
)

// AuthCommand runs the interactive OAuth flow and persists the resulting
// token. Only needed once; afterwards the daemon refreshes silently.
func AuthCommand(cfg *config.Config) error {
	ctx := context.Background()

	redirect, err := url.Parse(cfg.Google.RedirectURL)
	if err != nil {
		return fmt.Errorf("invalid redirect URL %q: %w", cfg.Google.RedirectURL, err)
	}

	callbackChan := make(chan string)
	errChan := make(chan error)

	mux := http.NewServeMux()
	mux.HandleFunc(redirect.Path, func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			errChan <- fmt.Errorf("no authorization code received")
			return
		}
		_, _ = fmt.Fprintf(w, "Authorization successful! You can close this window.")
		callbackChan <- code
	})

	server := &http.Server{Addr: ":" + redirect.Port(), Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	authURL := classroom.AuthURL(cfg)

	fmt.Println("Opening browser for Google OAuth...")
	fmt.Printf("\nIf browser doesn't open, visit this URL:\n%s\n\n", authURL)

	_ = openBrowser(authURL)

	select {
	case code := <-callbackChan:
		_ = server.Shutdown(ctx)

		token, err := classroom.Exchange(ctx, cfg, classroom.TokenPath(), code)
		if err != nil {
			return err
		}

		fmt.Printf("\n✓ Authenticated successfully\n")
		fmt.Printf("✓ Tokens saved to %s\n\n", classroom.TokenPath())
		if token.RefreshToken == "" {
			fmt.Println("Warning: no refresh token received; revoke the app's access and re-run auth to get one.")
		}
		fmt.Println("Ready to watch! Run 'classwatch run' to start the daemon.")

		return nil

	case err := <-errChan:
		_ = server.Shutdown(ctx)
		return fmt.Errorf("OAuth flow failed: %w", err)
	}
}

// authorize builds the refreshed token source used by run and check.
func authorize(ctx context.Context, cfg *config.Config) (oauth2.TokenSource, error) {
	ts, err := classroom.Authorize(ctx, cfg, classroom.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("authorization failed: %w", err)
	}
	return ts, nil
}

// openBrowser attempts to open URL in the default browser.
func openBrowser(url string) error {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{url}
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start", url}
	default:
		cmd = "xdg-open"
		args = []string{url}
	}

	command := exec.Command(cmd, args...)
	return command.Start()
}
