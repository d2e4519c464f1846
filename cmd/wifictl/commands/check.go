package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/benvon/wifi-api/internal/handlers"
	"github.com/benvon/wifi-api/internal/models"
	"github.com/spf13/cobra"
)

// NewCheckCmd creates the check command
func NewCheckCmd() *cobra.Command {
	var (
		baseURL string
		origin  string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Probe a running WiFi API",
		Long:  "Call / and /healthz on a running server and, with --origin, verify the CORS response for that origin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := &http.Client{Timeout: timeout}
			return runCheck(cmd.OutOrStdout(), client, strings.TrimRight(baseURL, "/"), origin)
		},
	}
	cmd.Flags().StringVar(&baseURL, "url", "http://localhost:8000", "Base URL of the server")
	cmd.Flags().StringVar(&origin, "origin", "", "Origin to send; the check fails unless it is allowed")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Per-request timeout")
	return cmd
}

func runCheck(out io.Writer, client *http.Client, baseURL, origin string) error {
	fmt.Fprintf(out, "Checking %s\n", baseURL)

	var status models.StatusMessage
	resp, err := getJSON(client, baseURL+"/", origin, &status)
	if err != nil {
		return fmt.Errorf("status endpoint: %w", err)
	}
	if status.Message != handlers.StatusMessageText {
		return fmt.Errorf("status endpoint: unexpected message %q", status.Message)
	}
	fmt.Fprintf(out, "✓ %s\n", status.Message)

	if origin != "" {
		if got := resp.Header.Get("Access-Control-Allow-Origin"); got != origin {
			return fmt.Errorf("origin %s is not allowed (Access-Control-Allow-Origin: %q)", origin, got)
		}
		fmt.Fprintf(out, "✓ Origin %s allowed (credentials: %s)\n", origin, resp.Header.Get("Access-Control-Allow-Credentials"))
	}

	var health models.HealthResponse
	if _, err := getJSON(client, baseURL+"/healthz", "", &health); err != nil {
		return fmt.Errorf("health endpoint: %w", err)
	}
	if health.Status != "healthy" {
		return fmt.Errorf("health endpoint: status %q", health.Status)
	}
	fmt.Fprintln(out, "✓ Healthy")
	return nil
}

func getJSON(client *http.Client, url, origin string, target any) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("returned status: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return resp, nil
}
