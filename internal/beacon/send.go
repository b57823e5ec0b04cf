package beacon

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
)

// Send issues a single GET to target and copies the response body to out.
// Transport errors are returned as-is; status codes are not checked.
func Send(ctx context.Context, client *http.Client, target string, out io.Writer, log zerolog.Logger) error {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("building beacon request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("sending beacon: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading beacon response: %w", err)
	}

	log.Debug().
		Str("target", target).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Msg("Beacon sent")

	if len(body) == 0 || body[len(body)-1] != '\n' {
		body = append(body, '\n')
	}
	if _, err := out.Write(body); err != nil {
		return fmt.Errorf("writing beacon response: %w", err)
	}
	return nil
}
