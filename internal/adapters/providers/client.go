// Package providers holds one client per third-party anime API. Each client
// performs the transport call and normalizes its provider's success/failure
// envelope: success:false or an empty payload surfaces as ports.ErrNotFound,
// transport and decode failures as ports.ErrUpstream.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/animemax/animemax-server/internal/ports"
)

const defaultTimeout = 15 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultTimeout}
}

func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ports.ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ports.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ports.ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: status %d from %s", ports.ErrUpstream, resp.StatusCode, url)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", ports.ErrUpstream, err)
	}
	return nil
}

// successEnvelope is the {success, data} wrapper HiAnime and ToonStream use.
type successEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func (e successEnvelope) payload() (json.RawMessage, error) {
	if !e.Success || len(e.Data) == 0 {
		return nil, ports.ErrNotFound
	}
	return e.Data, nil
}
