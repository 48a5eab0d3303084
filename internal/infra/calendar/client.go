package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"eleva-booking/internal/infra"
	"eleva-booking/internal/pkg/config"
	"eleva-booking/internal/pkg/errs"
	"eleva-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type busyResponse struct {
	Intervals []struct {
		Start time.Time `json:"start"`
		End   time.Time `json:"end"`
	} `json:"intervals"`
}

// Client queries the calendar-sync service for an expert's busy
// intervals. All failures map to KindUpstreamUnavailable; the service
// being slow or down must never look like an empty calendar.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg config.CalendarConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) BusyIntervals(ctx context.Context, expertID uuid.UUID, from, to time.Time) ([]shared.BusyInterval, error) {
	endpoint := fmt.Sprintf("%s/experts/%s/busy?%s", c.baseURL, expertID, url.Values{
		"from": {from.UTC().Format(time.RFC3339)},
		"to":   {to.UTC().Format(time.RFC3339)},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindUpstreamUnavailable, "failed to build calendar request", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindUpstreamUnavailable, "calendar service unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, infra.WrapRepoErr(infra.KindUpstreamUnavailable, "calendar service error",
			errs.New(fmt.Sprintf("unexpected status %d", resp.StatusCode)))
	}

	var body busyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, infra.WrapRepoErr(infra.KindUpstreamUnavailable, "invalid calendar response", err)
	}

	result := make([]shared.BusyInterval, 0, len(body.Intervals))
	for _, iv := range body.Intervals {
		if !iv.End.After(iv.Start) {
			continue
		}
		result = append(result, shared.BusyInterval{Start: iv.Start.UTC(), End: iv.End.UTC()})
	}
	return result, nil
}

type disabled struct{}

func (disabled) BusyIntervals(context.Context, uuid.UUID, time.Time, time.Time) ([]shared.BusyInterval, error) {
	return nil, errs.ErrCalendarDisabled
}

// NewDisabled returns a provider for deployments without a calendar
// sync service. Availability then reflects meetings only and responses
// carry the degraded flag.
func NewDisabled() shared.CalendarProvider {
	return disabled{}
}
