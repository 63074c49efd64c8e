package scraping

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"football-golden-scraper/internal/models"
	"football-golden-scraper/internal/transport"
)

// eventsResponse mirrors the upstream season events listing before
// filtering: an "events" array of fixture summaries.
type eventsResponse struct {
	Events []models.EventSummary `json:"events"`
}

// EventsLister lists a season's fixtures and filters them down to the
// ones the upstream marks completed, preserving upstream order.
type EventsLister struct {
	Fetcher             transport.Fetcher
	URLTemplate         string
	CompletedStatusCode int
}

// ListCompletedEvents fetches the season's event list and returns only the
// entries whose status code matches CompletedStatusCode.
func (l *EventsLister) ListCompletedEvents(ctx context.Context, tournamentID models.TournamentID, seasonID models.SeasonID) ([]models.EventSummary, error) {
	url := l.buildURL(tournamentID, seasonID)

	raw, err := l.Fetcher.FetchJSON(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("listing events for tournament %d season %d: %w", tournamentID, seasonID, err)
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: re-marshaling events response: %v", models.ErrDecode, err)
	}
	var resp eventsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: decoding events response: %v", models.ErrDecode, err)
	}

	completed := make([]models.EventSummary, 0, len(resp.Events))
	for _, e := range resp.Events {
		if e.Status.Code == l.CompletedStatusCode {
			completed = append(completed, e)
		}
	}
	return completed, nil
}

func (l *EventsLister) buildURL(tournamentID models.TournamentID, seasonID models.SeasonID) string {
	url := l.URLTemplate
	url = strings.ReplaceAll(url, "{tournamentID}", strconv.FormatInt(int64(tournamentID), 10))
	url = strings.ReplaceAll(url, "{seasonID}", strconv.FormatInt(int64(seasonID), 10))
	return url
}
