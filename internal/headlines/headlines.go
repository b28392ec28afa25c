/*
Copyright 2024 Tim St. Pierre
Fetches sports headlines from the ESPN API
*/
package headlines

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	log "github.com/sirupsen/logrus"
)

const DefaultBaseURL = "http://api.espn.com/v1/sports"

type League struct {
	Name string
	Path string
}

// Leagues is the rotation shown by the ticker, in button order.
var Leagues = []League{
	{Name: "NFL", Path: "/football/nfl"},
	{Name: "NCAAF", Path: "/football/college-football"},
	{Name: "MLB", Path: "/baseball/mlb"},
	{Name: "NHL", Path: "/hockey/nhl"},
	{Name: "NBA", Path: "/basketball/nba"},
}

// Record is one headline of a league.
type Record struct {
	League   string
	Headline string
}

type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		APIKey:  apiKey,
		HTTP:    http.DefaultClient,
	}
}

type response struct {
	Headlines []struct {
		Headline string `json:"headline"`
	} `json:"headlines"`
}

// Fetch returns the current headlines of league, newest first.
func (c *Client) Fetch(ctx context.Context, league League) ([]Record, error) {
	if league.Path == "" {
		return nil, fmt.Errorf("headlines: unknown league %q", league.Name)
	}
	u := c.BaseURL + league.Path + "/news/headlines?apikey=" + url.QueryEscape(c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	log.Debugf("Fetching %s headlines", league.Name)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("headlines: %s: %w", league.Name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("headlines: %s: %s", league.Name, resp.Status)
	}
	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("headlines: %s: decode: %w", league.Name, err)
	}
	out := make([]Record, 0, len(body.Headlines))
	for _, h := range body.Headlines {
		out = append(out, Record{League: league.Name, Headline: h.Headline})
	}
	log.Infof("Fetched %d %s headlines", len(out), league.Name)
	return out, nil
}
