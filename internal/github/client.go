// Package github is a best-effort client for the external repository-listing
// service. Anything other than a 200 from upstream reads as "no profile".
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"devconnect/internal/models"
)

// Repo is the subset of the upstream repository payload the client surfaces.
type Repo struct {
	Name        string `json:"name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
	Stargazers  int    `json:"stargazers_count"`
	Watchers    int    `json:"watchers_count"`
	Forks       int    `json:"forks_count"`
}

// Client talks to the GitHub REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a Client rooted at baseURL (the real API in production,
// an httptest server in tests).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Repos lists the user's five most recently created repositories.
func (c *Client) Repos(ctx context.Context, username string) ([]Repo, error) {
	url := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created:asc", c.baseURL, username)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	req.Header.Set("User-Agent", "devconnect-api")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, models.NewNotFoundError("Github profile")
	}

	var repos []Repo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, models.NewInternalError(err)
	}
	return repos, nil
}
