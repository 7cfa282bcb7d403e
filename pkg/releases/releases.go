// pkg/releases/releases.go - client for the GitHub release catalog.

package releases

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	goversion "github.com/hashicorp/go-version"
)

const defaultBaseURL = "https://api.github.com"

// Release is one entry in the remote release catalog.
type Release struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	Prerelease  bool      `json:"prerelease"`
	Draft       bool      `json:"draft"`
	PublishedAt time.Time `json:"published_at"`
}

// Version returns the release's version identifier without a leading "v".
func (r Release) Version() string {
	return Normalize(r.TagName)
}

// Client queries the release listing of a single GitHub repository.
type Client struct {
	BaseURL    string
	Owner      string
	Repo       string
	HTTPClient *http.Client
}

// NewClient creates a catalog client for owner/repo with the given timeout.
func NewClient(owner, repo string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		Owner:      owner,
		Repo:       repo,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Normalize strips the conventional "v" tag prefix from a version string.
func Normalize(tag string) string {
	return strings.TrimPrefix(strings.TrimSpace(tag), "v")
}

func (c *Client) get(path string, out interface{}) error {
	url := strings.TrimRight(c.BaseURL, "/") + path

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("preparing catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("querying release catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected HTTP status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding release catalog response: %w", err)
	}
	return nil
}

// Latest returns the version identifier of the newest published release.
func (c *Client) Latest() (string, error) {
	var rel Release
	path := fmt.Sprintf("/repos/%s/%s/releases/latest", c.Owner, c.Repo)
	if err := c.get(path, &rel); err != nil {
		return "", err
	}
	if rel.TagName == "" {
		return "", fmt.Errorf("release catalog returned an empty tag name")
	}
	return rel.Version(), nil
}

// List returns up to limit releases, newest version first. Draft releases
// are dropped. Tags that do not parse as versions sort after those that do,
// in reverse lexical order.
func (c *Client) List(limit int) ([]Release, error) {
	var all []Release
	path := fmt.Sprintf("/repos/%s/%s/releases?per_page=%d", c.Owner, c.Repo, limit)
	if err := c.get(path, &all); err != nil {
		return nil, err
	}

	published := make([]Release, 0, len(all))
	for _, rel := range all {
		if rel.Draft {
			continue
		}
		published = append(published, rel)
	}

	sort.SliceStable(published, func(i, j int) bool {
		vi, erri := goversion.NewVersion(published[i].Version())
		vj, errj := goversion.NewVersion(published[j].Version())
		switch {
		case erri == nil && errj == nil:
			return vi.GreaterThan(vj)
		case erri == nil:
			return true
		case errj == nil:
			return false
		default:
			return published[i].Version() > published[j].Version()
		}
	})

	return published, nil
}

// Previous returns the newest stable version older than the latest stable
// release, or an empty string when the catalog holds fewer than two stable
// releases.
func (c *Client) Previous() (string, error) {
	list, err := c.List(30)
	if err != nil {
		return "", err
	}

	stable := make([]Release, 0, len(list))
	for _, rel := range list {
		if !rel.Prerelease {
			stable = append(stable, rel)
		}
	}

	if len(stable) < 2 {
		return "", nil
	}
	return stable[1].Version(), nil
}
