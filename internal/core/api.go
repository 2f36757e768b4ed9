// Package core implements the ModHaven API operations and wire models.
// The public surface is re-exported by the root modhaven package.
package core

import (
	"fmt"
	"strings"

	"github.com/modhaven/modhaven-go/client"
)

const (
	// DefaultBaseURL is the main ModHaven instance.
	DefaultBaseURL = "https://modhaven.io"

	// StagingBaseURL is the staging instance. Packages published there are
	// periodically wiped, which makes it the place to test upload flows.
	StagingBaseURL = "https://staging.modhaven.io"
)

// API executes typed operations against a ModHaven instance.
type API struct {
	baseURL string
	http    *client.Client
}

// New creates an API bound to the given base URL.
// If baseURL is empty, DefaultBaseURL is used.
// If c is nil, client.DefaultClient() is used.
func New(baseURL string, c *client.Client) *API {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if c == nil {
		c = client.DefaultClient()
	}
	return &API{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    c,
	}
}

// BaseURL returns the instance URL this API talks to.
func (a *API) BaseURL() string {
	return a.baseURL
}

// URLs returns a builder for the instance's public site URLs within the
// given community.
func (a *API) URLs(community string) client.URLBuilder {
	return &SiteURLs{BaseURL: a.baseURL, Community: community}
}

func (a *API) experimentalURL(tail string) string {
	return fmt.Sprintf("%s/api/experimental/%s/", a.baseURL, tail)
}

func (a *API) v1URL(community, tail string) string {
	return fmt.Sprintf("%s/c/%s/api/v1/%s/", a.baseURL, community, tail)
}

func (a *API) usermediaURL(tail string) string {
	return fmt.Sprintf("%s/api/experimental/usermedia/%s/", a.baseURL, tail)
}
