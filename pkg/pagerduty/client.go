// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package pagerduty

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/kubehealth/kubehealth/pkg/constants"
)

// Client talks to the PagerDuty REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client for the given API token.
func NewClient(token string) *Client {
	return &Client{
		baseURL: constants.PagerDutyAPIURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: constants.PagerDutyTimeout,
		},
	}
}

// NewClientWithURL creates a client against a non-standard endpoint.
func NewClientWithURL(token string, baseURL string) *Client {
	client := NewClient(token)
	client.baseURL = strings.TrimSuffix(baseURL, "/")
	return client
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint = endpoint + "?" + params.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", fmt.Sprintf("Token token=%s", c.token))
	request.Header.Set("User-Agent", constants.PagerDutyUserAgent)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(response.Body, 512))
		return fmt.Errorf("request to %s returned status %d: %s", path, response.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(response.Body).Decode(out)
}

// TestConnection verifies the token by fetching the account it
// belongs to.
func (c *Client) TestConnection(ctx context.Context) (*User, error) {
	var decoded userResponse
	if err := c.get(ctx, "/users/me", nil, &decoded); err != nil {
		return nil, fmt.Errorf("error connecting to PagerDuty: %w", err)
	}
	log.Infof("Connected to PagerDuty as %s (%s)", decoded.User.Name, decoded.User.Email)
	return &decoded.User, nil
}

// ListServices lists the services visible to the token.
func (c *Client) ListServices(ctx context.Context, limit int) ([]Service, error) {
	if limit <= 0 {
		limit = constants.IncidentPageLimit
	}
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Add("include[]", "integrations")
	params.Add("include[]", "escalation_policies")

	var decoded servicesResponse
	if err := c.get(ctx, "/services", params, &decoded); err != nil {
		return nil, fmt.Errorf("error listing PagerDuty services: %w", err)
	}
	log.Infof("Found %d services in PagerDuty", len(decoded.Services))
	return decoded.Services, nil
}

// ListIncidents lists incidents matching the query.
func (c *Client) ListIncidents(ctx context.Context, query IncidentQuery) ([]Incident, error) {
	since := query.Since
	if since.IsZero() {
		since = time.Now().UTC().Add(-constants.IncidentLookback)
	}
	until := query.Until
	if until.IsZero() {
		until = time.Now().UTC()
	}
	statuses := query.Statuses
	if len(statuses) == 0 {
		statuses = []string{constants.IncidentTriggered, constants.IncidentAcknowledged, constants.IncidentResolved}
	}
	limit := query.Limit
	if limit <= 0 {
		limit = constants.IncidentPageLimit
	}

	params := url.Values{}
	params.Set("since", since.UTC().Format(time.RFC3339))
	params.Set("until", until.UTC().Format(time.RFC3339))
	params.Set("limit", strconv.Itoa(limit))
	for _, status := range statuses {
		params.Add("statuses[]", status)
	}
	for _, include := range []string{"services", "assignments", "acknowledgers", "teams"} {
		params.Add("include[]", include)
	}
	for _, serviceID := range query.ServiceIDs {
		params.Add("service_ids[]", serviceID)
	}

	var decoded incidentsResponse
	if err := c.get(ctx, "/incidents", params, &decoded); err != nil {
		return nil, fmt.Errorf("error listing PagerDuty incidents: %w", err)
	}
	log.Infof("Found %d incidents", len(decoded.Incidents))
	return decoded.Incidents, nil
}

// RecentIncidents lists every incident of the trailing window,
// whatever its status.
func (c *Client) RecentIncidents(ctx context.Context, window time.Duration) ([]Incident, error) {
	if window <= 0 {
		window = constants.IncidentLookback
	}
	return c.ListIncidents(ctx, IncidentQuery{Since: time.Now().UTC().Add(-window)})
}

// ActiveIncidents lists incidents that still need attention.
func (c *Client) ActiveIncidents(ctx context.Context) ([]Incident, error) {
	return c.ListIncidents(ctx, IncidentQuery{
		Statuses: []string{constants.IncidentTriggered, constants.IncidentAcknowledged},
	})
}

// FindIncidentsByService lists recent incidents whose service name
// contains the pattern, ignoring case.
func (c *Client) FindIncidentsByService(ctx context.Context, pattern string, window time.Duration) ([]Incident, error) {
	incidents, err := c.RecentIncidents(ctx, window)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(pattern)
	matching := []Incident{}
	for _, incident := range incidents {
		if strings.Contains(strings.ToLower(incident.Service.Name), needle) {
			matching = append(matching, incident)
		}
	}
	log.Infof("Found %d incidents matching service %q", len(matching), pattern)
	return matching, nil
}
