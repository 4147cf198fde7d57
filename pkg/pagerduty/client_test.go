// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package pagerduty

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kubehealth/kubehealth/pkg/report"
)

const incidentsBody = `{
  "incidents": [
    {
      "id": "PT4KHLK",
      "incident_number": 1234,
      "title": "Acme database outage",
      "description": "Primary database is unreachable",
      "status": "triggered",
      "urgency": "high",
      "priority": {"name": "P1"},
      "service": {"id": "PSVC1", "name": "acme-payments", "description": "Payment processing for Acme"},
      "created_at": "2025-03-14T10:00:00Z",
      "updated_at": "2025-03-14T10:05:00Z",
      "html_url": "https://example.pagerduty.com/incidents/PT4KHLK",
      "assignments": [{"assignee": {"summary": "Ana Torres"}}]
    },
    {
      "id": "PT4KHLM",
      "incident_number": 1235,
      "title": "Queue backlog",
      "status": "resolved",
      "urgency": "low",
      "priority": null,
      "service": {"id": "PSVC2", "name": "northwind-batch"},
      "assignments": []
    }
  ]
}`

func TestListIncidents(t *testing.T) {
	var captured *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		captured = request
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(incidentsBody))
	}))
	defer server.Close()

	client := NewClientWithURL("secret-token", server.URL)
	incidents, err := client.ListIncidents(context.Background(), IncidentQuery{})
	assert.NoError(t, err, "listing incidents failed")
	assert.Len(t, incidents, 2)
	assert.Equal(t, "PT4KHLK", incidents[0].ID)
	assert.Equal(t, 1234, incidents[0].IncidentNumber)
	assert.Equal(t, "P1", incidents[0].Priority.Name)
	assert.Nil(t, incidents[1].Priority, "missing priority should decode as nil")

	assert.Equal(t, "/incidents", captured.URL.Path)
	assert.Equal(t, "Token token=secret-token", captured.Header.Get("Authorization"))
	assert.Equal(t, "application/json", captured.Header.Get("Accept"))

	query := captured.URL.Query()
	assert.NotEmpty(t, query.Get("since"), "since should default to the lookback window")
	assert.NotEmpty(t, query.Get("until"), "until should default to now")
	assert.Equal(t, "100", query.Get("limit"), "limit default is wrong")
	assert.Equal(t, []string{"triggered", "acknowledged", "resolved"}, query["statuses[]"], "status defaults are wrong")
	assert.Equal(t, []string{"services", "assignments", "acknowledgers", "teams"}, query["include[]"], "includes are wrong")
	assert.Empty(t, query["service_ids[]"], "no service filter by default")
}

func TestListIncidentsQuery(t *testing.T) {
	var captured *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		captured = request
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"incidents": []}`))
	}))
	defer server.Close()

	since := time.Date(2025, time.March, 13, 12, 0, 0, 0, time.UTC)
	until := time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC)
	client := NewClientWithURL("secret-token", server.URL)
	_, err := client.ListIncidents(context.Background(), IncidentQuery{
		Since:      since,
		Until:      until,
		Statuses:   []string{"triggered"},
		ServiceIDs: []string{"PSVC1", "PSVC2"},
		Limit:      25,
	})
	assert.NoError(t, err)

	query := captured.URL.Query()
	assert.Equal(t, "2025-03-13T12:00:00Z", query.Get("since"))
	assert.Equal(t, "2025-03-14T12:00:00Z", query.Get("until"))
	assert.Equal(t, "25", query.Get("limit"))
	assert.Equal(t, []string{"triggered"}, query["statuses[]"])
	assert.Equal(t, []string{"PSVC1", "PSVC2"}, query["service_ids[]"])
}

func TestListIncidentsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		http.Error(writer, `{"error": "invalid token"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClientWithURL("bad-token", server.URL)
	_, err := client.ListIncidents(context.Background(), IncidentQuery{})
	assert.Error(t, err, "a 401 should surface as an error")
	assert.Contains(t, err.Error(), "401")
}

func TestTestConnection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/users/me", request.URL.Path)
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"user": {"name": "Ana Torres", "email": "ana@example.com", "role": "admin"}}`))
	}))
	defer server.Close()

	client := NewClientWithURL("secret-token", server.URL)
	user, err := client.TestConnection(context.Background())
	assert.NoError(t, err, "connection test failed")
	assert.Equal(t, "Ana Torres", user.Name)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, "admin", user.Role)
}

func TestTestConnectionRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		http.Error(writer, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClientWithURL("bad-token", server.URL)
	_, err := client.TestConnection(context.Background())
	assert.Error(t, err, "a rejected token should surface as an error")
}

func TestListServices(t *testing.T) {
	var captured *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		captured = request
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"services": [
			{"id": "PSVC1", "name": "acme-payments", "description": "Payments", "status": "active"},
			{"id": "PSVC2", "name": "northwind-batch", "status": "warning"}
		]}`))
	}))
	defer server.Close()

	client := NewClientWithURL("secret-token", server.URL)
	services, err := client.ListServices(context.Background(), 0)
	assert.NoError(t, err, "listing services failed")
	assert.Len(t, services, 2)
	assert.Equal(t, "acme-payments", services[0].Name)
	assert.Equal(t, "warning", services[1].Status)

	assert.Equal(t, "/services", captured.URL.Path)
	query := captured.URL.Query()
	assert.Equal(t, "100", query.Get("limit"))
	assert.Equal(t, []string{"integrations", "escalation_policies"}, query["include[]"])
}

func TestFindIncidentsByService(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(incidentsBody))
	}))
	defer server.Close()

	client := NewClientWithURL("secret-token", server.URL)
	matching, err := client.FindIncidentsByService(context.Background(), "PAYMENTS", time.Hour)
	assert.NoError(t, err)
	assert.Len(t, matching, 1, "the service match should ignore case")
	assert.Equal(t, "PT4KHLK", matching[0].ID)

	matching, err = client.FindIncidentsByService(context.Background(), "does-not-exist", time.Hour)
	assert.NoError(t, err)
	assert.Empty(t, matching, "no services match the pattern")
}

func TestSimplify(t *testing.T) {
	t.Parallel()
	incident := Incident{
		ID:             "PT4KHLK",
		IncidentNumber: 1234,
		Title:          "Acme database outage",
		Description:    "Primary database is unreachable",
		Status:         "triggered",
		Urgency:        "high",
		Priority:       &Priority{Name: "P1"},
		Service:        Service{ID: "PSVC1", Name: "acme-payments", Description: "Payment processing for Acme"},
		CreatedAt:      "2025-03-14T10:00:00Z",
		UpdatedAt:      "2025-03-14T10:05:00Z",
		HTMLURL:        "https://example.pagerduty.com/incidents/PT4KHLK",
		Assignments:    []Assignment{{Assignee: Assignee{Summary: "Ana Torres"}}},
	}

	simplified := Simplify(incident)
	assert.Equal(t, report.Incident{
		ID:             "PT4KHLK",
		IncidentNumber: 1234,
		Title:          "Acme database outage",
		Description:    "Primary database is unreachable",
		Status:         "triggered",
		Urgency:        "high",
		Priority:       "P1",
		Service:        report.ServiceRef{ID: "PSVC1", Name: "acme-payments"},
		CreatedAt:      "2025-03-14T10:00:00Z",
		UpdatedAt:      "2025-03-14T10:05:00Z",
		HTMLURL:        "https://example.pagerduty.com/incidents/PT4KHLK",
		Assignments:    []report.Assignment{{Assignee: "Ana Torres"}},
	}, simplified.Incident, "simplified view is wrong")
	assert.Equal(t, "Payment processing for Acme", simplified.ServiceDescription,
		"the service description rides along for matching")
}

func TestSimplifyWithoutPriority(t *testing.T) {
	t.Parallel()
	simplified := Simplify(Incident{ID: "PT4KHLM", Status: "resolved"})
	assert.Equal(t, "", simplified.Priority, "missing priority should simplify to empty")
	assert.NotNil(t, simplified.Assignments, "assignments should never be nil")
	assert.Empty(t, simplified.Assignments)
}
