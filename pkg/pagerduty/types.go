// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package pagerduty

import (
	"time"

	"github.com/kubehealth/kubehealth/pkg/correlate"
	"github.com/kubehealth/kubehealth/pkg/report"
)

// Service is a PagerDuty service as returned by the API.
type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// Priority is the priority object attached to an incident.  Incidents
// without a priority carry null on the wire.
type Priority struct {
	Name string `json:"name"`
}

// Assignee is the user an incident assignment points at.
type Assignee struct {
	Summary string `json:"summary"`
}

// Assignment is one responder assignment on an incident.
type Assignment struct {
	Assignee Assignee `json:"assignee"`
}

// Incident is a PagerDuty incident as returned by the API, reduced to
// the fields this tool reads.
type Incident struct {
	ID             string       `json:"id"`
	IncidentNumber int          `json:"incident_number"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Status         string       `json:"status"`
	Urgency        string       `json:"urgency"`
	Priority       *Priority    `json:"priority"`
	Service        Service      `json:"service"`
	CreatedAt      string       `json:"created_at"`
	UpdatedAt      string       `json:"updated_at"`
	HTMLURL        string       `json:"html_url"`
	Assignments    []Assignment `json:"assignments"`
}

// User identifies the account a token belongs to.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IncidentQuery selects which incidents to list.  Zero values fall
// back to the defaults: a day long window ending now, every status,
// and the standard page limit.
type IncidentQuery struct {
	Since      time.Time
	Until      time.Time
	Statuses   []string
	ServiceIDs []string
	Limit      int
}

type incidentsResponse struct {
	Incidents []Incident `json:"incidents"`
}

type servicesResponse struct {
	Services []Service `json:"services"`
}

type userResponse struct {
	User User `json:"user"`
}

// Simplify reduces a wire incident to the view that is correlated
// and embedded in the report.  The service description rides along
// for matching only.
func Simplify(incident Incident) correlate.Incident {
	priority := ""
	if incident.Priority != nil {
		priority = incident.Priority.Name
	}
	assignments := make([]report.Assignment, 0, len(incident.Assignments))
	for _, assignment := range incident.Assignments {
		assignments = append(assignments, report.Assignment{Assignee: assignment.Assignee.Summary})
	}
	return correlate.Incident{
		Incident: report.Incident{
			ID:             incident.ID,
			IncidentNumber: incident.IncidentNumber,
			Title:          incident.Title,
			Description:    incident.Description,
			Status:         incident.Status,
			Urgency:        incident.Urgency,
			Priority:       priority,
			Service: report.ServiceRef{
				ID:   incident.Service.ID,
				Name: incident.Service.Name,
			},
			CreatedAt:   incident.CreatedAt,
			UpdatedAt:   incident.UpdatedAt,
			HTMLURL:     incident.HTMLURL,
			Assignments: assignments,
		},
		ServiceDescription: incident.Service.Description,
	}
}

// SimplifyAll reduces a list of wire incidents in order.
func SimplifyAll(incidents []Incident) []correlate.Incident {
	simplified := make([]correlate.Incident, 0, len(incidents))
	for _, incident := range incidents {
		simplified = append(simplified, Simplify(incident))
	}
	return simplified
}
