// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package correlate

import (
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"github.com/kubehealth/kubehealth/pkg/report"
	"github.com/kubehealth/kubehealth/pkg/tenant"
	"github.com/kubehealth/kubehealth/pkg/util"
)

// stopWords are tokens that never identify an organization: Spanish
// connectors and legal entity suffixes.
var stopWords = util.NewSetFromSlice([]string{
	"de", "la", "el", "y", "del", "las", "los", "en", "con", "por",
	"para", "inc", "llc", "corp", "corporation", "company", "co",
	"ltd", "limited", "sapi", "cv", "sa",
})

// Incident pairs the simplified incident view with the service
// description, which is searched during matching but not carried
// into the report.
type Incident struct {
	report.Incident
	ServiceDescription string
}

func (i Incident) searchText() string {
	return strings.ToLower(i.Title + " " + i.Description + " " + i.Service.Name + " " + i.ServiceDescription)
}

// ExtractKeywords derives the search keywords for an organization
// name.  The name is lower cased and split on whitespace, commas and
// periods; tokens of two characters or less and stop words are
// dropped.  Extracting twice gives the same keywords.
func ExtractKeywords(organizationName string) []string {
	cleaned := strings.NewReplacer(",", " ", ".", " ").Replace(strings.ToLower(organizationName))
	var keywords []string
	for _, word := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(word) <= 2 || stopWords.Contains(word) {
			continue
		}
		keywords = append(keywords, word)
	}
	return keywords
}

// Correlate associates incidents with tenant namespaces.  A
// namespace matches an incident when any keyword from its
// organization name appears in the incident's searchable text.  The
// result has an entry for every namespace, matched or not; matches
// keep incident order and an incident may appear under several
// namespaces.  Namespaces without a mapped organization fall back to
// searching for their UUID, which only matches incidents that name
// it verbatim.
func Correlate(namespaces []string, mapping tenant.Mapping, incidents []Incident) map[string][]report.Incident {
	correlations := make(map[string][]report.Incident, len(namespaces))
	for _, namespace := range namespaces {
		correlations[namespace] = []report.Incident{}
	}

	for _, namespace := range namespaces {
		organizationName := mapping.OrganizationName(namespace)
		keywords := ExtractKeywords(organizationName)
		if len(keywords) == 0 {
			continue
		}
		for _, incident := range incidents {
			if matchesOrganization(incident, keywords) {
				correlations[namespace] = append(correlations[namespace], incident.Incident)
				log.Debugf("Correlated incident %s with namespace %s (%s)", incident.ID, namespace, organizationName)
			}
		}
	}

	total := 0
	for _, matched := range correlations {
		total += len(matched)
	}
	log.Infof("Found %d incident correlations across %d namespaces", total, len(namespaces))
	return correlations
}

// matchesOrganization reports whether any keyword is a substring of
// the incident text.  The first hit wins; there is no scoring.
func matchesOrganization(incident Incident, keywords []string) bool {
	text := incident.searchText()
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
