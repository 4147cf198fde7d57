// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package analysis

import (
	"strings"
	"time"
)

// HealthStatus grades a namespace, a cluster, or the whole estate.
type HealthStatus string

const (
	StatusHealthy  HealthStatus = "healthy"
	StatusWarning  HealthStatus = "warning"
	StatusCritical HealthStatus = "critical"
	StatusUnknown  HealthStatus = "unknown"
)

// PodPhase is the Kubernetes pod lifecycle phase, folded to lower case.
type PodPhase string

const (
	PhaseRunning   PodPhase = "running"
	PhasePending   PodPhase = "pending"
	PhaseFailed    PodPhase = "failed"
	PhaseSucceeded PodPhase = "succeeded"
	PhaseUnknown   PodPhase = "unknown"
)

// ParsePodPhase maps a reported pod phase onto one of the tracked
// phases.  Anything unrecognized counts as unknown.
func ParsePodPhase(phase string) PodPhase {
	switch PodPhase(strings.ToLower(phase)) {
	case PhaseRunning:
		return PhaseRunning
	case PhasePending:
		return PhasePending
	case PhaseFailed:
		return PhaseFailed
	case PhaseSucceeded:
		return PhaseSucceeded
	default:
		return PhaseUnknown
	}
}

// ContainerStateKind says which branch of the container state was set
// when the snapshot was taken.
type ContainerStateKind string

const (
	ContainerRunning    ContainerStateKind = "running"
	ContainerWaiting    ContainerStateKind = "waiting"
	ContainerTerminated ContainerStateKind = "terminated"
)

// ContainerState is the reduced state of one container.  Reason is
// only meaningful for waiting and terminated containers.
type ContainerState struct {
	Kind   ContainerStateKind
	Reason string
}

func (s ContainerState) String() string {
	if s.Reason == "" {
		return string(s.Kind)
	}
	return string(s.Kind) + ":" + s.Reason
}

// ContainerSnapshot is the observed state of one container in a pod.
type ContainerSnapshot struct {
	Name     string
	Ready    bool
	Restarts int
	State    ContainerState
}

// PodSnapshot is the observed state of one pod, reduced to the fields
// the analysis reads.  A zero Created time means the creation
// timestamp was not reported.
type PodSnapshot struct {
	Name       string
	Phase      string
	Created    time.Time
	Containers []ContainerSnapshot
}

// ContainerRecord is the analyzed view of one container.
type ContainerRecord struct {
	Name     string
	Ready    bool
	Restarts int
	State    ContainerState
}

// PodRecord is the analyzed view of one pod.
type PodRecord struct {
	Name       string
	Phase      PodPhase
	Ready      bool
	Restarts   int
	AgeHours   float64
	Containers []ContainerRecord
	Issues     []string
}

// PodCounts tallies the pods of a namespace by phase.
type PodCounts struct {
	Running   int `json:"running"`
	Pending   int `json:"pending"`
	Failed    int `json:"failed"`
	Succeeded int `json:"succeeded"`
	Unknown   int `json:"unknown"`
}

// Total is the number of pods behind the tally.
func (p PodCounts) Total() int {
	return p.Running + p.Pending + p.Failed + p.Succeeded + p.Unknown
}

func (p *PodCounts) add(phase PodPhase) {
	switch phase {
	case PhaseRunning:
		p.Running++
	case PhasePending:
		p.Pending++
	case PhaseFailed:
		p.Failed++
	case PhaseSucceeded:
		p.Succeeded++
	default:
		p.Unknown++
	}
}

// ContainerCounts tallies container state across a namespace.  A
// container in CrashLoopBackOff is not also counted against
// ImagePullBackOff.
type ContainerCounts struct {
	Total            int `json:"total"`
	Ready            int `json:"ready"`
	NotReady         int `json:"not_ready"`
	CrashLoopBackOff int `json:"crash_loop_backoff"`
	ImagePullBackOff int `json:"image_pull_backoff"`
	TotalRestarts    int `json:"total_restarts"`
}

// NamespaceAnalysis is the full analysis of one tenant namespace on
// one cluster.
type NamespaceAnalysis struct {
	Namespace    string
	Cluster      string
	Pods         PodCounts
	Containers   ContainerCounts
	DetailedPods []PodRecord
	Availability float64
	Health       HealthStatus
	AnalyzedAt   time.Time
}

// ClusterDescriptor identifies a discovered cluster.  Discovery fills
// it in and the analysis carries it through to the report.
type ClusterDescriptor struct {
	Name              string
	ResourceGroup     string
	Location          string
	Status            string
	KubernetesVersion string
	NodeCount         int
}

// ClusterSummary tallies namespace health within one cluster.
type ClusterSummary struct {
	TotalNamespaces int
	Healthy         int
	Warning         int
	Critical        int
}

// ClusterAnalysis pairs a cluster with the analyses of the tenant
// namespaces found on it.
type ClusterAnalysis struct {
	Cluster    ClusterDescriptor
	Namespaces []NamespaceAnalysis
	Summary    ClusterSummary
}
