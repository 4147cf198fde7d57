// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var podNow = time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC)

func TestAnalyzePodAge(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		testName string
		created  time.Time
		ageHours float64
	}{
		{"test created ninety minutes ago", podNow.Add(-90 * time.Minute), 1.5},
		{"test created one day ago", podNow.Add(-24 * time.Hour), 24},
		{"test age rounds to two decimals", podNow.Add(-100 * time.Minute), 1.67},
		{"test no creation timestamp", time.Time{}, 0},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.testName, func(t *testing.T) {
			t.Parallel()
			record := AnalyzePod(PodSnapshot{Name: "web-0", Phase: "Running", Created: testCase.created}, podNow)
			assert.Equal(t, testCase.ageHours, record.AgeHours, "pod age is wrong")
		})
	}
}

func TestAnalyzePodReadiness(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		testName   string
		containers []ContainerSnapshot
		ready      bool
	}{
		{
			testName: "test all containers ready",
			containers: []ContainerSnapshot{
				{Name: "app", Ready: true, State: ContainerState{Kind: ContainerRunning}},
				{Name: "sidecar", Ready: true, State: ContainerState{Kind: ContainerRunning}},
			},
			ready: true,
		},
		{
			testName: "test one container not ready",
			containers: []ContainerSnapshot{
				{Name: "app", Ready: true, State: ContainerState{Kind: ContainerRunning}},
				{Name: "sidecar", Ready: false, State: ContainerState{Kind: ContainerWaiting, Reason: "ContainerCreating"}},
			},
			ready: false,
		},
		{
			testName: "test no containers",
			ready:    false,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.testName, func(t *testing.T) {
			t.Parallel()
			record := AnalyzePod(PodSnapshot{Name: "web-0", Phase: "Running", Containers: testCase.containers}, podNow)
			assert.Equal(t, testCase.ready, record.Ready, "pod readiness is wrong")
		})
	}
}

func TestAnalyzePodIssues(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		testName   string
		containers []ContainerSnapshot
		issues     []string
	}{
		{
			testName: "test crash looping container",
			containers: []ContainerSnapshot{
				{Name: "app", State: ContainerState{Kind: ContainerWaiting, Reason: "CrashLoopBackOff"}},
			},
			issues: []string{"Container app: CrashLoopBackOff"},
		},
		{
			testName: "test image pull failure",
			containers: []ContainerSnapshot{
				{Name: "app", State: ContainerState{Kind: ContainerWaiting, Reason: "ErrImagePull"}},
			},
			issues: []string{"Container app: ErrImagePull"},
		},
		{
			testName: "test image pull back off",
			containers: []ContainerSnapshot{
				{Name: "app", State: ContainerState{Kind: ContainerWaiting, Reason: "ImagePullBackOff"}},
			},
			issues: []string{"Container app: ImagePullBackOff"},
		},
		{
			testName: "test create container error",
			containers: []ContainerSnapshot{
				{Name: "app", State: ContainerState{Kind: ContainerWaiting, Reason: "CreateContainerError"}},
			},
			issues: []string{"Container app: CreateContainerError"},
		},
		{
			testName: "test container creating is quiet",
			containers: []ContainerSnapshot{
				{Name: "app", State: ContainerState{Kind: ContainerWaiting, Reason: "ContainerCreating"}},
			},
		},
		{
			testName: "test terminated with error",
			containers: []ContainerSnapshot{
				{Name: "app", State: ContainerState{Kind: ContainerTerminated, Reason: "OOMKilled"}},
			},
			issues: []string{"Container app: Terminated (OOMKilled)"},
		},
		{
			testName: "test terminated completed is quiet",
			containers: []ContainerSnapshot{
				{Name: "app", State: ContainerState{Kind: ContainerTerminated, Reason: "Completed"}},
			},
		},
		{
			testName: "test issues keep container order",
			containers: []ContainerSnapshot{
				{Name: "app", State: ContainerState{Kind: ContainerWaiting, Reason: "CrashLoopBackOff"}},
				{Name: "sidecar", State: ContainerState{Kind: ContainerWaiting, Reason: "ImagePullBackOff"}},
			},
			issues: []string{"Container app: CrashLoopBackOff", "Container sidecar: ImagePullBackOff"},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.testName, func(t *testing.T) {
			t.Parallel()
			record := AnalyzePod(PodSnapshot{Name: "web-0", Phase: "Running", Containers: testCase.containers}, podNow)
			assert.Equal(t, testCase.issues, record.Issues, "pod issues are wrong")
		})
	}
}

func TestAnalyzePodRestarts(t *testing.T) {
	t.Parallel()

	// Eleven restarts across the pod crosses the budget, ten does not.
	quiet := AnalyzePod(PodSnapshot{
		Name:  "web-0",
		Phase: "Running",
		Containers: []ContainerSnapshot{
			{Name: "app", Ready: true, Restarts: 6, State: ContainerState{Kind: ContainerRunning}},
			{Name: "sidecar", Ready: true, Restarts: 4, State: ContainerState{Kind: ContainerRunning}},
		},
	}, podNow)
	assert.Equal(t, 10, quiet.Restarts, "restart sum is wrong")
	assert.Empty(t, quiet.Issues, "ten restarts should not be reported")

	noisy := AnalyzePod(PodSnapshot{
		Name:  "web-0",
		Phase: "Running",
		Containers: []ContainerSnapshot{
			{Name: "app", Ready: true, Restarts: 7, State: ContainerState{Kind: ContainerRunning}},
			{Name: "sidecar", Ready: true, Restarts: 4, State: ContainerState{Kind: ContainerRunning}},
		},
	}, podNow)
	assert.Equal(t, 11, noisy.Restarts, "restart sum is wrong")
	assert.Equal(t, []string{"Excessive restarts: 11"}, noisy.Issues, "eleven restarts should be reported")
}

func TestAnalyzePodRestartNoteIsLast(t *testing.T) {
	t.Parallel()
	record := AnalyzePod(PodSnapshot{
		Name:  "web-0",
		Phase: "Running",
		Containers: []ContainerSnapshot{
			{Name: "app", Restarts: 15, State: ContainerState{Kind: ContainerWaiting, Reason: "CrashLoopBackOff"}},
		},
	}, podNow)
	assert.Equal(t, []string{"Container app: CrashLoopBackOff", "Excessive restarts: 15"}, record.Issues,
		"restart note should follow container issues")
}
