// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/kubehealth/kubehealth/pkg/constants"
	"github.com/kubehealth/kubehealth/pkg/util"
)

const (
	reasonCrashLoopBackOff = "CrashLoopBackOff"
	reasonCompleted        = "Completed"
	fragmentImagePull      = "ImagePull"
	fragmentError          = "Error"
)

// AnalyzePod grades one pod.  It computes the pod age, sums container
// restarts, decides readiness, and collects the issues worth
// reporting.  Issues appear in container order, with the excessive
// restart note last.
func AnalyzePod(pod PodSnapshot, now time.Time) PodRecord {
	record := PodRecord{
		Name:  pod.Name,
		Phase: ParsePodPhase(pod.Phase),
	}

	if !pod.Created.IsZero() {
		record.AgeHours = util.Round2(now.Sub(pod.Created).Hours())
	}

	ready := 0
	for _, container := range pod.Containers {
		record.Containers = append(record.Containers, ContainerRecord{
			Name:     container.Name,
			Ready:    container.Ready,
			Restarts: container.Restarts,
			State:    container.State,
		})
		record.Restarts += container.Restarts
		if container.Ready {
			ready++
		}
		if issue, found := containerIssue(container); found {
			record.Issues = append(record.Issues, issue)
		}
	}

	record.Ready = len(pod.Containers) > 0 && ready == len(pod.Containers)
	if record.Restarts > constants.PodRestartBudget {
		record.Issues = append(record.Issues, fmt.Sprintf("Excessive restarts: %d", record.Restarts))
	}
	return record
}

// containerIssue renders the issue string for one container, if its
// state warrants one.  A waiting container is reported for
// CrashLoopBackOff, image pull trouble, or any reason naming an
// error; a terminated container is reported unless it completed.
func containerIssue(container ContainerSnapshot) (string, bool) {
	reason := container.State.Reason
	switch container.State.Kind {
	case ContainerWaiting:
		switch {
		case reason == reasonCrashLoopBackOff:
			return fmt.Sprintf("Container %s: %s", container.Name, reasonCrashLoopBackOff), true
		case strings.Contains(reason, fragmentImagePull):
			return fmt.Sprintf("Container %s: %s", container.Name, reason), true
		case strings.Contains(reason, fragmentError):
			return fmt.Sprintf("Container %s: %s", container.Name, reason), true
		}
	case ContainerTerminated:
		if reason != reasonCompleted {
			return fmt.Sprintf("Container %s: Terminated (%s)", container.Name, reason), true
		}
	}
	return "", false
}
