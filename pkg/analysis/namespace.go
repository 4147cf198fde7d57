// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package analysis

import (
	"strings"
	"time"

	"github.com/kubehealth/kubehealth/pkg/constants"
	"github.com/kubehealth/kubehealth/pkg/util"
)

// AnalyzeNamespace grades one tenant namespace from the pods observed
// in it.  Availability is the share of pods in the running phase, as
// a percentage rounded to two decimals.  A namespace with no pods has
// zero availability and therefore grades critical.
func AnalyzeNamespace(namespace string, cluster string, pods []PodSnapshot, now time.Time) NamespaceAnalysis {
	result := NamespaceAnalysis{
		Namespace:  namespace,
		Cluster:    cluster,
		AnalyzedAt: now,
	}

	for _, pod := range pods {
		result.Pods.add(ParsePodPhase(pod.Phase))
		for _, container := range pod.Containers {
			result.Containers.Total++
			if container.Ready {
				result.Containers.Ready++
			} else {
				result.Containers.NotReady++
			}
			if container.State.Kind == ContainerWaiting {
				reason := container.State.Reason
				if reason == reasonCrashLoopBackOff {
					result.Containers.CrashLoopBackOff++
				} else if strings.Contains(reason, fragmentImagePull) {
					result.Containers.ImagePullBackOff++
				}
			}
			result.Containers.TotalRestarts += container.Restarts
		}
		result.DetailedPods = append(result.DetailedPods, AnalyzePod(pod, now))
	}

	if len(pods) > 0 {
		result.Availability = util.Round2(float64(result.Pods.Running) / float64(len(pods)) * 100)
	}
	result.Health = ClassifyNamespace(result.Availability, result.Containers.CrashLoopBackOff, result.Pods.Failed, result.Containers.TotalRestarts)
	return result
}

// ClassifyNamespace grades a namespace from its availability and
// failure counters.  Crash looping containers and failed pods force
// critical regardless of availability.
func ClassifyNamespace(availability float64, crashLoopBackOff int, failedPods int, totalRestarts int) HealthStatus {
	if availability < constants.NamespaceCriticalAvailability || crashLoopBackOff > 0 || failedPods > 0 {
		return StatusCritical
	}
	if availability < constants.NamespaceWarningAvailability || totalRestarts > constants.NamespaceRestartBudget {
		return StatusWarning
	}
	return StatusHealthy
}
