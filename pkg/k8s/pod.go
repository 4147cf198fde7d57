// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package k8s

import (
	"context"

	"github.com/kubehealth/kubehealth/pkg/analysis"
	v1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// GetPodList returns every pod in the namespace
func GetPodList(client kubernetes.Interface, namespace string) (*v1.PodList, error) {
	return client.CoreV1().Pods(namespace).List(context.TODO(), metav1.ListOptions{})
}

// GetNamespacePods lists the pods in a namespace and reduces each one to
// the snapshot the analyzer consumes.
func GetNamespacePods(client kubernetes.Interface, namespace string) ([]analysis.PodSnapshot, error) {
	podList, err := GetPodList(client, namespace)
	if err != nil {
		return nil, err
	}

	snapshots := make([]analysis.PodSnapshot, 0, len(podList.Items))
	for i := range podList.Items {
		snapshots = append(snapshots, snapshotPod(&podList.Items[i]))
	}
	return snapshots, nil
}

func snapshotPod(pod *v1.Pod) analysis.PodSnapshot {
	snapshot := analysis.PodSnapshot{
		Name:    pod.Name,
		Phase:   string(pod.Status.Phase),
		Created: pod.CreationTimestamp.Time,
	}
	for _, status := range pod.Status.ContainerStatuses {
		snapshot.Containers = append(snapshot.Containers, analysis.ContainerSnapshot{
			Name:     status.Name,
			Ready:    status.Ready,
			Restarts: int(status.RestartCount),
			State:    containerState(status.State),
		})
	}
	return snapshot
}

// containerState flattens the one-of container state from the API into
// the kind and reason pair the analyzer works with.
func containerState(state v1.ContainerState) analysis.ContainerState {
	switch {
	case state.Waiting != nil:
		return analysis.ContainerState{Kind: analysis.ContainerWaiting, Reason: state.Waiting.Reason}
	case state.Terminated != nil:
		return analysis.ContainerState{Kind: analysis.ContainerTerminated, Reason: state.Terminated.Reason}
	default:
		return analysis.ContainerState{Kind: analysis.ContainerRunning}
	}
}
