// Copyright 2021 The Kubeflow Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package scrape fetches and concatenates the logs of a benchmark's
// result-component pods, the raw input pkg/parse turns into a typed
// result.
package scrape

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/client-go/kubernetes"
)

// Logs fetches and concatenates, in pod-name order, the current logs of
// every container named containerName across pods. A missing container
// on one pod is treated as "no output yet", not an error, since a pod
// can be Running before its container has produced anything.
func Logs(ctx context.Context, clientset kubernetes.Interface, namespace string, pods []corev1.Pod, containerName string) (string, error) {
	sorted := make([]corev1.Pod, len(pods))
	copy(sorted, pods)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var buf bytes.Buffer
	for _, pod := range sorted {
		if !hasContainer(pod, containerName) {
			continue
		}
		req := clientset.CoreV1().Pods(namespace).GetLogs(pod.Name, &corev1.PodLogOptions{Container: containerName})
		stream, err := req.Stream(ctx)
		if err != nil {
			return "", fmt.Errorf("opening log stream for pod %s/%s container %s: %w", namespace, pod.Name, containerName, err)
		}
		data, err := io.ReadAll(stream)
		stream.Close()
		if err != nil {
			return "", fmt.Errorf("reading log stream for pod %s/%s container %s: %w", namespace, pod.Name, containerName, err)
		}
		buf.Write(data)
	}
	return buf.String(), nil
}

func hasContainer(pod corev1.Pod, name string) bool {
	for _, c := range pod.Spec.Containers {
		if c.Name == name {
			return true
		}
	}
	for _, c := range pod.Spec.InitContainers {
		if c.Name == name {
			return true
		}
	}
	return false
}
