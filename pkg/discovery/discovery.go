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

// Package discovery maintains the "hosts" table benchmark pods use to
// find each other: a ConfigMap, one per benchmark, whose "hosts" key is a
// synthetic /etc/hosts fragment and whose "<task>.hosts" keys let a task's
// init container wait for just its own peers rather than the whole gang.
package discovery

import (
	"context"
	"fmt"
	"sort"
	"strings"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	perftestv1alpha1 "github.com/stackhpc/kube-perftest-operator/pkg/apis/perftest/v1alpha1"
)

// HostsKey is the ConfigMap data key holding the full hosts table.
const HostsKey = "hosts"

// TaskHostsKey is the ConfigMap data key holding just one task's hosts,
// named "<task>.hosts".
func TaskHostsKey(task string) string { return task + ".hosts" }

// PredictedDNSKey is the ConfigMap data key holding the DNS names a task's
// replicas will have once scheduled, named "<task>.dns". It is seeded at
// render time, before any pod exists, and never changes afterwards.
func PredictedDNSKey(task string) string { return task + ".dns" }

// Update recomputes the discovery ConfigMap for a benchmark from its
// current, already-listed, pods, and patches it if it changed. Pods
// without an assigned IP are skipped; hosts lines for a task appear only
// once every expected replica of that task has an IP, matching the
// "empty until fully populated" contract wait-for-peers relies on.
//
// expectedReplicas maps task name to the number of pods that task's
// gang Job requests; once that many of the task's pods have an IP the
// task's hosts entry is written, not before, and the full "hosts" key is
// written only once every task in expectedReplicas has reached its count.
func Update(ctx context.Context, c client.Client, namespace, configMapName string, podsByTask map[string][]*corev1.Pod, expectedReplicas map[string]int32) error {
	cm := &corev1.ConfigMap{}
	if err := c.Get(ctx, types.NamespacedName{Namespace: namespace, Name: configMapName}, cm); err != nil {
		return fmt.Errorf("getting discovery config map %s/%s: %w", namespace, configMapName, err)
	}

	// The "hosts"/"<task>.hosts" keys are rebuilt from scratch every call,
	// but the "<task>.dns" keys were seeded once at render time and must
	// survive every patch: a subPath mount of HostsKey depends on the key
	// existing from the pod's first second, and the dns keys are the only
	// record of a task's predicted names once pods may not exist yet.
	data := map[string]string{HostsKey: ""}
	for k, v := range cm.Data {
		if strings.HasSuffix(k, ".dns") {
			data[k] = v
		}
	}
	var allLines []string

	tasks := make([]string, 0, len(podsByTask))
	for task := range podsByTask {
		tasks = append(tasks, task)
	}
	sort.Strings(tasks)

	for _, task := range tasks {
		data[TaskHostsKey(task)] = ""
		pods := podsByTask[task]
		lines := hostsLines(pods)
		if int32(len(lines)) < expectedReplicas[task] {
			continue
		}
		data[TaskHostsKey(task)] = strings.Join(lines, "\n")
		allLines = append(allLines, lines...)
	}

	ready := true
	for task, want := range expectedReplicas {
		if int32(len(hostsLines(podsByTask[task]))) < want {
			ready = false
			break
		}
	}
	if ready {
		data[HostsKey] = strings.Join(allLines, "\n")
	}

	if mapsEqual(cm.Data, data) {
		return nil
	}

	patch := client.MergeFrom(cm.DeepCopy())
	cm.Data = data
	if err := c.Patch(ctx, cm, patch); err != nil {
		return fmt.Errorf("patching discovery config map %s/%s: %w", namespace, configMapName, err)
	}
	return nil
}

// hostsLines builds one "<ip> <pod-name>" line per pod with an assigned
// IP, sorted by pod name so the table is stable across reconciles.
func hostsLines(pods []*corev1.Pod) []string {
	sorted := make([]*corev1.Pod, 0, len(pods))
	for _, p := range pods {
		if p.Status.PodIP != "" {
			sorted = append(sorted, p)
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	lines := make([]string, 0, len(sorted))
	for _, p := range sorted {
		lines = append(lines, fmt.Sprintf("%s %s", p.Status.PodIP, p.Name))
	}
	return lines
}

func mapsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

// PodsByTask groups a benchmark's owned pods by the task label the
// template renderer stamped on them.
func PodsByTask(pods []corev1.Pod, taskLabelKey string) map[string][]*corev1.Pod {
	byTask := map[string][]*corev1.Pod{}
	for i := range pods {
		task := pods[i].Labels[taskLabelKey]
		byTask[task] = append(byTask[task], &pods[i])
	}
	return byTask
}

// ConfigMapName is the deterministic discovery ConfigMap name for a
// benchmark, matching pkg/template.DiscoveryConfigMap.
func ConfigMapName(obj perftestv1alpha1.Benchmark) string {
	return obj.GetName() + "-discovery"
}

// IsNotFound reports whether err is the ConfigMap-missing case Update's
// caller should treat as "not rendered yet", not a real failure.
func IsNotFound(err error) bool {
	return apierrors.IsNotFound(err)
}
