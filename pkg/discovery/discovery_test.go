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

package discovery

import (
	"context"
	"testing"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"
)

func newFakeClient(objs ...client.Object) client.Client {
	scheme := runtime.NewScheme()
	_ = corev1.AddToScheme(scheme)
	return fake.NewClientBuilder().WithScheme(scheme).WithObjects(objs...).Build()
}

func clientObjectKey(namespace, name string) types.NamespacedName {
	return types.NamespacedName{Namespace: namespace, Name: name}
}

func TestUpdateLeavesHostsEmptyUntilFullyPopulated(t *testing.T) {
	cm := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Namespace: "ns", Name: "bench-discovery"},
		Data:       map[string]string{},
	}
	c := newFakeClient(cm)

	pods := map[string][]*corev1.Pod{
		"worker": {
			{ObjectMeta: metav1.ObjectMeta{Name: "bench-worker-0"}, Status: corev1.PodStatus{PodIP: "10.0.0.1"}},
		},
	}
	if err := Update(context.Background(), c, "ns", "bench-discovery", pods, map[string]int32{"worker": 2}); err != nil {
		t.Fatalf("Update() returned error: %v", err)
	}

	var got corev1.ConfigMap
	if err := c.Get(context.Background(), clientObjectKey("ns", "bench-discovery"), &got); err != nil {
		t.Fatalf("getting config map: %v", err)
	}
	if got.Data[HostsKey] != "" {
		t.Errorf("hosts = %q, want empty until all 2 worker pods have IPs", got.Data[HostsKey])
	}
	if got.Data[TaskHostsKey("worker")] != "" {
		t.Errorf("worker.hosts = %q, want empty until all 2 worker pods have IPs", got.Data[TaskHostsKey("worker")])
	}
}

func TestUpdatePopulatesHostsOnceComplete(t *testing.T) {
	cm := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Namespace: "ns", Name: "bench-discovery"},
		Data:       map[string]string{},
	}
	c := newFakeClient(cm)

	pods := map[string][]*corev1.Pod{
		"worker": {
			{ObjectMeta: metav1.ObjectMeta{Name: "bench-worker-0"}, Status: corev1.PodStatus{PodIP: "10.0.0.1"}},
			{ObjectMeta: metav1.ObjectMeta{Name: "bench-worker-1"}, Status: corev1.PodStatus{PodIP: "10.0.0.2"}},
		},
	}
	if err := Update(context.Background(), c, "ns", "bench-discovery", pods, map[string]int32{"worker": 2}); err != nil {
		t.Fatalf("Update() returned error: %v", err)
	}

	var got corev1.ConfigMap
	if err := c.Get(context.Background(), clientObjectKey("ns", "bench-discovery"), &got); err != nil {
		t.Fatalf("getting config map: %v", err)
	}
	want := "10.0.0.1 bench-worker-0\n10.0.0.2 bench-worker-1"
	if got.Data[HostsKey] != want {
		t.Errorf("hosts = %q, want %q", got.Data[HostsKey], want)
	}
}

func TestUpdatePreservesPredictedDNSKeys(t *testing.T) {
	cm := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Namespace: "ns", Name: "bench-discovery"},
		Data: map[string]string{
			HostsKey:             "",
			PredictedDNSKey("worker"): "bench-worker-0.bench\nbench-worker-1.bench",
		},
	}
	c := newFakeClient(cm)

	pods := map[string][]*corev1.Pod{
		"worker": {
			{ObjectMeta: metav1.ObjectMeta{Name: "bench-worker-0"}, Status: corev1.PodStatus{PodIP: "10.0.0.1"}},
		},
	}
	if err := Update(context.Background(), c, "ns", "bench-discovery", pods, map[string]int32{"worker": 2}); err != nil {
		t.Fatalf("Update() returned error: %v", err)
	}

	var got corev1.ConfigMap
	if err := c.Get(context.Background(), clientObjectKey("ns", "bench-discovery"), &got); err != nil {
		t.Fatalf("getting config map: %v", err)
	}
	want := "bench-worker-0.bench\nbench-worker-1.bench"
	if got.Data[PredictedDNSKey("worker")] != want {
		t.Errorf("worker.dns = %q, want %q to survive the patch", got.Data[PredictedDNSKey("worker")], want)
	}
}

func TestPodsByTaskGroupsByLabel(t *testing.T) {
	pods := []corev1.Pod{
		{ObjectMeta: metav1.ObjectMeta{Name: "a", Labels: map[string]string{"task": "worker"}}},
		{ObjectMeta: metav1.ObjectMeta{Name: "b", Labels: map[string]string{"task": "launcher"}}},
	}
	got := PodsByTask(pods, "task")
	if len(got["worker"]) != 1 || len(got["launcher"]) != 1 {
		t.Errorf("PodsByTask() = %v, want one pod per task", got)
	}
}
