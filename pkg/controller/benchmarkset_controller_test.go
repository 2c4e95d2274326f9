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

package controller

import (
	"context"
	"encoding/json"
	"testing"

	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/tools/record"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	perftestv1alpha1 "github.com/stackhpc/kube-perftest-operator/pkg/apis/perftest/v1alpha1"
)

func init() {
	RegisterKinds()
}

func newSetFakeClient(objs ...client.Object) client.Client {
	scheme := runtime.NewScheme()
	_ = perftestv1alpha1.AddToScheme(scheme)
	return fake.NewClientBuilder().WithScheme(scheme).WithObjects(objs...).
		WithStatusSubresource(&perftestv1alpha1.BenchmarkSet{}, &perftestv1alpha1.IPerf{}).Build()
}

func rawJSON(t *testing.T, v interface{}) apiextensionsv1.JSON {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshaling fixture: %v", err)
	}
	return apiextensionsv1.JSON{Raw: raw}
}

func newSweep(t *testing.T) *perftestv1alpha1.BenchmarkSet {
	return &perftestv1alpha1.BenchmarkSet{
		ObjectMeta: metav1.ObjectMeta{Namespace: "ns", Name: "sweep", UID: "sweep-uid"},
		Spec: perftestv1alpha1.BenchmarkSetSpec{
			Template: perftestv1alpha1.BenchmarkSetTemplate{
				APIVersion: "perftest.stackhpc.com/v1alpha1",
				Kind:       "IPerf",
				Spec:       rawJSON(t, map[string]interface{}{"image": "iperf:latest", "duration": 10}),
			},
			Repetitions: 2,
			Permutations: perftestv1alpha1.BenchmarkSetPermutations{
				Product: map[string][]apiextensionsv1.JSON{
					"streams": {rawJSON(t, 1), rawJSON(t, 2)},
				},
			},
		},
	}
}

func TestBenchmarkSetReconcileFreezesCountAndCreatesChildren(t *testing.T) {
	set := newSweep(t)
	c := newSetFakeClient(set)
	r := &BenchmarkSetReconciler{Client: c, Scheme: c.Scheme(), Recorder: record.NewFakeRecorder(16)}

	req := ctrl.Request{NamespacedName: types.NamespacedName{Namespace: "ns", Name: "sweep"}}
	if _, err := r.Reconcile(context.Background(), req); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	var got perftestv1alpha1.BenchmarkSet
	if err := c.Get(context.Background(), req.NamespacedName, &got); err != nil {
		t.Fatalf("getting set: %v", err)
	}
	if got.Status.Count != 4 {
		t.Fatalf("status.count = %d, want 4", got.Status.Count)
	}
	if got.Status.PermutationCount != 2 {
		t.Fatalf("status.permutationCount = %d, want 2", got.Status.PermutationCount)
	}

	var children perftestv1alpha1.IPerfList
	if err := c.List(context.Background(), &children, client.InNamespace("ns")); err != nil {
		t.Fatalf("listing children: %v", err)
	}
	if len(children.Items) != 4 {
		t.Fatalf("len(children) = %d, want 4", len(children.Items))
	}
	for _, child := range children.Items {
		if !metav1.IsControlledBy(&child, &got) {
			t.Errorf("child %s is not controlled by the benchmark set", child.Name)
		}
	}
}

func TestBenchmarkSetReconcileIsIdempotent(t *testing.T) {
	set := newSweep(t)
	c := newSetFakeClient(set)
	r := &BenchmarkSetReconciler{Client: c, Scheme: c.Scheme(), Recorder: record.NewFakeRecorder(16)}

	req := ctrl.Request{NamespacedName: types.NamespacedName{Namespace: "ns", Name: "sweep"}}
	for i := 0; i < 3; i++ {
		if _, err := r.Reconcile(context.Background(), req); err != nil {
			t.Fatalf("Reconcile iteration %d: %v", i, err)
		}
	}

	var children perftestv1alpha1.IPerfList
	if err := c.List(context.Background(), &children, client.InNamespace("ns")); err != nil {
		t.Fatalf("listing children: %v", err)
	}
	if len(children.Items) != 4 {
		t.Fatalf("len(children) = %d after repeated reconciles, want 4 (idempotent)", len(children.Items))
	}

	var got perftestv1alpha1.BenchmarkSet
	if err := c.Get(context.Background(), req.NamespacedName, &got); err != nil {
		t.Fatalf("getting set: %v", err)
	}
	if got.Status.Count != 4 {
		t.Fatalf("status.count changed across reconciles: %d, want 4", got.Status.Count)
	}
}

func TestBenchmarkSetReconcileAggregatesChildPhasesAndStampsFinishedAt(t *testing.T) {
	set := newSweep(t)
	c := newSetFakeClient(set)
	r := &BenchmarkSetReconciler{Client: c, Scheme: c.Scheme(), Recorder: record.NewFakeRecorder(16)}

	req := ctrl.Request{NamespacedName: types.NamespacedName{Namespace: "ns", Name: "sweep"}}
	if _, err := r.Reconcile(context.Background(), req); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	var children perftestv1alpha1.IPerfList
	if err := c.List(context.Background(), &children, client.InNamespace("ns")); err != nil {
		t.Fatalf("listing children: %v", err)
	}
	phases := []perftestv1alpha1.BenchmarkPhase{
		perftestv1alpha1.BenchmarkSucceeded,
		perftestv1alpha1.BenchmarkSucceeded,
		perftestv1alpha1.BenchmarkFailed,
		perftestv1alpha1.BenchmarkRunning,
	}
	for i := range children.Items {
		children.Items[i].Status.Phase = phases[i]
		if err := c.Status().Update(context.Background(), &children.Items[i]); err != nil {
			t.Fatalf("updating child %d status: %v", i, err)
		}
	}

	if _, err := r.Reconcile(context.Background(), req); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	var got perftestv1alpha1.BenchmarkSet
	if err := c.Get(context.Background(), req.NamespacedName, &got); err != nil {
		t.Fatalf("getting set: %v", err)
	}
	if got.Status.Succeeded != 2 || got.Status.Failed != 1 {
		t.Fatalf("succeeded=%d failed=%d, want 2 and 1", got.Status.Succeeded, got.Status.Failed)
	}
	if got.Status.FinishedAt != nil {
		t.Fatalf("finishedAt set while one child is still running")
	}

	children.Items[3].Status.Phase = perftestv1alpha1.BenchmarkSucceeded
	if err := c.Status().Update(context.Background(), &children.Items[3]); err != nil {
		t.Fatalf("updating last child status: %v", err)
	}
	if _, err := r.Reconcile(context.Background(), req); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if err := c.Get(context.Background(), req.NamespacedName, &got); err != nil {
		t.Fatalf("getting set: %v", err)
	}
	if got.Status.FinishedAt == nil {
		t.Fatalf("finishedAt not set once succeeded+failed == count")
	}
}
