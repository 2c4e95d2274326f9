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
	"fmt"
	"time"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/tools/record"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"

	perftestv1alpha1 "github.com/stackhpc/kube-perftest-operator/pkg/apis/perftest/v1alpha1"
	"github.com/stackhpc/kube-perftest-operator/pkg/merge"
	"github.com/stackhpc/kube-perftest-operator/pkg/metrics"
	"github.com/stackhpc/kube-perftest-operator/pkg/permute"
	"github.com/stackhpc/kube-perftest-operator/pkg/registry"
	logutil "github.com/stackhpc/kube-perftest-operator/pkg/util/log"
)

const benchmarkSetRequeueInterval = 10 * time.Second

// BenchmarkSetReconciler expands a BenchmarkSet's permutations into child
// benchmarks of the kind its template names, creates any that are
// missing, and aggregates their outcomes back onto the set's status.
type BenchmarkSetReconciler struct {
	client.Client
	Scheme   *runtime.Scheme
	Recorder record.EventRecorder
}

func (r *BenchmarkSetReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	var set perftestv1alpha1.BenchmarkSet
	if err := r.Get(ctx, req.NamespacedName, &set); err != nil {
		return ctrl.Result{}, client.IgnoreNotFound(err)
	}

	logger := logutil.ForBenchmarkSet(&set)

	if set.GetDeletionTimestamp() != nil {
		return ctrl.Result{}, nil
	}
	if set.Status.IsTerminal() {
		return ctrl.Result{}, nil
	}

	entry, ok := registry.Lookup(set.Spec.Template.Kind)
	if !ok {
		logger.WithField("kind", set.Spec.Template.Kind).Error("benchmark set names an unregistered kind")
		r.Recorder.Eventf(&set, corev1.EventTypeWarning, "UnknownKind", "template names unregistered kind %q", set.Spec.Template.Kind)
		return ctrl.Result{RequeueAfter: benchmarkSetRequeueInterval}, nil
	}

	effectiveSpec := set.Spec
	baseSpec, err := merge.JSON(entry.DefaultOverlay, set.Spec.Template.Spec)
	if err != nil {
		return ctrl.Result{}, fmt.Errorf("merging default overlay into template spec: %w", err)
	}
	effectiveSpec.Template.Spec = baseSpec

	children, err := permute.Expand(effectiveSpec)
	if err != nil {
		return ctrl.Result{}, fmt.Errorf("expanding permutations: %w", err)
	}

	if set.Status.Count == 0 {
		productSize, err := permute.ProductSize(effectiveSpec)
		if err != nil {
			return ctrl.Result{}, fmt.Errorf("computing permutation count: %w", err)
		}
		set.Status.Count = int32(len(children))
		set.Status.PermutationCount = int32(productSize)
		now := metav1.Now()
		set.Status.CreatedAt = &now
		if err := r.Status().Update(ctx, &set); err != nil {
			return ctrl.Result{}, fmt.Errorf("freezing child count: %w", err)
		}
	}

	existing, err := r.listChildren(ctx, entry, set.Namespace, &set)
	if err != nil {
		return ctrl.Result{}, fmt.Errorf("listing child benchmarks: %w", err)
	}

	total := len(children)
	for _, child := range children {
		name := permute.ChildName(set.Name, child.Index, total)
		if _, ok := existing[name]; ok {
			continue
		}
		if err := r.createChild(ctx, &set, entry, name, child); err != nil && !apierrors.IsAlreadyExists(err) {
			return ctrl.Result{}, fmt.Errorf("creating child benchmark %s: %w", name, err)
		}
	}

	// Re-list after creation so a child created this reconcile is reflected
	// in the phase counts the set reports on this pass rather than the next.
	existing, err = r.listChildren(ctx, entry, set.Namespace, &set)
	if err != nil {
		return ctrl.Result{}, fmt.Errorf("re-listing child benchmarks: %w", err)
	}

	completed := map[string]bool{}
	var succeeded, failed int32
	for name, child := range existing {
		status := child.GetBenchmarkStatus()
		switch status.Phase {
		case perftestv1alpha1.BenchmarkSucceeded:
			succeeded++
			completed[name] = true
		case perftestv1alpha1.BenchmarkFailed:
			failed++
			completed[name] = true
		}
	}

	set.Status.Succeeded = succeeded
	set.Status.Failed = failed
	set.Status.Completed = completed
	if set.Status.Count > 0 {
		metrics.SetBenchmarkSetProgress(set.Namespace, set.Name, float64(succeeded+failed)/float64(set.Status.Count))
	}

	requeue := ctrl.Result{RequeueAfter: benchmarkSetRequeueInterval}
	if set.Status.IsTerminal() {
		now := metav1.Now()
		set.Status.FinishedAt = &now
		requeue = ctrl.Result{}
		r.Recorder.Eventf(&set, corev1.EventTypeNormal, "Completed", "%d succeeded, %d failed of %d", succeeded, failed, set.Status.Count)
	}

	if err := r.Status().Update(ctx, &set); err != nil {
		return ctrl.Result{}, fmt.Errorf("updating benchmark set status: %w", err)
	}
	return requeue, nil
}

// createChild constructs and creates one child benchmark of entry's kind
// by round-tripping the merged spec through JSON into the kind's concrete
// type, since BenchmarkSetReconciler only ever holds children as the
// Benchmark interface.
func (r *BenchmarkSetReconciler) createChild(ctx context.Context, set *perftestv1alpha1.BenchmarkSet, entry registry.Entry, name string, child permute.Child) error {
	wire := struct {
		metav1.TypeMeta   `json:",inline"`
		metav1.ObjectMeta `json:"metadata"`
		Spec              json.RawMessage `json:"spec"`
	}{
		TypeMeta: metav1.TypeMeta{
			APIVersion: set.Spec.Template.APIVersion,
			Kind:       set.Spec.Template.Kind,
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: set.Namespace,
		},
		Spec: child.Spec.Raw,
	}
	raw, err := json.Marshal(wire)
	if err != nil {
		return fmt.Errorf("encoding child object: %w", err)
	}

	obj := entry.NewObject()
	if err := json.Unmarshal(raw, obj); err != nil {
		return fmt.Errorf("decoding child object: %w", err)
	}

	if err := ctrl.SetControllerReference(set, obj, r.Scheme); err != nil {
		return fmt.Errorf("setting owner reference: %w", err)
	}
	return r.Create(ctx, obj)
}

// listChildren lists every instance of entry's kind in namespace owned by
// set, keyed by name.
func (r *BenchmarkSetReconciler) listChildren(ctx context.Context, entry registry.Entry, namespace string, set *perftestv1alpha1.BenchmarkSet) (map[string]perftestv1alpha1.Benchmark, error) {
	list := entry.NewList()
	if err := r.List(ctx, list, client.InNamespace(namespace)); err != nil {
		return nil, err
	}
	items, err := meta.ExtractList(list)
	if err != nil {
		return nil, fmt.Errorf("extracting list items: %w", err)
	}

	out := map[string]perftestv1alpha1.Benchmark{}
	for _, item := range items {
		obj, ok := item.(perftestv1alpha1.Benchmark)
		if !ok {
			continue
		}
		metaObj, ok := item.(metav1.Object)
		if !ok || !metav1.IsControlledBy(metaObj, set) {
			continue
		}
		out[metaObj.GetName()] = obj
	}
	return out, nil
}

// SetupWithManager registers the benchmark set reconciler with the
// manager. Owns every registered kind so a child's phase transition
// requeues its set without a separate watch per kind.
func (r *BenchmarkSetReconciler) SetupWithManager(mgr ctrl.Manager) error {
	b := ctrl.NewControllerManagedBy(mgr).For(&perftestv1alpha1.BenchmarkSet{})
	for _, kind := range registry.Kinds() {
		entry := registry.MustLookup(kind)
		b = b.Owns(entry.NewObject())
	}
	return b.Complete(r)
}
