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

// Package controller drives every benchmark kind through
// Pending -> Preparing -> Running -> Summarising -> {Succeeded,Failed}
// with one BenchmarkReconciler instance per kind, all delegating
// kind-specific behaviour (rendering, result parsing) through
// pkg/registry, plus the BenchmarkSetReconciler that expands a sweep into
// child benchmarks and aggregates their outcomes.
package controller

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	corev1 "k8s.io/api/core/v1"
	schedulingv1 "k8s.io/api/scheduling/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/record"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"
	volcanobatchv1alpha1 "volcano.sh/apis/pkg/apis/batch/v1alpha1"

	perftestv1alpha1 "github.com/stackhpc/kube-perftest-operator/pkg/apis/perftest/v1alpha1"
	"github.com/stackhpc/kube-perftest-operator/pkg/config"
	"github.com/stackhpc/kube-perftest-operator/pkg/discovery"
	"github.com/stackhpc/kube-perftest-operator/pkg/metrics"
	"github.com/stackhpc/kube-perftest-operator/pkg/parse"
	"github.com/stackhpc/kube-perftest-operator/pkg/priority"
	"github.com/stackhpc/kube-perftest-operator/pkg/registry"
	"github.com/stackhpc/kube-perftest-operator/pkg/scrape"
	"github.com/stackhpc/kube-perftest-operator/pkg/template"
	"github.com/stackhpc/kube-perftest-operator/pkg/util"
	logutil "github.com/stackhpc/kube-perftest-operator/pkg/util/log"
)

const (
	reconcileTimeout = 30 * time.Second
	scrapeTimeout    = 60 * time.Second

	// priorityClassFinalizer guards the cluster-scoped PriorityClass a
	// benchmark owns. It cannot carry an owner reference to the
	// (namespaced) benchmark for owner-GC to act on -- the garbage
	// collector treats a cluster-scoped dependent's namespaced owner
	// reference as referring to an absent owner and deletes the
	// dependent almost immediately -- so deletion is instead driven
	// explicitly by this finalizer.
	priorityClassFinalizer = "perftest.stackhpc.com/priorityclass"
)

// BenchmarkReconciler drives one benchmark kind's lifecycle. A separate
// instance, sharing the same Allocator, is registered per kind in
// cmd/kube-perftest-operator.
type BenchmarkReconciler struct {
	client.Client
	Scheme        *runtime.Scheme
	Recorder      record.EventRecorder
	Clientset     kubernetes.Interface
	Config        config.Configuration
	Allocator     *priority.Allocator
	Entry         registry.Entry
}

// Reconcile implements the controller-runtime reconcile loop for one
// benchmark kind.
func (r *BenchmarkReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, reconcileTimeout)
	defer cancel()

	obj := r.Entry.NewObject()
	if err := r.Get(ctx, req.NamespacedName, obj); err != nil {
		return ctrl.Result{}, client.IgnoreNotFound(err)
	}

	logger := logutil.ForBenchmark(r.Entry.Kind, obj)
	status := obj.GetBenchmarkStatus()

	if obj.GetDeletionTimestamp() != nil {
		return r.reconcileDeletion(ctx, obj, logger)
	}

	if status.IsTerminal() {
		return ctrl.Result{}, nil
	}

	var (
		result ctrl.Result
		err    error
	)
	switch status.Phase {
	case "", perftestv1alpha1.BenchmarkPending:
		result, err = r.reconcilePending(ctx, obj)
	case perftestv1alpha1.BenchmarkPreparing:
		result, err = r.reconcilePreparing(ctx, obj)
	case perftestv1alpha1.BenchmarkRunning:
		result, err = r.reconcileRunning(ctx, obj)
	case perftestv1alpha1.BenchmarkSummarising:
		result, err = r.reconcileSummarising(ctx, obj)
	default:
		logger.WithField("phase", status.Phase).Warn("unknown phase, resetting to Pending")
		status.Phase = perftestv1alpha1.BenchmarkPending
		err = r.Status().Update(ctx, obj)
	}
	if err != nil {
		logger.WithError(err).Error("reconcile failed")
	}
	return result, err
}

// reconcilePending adds the priority-class finalizer, allocates a priority
// and creates the benchmark's cluster-scoped PriorityClass, then
// transitions to Preparing. The priority, once set, is never reallocated,
// matching spec-mandated immutability of a benchmark's scheduling
// priority; both the finalizer add and the PriorityClass create are
// idempotent so a reconcile that fails after one but before the status
// update retries cleanly.
func (r *BenchmarkReconciler) reconcilePending(ctx context.Context, obj perftestv1alpha1.Benchmark) (ctrl.Result, error) {
	if !controllerutil.ContainsFinalizer(obj, priorityClassFinalizer) {
		controllerutil.AddFinalizer(obj, priorityClassFinalizer)
		if err := r.Update(ctx, obj); err != nil {
			return ctrl.Result{}, fmt.Errorf("adding priority class finalizer: %w", err)
		}
	}

	status := obj.GetBenchmarkStatus()
	if status.PriorityClassName == "" {
		p, err := r.Allocator.Allocate()
		if err != nil {
			return ctrl.Result{}, fmt.Errorf("allocating priority: %w", err)
		}
		name := fmt.Sprintf("%s-%s", obj.GetNamespace(), obj.GetName())
		if err := r.Create(ctx, template.PriorityClass(name, p)); err != nil && !apierrors.IsAlreadyExists(err) {
			return ctrl.Result{}, fmt.Errorf("creating priority class %s: %w", name, err)
		}
		status.PriorityClassName = name
	}
	status.Phase = perftestv1alpha1.BenchmarkPreparing
	if err := r.Status().Update(ctx, obj); err != nil {
		return ctrl.Result{}, fmt.Errorf("updating status to Preparing: %w", err)
	}
	metrics.CreatedInc(obj.GetNamespace(), r.Entry.Kind)
	r.Recorder.Event(obj, corev1.EventTypeNormal, "Preparing", "allocated priority, rendering child objects")
	return ctrl.Result{}, nil
}

// reconcileDeletion deletes the benchmark's PriorityClass, then releases
// the finalizer so the API server can finish removing the benchmark.
// IsNotFound is not an error here: the benchmark may be deleted before it
// ever reached Pending, in which case the finalizer was never added and
// this is a no-op.
func (r *BenchmarkReconciler) reconcileDeletion(ctx context.Context, obj perftestv1alpha1.Benchmark, logger *log.Entry) (ctrl.Result, error) {
	if !controllerutil.ContainsFinalizer(obj, priorityClassFinalizer) {
		return ctrl.Result{}, nil
	}

	if name := obj.GetBenchmarkStatus().PriorityClassName; name != "" {
		pc := &schedulingv1.PriorityClass{ObjectMeta: metav1.ObjectMeta{Name: name}}
		if err := r.Delete(ctx, pc); err != nil && !apierrors.IsNotFound(err) {
			return ctrl.Result{}, fmt.Errorf("deleting priority class %s: %w", name, err)
		}
	}

	controllerutil.RemoveFinalizer(obj, priorityClassFinalizer)
	if err := r.Update(ctx, obj); err != nil {
		return ctrl.Result{}, fmt.Errorf("removing priority class finalizer: %w", err)
	}
	logger.Info("benchmark deleted, priority class cleaned up")
	return ctrl.Result{}, nil
}

// reconcilePreparing renders and idempotently applies the benchmark's
// child objects, then transitions to Running.
func (r *BenchmarkReconciler) reconcilePreparing(ctx context.Context, obj perftestv1alpha1.Benchmark) (ctrl.Result, error) {
	rendered, err := r.Entry.Render(obj, r.Config)
	if err != nil {
		return r.fail(ctx, obj, fmt.Sprintf("rendering child objects: %v", err))
	}
	logutil.ForBenchmark(r.Entry.Kind, obj).WithField("job", util.Pformat(rendered.Job)).Debug("rendered child objects")

	owner := obj
	for _, applyFn := range []func() error{
		func() error { return r.applyOwned(ctx, owner, rendered.ConfigMap) },
		func() error { return r.applyOwned(ctx, owner, rendered.SSHConfigMap) },
		func() error { return r.applyOwned(ctx, owner, rendered.Service) },
		func() error { return r.applyOwned(ctx, owner, rendered.PVC) },
		func() error { return r.applyOwned(ctx, owner, rendered.Job) },
	} {
		if err := applyFn(); err != nil {
			return ctrl.Result{}, fmt.Errorf("applying rendered child object: %w", err)
		}
	}

	status := obj.GetBenchmarkStatus()
	now := metav1.Now()
	status.StartedAt = &now
	status.Phase = perftestv1alpha1.BenchmarkRunning
	if err := r.Status().Update(ctx, obj); err != nil {
		return ctrl.Result{}, fmt.Errorf("updating status to Running: %w", err)
	}
	metrics.RunningInc(obj.GetNamespace(), r.Entry.Kind)
	r.Recorder.Event(obj, corev1.EventTypeNormal, "Running", "child objects created")
	return ctrl.Result{}, nil
}

// applyOwned creates obj if it does not exist, skipping nil (a kind that
// does not render that child). It never updates an existing child: every
// rendered child is immutable for the lifetime of the benchmark.
func (r *BenchmarkReconciler) applyOwned(ctx context.Context, owner perftestv1alpha1.Benchmark, obj client.Object) error {
	if obj == nil || isNilPointer(obj) {
		return nil
	}
	if err := r.Get(ctx, types.NamespacedName{Namespace: obj.GetNamespace(), Name: obj.GetName()}, obj.DeepCopyObject().(client.Object)); err == nil {
		return nil
	} else if !apierrors.IsNotFound(err) {
		return err
	}
	if err := ctrl.SetControllerReference(owner, obj, r.Scheme); err != nil {
		return fmt.Errorf("setting owner reference: %w", err)
	}
	if err := r.Create(ctx, obj); err != nil && !apierrors.IsAlreadyExists(err) {
		return err
	}
	return nil
}

// reconcileRunning updates the discovery ConfigMap from the benchmark's
// owned pods and watches the gang Job for completion.
func (r *BenchmarkReconciler) reconcileRunning(ctx context.Context, obj perftestv1alpha1.Benchmark) (ctrl.Result, error) {
	pods, err := r.listOwnedPods(ctx, obj)
	if err != nil {
		return ctrl.Result{}, fmt.Errorf("listing owned pods: %w", err)
	}

	if err := r.updateDiscovery(ctx, obj, pods); err != nil {
		logutil.ForBenchmark(r.Entry.Kind, obj).WithError(err).Warn("updating discovery config map")
	}

	job := &volcanobatchv1alpha1.Job{}
	if err := r.Get(ctx, types.NamespacedName{Namespace: obj.GetNamespace(), Name: obj.GetName()}, job); err != nil {
		if apierrors.IsNotFound(err) {
			return ctrl.Result{RequeueAfter: 5 * time.Second}, nil
		}
		return ctrl.Result{}, fmt.Errorf("getting gang job: %w", err)
	}

	switch job.Status.State.Phase {
	case volcanobatchv1alpha1.Completed:
		status := obj.GetBenchmarkStatus()
		status.Phase = perftestv1alpha1.BenchmarkSummarising
		if err := r.Status().Update(ctx, obj); err != nil {
			return ctrl.Result{}, fmt.Errorf("updating status to Summarising: %w", err)
		}
		metrics.RunningDec(obj.GetNamespace(), r.Entry.Kind)
		return ctrl.Result{}, nil
	case volcanobatchv1alpha1.Failed, volcanobatchv1alpha1.Aborted, volcanobatchv1alpha1.Terminated:
		metrics.RunningDec(obj.GetNamespace(), r.Entry.Kind)
		return r.fail(ctx, obj, fmt.Sprintf("gang job entered phase %s", job.Status.State.Phase))
	case volcanobatchv1alpha1.Restarting:
		metrics.RestartedInc(obj.GetNamespace(), r.Entry.Kind)
		r.Recorder.Event(obj, corev1.EventTypeWarning, perftestv1alpha1.RestartingReason, "gang job is restarting after a pod eviction")
	}

	return ctrl.Result{RequeueAfter: 5 * time.Second}, nil
}

// reconcileSummarising scrapes and parses the result component's logs; a
// re-queue-worthy IncompleteResultsError keeps the phase unchanged, any
// other error is terminal.
func (r *BenchmarkReconciler) reconcileSummarising(ctx context.Context, obj perftestv1alpha1.Benchmark) (ctrl.Result, error) {
	scrapeCtx, cancel := context.WithTimeout(ctx, scrapeTimeout)
	defer cancel()

	pods, err := r.listOwnedPods(ctx, obj)
	if err != nil {
		return ctrl.Result{}, fmt.Errorf("listing owned pods: %w", err)
	}
	componentPods := filterByComponent(pods, r.Config.Labels.ComponentLabel, r.Entry.ResultComponent)

	logs, err := scrape.Logs(scrapeCtx, r.Clientset, obj.GetNamespace(), componentPods, r.Entry.ResultContainer)
	if err != nil {
		return ctrl.Result{}, fmt.Errorf("scraping result component logs: %w", err)
	}

	parsed, err := r.Entry.Parse(logs)
	if err != nil {
		if _, incomplete := err.(*parse.IncompleteResultsError); incomplete {
			return ctrl.Result{RequeueAfter: 5 * time.Second}, nil
		}
		return r.fail(ctx, obj, fmt.Sprintf("parsing result logs: %v", err))
	}

	if err := r.Entry.SetResult(obj, parsed); err != nil {
		return r.fail(ctx, obj, fmt.Sprintf("storing parsed result: %v", err))
	}

	status := obj.GetBenchmarkStatus()
	now := metav1.Now()
	status.FinishedAt = &now
	status.Phase = perftestv1alpha1.BenchmarkSucceeded
	if err := r.Status().Update(ctx, obj); err != nil {
		return ctrl.Result{}, fmt.Errorf("updating status to Succeeded: %w", err)
	}
	metrics.SucceededInc(obj.GetNamespace(), r.Entry.Kind)
	r.Recorder.Event(obj, corev1.EventTypeNormal, "Succeeded", "result parsed and recorded")
	return ctrl.Result{}, nil
}

// fail transitions obj to the terminal Failed phase with reason recorded.
func (r *BenchmarkReconciler) fail(ctx context.Context, obj perftestv1alpha1.Benchmark, reason string) (ctrl.Result, error) {
	status := obj.GetBenchmarkStatus()
	now := metav1.Now()
	status.FinishedAt = &now
	status.Phase = perftestv1alpha1.BenchmarkFailed
	status.FailureReason = reason
	if err := r.Status().Update(ctx, obj); err != nil {
		return ctrl.Result{}, fmt.Errorf("updating status to Failed: %w", err)
	}
	metrics.FailedInc(obj.GetNamespace(), r.Entry.Kind)
	r.Recorder.Event(obj, corev1.EventTypeWarning, perftestv1alpha1.AbortedReason, reason)
	return ctrl.Result{}, nil
}

func (r *BenchmarkReconciler) listOwnedPods(ctx context.Context, obj perftestv1alpha1.Benchmark) ([]corev1.Pod, error) {
	var list corev1.PodList
	if err := r.List(ctx, &list, client.InNamespace(obj.GetNamespace()), client.MatchingLabels(
		map[string]string{r.Config.Labels.NameLabel: obj.GetName(), r.Config.Labels.KindLabel: r.Entry.Kind},
	)); err != nil {
		return nil, err
	}
	return list.Items, nil
}

func (r *BenchmarkReconciler) updateDiscovery(ctx context.Context, obj perftestv1alpha1.Benchmark, pods []corev1.Pod) error {
	byTask := discovery.PodsByTask(pods, r.Config.Labels.ComponentLabel)
	expected, err := r.expectedReplicasByTask(ctx, obj)
	if err != nil {
		return err
	}
	return discovery.Update(ctx, r.Client, obj.GetNamespace(), discovery.ConfigMapName(obj), byTask, expected)
}

// expectedReplicasByTask has no authoritative source once the Job is
// already rendered (the benchmark's spec, not the live pod list, is the
// source of truth), so it is read here from the Job's own task spec
// rather than threaded through from Render; kinds with a fixed,
// well-known replica count per task could instead look this up from
// r.Entry, which today's kinds don't need.
func (r *BenchmarkReconciler) expectedReplicasByTask(ctx context.Context, obj perftestv1alpha1.Benchmark) (map[string]int32, error) {
	job := &volcanobatchv1alpha1.Job{}
	if err := r.Get(ctx, types.NamespacedName{Namespace: obj.GetNamespace(), Name: obj.GetName()}, job); err != nil {
		return nil, fmt.Errorf("getting gang job: %w", err)
	}
	counts := map[string]int32{}
	for _, task := range job.Spec.Tasks {
		counts[task.Name] = task.Replicas
	}
	return counts, nil
}

func filterByComponent(pods []corev1.Pod, componentLabel, component string) []corev1.Pod {
	var out []corev1.Pod
	for _, p := range pods {
		if p.Labels[componentLabel] == component {
			out = append(out, p)
		}
	}
	return out
}

func isNilPointer(obj client.Object) bool {
	switch v := obj.(type) {
	case *corev1.ConfigMap:
		return v == nil
	case *corev1.Service:
		return v == nil
	case *corev1.PersistentVolumeClaim:
		return v == nil
	case *volcanobatchv1alpha1.Job:
		return v == nil
	default:
		return false
	}
}

// SetupWithManager registers this kind's reconciler with the manager.
func (r *BenchmarkReconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(r.Entry.NewObject()).
		Owns(&corev1.Pod{}).
		Owns(&corev1.ConfigMap{}).
		Owns(&corev1.Service{}).
		Owns(&volcanobatchv1alpha1.Job{}).
		Complete(r)
}
