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
// limitations under the License

package v1alpha1

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
)

// ImagePullPolicy mirrors corev1.PullPolicy but is validated against the
// three values a benchmark's pod spec accepts.
type ImagePullPolicy string

const (
	PullAlways       ImagePullPolicy = "Always"
	PullIfNotPresent ImagePullPolicy = "IfNotPresent"
	PullNever        ImagePullPolicy = "Never"
)

// CommonSpec holds the fields shared by every benchmark kind.
type CommonSpec struct {
	// Image is the container image used for the benchmark's components.
	Image string `json:"image"`

	// ImagePullPolicy defaults to IfNotPresent if unset.
	// +optional
	ImagePullPolicy ImagePullPolicy `json:"imagePullPolicy,omitempty"`

	// HostNetwork runs benchmark pods in the host network namespace. When
	// set, NetworkName must be empty (see ConfigurationError in pkg/template).
	// +optional
	HostNetwork bool `json:"hostNetwork,omitempty"`

	// NetworkName is a Multus network-attachment-definition reference in
	// the form "<namespace>/<name>". Mutually exclusive with HostNetwork.
	// +optional
	NetworkName string `json:"networkName,omitempty"`

	// MTU, when set, causes an init container to configure the interface
	// MTU before the main containers start.
	// +optional
	MTU *int32 `json:"mtu,omitempty"`

	// Resources applies to every container the renderer creates for this
	// benchmark, unless a kind overrides specific containers.
	// +optional
	Resources *corev1.ResourceRequirements `json:"resources,omitempty"`
}

// BenchmarkPhase is the lifecycle phase of a benchmark, driven by
// pkg/controller's generic reconciler.
type BenchmarkPhase string

const (
	BenchmarkPending     BenchmarkPhase = "Pending"
	BenchmarkPreparing   BenchmarkPhase = "Preparing"
	BenchmarkRunning     BenchmarkPhase = "Running"
	BenchmarkSummarising BenchmarkPhase = "Summarising"
	BenchmarkSucceeded   BenchmarkPhase = "Succeeded"
	BenchmarkFailed      BenchmarkPhase = "Failed"
	BenchmarkTerminating BenchmarkPhase = "Terminating"
)

// Event reasons recorded on the benchmark object. AbortedReason/RestartingReason
// surface gang-job detail (preemption, task restart) as diagnostics
// without widening BenchmarkPhase.
const (
	AbortedReason    = "BenchmarkAborted"
	RestartingReason = "BenchmarkRestarting"
)

// BenchmarkStatus is embedded in every kind-specific Status struct.
type BenchmarkStatus struct {
	// +optional
	Phase BenchmarkPhase `json:"phase,omitempty"`

	// PriorityClassName is set once, before any child object is created,
	// and never changes afterwards.
	// +optional
	PriorityClassName string `json:"priorityClassName,omitempty"`

	// +optional
	StartedAt *metav1.Time `json:"startedAt,omitempty"`

	// +optional
	FinishedAt *metav1.Time `json:"finishedAt,omitempty"`

	// FailureReason is set only when Phase == Failed.
	// +optional
	FailureReason string `json:"failureReason,omitempty"`
}

// IsTerminal reports whether the phase is one from which the reconciler
// never transitions again.
func (s *BenchmarkStatus) IsTerminal() bool {
	return s.Phase == BenchmarkSucceeded || s.Phase == BenchmarkFailed
}

// Benchmark is implemented by every concrete kind (IPerf, MPIPingPong, ...)
// and is the interface the generic reconciler (pkg/controller) and
// registry (pkg/registry) operate against. Any type satisfying it also
// satisfies sigs.k8s.io/controller-runtime/pkg/client.Object.
type Benchmark interface {
	runtime.Object
	metav1.Object

	GetCommonSpec() *CommonSpec
	GetBenchmarkStatus() *BenchmarkStatus
}

// PodInfo is a trimmed record of a component pod, used by discovery and by
// kind-specific pod_modified-equivalents that need to remember which pod
// was the master vs. a worker across reconciles.
type PodInfo struct {
	Name string `json:"name"`
	IP   string `json:"ip,omitempty"`
	Node string `json:"node,omitempty"`
}

// PodInfoFromPod extracts the fields of PodInfo that are known once the
// pod has been scheduled.
func PodInfoFromPod(pod *corev1.Pod) PodInfo {
	return PodInfo{
		Name: pod.Name,
		IP:   pod.Status.PodIP,
		Node: pod.Spec.NodeName,
	}
}
