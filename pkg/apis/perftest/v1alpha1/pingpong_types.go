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
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// MPIPingPongSpec runs Intel MPI Benchmarks' IMB-MPI1 PingPong across two
// pods launched by mpirun.
type MPIPingPongSpec struct {
	CommonSpec `json:",inline"`

	// NumProcs is the number of MPI ranks, normally 2 for a pure
	// point-to-point pingpong.
	// +optional
	NumProcs int32 `json:"numProcs,omitempty"`

	// Transport selects TCP or RDMA for the MPI transport.
	// +optional
	Transport MPITransport `json:"transport,omitempty"`
}

// MPITransport selects the MPI transport layer.
type MPITransport string

const (
	MPITransportTCP  MPITransport = "TCP"
	MPITransportRDMA MPITransport = "RDMA"
)

// MPIPingPongMessageResult is one row of IMB's pingpong table.
type MPIPingPongMessageResult struct {
	Bytes         int64   `json:"bytes"`
	Repetitions   int64   `json:"repetitions"`
	LatencyUsec   float64 `json:"latencyUsec"`
	BandwidthMBps float64 `json:"bandwidthMBps"`
}

// MPIPingPongResult is the full parsed table plus a human summary.
type MPIPingPongResult struct {
	Messages []MPIPingPongMessageResult `json:"messages,omitempty"`
	// Summary reports the smallest and largest message sizes observed,
	// e.g. "0 B - 4194304 B".
	Summary string `json:"summary"`
}

type MPIPingPongStatus struct {
	BenchmarkStatus `json:",inline"`

	// +optional
	Result *MPIPingPongResult `json:"result,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:categories=perftest

type MPIPingPong struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   MPIPingPongSpec   `json:"spec,omitempty"`
	Status MPIPingPongStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

type MPIPingPongList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []MPIPingPong `json:"items"`
}

func (b *MPIPingPong) GetCommonSpec() *CommonSpec          { return &b.Spec.CommonSpec }
func (b *MPIPingPong) GetBenchmarkStatus() *BenchmarkStatus { return &b.Status.BenchmarkStatus }

var _ Benchmark = &MPIPingPong{}
