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

// RDMAMode selects the perftest verb exercised by the client/server pair.
type RDMAMode string

const (
	RDMAModeRead  RDMAMode = "read"
	RDMAModeWrite RDMAMode = "write"
)

// RDMASpec holds the fields shared by RDMABandwidth and RDMALatency.
type RDMASpec struct {
	CommonSpec `json:",inline"`

	// +optional
	Mode RDMAMode `json:"mode,omitempty"`

	// Iterations is passed to perftest's -n flag; must be >= 5.
	// +optional
	Iterations int32 `json:"iterations,omitempty"`

	// ExtraArgs is appended verbatim to the perftest command line.
	// +optional
	ExtraArgs []string `json:"extraArgs,omitempty"`
}

// RDMAMessageResult is one row of perftest's per-message-size table.
type RDMAMessageResult struct {
	Bytes      int64 `json:"bytes"`
	Iterations int64 `json:"iterations"`
}

// RDMABandwidthSpec adds the bandwidth-test-specific qps field.
type RDMABandwidthSpec struct {
	RDMASpec `json:",inline"`

	// QPs is the number of queue pairs used by the bandwidth test.
	// +optional
	QPs int32 `json:"qps,omitempty"`
}

// RDMABandwidthResult is the peak row of ib_*_bw's table.
type RDMABandwidthResult struct {
	RDMAMessageResult `json:",inline"`
	PeakBandwidthMBps    float64 `json:"peakBandwidthMBps"`
	AverageBandwidthMBps float64 `json:"averageBandwidthMBps"`
	MessageRateMpps       float64 `json:"messageRateMpps"`
}

type RDMABandwidthStatus struct {
	BenchmarkStatus `json:",inline"`
	// +optional
	Result *RDMABandwidthResult `json:"result,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:categories=perftest

type RDMABandwidth struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   RDMABandwidthSpec   `json:"spec,omitempty"`
	Status RDMABandwidthStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

type RDMABandwidthList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []RDMABandwidth `json:"items"`
}

func (b *RDMABandwidth) GetCommonSpec() *CommonSpec { return &b.Spec.RDMASpec.CommonSpec }
func (b *RDMABandwidth) GetBenchmarkStatus() *BenchmarkStatus {
	return &b.Status.BenchmarkStatus
}

var _ Benchmark = &RDMABandwidth{}

// RDMALatencyResult is the minimum-latency row of ib_*_lat's table.
type RDMALatencyResult struct {
	RDMAMessageResult `json:",inline"`
	MinimumUsec     float64 `json:"minimumUsec"`
	MaximumUsec     float64 `json:"maximumUsec"`
	TypicalUsec     float64 `json:"typicalUsec"`
	AverageUsec     float64 `json:"averageUsec"`
	StdDevUsec      float64 `json:"stdDevUsec"`
	Percentile99Usec   float64 `json:"percentile99Usec"`
	Percentile999Usec  float64 `json:"percentile999Usec"`
}

type RDMALatencyStatus struct {
	BenchmarkStatus `json:",inline"`
	// +optional
	Result *RDMALatencyResult `json:"result,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:categories=perftest

type RDMALatency struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   RDMASpec          `json:"spec,omitempty"`
	Status RDMALatencyStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

type RDMALatencyList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []RDMALatency `json:"items"`
}

func (b *RDMALatency) GetCommonSpec() *CommonSpec          { return &b.Spec.CommonSpec }
func (b *RDMALatency) GetBenchmarkStatus() *BenchmarkStatus { return &b.Status.BenchmarkStatus }

var _ Benchmark = &RDMALatency{}
