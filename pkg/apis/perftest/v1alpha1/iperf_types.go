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

// IPerfMode selects whether the client dials the server pod directly or
// through its headless service (exercising kube-proxy/DNS in the path).
type IPerfMode string

const (
	IPerfModePodToPod     IPerfMode = "PodToPod"
	IPerfModePodToService IPerfMode = "PodToService"
)

// IPerfSpec is the desired state of an IPerf benchmark.
type IPerfSpec struct {
	CommonSpec `json:",inline"`

	// +optional
	Mode IPerfMode `json:"mode,omitempty"`

	// Duration is the test length in seconds, passed to iperf3 -t.
	Duration int32 `json:"duration"`

	// Streams is the number of parallel streams, passed to iperf3 -P.
	// +optional
	Streams int32 `json:"streams,omitempty"`
}

// IPerfStreamResult is one line of iperf3's per-stream summary.
type IPerfStreamResult struct {
	TransferKBytes int64 `json:"transferKBytes"`
	BandwidthKbps  int64 `json:"bandwidthKbps"`
}

// IPerfResult is the parsed outcome of the client's SUM line.
type IPerfResult struct {
	Streams map[string]IPerfStreamResult `json:"streams,omitempty"`
	Sum     IPerfStreamResult            `json:"sum"`
	// BandwidthGbps is Sum.BandwidthKbps rescaled to Gbit/s with two
	// decimal places, e.g. "0.98".
	BandwidthGbps string `json:"bandwidthGbps"`
}

// IPerfStatus is the observed state of an IPerf benchmark.
type IPerfStatus struct {
	BenchmarkStatus `json:",inline"`

	// +optional
	Result *IPerfResult `json:"result,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:categories=perftest

// IPerf runs an iperf3 client/server pair and records the summary
// bandwidth.
type IPerf struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   IPerfSpec   `json:"spec,omitempty"`
	Status IPerfStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// IPerfList is a list of IPerf resources.
type IPerfList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []IPerf `json:"items"`
}

func (b *IPerf) GetCommonSpec() *CommonSpec            { return &b.Spec.CommonSpec }
func (b *IPerf) GetBenchmarkStatus() *BenchmarkStatus   { return &b.Status.BenchmarkStatus }

var _ Benchmark = &IPerf{}
