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
)

type FioRW string

const (
	FioRWRead      FioRW = "read"
	FioRWWrite     FioRW = "write"
	FioRWRandRead  FioRW = "randread"
	FioRWRandWrite FioRW = "randwrite"
	FioRWReadWrite FioRW = "readwrite"
)

type FioIOEngine string

const (
	FioIOEngineLibAIO FioIOEngine = "libaio"
	FioIOEngineSync   FioIOEngine = "sync"
	FioIOEnginePOSIXAIO FioIOEngine = "posixaio"
)

// FioSpec configures a fio client/server benchmark against a shared
// volume. When NumWorkers > 1 and the VolumeClaimTemplate requests
// ReadWriteMany, exactly one PersistentVolumeClaim is created and mounted
// by every worker (see pkg/template).
type FioSpec struct {
	CommonSpec `json:",inline"`

	// FioPort is the port fio's client/server protocol listens on.
	// +optional
	FioPort int32 `json:"fioPort,omitempty"`

	// VolumeClaimTemplate is used verbatim to create the benchmark's PVC.
	VolumeClaimTemplate corev1.PersistentVolumeClaimSpec `json:"volumeClaimTemplate"`

	// +optional
	NumWorkers int32 `json:"numWorkers,omitempty"`

	RW FioRW `json:"rw"`

	// +optional
	BlockSize string `json:"bs,omitempty"`

	// +optional
	IODepth int32 `json:"iodepth,omitempty"`

	// +optional
	IOEngine FioIOEngine `json:"ioengine,omitempty"`

	// +optional
	NrFiles int32 `json:"nrfiles,omitempty"`

	// +optional
	RWMixRead int32 `json:"rwmixread,omitempty"`

	// +optional
	PercentageRandom int32 `json:"percentageRandom,omitempty"`

	// +optional
	Direct bool `json:"direct,omitempty"`

	// Runtime in seconds.
	// +optional
	Runtime int32 `json:"runtime,omitempty"`

	// +optional
	NumJobs int32 `json:"numJobs,omitempty"`

	// +optional
	Size string `json:"size,omitempty"`

	// +optional
	Thread bool `json:"thread,omitempty"`
}

// FioResult aggregates the "jobs" entries of fio's --output-format=json+
// report (a single entry is taken as is).
type FioResult struct {
	ReadBandwidthKBps   int64   `json:"readBandwidthKBps"`
	ReadIOPS             float64 `json:"readIOPS"`
	ReadLatencyMeanUsec  float64 `json:"readLatencyMeanUsec"`
	ReadLatencyStdDevUsec float64 `json:"readLatencyStdDevUsec"`
	WriteBandwidthKBps   int64   `json:"writeBandwidthKBps"`
	WriteIOPS             float64 `json:"writeIOPS"`
	WriteLatencyMeanUsec  float64 `json:"writeLatencyMeanUsec"`
	WriteLatencyStdDevUsec float64 `json:"writeLatencyStdDevUsec"`
}

type FioStatus struct {
	BenchmarkStatus `json:",inline"`
	// +optional
	Result *FioResult `json:"result,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:categories=perftest

type Fio struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   FioSpec   `json:"spec,omitempty"`
	Status FioStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

type FioList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Fio `json:"items"`
}

func (b *Fio) GetCommonSpec() *CommonSpec          { return &b.Spec.CommonSpec }
func (b *Fio) GetBenchmarkStatus() *BenchmarkStatus { return &b.Status.BenchmarkStatus }

var _ Benchmark = &Fio{}
