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

type PyTorchDevice string

const (
	PyTorchDeviceCPU  PyTorchDevice = "cpu"
	PyTorchDeviceCUDA PyTorchDevice = "cuda"
)

type PyTorchModel string

const (
	PyTorchModelAlexNet  PyTorchModel = "alexnet"
	PyTorchModelResNet50 PyTorchModel = "resnet50"
	PyTorchModelLLaMA    PyTorchModel = "llama"
)

type PyTorchBenchmarkType string

const (
	PyTorchBenchmarkTrain PyTorchBenchmarkType = "train"
	PyTorchBenchmarkEval  PyTorchBenchmarkType = "eval"
)

// PyTorchSpec runs a single-pod PyTorch micro-benchmark under GNU time.
type PyTorchSpec struct {
	CommonSpec `json:",inline"`

	// +optional
	Device PyTorchDevice `json:"device,omitempty"`

	Model PyTorchModel `json:"model"`

	// +optional
	BenchmarkType PyTorchBenchmarkType `json:"benchmarkType,omitempty"`

	// InputBatchSize must be even and >= 2.
	InputBatchSize int32 `json:"inputBatchSize"`
}

// GnuTimeResult is the parsed output of GNU time's verbose (-v) report.
type GnuTimeResult struct {
	Command        string  `json:"command"`
	UserTimeSeconds float64 `json:"userTimeSeconds"`
	SysTimeSeconds  float64 `json:"sysTimeSeconds"`
	CPUPercentage   int32   `json:"cpuPercentage"`
	WallTimeSeconds float64 `json:"wallTimeSeconds"`
}

// PyTorchResult is read from the benchmark's "CPU Wall Time"/"CPU Peak
// Memory"/"GPU Time"/"GPU Peak Memory" banner lines.
type PyTorchResult struct {
	CPUTimeSeconds    float64        `json:"cpuTimeSeconds"`
	PeakCPUMemoryGB   float64        `json:"peakCPUMemoryGB"`
	GPUTimeSeconds    *float64       `json:"gpuTimeSeconds,omitempty"`
	PeakGPUMemoryGB   *float64       `json:"peakGPUMemoryGB,omitempty"`
	GnuTime           *GnuTimeResult `json:"gnuTime,omitempty"`
}

type PyTorchStatus struct {
	BenchmarkStatus `json:",inline"`
	// +optional
	Result *PyTorchResult `json:"result,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:categories=perftest

type PyTorch struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   PyTorchSpec   `json:"spec,omitempty"`
	Status PyTorchStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

type PyTorchList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []PyTorch `json:"items"`
}

func (b *PyTorch) GetCommonSpec() *CommonSpec          { return &b.Spec.CommonSpec }
func (b *PyTorch) GetBenchmarkStatus() *BenchmarkStatus { return &b.Status.BenchmarkStatus }

var _ Benchmark = &PyTorch{}
