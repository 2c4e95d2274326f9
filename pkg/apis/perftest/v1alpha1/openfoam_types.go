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

// OpenFOAMProblemSize selects one of the standard benchmark case sizes.
type OpenFOAMProblemSize string

const (
	OpenFOAMProblemSizeS   OpenFOAMProblemSize = "S"
	OpenFOAMProblemSizeM   OpenFOAMProblemSize = "M"
	OpenFOAMProblemSizeXL  OpenFOAMProblemSize = "XL"
	OpenFOAMProblemSizeXXL OpenFOAMProblemSize = "XXL"
)

// OpenFOAMIterativeMethod selects the linear solver used by the case.
type OpenFOAMIterativeMethod string

const (
	OpenFOAMMethodGAMG           OpenFOAMIterativeMethod = "GAMG"
	OpenFOAMMethodPCG            OpenFOAMIterativeMethod = "PCG"
	OpenFOAMMethodPBiCG          OpenFOAMIterativeMethod = "PBiCG"
	OpenFOAMMethodSmoothSolver   OpenFOAMIterativeMethod = "smoothSolver"
	OpenFOAMMethodDiagonal       OpenFOAMIterativeMethod = "diagonal"
	OpenFOAMMethodFDIC           OpenFOAMIterativeMethod = "FDIC"
	OpenFOAMMethodDIC            OpenFOAMIterativeMethod = "DIC"
)

// OpenFOAMSpec runs a decomposed OpenFOAM case across num_nodes*num_procs
// ranks under mpirun.
type OpenFOAMSpec struct {
	CommonSpec `json:",inline"`

	// SSHPort is the port the launcher's ssh client and its wait-for-port
	// probes use to reach workers; when set, a separate "<name>-ssh-config"
	// ConfigMap mounted at /root/.ssh in the launcher carries it. The
	// workers' sshd is started without a port flag.
	// +optional
	SSHPort int32 `json:"sshPort,omitempty"`

	// +optional
	Transport MPITransport `json:"transport,omitempty"`

	ProblemSize OpenFOAMProblemSize `json:"problemSize"`

	// +optional
	IterativeMethod OpenFOAMIterativeMethod `json:"iterativeMethod,omitempty"`

	NumProcs int32 `json:"numProcs"`
	NumNodes int32 `json:"numNodes"`
}

// OpenFOAMResult is the elapsed, user and system time from the GNU time
// verbose report (/usr/bin/time -v) wrapping the launcher's mpirun run.
// OpenFOAM's own ExecutionTime/ClockTime line is not read.
type OpenFOAMResult struct {
	WallClockTimeSeconds float64 `json:"wallClockTimeSeconds"`
	UserTimeSeconds       float64 `json:"userTimeSeconds"`
	SysTimeSeconds         float64 `json:"sysTimeSeconds"`
}

type OpenFOAMStatus struct {
	BenchmarkStatus `json:",inline"`
	// +optional
	Result *OpenFOAMResult `json:"result,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:categories=perftest

type OpenFOAM struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   OpenFOAMSpec   `json:"spec,omitempty"`
	Status OpenFOAMStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

type OpenFOAMList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []OpenFOAM `json:"items"`
}

func (b *OpenFOAM) GetCommonSpec() *CommonSpec          { return &b.Spec.CommonSpec }
func (b *OpenFOAM) GetBenchmarkStatus() *BenchmarkStatus { return &b.Status.BenchmarkStatus }

var _ Benchmark = &OpenFOAM{}
