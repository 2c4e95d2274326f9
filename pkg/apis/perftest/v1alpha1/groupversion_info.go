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

// Package v1alpha1 contains the perftest.stackhpc.com/v1alpha1 API group:
// the benchmark custom resources (IPerf, MPIPingPong, OpenFOAM,
// RDMABandwidth, RDMALatency, Fio, PyTorch) and BenchmarkSet.
// +kubebuilder:object:generate=true
package v1alpha1

import (
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/scheme"
)

const GroupName = "perftest.stackhpc.com"

var (
	// SchemeGroupVersion is the API group and version used to register types.
	SchemeGroupVersion = schema.GroupVersion{Group: GroupName, Version: "v1alpha1"}

	// SchemeBuilder collects functions that add things to a scheme.
	SchemeBuilder = &scheme.Builder{GroupVersion: SchemeGroupVersion}

	// AddToScheme applies all the stored functions to the scheme.
	AddToScheme = SchemeBuilder.AddToScheme
)

func init() {
	SchemeBuilder.Register(
		&IPerf{}, &IPerfList{},
		&MPIPingPong{}, &MPIPingPongList{},
		&OpenFOAM{}, &OpenFOAMList{},
		&RDMABandwidth{}, &RDMABandwidthList{},
		&RDMALatency{}, &RDMALatencyList{},
		&Fio{}, &FioList{},
		&PyTorch{}, &PyTorchList{},
		&BenchmarkSet{}, &BenchmarkSetList{},
	)
}

// Kind string constants, matching the literal CRD kind names used by the
// registry (pkg/registry) to dispatch renderers and parsers.
const (
	KindIPerf         = "IPerf"
	KindMPIPingPong    = "MPIPingPong"
	KindOpenFOAM       = "OpenFOAM"
	KindRDMABandwidth  = "RDMABandwidth"
	KindRDMALatency    = "RDMALatency"
	KindFio            = "Fio"
	KindPyTorch        = "PyTorch"
	KindBenchmarkSet   = "BenchmarkSet"
)
