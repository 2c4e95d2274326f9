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
	"fmt"

	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"

	perftestv1alpha1 "github.com/stackhpc/kube-perftest-operator/pkg/apis/perftest/v1alpha1"
	"github.com/stackhpc/kube-perftest-operator/pkg/parse"
	"github.com/stackhpc/kube-perftest-operator/pkg/registry"
	"github.com/stackhpc/kube-perftest-operator/pkg/template"
)

// RegisterKinds populates pkg/registry with an Entry for every benchmark
// kind this operator knows how to run. Called once from main before the
// manager starts.
func RegisterKinds() {
	registry.Register(registry.Entry{
		Kind:            "IPerf",
		NewObject:       func() perftestv1alpha1.Benchmark { return &perftestv1alpha1.IPerf{} },
		NewList:         func() client.ObjectList { return &perftestv1alpha1.IPerfList{} },
		Render:          template.RenderIPerf,
		ResultComponent: "client",
		ResultContainer: "iperf3",
		Parse:           wrap(parse.IPerf),
		SetResult: func(obj perftestv1alpha1.Benchmark, result interface{}) error {
			b, ok := obj.(*perftestv1alpha1.IPerf)
			r, rok := result.(*perftestv1alpha1.IPerfResult)
			if !ok || !rok {
				return fmt.Errorf("SetResult: unexpected types %T, %T", obj, result)
			}
			b.Status.Result = r
			return nil
		},
	})

	registry.Register(registry.Entry{
		Kind:            "MPIPingPong",
		NewObject:       func() perftestv1alpha1.Benchmark { return &perftestv1alpha1.MPIPingPong{} },
		NewList:         func() client.ObjectList { return &perftestv1alpha1.MPIPingPongList{} },
		Render:          template.RenderMPIPingPong,
		ResultComponent: "launcher",
		ResultContainer: "mpirun",
		Parse:           wrap(parse.MPIPingPong),
		SetResult: func(obj perftestv1alpha1.Benchmark, result interface{}) error {
			b, ok := obj.(*perftestv1alpha1.MPIPingPong)
			r, rok := result.(*perftestv1alpha1.MPIPingPongResult)
			if !ok || !rok {
				return fmt.Errorf("SetResult: unexpected types %T, %T", obj, result)
			}
			b.Status.Result = r
			return nil
		},
	})

	registry.Register(registry.Entry{
		Kind:            "RDMABandwidth",
		NewObject:       func() perftestv1alpha1.Benchmark { return &perftestv1alpha1.RDMABandwidth{} },
		NewList:         func() client.ObjectList { return &perftestv1alpha1.RDMABandwidthList{} },
		Render:          template.RenderRDMABandwidth,
		ResultComponent: "client",
		ResultContainer: "ib_write_bw",
		Parse:           wrap(parse.RDMABandwidth),
		SetResult: func(obj perftestv1alpha1.Benchmark, result interface{}) error {
			b, ok := obj.(*perftestv1alpha1.RDMABandwidth)
			r, rok := result.(*perftestv1alpha1.RDMABandwidthResult)
			if !ok || !rok {
				return fmt.Errorf("SetResult: unexpected types %T, %T", obj, result)
			}
			b.Status.Result = r
			return nil
		},
	})

	registry.Register(registry.Entry{
		Kind:            "RDMALatency",
		NewObject:       func() perftestv1alpha1.Benchmark { return &perftestv1alpha1.RDMALatency{} },
		NewList:         func() client.ObjectList { return &perftestv1alpha1.RDMALatencyList{} },
		Render:          template.RenderRDMALatency,
		ResultComponent: "client",
		ResultContainer: "ib_write_lat",
		Parse:           wrap(parse.RDMALatency),
		SetResult: func(obj perftestv1alpha1.Benchmark, result interface{}) error {
			b, ok := obj.(*perftestv1alpha1.RDMALatency)
			r, rok := result.(*perftestv1alpha1.RDMALatencyResult)
			if !ok || !rok {
				return fmt.Errorf("SetResult: unexpected types %T, %T", obj, result)
			}
			b.Status.Result = r
			return nil
		},
	})

	registry.Register(registry.Entry{
		Kind:            "OpenFOAM",
		NewObject:       func() perftestv1alpha1.Benchmark { return &perftestv1alpha1.OpenFOAM{} },
		NewList:         func() client.ObjectList { return &perftestv1alpha1.OpenFOAMList{} },
		Render:          template.RenderOpenFOAM,
		ResultComponent: "launcher",
		ResultContainer: "gnu-time",
		Parse:           wrap(parse.OpenFOAM),
		SetResult: func(obj perftestv1alpha1.Benchmark, result interface{}) error {
			b, ok := obj.(*perftestv1alpha1.OpenFOAM)
			r, rok := result.(*perftestv1alpha1.OpenFOAMResult)
			if !ok || !rok {
				return fmt.Errorf("SetResult: unexpected types %T, %T", obj, result)
			}
			b.Status.Result = r
			return nil
		},
	})

	registry.Register(registry.Entry{
		Kind:            "Fio",
		NewObject:       func() perftestv1alpha1.Benchmark { return &perftestv1alpha1.Fio{} },
		NewList:         func() client.ObjectList { return &perftestv1alpha1.FioList{} },
		Render:          template.RenderFio,
		ResultComponent: "client",
		ResultContainer: "fio",
		Parse:           wrap(parse.Fio),
		SetResult: func(obj perftestv1alpha1.Benchmark, result interface{}) error {
			b, ok := obj.(*perftestv1alpha1.Fio)
			r, rok := result.(*perftestv1alpha1.FioResult)
			if !ok || !rok {
				return fmt.Errorf("SetResult: unexpected types %T, %T", obj, result)
			}
			b.Status.Result = r
			return nil
		},
	})

	registry.Register(registry.Entry{
		Kind:            "PyTorch",
		NewObject:       func() perftestv1alpha1.Benchmark { return &perftestv1alpha1.PyTorch{} },
		NewList:         func() client.ObjectList { return &perftestv1alpha1.PyTorchList{} },
		Render:          template.RenderPyTorch,
		ResultComponent: "worker",
		ResultContainer: "benchmark",
		Parse:           wrap(parse.PyTorch),
		SetResult: func(obj perftestv1alpha1.Benchmark, result interface{}) error {
			b, ok := obj.(*perftestv1alpha1.PyTorch)
			r, rok := result.(*perftestv1alpha1.PyTorchResult)
			if !ok || !rok {
				return fmt.Errorf("SetResult: unexpected types %T, %T", obj, result)
			}
			b.Status.Result = r
			return nil
		},
		DefaultOverlay: apiextensionsv1.JSON{},
	})
}

// wrap adapts a kind's strongly typed parser to registry.Parser's
// interface{}-returning signature without losing the concrete *T the
// typed error checks in benchmark_controller.go depend on.
func wrap[T any](fn func(string) (T, error)) registry.Parser {
	return func(logs string) (interface{}, error) {
		return fn(logs)
	}
}
