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

package template

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	volcanobatchv1alpha1 "volcano.sh/apis/pkg/apis/batch/v1alpha1"

	perftestv1alpha1 "github.com/stackhpc/kube-perftest-operator/pkg/apis/perftest/v1alpha1"
	"github.com/stackhpc/kube-perftest-operator/pkg/config"
)

const pytorchTask = "worker"

// RenderPyTorch builds the single-pod, single-task Job that runs the
// model's micro-benchmark under GNU time; no Service or discovery
// ConfigMap is needed since there is nothing to discover.
func RenderPyTorch(obj perftestv1alpha1.Benchmark, cfg config.Configuration) (*Rendered, error) {
	b, ok := obj.(*perftestv1alpha1.PyTorch)
	if !ok {
		return nil, &ConfigurationError{Message: fmt.Sprintf("RenderPyTorch called with %T", obj)}
	}
	if err := ValidateCommonSpec(&b.Spec.CommonSpec); err != nil {
		return nil, err
	}

	namespace, name := b.Namespace, b.Name
	owner := OwnerReference(b, "PyTorch")

	device := b.Spec.Device
	if device == "" {
		device = perftestv1alpha1.PyTorchDeviceCPU
	}
	benchmarkType := b.Spec.BenchmarkType
	if benchmarkType == "" {
		benchmarkType = perftestv1alpha1.PyTorchBenchmarkTrain
	}

	args := []string{"-v", "python3", "-m", "perftest.pytorch_benchmark",
		"--model", string(b.Spec.Model),
		"--device", string(device),
		"--type", string(benchmarkType),
		"--batch-size", fmt.Sprintf("%d", b.Spec.InputBatchSize),
	}
	container := BaseContainer(&b.Spec.CommonSpec, "benchmark", []string{"/usr/bin/time"}, args)
	if device == perftestv1alpha1.PyTorchDeviceCUDA {
		container.Resources.Limits = extendWithGPU(container.Resources.Limits)
	}

	task := buildTask(b, cfg, pytorchTask, 1, []corev1.Container{container}, nil)
	task.Policies = CompleteOnTaskCompleted()

	job := NewJob(cfg, namespace, name, b.Status.PriorityClassName, 1)
	job.OwnerReferences = []metav1.OwnerReference{owner}
	job.Spec.Tasks = []volcanobatchv1alpha1.TaskSpec{task}

	return &Rendered{Job: job}, nil
}

// extendWithGPU ensures a GPU is requested even when the benchmark's own
// Resources field didn't list one, since CUDA device selection is
// meaningless without a scheduled GPU.
func extendWithGPU(limits corev1.ResourceList) corev1.ResourceList {
	if limits == nil {
		limits = corev1.ResourceList{}
	}
	if _, ok := limits["nvidia.com/gpu"]; !ok {
		limits["nvidia.com/gpu"] = resourceQuantityOne()
	}
	return limits
}
