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

const (
	rdmaServerTask = "server"
	rdmaClientTask = "client"
	// rdmaPort is perftest's default TCP port for the out-of-band RDMA CM
	// handshake ib_write_bw/ib_read_bw/ib_write_lat/ib_read_lat all use
	// before the RDMA transfer itself starts.
	rdmaPort = 18515
)

// RenderRDMABandwidth builds the server/client task pair running
// ib_write_bw or ib_read_bw, per Spec.Mode.
func RenderRDMABandwidth(obj perftestv1alpha1.Benchmark, cfg config.Configuration) (*Rendered, error) {
	b, ok := obj.(*perftestv1alpha1.RDMABandwidth)
	if !ok {
		return nil, &ConfigurationError{Message: fmt.Sprintf("RenderRDMABandwidth called with %T", obj)}
	}
	if err := ValidateCommonSpec(&b.Spec.CommonSpec); err != nil {
		return nil, err
	}

	binary := "ib_write_bw"
	if b.Spec.Mode == perftestv1alpha1.RDMAModeRead {
		binary = "ib_read_bw"
	}
	iterations := b.Spec.Iterations
	if iterations == 0 {
		iterations = 1000
	}

	serverArgs := []string{}
	clientArgs := []string{fmt.Sprintf("%s-%s-0", b.Name, rdmaServerTask)}
	if b.Spec.QPs > 0 {
		qp := fmt.Sprintf("%d", b.Spec.QPs)
		serverArgs = append(serverArgs, "-q", qp)
		clientArgs = append(clientArgs, "-q", qp)
	}
	nFlag := []string{"-n", fmt.Sprintf("%d", iterations)}
	serverArgs = append(serverArgs, nFlag...)
	clientArgs = append(clientArgs, nFlag...)
	serverArgs = append(serverArgs, b.Spec.ExtraArgs...)
	clientArgs = append(clientArgs, b.Spec.ExtraArgs...)

	return renderRDMAPair(b, &b.Spec.RDMASpec, cfg, "RDMABandwidth", binary, serverArgs, clientArgs)
}

// RenderRDMALatency builds the server/client task pair running
// ib_write_lat or ib_read_lat.
func RenderRDMALatency(obj perftestv1alpha1.Benchmark, cfg config.Configuration) (*Rendered, error) {
	b, ok := obj.(*perftestv1alpha1.RDMALatency)
	if !ok {
		return nil, &ConfigurationError{Message: fmt.Sprintf("RenderRDMALatency called with %T", obj)}
	}
	if err := ValidateCommonSpec(&b.Spec.CommonSpec); err != nil {
		return nil, err
	}

	binary := "ib_write_lat"
	if b.Spec.Mode == perftestv1alpha1.RDMAModeRead {
		binary = "ib_read_lat"
	}
	iterations := b.Spec.Iterations
	if iterations == 0 {
		iterations = 1000
	}

	nFlag := []string{"-n", fmt.Sprintf("%d", iterations)}
	serverArgs := append(append([]string{}, nFlag...), b.Spec.ExtraArgs...)
	clientArgs := append(append([]string{fmt.Sprintf("%s-%s-0", b.Name, rdmaServerTask)}, nFlag...), b.Spec.ExtraArgs...)

	return renderRDMAPair(b, &b.Spec, cfg, "RDMALatency", binary, serverArgs, clientArgs)
}

func renderRDMAPair(obj perftestv1alpha1.Benchmark, spec *perftestv1alpha1.RDMASpec, cfg config.Configuration, kind, binary string, serverArgs, clientArgs []string) (*Rendered, error) {
	namespace, name := obj.GetNamespace(), obj.GetName()
	owner := OwnerReference(obj, kind)

	serverTask := buildTask(obj, cfg, rdmaServerTask, 1, []corev1.Container{
		BaseContainer(&spec.CommonSpec, binary, []string{binary}, serverArgs),
	}, nil)

	clientContainer := BaseContainer(&spec.CommonSpec, binary, []string{binary}, clientArgs)
	clientContainer.VolumeMounts = append(clientContainer.VolumeMounts, DiscoveryHostsMount())
	serverAddr := fmt.Sprintf("%s-%s-0", name, rdmaServerTask)
	clientTask := buildTask(obj, cfg, rdmaClientTask, 1, []corev1.Container{clientContainer},
		[]corev1.Container{
			WaitForPeersInitContainer(cfg.DiscoveryContainerImage, 2),
			WaitForPortInitContainer(cfg.DiscoveryContainerImage, "wait-for-port", fmt.Sprintf("%s:%d", serverAddr, rdmaPort)),
		})
	clientTask.Policies = CompleteOnTaskCompleted()
	clientTask.Template.Spec.Volumes = append(clientTask.Template.Spec.Volumes, DiscoveryVolume(name+"-discovery"))

	job := NewJob(cfg, namespace, name, obj.GetBenchmarkStatus().PriorityClassName, 2)
	job.OwnerReferences = []metav1.OwnerReference{owner}
	job.Spec.Tasks = []volcanobatchv1alpha1.TaskSpec{serverTask, clientTask}

	cm := DiscoveryConfigMap(cfg, kind, namespace, name, map[string]int32{rdmaServerTask: 1, rdmaClientTask: 1})
	cm.OwnerReferences = []metav1.OwnerReference{owner}

	return &Rendered{Job: job, ConfigMap: cm}, nil
}
