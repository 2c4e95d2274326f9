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
	iperfServerTask = "server"
	iperfClientTask = "client"
	iperfPort       = 5201
)

// RenderIPerf builds the two-task gang Job (server, client) that drives an
// iperf3 benchmark, plus the headless Service the client dials in
// PodToService mode and the discovery ConfigMap it reads the server's pod
// IP from in PodToPod mode.
func RenderIPerf(obj perftestv1alpha1.Benchmark, cfg config.Configuration) (*Rendered, error) {
	b, ok := obj.(*perftestv1alpha1.IPerf)
	if !ok {
		return nil, &ConfigurationError{Message: fmt.Sprintf("RenderIPerf called with %T", obj)}
	}
	if err := ValidateCommonSpec(&b.Spec.CommonSpec); err != nil {
		return nil, err
	}

	namespace, name := b.Namespace, b.Name
	owner := OwnerReference(b, "IPerf")

	serverArgs := []string{"-s", "-p", fmt.Sprintf("%d", iperfPort)}
	target := fmt.Sprintf("%s-%s-0", name, iperfServerTask)
	if b.Spec.Mode == perftestv1alpha1.IPerfModePodToService {
		target = fmt.Sprintf("%s.%s", name, namespace)
	}
	streams := b.Spec.Streams
	if streams == 0 {
		streams = 1
	}
	clientArgs := []string{
		"-c", target,
		"-p", fmt.Sprintf("%d", iperfPort),
		"-t", fmt.Sprintf("%d", b.Spec.Duration),
		"-P", fmt.Sprintf("%d", streams),
		"-f", "k",
	}

	serverTask := buildTask(b, cfg, iperfServerTask, 1, []corev1.Container{
		BaseContainer(&b.Spec.CommonSpec, "iperf3", []string{"iperf3"}, serverArgs),
	}, nil)

	clientContainer := BaseContainer(&b.Spec.CommonSpec, "iperf3", []string{"iperf3"}, clientArgs)
	var clientInit []corev1.Container
	if b.Spec.Mode != perftestv1alpha1.IPerfModePodToService {
		clientContainer.VolumeMounts = append(clientContainer.VolumeMounts, DiscoveryHostsMount())
		clientInit = append(clientInit,
			WaitForPeersInitContainer(cfg.DiscoveryContainerImage, 2),
			WaitForPortInitContainer(cfg.DiscoveryContainerImage, "wait-for-port", fmt.Sprintf("%s:%d", target, iperfPort)),
		)
	}
	clientTask := buildTask(b, cfg, iperfClientTask, 1, []corev1.Container{clientContainer}, clientInit)
	clientTask.Policies = CompleteOnTaskCompleted()
	if b.Spec.Mode != perftestv1alpha1.IPerfModePodToService {
		clientTask.Template.Spec.Volumes = append(clientTask.Template.Spec.Volumes, DiscoveryVolume(name+"-discovery"))
	}

	job := NewJob(cfg, namespace, name, b.Status.PriorityClassName, 2)
	job.OwnerReferences = []metav1.OwnerReference{owner}
	job.Spec.Tasks = []volcanobatchv1alpha1.TaskSpec{serverTask, clientTask}

	rendered := &Rendered{Job: job}
	if b.Spec.Mode == perftestv1alpha1.IPerfModePodToService {
		svc := HeadlessService(cfg, "IPerf", namespace, name)
		svc.OwnerReferences = []metav1.OwnerReference{owner}
		rendered.Service = svc
	} else {
		cm := DiscoveryConfigMap(cfg, "IPerf", namespace, name, map[string]int32{iperfServerTask: 1, iperfClientTask: 1})
		cm.OwnerReferences = []metav1.OwnerReference{owner}
		rendered.ConfigMap = cm
	}
	return rendered, nil
}

// buildTask is the shared helper every kind uses to wrap a set of
// containers into a Volcano TaskSpec, applying MTU, networking and gang
// scheduling decoration consistently.
func buildTask(obj perftestv1alpha1.Benchmark, cfg config.Configuration, taskName string, replicas int32, containers, initContainers []corev1.Container) volcanobatchv1alpha1.TaskSpec {
	spec := obj.GetCommonSpec()
	if spec.MTU != nil {
		initContainers = append([]corev1.Container{MTUInitContainer(*spec.MTU, "")}, initContainers...)
	}

	kind := kindOf(obj)
	namespace, name := obj.GetNamespace(), obj.GetName()

	pts := corev1.PodTemplateSpec{
		ObjectMeta: metav1.ObjectMeta{
			Labels: ComponentLabels(cfg, kind, namespace, name, taskName),
		},
		Spec: corev1.PodSpec{
			RestartPolicy:  corev1.RestartPolicyNever,
			Containers:     containers,
			InitContainers: initContainers,
		},
	}
	ApplyNetworking(&pts, spec)
	DecorateTask(&pts, cfg, name, taskName)

	if pureNetworkKinds[kind] {
		pts.Spec.Affinity = ExclusiveAffinity(cfg)
	} else {
		pts.Spec.Affinity, pts.Spec.TopologySpreadConstraints = SpreadAffinity(cfg, kind, namespace, name, taskName)
	}

	return volcanobatchv1alpha1.TaskSpec{
		Name:     taskName,
		Replicas: replicas,
		Template: pts,
	}
}

// kindOf returns the CRD kind name for a Benchmark value, used to build
// identity labels without requiring a populated TypeMeta.
func kindOf(obj perftestv1alpha1.Benchmark) string {
	switch obj.(type) {
	case *perftestv1alpha1.IPerf:
		return "IPerf"
	case *perftestv1alpha1.MPIPingPong:
		return "MPIPingPong"
	case *perftestv1alpha1.RDMABandwidth:
		return "RDMABandwidth"
	case *perftestv1alpha1.RDMALatency:
		return "RDMALatency"
	case *perftestv1alpha1.OpenFOAM:
		return "OpenFOAM"
	case *perftestv1alpha1.Fio:
		return "Fio"
	case *perftestv1alpha1.PyTorch:
		return "PyTorch"
	default:
		return "Unknown"
	}
}
