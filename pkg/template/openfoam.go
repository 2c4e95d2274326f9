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

// RenderOpenFOAM builds a worker task running sshd, replicated NumNodes
// times, and a separate single-replica launcher task that runs the case's
// /case/run.sh under mpirun -np NumProcs (wrapped in GNU time), reading
// peers from the discovery ConfigMap and, if SSHPort is set, the port from
// the ssh_config override ConfigMap.
func RenderOpenFOAM(obj perftestv1alpha1.Benchmark, cfg config.Configuration) (*Rendered, error) {
	b, ok := obj.(*perftestv1alpha1.OpenFOAM)
	if !ok {
		return nil, &ConfigurationError{Message: fmt.Sprintf("RenderOpenFOAM called with %T", obj)}
	}
	if err := ValidateCommonSpec(&b.Spec.CommonSpec); err != nil {
		return nil, err
	}

	namespace, name := b.Namespace, b.Name
	owner := OwnerReference(b, "OpenFOAM")

	numNodes := b.Spec.NumNodes
	if numNodes == 0 {
		numNodes = 1
	}

	workerContainer := BaseContainer(&b.Spec.CommonSpec, "sshd", []string{"/usr/sbin/sshd"}, []string{"-D"})
	worker := buildTask(b, cfg, mpiWorkerTask, numNodes, []corev1.Container{workerContainer}, nil)
	worker.Template.Spec.Volumes = append(worker.Template.Spec.Volumes, DiscoveryVolume(name+"-discovery"))

	launcherArgs := []string{
		"-np", fmt.Sprintf("%d", b.Spec.NumProcs),
		"-hostfile", "/etc/perftest/hosts",
		"--allow-run-as-root",
	}
	if b.Spec.Transport == perftestv1alpha1.MPITransportRDMA {
		launcherArgs = append([]string{"-mca", "pml", "ucx"}, launcherArgs...)
	}
	launcherArgs = append(launcherArgs, "/case/run.sh",
		string(b.Spec.ProblemSize), string(b.Spec.IterativeMethod))

	launcherTime := BaseContainer(&b.Spec.CommonSpec, "gnu-time", []string{"/usr/bin/time"},
		append([]string{"-v", "mpirun"}, launcherArgs...))
	launcherTime.VolumeMounts = append(launcherTime.VolumeMounts, DiscoveryVolumeMount(), DiscoveryHostsMount())

	sshPort := b.Spec.SSHPort
	if sshPort == 0 {
		sshPort = mpiSSHPort
	}
	launcherInit := append(
		[]corev1.Container{WaitForPeersInitContainer(cfg.DiscoveryContainerImage, numNodes)},
		WaitForPortInitContainers(cfg.DiscoveryContainerImage, peerAddressesWithPort(PeerAddresses(name, mpiWorkerTask, numNodes), sshPort))...,
	)

	var ssh *corev1.ConfigMap
	if b.Spec.SSHPort != 0 {
		ssh = SSHConfigMap(cfg, "OpenFOAM", namespace, name, b.Spec.SSHPort)
		ssh.OwnerReferences = []metav1.OwnerReference{owner}
		launcherTime.VolumeMounts = append(launcherTime.VolumeMounts, corev1.VolumeMount{
			Name:      "ssh-config",
			MountPath: "/root/.ssh",
			ReadOnly:  true,
		})
	}

	launcher := buildTask(b, cfg, "launcher", 1, []corev1.Container{launcherTime}, launcherInit)
	launcher.Template.Spec.Volumes = append(launcher.Template.Spec.Volumes, DiscoveryVolume(name+"-discovery"))
	if ssh != nil {
		launcher.Template.Spec.Volumes = append(launcher.Template.Spec.Volumes, corev1.Volume{
			Name: "ssh-config",
			VolumeSource: corev1.VolumeSource{
				ConfigMap: &corev1.ConfigMapVolumeSource{
					LocalObjectReference: corev1.LocalObjectReference{Name: ssh.Name},
				},
			},
		})
	}
	launcher.Policies = CompleteOnTaskCompleted()

	job := NewJob(cfg, namespace, name, b.Status.PriorityClassName, numNodes+1)
	job.OwnerReferences = []metav1.OwnerReference{owner}
	job.Spec.Tasks = []volcanobatchv1alpha1.TaskSpec{worker, launcher}

	cm := DiscoveryConfigMap(cfg, "OpenFOAM", namespace, name, map[string]int32{mpiWorkerTask: numNodes, "launcher": 1})
	cm.OwnerReferences = []metav1.OwnerReference{owner}

	return &Rendered{Job: job, ConfigMap: cm, SSHConfigMap: ssh}, nil
}
