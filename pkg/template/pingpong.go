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

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	volcanobatchv1alpha1 "volcano.sh/apis/pkg/apis/batch/v1alpha1"

	corev1 "k8s.io/api/core/v1"

	perftestv1alpha1 "github.com/stackhpc/kube-perftest-operator/pkg/apis/perftest/v1alpha1"
	"github.com/stackhpc/kube-perftest-operator/pkg/config"
)

const (
	mpiWorkerTask = "worker"
	// mpiSSHPort is sshd's standard listening port, used by the launcher's
	// mpirun to reach every worker.
	mpiSSHPort = 22
)

// RenderMPIPingPong builds a worker task running sshd, replicated NumProcs
// times, and a separate single-replica launcher task that runs mpirun
// across the hosts the discovery ConfigMap lists, driving IMB-MPI1's
// PingPong benchmark over ssh.
func RenderMPIPingPong(obj perftestv1alpha1.Benchmark, cfg config.Configuration) (*Rendered, error) {
	b, ok := obj.(*perftestv1alpha1.MPIPingPong)
	if !ok {
		return nil, &ConfigurationError{Message: fmt.Sprintf("RenderMPIPingPong called with %T", obj)}
	}
	if err := ValidateCommonSpec(&b.Spec.CommonSpec); err != nil {
		return nil, err
	}

	namespace, name := b.Namespace, b.Name
	owner := OwnerReference(b, "MPIPingPong")

	numProcs := b.Spec.NumProcs
	if numProcs == 0 {
		numProcs = 2
	}

	workerContainer := BaseContainer(&b.Spec.CommonSpec, "sshd", []string{"/usr/sbin/sshd"}, []string{"-D"})

	launcherCommand := []string{"mpirun"}
	launcherArgs := []string{
		"-np", fmt.Sprintf("%d", numProcs),
		"-hostfile", "/etc/perftest/hosts",
		"IMB-MPI1", "PingPong",
	}
	if b.Spec.Transport == perftestv1alpha1.MPITransportRDMA {
		launcherArgs = append([]string{"-mca", "pml", "ucx"}, launcherArgs...)
	}
	launcherContainer := BaseContainer(&b.Spec.CommonSpec, "mpirun", launcherCommand, launcherArgs)
	launcherContainer.VolumeMounts = append(launcherContainer.VolumeMounts, DiscoveryVolumeMount(), DiscoveryHostsMount())

	worker := buildTask(b, cfg, mpiWorkerTask, numProcs, []corev1.Container{workerContainer}, nil)
	worker.Template.Spec.Volumes = append(worker.Template.Spec.Volumes, DiscoveryVolume(name+"-discovery"))

	launcherTaskName := "launcher"
	launcherInit := append(
		[]corev1.Container{WaitForPeersInitContainer(cfg.DiscoveryContainerImage, numProcs)},
		WaitForPortInitContainers(cfg.DiscoveryContainerImage, peerAddressesWithPort(PeerAddresses(name, mpiWorkerTask, numProcs), mpiSSHPort))...,
	)
	launcher := buildTask(b, cfg, launcherTaskName, 1, []corev1.Container{launcherContainer}, launcherInit)
	launcher.Template.Spec.Volumes = append(launcher.Template.Spec.Volumes, DiscoveryVolume(name+"-discovery"))
	launcher.Policies = CompleteOnTaskCompleted()

	job := NewJob(cfg, namespace, name, b.Status.PriorityClassName, numProcs+1)
	job.OwnerReferences = []metav1.OwnerReference{owner}
	job.Spec.Tasks = []volcanobatchv1alpha1.TaskSpec{worker, launcher}

	cm := DiscoveryConfigMap(cfg, "MPIPingPong", namespace, name, map[string]int32{mpiWorkerTask: numProcs, launcherTaskName: 1})
	cm.OwnerReferences = []metav1.OwnerReference{owner}

	return &Rendered{Job: job, ConfigMap: cm}, nil
}
