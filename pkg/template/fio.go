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
	fioServerTask = "server"
	fioClientTask = "client"
	fioMountPath  = "/data"
)

// RenderFio builds the fio client/server task pair: NumWorkers server
// replicas that all mount one shared PersistentVolumeClaim, and a single
// client driving fio's own client/server protocol against them, so a
// single run spans NumWorkers pods.
func RenderFio(obj perftestv1alpha1.Benchmark, cfg config.Configuration) (*Rendered, error) {
	b, ok := obj.(*perftestv1alpha1.Fio)
	if !ok {
		return nil, &ConfigurationError{Message: fmt.Sprintf("RenderFio called with %T", obj)}
	}
	if err := ValidateCommonSpec(&b.Spec.CommonSpec); err != nil {
		return nil, err
	}

	namespace, name := b.Namespace, b.Name
	owner := OwnerReference(b, "Fio")

	port := b.Spec.FioPort
	if port == 0 {
		port = 8765
	}
	numWorkers := b.Spec.NumWorkers
	if numWorkers == 0 {
		numWorkers = 1
	}

	jobArgs := fioJobArgs(b)

	pvc := PVC(namespace, name, b.Spec.VolumeClaimTemplate)
	pvc.OwnerReferences = []metav1.OwnerReference{owner}

	dataVolume := corev1.Volume{
		Name: "data",
		VolumeSource: corev1.VolumeSource{
			PersistentVolumeClaim: &corev1.PersistentVolumeClaimVolumeSource{ClaimName: pvc.Name},
		},
	}
	dataMount := corev1.VolumeMount{Name: "data", MountPath: fioMountPath}

	serverContainer := BaseContainer(&b.Spec.CommonSpec, "fio", []string{"fio"},
		[]string{"--server", fmt.Sprintf("--daemonize=/tmp/fio.pid"), fmt.Sprintf("--port=%d", port)})
	serverContainer.VolumeMounts = append(serverContainer.VolumeMounts, dataMount)
	serverTask := buildTask(b, cfg, fioServerTask, numWorkers, []corev1.Container{serverContainer}, nil)
	serverTask.Template.Spec.Volumes = append(serverTask.Template.Spec.Volumes, dataVolume)

	clientArgs := append([]string{"--client", name + "-" + fioServerTask + "-headless"}, jobArgs...)
	clientContainer := BaseContainer(&b.Spec.CommonSpec, "fio", []string{"fio"}, clientArgs)
	clientInit := append(
		[]corev1.Container{WaitForPeersInitContainer(cfg.DiscoveryContainerImage, numWorkers)},
		WaitForPortInitContainers(cfg.DiscoveryContainerImage, peerAddressesWithPort(PeerAddresses(name, fioServerTask, numWorkers), port))...,
	)
	clientTask := buildTask(b, cfg, fioClientTask, 1, []corev1.Container{clientContainer}, clientInit)
	clientTask.Policies = CompleteOnTaskCompleted()
	clientTask.Template.Spec.Volumes = append(clientTask.Template.Spec.Volumes, DiscoveryVolume(name+"-discovery"))

	job := NewJob(cfg, namespace, name, b.Status.PriorityClassName, numWorkers+1)
	job.OwnerReferences = []metav1.OwnerReference{owner}
	job.Spec.Tasks = []volcanobatchv1alpha1.TaskSpec{serverTask, clientTask}

	svc := HeadlessService(cfg, "Fio", namespace, name+"-"+fioServerTask+"-headless")
	svc.OwnerReferences = []metav1.OwnerReference{owner}

	cm := DiscoveryConfigMap(cfg, "Fio", namespace, name, map[string]int32{fioServerTask: numWorkers, fioClientTask: 1})
	cm.OwnerReferences = []metav1.OwnerReference{owner}

	return &Rendered{Job: job, Service: svc, ConfigMap: cm, PVC: pvc}, nil
}

func fioJobArgs(b *perftestv1alpha1.Fio) []string {
	args := []string{
		"--name=benchmark",
		fmt.Sprintf("--directory=%s", fioMountPath),
		fmt.Sprintf("--rw=%s", b.Spec.RW),
		"--output-format=json+",
	}
	if b.Spec.BlockSize != "" {
		args = append(args, "--bs="+b.Spec.BlockSize)
	}
	if b.Spec.IODepth != 0 {
		args = append(args, fmt.Sprintf("--iodepth=%d", b.Spec.IODepth))
	}
	if b.Spec.IOEngine != "" {
		args = append(args, "--ioengine="+string(b.Spec.IOEngine))
	}
	if b.Spec.NrFiles != 0 {
		args = append(args, fmt.Sprintf("--nrfiles=%d", b.Spec.NrFiles))
	}
	if b.Spec.RWMixRead != 0 {
		args = append(args, fmt.Sprintf("--rwmixread=%d", b.Spec.RWMixRead))
	}
	if b.Spec.PercentageRandom != 0 {
		args = append(args, fmt.Sprintf("--percentage_random=%d", b.Spec.PercentageRandom))
	}
	if b.Spec.Direct {
		args = append(args, "--direct=1")
	}
	if b.Spec.Runtime != 0 {
		args = append(args, fmt.Sprintf("--runtime=%d", b.Spec.Runtime), "--time_based")
	}
	if b.Spec.NumJobs != 0 {
		args = append(args, fmt.Sprintf("--numjobs=%d", b.Spec.NumJobs))
	}
	if b.Spec.Size != "" {
		args = append(args, "--size="+b.Spec.Size)
	}
	if b.Spec.Thread {
		args = append(args, "--thread")
	}
	return args
}
