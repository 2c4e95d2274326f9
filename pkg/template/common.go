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

// Package template constructs the child API objects of a benchmark
// directly in memory, rather than text-templating YAML: one gang Job
// (batch.volcano.sh/v1alpha1), a headless Service, a discovery ConfigMap
// and, for kinds that need one, a PersistentVolumeClaim.
package template

import (
	"fmt"
	"sort"
	"strings"

	corev1 "k8s.io/api/core/v1"
	schedulingv1 "k8s.io/api/scheduling/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	volcanobatchv1alpha1 "volcano.sh/apis/pkg/apis/batch/v1alpha1"
	volcanobusv1alpha1 "volcano.sh/apis/pkg/apis/bus/v1alpha1"
	volcanov1beta1 "volcano.sh/apis/pkg/apis/scheduling/v1beta1"

	"github.com/stackhpc/kube-perftest-operator/pkg/config"
	perftestv1alpha1 "github.com/stackhpc/kube-perftest-operator/pkg/apis/perftest/v1alpha1"
	"github.com/stackhpc/kube-perftest-operator/pkg/discovery"
	"github.com/stackhpc/kube-perftest-operator/pkg/label"
)

// Rendered is the complete set of child objects a kind's Render function
// produces for one benchmark instance. Fields left nil are simply not
// created; every non-nil object is applied with an owner reference to the
// benchmark so owner-GC reaps it on deletion.
type Rendered struct {
	Job          *volcanobatchv1alpha1.Job
	Service      *corev1.Service
	ConfigMap    *corev1.ConfigMap
	SSHConfigMap *corev1.ConfigMap
	PVC          *corev1.PersistentVolumeClaim
}

// ConfigurationError is returned by a Render function when the benchmark's
// own spec is self-contradictory (e.g. hostNetwork and networkName both
// set) and cannot be rendered at all; the reconciler treats it as a
// terminal Failed, not a re-queue.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return e.Message }

// ValidateCommonSpec rejects the field combinations every kind disallows.
func ValidateCommonSpec(spec *perftestv1alpha1.CommonSpec) error {
	if spec.Image == "" {
		return &ConfigurationError{Message: "image must be set"}
	}
	if spec.HostNetwork && spec.NetworkName != "" {
		return &ConfigurationError{Message: "hostNetwork and networkName are mutually exclusive"}
	}
	return nil
}

// ChildName builds the deterministic name of a benchmark's gang Job: the
// benchmark's own name. Other children add a suffix to it (for example
// "<name>-discovery" for the discovery ConfigMap).
func ChildName(name string) string { return name }

// OwnerReference returns the controller owner reference every child object
// of obj must carry, built from kind rather than obj.GetObjectKind()
// (Benchmark values are not guaranteed to carry a populated TypeMeta).
func OwnerReference(obj perftestv1alpha1.Benchmark, kind string) metav1.OwnerReference {
	blockOwnerDeletion := true
	isController := true
	return metav1.OwnerReference{
		APIVersion:         perftestv1alpha1.SchemeGroupVersion.String(),
		Kind:               kind,
		Name:               obj.GetName(),
		UID:                obj.GetUID(),
		BlockOwnerDeletion: &blockOwnerDeletion,
		Controller:         &isController,
	}
}

// ComponentLabels builds the full identity label set for one task of one
// benchmark.
func ComponentLabels(cfg config.Configuration, kind, namespace, name, component string) map[string]string {
	return label.ForComponent(cfg.Labels, kind, namespace, name, component)
}

// BaseContainer builds the container every task's pod runs its tool in,
// applying the benchmark's image, pull policy and resources.
func BaseContainer(spec *perftestv1alpha1.CommonSpec, name string, command, args []string) corev1.Container {
	pullPolicy := corev1.PullPolicy(spec.ImagePullPolicy)
	if pullPolicy == "" {
		pullPolicy = corev1.PullIfNotPresent
	}
	c := corev1.Container{
		Name:            name,
		Image:           spec.Image,
		ImagePullPolicy: pullPolicy,
		Command:         command,
		Args:            args,
	}
	if spec.Resources != nil {
		c.Resources = *spec.Resources
	}
	return c
}

// mtuInitContainerName is the well-known name of the init container that
// configures interface MTU before the main containers start.
const mtuInitContainerName = "set-mtu"

// MTUInitContainer builds the init container that configures the pod's
// primary interface MTU, used when CommonSpec.MTU is set.
func MTUInitContainer(mtu int32, iface string) corev1.Container {
	if iface == "" {
		iface = "eth0"
	}
	privileged := true
	return corev1.Container{
		Name:    mtuInitContainerName,
		Image:   "busybox:stable",
		Command: []string{"ip"},
		Args:    []string{"link", "set", iface, "mtu", fmt.Sprintf("%d", mtu)},
		SecurityContext: &corev1.SecurityContext{
			Privileged: &privileged,
			Capabilities: &corev1.Capabilities{
				Add: []corev1.Capability{"NET_ADMIN", "NET_RAW"},
			},
		},
	}
}

// ApplyNetworking sets hostNetwork/DNS policy or the Multus network
// annotation on a pod template, per CommonSpec and per ValidateCommonSpec's
// mutual-exclusion already having been checked.
func ApplyNetworking(pts *corev1.PodTemplateSpec, spec *perftestv1alpha1.CommonSpec) {
	if spec.HostNetwork {
		pts.Spec.HostNetwork = true
		pts.Spec.DNSPolicy = corev1.DNSClusterFirstWithHostNet
		return
	}
	if spec.NetworkName != "" {
		if pts.Annotations == nil {
			pts.Annotations = map[string]string{}
		}
		pts.Annotations["k8s.v1.cni.cncf.io/networks"] = spec.NetworkName
	}
}

// DecorateTask applies the gang scheduler's annotations to a task's pod
// template: the PodGroup name (equal to the Job name, since Volcano's own
// Job controller creates one PodGroup per Job) and the task name, so the
// plugins (env/ssh/svc) and policies can address this task.
func DecorateTask(pts *corev1.PodTemplateSpec, cfg config.Configuration, jobName, taskName string) {
	if pts.Spec.SchedulerName == "" {
		pts.Spec.SchedulerName = cfg.SchedulerName
	}
	if pts.Annotations == nil {
		pts.Annotations = map[string]string{}
	}
	pts.Annotations[volcanov1beta1.KubeGroupNameAnnotationKey] = jobName
	pts.Annotations[volcanobatchv1alpha1.TaskSpecKey] = taskName
}

// CompleteOnTaskCompleted returns the lifecycle policy that marks the
// whole Job complete as soon as the named task's pod(s) complete, used on
// the task that defines "benchmark done" (the master/launcher/client).
func CompleteOnTaskCompleted() []volcanobatchv1alpha1.LifecyclePolicy {
	return []volcanobatchv1alpha1.LifecyclePolicy{
		{
			Event:  volcanobusv1alpha1.TaskCompletedEvent,
			Action: volcanobusv1alpha1.CompleteJobAction,
		},
	}
}

// RestartOnPodEvicted returns the lifecycle policy that restarts the whole
// Job when one of its pods is evicted, applied at the Job level so a
// preempted benchmark retries as a unit.
func RestartOnPodEvicted() []volcanobatchv1alpha1.LifecyclePolicy {
	return []volcanobatchv1alpha1.LifecyclePolicy{
		{
			Event:  volcanobusv1alpha1.PodEvictedEvent,
			Action: volcanobusv1alpha1.RestartJobAction,
		},
	}
}

// NewJob builds the Job skeleton shared by every kind: scheduler, queue,
// priority class and the env/ssh/svc helper plugins that inject standard
// environment variables and SSH material into every task.
func NewJob(cfg config.Configuration, namespace, name, priorityClassName string, minAvailable int32) *volcanobatchv1alpha1.Job {
	maxRetry := int32(3)
	ttl := int32(300)
	return &volcanobatchv1alpha1.Job{
		ObjectMeta: metav1.ObjectMeta{
			Namespace: namespace,
			Name:      name,
		},
		Spec: volcanobatchv1alpha1.JobSpec{
			SchedulerName:           cfg.SchedulerName,
			MinAvailable:            minAvailable,
			Queue:                   cfg.QueueName,
			PriorityClassName:       priorityClassName,
			MaxRetry:                maxRetry,
			TTLSecondsAfterFinished: &ttl,
			Plugins: map[string][]string{
				"env": {},
				"ssh": {},
				"svc": {},
			},
			Policies: RestartOnPodEvicted(),
		},
	}
}

// PriorityClass builds the cluster-scoped PriorityClass backing one
// benchmark's scheduling priority. It carries no owner reference: a
// cluster-scoped object's owner reference to a namespaced Benchmark is
// treated by the garbage collector as pointing at an absent owner, which
// would delete it almost immediately, so the reconciler deletes it
// explicitly via a finalizer instead.
func PriorityClass(name string, value int32) *schedulingv1.PriorityClass {
	preemptLowerPriority := corev1.PreemptLowerPriority
	return &schedulingv1.PriorityClass{
		ObjectMeta: metav1.ObjectMeta{
			Name: name,
		},
		Value:            value,
		GlobalDefault:    false,
		PreemptionPolicy: &preemptLowerPriority,
		Description:      fmt.Sprintf("Priority class for benchmark %s", name),
	}
}

// resourceQuantityOne returns a quantity of 1, used for the default GPU
// request a CUDA PyTorch benchmark gets when its own spec requested none.
func resourceQuantityOne() resource.Quantity {
	return resource.MustParse("1")
}

// HeadlessService builds the Service giving every task pod a stable DNS
// name "<bench>-<task>-<ordinal>.<bench>" within the benchmark's namespace.
func HeadlessService(cfg config.Configuration, kind, namespace, name string) *corev1.Service {
	return &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{
			Namespace: namespace,
			Name:      name,
		},
		Spec: corev1.ServiceSpec{
			ClusterIP: corev1.ClusterIPNone,
			Selector:  label.Selector(cfg.Labels, kind, namespace, name),
		},
	}
}

// DiscoveryConfigMap builds the owned ConfigMap pkg/discovery patches once
// the benchmark's pods have been scheduled. It is seeded here, rather than
// left empty for discovery to fill in later, with a "hosts" key that
// starts as an empty string, one "<task>.hosts" key per task that starts
// the same way, and one "<task>.dns" key per task listing the DNS names
// its replicas will have once scheduled. The "hosts" key must exist from
// the start: a pod mounts it via subPath at /etc/hosts, and a subPath
// mount of a ConfigMap key that does not yet exist fails the pod outright
// rather than waiting for it to appear.
func DiscoveryConfigMap(cfg config.Configuration, kind, namespace, name string, tasksReplicas map[string]int32) *corev1.ConfigMap {
	data := map[string]string{discovery.HostsKey: ""}

	tasks := make([]string, 0, len(tasksReplicas))
	for task := range tasksReplicas {
		tasks = append(tasks, task)
	}
	sort.Strings(tasks)

	for _, task := range tasks {
		data[discovery.TaskHostsKey(task)] = ""
		dns := make([]string, 0, tasksReplicas[task])
		for i := int32(0); i < tasksReplicas[task]; i++ {
			dns = append(dns, fmt.Sprintf("%s-%s-%d.%s", name, task, i, name))
		}
		data[discovery.PredictedDNSKey(task)] = strings.Join(dns, "\n")
	}

	return &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{
			Namespace: namespace,
			Name:      name + "-discovery",
			Labels:    label.Selector(cfg.Labels, kind, namespace, name),
		},
		Data: data,
	}
}

// SSHConfigMap builds the ConfigMap carrying an SSH client config that
// overrides the port peers connect on, used only by kinds whose SSHPort
// field is non-zero (currently OpenFOAM).
func SSHConfigMap(cfg config.Configuration, kind, namespace, name string, port int32) *corev1.ConfigMap {
	return &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{
			Namespace: namespace,
			Name:      name + "-ssh-config",
			Labels:    label.Selector(cfg.Labels, kind, namespace, name),
		},
		Data: map[string]string{
			"config": fmt.Sprintf("Host *\n    Port %d\n    StrictHostKeyChecking no\n    UserKnownHostsFile /dev/null\n", port),
		},
	}
}

// PVC builds the PersistentVolumeClaim shared by every worker of a kind
// that needs one (currently Fio), from the kind's own claim template.
func PVC(namespace, name string, spec corev1.PersistentVolumeClaimSpec) *corev1.PersistentVolumeClaim {
	return &corev1.PersistentVolumeClaim{
		ObjectMeta: metav1.ObjectMeta{
			Namespace: namespace,
			Name:      name + "-data",
		},
		Spec: spec,
	}
}

// DiscoveryVolume is the pod volume backed by the discovery ConfigMap,
// which DiscoveryVolumeMount places at /etc/perftest. The SSH port
// override is not part of it: SSHConfigMap builds a separate ConfigMap.
func DiscoveryVolume(configMapName string) corev1.Volume {
	return corev1.Volume{
		Name: "discovery",
		VolumeSource: corev1.VolumeSource{
			ConfigMap: &corev1.ConfigMapVolumeSource{
				LocalObjectReference: corev1.LocalObjectReference{Name: configMapName},
			},
		},
	}
}

// DiscoveryVolumeMount is the whole-ConfigMap mount for DiscoveryVolume,
// giving a container the config-dir copy of the hosts table (readable even
// while /etc/hosts itself is still being populated) plus the per-task
// "<task>.hosts" and "<task>.dns" keys.
func DiscoveryVolumeMount() corev1.VolumeMount {
	return corev1.VolumeMount{
		Name:      "discovery",
		MountPath: "/etc/perftest",
		ReadOnly:  true,
	}
}

// DiscoveryHostsMount mounts just the discovery ConfigMap's "hosts" key,
// via subPath, over the pod's real /etc/hosts. This is what makes "ssh
// <peer>"/mpirun/glibc name resolution actually work: a container that
// only has the whole-map mount at /etc/perftest never gets its peers into
// NSS. A subPath mount requires its key to already exist in the ConfigMap
// when the pod starts, which is why DiscoveryConfigMap always seeds
// "hosts" even when empty.
func DiscoveryHostsMount() corev1.VolumeMount {
	return corev1.VolumeMount{
		Name:      "discovery",
		MountPath: "/etc/hosts",
		SubPath:   discovery.HostsKey,
		ReadOnly:  true,
	}
}

// WaitForPeersInitContainer builds the init container that blocks a task's
// pod until the discovery ConfigMap lists every expected peer, using the
// standalone cmd/wait-for-peers binary baked into the operator's own
// container image (cfg.DiscoveryContainerImage), not the benchmark tool's
// image -- the benchmark image has no reason to carry an operator-built
// binary. It reads the pod's real /etc/hosts first -- the subPath mount
// kubelet does not refresh in place the way it does a whole-ConfigMap
// mount -- and falls back to polling the config-dir copy, exiting non-zero
// once it does so to force kubelet to retry the pod and remount /etc/hosts
// fresh.
func WaitForPeersInitContainer(image string, expectedPeers int32) corev1.Container {
	return corev1.Container{
		Name:    "wait-for-peers",
		Image:   image,
		Command: []string{"/usr/local/bin/wait-for-peers"},
		Args: []string{
			"--hosts-file", "/etc/hosts",
			"--fallback-hosts-file", "/etc/perftest/hosts",
			"--count", fmt.Sprintf("%d", expectedPeers),
		},
		VolumeMounts: []corev1.VolumeMount{
			DiscoveryVolumeMount(),
			DiscoveryHostsMount(),
		},
	}
}

// WaitForPortInitContainer builds one init container that TCP-probes a
// single peer's advertised address, using the standalone cmd/wait-for-port
// binary baked into the operator's own container image. This is step 5 of
// the discovery protocol: by the time wait-for-peers exits, every peer
// resolves by name, but its server process may not be accepting
// connections yet.
func WaitForPortInitContainer(image, name, address string) corev1.Container {
	return corev1.Container{
		Name:    name,
		Image:   image,
		Command: []string{"/usr/local/bin/wait-for-port"},
		Args:    []string{"--address", address},
	}
}

// WaitForPortInitContainers builds one WaitForPortInitContainer per
// address, named "wait-for-port-0", "wait-for-port-1", and so on. Init
// containers run strictly in the order they are listed, so this probes
// every peer in turn before the task's main container starts.
func WaitForPortInitContainers(image string, addresses []string) []corev1.Container {
	containers := make([]corev1.Container, 0, len(addresses))
	for i, address := range addresses {
		containers = append(containers, WaitForPortInitContainer(image, fmt.Sprintf("wait-for-port-%d", i), address))
	}
	return containers
}

// PeerAddresses returns the "<bench>-<task>-<ordinal>" short hostnames a
// task's replicas will answer to -- the same names the discovery
// ConfigMap's "hosts" key carries once every pod is scheduled -- used to
// build the address list a wait-for-port init container probes.
func PeerAddresses(name, task string, replicas int32) []string {
	addresses := make([]string, 0, replicas)
	for i := int32(0); i < replicas; i++ {
		addresses = append(addresses, fmt.Sprintf("%s-%s-%d", name, task, i))
	}
	return addresses
}

// peerAddressesWithPort appends ":port" to every address, building the
// "host:port" arguments WaitForPortInitContainers expects from the short
// hostnames PeerAddresses returns.
func peerAddressesWithPort(addresses []string, port int32) []string {
	withPort := make([]string, len(addresses))
	for i, address := range addresses {
		withPort[i] = fmt.Sprintf("%s:%d", address, port)
	}
	return withPort
}

// controlPlaneNodeLabel is set by kubeadm (and equivalent installers) on
// control-plane nodes; its mere presence, regardless of value, is what the
// node-role convention uses to mark them.
const controlPlaneNodeLabel = "node-role.kubernetes.io/control-plane"

// excludeControlPlaneNodeAffinity builds the hard node-affinity rule every
// task carries, spread or exclusive alike: benchmarks never get scheduled
// onto control-plane nodes.
func excludeControlPlaneNodeAffinity() *corev1.NodeAffinity {
	return &corev1.NodeAffinity{
		RequiredDuringSchedulingIgnoredDuringExecution: &corev1.NodeSelector{
			NodeSelectorTerms: []corev1.NodeSelectorTerm{
				{
					MatchExpressions: []corev1.NodeSelectorRequirement{
						{Key: controlPlaneNodeLabel, Operator: corev1.NodeSelectorOpDoesNotExist},
					},
				},
			},
		},
	}
}

// pureNetworkKinds are sensitive enough to a noisy neighbour's network
// traffic that they demand a node to themselves rather than the default
// spread rule.
var pureNetworkKinds = map[string]bool{
	"IPerf":         true,
	"RDMABandwidth": true,
	"RDMALatency":   true,
	"MPIPingPong":   true,
}

// SpreadAffinity builds the affinity and topology-spread constraint used
// by every task of a non-pure-network kind: a soft anti-affinity against
// this benchmark's own other pods, so a multi-pod benchmark doesn't stack
// itself onto one node, a topology-spread constraint keeping this task's
// own replicas balanced across nodes (skew 1), and the usual control-plane
// exclusion.
func SpreadAffinity(cfg config.Configuration, kind, namespace, name, component string) (*corev1.Affinity, []corev1.TopologySpreadConstraint) {
	affinity := &corev1.Affinity{
		NodeAffinity: excludeControlPlaneNodeAffinity(),
		PodAntiAffinity: &corev1.PodAntiAffinity{
			PreferredDuringSchedulingIgnoredDuringExecution: []corev1.WeightedPodAffinityTerm{
				{
					Weight: 100,
					PodAffinityTerm: corev1.PodAffinityTerm{
						LabelSelector: &metav1.LabelSelector{MatchLabels: label.Selector(cfg.Labels, kind, namespace, name)},
						TopologyKey:   corev1.LabelHostname,
					},
				},
			},
		},
	}
	spread := []corev1.TopologySpreadConstraint{
		{
			MaxSkew:           1,
			TopologyKey:       corev1.LabelHostname,
			WhenUnsatisfiable: corev1.ScheduleAnyway,
			LabelSelector:     &metav1.LabelSelector{MatchLabels: label.ForComponent(cfg.Labels, kind, namespace, name, component)},
		},
	}
	return affinity, spread
}

// ExclusiveAffinity builds the affinity used by pure-network kinds: a hard
// anti-affinity against any pod carrying the kind label, regardless of its
// value, so no other benchmark's component -- of any kind -- ever lands on
// the same node as one of this benchmark's network-sensitive pods.
func ExclusiveAffinity(cfg config.Configuration) *corev1.Affinity {
	return &corev1.Affinity{
		NodeAffinity: excludeControlPlaneNodeAffinity(),
		PodAntiAffinity: &corev1.PodAntiAffinity{
			RequiredDuringSchedulingIgnoredDuringExecution: []corev1.PodAffinityTerm{
				{
					LabelSelector: &metav1.LabelSelector{
						MatchExpressions: []metav1.LabelSelectorRequirement{
							{Key: cfg.Labels.KindLabel, Operator: metav1.LabelSelectorOpExists},
						},
					},
					TopologyKey: corev1.LabelHostname,
				},
			},
		},
	}
}
