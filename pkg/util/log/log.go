// Copyright 2018 The Kubeflow Authors
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

// Package log supplies logrus.Entry constructors pre-tagged with the
// identity fields reconcilers and the discovery updater log against, the
// same "job"/"uid" convention the training operator uses in its workqueue
// logging.
package log

import (
	log "github.com/sirupsen/logrus"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ForBenchmark tags log lines with the kind and namespace.name of a single
// benchmark resource.
func ForBenchmark(kind string, obj metav1.Object) *log.Entry {
	return log.WithFields(log.Fields{
		"kind": kind,
		"job":  obj.GetNamespace() + "." + obj.GetName(),
		"uid":  obj.GetUID(),
	})
}

// ForBenchmarkSet tags log lines for a BenchmarkSet reconcile.
func ForBenchmarkSet(obj metav1.Object) *log.Entry {
	return log.WithFields(log.Fields{
		"kind": "BenchmarkSet",
		"job":  obj.GetNamespace() + "." + obj.GetName(),
		"uid":  obj.GetUID(),
	})
}

// ForPod tags log lines for a child pod, carrying forward the owning
// benchmark's identity when the pod's controller reference names it.
func ForPod(pod *corev1.Pod, ownerKind string) *log.Entry {
	owner := ""
	if ref := metav1.GetControllerOf(pod); ref != nil && ref.Kind == ownerKind {
		owner = pod.Namespace + "." + ref.Name
	}
	return log.WithFields(log.Fields{
		"job": owner,
		"pod": pod.Namespace + "." + pod.Name,
		"uid": pod.UID,
	})
}

// ForKey tags log lines for a reconcile request before the object itself
// has been fetched, mirroring the workqueue key convention
// "namespace/name" rendered as "namespace.name".
func ForKey(namespace, name string) *log.Entry {
	return log.WithFields(log.Fields{
		"job": namespace + "." + name,
	})
}
