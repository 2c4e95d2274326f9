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

// Package label builds and reads the identity labels carried by every
// child pod of a benchmark: kind, namespace, name and component. These
// labels are the only channel the core uses to locate and filter pods, so
// their key names come from pkg/config.LabelNames rather than being
// hard-coded.
package label

import (
	"errors"

	"github.com/stackhpc/kube-perftest-operator/pkg/config"
)

// ErrNotFound is returned by the Get* functions when the requested label
// key is absent.
var ErrNotFound = errors.New("label not found")

// ForComponent builds the label set stamped onto every pod, service and
// config map belonging to one task of one benchmark.
func ForComponent(names config.LabelNames, kind, namespace, name, component string) map[string]string {
	return map[string]string{
		names.KindLabel:      kind,
		names.NamespaceLabel: namespace,
		names.NameLabel:      name,
		names.ComponentLabel: component,
	}
}

// Selector builds the label set used to list every pod belonging to a
// benchmark, regardless of component.
func Selector(names config.LabelNames, kind, namespace, name string) map[string]string {
	return map[string]string{
		names.KindLabel:      kind,
		names.NamespaceLabel: namespace,
		names.NameLabel:      name,
	}
}

// Kind reads the kind label from a label set.
func Kind(names config.LabelNames, labels map[string]string) (string, error) {
	v, ok := labels[names.KindLabel]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Component reads the component label from a label set.
func Component(names config.LabelNames, labels map[string]string) (string, error) {
	v, ok := labels[names.ComponentLabel]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// HostsFrom reads the hosts-from label, which names the discovery
// ConfigMap key a pod should be counted against when computing the host
// roster (normally equal to the component label, but kinds with a single
// shared "hosts" table for several components may override it).
func HostsFrom(names config.LabelNames, labels map[string]string) (string, error) {
	v, ok := labels[names.HostsFromLabel]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}
