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
// limitations under the License

// Package config holds the process-wide settings read by every reconciler
// and renderer: default image policy, the canonical label names, the gang
// scheduler's name and queue, and the priority-class window.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"sigs.k8s.io/yaml"
)

// EnvPrefix is prepended to every field's upper-snake-case path to form the
// environment variable that overrides it, e.g. SchedulerName ->
// KUBE_PERFTEST__SCHEDULER_NAME.
const EnvPrefix = "KUBE_PERFTEST__"

// LabelNames is the configurable set of label keys the core uses to locate
// and filter child pods. Names, not values: the values are always the
// kind/namespace/name/component of the owning benchmark.
type LabelNames struct {
	KindLabel      string `json:"kindLabel"`
	NamespaceLabel string `json:"namespaceLabel"`
	NameLabel      string `json:"nameLabel"`
	ComponentLabel string `json:"componentLabel"`
	HostsFromLabel string `json:"hostsFromLabel"`
}

// PriorityWindow is the [Min, Max] range the priority allocator draws
// descending values from.
type PriorityWindow struct {
	Min int32 `json:"min"`
	Max int32 `json:"max"`
}

// Configuration is the complete process-wide settings object, loaded once
// at startup and never mutated afterwards.
type Configuration struct {
	DefaultImageTag         string         `json:"defaultImageTag"`
	DefaultImagePullPolicy  string         `json:"defaultImagePullPolicy"`
	Labels                  LabelNames     `json:"labels"`
	SchedulerName           string         `json:"schedulerName"`
	QueueName                string         `json:"queueName"`
	DiscoveryContainerImage string         `json:"discoveryContainerImage"`
	Priority                 PriorityWindow `json:"priority"`
}

// Default returns the configuration used when no file is supplied and no
// environment variable overrides a field. SchedulerName intentionally
// defaults away from "volcano": gang scheduling, preemption and the
// anti-affinity rules in pkg/template together proved difficult to operate
// reliably under Volcano's own scheduler, so pod-level scheduling is left to
// the cluster default while the Volcano Job CRD still drives orchestration.
func Default() Configuration {
	return Configuration{
		DefaultImageTag:        "latest",
		DefaultImagePullPolicy: "IfNotPresent",
		Labels: LabelNames{
			KindLabel:      "perftest.stackhpc.com/kind",
			NamespaceLabel: "perftest.stackhpc.com/namespace",
			NameLabel:      "perftest.stackhpc.com/name",
			ComponentLabel: "perftest.stackhpc.com/component",
			HostsFromLabel: "perftest.stackhpc.com/hosts-from",
		},
		SchedulerName:           "default-scheduler",
		QueueName:               "default",
		DiscoveryContainerImage: "ghcr.io/stackhpc/kube-perftest-operator:latest",
		Priority: PriorityWindow{
			Min: 0,
			Max: 1000,
		},
	}
}

// Load reads a YAML configuration file, falling back to Default() for any
// field the file omits, then applies KUBE_PERFTEST__-prefixed environment
// overrides on top. An empty path skips the file and applies only defaults
// and environment overrides.
func Load(path string) (Configuration, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Configuration{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Configuration{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(&cfg, EnvPrefix, nil); err != nil {
		return Configuration{}, fmt.Errorf("applying %s environment overrides: %w", EnvPrefix, err)
	}

	return cfg, nil
}

// applyEnvOverrides walks cfg's exported fields by reflection, looking up
// PREFIX_PATH_TO_FIELD for each leaf, so every field of Configuration gets
// an environment override without hand-writing one getter per knob.
func applyEnvOverrides(v interface{}, prefix string, path []string) error {
	rv := reflect.ValueOf(v).Elem()
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		fv := rv.Field(i)
		name := append(append([]string{}, path...), toScreamingSnakeCase(field.Name))

		if fv.Kind() == reflect.Struct {
			if err := applyEnvOverrides(fv.Addr().Interface(), prefix, name); err != nil {
				return err
			}
			continue
		}

		envVar := prefix + strings.Join(name, "_")
		raw, ok := os.LookupEnv(envVar)
		if !ok {
			continue
		}

		switch fv.Kind() {
		case reflect.String:
			fv.SetString(raw)
		case reflect.Int32, reflect.Int64, reflect.Int:
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", envVar, err)
			}
			fv.SetInt(n)
		case reflect.Bool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return fmt.Errorf("%s: %w", envVar, err)
			}
			fv.SetBool(b)
		default:
			return fmt.Errorf("%s: unsupported field kind %s", envVar, fv.Kind())
		}
	}

	return nil
}

func toScreamingSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteRune('_')
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}
