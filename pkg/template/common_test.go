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
	"testing"

	"github.com/stackhpc/kube-perftest-operator/pkg/config"
	"github.com/stackhpc/kube-perftest-operator/pkg/discovery"
)

func TestDiscoveryConfigMapSeedsHostsKeyEmpty(t *testing.T) {
	cm := DiscoveryConfigMap(config.Default(), "IPerf", "ns", "bench", map[string]int32{"server": 1, "client": 1})

	if v, ok := cm.Data[discovery.HostsKey]; !ok || v != "" {
		t.Errorf("Data[%q] = %q, %v, want empty string present", discovery.HostsKey, v, ok)
	}
	for _, task := range []string{"server", "client"} {
		if v, ok := cm.Data[discovery.TaskHostsKey(task)]; !ok || v != "" {
			t.Errorf("Data[%q] = %q, %v, want empty string present", discovery.TaskHostsKey(task), v, ok)
		}
	}
}

func TestDiscoveryConfigMapPredictsDNSNamesPerReplica(t *testing.T) {
	cm := DiscoveryConfigMap(config.Default(), "MPIPingPong", "ns", "bench", map[string]int32{"worker": 2})

	want := "bench-worker-0.bench\nbench-worker-1.bench"
	if got := cm.Data[discovery.PredictedDNSKey("worker")]; got != want {
		t.Errorf("worker.dns = %q, want %q", got, want)
	}
}

func TestPriorityClassCarriesNoOwnerReference(t *testing.T) {
	pc := PriorityClass("ns-bench", 42)

	if pc.Value != 42 {
		t.Errorf("Value = %d, want 42", pc.Value)
	}
	if len(pc.OwnerReferences) != 0 {
		t.Errorf("OwnerReferences = %v, want none: a cluster-scoped object cannot safely own-reference a namespaced benchmark", pc.OwnerReferences)
	}
	if pc.PreemptionPolicy == nil {
		t.Fatal("PreemptionPolicy is nil")
	}
}
