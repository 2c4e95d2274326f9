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

package permute

import (
	"encoding/json"
	"testing"

	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"

	perftestv1alpha1 "github.com/stackhpc/kube-perftest-operator/pkg/apis/perftest/v1alpha1"
)

func rawJSON(t *testing.T, v interface{}) apiextensionsv1.JSON {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshaling fixture: %v", err)
	}
	return apiextensionsv1.JSON{Raw: raw}
}

func streamsValue(c Child) float64 {
	var m map[string]interface{}
	if err := json.Unmarshal(c.Spec.Raw, &m); err != nil {
		return -1
	}
	v, ok := m["streams"].(float64)
	if !ok {
		return -1
	}
	return v
}

func TestExpandProductWithRepetitionsMatchesWorkedExample(t *testing.T) {
	spec := perftestv1alpha1.BenchmarkSetSpec{
		Template: perftestv1alpha1.BenchmarkSetTemplate{
			Kind: "IPerf",
			Spec: rawJSON(t, map[string]interface{}{"duration": 30}),
		},
		Repetitions: 2,
		Permutations: perftestv1alpha1.BenchmarkSetPermutations{
			Product: map[string][]apiextensionsv1.JSON{
				"streams": {rawJSON(t, 1), rawJSON(t, 2)},
			},
		},
	}

	children, err := Expand(spec)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(children) != 4 {
		t.Fatalf("expected 4 children, got %d", len(children))
	}

	got := make([]float64, len(children))
	for i, c := range children {
		got[i] = streamsValue(c)
	}
	want := []float64{1, 1, 2, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("children[%d].streams = %v, want %v (full sequence %v)", i, got[i], want[i], got)
		}
	}

	for _, c := range children {
		var m map[string]interface{}
		if err := json.Unmarshal(c.Spec.Raw, &m); err != nil {
			t.Fatalf("decoding merged spec: %v", err)
		}
		if m["duration"] != float64(30) {
			t.Errorf("expected template field duration to survive merge, got %v", m["duration"])
		}
	}
}

func TestExpandCountFormula(t *testing.T) {
	spec := perftestv1alpha1.BenchmarkSetSpec{
		Template: perftestv1alpha1.BenchmarkSetTemplate{Kind: "IPerf"},
		Repetitions: 3,
		Permutations: perftestv1alpha1.BenchmarkSetPermutations{
			Product: map[string][]apiextensionsv1.JSON{
				"streams":  {rawJSON(t, 1), rawJSON(t, 2)},
				"duration": {rawJSON(t, 10), rawJSON(t, 20), rawJSON(t, 30)},
			},
			Explicit: []map[string]apiextensionsv1.JSON{
				{"streams": rawJSON(t, 8)},
			},
		},
	}

	children, err := Expand(spec)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}

	productSize, err := ProductSize(spec)
	if err != nil {
		t.Fatalf("ProductSize: %v", err)
	}
	wantProductSize := 2*3 + 1
	if productSize != wantProductSize {
		t.Fatalf("ProductSize() = %d, want %d", productSize, wantProductSize)
	}

	wantCount := int(spec.Repetitions) * wantProductSize
	if len(children) != wantCount {
		t.Fatalf("len(Expand()) = %d, want repetitions*(product+explicit) = %d", len(children), wantCount)
	}

	count, err := Count(spec)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != wantCount {
		t.Fatalf("Count() = %d, want %d", count, wantCount)
	}
}

func TestExpandEmptyPermutationsYieldsOneChildPerRepetition(t *testing.T) {
	spec := perftestv1alpha1.BenchmarkSetSpec{
		Template:    perftestv1alpha1.BenchmarkSetTemplate{Kind: "IPerf", Spec: rawJSON(t, map[string]interface{}{"duration": 5})},
		Repetitions: 3,
	}
	children, err := Expand(spec)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(children))
	}
}

func TestExpandIsDeterministic(t *testing.T) {
	spec := perftestv1alpha1.BenchmarkSetSpec{
		Template:    perftestv1alpha1.BenchmarkSetTemplate{Kind: "IPerf", Spec: rawJSON(t, map[string]interface{}{"duration": 5})},
		Repetitions: 1,
		Permutations: perftestv1alpha1.BenchmarkSetPermutations{
			Product: map[string][]apiextensionsv1.JSON{
				"streams": {rawJSON(t, 1), rawJSON(t, 2), rawJSON(t, 4)},
			},
		},
	}

	first, err := Expand(spec)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	second, err := Expand(spec)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("non-deterministic length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if string(first[i].Spec.Raw) != string(second[i].Spec.Raw) {
			t.Errorf("child %d differs between calls: %s vs %s", i, first[i].Spec.Raw, second[i].Spec.Raw)
		}
	}
}

func TestChildName(t *testing.T) {
	cases := []struct {
		index, total int
		want         string
	}{
		{0, 4, "sweep-0"},
		{3, 4, "sweep-3"},
		{0, 12, "sweep-00"},
		{11, 12, "sweep-11"},
	}
	for _, c := range cases {
		if got := ChildName("sweep", c.index, c.total); got != c.want {
			t.Errorf("ChildName(%d, %d) = %q, want %q", c.index, c.total, got, c.want)
		}
	}
}
