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

// Package permute expands a BenchmarkSet's permutations block into the
// deterministic, ordered list of concrete child specs: the Cartesian
// product of permutations.product (keys taken in sorted order, since the
// map representation of a CRD field does not preserve source document
// order), followed by permutations.explicit verbatim, each repeated
// repetitions times, deep-merged into the template spec.
package permute

import (
	"encoding/json"
	"fmt"
	"sort"

	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"

	perftestv1alpha1 "github.com/stackhpc/kube-perftest-operator/pkg/apis/perftest/v1alpha1"
	"github.com/stackhpc/kube-perftest-operator/pkg/merge"
)

// Child is one expanded permutation: its zero-based index in expansion
// order and its final, merged spec document.
type Child struct {
	Index int
	Spec  apiextensionsv1.JSON
}

// Expand computes the full, ordered list of child specs for spec. It is a
// pure function: called twice with the same spec it returns byte-identical
// results in the same order.
func Expand(spec perftestv1alpha1.BenchmarkSetSpec) ([]Child, error) {
	permutations, err := permutationMaps(spec.Permutations)
	if err != nil {
		return nil, err
	}

	repetitions := spec.Repetitions
	if repetitions <= 0 {
		repetitions = 1
	}

	var templateValue interface{}
	if len(spec.Template.Spec.Raw) > 0 {
		if err := json.Unmarshal(spec.Template.Spec.Raw, &templateValue); err != nil {
			return nil, fmt.Errorf("decoding template spec: %w", err)
		}
	}

	var children []Child
	for _, perm := range permutations {
		merged := merge.Value(templateValue, perm)
		raw, err := json.Marshal(merged)
		if err != nil {
			return nil, fmt.Errorf("encoding merged spec: %w", err)
		}
		for r := int32(0); r < repetitions; r++ {
			children = append(children, Child{
				Index: len(children),
				Spec:  apiextensionsv1.JSON{Raw: raw},
			})
		}
	}
	return children, nil
}

// Count returns len(Expand(spec)) without building the merged documents,
// used by the reconciler to freeze status.count cheaply.
func Count(spec perftestv1alpha1.BenchmarkSetSpec) (int, error) {
	permutations, err := permutationMaps(spec.Permutations)
	if err != nil {
		return 0, err
	}
	repetitions := int(spec.Repetitions)
	if repetitions <= 0 {
		repetitions = 1
	}
	return len(permutations) * repetitions, nil
}

// ProductSize returns the number of permutations before repetition is
// applied (len(product) + len(explicit)), used to populate
// status.permutationCount.
func ProductSize(spec perftestv1alpha1.BenchmarkSetSpec) (int, error) {
	permutations, err := permutationMaps(spec.Permutations)
	if err != nil {
		return 0, err
	}
	return len(permutations), nil
}

// permutationMaps builds the ordered list of permutation.product's
// Cartesian product followed by permutations.explicit, as plain
// map[string]interface{} values ready for merge.Value. An entirely empty
// permutations block yields a single empty permutation, so a BenchmarkSet
// with no sweep still produces repetitions identical children.
func permutationMaps(p perftestv1alpha1.BenchmarkSetPermutations) ([]map[string]interface{}, error) {
	keys := make([]string, 0, len(p.Product))
	for k := range p.Product {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make([][]interface{}, len(keys))
	for i, k := range keys {
		for _, raw := range p.Product[k] {
			var v interface{}
			if err := json.Unmarshal(raw.Raw, &v); err != nil {
				return nil, fmt.Errorf("decoding permutations.product[%s]: %w", k, err)
			}
			values[i] = append(values[i], v)
		}
	}

	var product []map[string]interface{}
	if len(keys) == 0 {
		product = []map[string]interface{}{{}}
	} else {
		product = cartesianProduct(keys, values)
	}

	explicit := make([]map[string]interface{}, 0, len(p.Explicit))
	for _, entry := range p.Explicit {
		m := make(map[string]interface{}, len(entry))
		for k, raw := range entry {
			var v interface{}
			if err := json.Unmarshal(raw.Raw, &v); err != nil {
				return nil, fmt.Errorf("decoding permutations.explicit[%s]: %w", k, err)
			}
			m[k] = v
		}
		explicit = append(explicit, m)
	}

	if len(keys) == 0 && len(p.Explicit) == 0 {
		return []map[string]interface{}{{}}, nil
	}
	if len(keys) == 0 {
		return explicit, nil
	}
	return append(product, explicit...), nil
}

func cartesianProduct(keys []string, values [][]interface{}) []map[string]interface{} {
	results := []map[string]interface{}{{}}
	for i, key := range keys {
		var next []map[string]interface{}
		for _, partial := range results {
			for _, v := range values[i] {
				entry := make(map[string]interface{}, len(partial)+1)
				for k, pv := range partial {
					entry[k] = pv
				}
				entry[key] = v
				next = append(next, entry)
			}
		}
		results = next
	}
	return results
}

// ChildName builds the zero-padded deterministic name of child i out of
// total children of set setName, e.g. ChildName("sweep", 3, 12) = "sweep-03".
func ChildName(setName string, index, total int) string {
	width := len(fmt.Sprintf("%d", total-1))
	if width < 1 {
		width = 1
	}
	return fmt.Sprintf("%s-%0*d", setName, width, index)
}
