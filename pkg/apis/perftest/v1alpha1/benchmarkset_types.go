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

package v1alpha1

import (
	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// BenchmarkSetTemplate names the benchmark kind to fan out and carries its
// base spec, before any permutation is merged in. APIVersion/Kind must
// resolve to a kind registered in pkg/registry.
type BenchmarkSetTemplate struct {
	APIVersion string `json:"apiVersion"`
	Kind       string `json:"kind"`

	// Spec is deep-merged with each permutation (pkg/merge) to produce one
	// concrete child spec per pkg/merge's replace-scalars/recurse-maps rule.
	Spec apiextensionsv1.JSON `json:"spec"`
}

// BenchmarkSetPermutations describes the sweep: a Cartesian product over
// named value lists, plus an explicit list of extra points.
type BenchmarkSetPermutations struct {
	// Product maps a field name to the list of values it should take; the
	// Cartesian product is taken over the keys in sorted order (the last
	// key varies fastest). The order the keys are written in is not kept.
	// +optional
	Product map[string][]apiextensionsv1.JSON `json:"product,omitempty"`

	// Explicit is a list of additional points, appended verbatim after the
	// product.
	// +optional
	Explicit []map[string]apiextensionsv1.JSON `json:"explicit,omitempty"`
}

// BenchmarkSetSpec is the desired state of a BenchmarkSet.
type BenchmarkSetSpec struct {
	Template BenchmarkSetTemplate `json:"template"`

	// Repetitions repeats the full product+explicit list this many times.
	// +optional
	// +kubebuilder:default=1
	Repetitions int32 `json:"repetitions,omitempty"`

	// +optional
	Permutations BenchmarkSetPermutations `json:"permutations,omitempty"`
}

// BenchmarkSetStatus is the observed state of a BenchmarkSet.
type BenchmarkSetStatus struct {
	// PermutationCount is len(product) + len(explicit), before repetition.
	// +optional
	PermutationCount int32 `json:"permutationCount,omitempty"`

	// Count is set once, on the first reconcile, and never changes.
	// +optional
	Count int32 `json:"count,omitempty"`

	// Completed maps child name to whether it finished (succeeded or
	// failed); absent entries mean the child has not yet reached a
	// terminal phase.
	// +optional
	Completed map[string]bool `json:"completed,omitempty"`

	// +optional
	Succeeded int32 `json:"succeeded,omitempty"`

	// +optional
	Failed int32 `json:"failed,omitempty"`

	// +optional
	CreatedAt *metav1.Time `json:"createdAt,omitempty"`

	// +optional
	FinishedAt *metav1.Time `json:"finishedAt,omitempty"`
}

// IsTerminal reports whether every child has reached succeeded or failed.
func (s *BenchmarkSetStatus) IsTerminal() bool {
	return s.Count > 0 && s.Succeeded+s.Failed >= s.Count
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:categories=perftest

// BenchmarkSet materialises a parameter sweep as a collection of child
// benchmarks and aggregates their outcomes.
type BenchmarkSet struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   BenchmarkSetSpec   `json:"spec,omitempty"`
	Status BenchmarkSetStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

type BenchmarkSetList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []BenchmarkSet `json:"items"`
}
