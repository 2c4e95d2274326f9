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

// Package registry is the table of benchmark kinds and their
// renderers/parsers. The generic reconciler (pkg/controller) dispatches to
// a kind purely by looking it up here; adding a new benchmark kind means
// registering an Entry, not subclassing a reconciler.
package registry

import (
	"fmt"
	"sync"

	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/stackhpc/kube-perftest-operator/pkg/config"
	perftestv1alpha1 "github.com/stackhpc/kube-perftest-operator/pkg/apis/perftest/v1alpha1"
	"github.com/stackhpc/kube-perftest-operator/pkg/template"
)

// Parser turns a kind's concatenated result-component log stream into a
// typed result. Every kind's parser is a pure function with this shape.
type Parser func(logs string) (interface{}, error)

// ResultSetter writes a parsed result back onto the kind's typed status,
// since each kind's Status.Result field has a different concrete type.
type ResultSetter func(obj perftestv1alpha1.Benchmark, result interface{}) error

// Entry bundles everything the reconciler needs to drive one benchmark
// kind through its lifecycle without knowing its concrete Go type.
type Entry struct {
	Kind string

	// NewObject returns a new zero-value instance of the kind's CR type.
	NewObject func() perftestv1alpha1.Benchmark

	// NewList returns a new zero-value instance of the kind's list type.
	NewList func() client.ObjectList

	// Render builds the child Job/Service/ConfigMap set for an instance of
	// this kind.
	Render func(obj perftestv1alpha1.Benchmark, cfg config.Configuration) (*template.Rendered, error)

	// ResultComponent names the component label value whose pod logs carry
	// the benchmark's result.
	ResultComponent string

	// ResultContainer names the container, within a result component pod,
	// whose logs are scraped (the component's task may run an init
	// container and a main container with different names).
	ResultContainer string

	// Parse converts the result component's concatenated logs into a typed
	// result.
	Parse Parser

	// SetResult stores a parsed result on the kind's status.
	SetResult ResultSetter

	// DefaultOverlay is deep-merged under a BenchmarkSet permutation before
	// the permutation itself, supplying any kind-specific defaults a sweep
	// should not have to repeat (may be empty).
	DefaultOverlay apiextensionsv1.JSON
}

var (
	mu       sync.RWMutex
	entries  = map[string]Entry{}
)

// Register adds or replaces the Entry for e.Kind.
func Register(e Entry) {
	mu.Lock()
	defer mu.Unlock()
	entries[e.Kind] = e
}

// Lookup returns the Entry registered for kind, if any.
func Lookup(kind string) (Entry, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := entries[kind]
	return e, ok
}

// MustLookup is Lookup for call sites that have already validated kind
// against a CRD's own admission (e.g. object construction from a scheme),
// where a miss is a programmer error, not user input.
func MustLookup(kind string) Entry {
	e, ok := Lookup(kind)
	if !ok {
		panic(fmt.Sprintf("registry: no entry registered for kind %q", kind))
	}
	return e
}

// Kinds returns every currently registered kind name, for iteration (e.g.
// by the BenchmarkSet reconciler resolving a template's kind).
func Kinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	kinds := make([]string, 0, len(entries))
	for k := range entries {
		kinds = append(kinds, k)
	}
	return kinds
}
