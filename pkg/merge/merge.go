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

// Package merge deep-merges a BenchmarkSet permutation into its template
// spec: scalars and sequences are replaced wholesale by the override, maps
// are merged key by key, and a key absent from the override leaves the
// template's value untouched. There is deliberately no list concatenation.
package merge

import (
	"encoding/json"
	"fmt"

	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
)

// JSON deep-merges override into base, both given as raw JSON documents,
// and returns the result re-encoded as JSON. Either argument may be empty,
// in which case the other is returned unchanged.
func JSON(base, override apiextensionsv1.JSON) (apiextensionsv1.JSON, error) {
	if len(override.Raw) == 0 {
		return base, nil
	}
	if len(base.Raw) == 0 {
		return override, nil
	}

	var baseValue, overrideValue interface{}
	if err := json.Unmarshal(base.Raw, &baseValue); err != nil {
		return apiextensionsv1.JSON{}, fmt.Errorf("decoding base: %w", err)
	}
	if err := json.Unmarshal(override.Raw, &overrideValue); err != nil {
		return apiextensionsv1.JSON{}, fmt.Errorf("decoding override: %w", err)
	}

	merged := Value(baseValue, overrideValue)

	raw, err := json.Marshal(merged)
	if err != nil {
		return apiextensionsv1.JSON{}, fmt.Errorf("encoding merged value: %w", err)
	}
	return apiextensionsv1.JSON{Raw: raw}, nil
}

// Value deep-merges two values already decoded from JSON (so maps are
// map[string]interface{} and sequences are []interface{}). When both base
// and override are maps, the result merges them key by key, recursing into
// shared keys; otherwise override wins outright, covering scalars and
// sequences alike.
func Value(base, override interface{}) interface{} {
	if override == nil {
		return base
	}

	baseMap, baseIsMap := base.(map[string]interface{})
	overrideMap, overrideIsMap := override.(map[string]interface{})
	if !baseIsMap || !overrideIsMap {
		return override
	}

	merged := make(map[string]interface{}, len(baseMap)+len(overrideMap))
	for k, v := range baseMap {
		merged[k] = v
	}
	for k, overrideValue := range overrideMap {
		if baseValue, ok := merged[k]; ok {
			merged[k] = Value(baseValue, overrideValue)
		} else {
			merged[k] = overrideValue
		}
	}
	return merged
}
