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

package merge

import (
	"encoding/json"
	"reflect"
	"testing"

	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
)

func TestValueScalarOverrideReplaces(t *testing.T) {
	got := Value(1.0, 2.0)
	if got != 2.0 {
		t.Errorf("Value(1, 2) = %v, want 2", got)
	}
}

func TestValueSequenceIsReplacedNotConcatenated(t *testing.T) {
	base := []interface{}{"a", "b", "c"}
	override := []interface{}{"x"}
	got := Value(base, override)
	if !reflect.DeepEqual(got, override) {
		t.Errorf("Value(%v, %v) = %v, want override %v verbatim", base, override, got, override)
	}
}

func TestValueMapsMergeRecursively(t *testing.T) {
	base := map[string]interface{}{
		"numProcs": 2.0,
		"nested": map[string]interface{}{
			"a": 1.0,
			"b": 2.0,
		},
	}
	override := map[string]interface{}{
		"nested": map[string]interface{}{
			"b": 20.0,
		},
	}
	got := Value(base, override)
	want := map[string]interface{}{
		"numProcs": 2.0,
		"nested": map[string]interface{}{
			"a": 1.0,
			"b": 20.0,
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Value() = %v, want %v", got, want)
	}
}

func TestValueAbsentKeyLeftUntouched(t *testing.T) {
	base := map[string]interface{}{"a": 1.0, "b": 2.0}
	override := map[string]interface{}{"a": 10.0}
	got := Value(base, override)
	want := map[string]interface{}{"a": 10.0, "b": 2.0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Value() = %v, want %v", got, want)
	}
}

func TestJSONEmptyOverrideReturnsBase(t *testing.T) {
	base := apiextensionsv1.JSON{Raw: []byte(`{"a":1}`)}
	got, err := JSON(base, apiextensionsv1.JSON{})
	if err != nil {
		t.Fatalf("JSON() returned error: %v", err)
	}
	if !reflect.DeepEqual(got, base) {
		t.Errorf("JSON() = %v, want base %v unchanged", got, base)
	}
}

func TestJSONMergesNestedDocuments(t *testing.T) {
	base := apiextensionsv1.JSON{Raw: []byte(`{"mode":"PodToPod","streams":1,"list":["a","b"]}`)}
	override := apiextensionsv1.JSON{Raw: []byte(`{"streams":4,"list":["z"]}`)}

	got, err := JSON(base, override)
	if err != nil {
		t.Fatalf("JSON() returned error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(got.Raw, &decoded); err != nil {
		t.Fatalf("decoding merged result: %v", err)
	}

	if decoded["mode"] != "PodToPod" {
		t.Errorf("mode = %v, want PodToPod (untouched by override)", decoded["mode"])
	}
	if decoded["streams"] != 4.0 {
		t.Errorf("streams = %v, want 4", decoded["streams"])
	}
	list, ok := decoded["list"].([]interface{})
	if !ok || len(list) != 1 || list[0] != "z" {
		t.Errorf("list = %v, want override list [\"z\"] verbatim, not concatenated", decoded["list"])
	}
}
