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

package parse

import "testing"

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		amount float64
		base   float64
		want   string
	}{
		{500, 1000, "500.00 "},
		{980000, 1000, "980.00 K"},
		{1 << 20, 1024, "1.00 M"},
	}
	for _, c := range cases {
		got := FormatAmount(c.amount, c.base)
		if got != c.want {
			t.Errorf("FormatAmount(%v, %v) = %q, want %q", c.amount, c.base, got, c.want)
		}
	}
}
