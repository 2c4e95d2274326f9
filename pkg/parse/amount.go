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

import "fmt"

var siPrefixes = []string{"", "K", "M", "G", "T", "P"}

// FormatAmount scales amount by repeated division by base (1000 for SI,
// 1024 for IEC) until it fits in [1, base), then renders it with two
// decimal places and the matching prefix, e.g. FormatAmount(980000, 1000)
// = "980.00 K".
func FormatAmount(amount float64, base float64) string {
	prefix := 0
	for amount >= base && prefix < len(siPrefixes)-1 {
		amount /= base
		prefix++
	}
	return fmt.Sprintf("%.2f %s", amount, siPrefixes[prefix])
}
