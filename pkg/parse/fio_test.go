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

const fioFixture = `
{
  "jobs": [
    {
      "read": {"bw": 102400, "iops": 25600.0, "lat_ns": {"mean": 40000.0, "stddev": 2000.0}},
      "write": {"bw": 0, "iops": 0.0, "lat_ns": {"mean": 0.0, "stddev": 0.0}}
    },
    {
      "read": {"bw": 102400, "iops": 25600.0, "lat_ns": {"mean": 44000.0, "stddev": 3000.0}},
      "write": {"bw": 0, "iops": 0.0, "lat_ns": {"mean": 0.0, "stddev": 0.0}}
    }
  ]
}
`

func TestFioSumsAcrossJobs(t *testing.T) {
	got, err := Fio(fioFixture)
	if err != nil {
		t.Fatalf("Fio() returned error: %v", err)
	}
	if got.ReadBandwidthKBps != 204800 {
		t.Errorf("ReadBandwidthKBps = %d, want 204800", got.ReadBandwidthKBps)
	}
	if got.ReadLatencyMeanUsec != 42.0 {
		t.Errorf("ReadLatencyMeanUsec = %v, want 42.0 (average of 40 and 44)", got.ReadLatencyMeanUsec)
	}
}

func TestFioIncompleteWithoutJobs(t *testing.T) {
	if _, err := Fio(`{"jobs": []}`); err == nil {
		t.Error("expected an IncompleteResultsError for an empty jobs array")
	}
}
