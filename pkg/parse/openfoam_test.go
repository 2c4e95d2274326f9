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

const openfoamFixture = `
	Command being timed: "mpirun -np 4 -hostfile /etc/perftest/hosts /case/run.sh"
	User time (seconds): 120.50
	System time (seconds): 4.20
	Percent of CPU this job got: 398%
	Elapsed (wall clock) time (h:mm:ss or m:ss): 0:31.30
`

func TestOpenFOAMParsesGnuTimeReport(t *testing.T) {
	got, err := OpenFOAM(openfoamFixture)
	if err != nil {
		t.Fatalf("OpenFOAM() returned error: %v", err)
	}
	if got.UserTimeSeconds != 120.50 || got.SysTimeSeconds != 4.20 {
		t.Errorf("got %+v", got)
	}
	if got.WallClockTimeSeconds != 31.30 {
		t.Errorf("WallClockTimeSeconds = %v, want 31.30", got.WallClockTimeSeconds)
	}
}

func TestOpenFOAMIncompleteWithJustBanner(t *testing.T) {
	if _, err := OpenFOAM(`Command being timed: "mpirun ..."`); err == nil {
		t.Error("expected an IncompleteResultsError")
	} else if _, ok := err.(*IncompleteResultsError); !ok {
		t.Errorf("got %T, want *IncompleteResultsError", err)
	}
}
