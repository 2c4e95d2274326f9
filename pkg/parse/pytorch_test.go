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

const pytorchCPUFixture = `
CPU Wall Time: 12.340 s
CPU Peak Memory: 1.5 GB
`

const pytorchGPUFixture = `
CPU Wall Time: 12.340 s
CPU Peak Memory: 1.5 GB
GPU Time: 3.210 s
GPU Peak Memory: 8.0 GB
	Command being timed: "python3 -m perftest.pytorch_benchmark"
	User time (seconds): 30.00
	System time (seconds): 2.00
	Percent of CPU this job got: 250%
	Elapsed (wall clock) time (h:mm:ss or m:ss): 0:12.80
`

func TestPyTorchParsesCPUOnly(t *testing.T) {
	got, err := PyTorch(pytorchCPUFixture)
	if err != nil {
		t.Fatalf("PyTorch() returned error: %v", err)
	}
	if got.CPUTimeSeconds != 12.340 || got.PeakCPUMemoryGB != 1.5 {
		t.Errorf("got %+v", got)
	}
	if got.GPUTimeSeconds != nil {
		t.Errorf("GPUTimeSeconds = %v, want nil for a CPU-only run", *got.GPUTimeSeconds)
	}
}

func TestPyTorchParsesGPUAndGnuTime(t *testing.T) {
	got, err := PyTorch(pytorchGPUFixture)
	if err != nil {
		t.Fatalf("PyTorch() returned error: %v", err)
	}
	if got.GPUTimeSeconds == nil || *got.GPUTimeSeconds != 3.210 {
		t.Errorf("GPUTimeSeconds = %v, want 3.210", got.GPUTimeSeconds)
	}
	if got.GnuTime == nil || got.GnuTime.CPUPercentage != 250 {
		t.Errorf("GnuTime = %+v, want CPUPercentage 250", got.GnuTime)
	}
}

func TestPyTorchIncompleteWithoutBanner(t *testing.T) {
	if _, err := PyTorch("loading model..."); err == nil {
		t.Error("expected an IncompleteResultsError")
	}
}
