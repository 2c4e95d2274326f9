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

import (
	"regexp"
	"strconv"

	perftestv1alpha1 "github.com/stackhpc/kube-perftest-operator/pkg/apis/perftest/v1alpha1"
)

var (
	cpuWallTimePattern   = regexp.MustCompile(`CPU Wall Time:\s*([\d.]+)\s*s`)
	cpuPeakMemoryPattern = regexp.MustCompile(`CPU Peak Memory:\s*([\d.]+)\s*GB`)
	gpuTimePattern       = regexp.MustCompile(`GPU Time:\s*([\d.]+)\s*s`)
	gpuPeakMemoryPattern = regexp.MustCompile(`GPU Peak Memory:\s*([\d.]+)\s*GB`)
	gnuTimeCommandPattern = regexp.MustCompile(`Command being timed:\s*"(.*)"`)
	gnuTimeUserPattern    = regexp.MustCompile(`User time \(seconds\):\s*([\d.]+)`)
	gnuTimeSysPattern     = regexp.MustCompile(`System time \(seconds\):\s*([\d.]+)`)
	gnuTimeCPUPattern     = regexp.MustCompile(`Percent of CPU this job got:\s*(\d+)%`)
	gnuTimeElapsedPattern = regexp.MustCompile(`Elapsed \(wall clock\) time.*:\s*([\d:.]+)`)
)

// PyTorch parses the model micro-benchmark's own "CPU Wall Time"/"CPU Peak
// Memory"/"GPU Time"/"GPU Peak Memory" banner lines, plus the wrapping GNU
// time -v report when present.
func PyTorch(logs string) (*perftestv1alpha1.PyTorchResult, error) {
	cpuTime := cpuWallTimePattern.FindStringSubmatch(logs)
	cpuMem := cpuPeakMemoryPattern.FindStringSubmatch(logs)
	if cpuTime == nil || cpuMem == nil {
		return nil, &IncompleteResultsError{Kind: "PyTorch", Message: "CPU Wall Time / CPU Peak Memory banner not seen yet"}
	}

	result := &perftestv1alpha1.PyTorchResult{}
	result.CPUTimeSeconds, _ = strconv.ParseFloat(cpuTime[1], 64)
	result.PeakCPUMemoryGB, _ = strconv.ParseFloat(cpuMem[1], 64)

	if m := gpuTimePattern.FindStringSubmatch(logs); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		result.GPUTimeSeconds = &v
	}
	if m := gpuPeakMemoryPattern.FindStringSubmatch(logs); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		result.PeakGPUMemoryGB = &v
	}

	if gt := parseGnuTime(logs); gt != nil {
		result.GnuTime = gt
	}

	return result, nil
}

func parseGnuTime(logs string) *perftestv1alpha1.GnuTimeResult {
	cmd := gnuTimeCommandPattern.FindStringSubmatch(logs)
	user := gnuTimeUserPattern.FindStringSubmatch(logs)
	sys := gnuTimeSysPattern.FindStringSubmatch(logs)
	cpuPct := gnuTimeCPUPattern.FindStringSubmatch(logs)
	elapsed := gnuTimeElapsedPattern.FindStringSubmatch(logs)
	if cmd == nil || user == nil || sys == nil || elapsed == nil {
		return nil
	}

	gt := &perftestv1alpha1.GnuTimeResult{Command: cmd[1]}
	gt.UserTimeSeconds, _ = strconv.ParseFloat(user[1], 64)
	gt.SysTimeSeconds, _ = strconv.ParseFloat(sys[1], 64)
	gt.WallTimeSeconds, _ = parseElapsed(elapsed[1])
	if cpuPct != nil {
		pct, _ := strconv.ParseInt(cpuPct[1], 10, 32)
		gt.CPUPercentage = int32(pct)
	}
	return gt
}
