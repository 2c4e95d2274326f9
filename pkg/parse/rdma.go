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
	"strings"

	perftestv1alpha1 "github.com/stackhpc/kube-perftest-operator/pkg/apis/perftest/v1alpha1"
)

// rdmaBandwidthRowPattern matches ib_*_bw's data row:
// "#bytes #iterations BW peak[MB/sec] BW average[MB/sec] MsgRate[Mpps]".
var rdmaBandwidthRowPattern = regexp.MustCompile(`^\s*(\d+)\s+(\d+)\s+([\d.]+)\s+([\d.]+)\s+([\d.]+)\s*$`)

// RDMABandwidth parses the single data row ib_write_bw/ib_read_bw print
// between their "------" banners; perftest always reports exactly one row
// per run (the message size under test), so the peak row is the result.
func RDMABandwidth(logs string) (*perftestv1alpha1.RDMABandwidthResult, error) {
	if !strings.Contains(logs, "BW peak") {
		return nil, &ParseError{Kind: "RDMABandwidth", Message: "output does not contain a perftest BW table header"}
	}
	for _, line := range strings.Split(logs, "\n") {
		m := rdmaBandwidthRowPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		bytesN, _ := strconv.ParseInt(m[1], 10, 64)
		iterations, _ := strconv.ParseInt(m[2], 10, 64)
		peak, _ := strconv.ParseFloat(m[3], 64)
		avg, _ := strconv.ParseFloat(m[4], 64)
		rate, _ := strconv.ParseFloat(m[5], 64)
		return &perftestv1alpha1.RDMABandwidthResult{
			RDMAMessageResult:    perftestv1alpha1.RDMAMessageResult{Bytes: bytesN, Iterations: iterations},
			PeakBandwidthMBps:    peak,
			AverageBandwidthMBps: avg,
			MessageRateMpps:      rate,
		}, nil
	}
	return nil, &IncompleteResultsError{Kind: "RDMABandwidth", Message: "header seen but no data row parsed yet"}
}

// rdmaLatencyRowPattern matches ib_*_lat's data row:
// "#bytes #iterations t_min t_max t_typical t_avg t_stdev 99% 99.9%".
var rdmaLatencyRowPattern = regexp.MustCompile(`^\s*(\d+)\s+(\d+)\s+([\d.]+)\s+([\d.]+)\s+([\d.]+)\s+([\d.]+)\s+([\d.]+)\s+([\d.]+)\s+([\d.]+)\s*$`)

// RDMALatency parses the single data row ib_write_lat/ib_read_lat print.
func RDMALatency(logs string) (*perftestv1alpha1.RDMALatencyResult, error) {
	if !strings.Contains(logs, "t_min") {
		return nil, &ParseError{Kind: "RDMALatency", Message: "output does not contain a perftest latency table header"}
	}
	for _, line := range strings.Split(logs, "\n") {
		m := rdmaLatencyRowPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		bytesN, _ := strconv.ParseInt(m[1], 10, 64)
		iterations, _ := strconv.ParseInt(m[2], 10, 64)
		min, _ := strconv.ParseFloat(m[3], 64)
		max, _ := strconv.ParseFloat(m[4], 64)
		typical, _ := strconv.ParseFloat(m[5], 64)
		avg, _ := strconv.ParseFloat(m[6], 64)
		stddev, _ := strconv.ParseFloat(m[7], 64)
		p99, _ := strconv.ParseFloat(m[8], 64)
		p999, _ := strconv.ParseFloat(m[9], 64)
		return &perftestv1alpha1.RDMALatencyResult{
			RDMAMessageResult:  perftestv1alpha1.RDMAMessageResult{Bytes: bytesN, Iterations: iterations},
			MinimumUsec:        min,
			MaximumUsec:        max,
			TypicalUsec:        typical,
			AverageUsec:        avg,
			StdDevUsec:         stddev,
			Percentile99Usec:   p99,
			Percentile999Usec:  p999,
		}, nil
	}
	return nil, &IncompleteResultsError{Kind: "RDMALatency", Message: "header seen but no data row parsed yet"}
}
