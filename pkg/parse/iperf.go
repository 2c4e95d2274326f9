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
	"fmt"
	"regexp"
	"strconv"
	"strings"

	perftestv1alpha1 "github.com/stackhpc/kube-perftest-operator/pkg/apis/perftest/v1alpha1"
)

var (
	iperfHeaderPattern = regexp.MustCompile(`^\[\s*ID\]`)
	iperfRowPattern    = regexp.MustCompile(`^\[\s*([a-zA-Z0-9]+)\].*?(\d+) KBytes\s+(\d+) Kbits/sec`)
)

// IPerf parses iperf3's default text report: a "[ ID] Interval ..." header
// followed by one row per stream, repeated per interval, and finally one
// "sender"/"receiver" pair per stream once the run ends. With more than one
// parallel stream (-P > 1) the final pair also includes a "[SUM]" row,
// which is then the run's summary; with a single stream there is no SUM
// row, so that stream's own final row is the summary instead. iperf3
// writes the report incrementally as the run progresses, so a log with the
// header but no final row yet is incomplete, not malformed.
func IPerf(logs string) (*perftestv1alpha1.IPerfResult, error) {
	lines := strings.Split(logs, "\n")

	start := -1
	for i, line := range lines {
		if iperfHeaderPattern.MatchString(line) {
			start = i
			break
		}
	}
	if start == -1 {
		return nil, &IncompleteResultsError{Kind: "IPerf", Message: "no report header seen yet"}
	}

	finals := make(map[string]perftestv1alpha1.IPerfStreamResult)
	for _, line := range lines[start+1:] {
		if !strings.Contains(line, "sender") {
			continue
		}
		m := iperfRowPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		transfer, _ := strconv.ParseInt(m[2], 10, 64)
		bandwidth, _ := strconv.ParseInt(m[3], 10, 64)
		finals[m[1]] = perftestv1alpha1.IPerfStreamResult{TransferKBytes: transfer, BandwidthKbps: bandwidth}
	}

	sum, ok := finals["SUM"]
	if ok {
		delete(finals, "SUM")
	} else if len(finals) == 1 {
		for _, result := range finals {
			sum = result
		}
		ok = true
	}
	if !ok {
		return nil, &IncompleteResultsError{Kind: "IPerf", Message: "header seen but no final sender row parsed yet"}
	}

	return &perftestv1alpha1.IPerfResult{
		Streams:       finals,
		Sum:           sum,
		BandwidthGbps: fmt.Sprintf("%.2f", float64(sum.BandwidthKbps)/1e6),
	}, nil
}
