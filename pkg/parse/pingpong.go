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

// pingpongRowPattern matches one data row of IMB-MPI1's PingPong table:
// "#bytes #repetitions t[usec] Mbytes/sec".
var pingpongRowPattern = regexp.MustCompile(`^\s*(\d+)\s+(\d+)\s+([\d.]+)\s+([\d.]+)\s*$`)

// MPIPingPong parses Intel MPI Benchmarks' IMB-MPI1 PingPong table. The
// benchmark writes the header before the table body, so a document with
// a header but no rows yet is incomplete, not malformed; a document with
// neither is not an IMB-MPI1 benchmark's output at all.
func MPIPingPong(logs string) (*perftestv1alpha1.MPIPingPongResult, error) {
	if !strings.Contains(logs, "Benchmarking PingPong") {
		return nil, &ParseError{Kind: "MPIPingPong", Message: "output does not contain an IMB-MPI1 PingPong banner"}
	}

	var messages []perftestv1alpha1.MPIPingPongMessageResult
	for _, line := range strings.Split(logs, "\n") {
		m := pingpongRowPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		bytesN, _ := strconv.ParseInt(m[1], 10, 64)
		reps, _ := strconv.ParseInt(m[2], 10, 64)
		latency, _ := strconv.ParseFloat(m[3], 64)
		bandwidth, _ := strconv.ParseFloat(m[4], 64)
		messages = append(messages, perftestv1alpha1.MPIPingPongMessageResult{
			Bytes:         bytesN,
			Repetitions:   reps,
			LatencyUsec:   latency,
			BandwidthMBps: bandwidth,
		})
	}

	if len(messages) == 0 {
		return nil, &IncompleteResultsError{Kind: "MPIPingPong", Message: "banner seen but no message-size rows parsed yet"}
	}

	return &perftestv1alpha1.MPIPingPongResult{
		Messages: messages,
		Summary:  fmt.Sprintf("%d B - %d B", messages[0].Bytes, messages[len(messages)-1].Bytes),
	}, nil
}
