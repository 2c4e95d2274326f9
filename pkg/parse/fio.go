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
	"bytes"
	"encoding/json"
	"fmt"

	perftestv1alpha1 "github.com/stackhpc/kube-perftest-operator/pkg/apis/perftest/v1alpha1"
)

// lastJSONObject returns the last brace-balanced {...} object found in
// data, so that a report log containing extra text (or more than one
// JSON document, e.g. from a re-run) still yields the final one. If no
// balanced object is found, it returns data unchanged so the caller's
// json.Unmarshal fails with a useful error.
func lastJSONObject(data []byte) []byte {
	end := bytes.LastIndexByte(data, '}')
	if end == -1 {
		return data
	}
	depth := 0
	start := -1
	for i := end; i >= 0; i-- {
		switch data[i] {
		case '}':
			depth++
		case '{':
			depth--
			if depth == 0 {
				start = i
			}
		}
		if start != -1 {
			break
		}
	}
	if start == -1 {
		return data
	}
	return data[start : end+1]
}

type fioLatency struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
}

type fioDirStats struct {
	BWKBps int64      `json:"bw"`
	IOPS   float64    `json:"iops"`
	LatNs  fioLatency `json:"lat_ns"`
}

type fioJob struct {
	Read  fioDirStats `json:"read"`
	Write fioDirStats `json:"write"`
}

type fioDocument struct {
	Jobs []fioJob `json:"jobs"`
}

// Fio parses fio's --output-format=json+ report, summing bandwidth and
// IOPS and averaging latency across every job entry (one per client
// replica, when NumWorkers > 1).
func Fio(logs string) (*perftestv1alpha1.FioResult, error) {
	var doc fioDocument
	if err := json.Unmarshal(lastJSONObject([]byte(logs)), &doc); err != nil {
		return nil, &IncompleteResultsError{Kind: "Fio", Message: fmt.Sprintf("no complete JSON report yet: %v", err)}
	}
	if len(doc.Jobs) == 0 {
		return nil, &IncompleteResultsError{Kind: "Fio", Message: "jobs array is empty"}
	}

	result := &perftestv1alpha1.FioResult{}
	for _, job := range doc.Jobs {
		result.ReadBandwidthKBps += job.Read.BWKBps
		result.ReadIOPS += job.Read.IOPS
		result.ReadLatencyMeanUsec += job.Read.LatNs.Mean / 1000
		result.ReadLatencyStdDevUsec += job.Read.LatNs.StdDev / 1000
		result.WriteBandwidthKBps += job.Write.BWKBps
		result.WriteIOPS += job.Write.IOPS
		result.WriteLatencyMeanUsec += job.Write.LatNs.Mean / 1000
		result.WriteLatencyStdDevUsec += job.Write.LatNs.StdDev / 1000
	}
	n := float64(len(doc.Jobs))
	result.ReadLatencyMeanUsec /= n
	result.ReadLatencyStdDevUsec /= n
	result.WriteLatencyMeanUsec /= n
	result.WriteLatencyStdDevUsec /= n

	return result, nil
}
