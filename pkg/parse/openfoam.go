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

var (
	timeUserPattern    = regexp.MustCompile(`User time \(seconds\):\s*([\d.]+)`)
	timeSysPattern     = regexp.MustCompile(`System time \(seconds\):\s*([\d.]+)`)
	timeElapsedPattern = regexp.MustCompile(`Elapsed \(wall clock\) time.*:\s*([\d:.]+)`)
)

// OpenFOAM parses GNU time's verbose report (-v) wrapping the launcher's
// mpirun invocation of the case's run script. The wrapping, rather than
// OpenFOAM's own per-solver log, is what gives a runtime comparable across
// problem sizes and iterative methods without understanding either.
func OpenFOAM(logs string) (*perftestv1alpha1.OpenFOAMResult, error) {
	userMatch := timeUserPattern.FindStringSubmatch(logs)
	sysMatch := timeSysPattern.FindStringSubmatch(logs)
	elapsedMatch := timeElapsedPattern.FindStringSubmatch(logs)
	if userMatch == nil || sysMatch == nil || elapsedMatch == nil {
		if strings.Contains(logs, "Command being timed") {
			return nil, &IncompleteResultsError{Kind: "OpenFOAM", Message: "GNU time banner seen but report lines not complete yet"}
		}
		return nil, &ParseError{Kind: "OpenFOAM", Message: "output does not contain a GNU time -v report"}
	}

	wall, err := parseElapsed(elapsedMatch[1])
	if err != nil {
		return nil, &ParseError{Kind: "OpenFOAM", Message: err.Error()}
	}
	user, _ := strconv.ParseFloat(userMatch[1], 64)
	sys, _ := strconv.ParseFloat(sysMatch[1], 64)

	return &perftestv1alpha1.OpenFOAMResult{
		WallClockTimeSeconds: wall,
		UserTimeSeconds:      user,
		SysTimeSeconds:       sys,
	}, nil
}

// parseElapsed converts GNU time's "[h:]mm:ss[.ss]" elapsed format to
// seconds.
func parseElapsed(s string) (float64, error) {
	parts := strings.Split(s, ":")
	var seconds float64
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, err
		}
		seconds = seconds*60 + v
	}
	return seconds, nil
}
