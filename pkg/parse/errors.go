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

// Package parse turns a benchmark kind's raw result-pod log output into
// its typed result.
package parse

import "fmt"

// ParseError means the logs were present but did not match the tool's
// expected output format at all; the reconciler treats this as a
// terminal Failed, not a re-queue, since re-scraping will not fix it.
type ParseError struct {
	Kind    string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s output: %s", e.Kind, e.Message)
}

// IncompleteResultsError means the logs matched the tool's format as far
// as they go, but the run has not finished writing its summary yet; the
// reconciler re-queues rather than failing.
type IncompleteResultsError struct {
	Kind    string
	Message string
}

func (e *IncompleteResultsError) Error() string {
	return fmt.Sprintf("%s results incomplete: %s", e.Kind, e.Message)
}
