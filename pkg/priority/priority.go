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

// Package priority allocates the numeric priority stamped on each
// benchmark's PriorityClass. Priorities descend from a monotonic counter
// of benchmarks ever seen, so an earlier-submitted benchmark always gets a
// higher priority than a later one.
package priority

import (
	"fmt"
	"sync"

	"github.com/stackhpc/kube-perftest-operator/pkg/config"
)

// Allocator hands out strictly decreasing priorities within
// [window.Min, window.Max]. The counter is the only mutable state shared
// across reconciles of different benchmarks and must be updated under its
// mutex to guarantee uniqueness.
type Allocator struct {
	mu     sync.Mutex
	window config.PriorityWindow
	issued int32
}

// NewAllocator returns an Allocator drawing from window.
func NewAllocator(window config.PriorityWindow) *Allocator {
	return &Allocator{window: window}
}

// Allocate returns the next priority in descending order: window.Max on
// the first call, window.Max-1 on the second, and so on.
// It errors once the window is exhausted rather than wrapping around and
// silently reusing a priority.
func (a *Allocator) Allocate() (int32, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	priority := a.window.Max - a.issued
	if priority < a.window.Min {
		return 0, fmt.Errorf("priority window [%d,%d] exhausted after %d allocations", a.window.Min, a.window.Max, a.issued)
	}
	a.issued++
	return priority, nil
}

// Issued reports how many priorities this allocator has handed out so far.
func (a *Allocator) Issued() int32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.issued
}
