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
// limitations under the License

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

// Define all the prometheus counters and gauges for benchmarks of every kind.
var (
	benchmarksCreatedCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "perftest_benchmarks_created_total",
			Help: "Counts number of benchmarks created",
		},
		[]string{"namespace", "kind"},
	)
	benchmarksSucceededCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "perftest_benchmarks_succeeded_total",
			Help: "Counts number of benchmarks that reached phase Succeeded",
		},
		[]string{"namespace", "kind"},
	)
	benchmarksFailedCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "perftest_benchmarks_failed_total",
			Help: "Counts number of benchmarks that reached phase Failed",
		},
		[]string{"namespace", "kind"},
	)
	benchmarksRestartedCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "perftest_benchmarks_restarted_total",
			Help: "Counts number of benchmarks whose gang Job restarted after a pod eviction",
		},
		[]string{"namespace", "kind"},
	)
	benchmarksRunningGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "perftest_benchmarks_running",
			Help: "Current number of benchmarks in phase Running",
		},
		[]string{"namespace", "kind"},
	)
	benchmarkSetProgressGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "perftest_benchmark_set_progress_ratio",
			Help: "Fraction of a benchmark set's permutations that have completed",
		},
		[]string{"namespace", "name"},
	)
)

func init() {
	metrics.Registry.MustRegister(
		benchmarksCreatedCount,
		benchmarksSucceededCount,
		benchmarksFailedCount,
		benchmarksRestartedCount,
		benchmarksRunningGauge,
		benchmarkSetProgressGauge,
	)
}

func CreatedInc(namespace, kind string)   { benchmarksCreatedCount.WithLabelValues(namespace, kind).Inc() }
func SucceededInc(namespace, kind string) { benchmarksSucceededCount.WithLabelValues(namespace, kind).Inc() }
func FailedInc(namespace, kind string)    { benchmarksFailedCount.WithLabelValues(namespace, kind).Inc() }
func RestartedInc(namespace, kind string) { benchmarksRestartedCount.WithLabelValues(namespace, kind).Inc() }

func RunningInc(namespace, kind string) { benchmarksRunningGauge.WithLabelValues(namespace, kind).Inc() }
func RunningDec(namespace, kind string) { benchmarksRunningGauge.WithLabelValues(namespace, kind).Dec() }

func SetRunning(namespace, kind string, count float64) {
	benchmarksRunningGauge.WithLabelValues(namespace, kind).Set(count)
}

func SetBenchmarkSetProgress(namespace, name string, ratio float64) {
	benchmarkSetProgressGauge.WithLabelValues(namespace, name).Set(ratio)
}
