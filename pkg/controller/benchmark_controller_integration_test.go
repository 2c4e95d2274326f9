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

package controller

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	schedulingv1 "k8s.io/api/scheduling/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"

	perftestv1alpha1 "github.com/stackhpc/kube-perftest-operator/pkg/apis/perftest/v1alpha1"
)

const eventualTimeout = 10 * time.Second
const eventualInterval = 250 * time.Millisecond

var _ = Describe("BenchmarkReconciler against a real API server", func() {
	It("creates a cluster-scoped PriorityClass with no owner reference, then cleans it up on deletion", func() {
		bench := &perftestv1alpha1.IPerf{
			ObjectMeta: metav1.ObjectMeta{GenerateName: "iperf-", Namespace: "default"},
			Spec: perftestv1alpha1.IPerfSpec{
				CommonSpec: perftestv1alpha1.CommonSpec{Image: "iperf:latest"},
				Mode:       perftestv1alpha1.IPerfModePodToService,
				Duration:   10,
			},
		}
		Expect(testK8sClient.Create(testCtx, bench)).To(Succeed())
		key := types.NamespacedName{Namespace: bench.Namespace, Name: bench.Name}

		By("waiting for the benchmark to be allocated a priority class")
		Eventually(func() string {
			got := &perftestv1alpha1.IPerf{}
			if err := testK8sClient.Get(testCtx, key, got); err != nil {
				return ""
			}
			return got.Status.PriorityClassName
		}, eventualTimeout, eventualInterval).ShouldNot(BeEmpty())

		got := &perftestv1alpha1.IPerf{}
		Expect(testK8sClient.Get(testCtx, key, got)).To(Succeed())
		Expect(got.Finalizers).To(ContainElement(priorityClassFinalizer))

		By("checking the priority class exists and carries no owner reference")
		pc := &schedulingv1.PriorityClass{}
		Expect(testK8sClient.Get(testCtx, types.NamespacedName{Name: got.Status.PriorityClassName}, pc)).To(Succeed())
		Expect(pc.OwnerReferences).To(BeEmpty())

		By("deleting the benchmark")
		Expect(testK8sClient.Delete(testCtx, got)).To(Succeed())

		Eventually(func() error {
			return testK8sClient.Get(testCtx, key, &perftestv1alpha1.IPerf{})
		}, eventualTimeout, eventualInterval).ShouldNot(Succeed())

		By("checking the priority class was cleaned up with it")
		Eventually(func() error {
			return testK8sClient.Get(testCtx, types.NamespacedName{Name: got.Status.PriorityClassName}, &schedulingv1.PriorityClass{})
		}, eventualTimeout, eventualInterval).ShouldNot(Succeed())
	})
})
