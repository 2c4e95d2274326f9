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
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/client-go/kubernetes/fake"
	"k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/envtest"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	metricsserver "sigs.k8s.io/controller-runtime/pkg/metrics/server"

	perftestv1alpha1 "github.com/stackhpc/kube-perftest-operator/pkg/apis/perftest/v1alpha1"
	"github.com/stackhpc/kube-perftest-operator/pkg/config"
	"github.com/stackhpc/kube-perftest-operator/pkg/priority"
	"github.com/stackhpc/kube-perftest-operator/pkg/registry"
)

// These tests use Ginkgo (BDD-style Go testing framework) against a real
// API server started by envtest, complementing the fake-client-based
// *_test.go files in this package with coverage of the parts a fake
// client cannot exercise faithfully: real finalizer/DeletionTimestamp
// semantics and a real cluster-scoped PriorityClass.

var (
	testK8sClient client.Client
	testEnv       *envtest.Environment
	testCtx       context.Context
	testCancel    context.CancelFunc
	testAllocator *priority.Allocator
)

func TestAPIs(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Controller Suite")
}

var _ = BeforeSuite(func() {
	const (
		timeout  = 10 * time.Second
		interval = 250 * time.Millisecond
	)
	logf.SetLogger(zap.New(zap.WriteTo(GinkgoWriter), zap.UseDevMode(true)))

	testCtx, testCancel = context.WithCancel(context.TODO())

	By("bootstrapping test environment")
	testEnv = &envtest.Environment{
		CRDDirectoryPaths:     []string{filepath.Join("..", "..", "config", "crd", "bases")},
		ErrorIfCRDPathMissing: true,
	}

	cfg, err := testEnv.Start()
	Expect(err).NotTo(HaveOccurred())
	Expect(cfg).NotTo(BeNil())

	Expect(perftestv1alpha1.AddToScheme(scheme.Scheme)).To(Succeed())

	testK8sClient, err = client.New(cfg, client.Options{Scheme: scheme.Scheme})
	Expect(err).NotTo(HaveOccurred())
	Expect(testK8sClient).NotTo(BeNil())

	mgr, err := ctrl.NewManager(cfg, ctrl.Options{
		Scheme:  scheme.Scheme,
		Metrics: metricsserver.Options{BindAddress: "0"},
	})
	Expect(err).NotTo(HaveOccurred())

	RegisterKinds()
	testAllocator = priority.NewAllocator(config.PriorityWindow{Min: 0, Max: 1000})
	reconciler := &BenchmarkReconciler{
		Client:    mgr.GetClient(),
		Scheme:    mgr.GetScheme(),
		Recorder:  mgr.GetEventRecorderFor("IPerf-controller"),
		Clientset: fake.NewSimpleClientset(),
		Config:    config.Default(),
		Allocator: testAllocator,
		Entry:     registry.MustLookup("IPerf"),
	}
	Expect(reconciler.SetupWithManager(mgr)).To(Succeed())

	go func() {
		defer GinkgoRecover()
		Expect(mgr.Start(testCtx)).To(Succeed())
	}()

	Eventually(func() error {
		nsList := &corev1.NamespaceList{}
		if err := testK8sClient.List(context.Background(), nsList); err != nil {
			return err
		} else if len(nsList.Items) < 1 {
			return fmt.Errorf("cannot get at least one namespace, got %d", len(nsList.Items))
		}
		return nil
	}, timeout, interval).Should(BeNil())
})

var _ = AfterSuite(func() {
	By("tearing down the test environment")
	testCancel()
	time.Sleep(2 * time.Second)
	Expect(testEnv.Stop()).NotTo(HaveOccurred())
})
