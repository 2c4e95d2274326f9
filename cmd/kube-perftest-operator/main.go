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

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/kubernetes"
	_ "k8s.io/client-go/plugin/pkg/client/auth"
	"k8s.io/klog/v2"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/cache"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	metricsserver "sigs.k8s.io/controller-runtime/pkg/metrics/server"
	volcanobatchv1alpha1 "volcano.sh/apis/pkg/apis/batch/v1alpha1"

	perftestv1alpha1 "github.com/stackhpc/kube-perftest-operator/pkg/apis/perftest/v1alpha1"
	"github.com/stackhpc/kube-perftest-operator/pkg/config"
	"github.com/stackhpc/kube-perftest-operator/pkg/controller"
	"github.com/stackhpc/kube-perftest-operator/pkg/priority"
	"github.com/stackhpc/kube-perftest-operator/pkg/registry"
	"github.com/stackhpc/kube-perftest-operator/version"
	//+kubebuilder:scaffold:imports
)

var (
	scheme   = runtime.NewScheme()
	setupLog = ctrl.Log.WithName("setup")
)

func init() {
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
	utilruntime.Must(perftestv1alpha1.AddToScheme(scheme))
	utilruntime.Must(volcanobatchv1alpha1.AddToScheme(scheme))
	//+kubebuilder:scaffold:scheme
}

// runOptions holds the flags shared by the root command's default run and
// bound once via NewCommand, rather than package-level vars, so the
// command tree stays testable.
type runOptions struct {
	metricsAddr          string
	probeAddr            string
	enableLeaderElection bool
	namespace            string
	configPath           string
	zapOpts              zap.Options
}

func main() {
	if err := NewCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewCommand builds the operator's command tree: running the binary with
// no subcommand starts the manager, "version" prints build information
// and exits.
func NewCommand() *cobra.Command {
	opts := &runOptions{
		zapOpts: zap.Options{
			Development:     true,
			StacktraceLevel: zapcore.DPanicLevel,
		},
	}

	cmd := &cobra.Command{
		Use:   "kube-perftest-operator",
		Short: "Runs the kube-perftest-operator controller manager.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.metricsAddr, "metrics-bind-address", ":8080", "The address the metric endpoint binds to.")
	cmd.PersistentFlags().StringVar(&opts.probeAddr, "health-probe-bind-address", ":8081", "The address the probe endpoint binds to.")
	cmd.PersistentFlags().BoolVar(&opts.enableLeaderElection, "leader-elect", false,
		"Enable leader election for controller manager. "+
			"Enabling this will ensure there is only one active controller manager.")
	cmd.PersistentFlags().StringVar(&opts.namespace, "namespace", os.Getenv("KUBE_PERFTEST_NAMESPACE"),
		"The namespace to watch for benchmarks. If unset, watches cluster-wide.")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", os.Getenv("KUBE_PERFTEST_CONFIG"),
		"Path to a YAML configuration file. If unset, built-in defaults apply, subject to "+config.EnvPrefix+" environment overrides.")

	goFlagSet := flag.NewFlagSet("zap", flag.ContinueOnError)
	opts.zapOpts.BindFlags(goFlagSet)
	cmd.PersistentFlags().AddGoFlagSet(goFlagSet)

	cmd.AddCommand(newVersionCommand())
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information and exit.",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(version.Info())
			return nil
		},
	}
}

func run(opts *runOptions) error {
	ctrl.SetLogger(zap.New(zap.UseFlagOptions(&opts.zapOpts)))
	// Routes k8s.io/klog/v2 output (used internally by client-go's
	// transport and leader-election code) through the same logr sink as
	// the rest of the manager, instead of klog's own stderr writer.
	klog.SetLogger(ctrl.Log)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		setupLog.Error(err, "unable to load configuration")
		return err
	}

	var cacheOpts cache.Options
	if opts.namespace != "" {
		cacheOpts.DefaultNamespaces = map[string]cache.Config{opts.namespace: {}}
	}

	mgr, err := ctrl.NewManager(ctrl.GetConfigOrDie(), ctrl.Options{
		Scheme:                 scheme,
		Metrics:                metricsserver.Options{BindAddress: opts.metricsAddr},
		HealthProbeBindAddress: opts.probeAddr,
		LeaderElection:         opts.enableLeaderElection,
		LeaderElectionID:       "kube-perftest-operator.stackhpc.com",
		Cache:                  cacheOpts,
	})
	if err != nil {
		setupLog.Error(err, "unable to start manager")
		return err
	}

	controller.RegisterKinds()

	allocator := priority.NewAllocator(cfg.Priority)

	clientset, err := kubernetesClientset()
	if err != nil {
		setupLog.Error(err, "unable to build kubernetes clientset")
		return err
	}

	for _, kind := range registry.Kinds() {
		entry := registry.MustLookup(kind)
		r := &controller.BenchmarkReconciler{
			Client:    mgr.GetClient(),
			Scheme:    mgr.GetScheme(),
			Recorder:  mgr.GetEventRecorderFor(kind + "-controller"),
			Clientset: clientset,
			Config:    cfg,
			Allocator: allocator,
			Entry:     entry,
		}
		if err := r.SetupWithManager(mgr); err != nil {
			setupLog.Error(err, "unable to create controller", "kind", kind)
			return err
		}
	}

	setReconciler := &controller.BenchmarkSetReconciler{
		Client:   mgr.GetClient(),
		Scheme:   mgr.GetScheme(),
		Recorder: mgr.GetEventRecorderFor("BenchmarkSet-controller"),
	}
	if err := setReconciler.SetupWithManager(mgr); err != nil {
		setupLog.Error(err, "unable to create controller", "kind", "BenchmarkSet")
		return err
	}
	//+kubebuilder:scaffold:builder

	if err := mgr.AddHealthzCheck("healthz", healthz.Ping); err != nil {
		setupLog.Error(err, "unable to set up health check")
		return err
	}
	if err := mgr.AddReadyzCheck("readyz", healthz.Ping); err != nil {
		setupLog.Error(err, "unable to set up ready check")
		return err
	}

	setupLog.Info("starting manager")
	if err := mgr.Start(ctrl.SetupSignalHandler()); err != nil {
		setupLog.Error(err, "problem running manager")
		os.Exit(2)
	}
	return nil
}

// kubernetesClientset builds a client-go clientset against the same
// kubeconfig/in-cluster config controller-runtime resolves, used only for
// the pod-log scrape reconcileSummarising does (controller-runtime's
// client has no log-streaming API).
func kubernetesClientset() (kubernetes.Interface, error) {
	return kubernetes.NewForConfig(ctrl.GetConfigOrDie())
}
