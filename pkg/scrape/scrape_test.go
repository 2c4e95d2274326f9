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

package scrape

import (
	"context"
	"testing"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func TestLogsSkipsPodsWithoutTheContainer(t *testing.T) {
	clientset := fake.NewSimpleClientset()
	pods := []corev1.Pod{
		{
			ObjectMeta: metav1.ObjectMeta{Name: "a", Namespace: "ns"},
			Spec:       corev1.PodSpec{Containers: []corev1.Container{{Name: "other"}}},
		},
	}

	got, err := Logs(context.Background(), clientset, "ns", pods, "client")
	if err != nil {
		t.Fatalf("Logs() returned error: %v", err)
	}
	if got != "" {
		t.Errorf("Logs() = %q, want empty since no pod has the container", got)
	}
}

func TestLogsVisitsEveryPodWithTheContainer(t *testing.T) {
	clientset := fake.NewSimpleClientset()
	pods := []corev1.Pod{
		{
			ObjectMeta: metav1.ObjectMeta{Name: "b", Namespace: "ns"},
			Spec:       corev1.PodSpec{Containers: []corev1.Container{{Name: "client"}}},
		},
		{
			ObjectMeta: metav1.ObjectMeta{Name: "a", Namespace: "ns"},
			Spec:       corev1.PodSpec{Containers: []corev1.Container{{Name: "client"}}},
		},
	}

	// The fake clientset's GetLogs returns a canned "fake logs" stream
	// regardless of pod identity, so this test checks that both pods are
	// visited without erroring; it cannot tell the order they were read in.
	got, err := Logs(context.Background(), clientset, "ns", pods, "client")
	if err != nil {
		t.Fatalf("Logs() returned error: %v", err)
	}
	if got != "fake logsfake logs" {
		t.Errorf("Logs() = %q, want one canned stream per pod", got)
	}
}
