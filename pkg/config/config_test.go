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

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSchedulerNameIsNotVolcano(t *testing.T) {
	cfg := Default()
	if cfg.SchedulerName != "default-scheduler" {
		t.Errorf("expected default scheduler name %q, got %q", "default-scheduler", cfg.SchedulerName)
	}
}

func TestLoadWithoutFileReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") returned error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(\"\") = %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoadFromFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := []byte("queueName: bulk\npriority:\n  min: 100\n  max: 2000\n")
	if err := os.WriteFile(path, contents, 0o600); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%s) returned error: %v", path, err)
	}
	if cfg.QueueName != "bulk" {
		t.Errorf("queueName = %q, want %q", cfg.QueueName, "bulk")
	}
	if cfg.Priority.Min != 100 || cfg.Priority.Max != 2000 {
		t.Errorf("priority = %+v, want {100 2000}", cfg.Priority)
	}
	if cfg.SchedulerName != "default-scheduler" {
		t.Errorf("unset fields should keep defaults, schedulerName = %q", cfg.SchedulerName)
	}
}

func TestEnvOverrideWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := []byte("queueName: from-file\npriority:\n  max: 2000\n")
	if err := os.WriteFile(path, contents, 0o600); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}
	t.Setenv("KUBE_PERFTEST__QUEUE_NAME", "from-env")
	t.Setenv("KUBE_PERFTEST__PRIORITY_MAX", "42")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%s) returned error: %v", path, err)
	}
	if cfg.QueueName != "from-env" {
		t.Errorf("queueName = %q, want %q", cfg.QueueName, "from-env")
	}
	if cfg.Priority.Max != 42 {
		t.Errorf("priority.max = %d, want 42", cfg.Priority.Max)
	}
}

func TestEnvOverrideRejectsBadInt(t *testing.T) {
	t.Setenv("KUBE_PERFTEST__PRIORITY_MAX", "not-a-number")

	if _, err := Load(""); err == nil {
		t.Error("expected an error for a non-numeric PRIORITY_MAX override")
	}
}
