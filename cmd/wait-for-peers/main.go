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

// Command wait-for-peers blocks, as a task's init container, until the
// pod's real /etc/hosts (a subPath mount of the discovery ConfigMap's
// "hosts" key, see pkg/template.DiscoveryHostsMount) lists at least
// --count non-empty lines, then exits 0.
//
// A subPath mount is not refreshed in place the way a whole-ConfigMap
// mount is: once the kubelet has projected a key's value into the
// container at pod start, that value is frozen for the pod's lifetime,
// even after the ConfigMap is patched. So when --hosts-file is still
// short of --count, this falls back to polling --fallback-hosts-file (the
// same ConfigMap's whole-map mount, which the kubelet does keep in sync)
// and, as soon as that has enough peers, exits non-zero deliberately.
// That failure makes kubelet restart the pod, which remounts /etc/hosts
// fresh with the now-current data, letting the retried attempt succeed
// on its first check. It is baked into the operator's own container image
// (run from the configured discovery container image, not the benchmark's
// image) and never talks to the API server directly, only to the files
// the kubelet already mounted.
package main

import (
	"flag"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

func main() {
	hostsFile := flag.String("hosts-file", "/etc/hosts", "path to the pod's real hosts file, subPath-mounted from the discovery config map")
	fallbackHostsFile := flag.String("fallback-hosts-file", "/etc/perftest/hosts", "path to the whole-map mount of the same discovery config map, used to detect a stale subPath mount")
	count := flag.Int("count", 0, "number of non-empty lines to wait for")
	timeout := flag.Duration("timeout", 10*time.Minute, "give up and exit non-zero after this long")
	pollInterval := flag.Duration("poll-interval", 2*time.Second, "how often to re-read the fallback hosts file")
	flag.Parse()

	if *count <= 0 {
		log.Fatal("--count must be positive")
	}

	if n, err := countLines(*hostsFile); err == nil && n >= *count {
		log.WithFields(log.Fields{"hostsFile": *hostsFile, "count": n}).Info("peers ready")
		os.Exit(0)
	}

	deadline := time.Now().Add(*timeout)
	for {
		n, err := countLines(*fallbackHostsFile)
		if err == nil && n >= *count {
			log.WithFields(log.Fields{
				"hostsFile":         *hostsFile,
				"fallbackHostsFile": *fallbackHostsFile,
				"count":             n,
			}).Warn("peers ready in config dir but not yet in /etc/hosts, forcing a pod restart to remount it")
			os.Exit(1)
		}
		if time.Now().After(deadline) {
			log.WithFields(log.Fields{"fallbackHostsFile": *fallbackHostsFile, "want": *count}).Error("timed out waiting for peers")
			os.Exit(1)
		}
		time.Sleep(*pollInterval)
	}
}

func countLines(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n, nil
}
