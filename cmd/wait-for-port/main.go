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

// Command wait-for-port is the second half of the discovery dance: once
// wait-for-peers confirms the hosts table is complete, a task's init
// container still needs the peer's actual service (sshd, the iperf3
// server, fio's server protocol) to be accepting connections before the
// main container dials it.
package main

import (
	"flag"
	"net"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

func main() {
	address := flag.String("address", "", "host:port to probe")
	timeout := flag.Duration("timeout", 5*time.Minute, "give up and exit non-zero after this long")
	dialTimeout := flag.Duration("dial-timeout", 2*time.Second, "per-attempt dial timeout")
	pollInterval := flag.Duration("poll-interval", 1*time.Second, "delay between attempts")
	flag.Parse()

	if *address == "" {
		log.Fatal("--address must be set")
	}

	deadline := time.Now().Add(*timeout)
	for {
		conn, err := net.DialTimeout("tcp", *address, *dialTimeout)
		if err == nil {
			conn.Close()
			log.WithField("address", *address).Info("port ready")
			os.Exit(0)
		}
		if time.Now().After(deadline) {
			log.WithField("address", *address).Error("timed out waiting for port")
			os.Exit(1)
		}
		time.Sleep(*pollInterval)
	}
}
