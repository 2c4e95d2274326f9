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

package parse

import "testing"

const iperfFourStreamFixture = `
Connecting to host iperf-server-0, port 5201
[  5] local 10.0.0.2 port 54320 connected to 10.0.0.1 port 5201
[  7] local 10.0.0.2 port 54322 connected to 10.0.0.1 port 5201
[  9] local 10.0.0.2 port 54324 connected to 10.0.0.1 port 5201
[ 11] local 10.0.0.2 port 54326 connected to 10.0.0.1 port 5201
[ ID] Interval           Transfer     Bandwidth
[  5]   0.00-5.00   sec  153125 KBytes  245000 Kbits/sec
[  7]   0.00-5.00   sec  153125 KBytes  245000 Kbits/sec
[  9]   0.00-5.00   sec  153125 KBytes  245000 Kbits/sec
[ 11]   0.00-5.00   sec  153125 KBytes  245000 Kbits/sec
[SUM]   0.00-5.00   sec  612500 KBytes  980000 Kbits/sec
- - - - - - - - - - - - - - - - - - - - - - - - -
[ ID] Interval           Transfer     Bandwidth
[  5]   0.00-5.00   sec  153125 KBytes  245000 Kbits/sec                  sender
[  5]   0.00-5.00   sec  153000 KBytes  244800 Kbits/sec                  receiver
[  7]   0.00-5.00   sec  153125 KBytes  245000 Kbits/sec                  sender
[  7]   0.00-5.00   sec  153000 KBytes  244800 Kbits/sec                  receiver
[  9]   0.00-5.00   sec  153125 KBytes  245000 Kbits/sec                  sender
[  9]   0.00-5.00   sec  153000 KBytes  244800 Kbits/sec                  receiver
[ 11]   0.00-5.00   sec  153125 KBytes  245000 Kbits/sec                  sender
[ 11]   0.00-5.00   sec  153000 KBytes  244800 Kbits/sec                  receiver
[SUM]   0.00-5.00   sec  612500 KBytes  980000 Kbits/sec                  sender
[SUM]   0.00-5.00   sec  612000 KBytes  979200 Kbits/sec                  receiver

iperf Done.
`

func TestIPerfParsesSummary(t *testing.T) {
	got, err := IPerf(iperfFourStreamFixture)
	if err != nil {
		t.Fatalf("IPerf() returned error: %v", err)
	}
	if got.Sum.BandwidthKbps != 980000 {
		t.Errorf("Sum.BandwidthKbps = %d, want 980000", got.Sum.BandwidthKbps)
	}
	if got.BandwidthGbps != "0.98" {
		t.Errorf("BandwidthGbps = %q, want %q", got.BandwidthGbps, "0.98")
	}
	if len(got.Streams) != 4 {
		t.Errorf("len(Streams) = %d, want 4", len(got.Streams))
	}
}

const iperfSingleStreamFixture = `
Connecting to host iperf-server-0, port 5201
[  5] local 10.0.0.2 port 54320 connected to 10.0.0.1 port 5201
[ ID] Interval           Transfer     Bandwidth
[  5]   0.00-5.00   sec  306250 KBytes  490000 Kbits/sec
- - - - - - - - - - - - - - - - - - - - - - - - -
[ ID] Interval           Transfer     Bandwidth
[  5]   0.00-5.00   sec  306250 KBytes  490000 Kbits/sec                  sender
[  5]   0.00-5.00   sec  306000 KBytes  489600 Kbits/sec                  receiver

iperf Done.
`

func TestIPerfSingleStreamHasNoSUMRow(t *testing.T) {
	got, err := IPerf(iperfSingleStreamFixture)
	if err != nil {
		t.Fatalf("IPerf() returned error: %v", err)
	}
	if got.Sum.BandwidthKbps != 490000 {
		t.Errorf("Sum.BandwidthKbps = %d, want 490000", got.Sum.BandwidthKbps)
	}
	if got.BandwidthGbps != "0.49" {
		t.Errorf("BandwidthGbps = %q, want %q", got.BandwidthGbps, "0.49")
	}
}

func TestIPerfIncompleteBeforeFinalReport(t *testing.T) {
	if _, err := IPerf("connecting to server..."); err == nil {
		t.Error("expected an error when no report header is present")
	} else if _, ok := err.(*IncompleteResultsError); !ok {
		t.Errorf("got %T, want *IncompleteResultsError", err)
	}

	stillRunning := "[ ID] Interval           Transfer     Bandwidth\n[  5]   0.00-5.00   sec  153125 KBytes  245000 Kbits/sec\n"
	if _, err := IPerf(stillRunning); err == nil {
		t.Error("expected an error when no final sender row is present")
	} else if _, ok := err.(*IncompleteResultsError); !ok {
		t.Errorf("got %T, want *IncompleteResultsError", err)
	}
}
