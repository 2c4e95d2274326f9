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

const rdmaBandwidthFixture = `
---------------------------------------------------------------------------------------
 #bytes     #iterations    BW peak[MB/sec]    BW average[MB/sec]   MsgRate[Mpps]
 65536      1000             12345.67            12300.00             0.187648
---------------------------------------------------------------------------------------
`

func TestRDMABandwidthParsesRow(t *testing.T) {
	got, err := RDMABandwidth(rdmaBandwidthFixture)
	if err != nil {
		t.Fatalf("RDMABandwidth() returned error: %v", err)
	}
	if got.Bytes != 65536 || got.PeakBandwidthMBps != 12345.67 {
		t.Errorf("got %+v", got)
	}
}

const rdmaLatencyFixture = `
---------------------------------------------------------------------------------------
 #bytes #iterations    t_min[usec]    t_max[usec]  t_typical[usec]    t_avg[usec]    t_stdev[usec]   99% percentile[usec]   99.9% percentile[usec]
 2       1000          1.23           5.67          1.30               1.35            0.12             2.50                    4.00
---------------------------------------------------------------------------------------
`

func TestRDMALatencyParsesRow(t *testing.T) {
	got, err := RDMALatency(rdmaLatencyFixture)
	if err != nil {
		t.Fatalf("RDMALatency() returned error: %v", err)
	}
	if got.Bytes != 2 || got.MinimumUsec != 1.23 || got.Percentile999Usec != 4.00 {
		t.Errorf("got %+v", got)
	}
}
