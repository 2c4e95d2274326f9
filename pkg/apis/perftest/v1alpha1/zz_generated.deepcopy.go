//go:build !ignore_autogenerated

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

// Code generated by hand to match controller-gen's object-deepcopy output;
// regenerate with controller-gen object:headerFile=... if the toolchain
// becomes available.

package v1alpha1

import (
	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	runtime "k8s.io/apimachinery/pkg/runtime"
)

func (in *CommonSpec) DeepCopyInto(out *CommonSpec) {
	*out = *in
	if in.MTU != nil {
		out.MTU = new(int32)
		*out.MTU = *in.MTU
	}
	if in.Resources != nil {
		out.Resources = in.Resources.DeepCopy()
	}
}

func (in *CommonSpec) DeepCopy() *CommonSpec {
	if in == nil {
		return nil
	}
	out := new(CommonSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *BenchmarkStatus) DeepCopyInto(out *BenchmarkStatus) {
	*out = *in
	if in.StartedAt != nil {
		out.StartedAt = in.StartedAt.DeepCopy()
	}
	if in.FinishedAt != nil {
		out.FinishedAt = in.FinishedAt.DeepCopy()
	}
}

func (in *BenchmarkStatus) DeepCopy() *BenchmarkStatus {
	if in == nil {
		return nil
	}
	out := new(BenchmarkStatus)
	in.DeepCopyInto(out)
	return out
}

func (in *PodInfo) DeepCopyInto(out *PodInfo) {
	*out = *in
}

func (in *PodInfo) DeepCopy() *PodInfo {
	if in == nil {
		return nil
	}
	out := new(PodInfo)
	in.DeepCopyInto(out)
	return out
}

// IPerf

func (in *IPerfSpec) DeepCopyInto(out *IPerfSpec) {
	*out = *in
	in.CommonSpec.DeepCopyInto(&out.CommonSpec)
}

func (in *IPerfSpec) DeepCopy() *IPerfSpec {
	if in == nil {
		return nil
	}
	out := new(IPerfSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *IPerfStreamResult) DeepCopyInto(out *IPerfStreamResult) { *out = *in }

func (in *IPerfStreamResult) DeepCopy() *IPerfStreamResult {
	if in == nil {
		return nil
	}
	out := new(IPerfStreamResult)
	in.DeepCopyInto(out)
	return out
}

func (in *IPerfResult) DeepCopyInto(out *IPerfResult) {
	*out = *in
	if in.Streams != nil {
		out.Streams = make(map[string]IPerfStreamResult, len(in.Streams))
		for k, v := range in.Streams {
			out.Streams[k] = v
		}
	}
	out.Sum = in.Sum
}

func (in *IPerfResult) DeepCopy() *IPerfResult {
	if in == nil {
		return nil
	}
	out := new(IPerfResult)
	in.DeepCopyInto(out)
	return out
}

func (in *IPerfStatus) DeepCopyInto(out *IPerfStatus) {
	*out = *in
	in.BenchmarkStatus.DeepCopyInto(&out.BenchmarkStatus)
	if in.Result != nil {
		out.Result = in.Result.DeepCopy()
	}
}

func (in *IPerfStatus) DeepCopy() *IPerfStatus {
	if in == nil {
		return nil
	}
	out := new(IPerfStatus)
	in.DeepCopyInto(out)
	return out
}

func (in *IPerf) DeepCopyInto(out *IPerf) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
	in.Status.DeepCopyInto(&out.Status)
}

func (in *IPerf) DeepCopy() *IPerf {
	if in == nil {
		return nil
	}
	out := new(IPerf)
	in.DeepCopyInto(out)
	return out
}

func (in *IPerf) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *IPerfList) DeepCopyInto(out *IPerfList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]IPerf, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

func (in *IPerfList) DeepCopy() *IPerfList {
	if in == nil {
		return nil
	}
	out := new(IPerfList)
	in.DeepCopyInto(out)
	return out
}

func (in *IPerfList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

// MPIPingPong

func (in *MPIPingPongSpec) DeepCopyInto(out *MPIPingPongSpec) {
	*out = *in
	in.CommonSpec.DeepCopyInto(&out.CommonSpec)
}

func (in *MPIPingPongSpec) DeepCopy() *MPIPingPongSpec {
	if in == nil {
		return nil
	}
	out := new(MPIPingPongSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *MPIPingPongMessageResult) DeepCopyInto(out *MPIPingPongMessageResult) { *out = *in }

func (in *MPIPingPongMessageResult) DeepCopy() *MPIPingPongMessageResult {
	if in == nil {
		return nil
	}
	out := new(MPIPingPongMessageResult)
	in.DeepCopyInto(out)
	return out
}

func (in *MPIPingPongResult) DeepCopyInto(out *MPIPingPongResult) {
	*out = *in
	if in.Messages != nil {
		out.Messages = make([]MPIPingPongMessageResult, len(in.Messages))
		copy(out.Messages, in.Messages)
	}
}

func (in *MPIPingPongResult) DeepCopy() *MPIPingPongResult {
	if in == nil {
		return nil
	}
	out := new(MPIPingPongResult)
	in.DeepCopyInto(out)
	return out
}

func (in *MPIPingPongStatus) DeepCopyInto(out *MPIPingPongStatus) {
	*out = *in
	in.BenchmarkStatus.DeepCopyInto(&out.BenchmarkStatus)
	if in.Result != nil {
		out.Result = in.Result.DeepCopy()
	}
}

func (in *MPIPingPongStatus) DeepCopy() *MPIPingPongStatus {
	if in == nil {
		return nil
	}
	out := new(MPIPingPongStatus)
	in.DeepCopyInto(out)
	return out
}

func (in *MPIPingPong) DeepCopyInto(out *MPIPingPong) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
	in.Status.DeepCopyInto(&out.Status)
}

func (in *MPIPingPong) DeepCopy() *MPIPingPong {
	if in == nil {
		return nil
	}
	out := new(MPIPingPong)
	in.DeepCopyInto(out)
	return out
}

func (in *MPIPingPong) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *MPIPingPongList) DeepCopyInto(out *MPIPingPongList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]MPIPingPong, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

func (in *MPIPingPongList) DeepCopy() *MPIPingPongList {
	if in == nil {
		return nil
	}
	out := new(MPIPingPongList)
	in.DeepCopyInto(out)
	return out
}

func (in *MPIPingPongList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

// RDMA shared

func (in *RDMASpec) DeepCopyInto(out *RDMASpec) {
	*out = *in
	in.CommonSpec.DeepCopyInto(&out.CommonSpec)
	if in.ExtraArgs != nil {
		out.ExtraArgs = make([]string, len(in.ExtraArgs))
		copy(out.ExtraArgs, in.ExtraArgs)
	}
}

func (in *RDMASpec) DeepCopy() *RDMASpec {
	if in == nil {
		return nil
	}
	out := new(RDMASpec)
	in.DeepCopyInto(out)
	return out
}

func (in *RDMAMessageResult) DeepCopyInto(out *RDMAMessageResult) { *out = *in }

func (in *RDMAMessageResult) DeepCopy() *RDMAMessageResult {
	if in == nil {
		return nil
	}
	out := new(RDMAMessageResult)
	in.DeepCopyInto(out)
	return out
}

// RDMABandwidth

func (in *RDMABandwidthSpec) DeepCopyInto(out *RDMABandwidthSpec) {
	*out = *in
	in.RDMASpec.DeepCopyInto(&out.RDMASpec)
}

func (in *RDMABandwidthSpec) DeepCopy() *RDMABandwidthSpec {
	if in == nil {
		return nil
	}
	out := new(RDMABandwidthSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *RDMABandwidthResult) DeepCopyInto(out *RDMABandwidthResult) {
	*out = *in
	out.RDMAMessageResult = in.RDMAMessageResult
}

func (in *RDMABandwidthResult) DeepCopy() *RDMABandwidthResult {
	if in == nil {
		return nil
	}
	out := new(RDMABandwidthResult)
	in.DeepCopyInto(out)
	return out
}

func (in *RDMABandwidthStatus) DeepCopyInto(out *RDMABandwidthStatus) {
	*out = *in
	in.BenchmarkStatus.DeepCopyInto(&out.BenchmarkStatus)
	if in.Result != nil {
		out.Result = in.Result.DeepCopy()
	}
}

func (in *RDMABandwidthStatus) DeepCopy() *RDMABandwidthStatus {
	if in == nil {
		return nil
	}
	out := new(RDMABandwidthStatus)
	in.DeepCopyInto(out)
	return out
}

func (in *RDMABandwidth) DeepCopyInto(out *RDMABandwidth) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
	in.Status.DeepCopyInto(&out.Status)
}

func (in *RDMABandwidth) DeepCopy() *RDMABandwidth {
	if in == nil {
		return nil
	}
	out := new(RDMABandwidth)
	in.DeepCopyInto(out)
	return out
}

func (in *RDMABandwidth) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *RDMABandwidthList) DeepCopyInto(out *RDMABandwidthList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]RDMABandwidth, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

func (in *RDMABandwidthList) DeepCopy() *RDMABandwidthList {
	if in == nil {
		return nil
	}
	out := new(RDMABandwidthList)
	in.DeepCopyInto(out)
	return out
}

func (in *RDMABandwidthList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

// RDMALatency

func (in *RDMALatencyResult) DeepCopyInto(out *RDMALatencyResult) {
	*out = *in
	out.RDMAMessageResult = in.RDMAMessageResult
}

func (in *RDMALatencyResult) DeepCopy() *RDMALatencyResult {
	if in == nil {
		return nil
	}
	out := new(RDMALatencyResult)
	in.DeepCopyInto(out)
	return out
}

func (in *RDMALatencyStatus) DeepCopyInto(out *RDMALatencyStatus) {
	*out = *in
	in.BenchmarkStatus.DeepCopyInto(&out.BenchmarkStatus)
	if in.Result != nil {
		out.Result = in.Result.DeepCopy()
	}
}

func (in *RDMALatencyStatus) DeepCopy() *RDMALatencyStatus {
	if in == nil {
		return nil
	}
	out := new(RDMALatencyStatus)
	in.DeepCopyInto(out)
	return out
}

func (in *RDMALatency) DeepCopyInto(out *RDMALatency) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
	in.Status.DeepCopyInto(&out.Status)
}

func (in *RDMALatency) DeepCopy() *RDMALatency {
	if in == nil {
		return nil
	}
	out := new(RDMALatency)
	in.DeepCopyInto(out)
	return out
}

func (in *RDMALatency) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *RDMALatencyList) DeepCopyInto(out *RDMALatencyList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]RDMALatency, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

func (in *RDMALatencyList) DeepCopy() *RDMALatencyList {
	if in == nil {
		return nil
	}
	out := new(RDMALatencyList)
	in.DeepCopyInto(out)
	return out
}

func (in *RDMALatencyList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

// OpenFOAM

func (in *OpenFOAMSpec) DeepCopyInto(out *OpenFOAMSpec) {
	*out = *in
	in.CommonSpec.DeepCopyInto(&out.CommonSpec)
}

func (in *OpenFOAMSpec) DeepCopy() *OpenFOAMSpec {
	if in == nil {
		return nil
	}
	out := new(OpenFOAMSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *OpenFOAMResult) DeepCopyInto(out *OpenFOAMResult) { *out = *in }

func (in *OpenFOAMResult) DeepCopy() *OpenFOAMResult {
	if in == nil {
		return nil
	}
	out := new(OpenFOAMResult)
	in.DeepCopyInto(out)
	return out
}

func (in *OpenFOAMStatus) DeepCopyInto(out *OpenFOAMStatus) {
	*out = *in
	in.BenchmarkStatus.DeepCopyInto(&out.BenchmarkStatus)
	if in.Result != nil {
		out.Result = in.Result.DeepCopy()
	}
}

func (in *OpenFOAMStatus) DeepCopy() *OpenFOAMStatus {
	if in == nil {
		return nil
	}
	out := new(OpenFOAMStatus)
	in.DeepCopyInto(out)
	return out
}

func (in *OpenFOAM) DeepCopyInto(out *OpenFOAM) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
	in.Status.DeepCopyInto(&out.Status)
}

func (in *OpenFOAM) DeepCopy() *OpenFOAM {
	if in == nil {
		return nil
	}
	out := new(OpenFOAM)
	in.DeepCopyInto(out)
	return out
}

func (in *OpenFOAM) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *OpenFOAMList) DeepCopyInto(out *OpenFOAMList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]OpenFOAM, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

func (in *OpenFOAMList) DeepCopy() *OpenFOAMList {
	if in == nil {
		return nil
	}
	out := new(OpenFOAMList)
	in.DeepCopyInto(out)
	return out
}

func (in *OpenFOAMList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

// Fio

func (in *FioSpec) DeepCopyInto(out *FioSpec) {
	*out = *in
	in.CommonSpec.DeepCopyInto(&out.CommonSpec)
	in.VolumeClaimTemplate.DeepCopyInto(&out.VolumeClaimTemplate)
}

func (in *FioSpec) DeepCopy() *FioSpec {
	if in == nil {
		return nil
	}
	out := new(FioSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *FioResult) DeepCopyInto(out *FioResult) { *out = *in }

func (in *FioResult) DeepCopy() *FioResult {
	if in == nil {
		return nil
	}
	out := new(FioResult)
	in.DeepCopyInto(out)
	return out
}

func (in *FioStatus) DeepCopyInto(out *FioStatus) {
	*out = *in
	in.BenchmarkStatus.DeepCopyInto(&out.BenchmarkStatus)
	if in.Result != nil {
		out.Result = in.Result.DeepCopy()
	}
}

func (in *FioStatus) DeepCopy() *FioStatus {
	if in == nil {
		return nil
	}
	out := new(FioStatus)
	in.DeepCopyInto(out)
	return out
}

func (in *Fio) DeepCopyInto(out *Fio) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
	in.Status.DeepCopyInto(&out.Status)
}

func (in *Fio) DeepCopy() *Fio {
	if in == nil {
		return nil
	}
	out := new(Fio)
	in.DeepCopyInto(out)
	return out
}

func (in *Fio) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *FioList) DeepCopyInto(out *FioList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]Fio, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

func (in *FioList) DeepCopy() *FioList {
	if in == nil {
		return nil
	}
	out := new(FioList)
	in.DeepCopyInto(out)
	return out
}

func (in *FioList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

// PyTorch

func (in *PyTorchSpec) DeepCopyInto(out *PyTorchSpec) {
	*out = *in
	in.CommonSpec.DeepCopyInto(&out.CommonSpec)
}

func (in *PyTorchSpec) DeepCopy() *PyTorchSpec {
	if in == nil {
		return nil
	}
	out := new(PyTorchSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *GnuTimeResult) DeepCopyInto(out *GnuTimeResult) { *out = *in }

func (in *GnuTimeResult) DeepCopy() *GnuTimeResult {
	if in == nil {
		return nil
	}
	out := new(GnuTimeResult)
	in.DeepCopyInto(out)
	return out
}

func (in *PyTorchResult) DeepCopyInto(out *PyTorchResult) {
	*out = *in
	if in.GPUTimeSeconds != nil {
		out.GPUTimeSeconds = new(float64)
		*out.GPUTimeSeconds = *in.GPUTimeSeconds
	}
	if in.PeakGPUMemoryGB != nil {
		out.PeakGPUMemoryGB = new(float64)
		*out.PeakGPUMemoryGB = *in.PeakGPUMemoryGB
	}
	if in.GnuTime != nil {
		out.GnuTime = in.GnuTime.DeepCopy()
	}
}

func (in *PyTorchResult) DeepCopy() *PyTorchResult {
	if in == nil {
		return nil
	}
	out := new(PyTorchResult)
	in.DeepCopyInto(out)
	return out
}

func (in *PyTorchStatus) DeepCopyInto(out *PyTorchStatus) {
	*out = *in
	in.BenchmarkStatus.DeepCopyInto(&out.BenchmarkStatus)
	if in.Result != nil {
		out.Result = in.Result.DeepCopy()
	}
}

func (in *PyTorchStatus) DeepCopy() *PyTorchStatus {
	if in == nil {
		return nil
	}
	out := new(PyTorchStatus)
	in.DeepCopyInto(out)
	return out
}

func (in *PyTorch) DeepCopyInto(out *PyTorch) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
	in.Status.DeepCopyInto(&out.Status)
}

func (in *PyTorch) DeepCopy() *PyTorch {
	if in == nil {
		return nil
	}
	out := new(PyTorch)
	in.DeepCopyInto(out)
	return out
}

func (in *PyTorch) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *PyTorchList) DeepCopyInto(out *PyTorchList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]PyTorch, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

func (in *PyTorchList) DeepCopy() *PyTorchList {
	if in == nil {
		return nil
	}
	out := new(PyTorchList)
	in.DeepCopyInto(out)
	return out
}

func (in *PyTorchList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

// BenchmarkSet

func (in *BenchmarkSetTemplate) DeepCopyInto(out *BenchmarkSetTemplate) {
	*out = *in
	in.Spec.DeepCopyInto(&out.Spec)
}

func (in *BenchmarkSetTemplate) DeepCopy() *BenchmarkSetTemplate {
	if in == nil {
		return nil
	}
	out := new(BenchmarkSetTemplate)
	in.DeepCopyInto(out)
	return out
}

func (in *BenchmarkSetPermutations) DeepCopyInto(out *BenchmarkSetPermutations) {
	*out = *in
	if in.Product != nil {
		out.Product = make(map[string][]apiextensionsv1.JSON, len(in.Product))
		for k, v := range in.Product {
			if v == nil {
				out.Product[k] = nil
				continue
			}
			values := make([]apiextensionsv1.JSON, len(v))
			for i := range v {
				v[i].DeepCopyInto(&values[i])
			}
			out.Product[k] = values
		}
	}
	if in.Explicit != nil {
		out.Explicit = make([]map[string]apiextensionsv1.JSON, len(in.Explicit))
		for i, m := range in.Explicit {
			if m == nil {
				continue
			}
			cm := make(map[string]apiextensionsv1.JSON, len(m))
			for k, v := range m {
				cm[k] = *v.DeepCopy()
			}
			out.Explicit[i] = cm
		}
	}
}

func (in *BenchmarkSetPermutations) DeepCopy() *BenchmarkSetPermutations {
	if in == nil {
		return nil
	}
	out := new(BenchmarkSetPermutations)
	in.DeepCopyInto(out)
	return out
}

func (in *BenchmarkSetSpec) DeepCopyInto(out *BenchmarkSetSpec) {
	*out = *in
	in.Template.DeepCopyInto(&out.Template)
	in.Permutations.DeepCopyInto(&out.Permutations)
}

func (in *BenchmarkSetSpec) DeepCopy() *BenchmarkSetSpec {
	if in == nil {
		return nil
	}
	out := new(BenchmarkSetSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *BenchmarkSetStatus) DeepCopyInto(out *BenchmarkSetStatus) {
	*out = *in
	if in.Completed != nil {
		out.Completed = make(map[string]bool, len(in.Completed))
		for k, v := range in.Completed {
			out.Completed[k] = v
		}
	}
	if in.CreatedAt != nil {
		out.CreatedAt = in.CreatedAt.DeepCopy()
	}
	if in.FinishedAt != nil {
		out.FinishedAt = in.FinishedAt.DeepCopy()
	}
}

func (in *BenchmarkSetStatus) DeepCopy() *BenchmarkSetStatus {
	if in == nil {
		return nil
	}
	out := new(BenchmarkSetStatus)
	in.DeepCopyInto(out)
	return out
}

func (in *BenchmarkSet) DeepCopyInto(out *BenchmarkSet) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
	in.Status.DeepCopyInto(&out.Status)
}

func (in *BenchmarkSet) DeepCopy() *BenchmarkSet {
	if in == nil {
		return nil
	}
	out := new(BenchmarkSet)
	in.DeepCopyInto(out)
	return out
}

func (in *BenchmarkSet) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *BenchmarkSetList) DeepCopyInto(out *BenchmarkSetList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]BenchmarkSet, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

func (in *BenchmarkSetList) DeepCopy() *BenchmarkSetList {
	if in == nil {
		return nil
	}
	out := new(BenchmarkSetList)
	in.DeepCopyInto(out)
	return out
}

func (in *BenchmarkSetList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}
