/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1alpha1

import (
	"k8s.io/utils/ptr"
)

var (
	DefaultStride          int32 = 20
	DefaultSamples         int32 = 50000
	DefaultSeed            int64 = 42
	DefaultWorkers         int32 = 1
	DefaultRecomputePareto       = false
)

// SetDefaults_AnalysisConfig fills unset fields of obj.
func SetDefaults_AnalysisConfig(obj *AnalysisConfig) {
	if obj.APIVersion == "" {
		obj.APIVersion = APIVersion
	}
	if obj.Kind == "" {
		obj.Kind = Kind
	}
	if obj.Stride == nil {
		obj.Stride = ptr.To(DefaultStride)
	}
	if obj.RecomputePareto == nil {
		obj.RecomputePareto = ptr.To(DefaultRecomputePareto)
	}
	SetDefaults_HypervolumeArgs(&obj.Hypervolume)
}

// SetDefaults_HypervolumeArgs fills unset fields of obj.
func SetDefaults_HypervolumeArgs(obj *HypervolumeArgs) {
	if obj.Samples == nil {
		obj.Samples = ptr.To(DefaultSamples)
	}
	if obj.Seed == nil {
		obj.Seed = ptr.To(DefaultSeed)
	}
	if obj.Workers == nil {
		obj.Workers = ptr.To(DefaultWorkers)
	}
}
