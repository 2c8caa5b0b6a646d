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
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	// GroupName is the API group of paretoscope configuration files.
	GroupName = "config.paretoscope.io"
	// Version is the API version of this package.
	Version = "v1alpha1"
	// Kind is the only kind this group defines.
	Kind = "AnalysisConfig"
)

// APIVersion is the apiVersion string configuration files must carry.
var APIVersion = GroupName + "/" + Version

// AnalysisConfig configures a frontier and hypervolume analysis of optimizer
// output. Command line flags override fields set here.
type AnalysisConfig struct {
	metav1.TypeMeta `json:",inline"`

	// Objectives selects and orders the objective columns to analyse, as
	// 1-based indices of the obj<N> columns. Empty means every column.
	Objectives []int32 `json:"objectives,omitempty"`

	// Maximize lists the 1-based objective indices, after selection, to
	// maximize. Every other objective is minimized.
	Maximize []int32 `json:"maximize,omitempty"`

	// ReferencePoint is the hypervolume reference point in raw orientation.
	// When empty it is computed from the data.
	ReferencePoint []float64 `json:"referencePoint,omitempty"`

	// Stride samples every Stride-th generation, always including the last.
	Stride *int32 `json:"stride,omitempty"`

	// RecomputePareto ignores the is_pareto column and recomputes each
	// generation's non-dominated set.
	RecomputePareto *bool `json:"recomputePareto,omitempty"`

	// Hypervolume tunes the Monte Carlo estimator.
	Hypervolume HypervolumeArgs `json:"hypervolume,omitempty"`
}

// HypervolumeArgs tunes the Monte Carlo hypervolume estimator.
type HypervolumeArgs struct {
	// Samples is the number of uniform points drawn per generation.
	Samples *int32 `json:"samples,omitempty"`

	// Seed seeds the sampler of every generation.
	Seed *int64 `json:"seed,omitempty"`

	// Workers bounds how many generations are estimated concurrently.
	Workers *int32 `json:"workers,omitempty"`
}
