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

package validation

import (
	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/paretoscope/paretoscope/apis/config/v1alpha1"
)

// ValidateAnalysisConfig validates a defaulted AnalysisConfig.
func ValidateAnalysisConfig(cfg *v1alpha1.AnalysisConfig) field.ErrorList {
	var allErrs field.ErrorList

	if cfg.APIVersion != v1alpha1.APIVersion {
		allErrs = append(allErrs, field.NotSupported(field.NewPath("apiVersion"), cfg.APIVersion, []string{v1alpha1.APIVersion}))
	}
	if cfg.Kind != v1alpha1.Kind {
		allErrs = append(allErrs, field.NotSupported(field.NewPath("kind"), cfg.Kind, []string{v1alpha1.Kind}))
	}

	allErrs = append(allErrs, validateIndices(cfg.Objectives, field.NewPath("objectives"))...)
	allErrs = append(allErrs, validateIndices(cfg.Maximize, field.NewPath("maximize"))...)

	if n := len(cfg.Objectives); n > 0 {
		maxPath := field.NewPath("maximize")
		for i, idx := range cfg.Maximize {
			if int(idx) > n {
				allErrs = append(allErrs, field.Invalid(maxPath.Index(i), idx, "must not exceed the number of selected objectives"))
			}
		}
	}

	if n := len(cfg.ReferencePoint); n > 0 {
		if n < 2 {
			allErrs = append(allErrs, field.Invalid(field.NewPath("referencePoint"), cfg.ReferencePoint, "must have at least 2 coordinates"))
		}
		if k := len(cfg.Objectives); k > 0 && n != k {
			allErrs = append(allErrs, field.Invalid(field.NewPath("referencePoint"), cfg.ReferencePoint, "must have one coordinate per selected objective"))
		}
	}

	if cfg.Stride != nil && *cfg.Stride < 1 {
		allErrs = append(allErrs, field.Invalid(field.NewPath("stride"), *cfg.Stride, "must be at least 1"))
	}

	allErrs = append(allErrs, ValidateHypervolumeArgs(&cfg.Hypervolume, field.NewPath("hypervolume"))...)
	return allErrs
}

// ValidateHypervolumeArgs validates the estimator settings that are set.
func ValidateHypervolumeArgs(args *v1alpha1.HypervolumeArgs, fldPath *field.Path) field.ErrorList {
	var allErrs field.ErrorList
	if args.Samples != nil && *args.Samples < 1 {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("samples"), *args.Samples, "must be at least 1"))
	}
	if args.Seed != nil && *args.Seed < 0 {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("seed"), *args.Seed, "must not be negative"))
	}
	if args.Workers != nil && *args.Workers < 1 {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("workers"), *args.Workers, "must be at least 1"))
	}
	return allErrs
}

func validateIndices(indices []int32, fldPath *field.Path) field.ErrorList {
	var allErrs field.ErrorList
	seen := sets.New[int32]()
	for i, idx := range indices {
		if idx < 1 {
			allErrs = append(allErrs, field.Invalid(fldPath.Index(i), idx, "must be a 1-based objective index"))
			continue
		}
		if seen.Has(idx) {
			allErrs = append(allErrs, field.Duplicate(fldPath.Index(i), idx))
		}
		seen.Insert(idx)
	}
	return allErrs
}
