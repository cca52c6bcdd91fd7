/*
Copyright 2025.

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
	"fmt"
	"strings"

	"github.com/google/go-containerregistry/pkg/name"
	apimachineryvalidation "k8s.io/apimachinery/pkg/api/validation"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1validation "k8s.io/apimachinery/pkg/apis/meta/v1/validation"
	"k8s.io/apimachinery/pkg/util/validation"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// Warnings are non-fatal findings returned alongside validation errors.
type Warnings []string

// Validate checks the values tree. Errors describe input that cannot be
// rendered; warnings describe input that renders but probably not as intended.
// An unknown executor is a warning: it is treated as not needing the broker.
// Broker settings are only checked when the broker is rendered, since a
// suppressed broker contributes nothing to the output.
func (v *Values) Validate() (Warnings, error) {
	var allErrs field.ErrorList
	var warnings Warnings

	warnings = append(warnings, validateExecutor(v)...)
	allErrs = append(allErrs, validateGlobal(v)...)
	if v.UsesBroker() {
		allErrs = append(allErrs, validateBroker(v)...)
	}

	if len(allErrs) > 0 {
		return warnings, allErrs.ToAggregate()
	}
	return warnings, nil
}

func validateExecutor(v *Values) Warnings {
	var warnings Warnings

	modes := v.ExecutorModes()
	if len(modes) == 0 {
		warnings = append(warnings, "executor is empty; the broker will not be rendered")
		return warnings
	}

	requiresBroker := false
	for _, mode := range modes {
		if !mode.Known() {
			warnings = append(warnings, fmt.Sprintf("executor %q is not recognised and is treated as not using the broker", mode))
			continue
		}
		if mode.RequiresBroker() {
			requiresBroker = true
		}
	}

	if v.RedisEnabled() && !requiresBroker {
		warnings = append(warnings, fmt.Sprintf("redis.enabled is true but executor %q does not use the broker; nothing will be rendered", v.Executor))
	}

	return warnings
}

func validateGlobal(v *Values) field.ErrorList {
	var allErrs field.ErrorList

	allErrs = append(allErrs, metav1validation.ValidateLabels(v.Labels, field.NewPath("labels"))...)

	if v.Registry.SecretName != "" {
		allErrs = append(allErrs, validateObjectName(field.NewPath("registry", "secretName"), v.Registry.SecretName)...)
	}

	return allErrs
}

// validateBroker covers every setting that only the broker StatefulSet reads.
func validateBroker(v *Values) field.ErrorList {
	var allErrs field.ErrorList

	portPath := field.NewPath("ports", "redisDB")
	for _, msg := range validation.IsValidPortNum(int(v.Ports.RedisDB)) {
		allErrs = append(allErrs, field.Invalid(portPath, v.Ports.RedisDB, msg))
	}

	allErrs = append(allErrs, validateImage(field.NewPath("images", "redis"), v.Images.Redis)...)
	allErrs = append(allErrs, validateRedis(v)...)

	return allErrs
}

func validateImage(path *field.Path, ref ImageRef) field.ErrorList {
	var allErrs field.ErrorList

	if strings.TrimSpace(ref.Repository) == "" {
		allErrs = append(allErrs, field.Required(path.Child("repository"), "image repository is required"))
		return allErrs
	}

	if _, err := name.ParseReference(ref.Reference()); err != nil {
		allErrs = append(allErrs, field.Invalid(path, ref.Reference(), fmt.Sprintf("invalid image reference: %v", err)))
	}

	return allErrs
}

func validateRedis(v *Values) field.ErrorList {
	var allErrs field.ErrorList
	path := field.NewPath("redis")
	redis := v.Redis

	if redis.PasswordSecretName != "" {
		allErrs = append(allErrs, validateObjectName(path.Child("passwordSecretName"), redis.PasswordSecretName)...)
	}
	if redis.ServiceAccount.Name != "" {
		allErrs = append(allErrs, validateObjectName(path.Child("serviceAccount", "name"), redis.ServiceAccount.Name)...)
	}
	if redis.TerminationGracePeriodSeconds != nil && *redis.TerminationGracePeriodSeconds < 0 {
		allErrs = append(allErrs, field.Invalid(path.Child("terminationGracePeriodSeconds"), *redis.TerminationGracePeriodSeconds, "must be non-negative"))
	}

	allErrs = append(allErrs, apimachineryvalidation.ValidateAnnotations(redis.PodAnnotations, path.Child("podAnnotations"))...)
	allErrs = append(allErrs, validatePersistence(path.Child("persistence"), redis.Persistence)...)

	return allErrs
}

func validatePersistence(path *field.Path, p PersistenceValues) field.ErrorList {
	var allErrs field.ErrorList

	if !p.Enabled {
		return allErrs
	}

	size, err := resource.ParseQuantity(p.Size)
	if err != nil {
		allErrs = append(allErrs, field.Invalid(path.Child("size"), p.Size, fmt.Sprintf("must be a valid quantity: %v", err)))
	} else if size.Sign() <= 0 {
		allErrs = append(allErrs, field.Invalid(path.Child("size"), p.Size, "must be greater than zero"))
	}

	if p.StorageClassName != "" {
		allErrs = append(allErrs, validateObjectName(path.Child("storageClassName"), p.StorageClassName)...)
	}

	allErrs = append(allErrs, apimachineryvalidation.ValidateAnnotations(p.Annotations, path.Child("annotations"))...)

	return allErrs
}

func validateObjectName(path *field.Path, value string) field.ErrorList {
	var allErrs field.ErrorList
	for _, msg := range validation.IsDNS1123Subdomain(value) {
		allErrs = append(allErrs, field.Invalid(path, value, msg))
	}
	return allErrs
}
