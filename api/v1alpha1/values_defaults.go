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
	corev1 "k8s.io/api/core/v1"
	"k8s.io/utils/ptr"
)

// Defaults applied by SetDefaults. They match the values file shipped with the chart.
const (
	DefaultRedisPort                          int32 = 6379
	DefaultRedisRepository                          = "redis"
	DefaultRedisTag                                 = "7.2-bookworm"
	DefaultRedisPullPolicy                          = corev1.PullIfNotPresent
	DefaultRedisPersistenceSize                     = "1Gi"
	DefaultRedisTerminationGracePeriodSeconds int64 = 600
)

// SetDefaults fills unset fields with chart defaults. Fields that take part in
// override resolution are left alone: an unset component value must stay
// unset so the deployment-wide value can win.
func (v *Values) SetDefaults() {
	if v.Executor == "" {
		v.Executor = string(DefaultExecutor)
	}
	if v.Ports.RedisDB == 0 {
		v.Ports.RedisDB = DefaultRedisPort
	}
	v.Images.Redis.setDefaults()
	v.Redis.setDefaults()
}

func (r *ImageRef) setDefaults() {
	if r.Repository == "" {
		r.Repository = DefaultRedisRepository
	}
	if r.Tag == "" && r.Digest == "" {
		r.Tag = DefaultRedisTag
	}
	if r.PullPolicy == "" {
		r.PullPolicy = DefaultRedisPullPolicy
	}
}

func (r *RedisValues) setDefaults() {
	if r.Enabled == nil {
		r.Enabled = ptr.To(true)
	}
	if r.TerminationGracePeriodSeconds == nil {
		r.TerminationGracePeriodSeconds = ptr.To(DefaultRedisTerminationGracePeriodSeconds)
	}
	if r.Persistence.Size == "" {
		r.Persistence.Size = DefaultRedisPersistenceSize
	}
	if r.SafeToEvict == nil {
		r.SafeToEvict = ptr.To(true)
	}
	if r.ServiceAccount.Create == nil {
		r.ServiceAccount.Create = ptr.To(true)
	}
}

// Reference returns the image reference: repository@digest when a digest is
// pinned, repository:tag otherwise, or the bare repository when neither is set.
func (r ImageRef) Reference() string {
	switch {
	case r.Digest != "":
		return r.Repository + "@" + r.Digest
	case r.Tag != "":
		return r.Repository + ":" + r.Tag
	default:
		return r.Repository
	}
}
