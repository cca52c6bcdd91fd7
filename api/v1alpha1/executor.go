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
	"strings"
)

// ExecutorMode is the task-dispatch strategy selected for the orchestration platform.
type ExecutorMode string

const (
	ExecutorLocal            ExecutorMode = "LocalExecutor"
	ExecutorLocalKubernetes  ExecutorMode = "LocalKubernetesExecutor"
	ExecutorSequential       ExecutorMode = "SequentialExecutor"
	ExecutorKubernetes       ExecutorMode = "KubernetesExecutor"
	ExecutorCelery           ExecutorMode = "CeleryExecutor"
	ExecutorCeleryKubernetes ExecutorMode = "CeleryKubernetesExecutor"

	// DefaultExecutor is applied when the values tree leaves executor unset.
	DefaultExecutor = ExecutorCelery
)

const executorListSeparator = ","

var knownExecutorModes = map[ExecutorMode]struct{}{
	ExecutorLocal:            {},
	ExecutorLocalKubernetes:  {},
	ExecutorSequential:       {},
	ExecutorKubernetes:       {},
	ExecutorCelery:           {},
	ExecutorCeleryKubernetes: {},
}

// brokerExecutorModes are the queue-based modes that dispatch through the broker.
var brokerExecutorModes = map[ExecutorMode]struct{}{
	ExecutorCelery:           {},
	ExecutorCeleryKubernetes: {},
}

// Known reports whether m is one of the executor modes this renderer understands.
func (m ExecutorMode) Known() bool {
	_, ok := knownExecutorModes[m]
	return ok
}

// RequiresBroker reports whether m dispatches tasks through the message broker.
// Unknown modes never require it.
func (m ExecutorMode) RequiresBroker() bool {
	_, ok := brokerExecutorModes[m]
	return ok
}

// ParseExecutorModes splits a comma separated executor value into modes.
// Blank entries are dropped; unknown entries are kept so callers can report them.
func ParseExecutorModes(raw string) []ExecutorMode {
	var modes []ExecutorMode
	for _, part := range strings.Split(raw, executorListSeparator) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		modes = append(modes, ExecutorMode(part))
	}
	return modes
}

// ExecutorModes returns the parsed executor list of the values tree.
func (v *Values) ExecutorModes() []ExecutorMode {
	return ParseExecutorModes(v.Executor)
}

// UsesBroker reports whether the broker component is enabled and at least one
// configured executor dispatches through it.
func (v *Values) UsesBroker() bool {
	if !v.RedisEnabled() {
		return false
	}
	for _, mode := range v.ExecutorModes() {
		if mode.RequiresBroker() {
			return true
		}
	}
	return false
}
