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

package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeValues(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "values.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun_WritesManifestToStdout(t *testing.T) {
	path := writeValues(t, "executor: CeleryExecutor\nredis:\n  persistence:\n    enabled: true\n    size: 8Gi\n")

	var stdout bytes.Buffer
	err := run([]string{"-f", path, "--release-name", "prod", "--namespace", "airflow"}, strings.NewReader(""), &stdout)
	require.NoError(t, err)

	manifest := stdout.String()
	assert.True(t, strings.HasPrefix(manifest, "---\n# Source: airflow/templates/redis/redis-statefulset.yaml\n"))
	assert.Contains(t, manifest, "name: prod-redis")
	assert.Contains(t, manifest, "storage: 8Gi")
}

func TestRun_SuppressedWritesNothing(t *testing.T) {
	path := writeValues(t, "executor: KubernetesExecutor\n")

	var stdout bytes.Buffer
	err := run([]string{"-f", path, "--release-name", "prod"}, strings.NewReader(""), &stdout)
	require.NoError(t, err)
	assert.Empty(t, stdout.String())
}

func TestRun_ReadsValuesFromStdin(t *testing.T) {
	var stdout bytes.Buffer
	err := run([]string{"-f", "-", "--release-name", "prod"}, strings.NewReader("executor: CeleryExecutor\n"), &stdout)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "kind: StatefulSet")
}

func TestRun_WritesOutputAndMetricsFiles(t *testing.T) {
	path := writeValues(t, "executor: CeleryKubernetesExecutor\n")
	dir := t.TempDir()
	output := filepath.Join(dir, "redis.yaml")
	textfile := filepath.Join(dir, "broker.prom")

	var stdout bytes.Buffer
	err := run([]string{
		"-f", path,
		"--release-name", "prod",
		"--output", output,
		"--metrics-textfile", textfile,
	}, strings.NewReader(""), &stdout)
	require.NoError(t, err)
	assert.Empty(t, stdout.String())

	manifest, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(manifest), "kind: StatefulSet")

	metrics, err := os.ReadFile(textfile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "broker_render_total")
}

func TestRun_InvalidValues(t *testing.T) {
	path := writeValues(t, "executor: CeleryExecutor\nredis:\n  persistence:\n    enabled: true\n    size: huge\n")

	err := run([]string{"-f", path, "--release-name", "prod"}, strings.NewReader(""), &bytes.Buffer{})
	require.Error(t, err)
}

func TestRun_SuppressedIgnoresInvalidBrokerValues(t *testing.T) {
	tests := []struct {
		name   string
		values string
	}{
		{
			name:   "executor without broker",
			values: "executor: KubernetesExecutor\nredis:\n  enabled: false\n  persistence:\n    enabled: true\n    size: lots\n",
		},
		{
			name:   "component disabled",
			values: "executor: CeleryExecutor\nredis:\n  enabled: false\n  persistence:\n    enabled: true\n    size: lots\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeValues(t, tt.values)

			var stdout bytes.Buffer
			err := run([]string{"-f", path, "--release-name", "prod"}, strings.NewReader(""), &stdout)
			require.NoError(t, err)
			assert.Empty(t, stdout.String())
		})
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	err := run([]string{"--bogus"}, strings.NewReader(""), &bytes.Buffer{})
	require.Error(t, err)
}
