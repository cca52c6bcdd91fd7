// Package values loads the deployment values tree and release identity the
// renderer works from.
package values

import (
	"fmt"
	"io"
	"os"

	"dario.cat/mergo"
	"sigs.k8s.io/yaml"

	redisv1alpha1 "github.com/dc-tec/broker-renderer/api/v1alpha1"
)

// StdinPath selects standard input as a values source.
const StdinPath = "-"

// LoadFiles reads the values files at paths in order and returns the merged,
// defaulted values. Later files override earlier ones key by key; lists are
// replaced, not appended.
func LoadFiles(paths []string, stdin io.Reader) (*redisv1alpha1.Values, error) {
	documents := make([][]byte, 0, len(paths))
	for _, path := range paths {
		data, err := readSource(path, stdin)
		if err != nil {
			return nil, err
		}
		documents = append(documents, data)
	}
	return Load(documents...)
}

// Load merges YAML documents in order and decodes the result into Values.
// Keys the renderer does not know about are ignored, so a complete chart
// values file can be passed as-is.
func Load(documents ...[]byte) (*redisv1alpha1.Values, error) {
	merged := map[string]interface{}{}
	for i, document := range documents {
		layer := map[string]interface{}{}
		if err := yaml.Unmarshal(document, &layer); err != nil {
			return nil, fmt.Errorf("failed to parse values document %d: %w", i, err)
		}
		if len(layer) == 0 {
			continue
		}
		if err := mergo.Merge(&merged, layer, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge values document %d: %w", i, err)
		}
	}

	raw, err := yaml.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("failed to encode merged values: %w", err)
	}

	values := &redisv1alpha1.Values{}
	if err := yaml.Unmarshal(raw, values); err != nil {
		return nil, fmt.Errorf("failed to decode values: %w", err)
	}
	values.SetDefaults()
	return values, nil
}

func readSource(path string, stdin io.Reader) ([]byte, error) {
	if path == StdinPath {
		if stdin == nil {
			return nil, fmt.Errorf("values requested from stdin but no stdin is available")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read values from stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- values file path is supplied by the operator running the CLI
	if err != nil {
		return nil, fmt.Errorf("failed to read values file %s: %w", path, err)
	}
	return data, nil
}
