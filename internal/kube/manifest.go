package kube

import (
	"bytes"
	"fmt"

	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/yaml"
)

const documentSeparator = "---\n"

// MarshalManifest encodes obj as a YAML document suitable for kubectl apply.
//
// The object is routed through its unstructured form so that fields only the
// API server populates (status, null creationTimestamp) are dropped, and keys
// are emitted in sorted order. Encoding the same object twice yields the same
// bytes. When source is non-empty a "# Source:" comment is written after the
// document separator.
func MarshalManifest(obj runtime.Object, source string) ([]byte, error) {
	if obj == nil {
		return nil, fmt.Errorf("object cannot be nil")
	}

	u, err := runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to convert object to unstructured: %w", err)
	}

	delete(u, "status")
	pruneServerFields(u)

	body, err := yaml.Marshal(u)
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(documentSeparator)
	if source != "" {
		fmt.Fprintf(&buf, "# Source: %s\n", source)
	}
	buf.Write(body)

	return buf.Bytes(), nil
}

// pruneServerFields removes null creationTimestamp and empty status keys at
// any depth, which covers embedded objects such as volume claim templates.
func pruneServerFields(node interface{}) {
	switch v := node.(type) {
	case map[string]interface{}:
		if ts, ok := v["creationTimestamp"]; ok && ts == nil {
			delete(v, "creationTimestamp")
		}
		if status, ok := v["status"].(map[string]interface{}); ok && len(status) == 0 {
			delete(v, "status")
		}
		for _, child := range v {
			pruneServerFields(child)
		}
	case []interface{}:
		for _, child := range v {
			pruneServerFields(child)
		}
	}
}
