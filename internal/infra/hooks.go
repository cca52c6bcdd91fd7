package infra

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/yaml"

	operatorerrors "github.com/dc-tec/broker-renderer/internal/errors"
)

// missingValue is what text/template prints for a missing map key. Hooks render
// it as an empty string, matching how chart templates treat unset values.
const missingValue = "<no value>"

// templateContext builds the data a lifecycle hook template is expanded against.
// Values are exposed with their YAML keys, e.g. {{ .Values.ports.redisDB }}.
func templateContext(in RenderInput) (map[string]interface{}, error) {
	values, err := runtime.DefaultUnstructuredConverter.ToUnstructured(in.Values)
	if err != nil {
		return nil, fmt.Errorf("failed to convert values for templating: %w", err)
	}

	return map[string]interface{}{
		"Values": values,
		"Release": map[string]interface{}{
			"Name":      in.Release.Name,
			"Namespace": in.Release.Namespace,
			"Service":   in.Release.Service,
		},
		"Chart": map[string]interface{}{
			"Name":    in.Chart.Name,
			"Version": in.Chart.Version,
		},
	}, nil
}

// expandLifecycleHooks serializes hooks to YAML, expands the result as a
// template and decodes it back. A nil hooks value is returned unchanged.
func expandLifecycleHooks(hooks *corev1.Lifecycle, data map[string]interface{}) (*corev1.Lifecycle, error) {
	if hooks == nil {
		return nil, nil
	}

	raw, err := yaml.Marshal(hooks)
	if err != nil {
		return nil, fmt.Errorf("failed to encode container lifecycle hooks: %w", err)
	}

	tmpl, err := template.New("containerLifecycleHooks").Funcs(sprig.TxtFuncMap()).Parse(string(raw))
	if err != nil {
		return nil, operatorerrors.WrapPermanentConfig(fmt.Errorf("failed to parse container lifecycle hooks: %w", err))
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, data); err != nil {
		return nil, operatorerrors.WrapPermanentConfig(fmt.Errorf("failed to expand container lifecycle hooks: %w", err))
	}

	expanded := &corev1.Lifecycle{}
	if err := yaml.UnmarshalStrict([]byte(strings.ReplaceAll(out.String(), missingValue, "")), expanded); err != nil {
		return nil, operatorerrors.WrapPermanentConfig(fmt.Errorf("expanded container lifecycle hooks are not a valid lifecycle: %w", err))
	}
	return expanded, nil
}
