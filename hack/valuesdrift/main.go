// Package main reports keys in a chart values file that sit under the subtrees
// the broker renderer owns but that the renderer does not understand.
//
// The chart carries many keys for other components, so only these subtrees are
// checked strictly:
// - everything under `redis`
// - `registry` and the global `securityContexts`
//
// Kubernetes-typed values (affinity, tolerations, resources, ...) are not
// descended into.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"sigs.k8s.io/yaml"

	redisv1alpha1 "github.com/dc-tec/broker-renderer/api/v1alpha1"
)

type options struct {
	valuesPath string
}

// partialTypes hold renderer fields side by side with keys of other chart
// components; unknown keys inside them are not reported.
var partialTypes = map[reflect.Type]bool{
	reflect.TypeOf(redisv1alpha1.Values{}):      true,
	reflect.TypeOf(redisv1alpha1.ImageValues{}): true,
	reflect.TypeOf(redisv1alpha1.PortValues{}):  true,
}

func main() {
	var opts options
	flag.StringVar(&opts.valuesPath, "values", "values.yaml", "Path to the chart values.yaml")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	// #nosec G304 -- local repository path.
	data, err := os.ReadFile(filepath.Clean(opts.valuesPath))
	if err != nil {
		return fmt.Errorf("read values.yaml: %w", err)
	}

	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("parse values.yaml: %w", err)
	}

	unknown := unknownKeys(tree, reflect.TypeOf(redisv1alpha1.Values{}), nil)
	if len(unknown) == 0 {
		return nil
	}

	sort.Strings(unknown)
	var b strings.Builder
	fmt.Fprintf(&b, "values.yaml contains keys the broker renderer does not understand:\n")
	for _, k := range unknown {
		fmt.Fprintf(&b, "  - %s\n", k)
	}
	return fmt.Errorf("%s", strings.TrimRight(b.String(), "\n"))
}

// unknownKeys walks node alongside the struct type t and returns the dotted
// paths of keys that t has no field for.
func unknownKeys(node map[string]any, t reflect.Type, path []string) []string {
	fields := jsonFields(t)

	var unknown []string
	for key, value := range node {
		keyPath := append(append([]string(nil), path...), key)

		field, ok := fields[key]
		if !ok {
			if !partialTypes[t] {
				unknown = append(unknown, strings.Join(keyPath, "."))
			}
			continue
		}

		child, isMap := value.(map[string]any)
		if !isMap || !isRendererStruct(field.Type) {
			continue
		}
		unknown = append(unknown, unknownKeys(child, derefType(field.Type), keyPath)...)
	}
	return unknown
}

func jsonFields(t reflect.Type) map[string]reflect.StructField {
	fields := make(map[string]reflect.StructField, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		fields[name] = field
	}
	return fields
}

// isRendererStruct reports whether t is one of the renderer's own value types.
func isRendererStruct(t reflect.Type) bool {
	t = derefType(t)
	return t.Kind() == reflect.Struct && t.PkgPath() == reflect.TypeOf(redisv1alpha1.Values{}).PkgPath()
}

func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
