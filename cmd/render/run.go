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
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	"sigs.k8s.io/controller-runtime/pkg/metrics"

	"github.com/dc-tec/broker-renderer/internal/cli"
	"github.com/dc-tec/broker-renderer/internal/infra"
)

// Run renders the broker StatefulSet and writes the manifest to stdout or
// --output. Nothing is written when the broker is not part of the deployment.
func Run(args []string) error {
	return run(args, os.Stdin, os.Stdout)
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	var (
		opts            cli.Options
		output          string
		metricsTextfile string
	)

	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	opts.BindFlags(fs)
	fs.StringVar(&output, "output", "", "File to write the manifest to. Defaults to stdout.")
	fs.StringVar(&metricsTextfile, "metrics-textfile", "",
		"If set, write render metrics to this file in the node-exporter textfile format.")
	zapOpts := zap.Options{}
	zapOpts.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctrl.SetLogger(zap.New(zap.UseFlagOptions(&zapOpts)))
	logger := ctrl.Log.WithName("render")

	in, err := opts.Load(stdin)
	if err != nil {
		return err
	}

	warnings, err := in.Values.Validate()
	for _, warning := range warnings {
		logger.Info("Values warning", "warning", warning)
	}
	if err != nil {
		return fmt.Errorf("invalid values: %w", err)
	}

	result, err := infra.Render(logger, in)
	if err != nil {
		return err
	}

	if err := writeManifest(output, stdout, result.Manifest); err != nil {
		return err
	}

	if metricsTextfile != "" {
		if err := prometheus.WriteToTextfile(metricsTextfile, metrics.Registry); err != nil {
			return fmt.Errorf("failed to write metrics textfile: %w", err)
		}
	}
	return nil
}

func writeManifest(output string, stdout io.Writer, manifest []byte) error {
	if output == "" {
		if _, err := stdout.Write(manifest); err != nil {
			return fmt.Errorf("failed to write manifest: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(output, manifest, 0o644); err != nil { // #nosec G306 -- manifests are not secret
		return fmt.Errorf("failed to write manifest to %s: %w", output, err)
	}
	return nil
}
