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

package validate

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"

	"github.com/dc-tec/broker-renderer/internal/cli"
	"github.com/dc-tec/broker-renderer/internal/infra"
)

// Run checks the values and reports warnings and the render decision. It
// fails when the values are invalid or the broker cannot be rendered from them.
func Run(args []string) error {
	return run(args, os.Stdin, os.Stdout)
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	var opts cli.Options

	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	opts.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	in, err := opts.Load(stdin)
	if err != nil {
		return err
	}

	warnings, err := in.Values.Validate()
	for _, warning := range warnings {
		_, _ = fmt.Fprintf(stdout, "Warning: %s\n", warning)
	}
	if err != nil {
		return fmt.Errorf("invalid values: %w", err)
	}

	result, err := infra.Render(logr.Discard(), in)
	if err != nil {
		return err
	}

	state := "suppressed"
	if result.Decision.Render {
		state = fmt.Sprintf("rendered with %s storage", result.StorageMode)
	}
	_, _ = fmt.Fprintf(stdout, "Broker %s: %s\n", state, result.Decision.Message)
	return nil
}
