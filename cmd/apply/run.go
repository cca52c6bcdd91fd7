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

package apply

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/dc-tec/broker-renderer/internal/cli"
	"github.com/dc-tec/broker-renderer/internal/constants"
	"github.com/dc-tec/broker-renderer/internal/infra"
)

const defaultTimeout = 2 * time.Minute

var scheme = runtime.NewScheme()

func init() {
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
}

// clientFactory builds the cluster client. Tests replace it.
type clientFactory func(kubeconfig string) (client.Client, error)

// Run renders the broker and converges the cluster on the result: the
// StatefulSet is server-side applied, or deleted when the broker is no longer
// part of the deployment.
func Run(args []string) error {
	return run(ctrl.SetupSignalHandler(), args, os.Stdin, newClient)
}

func run(ctx context.Context, args []string, stdin io.Reader, newClient clientFactory) error {
	var (
		opts       cli.Options
		kubeconfig string
		timeout    time.Duration
	)

	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	opts.BindFlags(fs)
	fs.StringVar(&kubeconfig, "kubeconfig", "", "Path to a kubeconfig. Defaults to in-cluster config or $KUBECONFIG.")
	fs.DurationVar(&timeout, "timeout", defaultTimeout, "Maximum time to spend talking to the cluster.")
	zapOpts := zap.Options{}
	zapOpts.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctrl.SetLogger(zap.New(zap.UseFlagOptions(&zapOpts)))
	logger := ctrl.Log.WithName("apply")

	in, err := opts.Load(stdin)
	if err != nil {
		return err
	}
	if in.Release.Namespace == "" {
		in.Release.Namespace = metav1.NamespaceDefault
	}

	warnings, err := in.Values.Validate()
	for _, warning := range warnings {
		logger.Info("Values warning", "warning", warning)
	}
	if err != nil {
		return fmt.Errorf("invalid values: %w", err)
	}

	c, err := newClient(kubeconfig)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := infra.NewManager(c).Apply(ctx, logger, in)
	if err != nil {
		return err
	}
	logger.Info("Apply complete",
		"rendered", result.Decision.Render,
		"reason", result.Decision.Reason,
		"fieldOwner", constants.FieldOwner)
	return nil
}

func newClient(kubeconfig string) (client.Client, error) {
	cfg, err := restConfig(kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}
	c, err := client.New(cfg, client.Options{Scheme: scheme})
	if err != nil {
		return nil, fmt.Errorf("failed to create Kubernetes client: %w", err)
	}
	return c, nil
}

func restConfig(kubeconfig string) (*rest.Config, error) {
	if kubeconfig == "" {
		return ctrl.GetConfig()
	}
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	rules.ExplicitPath = kubeconfig
	return clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, &clientcmd.ConfigOverrides{}).ClientConfig()
}
