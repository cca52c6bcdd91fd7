// Package cli holds the flag handling shared by the renderer's subcommands.
package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	redisv1alpha1 "github.com/dc-tec/broker-renderer/api/v1alpha1"
	"github.com/dc-tec/broker-renderer/internal/infra"
	"github.com/dc-tec/broker-renderer/internal/layered"
	"github.com/dc-tec/broker-renderer/internal/values"
)

// stringList is a repeatable string flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// Options are the inputs every subcommand renders from.
type Options struct {
	ValueFiles []string

	releaseName      string
	releaseNamespace string
	releaseService   string
	chartName        string
	chartVersion     string
}

// BindFlags registers the values and identity flags on fs.
func (o *Options) BindFlags(fs *flag.FlagSet) {
	files := (*stringList)(&o.ValueFiles)
	fs.Var(files, "values", "Values file to render from. May be repeated; later files override earlier ones. Use - for stdin.")
	fs.Var(files, "f", "Shorthand for --values.")
	fs.StringVar(&o.releaseName, "release-name", "", "Release name. Overrides RELEASE_NAME.")
	fs.StringVar(&o.releaseNamespace, "namespace", "", "Release namespace. Overrides RELEASE_NAMESPACE.")
	fs.StringVar(&o.releaseService, "release-service", "", "Deployment tool recorded in the heritage label. Overrides RELEASE_SERVICE.")
	fs.StringVar(&o.chartName, "chart-name", "", "Chart name. Overrides CHART_NAME.")
	fs.StringVar(&o.chartVersion, "chart-version", "", "Chart version. Overrides CHART_VERSION.")
}

// Identity merges the environment identity with any identity flags that were
// set; flags win.
func (o *Options) Identity(environment values.Identity) values.Identity {
	return values.Identity{
		ReleaseName:      layered.String(o.releaseName, environment.ReleaseName),
		ReleaseNamespace: layered.String(o.releaseNamespace, environment.ReleaseNamespace),
		ReleaseService:   layered.String(o.releaseService, environment.ReleaseService),
		ChartName:        layered.String(o.chartName, environment.ChartName),
		ChartVersion:     layered.String(o.chartVersion, environment.ChartVersion),
	}
}

// Load reads the values files and the release identity and returns the render
// input they describe.
func (o *Options) Load(stdin io.Reader) (infra.RenderInput, error) {
	if len(o.ValueFiles) == 0 {
		return infra.RenderInput{}, fmt.Errorf("at least one --values file is required")
	}

	environment, err := values.LoadIdentity()
	if err != nil {
		return infra.RenderInput{}, err
	}
	identity := o.Identity(environment)
	if identity.ReleaseName == "" {
		return infra.RenderInput{}, fmt.Errorf("release name is required: set --release-name or RELEASE_NAME")
	}

	vals, err := values.LoadFiles(o.ValueFiles, stdin)
	if err != nil {
		return infra.RenderInput{}, err
	}

	return NewRenderInput(vals, identity), nil
}

// NewRenderInput pairs values with the identity they are rendered for.
func NewRenderInput(vals *redisv1alpha1.Values, identity values.Identity) infra.RenderInput {
	return infra.RenderInput{
		Values: vals,
		Release: infra.Release{
			Name:      identity.ReleaseName,
			Namespace: identity.ReleaseNamespace,
			Service:   identity.ReleaseService,
		},
		Chart: infra.Chart{
			Name:    identity.ChartName,
			Version: identity.ChartVersion,
		},
	}
}
