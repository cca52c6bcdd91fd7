package values

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// Identity names the release and chart a render belongs to. Fields are read
// from the environment first; command-line flags override them.
type Identity struct {
	ReleaseName      string `env:"RELEASE_NAME"`
	ReleaseNamespace string `env:"RELEASE_NAMESPACE"`
	ReleaseService   string `env:"RELEASE_SERVICE" envDefault:"Helm"`
	ChartName        string `env:"CHART_NAME" envDefault:"airflow"`
	ChartVersion     string `env:"CHART_VERSION"`
}

// LoadIdentity reads Identity from the process environment.
func LoadIdentity() (Identity, error) {
	return LoadIdentityFrom(nil)
}

// LoadIdentityFrom reads Identity from environment, or from the process
// environment when environment is nil.
func LoadIdentityFrom(environment map[string]string) (Identity, error) {
	identity := Identity{}
	opts := env.Options{}
	if environment != nil {
		opts.Environment = environment
	}
	if err := env.Parse(&identity, opts); err != nil {
		return Identity{}, fmt.Errorf("failed to load release identity from environment: %w", err)
	}
	return identity, nil
}
