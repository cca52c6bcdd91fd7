package infra

import (
	"fmt"
	"strings"

	redisv1alpha1 "github.com/dc-tec/broker-renderer/api/v1alpha1"
	"github.com/dc-tec/broker-renderer/internal/constants"
)

// Release identifies the deployment that owns the rendered objects. It is
// supplied by the deployment tool, not by the values tree.
type Release struct {
	Name      string
	Namespace string
	Service   string
}

// Chart identifies the chart the broker belongs to.
type Chart struct {
	Name    string
	Version string
}

// RenderInput encapsulates everything a render depends on. Two renders of
// equal inputs produce byte-identical manifests.
type RenderInput struct {
	Values  *redisv1alpha1.Values
	Release Release
	Chart   Chart
}

// validateInput rejects inputs that cannot name the rendered objects.
func validateInput(in RenderInput) error {
	if in.Values == nil {
		return fmt.Errorf("values are required")
	}
	if strings.TrimSpace(in.Release.Name) == "" {
		return fmt.Errorf("release name is required")
	}
	return nil
}

// withDefaults fills identity fields the deployment tool normally provides.
func (in RenderInput) withDefaults() RenderInput {
	if in.Release.Service == "" {
		in.Release.Service = constants.DefaultReleaseService
	}
	if in.Chart.Name == "" {
		in.Chart.Name = constants.DefaultChartName
	}
	return in
}
