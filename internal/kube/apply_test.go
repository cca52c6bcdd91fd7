package kube

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

type staticResolver struct {
	gvk schema.GroupVersionKind
	err error
}

func (r staticResolver) GroupVersionKindFor(runtime.Object) (schema.GroupVersionKind, error) {
	return r.gvk, r.err
}

func TestToApplyConfiguration_UsesTypeMeta(t *testing.T) {
	cfg, err := ToApplyConfiguration(newStatefulSet(), nil)
	require.NoError(t, err)
	require.NotNil(t, cfg)
}

func TestToApplyConfiguration_ResolvesMissingGVK(t *testing.T) {
	sts := newStatefulSet()
	sts.TypeMeta = metav1.TypeMeta{}

	_, err := ToApplyConfiguration(sts, nil)
	assert.Error(t, err, "resolver is required when GVK is empty")

	resolver := staticResolver{gvk: appsv1.SchemeGroupVersion.WithKind("StatefulSet")}
	cfg, err := ToApplyConfiguration(sts, resolver)
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	_, err = ToApplyConfiguration(sts, staticResolver{err: errors.New("unknown type")})
	assert.ErrorContains(t, err, "unknown type")
}

func TestToApplyConfiguration_Nil(t *testing.T) {
	_, err := ToApplyConfiguration(nil, nil)
	assert.Error(t, err)
}
