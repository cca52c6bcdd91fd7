package infra

import (
	"testing"

	"k8s.io/apimachinery/pkg/api/resource"
	"k8s.io/apimachinery/pkg/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"k8s.io/utils/ptr"

	redisv1alpha1 "github.com/dc-tec/broker-renderer/api/v1alpha1"
)

var testScheme = func() *runtime.Scheme {
	scheme := runtime.NewScheme()
	if err := clientgoscheme.AddToScheme(scheme); err != nil {
		panic(err)
	}
	return scheme
}()

// newTestValues returns defaulted values with the broker enabled under the
// Celery executor and ephemeral storage.
func newTestValues() *redisv1alpha1.Values {
	values := &redisv1alpha1.Values{
		Executor: string(redisv1alpha1.ExecutorCelery),
		Redis: redisv1alpha1.RedisValues{
			Enabled: ptr.To(true),
		},
	}
	values.SetDefaults()
	return values
}

func newTestInput(values *redisv1alpha1.Values) RenderInput {
	return RenderInput{
		Values: values,
		Release: Release{
			Name:      "airflow",
			Namespace: "default",
			Service:   "Helm",
		},
		Chart: Chart{
			Name:    "airflow",
			Version: "1.15.0",
		},
	}
}

func mustQuantity(t *testing.T, value string) resource.Quantity {
	t.Helper()
	q, err := resource.ParseQuantity(value)
	if err != nil {
		t.Fatalf("invalid quantity %q: %v", value, err)
	}
	return q
}
