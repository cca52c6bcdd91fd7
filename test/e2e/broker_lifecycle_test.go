//go:build e2e
// +build e2e

package e2e

import (
	"context"

	"github.com/go-logr/logr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	appsv1 "k8s.io/api/apps/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"sigs.k8s.io/controller-runtime/pkg/client"
	ctrlconfig "sigs.k8s.io/controller-runtime/pkg/client/config"

	"github.com/dc-tec/broker-renderer/internal/cli"
	"github.com/dc-tec/broker-renderer/internal/infra"
	"github.com/dc-tec/broker-renderer/internal/values"
	"github.com/dc-tec/broker-renderer/test/e2e/framework"
)

var _ = Describe("Broker lifecycle", Label("smoke", "broker"), Ordered, func() {
	ctx := context.Background()

	const releaseName = "e2e"

	var (
		c       client.Client
		f       *framework.Framework
		manager *infra.Manager
	)

	input := func(document string) infra.RenderInput {
		vals, err := values.Load([]byte(document))
		Expect(err).NotTo(HaveOccurred())
		return cli.NewRenderInput(vals, values.Identity{
			ReleaseName:      releaseName,
			ReleaseNamespace: f.Namespace,
			ReleaseService:   "Helm",
			ChartName:        "airflow",
			ChartVersion:     "1.15.0",
		})
	}

	BeforeAll(func() {
		cfg, err := ctrlconfig.GetConfig()
		Expect(err).NotTo(HaveOccurred())

		scheme := runtime.NewScheme()
		Expect(clientgoscheme.AddToScheme(scheme)).To(Succeed())

		c, err = client.New(cfg, client.Options{Scheme: scheme})
		Expect(err).NotTo(HaveOccurred())

		f, err = framework.New(ctx, c, "broker")
		Expect(err).NotTo(HaveOccurred())

		manager = infra.NewManager(c)
	})

	AfterAll(func() {
		if f == nil {
			return
		}
		Expect(f.Cleanup()).To(Succeed())
	})

	It("runs a ready broker when the Celery executor is selected", func() {
		By("creating the password Secret the chart would provision")
		Expect(f.CreatePasswordSecret(releaseName+"-redis-password", "e2e-password")).To(Succeed())

		By("applying the rendered StatefulSet")
		result, err := manager.Apply(ctx, logr.Discard(), input("executor: CeleryExecutor\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Decision.Render).To(BeTrue())

		By("waiting for the broker pod to become ready")
		Eventually(func() (bool, error) {
			return f.StatefulSetReady(releaseName + "-redis")
		}, framework.DefaultWaitTimeout, framework.DefaultPollInterval).Should(BeTrue())
	})

	It("removes the broker when the executor no longer uses it", func() {
		result, err := manager.Apply(ctx, logr.Discard(), input("executor: KubernetesExecutor\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Decision.Render).To(BeFalse())

		Eventually(func() bool {
			err := c.Get(ctx, types.NamespacedName{Namespace: f.Namespace, Name: releaseName + "-redis"}, &appsv1.StatefulSet{})
			return apierrors.IsNotFound(err)
		}, framework.DefaultWaitTimeout, framework.DefaultPollInterval).Should(BeTrue())
	})
})
