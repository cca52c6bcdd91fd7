package infra

import (
	"bytes"

	"github.com/go-logr/logr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"

	redisv1alpha1 "github.com/dc-tec/broker-renderer/api/v1alpha1"
	"github.com/dc-tec/broker-renderer/internal/constants"
)

var _ = Describe("Rendering the broker StatefulSet", func() {
	var values *redisv1alpha1.Values

	BeforeEach(func() {
		values = newTestValues()
	})

	render := func() *RenderResult {
		result, err := Render(logr.Discard(), newTestInput(values))
		Expect(err).NotTo(HaveOccurred())
		return result
	}

	Context("with persistence disabled", func() {
		It("declares an emptyDir data volume and no claim templates", func() {
			values.Redis.Persistence.Enabled = false

			result := render()
			Expect(result.Decision.Render).To(BeTrue())
			Expect(result.StorageMode).To(Equal(StorageModeEphemeral))

			sts := result.StatefulSet
			Expect(sts.Spec.VolumeClaimTemplates).To(BeEmpty())
			Expect(sts.Spec.Template.Spec.Volumes).To(HaveLen(1))
			Expect(sts.Spec.Template.Spec.Volumes[0].Name).To(Equal(constants.VolumeRedisDB))
			Expect(sts.Spec.Template.Spec.Volumes[0].EmptyDir).NotTo(BeNil())

			Expect(string(result.Manifest)).To(ContainSubstring("emptyDir: {}"))
			Expect(string(result.Manifest)).NotTo(ContainSubstring("volumeClaimTemplates"))
		})
	})

	Context("with persistence enabled", func() {
		It("declares a single-writer claim template of the configured size and no emptyDir", func() {
			values.Redis.Persistence.Enabled = true
			values.Redis.Persistence.Size = "8Gi"

			result := render()
			Expect(result.StorageMode).To(Equal(StorageModePersistent))

			sts := result.StatefulSet
			Expect(sts.Spec.Template.Spec.Volumes).To(BeEmpty())
			Expect(sts.Spec.VolumeClaimTemplates).To(HaveLen(1))

			claim := sts.Spec.VolumeClaimTemplates[0]
			Expect(claim.Name).To(Equal(constants.VolumeRedisDB))
			Expect(claim.Spec.AccessModes).To(ConsistOf(corev1.ReadWriteOnce))
			size := claim.Spec.Resources.Requests[corev1.ResourceStorage]
			Expect(size.Cmp(resource.MustParse("8Gi"))).To(BeZero())

			Expect(string(result.Manifest)).To(ContainSubstring("storage: 8Gi"))
			Expect(string(result.Manifest)).NotTo(ContainSubstring("emptyDir"))
		})

		It("changes nothing but the volume declarations when toggled", func() {
			values.Redis.Persistence.Enabled = false
			ephemeral := render().StatefulSet.DeepCopy()

			values.Redis.Persistence.Enabled = true
			persistent := render().StatefulSet.DeepCopy()

			ephemeral.Spec.Template.Spec.Volumes = nil
			persistent.Spec.VolumeClaimTemplates = nil
			Expect(persistent).To(Equal(ephemeral))
		})
	})

	Context("with an executor that does not use the broker", func() {
		DescribeTable("produces no StatefulSet and no output",
			func(executor string) {
				values.Executor = executor

				result := render()
				Expect(result.Decision.Render).To(BeFalse())
				Expect(result.Decision.Reason).To(Equal(ReasonExecutorWithoutBroker))
				Expect(result.StatefulSet).To(BeNil())
				Expect(result.Manifest).To(BeEmpty())
			},
			Entry("KubernetesExecutor", string(redisv1alpha1.ExecutorKubernetes)),
			Entry("LocalExecutor", string(redisv1alpha1.ExecutorLocal)),
			Entry("an unknown executor", "DaskExecutor"),
		)

		It("produces no output when the component is disabled under Celery", func() {
			values.Redis.Enabled = new(bool)

			result := render()
			Expect(result.Decision.Reason).To(Equal(ReasonComponentDisabled))
			Expect(result.Manifest).To(BeEmpty())
		})
	})

	Context("with a component nodeSelector and a global nodeSelector", func() {
		It("uses the component selector as a whole", func() {
			values.NodeSelector = map[string]string{"zone": "b", "disk": "ssd"}
			values.Redis.NodeSelector = map[string]string{"zone": "a"}

			result := render()
			Expect(result.StatefulSet.Spec.Template.Spec.NodeSelector).To(Equal(map[string]string{"zone": "a"}))
		})
	})

	It("renders byte-identical manifests for identical input", func() {
		values.Labels = map[string]string{"team": "data", "env": "prod", "cost-center": "42"}
		values.Redis.PodAnnotations = map[string]string{"b": "2", "a": "1"}
		values.Redis.Persistence.Enabled = true

		first := render().Manifest
		for range 5 {
			Expect(bytes.Equal(render().Manifest, first)).To(BeTrue())
		}
	})
})
