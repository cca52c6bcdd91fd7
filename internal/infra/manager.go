package infra

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	appsv1 "k8s.io/api/apps/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/util/retry"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/dc-tec/broker-renderer/internal/constants"
	operatorerrors "github.com/dc-tec/broker-renderer/internal/errors"
	"github.com/dc-tec/broker-renderer/internal/kube"
	"github.com/dc-tec/broker-renderer/internal/logging"
)

const failureReasonInvalidValues = "InvalidValues"

// RenderResult is the output of one render. Manifest is empty and StatefulSet
// is nil when the inclusion gate is closed.
type RenderResult struct {
	Decision    RenderDecision
	StorageMode StorageMode
	Credential  CredentialReference
	StatefulSet *appsv1.StatefulSet
	Manifest    []byte
}

// Render evaluates the inclusion gate and, when it is open, assembles the
// broker StatefulSet and its YAML manifest. Render has no side effects other
// than logging and metrics.
func Render(logger logr.Logger, in RenderInput) (*RenderResult, error) {
	if err := validateInput(in); err != nil {
		return nil, operatorerrors.WrapPermanentConfig(err)
	}
	in = in.withDefaults()

	logger = logger.WithValues("release", in.Release.Name, "namespace", in.Release.Namespace)
	metrics := NewMetrics(in.Release.Namespace, in.Release.Name)

	decision := DecideRender(in.Values)
	if !decision.Render {
		metrics.RecordSuppressed(decision)
		logger.Info("Broker not rendered", "reason", decision.Reason, "detail", decision.Message)
		return &RenderResult{Decision: decision}, nil
	}

	result, err := assemble(in)
	if err != nil {
		metrics.RecordFailure(failureReasonInvalidValues)
		return nil, err
	}
	result.Decision = decision
	metrics.RecordRendered(decision, result.StorageMode)

	logger.V(1).Info("Broker rendered",
		"storage", string(result.StorageMode),
		"passwordSecret", result.Credential.SecretName,
		"explicitPasswordSecret", result.Credential.Explicit)
	return result, nil
}

func assemble(in RenderInput) (*RenderResult, error) {
	resolved := ResolveConfig(in.Values)

	storage, err := DecideStorage(in.Values.Redis.Persistence)
	if err != nil {
		return nil, err
	}

	hooks := resolved.LifecycleHooks
	if hooks != nil {
		data, err := templateContext(in)
		if err != nil {
			return nil, err
		}
		hooks, err = expandLifecycleHooks(hooks, data)
		if err != nil {
			return nil, err
		}
	}

	credential := ResolveCredential(in)
	statefulSet := buildStatefulSet(in, resolved, storage, hooks, credential)

	manifest, err := kube.MarshalManifest(statefulSet, templateSource(in.Chart))
	if err != nil {
		return nil, fmt.Errorf("failed to encode StatefulSet %s: %w", statefulSet.Name, err)
	}

	return &RenderResult{
		StorageMode: storage.Mode(),
		Credential:  credential,
		StatefulSet: statefulSet,
		Manifest:    manifest,
	}, nil
}

// Manager applies rendered brokers to a cluster.
type Manager struct {
	client     client.Client
	fieldOwner string
}

// NewManager constructs a Manager that uses the provided Kubernetes client.
func NewManager(c client.Client) *Manager {
	return &Manager{
		client:     c,
		fieldOwner: constants.FieldOwner,
	}
}

// Apply renders in and converges the cluster on the result. A rendered broker
// is applied with Server-Side Apply; a suppressed one causes a previously
// applied StatefulSet of the same release to be deleted.
//
// It is safe to call Apply multiple times.
func (m *Manager) Apply(ctx context.Context, logger logr.Logger, in RenderInput) (*RenderResult, error) {
	if in.Release.Namespace == "" {
		return nil, operatorerrors.WrapPermanentConfig(fmt.Errorf("release namespace is required to apply"))
	}

	result, err := Render(logger, in)
	if err != nil {
		return nil, err
	}

	logger = logger.WithValues("release", in.Release.Name, "namespace", in.Release.Namespace)
	metrics := NewMetrics(in.Release.Namespace, in.Release.Name)

	if result.Decision.Render {
		if err := m.applyStatefulSet(ctx, result.StatefulSet); err != nil {
			metrics.RecordApply(actionFailed)
			return nil, err
		}
		metrics.RecordApply(actionApplied)
		logging.LogAuditEvent(logger, logging.EventBrokerApplied, map[string]string{
			"statefulset": result.StatefulSet.Name,
			"storage":     string(result.StorageMode),
		})
		return result, nil
	}

	pruned, err := m.pruneStatefulSet(ctx, logger, in)
	if err != nil {
		metrics.RecordApply(actionFailed)
		return nil, err
	}
	if !pruned {
		metrics.RecordApply(actionSkipped)
		return result, nil
	}
	metrics.RecordApply(actionPruned)
	logging.LogAuditEvent(logger, logging.EventBrokerPruned, map[string]string{
		"statefulset": fullname(in),
		"reason":      result.Decision.Reason,
	})
	return result, nil
}

// applyStatefulSet uses Server-Side Apply to create or update the StatefulSet,
// retrying transient API failures.
func (m *Manager) applyStatefulSet(ctx context.Context, statefulSet *appsv1.StatefulSet) error {
	applyConfig, err := kube.ToApplyConfiguration(statefulSet, m.client)
	if err != nil {
		return fmt.Errorf("failed to convert StatefulSet to ApplyConfiguration: %w", err)
	}

	applyOpts := []client.ApplyOption{
		client.ForceOwnership,
		client.FieldOwner(m.fieldOwner),
	}

	err = retry.OnError(retry.DefaultBackoff, operatorerrors.IsTransientKubernetesAPI, func() error {
		return m.client.Apply(ctx, applyConfig, applyOpts...)
	})
	if err != nil {
		err = fmt.Errorf("failed to apply StatefulSet %s/%s: %w", statefulSet.Namespace, statefulSet.Name, err)
		if operatorerrors.IsTransientKubernetesAPI(err) {
			return operatorerrors.WrapTransientKubernetesAPI(err)
		}
		return err
	}
	return nil
}

// pruneStatefulSet deletes the release's broker StatefulSet if one exists and
// carries the broker's selector labels. Objects with the same name that were
// not produced by this tool are left alone.
func (m *Manager) pruneStatefulSet(ctx context.Context, logger logr.Logger, in RenderInput) (bool, error) {
	key := types.NamespacedName{Namespace: in.Release.Namespace, Name: fullname(in)}

	existing := &appsv1.StatefulSet{}
	if err := m.client.Get(ctx, key, existing); err != nil {
		if apierrors.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get StatefulSet %s: %w", key, err)
	}

	for k, v := range selectorLabels(in) {
		if existing.Labels[k] != v {
			logger.Info("StatefulSet is not managed as this release's broker; leaving it in place",
				"statefulset", key.String(), "label", k)
			return false, nil
		}
	}

	if err := m.client.Delete(ctx, existing); err != nil {
		if apierrors.IsNotFound(err) {
			return false, nil
		}
		err = fmt.Errorf("failed to delete StatefulSet %s: %w", key, err)
		if operatorerrors.IsTransientKubernetesAPI(err) {
			return false, operatorerrors.WrapTransientKubernetesAPI(err)
		}
		return false, err
	}
	return true, nil
}
