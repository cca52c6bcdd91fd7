//go:build e2e
// +build e2e

package framework

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

const (
	// DefaultPollInterval is the default polling interval for E2E waits.
	DefaultPollInterval = 2 * time.Second
	// DefaultWaitTimeout is the default timeout for common E2E waits.
	DefaultWaitTimeout = 3 * time.Minute
)

// Framework encapsulates a per-test namespace and convenience helpers.
type Framework struct {
	Client    client.Client
	Namespace string
	Ctx       context.Context
}

// New creates a uniquely named namespace for one test.
func New(ctx context.Context, c client.Client, baseName string) (*Framework, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context is required")
	}
	if c == nil {
		return nil, fmt.Errorf("kubernetes client is required")
	}
	if baseName == "" {
		return nil, fmt.Errorf("base name is required")
	}

	nsName, err := uniqueNamespaceName(baseName)
	if err != nil {
		return nil, fmt.Errorf("failed to generate namespace name: %w", err)
	}

	ns := &corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: nsName}}
	if err := c.Create(ctx, ns); err != nil {
		return nil, fmt.Errorf("failed to create namespace %q: %w", nsName, err)
	}

	return &Framework{Client: c, Namespace: nsName, Ctx: ctx}, nil
}

// Cleanup deletes the test namespace. NotFound is ignored.
func (f *Framework) Cleanup() error {
	ns := &corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: f.Namespace}}
	if err := f.Client.Delete(f.Ctx, ns); err != nil && !apierrors.IsNotFound(err) {
		return fmt.Errorf("failed to delete namespace %q: %w", f.Namespace, err)
	}
	return nil
}

// CreatePasswordSecret creates the Secret the broker reads its password from.
func (f *Framework) CreatePasswordSecret(name, password string) error {
	secret := &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: f.Namespace},
		StringData: map[string]string{"password": password},
	}
	if err := f.Client.Create(f.Ctx, secret); err != nil && !apierrors.IsAlreadyExists(err) {
		return fmt.Errorf("failed to create Secret %s/%s: %w", f.Namespace, name, err)
	}
	return nil
}

// StatefulSetReady reports whether every desired replica of the named
// StatefulSet is ready.
func (f *Framework) StatefulSetReady(name string) (bool, error) {
	sts := &appsv1.StatefulSet{}
	if err := f.Client.Get(f.Ctx, types.NamespacedName{Namespace: f.Namespace, Name: name}, sts); err != nil {
		return false, err
	}
	desired := int32(1)
	if sts.Spec.Replicas != nil {
		desired = *sts.Spec.Replicas
	}
	return sts.Status.ReadyReplicas == desired, nil
}

func uniqueNamespaceName(baseName string) (string, error) {
	suffix := make([]byte, 3)
	if _, err := rand.Read(suffix); err != nil {
		return "", err
	}
	return fmt.Sprintf("e2e-%s-%s", baseName, hex.EncodeToString(suffix)), nil
}
