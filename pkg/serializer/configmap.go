package serializer

import (
	"context"
	"fmt"
	"log/slog"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/NVIDIA/pipeline-preflight/pkg/defaults"
	"github.com/NVIDIA/pipeline-preflight/pkg/k8s/client"
)

// ConfigMapDataKeyPrefix prefixes the data key a ConfigMapWriter writes,
// followed by the format extension ("result.json").
const ConfigMapDataKeyPrefix = "result."

// ConfigMapWriter stores serialized output in a ConfigMap, creating it when
// missing and replacing its data key otherwise.
type ConfigMapWriter struct {
	format    Format
	namespace string
	name      string

	// Client is used when set; otherwise the shared kube client is created
	// on first use.
	Client kubernetes.Interface
}

// NewConfigMapWriter returns a writer targeting namespace/name.
func NewConfigMapWriter(format Format, namespace, name string) *ConfigMapWriter {
	if format.IsUnknown() {
		format = FormatJSON
	}
	return &ConfigMapWriter{format: format, namespace: namespace, name: name}
}

// DataKey returns the ConfigMap data key the writer writes.
func (w *ConfigMapWriter) DataKey() string {
	return ConfigMapDataKeyPrefix + w.format.Extension()
}

// Serialize implements Serializer.
func (w *ConfigMapWriter) Serialize(ctx context.Context, data any) error {
	b, err := Marshal(w.format, data)
	if err != nil {
		return err
	}

	if w.Client == nil {
		c, _, err := client.GetKubeClient()
		if err != nil {
			return fmt.Errorf("failed to create kubernetes client: %w", err)
		}
		w.Client = c
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.ConfigMapReadTimeout)
	defer cancel()

	cms := w.Client.CoreV1().ConfigMaps(w.namespace)
	cm, err := cms.Get(ctx, w.name, metav1.GetOptions{})
	switch {
	case apierrors.IsNotFound(err):
		cm = &corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{
				Name:      w.name,
				Namespace: w.namespace,
				Labels: map[string]string{
					"app.kubernetes.io/managed-by": "preflight",
				},
			},
			Data: map[string]string{w.DataKey(): string(b)},
		}
		if _, err := cms.Create(ctx, cm, metav1.CreateOptions{}); err != nil {
			return fmt.Errorf("failed to create ConfigMap %s/%s: %w", w.namespace, w.name, err)
		}
	case err != nil:
		return fmt.Errorf("failed to get ConfigMap %s/%s: %w", w.namespace, w.name, err)
	default:
		if cm.Data == nil {
			cm.Data = map[string]string{}
		}
		cm.Data[w.DataKey()] = string(b)
		if _, err := cms.Update(ctx, cm, metav1.UpdateOptions{}); err != nil {
			return fmt.Errorf("failed to update ConfigMap %s/%s: %w", w.namespace, w.name, err)
		}
	}

	slog.Debug("wrote output to configmap",
		"namespace", w.namespace,
		"name", w.name,
		"key", w.DataKey(),
		"bytes", len(b))
	return nil
}
