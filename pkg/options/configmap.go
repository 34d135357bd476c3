package options

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/NVIDIA/pipeline-preflight/pkg/defaults"
	cnserrors "github.com/NVIDIA/pipeline-preflight/pkg/errors"
	"github.com/NVIDIA/pipeline-preflight/pkg/k8s/client"
)

// ConfigMapDocumentKey is the data key holding a whole options document.
// When absent, every data key is read as one option.
const ConfigMapDocumentKey = "options.yaml"

// Loader resolves option sources. Client is only needed for cm:// sources;
// when nil, the shared kube client is created on first use.
type Loader struct {
	Client kubernetes.Interface

	mu sync.Mutex
}

// Load reads options from a file path or a cm:// URI.
func (l *Loader) Load(ctx context.Context, uri string) (*Store, error) {
	if !client.IsConfigMapURI(uri) {
		return LoadFile(uri)
	}
	namespace, name, err := client.ParseConfigMapURI(uri)
	if err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeInvalidRequest, "invalid options source", err)
	}
	return l.LoadConfigMap(ctx, namespace, name)
}

// LoadConfigMap reads options from the named ConfigMap.
func (l *Loader) LoadConfigMap(ctx context.Context, namespace, name string) (*Store, error) {
	cs, err := l.kubeClient()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.ConfigMapReadTimeout)
	defer cancel()

	cm, err := cs.CoreV1().ConfigMaps(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeNotFound, "failed to read options ConfigMap", err,
			map[string]any{"namespace": namespace, "name": name})
	}

	slog.Debug("loaded options configmap",
		"namespace", namespace,
		"name", name,
		"keys", len(cm.Data))

	if doc, ok := cm.Data[ConfigMapDocumentKey]; ok {
		s, err := ParseDocument([]byte(doc))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s in ConfigMap %s/%s: %w", ConfigMapDocumentKey, namespace, name, err)
		}
		return s, nil
	}

	s := New()
	for key, value := range cm.Data {
		if KindOf(key) == KindList {
			for _, line := range strings.Split(value, "\n") {
				if line = strings.TrimSpace(line); line != "" {
					if err := s.SetFromString(key, line); err != nil {
						return nil, err
					}
				}
			}
			continue
		}
		if err := s.SetFromString(key, value); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (l *Loader) kubeClient() (kubernetes.Interface, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Client == nil {
		c, _, err := client.GetKubeClient()
		if err != nil {
			return nil, cnserrors.Wrap(cnserrors.ErrCodeUnavailable, "failed to create kubernetes client", err)
		}
		l.Client = c
	}
	return l.Client, nil
}
