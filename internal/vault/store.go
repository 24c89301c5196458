// Package vault provides the secret store for cluster pairing credentials,
// backed by a HashiCorp Vault KV v2 engine.
//
// All secrets live under a fixed root path inside the configured mount, so a
// single mount can be shared with other tools without path collisions.
package vault

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	vaultapi "github.com/hashicorp/vault/api"
	"github.com/sirupsen/logrus"

	"github.com/kestrelops/pcectl/internal/config"
	"github.com/kestrelops/pcectl/internal/util/retry"
)

// basePath is the root under which every secret of this tool is stored.
const basePath = "illumio"

const maxAttempts = 3

// Store is the secret-store boundary used by the orchestration workflows.
type Store interface {
	// Store upserts the secret at path. A non-nil cas value requests a
	// check-and-set write against that version.
	Store(ctx context.Context, path string, data map[string]interface{}, cas *int) (bool, error)
	// Get reads the secret at path. A missing path yields an empty map, not
	// an error. Version 0 reads the latest version.
	Get(ctx context.Context, path string, version int) (map[string]interface{}, error)
	// DeleteAllVersions removes the secret's metadata and every version.
	DeleteAllVersions(ctx context.Context, path string) (bool, error)
	// List returns the names of the secrets directly under path.
	List(ctx context.Context, path string) ([]string, error)
}

// KVStore implements Store on a Vault KV v2 mount.
type KVStore struct {
	client *vaultapi.Client
	mount  string
	logger *logrus.Logger
}

// New creates an authenticated KVStore. Token validity is checked once at
// construction via a token self-lookup.
func New(cfg config.VaultConfig, logger *logrus.Logger) (*KVStore, error) {
	apiCfg := vaultapi.DefaultConfig()
	apiCfg.Address = cfg.Addr
	apiCfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second

	client, err := vaultapi.NewClient(apiCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}
	client.SetToken(cfg.Token)

	if _, err := client.Auth().Token().LookupSelf(); err != nil {
		return nil, &AuthError{Err: err}
	}

	return &KVStore{
		client: client,
		mount:  strings.Trim(cfg.Mount, "/"),
		logger: logger,
	}, nil
}

// Store upserts the secret at path.
func (s *KVStore) Store(ctx context.Context, path string, data map[string]interface{}, cas *int) (bool, error) {
	fullPath := s.dataPath(path)

	payload := map[string]interface{}{"data": data}
	if cas != nil {
		payload["options"] = map[string]interface{}{"cas": *cas}
	}

	s.logger.WithField("path", fullPath).Debug("storing secret")

	var version int64
	err := retry.WithExponentialBackoff(ctx, func() error {
		secret, err := s.client.Logical().WriteWithContext(ctx, fullPath, payload)
		if err != nil {
			return err
		}
		version = secretVersion(secret)
		return nil
	}, retry.WithMaxRetries(maxAttempts-1))
	if err != nil {
		return false, &Error{Op: "store", Path: path, Err: err}
	}

	return version > 0, nil
}

// Get reads the secret at path, or an empty map when the path does not exist.
func (s *KVStore) Get(ctx context.Context, path string, version int) (map[string]interface{}, error) {
	fullPath := s.dataPath(path)

	var params map[string][]string
	if version > 0 {
		params = map[string][]string{"version": {fmt.Sprintf("%d", version)}}
	}

	var secret *vaultapi.Secret
	err := retry.WithExponentialBackoff(ctx, func() error {
		var err error
		secret, err = s.client.Logical().ReadWithDataWithContext(ctx, fullPath, params)
		return err
	}, retry.WithMaxRetries(maxAttempts-1))
	if err != nil {
		return nil, &Error{Op: "get", Path: path, Err: err}
	}

	if secret == nil {
		s.logger.WithField("path", fullPath).Warn("secret not found")
		return map[string]interface{}{}, nil
	}

	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return map[string]interface{}{}, nil
	}
	return data, nil
}

// DeleteAllVersions removes the secret's metadata and every version at path.
func (s *KVStore) DeleteAllVersions(ctx context.Context, path string) (bool, error) {
	fullPath := s.metadataPath(path)

	s.logger.WithField("path", fullPath).Debug("deleting secret")

	err := retry.WithExponentialBackoff(ctx, func() error {
		_, err := s.client.Logical().DeleteWithContext(ctx, fullPath)
		return err
	}, retry.WithMaxRetries(maxAttempts-1))
	if err != nil {
		return false, &Error{Op: "delete", Path: path, Err: err}
	}

	return true, nil
}

// List returns the names of the secrets directly under path.
func (s *KVStore) List(ctx context.Context, path string) ([]string, error) {
	fullPath := s.metadataPath(path)

	var secret *vaultapi.Secret
	err := retry.WithExponentialBackoff(ctx, func() error {
		var err error
		secret, err = s.client.Logical().ListWithContext(ctx, fullPath)
		return err
	}, retry.WithMaxRetries(maxAttempts-1))
	if err != nil {
		return nil, &Error{Op: "list", Path: path, Err: err}
	}

	if secret == nil {
		return nil, nil
	}

	raw, ok := secret.Data["keys"].([]interface{})
	if !ok {
		return nil, nil
	}

	keys := make([]string, 0, len(raw))
	for _, k := range raw {
		if name, ok := k.(string); ok {
			keys = append(keys, name)
		}
	}
	return keys, nil
}

func (s *KVStore) dataPath(path string) string {
	return fmt.Sprintf("%s/data/%s", s.mount, rootedPath(path))
}

func (s *KVStore) metadataPath(path string) string {
	return fmt.Sprintf("%s/metadata/%s", s.mount, rootedPath(path))
}

func rootedPath(path string) string {
	return strings.Trim(basePath+"/"+strings.Trim(path, "/"), "/")
}

func secretVersion(secret *vaultapi.Secret) int64 {
	if secret == nil {
		return 0
	}
	n, ok := secret.Data["version"].(json.Number)
	if !ok {
		return 0
	}
	v, err := n.Int64()
	if err != nil {
		return 0
	}
	return v
}
