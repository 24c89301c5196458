// Package config loads and validates the pcectl configuration.
//
// Configuration comes from a YAML file with environment variable overrides
// for endpoints and credentials. Secrets (the PCE API credential and the
// Vault token) are expected from the environment and never written to disk.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// AuthMethod selects how the PCE client authenticates.
type AuthMethod string

const (
	// AuthAPIKey authenticates with a bearer API key.
	AuthAPIKey AuthMethod = "api_key"
	// AuthBasic authenticates with an API user and secret (HTTP basic auth).
	AuthBasic AuthMethod = "basic"
)

// AuthConfig is the resolved PCE credential. Exactly one variant is active,
// decided once at load time.
type AuthConfig struct {
	Method    AuthMethod `mapstructure:"method" yaml:"method"`
	APIKey    string     `mapstructure:"api_key" yaml:"api_key"`
	APIUser   string     `mapstructure:"api_user" yaml:"api_user"`
	APISecret string     `mapstructure:"api_secret" yaml:"api_secret"`
}

// PCEConfig holds the connection settings for the policy center.
type PCEConfig struct {
	BaseURL        string     `mapstructure:"base_url" yaml:"base_url"`
	OrgID          int        `mapstructure:"org_id" yaml:"org_id"`
	Auth           AuthConfig `mapstructure:"auth" yaml:"auth"`
	TimeoutSeconds int        `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	MaxRetries     int        `mapstructure:"max_retries" yaml:"max_retries"`
	VerifySSL      *bool      `mapstructure:"verify_ssl" yaml:"verify_ssl"`
}

// VaultConfig holds the connection settings for the secret store.
type VaultConfig struct {
	Addr           string `mapstructure:"addr" yaml:"addr"`
	Token          string `mapstructure:"token" yaml:"token"`
	Mount          string `mapstructure:"mount" yaml:"mount"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// KubernetesConfig holds the settings for the Kubernetes collaborator.
type KubernetesConfig struct {
	Kubeconfig string `mapstructure:"kubeconfig" yaml:"kubeconfig"`
	Namespace  string `mapstructure:"namespace" yaml:"namespace"`
	InCluster  bool   `mapstructure:"in_cluster" yaml:"in_cluster"`
}

// Config is the application configuration.
type Config struct {
	PCE        PCEConfig        `mapstructure:"pce" yaml:"pce"`
	Vault      VaultConfig      `mapstructure:"vault" yaml:"vault"`
	Kubernetes KubernetesConfig `mapstructure:"kubernetes" yaml:"kubernetes"`
}

const (
	// DefaultNamespace is the namespace the PCE agents are installed into.
	DefaultNamespace = "illumio-system"

	defaultTimeoutSeconds = 30
	defaultMaxRetries     = 3
	defaultVaultMount     = "secret"
)

// DefaultConfigFile is looked up in the working directory when no --config
// flag is given.
const DefaultConfigFile = "pcectl.yaml"

// Load reads the configuration from a YAML file, applies environment
// overrides, fills defaults, and validates the result. An empty path loads
// DefaultConfigFile when it exists and otherwise starts from an empty
// configuration (environment-only setup).
func Load(path string) (*Config, error) {
	var cfg Config

	optional := false
	if path == "" {
		path = DefaultConfigFile
		optional = true
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var raw map[string]interface{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
		}
		if err := mapstructure.Decode(raw, &cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	case optional && os.IsNotExist(err):
		// environment-only setup
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PCE_BASE_URL"); v != "" {
		cfg.PCE.BaseURL = v
	}
	if v := os.Getenv("PCE_ORG_ID"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			cfg.PCE.OrgID = id
		}
	}
	if v := os.Getenv("PCE_API_KEY"); v != "" {
		cfg.PCE.Auth.APIKey = v
	}
	if v := os.Getenv("PCE_API_USER"); v != "" {
		cfg.PCE.Auth.APIUser = v
	}
	if v := os.Getenv("PCE_API_SECRET"); v != "" {
		cfg.PCE.Auth.APISecret = v
	}
	if v := os.Getenv("VAULT_ADDR"); v != "" {
		cfg.Vault.Addr = v
	}
	if v := os.Getenv("VAULT_TOKEN"); v != "" {
		cfg.Vault.Token = v
	}
	if v := os.Getenv("VAULT_MOUNT"); v != "" {
		cfg.Vault.Mount = v
	}
	if v := os.Getenv("KUBECONFIG"); v != "" && cfg.Kubernetes.Kubeconfig == "" {
		cfg.Kubernetes.Kubeconfig = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.PCE.TimeoutSeconds == 0 {
		cfg.PCE.TimeoutSeconds = defaultTimeoutSeconds
	}
	if cfg.PCE.MaxRetries == 0 {
		cfg.PCE.MaxRetries = defaultMaxRetries
	}
	if cfg.PCE.VerifySSL == nil {
		verify := true
		cfg.PCE.VerifySSL = &verify
	}
	if cfg.Vault.Mount == "" {
		cfg.Vault.Mount = defaultVaultMount
	}
	if cfg.Vault.TimeoutSeconds == 0 {
		cfg.Vault.TimeoutSeconds = defaultTimeoutSeconds
	}
	if cfg.Kubernetes.Namespace == "" {
		cfg.Kubernetes.Namespace = DefaultNamespace
	}

	if cfg.PCE.Auth.Method == "" {
		switch {
		case cfg.PCE.Auth.APIKey != "":
			cfg.PCE.Auth.Method = AuthAPIKey
		case cfg.PCE.Auth.APIUser != "" || cfg.PCE.Auth.APISecret != "":
			cfg.PCE.Auth.Method = AuthBasic
		}
	}
}

// Validate checks the configuration for completeness.
func (c *Config) Validate() error {
	if c.PCE.BaseURL == "" {
		return fmt.Errorf("pce.base_url is required")
	}
	if !strings.HasPrefix(c.PCE.BaseURL, "http://") && !strings.HasPrefix(c.PCE.BaseURL, "https://") {
		return fmt.Errorf("pce.base_url must start with http:// or https://")
	}
	if c.PCE.OrgID <= 0 {
		return fmt.Errorf("pce.org_id is required and must be positive")
	}

	switch c.PCE.Auth.Method {
	case AuthAPIKey:
		if c.PCE.Auth.APIKey == "" {
			return fmt.Errorf("pce.auth.api_key is required for api_key auth")
		}
	case AuthBasic:
		if c.PCE.Auth.APIUser == "" || c.PCE.Auth.APISecret == "" {
			return fmt.Errorf("pce.auth.api_user and pce.auth.api_secret are required for basic auth")
		}
	case "":
		return fmt.Errorf("pce credentials are required (set PCE_API_KEY or PCE_API_USER/PCE_API_SECRET)")
	default:
		return fmt.Errorf("unknown pce.auth.method: %q", c.PCE.Auth.Method)
	}

	if c.Vault.Addr == "" {
		return fmt.Errorf("vault.addr is required")
	}
	if c.Vault.Token == "" {
		return fmt.Errorf("vault token is required (set VAULT_TOKEN)")
	}

	return nil
}
