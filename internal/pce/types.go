package pce

import (
	"errors"
	"strings"
	"time"
)

// EnforcementMode is the policy strictness level applied to a cluster,
// profile, or pairing profile.
type EnforcementMode string

const (
	EnforcementVisibilityOnly EnforcementMode = "visibility_only"
	EnforcementSelective      EnforcementMode = "selective"
	EnforcementFull           EnforcementMode = "full"
)

// VisibilityFlowSummary is the default visibility level for managed workloads.
const VisibilityFlowSummary = "flow_summary"

// Endpoints of the PCE org-scoped REST API.
const (
	EndpointContainerClusters = "container_clusters"
	EndpointWorkloadProfiles  = "container_workload_profiles"
	EndpointLabels            = "labels"
	EndpointPairingProfiles   = "pairing_profiles"
	EndpointSecPolicy         = "sec_policy"
)

// Label is a key/value tag assigned by the PCE.
type Label struct {
	Href  string `json:"href,omitempty"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// LabelRef references an existing label by href.
type LabelRef struct {
	Href string `json:"href"`
}

// ContainerCluster is a PCE-registered Kubernetes cluster.
type ContainerCluster struct {
	Href                  string          `json:"href,omitempty"`
	Name                  string          `json:"name"`
	Description           string          `json:"description,omitempty"`
	ContainerClusterToken string          `json:"container_cluster_token,omitempty"`
	EnforcementMode       EnforcementMode `json:"enforcement_mode,omitempty"`
	ContainerRuntime      string          `json:"container_runtime,omitempty"`
	ManagerType           string          `json:"manager_type,omitempty"`
	Online                bool            `json:"online"`
	CreatedAt             *time.Time      `json:"created_at,omitempty"`
	UpdatedAt             *time.Time      `json:"updated_at,omitempty"`
}

// ID returns the externally assigned identifier, the last segment of the href.
func (c *ContainerCluster) ID() string {
	return lastHrefSegment(c.Href)
}

// ContainerProfile is a workload profile bound to one cluster namespace.
type ContainerProfile struct {
	Href            string          `json:"href,omitempty"`
	Name            string          `json:"name,omitempty"`
	Namespace       string          `json:"namespace,omitempty"`
	Managed         bool            `json:"managed"`
	EnforcementMode EnforcementMode `json:"enforcement_mode,omitempty"`
	VisibilityLevel string          `json:"visibility_level,omitempty"`
	AssignLabels    []LabelRef      `json:"assign_labels,omitempty"`
}

// PairingProfile controls how new workloads pair into the PCE.
type PairingProfile struct {
	Href                string          `json:"href,omitempty"`
	Name                string          `json:"name"`
	Enabled             bool            `json:"enabled"`
	EnforcementMode     EnforcementMode `json:"enforcement_mode,omitempty"`
	VisibilityLevel     string          `json:"visibility_level,omitempty"`
	LogTraffic          bool            `json:"log_traffic"`
	LogTrafficLock      bool            `json:"log_traffic_lock"`
	EnforcementModeLock bool            `json:"enforcement_mode_lock"`
}

// ID returns the externally assigned identifier, the last segment of the href.
func (p *PairingProfile) ID() string {
	return lastHrefSegment(p.Href)
}

// PairingKey is a one-time activation code issued from a pairing profile.
type PairingKey struct {
	Href           string     `json:"href,omitempty"`
	ActivationCode string     `json:"activation_code"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
}

// IngressService describes one service a rule allows. A nil Port means any
// port for the protocol.
type IngressService struct {
	Proto int  `json:"proto"`
	Port  *int `json:"port,omitempty"`
}

// ProtoTCP is the IP protocol number for TCP.
const ProtoTCP = 6

// RuleActor is one side (consumer or provider) of a policy rule.
type RuleActor struct {
	Label *LabelRef `json:"label,omitempty"`
}

// Rule is a security policy statement.
type Rule struct {
	Href            string           `json:"href,omitempty"`
	Name            string           `json:"name"`
	Enabled         bool             `json:"enabled"`
	Description     string           `json:"description,omitempty"`
	IngressServices []IngressService `json:"ingress_services,omitempty"`
	Consumers       []RuleActor      `json:"consumers,omitempty"`
	Providers       []RuleActor      `json:"providers,omitempty"`
}

// Validate enforces the structural preconditions for submitting a rule.
func (r *Rule) Validate() error {
	if len(r.IngressServices) == 0 {
		return errors.New("rule must have at least one ingress service")
	}
	if len(r.Consumers) == 0 || len(r.Providers) == 0 {
		return errors.New("rule must have both consumers and providers")
	}
	return nil
}

func lastHrefSegment(href string) string {
	if href == "" {
		return ""
	}
	parts := strings.Split(strings.TrimRight(href, "/"), "/")
	return parts[len(parts)-1]
}
