// Package pce provides a client for the policy center (PCE) REST API.
//
// The PCE exposes an org-scoped JSON API ({base_url}/orgs/{org_id}/...) used
// to manage container clusters, labels, workload profiles, pairing profiles,
// and security policy. The package follows the interface / HTTP implementation
// / mock split so workflows can be tested without a live PCE.
package pce

import (
	"context"
	"encoding/json"
	"net/url"
)

// Client is the outbound boundary to the PCE API. Request returns the raw
// JSON payload of a successful response; callers unmarshal into the wire
// types of this package.
type Client interface {
	Request(ctx context.Context, method, endpoint string, params url.Values, body interface{}) (json.RawMessage, error)
}
