package pce

import (
	"context"
	"encoding/json"
	"net/url"
)

// Call records one request made against the MockClient.
type Call struct {
	Method   string
	Endpoint string
	Params   url.Values
	Body     interface{}
}

// MockClient is a scriptable implementation of Client for tests. Each call is
// recorded; responses come from RequestFunc when set, otherwise an empty
// object is returned.
type MockClient struct {
	RequestFunc func(ctx context.Context, method, endpoint string, params url.Values, body interface{}) (json.RawMessage, error)

	Calls []Call
}

// Request implements Client.
func (m *MockClient) Request(ctx context.Context, method, endpoint string, params url.Values, body interface{}) (json.RawMessage, error) {
	m.Calls = append(m.Calls, Call{Method: method, Endpoint: endpoint, Params: params, Body: body})
	if m.RequestFunc != nil {
		return m.RequestFunc(ctx, method, endpoint, params, body)
	}
	return json.RawMessage("{}"), nil
}

// CallsTo returns the recorded calls matching method and endpoint.
func (m *MockClient) CallsTo(method, endpoint string) []Call {
	var out []Call
	for _, call := range m.Calls {
		if call.Method == method && call.Endpoint == endpoint {
			out = append(out, call)
		}
	}
	return out
}
