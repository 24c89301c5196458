package vault

import "context"

// StoreCall records one mutation or read against the MockStore.
type StoreCall struct {
	Op   string
	Path string
	Data map[string]interface{}
}

// MockStore is a scriptable implementation of Store for tests.
type MockStore struct {
	StoreFunc             func(ctx context.Context, path string, data map[string]interface{}, cas *int) (bool, error)
	GetFunc               func(ctx context.Context, path string, version int) (map[string]interface{}, error)
	DeleteAllVersionsFunc func(ctx context.Context, path string) (bool, error)
	ListFunc              func(ctx context.Context, path string) ([]string, error)

	Calls []StoreCall
}

// Store implements Store.
func (m *MockStore) Store(ctx context.Context, path string, data map[string]interface{}, cas *int) (bool, error) {
	m.Calls = append(m.Calls, StoreCall{Op: "store", Path: path, Data: data})
	if m.StoreFunc != nil {
		return m.StoreFunc(ctx, path, data, cas)
	}
	return true, nil
}

// Get implements Store.
func (m *MockStore) Get(ctx context.Context, path string, version int) (map[string]interface{}, error) {
	m.Calls = append(m.Calls, StoreCall{Op: "get", Path: path})
	if m.GetFunc != nil {
		return m.GetFunc(ctx, path, version)
	}
	return map[string]interface{}{}, nil
}

// DeleteAllVersions implements Store.
func (m *MockStore) DeleteAllVersions(ctx context.Context, path string) (bool, error) {
	m.Calls = append(m.Calls, StoreCall{Op: "delete", Path: path})
	if m.DeleteAllVersionsFunc != nil {
		return m.DeleteAllVersionsFunc(ctx, path)
	}
	return true, nil
}

// List implements Store.
func (m *MockStore) List(ctx context.Context, path string) ([]string, error) {
	m.Calls = append(m.Calls, StoreCall{Op: "list", Path: path})
	if m.ListFunc != nil {
		return m.ListFunc(ctx, path)
	}
	return nil, nil
}

// CallsTo returns the recorded calls for one operation.
func (m *MockStore) CallsTo(op string) []StoreCall {
	var out []StoreCall
	for _, call := range m.Calls {
		if call.Op == op {
			out = append(out, call)
		}
	}
	return out
}
