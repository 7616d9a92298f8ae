package statink

import "context"

// MockClient is a mock stat.ink client for testing
type MockClient struct {
	weapons    []Weapon
	weaponsErr error
	baseURL    string
}

// MockOption configures the mock client
type MockOption func(*MockClient)

// WithWeapons sets the weapons to return
func WithWeapons(weapons []Weapon) MockOption {
	return func(m *MockClient) {
		m.weapons = weapons
	}
}

// WithWeaponsError sets an error to return from FetchWeapons
func WithWeaponsError(err error) MockOption {
	return func(m *MockClient) {
		m.weaponsErr = err
	}
}

// NewMockClient creates a new mock client
func NewMockClient(opts ...MockOption) *MockClient {
	m := &MockClient{baseURL: "mock://stat.ink"}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// FetchWeapons returns the configured weapons or error
func (m *MockClient) FetchWeapons(ctx context.Context) ([]Weapon, error) {
	if m.weaponsErr != nil {
		return nil, m.weaponsErr
	}
	return m.weapons, nil
}

// BaseURL returns the mock base URL
func (m *MockClient) BaseURL() string {
	return m.baseURL
}
