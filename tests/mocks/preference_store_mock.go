package mocks

import "github.com/stretchr/testify/mock"

// MockPreferenceStore is a mock implementation of the preferences.Store interface
type MockPreferenceStore struct {
	mock.Mock
}

func (m *MockPreferenceStore) Get(key string) (string, bool, error) {
	args := m.Called(key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockPreferenceStore) Set(key, value string) error {
	args := m.Called(key, value)
	return args.Error(0)
}
