package contract

import (
	"context"
	"io"

	"github.com/huangsam/motionlens/schema"
	"github.com/stretchr/testify/mock"
)

// MockDataSource is a mock implementation of DataSource for testing.
type MockDataSource struct {
	mock.Mock
}

var _ DataSource = &MockDataSource{} // Compile-time check

// Name implements the DataSource interface.
func (m *MockDataSource) Name() string {
	args := m.Called()
	return args.String(0)
}

// Open implements the DataSource interface.
func (m *MockDataSource) Open(ctx context.Context) (io.ReadCloser, error) {
	args := m.Called(ctx)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

// MockRenderer is a mock implementation of Renderer for testing.
type MockRenderer struct {
	mock.Mock
}

var _ Renderer = &MockRenderer{} // Compile-time check

// Render implements the Renderer interface.
func (m *MockRenderer) Render(frame schema.ViewFrame) error {
	args := m.Called(frame)
	return args.Error(0)
}
