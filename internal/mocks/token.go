package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// MockToken stands in for a paho delivery token.
type MockToken struct {
	mock.Mock
}

// NewFinishedToken returns a token whose Wait reports completion with err.
func NewFinishedToken(err error) *MockToken {
	token := new(MockToken)
	token.On("Wait").Return(true)
	token.On("Error").Return(err)
	return token
}

func (m *MockToken) Wait() bool {
	return m.Called().Bool(0)
}

func (m *MockToken) WaitTimeout(timeout time.Duration) bool {
	return m.Called(timeout).Bool(0)
}

// Done is always closed; publishes in tests complete synchronously.
func (m *MockToken) Done() <-chan struct{} {
	done := make(chan struct{})
	close(done)
	return done
}

func (m *MockToken) Error() error {
	return m.Called().Error(0)
}
