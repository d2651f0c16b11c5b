package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockOTP is the only code the mock gateway accepts.
const MockOTP = "123456"

// MockGateway is the development auth service: any email can log in
// with the fixed OTP, and the resulting user id is derived from the
// email so repeated runs stay stable.
type MockGateway struct {
	mu      sync.Mutex
	user    *User
	pending map[string]bool
}

// NewMockGateway returns a mock gateway with no active session.
func NewMockGateway() *MockGateway {
	return &MockGateway{pending: make(map[string]bool)}
}

// NewSignedInMock returns a mock gateway with an active session for
// email. Mock sessions live only as long as the process, so commands in
// mock mode start signed in rather than demanding a login round-trip.
func NewSignedInMock(email string) *MockGateway {
	m := NewMockGateway()
	local, _, _ := strings.Cut(email, "@")
	m.user = &User{
		ID:    "mock-" + local,
		Name:  local,
		Email: email,
		Role:  "customer",
	}
	return m
}

// SendOTP records that a code was "sent" to the email.
func (m *MockGateway) SendOTP(_ context.Context, email string) error {
	if !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email %q", email)
	}
	m.mu.Lock()
	m.pending[email] = true
	m.mu.Unlock()
	return nil
}

// VerifyOTP accepts MockOTP for any email that requested a code.
func (m *MockGateway) VerifyOTP(_ context.Context, email, code string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.pending[email] {
		return nil, fmt.Errorf("no OTP requested for %q", email)
	}
	if code != MockOTP {
		return nil, fmt.Errorf("incorrect OTP")
	}

	local, _, _ := strings.Cut(email, "@")
	m.user = &User{
		ID:    "mock-" + local,
		Name:  local,
		Email: email,
		Role:  "customer",
	}
	delete(m.pending, email)
	return m.user, nil
}

// CurrentUser returns the logged-in mock user, if any.
func (m *MockGateway) CurrentUser(_ context.Context) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil, ErrNotAuthenticated
	}
	return m.user, nil
}

// Logout drops the mock session.
func (m *MockGateway) Logout(_ context.Context) error {
	m.mu.Lock()
	m.user = nil
	m.mu.Unlock()
	return nil
}
