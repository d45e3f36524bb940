package mocks

import (
	"github.com/courtshot/courtshot/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing
type MockRandom struct {
	// HexResults is a queue of results to return from Hex
	HexResults []string
	hexIndex   int

	// URLTokenResults is a queue of results to return from URLToken
	URLTokenResults []string
	urlTokenIndex   int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Hex returns the next queued result, or empty string if none remaining
func (r *MockRandom) Hex(n int) string {
	if r.hexIndex >= len(r.HexResults) {
		return ""
	}
	result := r.HexResults[r.hexIndex]
	r.hexIndex++
	return result
}

// URLToken returns the next queued result, or empty string if none remaining
func (r *MockRandom) URLToken(n int) string {
	if r.urlTokenIndex >= len(r.URLTokenResults) {
		return ""
	}
	result := r.URLTokenResults[r.urlTokenIndex]
	r.urlTokenIndex++
	return result
}
