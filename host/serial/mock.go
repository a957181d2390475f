package serial

import (
	"bytes"
	"io"
	"sync"
)

// MockPort is an in-memory Port for tests. Reads drain a scripted
// input buffer; writes accumulate and can be inspected.
type MockPort struct {
	mu     sync.Mutex
	input  bytes.Buffer
	output bytes.Buffer
	closed bool
}

var _ Port = (*MockPort)(nil)

// Feed appends data for subsequent Reads to return.
func (m *MockPort) Feed(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.input.Write(data)
}

// Written returns everything written to the port so far.
func (m *MockPort) Written() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.output.Bytes()...)
}

// Closed reports whether Close has been called.
func (m *MockPort) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *MockPort) Read(b []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, io.ErrClosedPipe
	}
	if m.input.Len() == 0 {
		return 0, io.EOF
	}
	return m.input.Read(b)
}

func (m *MockPort) Write(b []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, io.ErrClosedPipe
	}
	return m.output.Write(b)
}

func (m *MockPort) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MockPort) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.input.Reset()
	return nil
}
