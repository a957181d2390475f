package serial

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/dev/ttyACM0")
	assert.Equal(t, "/dev/ttyACM0", cfg.Device)
	assert.Equal(t, 115200, cfg.Baud)
	assert.Equal(t, 100, cfg.ReadTimeout)
}

func TestOpenRejectsNilConfig(t *testing.T) {
	_, err := Open(nil)
	assert.Error(t, err)
}

func TestMockPortRoundTrip(t *testing.T) {
	m := &MockPort{}
	m.Feed([]byte("STATUS\n"))

	buf := make([]byte, 16)
	n, err := m.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "STATUS\n", string(buf[:n]))

	_, err = m.Read(buf)
	assert.Equal(t, io.EOF, err)

	_, err = m.Write([]byte("OK:STOP\n"))
	require.NoError(t, err)
	assert.Equal(t, []byte("OK:STOP\n"), m.Written())
}

func TestMockPortFlushAndClose(t *testing.T) {
	m := &MockPort{}
	m.Feed([]byte("stale"))
	require.NoError(t, m.Flush())

	buf := make([]byte, 8)
	_, err := m.Read(buf)
	assert.Equal(t, io.EOF, err)

	require.NoError(t, m.Close())
	assert.True(t, m.Closed())
	_, err = m.Read(buf)
	assert.Equal(t, io.ErrClosedPipe, err)
	_, err = m.Write([]byte("x"))
	assert.Equal(t, io.ErrClosedPipe, err)
}
