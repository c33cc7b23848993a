package network

import (
	"net"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"lobby/protocol"
)

// --- PacketConn ---

type fakeConn struct {
	in     chan []byte
	closed chan struct{}
	once   sync.Once

	mu      sync.Mutex
	written [][]byte
	to      []net.Addr
	err     error
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		in:     make(chan []byte),
		closed: make(chan struct{}),
	}
}

func (f *fakeConn) ReadFrom(p []byte) (int, net.Addr, error) {
	select {
	case b := <-f.in:
		return copy(p, b), fakeAddr("server"), nil
	case <-f.closed:
		return 0, nil, &net.OpError{Op: "read", Net: "udp", Err: net.ErrClosed}
	}
}

func (f *fakeConn) WriteTo(p []byte, addr net.Addr) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.written = append(f.written, append([]byte(nil), p...))
	f.to = append(f.to, addr)
	return len(p), nil
}

func (f *fakeConn) Writes() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]byte(nil), f.written...)
}

func (f *fakeConn) Close() error {
	f.once.Do(func() { close(f.closed) })
	return nil
}

func (f *fakeConn) LocalAddr() net.Addr                { return fakeAddr("client") }
func (f *fakeConn) SetDeadline(t time.Time) error      { return nil }
func (f *fakeConn) SetReadDeadline(t time.Time) error  { return nil }
func (f *fakeConn) SetWriteDeadline(t time.Time) error { return nil }

type fakeAddr string

func (a fakeAddr) Network() string { return "udp" }
func (a fakeAddr) String() string  { return string(a) }

// --- Codec ---

type MockCodec struct {
	mock.Mock
}

func (m *MockCodec) Pack(msg protocol.Message) ([]byte, error) {
	args := m.Called(msg)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func (m *MockCodec) Unpack(b []byte) (protocol.Message, error) {
	args := m.Called(b)
	msg, _ := args.Get(0).(protocol.Message)
	return msg, args.Error(1)
}
