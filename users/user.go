package users

import (
	"net"
	"sync"
)

// Users are the addresses subscribed to lobby broadcasts.
type Users struct {
	addrs map[string]net.Addr
	lock  sync.Mutex
}

func NewUsers() *Users {
	return &Users{
		addrs: make(map[string]net.Addr),
	}
}

// Add reports whether addr was not already listening.
func (u *Users) Add(addr net.Addr) bool {
	u.lock.Lock()
	defer u.lock.Unlock()

	key := addr.String()
	_, ok := u.addrs[key]
	u.addrs[key] = addr
	return !ok
}

func (u *Users) Remove(addr net.Addr) {
	u.lock.Lock()
	delete(u.addrs, addr.String())
	u.lock.Unlock()
}

func (u *Users) Len() int {
	u.lock.Lock()
	defer u.lock.Unlock()

	return len(u.addrs)
}

// Broadcast writes msg to every listener and returns how many writes failed.
func (u *Users) Broadcast(conn net.PacketConn, msg []byte) int {
	u.lock.Lock()
	defer u.lock.Unlock()

	failed := 0
	for _, addr := range u.addrs {
		if _, err := conn.WriteTo(msg, addr); err != nil {
			failed++
		}
	}
	return failed
}
