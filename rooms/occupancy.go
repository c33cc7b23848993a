package rooms

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrNoSuchRoom = errors.New("no such room")
	ErrRoomFull   = errors.New("room full")
)

// Change is a room opening (a seat freed up) or closing (the last seat
// was taken).
type Change struct {
	Number uint32
	Open   bool
}

// Occupancy seats members in numbered rooms of fixed capacity. Rooms are
// numbered from 1 and open while they have a free seat.
type Occupancy struct {
	rooms    int
	capacity int
	members  map[string]uint32
	counts   map[uint32]int
	lock     sync.Mutex
}

func NewOccupancy(rooms, capacity int) *Occupancy {
	return &Occupancy{
		rooms:    rooms,
		capacity: capacity,
		members:  make(map[string]uint32),
		counts:   make(map[uint32]int),
	}
}

// Join seats member in room number, leaving any room it was in before.
func (o *Occupancy) Join(member string, number uint32) ([]Change, error) {
	o.lock.Lock()
	defer o.lock.Unlock()

	if number < 1 || int(number) > o.rooms {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchRoom, number)
	}
	if current, ok := o.members[member]; ok && current == number {
		return nil, nil
	}
	if o.counts[number] >= o.capacity {
		return nil, fmt.Errorf("%w: %d", ErrRoomFull, number)
	}

	changes := o.leave(member)
	o.members[member] = number
	o.counts[number]++
	if o.counts[number] == o.capacity {
		changes = append(changes, Change{Number: number, Open: false})
	}
	return changes, nil
}

func (o *Occupancy) Leave(member string) []Change {
	o.lock.Lock()
	defer o.lock.Unlock()

	return o.leave(member)
}

func (o *Occupancy) leave(member string) []Change {
	number, ok := o.members[member]
	if !ok {
		return nil
	}
	delete(o.members, member)

	wasFull := o.counts[number] == o.capacity
	o.counts[number]--
	if o.counts[number] == 0 {
		delete(o.counts, number)
	}
	if wasFull {
		return []Change{{Number: number, Open: true}}
	}
	return nil
}

func (o *Occupancy) RoomOf(member string) (uint32, bool) {
	o.lock.Lock()
	defer o.lock.Unlock()

	number, ok := o.members[member]
	return number, ok
}

// Full lists rooms without a free seat in ascending order.
func (o *Occupancy) Full() []uint32 {
	o.lock.Lock()
	defer o.lock.Unlock()

	var full []uint32
	for number, n := range o.counts {
		if n >= o.capacity {
			full = append(full, number)
		}
	}
	sort.Slice(full, func(i, j int) bool { return full[i] < full[j] })
	return full
}
