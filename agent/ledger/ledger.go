// Package ledger owns the append-only reservation ledger: a single in-memory
// collection guarded by one mutex, persisted write-through to a JSON file.
// Reading booked seats, checking capacity, assigning the booking id, appending
// and persisting happen inside one critical section, so two concurrent
// reservations can never jointly overbook a slot.
package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog/log"
)

// DefaultCapacity is the maximum aggregate party size per
// (restaurant, date_time) slot.
const DefaultCapacity = 50

var (
	// ErrCapacityExceeded is a normal business outcome, not a fault.
	ErrCapacityExceeded = errors.New("slot capacity exceeded")
	// ErrPersistence means the ledger file write failed; the in-memory append
	// is rolled back so ledger and file stay consistent.
	ErrPersistence = errors.New("ledger persistence failed")
)

// Reservation is one persisted booking. JSON tags match the ledger file format.
type Reservation struct {
	BookingID  int    `json:"booking_id"`
	Restaurant string `json:"restaurant"`
	DateTime   string `json:"date_time"`
	NumPeople  int    `json:"num_people"`
}

type Ledger struct {
	mu           sync.Mutex
	path         string
	capacity     int
	reservations []Reservation
}

// Open loads the ledger from path. A missing or malformed file is an empty
// ledger, not an error. capacity <= 0 selects DefaultCapacity.
func Open(path string, capacity int) *Ledger {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	l := &Ledger{path: path, capacity: capacity}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("path", path).Msg("ledger file unreadable, starting empty")
		}
		return l
	}
	if err := json.Unmarshal(data, &l.reservations); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("ledger file malformed, starting empty")
		l.reservations = nil
	}
	return l
}

// Capacity returns the per-slot capacity.
func (l *Ledger) Capacity() int {
	return l.capacity
}

// BookedSeats sums num_people over reservations matching the exact
// (restaurant, dateTime) key.
func (l *Ledger) BookedSeats(restaurant, dateTime string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.bookedSeatsLocked(restaurant, dateTime)
}

func (l *Ledger) bookedSeatsLocked(restaurant, dateTime string) int {
	seats := 0
	for _, r := range l.reservations {
		if r.Restaurant == restaurant && r.DateTime == dateTime {
			seats += r.NumPeople
		}
	}
	return seats
}

// Available reports whether numPeople more seats fit into the slot.
func (l *Ledger) Available(restaurant, dateTime string, numPeople int) bool {
	return l.BookedSeats(restaurant, dateTime)+numPeople <= l.capacity
}

// Reserve atomically re-checks capacity, assigns the next booking id, appends
// the reservation and rewrites the ledger file. On a write failure the append
// is rolled back and the error wraps ErrPersistence, distinct from a capacity
// rejection.
func (l *Ledger) Reserve(restaurant, dateTime string, numPeople int) (Reservation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	booked := l.bookedSeatsLocked(restaurant, dateTime)
	if booked+numPeople > l.capacity {
		return Reservation{}, fmt.Errorf("%w: %d booked + %d requested > %d",
			ErrCapacityExceeded, booked, numPeople, l.capacity)
	}

	res := Reservation{
		BookingID:  len(l.reservations) + 1,
		Restaurant: restaurant,
		DateTime:   dateTime,
		NumPeople:  numPeople,
	}
	l.reservations = append(l.reservations, res)

	if err := l.persistLocked(); err != nil {
		l.reservations = l.reservations[:len(l.reservations)-1]
		return Reservation{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return res, nil
}

func (l *Ledger) persistLocked() error {
	data, err := json.MarshalIndent(l.reservations, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(l.path, data, 0o644)
}

// All returns a copy of the ordered reservation collection.
func (l *Ledger) All() []Reservation {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Reservation, len(l.reservations))
	copy(out, l.reservations)
	return out
}

// Len returns the number of reservations.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.reservations)
}
