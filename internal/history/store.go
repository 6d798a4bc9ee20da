// Package history keeps a short, bounded log of recently observed positions
// per flight. The store is process-lifetime only: entries are evicted by
// capacity, never by age, and nothing is persisted.
package history

import (
	"sync"

	"github.com/jengzang/flighttrack-backend-go/internal/models"
	"github.com/jengzang/flighttrack-backend-go/internal/spatial"
)

// DefaultCapacity is the number of samples kept per flight key.
const DefaultCapacity = 30

// Store is an injectable position-history buffer keyed by normalized
// callsign. Safe for concurrent use; append and eviction happen atomically
// under one lock.
type Store struct {
	mu       sync.Mutex
	capacity int
	buffers  map[string][]models.PositionSample
}

// NewStore creates a history store. A non-positive capacity falls back to
// DefaultCapacity.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		capacity: capacity,
		buffers:  make(map[string][]models.PositionSample),
	}
}

// Record appends a sample to the buffer for key, evicting from the front
// once the buffer exceeds capacity. No-op when the key is empty: a flight
// with no telemetry match leaves existing history untouched.
func (s *Store) Record(key string, sample models.PositionSample) {
	if key == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	buf := append(s.buffers[key], sample)
	if len(buf) > s.capacity {
		buf = buf[len(buf)-s.capacity:]
	}
	s.buffers[key] = buf
}

// Get returns a copy of the buffer for key, oldest first. Unknown keys
// yield an empty slice; Get never fails and never blocks beyond the lock.
func (s *Store) Get(key string) []models.PositionSample {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := s.buffers[key]
	out := make([]models.PositionSample, len(buf))
	copy(out, buf)
	return out
}

// GroundDistance returns the summed great-circle distance in meters along
// the recorded track for key. Zero for fewer than two samples.
func (s *Store) GroundDistance(key string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := s.buffers[key]
	var total float64
	for i := 1; i < len(buf); i++ {
		total += spatial.HaversineDistance(buf[i-1].Lat, buf[i-1].Lon, buf[i].Lat, buf[i].Lon)
	}
	return total
}

// Len returns the current number of samples for key.
func (s *Store) Len(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buffers[key])
}
