package history

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/flighttrack-backend-go/internal/models"
)

func sampleAt(lat, lon float64, ts int64) models.PositionSample {
	return models.PositionSample{Lat: lat, Lon: lon, Timestamp: ts}
}

func TestRecordAndGet(t *testing.T) {
	s := NewStore(30)

	s.Record("AAL8", sampleAt(40.0, -73.0, 1))
	s.Record("AAL8", sampleAt(40.1, -73.1, 2))

	got := s.Get("AAL8")
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].Timestamp)
	assert.Equal(t, int64(2), got[1].Timestamp)
}

func TestCapacityEviction(t *testing.T) {
	s := NewStore(30)

	for i := 0; i < 35; i++ {
		s.Record("DAL2966", sampleAt(40.0, -73.0, int64(i)))
	}

	got := s.Get("DAL2966")
	require.Len(t, got, 30, "buffer never exceeds capacity")

	// The last 30 samples survive in original relative order, oldest first.
	for i, sample := range got {
		assert.Equal(t, int64(i+5), sample.Timestamp)
	}
}

func TestEmptyKeyIgnored(t *testing.T) {
	s := NewStore(30)
	s.Record("", sampleAt(40.0, -73.0, 1))
	assert.Empty(t, s.Get(""))
}

func TestGetUnknownKey(t *testing.T) {
	s := NewStore(30)
	got := s.Get("UAL1")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetReturnsCopy(t *testing.T) {
	s := NewStore(30)
	s.Record("AAL8", sampleAt(40.0, -73.0, 1))

	got := s.Get("AAL8")
	got[0].Timestamp = 99

	assert.Equal(t, int64(1), s.Get("AAL8")[0].Timestamp)
}

func TestGroundDistance(t *testing.T) {
	s := NewStore(30)
	assert.Zero(t, s.GroundDistance("AAL8"))

	s.Record("AAL8", sampleAt(40.0, -73.0, 1))
	assert.Zero(t, s.GroundDistance("AAL8"), "one sample has no track")

	// Roughly one degree of latitude, ~111km.
	s.Record("AAL8", sampleAt(41.0, -73.0, 2))
	d := s.GroundDistance("AAL8")
	assert.InDelta(t, 111000, d, 1000)
}

func TestConcurrentRecordDifferentKeys(t *testing.T) {
	s := NewStore(30)
	keys := []string{"AAL8", "DAL2966", "UAL1", "SWA123"}

	var wg sync.WaitGroup
	for _, key := range keys {
		wg.Add(1)
		go func(k string) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				s.Record(k, sampleAt(40.0, -73.0, int64(i)))
			}
		}(key)
	}
	wg.Wait()

	for _, key := range keys {
		got := s.Get(key)
		require.Len(t, got, 30)
		// Each key's sequence is intact: strictly increasing timestamps.
		for i := 1; i < len(got); i++ {
			assert.Equal(t, got[i-1].Timestamp+1, got[i].Timestamp)
		}
	}
}
