package opensky

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/flighttrack-backend-go/internal/models"
)

func TestFetchStates(t *testing.T) {
	payload := map[string]interface{}{
		"time": 1700000000,
		"states": [][]interface{}{
			{
				"a1b2c3",   // 0  icao24
				"DAL2966 ", // 1  callsign (padded)
				"US",       // 2  origin_country
				1700000000, // 3  time_position
				1700000000, // 4  last_contact
				-73.9,      // 5  longitude
				40.7,       // 6  latitude
				9800.0,     // 7  baro_altitude
				false,      // 8  on_ground
				240.0,      // 9  velocity
				185.0,      // 10 true_track
				0.0,        // 11 vertical_rate
				nil,        // 12 sensors
				10100.0,    // 13 geo_altitude
				"2345",     // 14 squawk
				false,      // 15 spi
				0,          // 16 position_source
			},
			// Short row: dropped.
			{"zz", "SHORT"},
			// Nulled position fields: kept, pointers nil.
			{
				"d4e5f6", "UAL1  ", "US", nil, 1700000001,
				nil, nil, nil, true, nil, nil, nil, nil, nil,
			},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/states/all", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	snap, err := client.FetchStates(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.States, 2)
	assert.Equal(t, int64(1700000000), snap.Time)

	sv := snap.States[0]
	assert.Equal(t, "DAL2966 ", sv.Callsign)
	require.NotNil(t, sv.Latitude)
	assert.InDelta(t, 40.7, *sv.Latitude, 0.01)
	require.NotNil(t, sv.GeoAltitude)
	assert.InDelta(t, 10100.0, *sv.Altitude(), 0.01)

	grounded := snap.States[1]
	assert.True(t, grounded.OnGround)
	assert.Nil(t, grounded.Latitude)
	assert.Nil(t, grounded.Altitude())
}

func TestFetchStatesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.FetchStates(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status: 502")
}

func stateWithCallsign(cs string) models.StateVector {
	return models.StateVector{Callsign: cs}
}

func TestMatchPaddedCallsign(t *testing.T) {
	snap := &models.TelemetrySnapshot{States: []models.StateVector{
		stateWithCallsign("UAL1   "),
		stateWithCallsign("AAL8    "),
	}}

	sv := Match(snap, "AAL8")
	require.NotNil(t, sv)
	assert.Equal(t, "AAL8    ", sv.Callsign)
}

func TestMatchTruncatedTarget(t *testing.T) {
	snap := &models.TelemetrySnapshot{States: []models.StateVector{
		stateWithCallsign("DAL29"),
	}}

	// The feed truncated the callsign; the target is a superstring.
	sv := Match(snap, "DAL2966")
	require.NotNil(t, sv)
}

func TestMatchFirstWinsInSnapshotOrder(t *testing.T) {
	first := stateWithCallsign("AAL80")
	snap := &models.TelemetrySnapshot{States: []models.StateVector{
		first,
		stateWithCallsign("AAL8"),
	}}

	// "AAL8" is a prefix of "AAL80", so the earlier record wins.
	sv := Match(snap, "AAL8")
	require.NotNil(t, sv)
	assert.Equal(t, "AAL80", sv.Callsign)
}

func TestMatchNone(t *testing.T) {
	snap := &models.TelemetrySnapshot{States: []models.StateVector{
		stateWithCallsign("SWA123"),
		stateWithCallsign(""),
	}}

	assert.Nil(t, Match(snap, "AAL8"))
	assert.Nil(t, Match(snap, ""))
	assert.Nil(t, Match(nil, "AAL8"))
}

func TestTelemetrySignal(t *testing.T) {
	high := 10100.0
	low := 300.0

	sv := &models.StateVector{GeoAltitude: &high}
	assert.Equal(t, models.StatusLive, TelemetrySignal(sv))

	// Barometric altitude is the fallback reading.
	sv = &models.StateVector{BaroAltitude: &high}
	assert.Equal(t, models.StatusLive, TelemetrySignal(sv))

	sv = &models.StateVector{GeoAltitude: &low}
	assert.Equal(t, models.Status(""), TelemetrySignal(sv))

	sv = &models.StateVector{}
	assert.Equal(t, models.Status(""), TelemetrySignal(sv))

	assert.Equal(t, models.Status(""), TelemetrySignal(nil))
}
