package models

import "encoding/json"

// PositionSample is one observed position for a flight. Immutable once created.
type PositionSample struct {
	Lat       float64  `json:"lat"`
	Lon       float64  `json:"lon"`
	Heading   *float64 `json:"heading"`
	Alt       *float64 `json:"alt"`
	Timestamp int64    `json:"ts"` // Unix timestamp in seconds
}

// StateVector is one OpenSky state vector, decoded from the positional array
// format of /states/all. Pointer fields distinguish "null in feed" from zero.
type StateVector struct {
	ICAO24        string
	Callsign      string
	OriginCountry string
	LastContact   int64
	Longitude     *float64
	Latitude      *float64
	BaroAltitude  *float64
	OnGround      bool
	Velocity      *float64
	TrueTrack     *float64
	GeoAltitude   *float64
}

// Altitude returns the preferred altitude reading: geometric if present,
// barometric otherwise. Nil when the feed reported neither.
func (sv *StateVector) Altitude() *float64 {
	if sv.GeoAltitude != nil {
		return sv.GeoAltitude
	}
	return sv.BaroAltitude
}

// TelemetrySnapshot is one fetch of the live state-vector feed.
type TelemetrySnapshot struct {
	Time   int64
	States []StateVector
}

// TelemetryFix is the telemetry block exposed on a fused record.
type TelemetryFix struct {
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
	Heading *float64 `json:"heading"`
	Alt     *float64 `json:"alt"`
}

// CommercialFlight holds the fields consumed from the commercial status API.
// Sub-objects are kept opaque; only date and status are interpreted.
type CommercialFlight struct {
	FlightDate   string          `json:"flight_date"`
	FlightStatus string          `json:"flight_status"`
	Departure    json.RawMessage `json:"departure,omitempty"`
	Arrival      json.RawMessage `json:"arrival,omitempty"`
	Airline      json.RawMessage `json:"airline,omitempty"`
	Flight       json.RawMessage `json:"flight,omitempty"`
	Aircraft     json.RawMessage `json:"aircraft,omitempty"`
	Live         json.RawMessage `json:"live,omitempty"`
}

// FusedFlight is the per-callsign output record: both upstream signals,
// the canonical status, and the recent position history (oldest first).
// Constructed fresh per request and never mutated afterwards.
type FusedFlight struct {
	Callsign         string            `json:"callsign"`
	FlightCode       string            `json:"flight_code"`
	Telemetry        *TelemetryFix     `json:"telemetry"`
	Commercial       *CommercialFlight `json:"commercial"`
	CommercialStatus Status            `json:"commercial_status,omitempty"`
	Status           Status            `json:"status"`
	Error            ErrorTag          `json:"error,omitempty"`
	History          []PositionSample  `json:"history"`
	HistoryDistanceM float64           `json:"history_distance_m"`
}

// BatchResponse is the payload for one batch resolution request.
type BatchResponse struct {
	Now     int64         `json:"now"`
	Flights []FusedFlight `json:"flights"`
}
