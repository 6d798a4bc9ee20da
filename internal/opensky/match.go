package opensky

import (
	"strings"

	"github.com/jengzang/flighttrack-backend-go/internal/models"
)

// liveAltitudeThreshold is the altitude (metres) above which a matched
// aircraft is considered in the air.
const liveAltitudeThreshold = 1000.0

// Match finds the first state vector whose callsign matches the normalized
// target. Feed callsigns are often right-padded or truncated, so a match is
// an exact equality or either string being a prefix of the other. Snapshot
// order is preserved; nil means no match, which is a normal outcome.
func Match(snapshot *models.TelemetrySnapshot, target string) *models.StateVector {
	if snapshot == nil || target == "" {
		return nil
	}
	for i := range snapshot.States {
		cs := strings.ToUpper(strings.TrimSpace(snapshot.States[i].Callsign))
		if cs == "" {
			continue
		}
		if cs == target || strings.HasPrefix(cs, target) || strings.HasPrefix(target, cs) {
			return &snapshot.States[i]
		}
	}
	return nil
}

// TelemetrySignal derives a status signal from a matched state vector:
// live when the aircraft reports altitude above the threshold. Altitude
// alone makes no claim otherwise, so the signal is left empty.
func TelemetrySignal(sv *models.StateVector) models.Status {
	if sv == nil {
		return ""
	}
	if alt := sv.Altitude(); alt != nil && *alt > liveAltitudeThreshold {
		return models.StatusLive
	}
	return ""
}
