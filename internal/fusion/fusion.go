// Package fusion reconciles the telemetry and commercial status signals for
// one flight into a single canonical status.
//
// The precedence is deliberately asymmetric: telemetry is a direct location
// observation and is authoritative for "currently airborne", while the
// commercial source is authoritative for the scheduled and landed lifecycle
// states. Other commercial statuses (active, cancelled, ...) are parsed onto
// the closed enum so they stay visible on the record, but are not promoted
// to canonical status.
package fusion

import (
	"strings"

	"github.com/jengzang/flighttrack-backend-go/internal/models"
)

var statusByName = map[string]models.Status{
	"scheduled": models.StatusScheduled,
	"active":    models.StatusActive,
	"landed":    models.StatusLanded,
	"cancelled": models.StatusCancelled,
	"incident":  models.StatusIncident,
	"diverted":  models.StatusDiverted,
}

// ParseStatus maps an upstream status string onto the closed Status set.
// Anything unrecognized, including the empty string, becomes unknown. Raw
// upstream strings never travel past this boundary.
func ParseStatus(raw string) models.Status {
	if st, ok := statusByName[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return st
	}
	return models.StatusUnknown
}

// Fuse combines the optional telemetry signal, the parsed commercial status,
// and the commercial lookup's error tag into the canonical status. The tag is
// surfaced only when no source yielded a status; its value distinguishes
// "checked and failed" (upstream_error) from "checked and empty" (no_data).
func Fuse(telemetry models.Status, commercial models.Status, commercialErr models.ErrorTag) (models.Status, models.ErrorTag) {
	if telemetry == models.StatusLive {
		return models.StatusLive, ""
	}
	if commercial == models.StatusScheduled || commercial == models.StatusLanded {
		return commercial, ""
	}
	return models.StatusUnknown, commercialErr
}
