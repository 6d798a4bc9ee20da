package models

// Status is the closed set of canonical flight statuses. Upstream strings
// are mapped onto this set at the boundary and never propagated raw.
type Status string

const (
	StatusUnknown   Status = "unknown"
	StatusScheduled Status = "scheduled"
	StatusActive    Status = "active"
	StatusLanded    Status = "landed"
	StatusCancelled Status = "cancelled"
	StatusIncident  Status = "incident"
	StatusDiverted  Status = "diverted"
	StatusLive      Status = "live"
)

// ErrorTag marks why the commercial lookup produced no usable signal,
// distinguishing "checked and failed" from "checked and empty".
type ErrorTag string

const (
	ErrTagNoAPIKey      ErrorTag = "no_api_key"
	ErrTagNoCode        ErrorTag = "no_code"
	ErrTagNoData        ErrorTag = "no_data"
	ErrTagUpstreamError ErrorTag = "upstream_error"
)
