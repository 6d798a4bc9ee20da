package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jengzang/flighttrack-backend-go/internal/airline"
	"github.com/jengzang/flighttrack-backend-go/internal/callsign"
	"github.com/jengzang/flighttrack-backend-go/internal/fusion"
	"github.com/jengzang/flighttrack-backend-go/internal/history"
	"github.com/jengzang/flighttrack-backend-go/internal/models"
	"github.com/jengzang/flighttrack-backend-go/internal/opensky"
)

// defaultWorkers bounds concurrent per-callsign resolutions so a large batch
// does not overwhelm the rate-limited, paid-per-call commercial upstream.
const defaultWorkers = 4

// TelemetrySource provides one live snapshot per batch.
type TelemetrySource interface {
	FetchStates(ctx context.Context) (*models.TelemetrySnapshot, error)
}

// StatusSource looks up the commercial status for a flight code.
type StatusSource interface {
	Lookup(ctx context.Context, flightCode string) (*models.CommercialFlight, models.ErrorTag)
}

// ResolveService correlates callsigns against the telemetry feed and the
// commercial status source and fuses the results.
type ResolveService struct {
	registry  *airline.Registry
	telemetry TelemetrySource
	status    StatusSource
	history   *history.Store
	workers   int
}

// NewResolveService creates a resolve service. A non-positive worker count
// falls back to the default.
func NewResolveService(registry *airline.Registry, telemetry TelemetrySource, status StatusSource, hist *history.Store, workers int) *ResolveService {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &ResolveService{
		registry:  registry,
		telemetry: telemetry,
		status:    status,
		history:   hist,
		workers:   workers,
	}
}

// Resolve produces one fused record per requested callsign, in input order.
// The telemetry snapshot is fetched once and shared read-only across the
// batch; each callsign then resolves independently and best-effort, so no
// single failure aborts the others.
func (s *ResolveService) Resolve(ctx context.Context, rawCallsigns []string) models.BatchResponse {
	snapshot := s.fetchSnapshot(ctx)

	flights := make([]models.FusedFlight, len(rawCallsigns))

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.workers)
	for i, raw := range rawCallsigns {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, cs string) {
			defer wg.Done()
			defer func() { <-sem }()
			flights[idx] = s.resolveOne(ctx, cs, snapshot)
		}(i, raw)
	}
	wg.Wait()

	return models.BatchResponse{
		Now:     time.Now().Unix(),
		Flights: flights,
	}
}

// fetchSnapshot fetches the batch's telemetry snapshot. Failure degrades to
// an empty snapshot: the batch still resolves on commercial data alone.
func (s *ResolveService) fetchSnapshot(ctx context.Context) *models.TelemetrySnapshot {
	snapshot, err := s.telemetry.FetchStates(ctx)
	if err != nil {
		log.Printf("OpenSky error: %v", err)
		return &models.TelemetrySnapshot{}
	}
	return snapshot
}

func (s *ResolveService) resolveOne(ctx context.Context, raw string, snapshot *models.TelemetrySnapshot) models.FusedFlight {
	normalized := callsign.Normalize(raw)
	flightCode := callsign.ToFlightCode(normalized, s.registry)

	rec := models.FusedFlight{
		Callsign:   normalized,
		FlightCode: flightCode,
		Status:     models.StatusUnknown,
		History:    []models.PositionSample{},
	}

	var telemetrySignal models.Status
	if sv := opensky.Match(snapshot, normalized); sv != nil {
		alt := sv.Altitude()
		rec.Telemetry = &models.TelemetryFix{
			Lat:     sv.Latitude,
			Lon:     sv.Longitude,
			Heading: sv.TrueTrack,
			Alt:     alt,
		}
		telemetrySignal = opensky.TelemetrySignal(sv)

		if sv.Latitude != nil && sv.Longitude != nil {
			s.history.Record(normalized, models.PositionSample{
				Lat:       *sv.Latitude,
				Lon:       *sv.Longitude,
				Heading:   sv.TrueTrack,
				Alt:       alt,
				Timestamp: time.Now().Unix(),
			})
		}
	}

	commercial, commercialErr := s.status.Lookup(ctx, flightCode)
	commercialStatus := models.StatusUnknown
	if commercial != nil {
		rec.Commercial = commercial
		commercialStatus = fusion.ParseStatus(commercial.FlightStatus)
		rec.CommercialStatus = commercialStatus
	}

	rec.Status, rec.Error = fusion.Fuse(telemetrySignal, commercialStatus, commercialErr)

	rec.History = s.history.Get(normalized)
	rec.HistoryDistanceM = s.history.GroundDistance(normalized)

	return rec
}
