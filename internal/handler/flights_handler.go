package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/flighttrack-backend-go/internal/service"
	"github.com/jengzang/flighttrack-backend-go/pkg/response"
)

// FlightsHandler handles HTTP requests for flight resolution
type FlightsHandler struct {
	service *service.ResolveService
}

// NewFlightsHandler creates a new flights handler
func NewFlightsHandler(service *service.ResolveService) *FlightsHandler {
	return &FlightsHandler{service: service}
}

// GetFlights handles GET /api/v1/flights?callsigns=AAL8,DAL2966
func (h *FlightsHandler) GetFlights(c *gin.Context) {
	callsigns := splitCallsigns(c.Query("callsigns"))

	resp := h.service.Resolve(c.Request.Context(), callsigns)
	response.Success(c, resp)
}

// splitCallsigns splits the query parameter on commas or whitespace and
// drops empty entries. An empty parameter yields an empty batch.
func splitCallsigns(q string) []string {
	fields := strings.FieldsFunc(q, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
