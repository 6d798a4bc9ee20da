package callsign

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jengzang/flighttrack-backend-go/internal/airline"
)

func testRegistry() *airline.Registry {
	return airline.NewRegistry(map[string]string{
		"AAL": "AA",
		"DAL": "DL",
		"UAL": "UA",
	})
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "DAL2966", Normalize("  dal2966 "))
	assert.Equal(t, "AAL8", Normalize("aal8"))
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("   "))
}

func TestToFlightCodeAlreadyCommercial(t *testing.T) {
	reg := testRegistry()

	// 2 letters + digits passes through untouched.
	assert.Equal(t, "AA1280", ToFlightCode("AA1280", reg))
	assert.Equal(t, "DL1", ToFlightCode("DL1", reg))

	// Idempotent: converting a converted code changes nothing.
	code := ToFlightCode("DAL2966", reg)
	assert.Equal(t, code, ToFlightCode(code, reg))
}

func TestToFlightCodeOperatorMapping(t *testing.T) {
	reg := testRegistry()

	assert.Equal(t, "AA8", ToFlightCode("AAL8", reg))
	assert.Equal(t, "DL2966", ToFlightCode("DAL2966", reg))
}

func TestToFlightCodeUnmappedOperatorFallback(t *testing.T) {
	reg := testRegistry()

	// FDX is not in the registry: first two letters are the best guess.
	assert.Equal(t, "FD1721", ToFlightCode("FDX1721", reg))
}

func TestToFlightCodeStripsPadding(t *testing.T) {
	reg := testRegistry()

	// Telemetry feeds right-pad callsigns with spaces.
	assert.Equal(t, "AA8", ToFlightCode("AAL8    ", reg))
	assert.Equal(t, "UA123", ToFlightCode("UAL 123", reg))
}

func TestToFlightCodePassthrough(t *testing.T) {
	reg := testRegistry()

	// No recognizable shape: cleaned string comes back unchanged.
	assert.Equal(t, "N123AB", ToFlightCode("N123AB", reg))
	assert.Equal(t, "GABCD", ToFlightCode("G-ABCD", reg))
	assert.Equal(t, "", ToFlightCode("", reg))
	assert.Equal(t, "", ToFlightCode("---", reg))
}

func TestToFlightCodeEmptyRegistry(t *testing.T) {
	reg := airline.NewRegistry(nil)

	// A degraded (empty) registry still converts best-effort.
	assert.Equal(t, "AA8", ToFlightCode("AAL8", reg))
	assert.Equal(t, "DA2966", ToFlightCode("DAL2966", reg))
}
