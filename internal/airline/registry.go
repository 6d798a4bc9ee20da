package airline

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// notApplicable is the sentinel used by the airline dataset for missing codes.
const notApplicable = `\N`

// Registry maps a 3-letter ICAO operator code to its 2-letter IATA
// commercial code. Immutable after Load; safe for concurrent reads.
type Registry struct {
	icaoToIATA map[string]string
}

// Lookup returns the IATA code for an ICAO operator code.
func (r *Registry) Lookup(icao string) (string, bool) {
	iata, ok := r.icaoToIATA[icao]
	return iata, ok
}

// Len returns the number of loaded carriers.
func (r *Registry) Len() int {
	return len(r.icaoToIATA)
}

// LoadResult reports the outcome of loading the carrier registry. A load
// failure degrades to an empty registry rather than failing startup, so the
// registry is always usable; Degraded and Err tell the caller what happened.
type LoadResult struct {
	Registry *Registry
	Loaded   int
	Degraded bool
	Err      error
}

// Load reads the airline registry from a CSV file with header columns
// name, iata, icao. Rows missing either code are skipped; on duplicate
// ICAO codes the last row wins.
func Load(path string) LoadResult {
	f, err := os.Open(path)
	if err != nil {
		return degraded(fmt.Errorf("failed to open airline registry: %w", err))
	}
	defer f.Close()

	return load(f)
}

func load(r io.Reader) LoadResult {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return degraded(fmt.Errorf("failed to read registry header: %w", err))
	}

	iataCol, icaoCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "iata":
			iataCol = i
		case "icao":
			icaoCol = i
		}
	}
	if iataCol < 0 || icaoCol < 0 {
		return degraded(fmt.Errorf("registry header missing iata/icao columns: %v", header))
	}

	mapping := make(map[string]string)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return degraded(fmt.Errorf("failed to parse registry row: %w", err))
		}
		if len(row) <= iataCol || len(row) <= icaoCol {
			continue
		}

		iata := strings.ToUpper(strings.TrimSpace(row[iataCol]))
		icao := strings.ToUpper(strings.TrimSpace(row[icaoCol]))
		if iata == "" || icao == "" || iata == notApplicable || icao == notApplicable {
			continue
		}

		// Last row wins on duplicate ICAO codes (file order).
		mapping[icao] = iata
	}

	return LoadResult{
		Registry: &Registry{icaoToIATA: mapping},
		Loaded:   len(mapping),
	}
}

func degraded(err error) LoadResult {
	return LoadResult{
		Registry: &Registry{icaoToIATA: map[string]string{}},
		Degraded: true,
		Err:      err,
	}
}

// NewRegistry builds a registry from an in-memory mapping (tests and tools).
func NewRegistry(icaoToIATA map[string]string) *Registry {
	mapping := make(map[string]string, len(icaoToIATA))
	for icao, iata := range icaoToIATA {
		mapping[strings.ToUpper(icao)] = strings.ToUpper(iata)
	}
	return &Registry{icaoToIATA: mapping}
}
