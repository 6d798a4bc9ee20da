package airline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBasic(t *testing.T) {
	csv := "name,iata,icao\n" +
		"American Airlines,AA,AAL\n" +
		"Delta Air Lines,DL,DAL\n" +
		"FedEx,FX,FDX\n"

	res := load(strings.NewReader(csv))
	require.False(t, res.Degraded)
	require.NoError(t, res.Err)
	assert.Equal(t, 3, res.Loaded)

	iata, ok := res.Registry.Lookup("DAL")
	require.True(t, ok)
	assert.Equal(t, "DL", iata)

	_, ok = res.Registry.Lookup("FDE")
	assert.False(t, ok)
}

func TestLoadSkipsIncompleteRows(t *testing.T) {
	csv := "name,iata,icao\n" +
		`No IATA,\N,XYZ` + "\n" +
		"No ICAO,ZZ,\n" +
		"Kept,KE,KAL\n"

	res := load(strings.NewReader(csv))
	require.False(t, res.Degraded)
	assert.Equal(t, 1, res.Loaded)

	_, ok := res.Registry.Lookup("XYZ")
	assert.False(t, ok)
}

func TestLoadLastRowWinsOnDuplicate(t *testing.T) {
	csv := "name,iata,icao\n" +
		"First,A1,DUP\n" +
		"Second,A2,DUP\n"

	res := load(strings.NewReader(csv))
	iata, ok := res.Registry.Lookup("DUP")
	require.True(t, ok)
	assert.Equal(t, "A2", iata)
}

func TestLoadMissingFileDegrades(t *testing.T) {
	res := Load(filepath.Join(t.TempDir(), "does-not-exist.csv"))
	require.NotNil(t, res.Registry)
	assert.True(t, res.Degraded)
	assert.Error(t, res.Err)
	assert.Equal(t, 0, res.Registry.Len())
}

func TestLoadBadHeaderDegrades(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airlines.csv")
	require.NoError(t, os.WriteFile(path, []byte("foo,bar\nx,y\n"), 0o644))

	res := Load(path)
	assert.True(t, res.Degraded)
	assert.Error(t, res.Err)
	assert.Equal(t, 0, res.Registry.Len())
}

func TestLoadNormalizesCase(t *testing.T) {
	csv := "name,iata,icao\n" +
		"lowercase row,ua, ual \n"

	res := load(strings.NewReader(csv))
	iata, ok := res.Registry.Lookup("UAL")
	require.True(t, ok)
	assert.Equal(t, "UA", iata)
}
