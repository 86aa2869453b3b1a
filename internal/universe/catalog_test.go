package universe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	catalog, err := NewCatalog()
	require.NoError(t, err)

	t.Run("exact symbol outranks everything", func(t *testing.T) {
		matches := catalog.Search("RELIANCE.NS")
		require.NotEmpty(t, matches)
		require.Equal(t, "RELIANCE.NS", matches[0].Entry.Symbol)
		require.Equal(t, ScoreExactSymbol, matches[0].Score)
	})

	t.Run("symbol matches without the exchange suffix", func(t *testing.T) {
		matches := catalog.Search("tcs")
		require.NotEmpty(t, matches)
		require.Equal(t, "TCS.NS", matches[0].Entry.Symbol)
		require.Equal(t, ScoreExactSymbol, matches[0].Score)
	})

	t.Run("name match scores below exact symbol", func(t *testing.T) {
		matches := catalog.Search("infosys")
		require.NotEmpty(t, matches)
		require.Equal(t, "INFY.NS", matches[0].Entry.Symbol)
		require.Equal(t, ScoreName, matches[0].Score)
	})

	t.Run("keyword match", func(t *testing.T) {
		matches := catalog.Search("jio")
		require.NotEmpty(t, matches)
		require.Equal(t, "RELIANCE.NS", matches[0].Entry.Symbol)
		require.Equal(t, ScoreKeyword, matches[0].Score)
	})

	t.Run("sector match returns every listing in the sector", func(t *testing.T) {
		matches := catalog.Search("pharma")
		require.NotEmpty(t, matches)
		for _, match := range matches {
			require.Equal(t, "Pharma", match.Entry.Sector)
		}
	})

	t.Run("no hits for nonsense", func(t *testing.T) {
		require.Empty(t, catalog.Search("zzzz-not-a-company"))
		require.Empty(t, catalog.Search("   "))
	})

	t.Run("sector lookup falls back to symbol inference", func(t *testing.T) {
		require.Equal(t, "Banking", catalog.SectorOf("HDFCBANK.NS"))
		require.Equal(t, "Banking", catalog.SectorOf("SOMENEWBANK.NS"))
		require.Equal(t, "Energy", catalog.SectorOf("GASAUTHORITY.NS"))
		require.Equal(t, "", catalog.SectorOf("XYZ.NS"))
	})

	t.Run("sector peers exclude the subject", func(t *testing.T) {
		peers := catalog.SectorPeers("IT", "TCS.NS")
		require.NotEmpty(t, peers)
		for _, peer := range peers {
			require.NotEqual(t, "TCS.NS", peer.Symbol)
			require.Equal(t, "IT", peer.Sector)
		}
	})
}
