package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatMarketCapINR(t *testing.T) {
	require.Equal(t, "₹2.78T", FormatMarketCapINR(2.78e12))
	require.Equal(t, "₹45.00B", FormatMarketCapINR(4.5e10))
	require.Equal(t, "₹350.50M", FormatMarketCapINR(3.505e8))
	require.Equal(t, "N/A", FormatMarketCapINR(0))
	require.Equal(t, "N/A", FormatMarketCapINR(999999))
}
