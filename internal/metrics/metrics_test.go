package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncEncodeAndDecodeCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg)
	require.NoError(t, err)

	c.IncEncode(true)
	c.IncEncode(true)
	c.IncEncode(false)
	c.IncDecode(false)

	assert.Equal(t, float64(2), testutil.ToFloat64(c.encodeTotal.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.encodeTotal.WithLabelValues("error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.decodeTotal.WithLabelValues("error")))
}

func TestAddPackedCellsIgnoresNonPositive(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg)
	require.NoError(t, err)

	c.AddPackedCells(0)
	c.AddPackedCells(-5)
	c.AddPackedCells(3)

	assert.Equal(t, float64(3), testutil.ToFloat64(c.packedCellsTotal))
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.IncEncode(true)
		c.IncDecode(false)
		c.AddPackedCells(5)
	})
}

func TestRegisterTwiceOnSameRegistryFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)
	_, err = New(reg)
	assert.Error(t, err)
}
