package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/sync-engine/internal/synastry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_ObserveProfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := New(reg)
	require.NoError(t, err)

	p := synastry.GenerateConnectionProfile(nil)
	r.ObserveProfile(p)
	r.ObserveProfile(p)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.profiles.WithLabelValues("balanced", "yin-yang")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.scores))

	expected := `
# HELP sync_engine_profiles_generated_total Connection profiles generated, by dominant theme and archetype.
# TYPE sync_engine_profiles_generated_total counter
sync_engine_profiles_generated_total{archetype="yin-yang",theme="balanced"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "sync_engine_profiles_generated_total"))
}

func TestRecorder_ObserveStore(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := New(reg)
	require.NoError(t, err)

	r.ObserveStore(OpSaveScore, 15*time.Millisecond, nil)
	r.ObserveStore(OpSaveScore, 20*time.Millisecond, errors.New("boom"))
	r.ObserveStore(OpGetScore, time.Millisecond, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.storeErrors.WithLabelValues(OpSaveScore)))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.storeErrors.WithLabelValues(OpGetScore)))
	assert.Equal(t, 2, testutil.CollectAndCount(r.storeDuration))
}

func TestNew_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	first, err := New(reg)
	require.NoError(t, err)
	second, err := New(reg)
	require.NoError(t, err)

	first.ObserveStore(OpLoadChart, time.Millisecond, errors.New("down"))
	assert.Equal(t, 1.0, testutil.ToFloat64(second.storeErrors.WithLabelValues(OpLoadChart)))
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveProfile(synastry.ConnectionProfile{})
		r.ObserveStore(OpGetScore, time.Second, errors.New("x"))
	})
}
