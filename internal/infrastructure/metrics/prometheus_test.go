package metrics

import (
	"testing"
	"time"

	"github.com/andreyxaxa/portfolio-dashboard/internal/entity"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.SaveFinished(entity.KindProject, "ok", time.Second)
	m.SaveFinished(entity.KindProject, "ok", time.Second)
	m.CleanupWarning(entity.KindJourney)
	m.OrphanedUploads(entity.KindJourney, 2)
	m.OrphanedUploads(entity.KindJourney, 0)

	assert.InDelta(t, 2, testutil.ToFloat64(m.saves.WithLabelValues("project", "ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.cleanupWarnings.WithLabelValues("journey")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.orphans.WithLabelValues("journey")), 0)
}
