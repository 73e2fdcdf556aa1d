package metrics

import (
	"strconv"
	"time"

	"github.com/andreyxaxa/portfolio-dashboard/internal/entity"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "dashboard"

type Prometheus struct {
	saves           *prometheus.CounterVec
	saveDuration    *prometheus.HistogramVec
	deletes         *prometheus.CounterVec
	uploads         *prometheus.CounterVec
	cleanupWarnings *prometheus.CounterVec
	orphans         *prometheus.CounterVec
}

// New registers the content workflow collectors on reg.
func New(reg prometheus.Registerer) *Prometheus {
	m := &Prometheus{
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "saves_total",
			Help:      "Save workflow runs by kind and outcome.",
		}, []string{"kind", "outcome"}),
		saveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "save_duration_seconds",
			Help:      "Duration of the save workflow.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		deletes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deletes_total",
			Help:      "Delete workflow runs by kind and outcome.",
		}, []string{"kind", "outcome"}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blob_uploads_total",
			Help:      "Blob uploads by kind and result.",
		}, []string{"kind", "ok"}),
		cleanupWarnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blob_cleanup_warnings_total",
			Help:      "Assets that could not be deleted after their record stopped referencing them.",
		}, []string{"kind"}),
		orphans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orphaned_uploads_total",
			Help:      "Uploaded assets left unreferenced by a failed save.",
		}, []string{"kind"}),
	}

	reg.MustRegister(m.saves, m.saveDuration, m.deletes, m.uploads, m.cleanupWarnings, m.orphans)

	return m
}

func (m *Prometheus) SaveFinished(kind entity.Kind, outcome string, took time.Duration) {
	m.saves.WithLabelValues(string(kind), outcome).Inc()
	m.saveDuration.WithLabelValues(string(kind)).Observe(took.Seconds())
}

func (m *Prometheus) DeleteFinished(kind entity.Kind, outcome string) {
	m.deletes.WithLabelValues(string(kind), outcome).Inc()
}

func (m *Prometheus) BlobUploaded(kind entity.Kind, ok bool) {
	m.uploads.WithLabelValues(string(kind), strconv.FormatBool(ok)).Inc()
}

func (m *Prometheus) CleanupWarning(kind entity.Kind) {
	m.cleanupWarnings.WithLabelValues(string(kind)).Inc()
}

func (m *Prometheus) OrphanedUploads(kind entity.Kind, n int) {
	if n > 0 {
		m.orphans.WithLabelValues(string(kind)).Add(float64(n))
	}
}
