package narratives

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	FilesDownloaded   prometheus.Counter
	DownloadsSkipped  prometheus.Counter
	NarrativesDecoded prometheus.Counter
	DecodeFailures    prometheus.Counter
}

var metrics = &Metrics{
	FilesDownloaded: prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "loader",
		Subsystem: "annotations",
		Name:      "downloaded_total",
	}),
	DownloadsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "loader",
		Subsystem: "annotations",
		Name:      "skipped_total",
	}),
	NarrativesDecoded: prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "loader",
		Subsystem: "narratives",
		Name:      "decoded_total",
	}),
	DecodeFailures: prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "loader",
		Subsystem: "narratives",
		Name:      "decode_errors_total",
	}),
}

func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(metrics.FilesDownloaded)
	reg.MustRegister(metrics.DownloadsSkipped)
	reg.MustRegister(metrics.NarrativesDecoded)
	reg.MustRegister(metrics.DecodeFailures)
}
