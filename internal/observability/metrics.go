package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	framesRead = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sdif",
			Subsystem: "codec",
			Name:      "frames_read_total",
			Help:      "Frames decoded from SDIF streams.",
		},
		[]string{"signature"},
	)
	framesWritten = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sdif",
			Subsystem: "codec",
			Name:      "frames_written_total",
			Help:      "Frames encoded to SDIF streams.",
		},
		[]string{"signature"},
	)
	decodeErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "sdif",
			Subsystem: "codec",
			Name:      "decode_errors_total",
			Help:      "Structural decode errors that poisoned a session.",
		},
	)
	bytesRead = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "sdif",
			Subsystem: "codec",
			Name:      "bytes_read_total",
			Help:      "Payload bytes consumed from SDIF streams.",
		},
	)
	bytesWritten = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "sdif",
			Subsystem: "codec",
			Name:      "bytes_written_total",
			Help:      "Payload bytes emitted to SDIF streams.",
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(framesRead, framesWritten, decodeErrors, bytesRead, bytesWritten)
	})
}

func RecordFrameRead(signature string, bytes int) {
	RegisterMetrics()
	framesRead.WithLabelValues(signature).Inc()
	bytesRead.Add(float64(bytes))
}

func RecordFrameWritten(signature string, bytes int) {
	RegisterMetrics()
	framesWritten.WithLabelValues(signature).Inc()
	bytesWritten.Add(float64(bytes))
}

func RecordDecodeError() {
	RegisterMetrics()
	decodeErrors.Inc()
}
