package observability

import (
	"errors"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danmuck/ofwire/frame"
)

var (
	registerOnce sync.Once

	messagesRead = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ofwire",
			Subsystem: "frame",
			Name:      "messages_read_total",
			Help:      "Messages successfully framed off streams.",
		},
		[]string{"version", "type"},
	)
	messagesWritten = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ofwire",
			Subsystem: "frame",
			Name:      "messages_written_total",
			Help:      "Messages fully delivered to streams.",
		},
	)
	readErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ofwire",
			Subsystem: "frame",
			Name:      "read_errors_total",
			Help:      "Failed message reads by kind.",
		},
		[]string{"kind"},
	)
	messageBytes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "ofwire",
			Subsystem: "frame",
			Name:      "message_bytes",
			Help:      "Size of messages read, header included.",
			Buckets:   prometheus.ExponentialBuckets(8, 2, 12),
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(messagesRead, messagesWritten, readErrors, messageBytes)
	})
}

func RecordRead(version uint8, msgType string, size int) {
	RegisterMetrics()
	messagesRead.WithLabelValues(strconv.Itoa(int(version)), msgType).Inc()
	messageBytes.Observe(float64(size))
}

func RecordReadError(err error) {
	RegisterMetrics()
	readErrors.WithLabelValues(ReadErrorKind(err)).Inc()
}

func RecordWrite() {
	RegisterMetrics()
	messagesWritten.Inc()
}

// ReadErrorKind maps a framing error to its metric label.
func ReadErrorKind(err error) string {
	switch {
	case errors.Is(err, frame.ErrConnectionClosed):
		return "closed"
	case errors.Is(err, frame.ErrTruncated):
		return "truncated"
	case errors.Is(err, frame.ErrInvalidLength):
		return "invalid_length"
	case errors.Is(err, frame.ErrHeaderDecode):
		return "decode"
	}
	var ve frame.VersionError
	if errors.As(err, &ve) {
		return "version"
	}
	var me frame.XIDMismatchError
	if errors.As(err, &me) {
		return "xid"
	}
	return "other"
}
