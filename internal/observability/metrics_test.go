package observability

import "testing"

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()

	RecordFrameRead("1TRC", 128)
	RecordFrameWritten("1TRC", 128)
	RecordDecodeError()
}
