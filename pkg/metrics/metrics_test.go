package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewManager(t *testing.T) {
	Convey("Given a private registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(
			WithNamespace("test"),
			WithSubsystem("unit"),
			WithHistogramBuckets([]float64{1, 10, 100}),
			WithPrometheusRegistry(registry),
		)

		Convey("Collectors register under the namespace", func() {
			m.composites.WithLabelValues("success").Inc()
			families, err := registry.Gather()
			So(err, ShouldBeNil)
			names := map[string]bool{}
			for _, f := range families {
				names[f.GetName()] = true
			}
			So(names["test_unit_composites_total"], ShouldBeTrue)
		})

		Convey("A second manager on the same registry panics", func() {
			So(func() { NewManager(WithNamespace("test"), WithSubsystem("unit"), WithPrometheusRegistry(registry)) }, ShouldPanic)
		})
	})
}

func TestRecorders(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Composite outcomes are counted per label", func() {
			before := testutil.ToFloat64(globalManager.composites.WithLabelValues("eligibility"))
			RecordComposite("eligibility")
			So(testutil.ToFloat64(globalManager.composites.WithLabelValues("eligibility")), ShouldEqual, before+1)
		})

		Convey("Queue size updates utilization", func() {
			UpdateQueueSize(25, 100)
			So(testutil.ToFloat64(globalManager.queueSize), ShouldEqual, 25.0)
			So(testutil.ToFloat64(globalManager.queueUtilization), ShouldEqual, 0.25)
		})

		Convey("Risk codes are labelled by value", func() {
			RecordRiskCode(-15)
			So(testutil.ToFloat64(globalManager.riskCodes.WithLabelValues("-15")), ShouldBeGreaterThanOrEqualTo, 1)
		})

		Convey("Recorders do not panic", func() {
			So(func() {
				RecordScoringLatency(12)
				RecordBatchSize(40)
				RecordSubmissionAccepted()
				RecordSubmissionDuplicate()
				UpdateCatalog(10, 3)
				UpdateQueueCapacity(100)
				RecordQueueEnqueue()
				RecordQueueDequeue()
				RecordQueueEnqueueError("full")
				UpdateWorkerCount(4)
				AddWorkerActive(1)
				AddWorkerActive(-1)
				RecordWorkerProcessingLatency(3)
				RecordWorkerError()
				RecordRepositoryWriteLatency(1)
				UpdateRepositoryResults(7)
				RecordHTTPRequest("/v1/score", "POST", "200")
				RecordHTTPRequestDuration("/v1/score", "POST", "200", 5)
				RecordErrorByComponent("api", "decode")
				RecordErrorByEndpoint("/v1/score", "POST", "decode")
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(10)
			}, ShouldNotPanic)
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
