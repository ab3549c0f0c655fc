package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("POST", "/sessions/use", "200", 0.02)

	count := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/sessions/use", "200"))
	assert.Equal(t, float64(1), count)
}

func TestRecordHTTPRequestMultiple(t *testing.T) {
	HTTPRequestsTotal.Reset()

	RecordHTTPRequest("POST", "/auth/login", "200", 0.1)
	RecordHTTPRequest("POST", "/auth/login", "200", 0.2)
	RecordHTTPRequest("POST", "/auth/login", "401", 0.05)

	successCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/auth/login", "200"))
	failCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/auth/login", "401"))

	assert.Equal(t, float64(2), successCount)
	assert.Equal(t, float64(1), failCount)
}

func TestRecordSessionUse(t *testing.T) {
	before := testutil.ToFloat64(SessionsUsedTotal)
	expiredBefore := testutil.ToFloat64(SubscriptionsExpiredTotal)

	RecordSessionUse(false)
	RecordSessionUse(true)

	assert.Equal(t, before+2, testutil.ToFloat64(SessionsUsedTotal))
	assert.Equal(t, expiredBefore+1, testutil.ToFloat64(SubscriptionsExpiredTotal))
}

func TestRecordRenewal(t *testing.T) {
	RenewalsTotal.Reset()

	RecordRenewal("Mensual")
	RecordRenewal("Mensual")
	RecordRenewal("Trimestral")

	assert.Equal(t, float64(2), testutil.ToFloat64(RenewalsTotal.WithLabelValues("Mensual")))
	assert.Equal(t, float64(1), testutil.ToFloat64(RenewalsTotal.WithLabelValues("Trimestral")))
}

func TestRecordCancellation(t *testing.T) {
	before := testutil.ToFloat64(CancellationsTotal)

	RecordCancellation()

	assert.Equal(t, before+1, testutil.ToFloat64(CancellationsTotal))
}

func TestRecordEmail(t *testing.T) {
	EmailsSentTotal.Reset()

	RecordEmail("renewal_receipt", "sent")
	RecordEmail("renewal_receipt", "failed")

	assert.Equal(t, float64(1), testutil.ToFloat64(EmailsSentTotal.WithLabelValues("renewal_receipt", "sent")))
	assert.Equal(t, float64(1), testutil.ToFloat64(EmailsSentTotal.WithLabelValues("renewal_receipt", "failed")))
}
