package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveOperation(t *testing.T) {
	Init()
	Init()

	before := testutil.ToFloat64(operations.WithLabelValues("split", ResultSuccess))
	ObserveOperation("split", ResultSuccess, 20*time.Millisecond)
	after := testutil.ToFloat64(operations.WithLabelValues("split", ResultSuccess))
	assert.Equal(t, before+1, after)
}

func TestAddOutput(t *testing.T) {
	Init()

	pagesBefore := testutil.ToFloat64(pagesWritten.WithLabelValues("merge"))
	bytesBefore := testutil.ToFloat64(artifactBytes.WithLabelValues("merge"))
	AddOutput("merge", 7, 1024)
	assert.Equal(t, pagesBefore+7, testutil.ToFloat64(pagesWritten.WithLabelValues("merge")))
	assert.Equal(t, bytesBefore+1024, testutil.ToFloat64(artifactBytes.WithLabelValues("merge")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	Init()
	ObserveOperation("compress", "codec", time.Millisecond)

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "pdf_toolkit_operations_total")
	assert.Contains(t, string(body), `result="codec"`)
}
