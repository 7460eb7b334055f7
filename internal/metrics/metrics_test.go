package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wupperinst/itom/internal/equation"
	"github.com/wupperinst/itom/internal/linear"
)

func TestCollector_FamilyDone(t *testing.T) {
	c := New()
	c.FamilyDone(equation.Stats{
		Family:  "TCC1_TotalAnnualMaxCapacityConstraint",
		Emitted: 2,
		Skipped: map[linear.SkipReason]int{linear.SkipSaturated: 7, linear.SkipHub: 1},
		Elapsed: 1500 * time.Millisecond,
	})
	c.FamilyDone(equation.Stats{Family: "CA0_NewCapacity", Emitted: 4, Skipped: map[linear.SkipReason]int{}})

	assert.Equal(t, 2.0, testutil.ToFloat64(c.emitted.WithLabelValues("TCC1_TotalAnnualMaxCapacityConstraint")))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.emitted.WithLabelValues("CA0_NewCapacity")))
	assert.Equal(t, 7.0, testutil.ToFloat64(c.skipped.WithLabelValues("TCC1_TotalAnnualMaxCapacityConstraint", "saturated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.skipped.WithLabelValues("TCC1_TotalAnnualMaxCapacityConstraint", "hub")))
	assert.Equal(t, 1.5, testutil.ToFloat64(c.seconds.WithLabelValues("TCC1_TotalAnnualMaxCapacityConstraint")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.emitted))
}

func TestCollector_SystemBuilt(t *testing.T) {
	c := New()
	c.SystemBuilt(120, 300)

	expected := `
# HELP itom_columns Columns of the emitted linear system.
# TYPE itom_columns gauge
itom_columns 300
# HELP itom_rows Rows of the emitted linear system.
# TYPE itom_rows gauge
itom_rows 120
`
	require.NoError(t, testutil.GatherAndCompare(c.Registry(), strings.NewReader(expected), "itom_columns", "itom_rows"))
}

func TestCollector_Handler(t *testing.T) {
	c := New()
	c.FamilyDone(equation.Stats{Family: "E1_LocalEmissionProductionByMode", Emitted: 3})

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `itom_rows_emitted_total{family="E1_LocalEmissionProductionByMode"} 3`)
}
