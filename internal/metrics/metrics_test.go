package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordMatchReportedIncrementsCounter(t *testing.T) {
	before := testutil.ToFloat64(MatchesReportedTotal.WithLabelValues("single_elimination", "player"))

	RecordMatchReported("single_elimination", "player")

	after := testutil.ToFloat64(MatchesReportedTotal.WithLabelValues("single_elimination", "player"))
	assert.Equal(t, before+1, after)
}

func TestRecordDisqualificationCascadeIncrementsCounterAndObservesSize(t *testing.T) {
	before := testutil.ToFloat64(DisqualificationCascadesTotal.WithLabelValues("double_elimination", "disqualified"))

	RecordDisqualificationCascade("double_elimination", "disqualified", 3)

	after := testutil.ToFloat64(DisqualificationCascadesTotal.WithLabelValues("double_elimination", "disqualified"))
	assert.Equal(t, before+1, after)
}

func TestRecordBracketCompletionIncrementsCounter(t *testing.T) {
	before := testutil.ToFloat64(BracketCompletionsTotal.WithLabelValues("single_elimination"))

	RecordBracketCompletion("single_elimination")

	after := testutil.ToFloat64(BracketCompletionsTotal.WithLabelValues("single_elimination"))
	assert.Equal(t, before+1, after)
}
