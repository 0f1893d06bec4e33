package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/driftdb/preflight/checker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *checker.CheckResult {
	d := 120 * time.Millisecond
	return checker.NewCheckResult([]checker.CheckDetail{
		checker.PassDetail("Etcd Connection", "Connected", &d),
		checker.WarnDetail("Etcd DELETE Operation", "Probe key not deleted", nil, "Check etcd permissions"),
		checker.FailDetail("Etcd GET Operation", "Read-back mismatch", nil, "Check cluster health"),
	})
}

func TestToJSON(t *testing.T) {
	data, err := ToJSON(sampleResult(), "Metaservice", "/etc/driftdb/metaservice.yaml")
	require.NoError(t, err)

	var rep map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &rep))

	assert.Equal(t, "Metaservice", rep["component"])
	assert.Equal(t, "/etc/driftdb/metaservice.yaml", rep["config_file"])
	assert.Equal(t, "FAIL", rep["overall_result"])
	assert.EqualValues(t, 3, rep["total_checks"])
	assert.EqualValues(t, 1, rep["passed_checks"])
	assert.EqualValues(t, 1, rep["warning_checks"])
	assert.EqualValues(t, 1, rep["failed_checks"])
	assert.EqualValues(t, 120, rep["total_duration_ms"])

	_, err = time.Parse(time.RFC3339, rep["timestamp"].(string))
	assert.NoError(t, err)

	details := rep["details"].([]interface{})
	require.Len(t, details, 3)
	first := details[0].(map[string]interface{})
	assert.Equal(t, "Etcd Connection", first["item"])
	assert.Equal(t, "PASS", first["status"])
	assert.EqualValues(t, 120, first["duration_ms"])
}

func TestToJSONOmitsAbsentDuration(t *testing.T) {
	result := checker.NewCheckResult([]checker.CheckDetail{
		checker.PassDetail("Memory Store", "Always available", nil),
	})

	data, err := ToJSON(result, "Metaservice", "")
	require.NoError(t, err)

	var rep map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &rep))
	_, present := rep["total_duration_ms"]
	assert.False(t, present)
	_, present = rep["config_file"]
	assert.False(t, present)
}

func TestWriteHumanReadable(t *testing.T) {
	var buf bytes.Buffer
	WriteHumanReadable(&buf, sampleResult(), "Metaservice", "conf.yaml")

	out := buf.String()
	assert.Contains(t, out, "DriftDB Preflight Report")
	assert.Contains(t, out, "Component")
	assert.Contains(t, out, "Metaservice")
	assert.Contains(t, out, "conf.yaml")
	assert.Contains(t, out, "Etcd Connection")
	assert.Contains(t, out, "Suggestion: Check etcd permissions")
	assert.Contains(t, out, "Overall Result")
	assert.Contains(t, out, "FAIL")
}

func TestWriteHumanReadablePassVerdict(t *testing.T) {
	var buf bytes.Buffer
	result := checker.NewCheckResult([]checker.CheckDetail{
		checker.PassDetail("Memory Store", "Always available", nil),
	})
	WriteHumanReadable(&buf, result, "Metaservice", "")

	out := buf.String()
	assert.Contains(t, out, "PASS")
	assert.NotContains(t, out, "Configuration:")
}
