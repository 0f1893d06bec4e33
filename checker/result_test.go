package checker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ms(n int) *time.Duration {
	d := time.Duration(n) * time.Millisecond
	return &d
}

func TestNewCheckResultAllPass(t *testing.T) {
	details := []CheckDetail{
		PassDetail("Test 1", "Passed", nil),
		PassDetail("Test 2", "Passed", nil),
	}

	result := NewCheckResult(details)
	assert.True(t, result.Success)
	assert.Equal(t, "All checks passed (2 passed)", result.Message)
	assert.Len(t, result.Details, 2)
}

func TestNewCheckResultFailure(t *testing.T) {
	details := []CheckDetail{
		PassDetail("Test 1", "Passed", nil),
		FailDetail("Test 2", "Failed", nil, ""),
		WarnDetail("Test 3", "Odd", nil, ""),
	}

	result := NewCheckResult(details)
	assert.False(t, result.Success)
	assert.Equal(t, "Some checks failed (1 passed, 1 warnings, 1 failed)", result.Message)
}

func TestNewCheckResultWarningsStillSucceed(t *testing.T) {
	details := []CheckDetail{
		PassDetail("Test 1", "Passed", nil),
		WarnDetail("Test 2", "Warning", nil, ""),
	}

	result := NewCheckResult(details)
	assert.True(t, result.Success)
	assert.Equal(t, "Checks completed with warnings (1 passed, 1 warnings)", result.Message)
}

func TestNewCheckResultSuccessMatchesNoFailInvariant(t *testing.T) {
	cases := [][]CheckDetail{
		nil,
		{PassDetail("a", "", nil)},
		{WarnDetail("a", "", nil, "")},
		{FailDetail("a", "", nil, "")},
		{PassDetail("a", "", nil), FailDetail("b", "", nil, ""), WarnDetail("c", "", nil, "")},
	}
	for _, details := range cases {
		result := NewCheckResult(details)
		noFail := true
		for _, d := range details {
			if d.Status == StatusFail {
				noFail = false
			}
		}
		assert.Equal(t, noFail, result.Success)
	}
}

func TestTotalDurationSumsOnlyPresentDurations(t *testing.T) {
	details := []CheckDetail{
		PassDetail("a", "", ms(100)),
		PassDetail("b", "", nil),
		FailDetail("c", "", ms(50), ""),
	}

	result := NewCheckResult(details)
	require.NotNil(t, result.TotalDuration)
	assert.Equal(t, 150*time.Millisecond, *result.TotalDuration)
}

func TestTotalDurationNilWhenNoDurations(t *testing.T) {
	details := []CheckDetail{
		PassDetail("a", "", nil),
		PassDetail("b", "", nil),
	}

	result := NewCheckResult(details)
	assert.Nil(t, result.TotalDuration)
}

func TestExplicitVerdictConstructors(t *testing.T) {
	details := []CheckDetail{FailDetail("a", "broken", nil, "")}
	ok := SuccessResult("fine anyway", details)
	assert.True(t, ok.Success)
	assert.Equal(t, "fine anyway", ok.Message)

	bad := FailureResult("nope", []CheckDetail{PassDetail("a", "", ms(10))})
	assert.False(t, bad.Success)
	require.NotNil(t, bad.TotalDuration)
	assert.Equal(t, 10*time.Millisecond, *bad.TotalDuration)
}

func TestDetailConstructors(t *testing.T) {
	d := PassDetail("Test", "Message", nil)
	assert.Equal(t, StatusPass, d.Status)
	assert.Empty(t, d.Suggestion)

	d = FailDetail("Test", "Message", nil, "Fix it")
	assert.Equal(t, StatusFail, d.Status)
	assert.Equal(t, "Fix it", d.Suggestion)

	d = WarnDetail("Test", "Message", ms(5), "Maybe fix it")
	assert.Equal(t, StatusWarning, d.Status)
	assert.Equal(t, 5*time.Millisecond, *d.Duration)
}
