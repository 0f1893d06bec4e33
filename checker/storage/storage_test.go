package storage

import (
	"context"
	"testing"

	"github.com/driftdb/preflight/checker"
	"github.com/driftdb/preflight/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStr2Provider(t *testing.T) {
	for _, value := range []string{"s3", "oss", "azblob", "gcs", "file"} {
		p, err := Str2Provider(value)
		require.NoError(t, err)
		assert.Equal(t, value, p.String())
	}

	_, err := Str2Provider("ceph")
	assert.Equal(t, ErrUnsupportedProvider, err)
}

func TestVerifyUnknownProviderFails(t *testing.T) {
	v := NewVerifier(config.StorageConfig{Provider: "ceph"}, false)
	details := v.Verify(context.Background())

	require.Len(t, details, 1)
	assert.Equal(t, checker.StatusFail, details[0].Status)
	assert.Equal(t, "Storage Provider", details[0].Item)
	assert.Contains(t, details[0].Message, "ceph")
	assert.Contains(t, details[0].Suggestion, "s3, oss, azblob, gcs, file")
}

func TestVerifyStubProvidersWarnButSucceed(t *testing.T) {
	tests := []struct {
		provider string
		item     string
	}{
		{"oss", "OSS Storage"},
		{"azblob", "Azure Blob Storage"},
		{"gcs", "Google Cloud Storage"},
	}

	for _, tc := range tests {
		t.Run(tc.provider, func(t *testing.T) {
			v := NewVerifier(config.StorageConfig{Provider: tc.provider}, false)
			details := v.Verify(context.Background())

			require.Len(t, details, 1)
			assert.Equal(t, checker.StatusWarning, details[0].Status)
			assert.Equal(t, tc.item, details[0].Item)
			assert.Contains(t, details[0].Message, "not fully implemented")

			result := checker.NewCheckResult(details)
			assert.True(t, result.Success)
		})
	}
}
