package domain_test

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sealbid-network/sealbid-factory/internal/core/domain"
)

func TestNewViewingKey(t *testing.T) {
	t.Parallel()

	hash := sha256.Sum256([]byte("api_key_test"))

	k, err := domain.NewViewingKey(sellerAddress, hash[:])
	require.NoError(t, err)
	require.NotNil(t, k)
	require.Equal(t, sellerAddress, k.Address)
	require.Equal(t, hash[:], k.KeyHash)
}

func TestFailingNewViewingKey(t *testing.T) {
	t.Parallel()

	hash := sha256.Sum256([]byte("api_key_test"))

	tests := []struct {
		name          string
		address       string
		keyHash       []byte
		expectedError error
	}{
		{
			name:          "missing_address",
			address:       "",
			keyHash:       hash[:],
			expectedError: domain.ErrViewingKeyMissingAddress,
		},
		{
			name:          "short_hash",
			address:       sellerAddress,
			keyHash:       hash[:16],
			expectedError: domain.ErrViewingKeyInvalidHash,
		},
		{
			name:          "null_hash",
			address:       sellerAddress,
			keyHash:       nil,
			expectedError: domain.ErrViewingKeyInvalidHash,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			k, err := domain.NewViewingKey(tt.address, tt.keyHash)
			require.Nil(t, k)
			require.EqualError(t, err, tt.expectedError.Error())
		})
	}
}

func TestViewingKeyMatches(t *testing.T) {
	t.Parallel()

	good := sha256.Sum256([]byte("api_key_good"))
	bad := sha256.Sum256([]byte("api_key_bad"))

	k, err := domain.NewViewingKey(sellerAddress, good[:])
	require.NoError(t, err)

	require.True(t, k.Matches(good[:]))
	require.False(t, k.Matches(bad[:]))
	require.False(t, k.Matches(nil))
}
