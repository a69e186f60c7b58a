package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sealbid-network/sealbid-factory/internal/core/domain"
)

func TestNewSymbol(t *testing.T) {
	t.Parallel()

	s, err := domain.NewSymbol(1, "SCRT", 6)
	require.NoError(t, err)
	require.NotNil(t, s)
	require.Equal(t, uint16(1), s.Index)
	require.Equal(t, "SCRT", s.Name)
	require.Equal(t, uint8(6), s.Decimals)

	s, err = domain.NewSymbol(2, "", 6)
	require.Nil(t, s)
	require.EqualError(t, err, domain.ErrSymbolMissingName.Error())
}
