package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sealbid-network/sealbid-factory/internal/core/domain"
)

func TestNewPageQuery(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		p := domain.NewPageQuery(nil, 0)
		require.Nil(t, p.Before)
		require.Equal(t, domain.DefaultPageSize, p.Size)
	})

	t.Run("explicit_size", func(t *testing.T) {
		p := domain.NewPageQuery(nil, 25)
		require.Equal(t, uint32(25), p.Size)
	})

	t.Run("size_capped", func(t *testing.T) {
		p := domain.NewPageQuery(nil, 10000)
		require.Equal(t, domain.MaxPageSize, p.Size)
	})

	t.Run("with_cursor", func(t *testing.T) {
		before := uint64(42)
		p := domain.NewPageQuery(&before, 10)
		require.NotNil(t, p.Before)
		require.Equal(t, before, *p.Before)
	})
}

func TestPageQueryIncludes(t *testing.T) {
	t.Parallel()

	p := domain.NewPageQuery(nil, 10)
	require.True(t, p.Includes(0))
	require.True(t, p.Includes(100))

	before := uint64(5)
	p = domain.NewPageQuery(&before, 10)
	require.True(t, p.Includes(4))
	require.False(t, p.Includes(5))
	require.False(t, p.Includes(6))
}
