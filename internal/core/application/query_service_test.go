package application_test

import (
	"testing"

	"github.com/sealbid-network/sealbid-factory/internal/core/application"
	"github.com/stretchr/testify/require"
)

func TestListActiveAuctions(t *testing.T) {
	t.Parallel()

	svc := newTestServices(t)
	seller := randomAddress()

	auctions, err := svc.query.ListActiveAuctions(ctx)
	require.NoError(t, err)
	require.Len(t, auctions, 0)

	// registered out of order on purpose, the listing sorts by pair and
	// breaks ties by index
	svc.registerAuction(t, 30, seller, usdcSymbol, scrtSymbol)
	svc.registerAuction(t, 20, seller, scrtSymbol, atomSymbol)
	svc.registerAuction(t, 10, seller, scrtSymbol, usdcSymbol)
	svc.registerAuction(t, 5, seller, scrtSymbol, usdcSymbol)

	auctions, err = svc.query.ListActiveAuctions(ctx)
	require.NoError(t, err)
	require.Len(t, auctions, 4)

	indexes := make([]uint32, 0, len(auctions))
	pairs := make([]string, 0, len(auctions))
	for _, a := range auctions {
		indexes = append(indexes, a.Index)
		pairs = append(pairs, a.Pair)
	}
	require.Equal(t, []uint32{5, 10, 20, 30}, indexes)
	require.Equal(
		t, []string{"SCRT-USDC", "SCRT-USDC", "SCRT-ATOM", "USDC-SCRT"}, pairs,
	)
}

func TestListClosedAuctions(t *testing.T) {
	t.Parallel()

	svc := newTestServices(t)
	seller := randomAddress()
	winner := randomAddress()

	for index := uint32(0); index < 5; index++ {
		address := svc.registerAuction(t, index, seller, scrtSymbol, usdcSymbol)
		svc.closeAuction(t, index, address, seller, &winner)
	}

	positionsOf := func(auctions []application.ClosedAuctionInfo) []uint64 {
		positions := make([]uint64, 0, len(auctions))
		for _, a := range auctions {
			require.NotNil(t, a.Index)
			positions = append(positions, *a.Index)
		}
		return positions
	}

	t.Run("pages walk the ledger backwards", func(t *testing.T) {
		auctions, nextBefore, err := svc.query.ListClosedAuctions(ctx, nil, 2)
		require.NoError(t, err)
		require.Equal(t, []uint64{4, 3}, positionsOf(auctions))
		require.NotNil(t, nextBefore)
		require.Equal(t, uint64(3), *nextBefore)

		auctions, nextBefore, err = svc.query.ListClosedAuctions(ctx, nextBefore, 2)
		require.NoError(t, err)
		require.Equal(t, []uint64{2, 1}, positionsOf(auctions))
		require.NotNil(t, nextBefore)
		require.Equal(t, uint64(1), *nextBefore)

		auctions, nextBefore, err = svc.query.ListClosedAuctions(ctx, nextBefore, 2)
		require.NoError(t, err)
		require.Equal(t, []uint64{0}, positionsOf(auctions))
		require.Nil(t, nextBefore)
	})

	t.Run("default page size covers the whole ledger", func(t *testing.T) {
		auctions, nextBefore, err := svc.query.ListClosedAuctions(ctx, nil, 0)
		require.NoError(t, err)
		require.Equal(t, []uint64{4, 3, 2, 1, 0}, positionsOf(auctions))
		require.Nil(t, nextBefore)
	})

	t.Run("cursor before the oldest record", func(t *testing.T) {
		before := uint64(0)
		auctions, nextBefore, err := svc.query.ListClosedAuctions(ctx, &before, 2)
		require.NoError(t, err)
		require.Len(t, auctions, 0)
		require.Nil(t, nextBefore)
	})

	t.Run("page size is capped", func(t *testing.T) {
		capped := application.NewQueryService(svc.repoManager, 2, 3)

		auctions, nextBefore, err := capped.ListClosedAuctions(ctx, nil, 10)
		require.NoError(t, err)
		require.Equal(t, []uint64{4, 3, 2}, positionsOf(auctions))
		require.Equal(t, uint64(2), *nextBefore)

		auctions, nextBefore, err = capped.ListClosedAuctions(ctx, nil, 0)
		require.NoError(t, err)
		require.Equal(t, []uint64{4, 3}, positionsOf(auctions))
		require.Equal(t, uint64(3), *nextBefore)
	})
}

func TestListMyAuctions(t *testing.T) {
	t.Parallel()

	svc := newTestServices(t)
	seller := randomAddress()
	bidder := randomAddress()
	bystander := randomAddress()

	svc.registerAuction(t, 0, seller, scrtSymbol, usdcSymbol)

	biddenAddress := svc.registerAuction(t, 1, seller, scrtSymbol, usdcSymbol)
	require.NoError(t, svc.registry.RegisterBidder(ctx, biddenAddress, 1, bidder))

	soldAddress := svc.registerAuction(t, 2, seller, scrtSymbol, usdcSymbol)
	svc.closeAuction(t, 2, soldAddress, seller, &bidder)

	unsoldAddress := svc.registerAuction(t, 3, seller, scrtSymbol, usdcSymbol)
	svc.closeAuction(t, 3, unsoldAddress, seller, nil)

	sellerKey, err := svc.factory.CreateViewingKey(ctx, seller, randomHex(8))
	require.NoError(t, err)
	bidderKey, err := svc.factory.CreateViewingKey(ctx, bidder, randomHex(8))
	require.NoError(t, err)
	bystanderKey, err := svc.factory.CreateViewingKey(ctx, bystander, randomHex(8))
	require.NoError(t, err)

	t.Run("authentication", func(t *testing.T) {
		_, err := svc.query.ListMyAuctions(ctx, "", sellerKey, application.FilterAll)
		require.EqualError(t, err, application.ErrMissingAddress.Error())

		_, err = svc.query.ListMyAuctions(ctx, seller, bidderKey, application.FilterAll)
		require.EqualError(t, err, application.ErrAuthenticationFailed.Error())

		// an address that never set a key fails with the same message
		_, err = svc.query.ListMyAuctions(ctx, randomAddress(), sellerKey, application.FilterAll)
		require.EqualError(t, err, application.ErrAuthenticationFailed.Error())
	})

	t.Run("seller view", func(t *testing.T) {
		my, err := svc.query.ListMyAuctions(ctx, seller, sellerKey, application.FilterAll)
		require.NoError(t, err)
		require.NotNil(t, my.Active)
		require.NotNil(t, my.Closed)

		require.Len(t, my.Active.AsSeller, 2)
		require.Equal(t, uint32(0), my.Active.AsSeller[0].Index)
		require.Equal(t, uint32(1), my.Active.AsSeller[1].Index)
		require.Len(t, my.Active.AsBidder, 0)

		// most recent first, no ledger position in the per address view
		require.Len(t, my.Closed.AsSeller, 2)
		require.Nil(t, my.Closed.AsSeller[0].Index)
		require.Equal(t, unsoldAddress, my.Closed.AsSeller[0].Address)
		require.Nil(t, my.Closed.AsSeller[0].WinningBid)
		require.Equal(t, soldAddress, my.Closed.AsSeller[1].Address)
		require.NotNil(t, my.Closed.AsSeller[1].WinningBid)
		require.Len(t, my.Closed.Won, 0)
	})

	t.Run("bidder view", func(t *testing.T) {
		my, err := svc.query.ListMyAuctions(ctx, bidder, bidderKey, application.FilterAll)
		require.NoError(t, err)
		require.NotNil(t, my.Active)
		require.NotNil(t, my.Closed)

		require.Len(t, my.Active.AsSeller, 0)
		require.Len(t, my.Active.AsBidder, 1)
		require.Equal(t, uint32(1), my.Active.AsBidder[0].Index)

		require.Len(t, my.Closed.AsSeller, 0)
		require.Len(t, my.Closed.Won, 1)
		require.Equal(t, soldAddress, my.Closed.Won[0].Address)
	})

	t.Run("filters drop categories", func(t *testing.T) {
		my, err := svc.query.ListMyAuctions(ctx, seller, sellerKey, application.FilterActive)
		require.NoError(t, err)
		require.NotNil(t, my.Active)
		require.Nil(t, my.Closed)

		my, err = svc.query.ListMyAuctions(ctx, seller, sellerKey, application.FilterClosed)
		require.NoError(t, err)
		require.Nil(t, my.Active)
		require.NotNil(t, my.Closed)
	})

	t.Run("empty categories are omitted", func(t *testing.T) {
		my, err := svc.query.ListMyAuctions(ctx, bystander, bystanderKey, application.FilterAll)
		require.NoError(t, err)
		require.Nil(t, my.Active)
		require.Nil(t, my.Closed)
	})
}

func TestParseFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filter   string
		expected application.Filter
	}{
		{"", application.FilterAll},
		{"all", application.FilterAll},
		{"active", application.FilterActive},
		{"closed", application.FilterClosed},
	}
	for _, tt := range tests {
		filter, err := application.ParseFilter(tt.filter)
		require.NoError(t, err)
		require.Equal(t, tt.expected, filter)
	}

	_, err := application.ParseFilter("everything")
	require.EqualError(t, err, application.ErrInvalidFilter.Error())
}
