package application_test

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	"github.com/sealbid-network/sealbid-factory/internal/core/application"
	"github.com/sealbid-network/sealbid-factory/internal/core/ports"
	"github.com/sealbid-network/sealbid-factory/internal/infrastructure/storage/db/inmemory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testVersion = "0.2.1"

var (
	ctx = context.Background()

	adminAddress = "secret1" + hex.EncodeToString([]byte("factoryadmin...."))
	mockedError  = errors.New("something went wrong")

	testContract = application.AuctionContractInfo{
		CodeID:   1,
		CodeHash: "af74b5087bd0f30a5001e0a1141aae8fda02ddb8ad8b70c9f2fa2eefade611a4",
	}

	scrtToken = application.TokenInfo{
		CodeHash: "cd372fb85148700fa88095e3492d3f9f5beb43e555e5ff26d95f5a6adc36f8e6",
		Address:  "secret1" + hex.EncodeToString([]byte("scrtsnip")),
		Symbol:   "SCRT",
		Decimals: 6,
	}
	usdcToken = application.TokenInfo{
		CodeHash: "b58996c504c5638798eb6b511e6f49af7287d1281ae5fcadb1b935357efd9a88",
		Address:  "secret1" + hex.EncodeToString([]byte("usdcsnip")),
		Symbol:   "USDC",
		Decimals: 18,
	}
	atomToken = application.TokenInfo{
		CodeHash: "ef53b4545fad087b97a87cdc0b2a853ce51ee876bc90632c5ec37975f166f81b",
		Address:  "secret1" + hex.EncodeToString([]byte("atomsnip")),
		Symbol:   "ATOM",
		Decimals: 6,
	}
)

// symbol indices assigned by preInternSymbols.
const (
	scrtSymbol uint16 = iota
	usdcSymbol
	atomSymbol
)

type testServices struct {
	repoManager ports.RepoManager
	launcher    *mockAuctionLauncher
	pubsub      *mockPubSubService
	factory     application.FactoryService
	registry    application.RegistryService
	query       application.QueryService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()

	repoManager := inmemory.NewRepoManager()
	launcher := &mockAuctionLauncher{}
	pubsub := &mockPubSubService{}
	pubsub.On("Publish", mock.Anything, mock.Anything).Return(nil)

	factorySvc, err := application.NewFactoryService(
		repoManager, launcher, pubsub, adminAddress, testContract, testVersion,
	)
	require.NoError(t, err)

	preInternSymbols(t, repoManager)

	return &testServices{
		repoManager: repoManager,
		launcher:    launcher,
		pubsub:      pubsub,
		factory:     factorySvc,
		registry:    application.NewRegistryService(repoManager, pubsub),
		query:       application.NewQueryService(repoManager, 0, 0),
	}
}

func preInternSymbols(t *testing.T, repoManager ports.RepoManager) {
	t.Helper()

	for _, token := range []application.TokenInfo{scrtToken, usdcToken, atomToken} {
		_, err := repoManager.SymbolRepository().InternSymbol(
			ctx, token.Symbol, token.Decimals,
		)
		require.NoError(t, err)
	}
}

// registerAuction runs an auction registration the way a freshly launched
// instance would and returns the address it registered under.
func (s *testServices) registerAuction(
	t *testing.T, index uint32, seller string, sellSymbol, bidSymbol uint16,
) string {
	t.Helper()

	address := randomAddress()
	err := s.registry.RegisterAuction(ctx, address, application.RegisterAuction{
		Seller: seller,
		Auction: application.RegisterAuctionInfo{
			Index:      index,
			Label:      randomHex(8),
			SellSymbol: sellSymbol,
			BidSymbol:  bidSymbol,
			SellAmount: randomAmount(),
			MinimumBid: randomAmount(),
			EndsAt:     uint64(randomTimestamp()),
		},
	})
	require.NoError(t, err)
	return address
}

func (s *testServices) closeAuction(
	t *testing.T, index uint32, address, seller string, winner *string,
) {
	t.Helper()

	req := application.CloseAuction{
		Index:  index,
		Seller: seller,
	}
	if winner != nil {
		bid := randomAmount()
		req.Bidder = winner
		req.WinningBid = &bid
	}
	require.NoError(t, s.registry.CloseAuction(ctx, address, req))
}

// publishedEvents counts how many events reached the pub/sub service for
// the given topic.
func (s *testServices) publishedEvents(topic string) int {
	count := 0
	for _, call := range s.pubsub.Calls {
		if call.Method == "Publish" && call.Arguments.String(0) == topic {
			count++
		}
	}
	return count
}

func randomAddress() string {
	return "secret1" + randomHex(16)
}

func randomAmount() decimal.Decimal {
	return decimal.NewFromInt(int64(randomIntInRange(1, 100000000)))
}

func randomTimestamp() int64 {
	return int64(randomIntInRange(1000000000, 1662688000))
}

func randomHex(len int) string {
	return hex.EncodeToString(randomBytes(len))
}

func randomBytes(len int) []byte {
	b := make([]byte, len)
	//nolint
	rand.Read(b)
	return b
}

func randomIntInRange(min, max int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max)))
	return int(int(n.Int64())) + min
}
