package db_test

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"math/big"

	"github.com/shopspring/decimal"
	"github.com/sealbid-network/sealbid-factory/internal/core/domain"
)

var (
	readOnly = true
	ctx      = context.Background()
)

func makeRandomAuction(index uint32, seller string) *domain.AuctionRecord {
	auction, _ := domain.NewAuctionRecord(
		index,
		randomAddress(),
		seller,
		randomHex(8),
		uint16(randomIntInRange(0, 100)),
		uint16(randomIntInRange(101, 200)),
		randomAmount(),
		randomAmount(),
		uint64(randomTimestamp()),
	)
	return auction
}

func makeRandomClosedAuction(seller string, winner *string) *domain.ClosedAuctionRecord {
	closed := &domain.ClosedAuctionRecord{
		Index:      uint32(randomIntInRange(0, 99999)),
		Address:    randomAddress(),
		Seller:     seller,
		Label:      randomHex(8),
		SellSymbol: uint16(randomIntInRange(0, 100)),
		BidSymbol:  uint16(randomIntInRange(101, 200)),
		SellAmount: randomAmount(),
		ClosedAt:   uint64(randomTimestamp()),
	}
	if winner != nil {
		bid := randomAmount()
		closed.Winner = winner
		closed.WinningBid = &bid
	}
	return closed
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
