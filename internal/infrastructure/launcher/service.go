package launcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sealbid-network/sealbid-factory/internal/core/ports"
	"github.com/sealbid-network/sealbid-factory/pkg/circuitbreaker"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/thanhpk/randstr"
)

type service struct {
	endpoint   string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker
}

// NewService returns an AuctionLauncher posting launch requests to the
// execution service listening at the given endpoint.
func NewService(endpoint string) (ports.AuctionLauncher, error) {
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("invalid launcher endpoint, must be a valid URI")
	}

	return &service{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cb:         circuitbreaker.NewCircuitBreaker("launcher"),
	}, nil
}

// launchPayload is the wire format of a launch request.
type launchPayload struct {
	CodeID           uint64 `json:"code_id"`
	CodeHash         string `json:"code_hash"`
	Index            uint32 `json:"index"`
	Label            string `json:"label"`
	Seller           string `json:"seller"`
	SellTokenAddress string `json:"sell_token_address"`
	SellTokenHash    string `json:"sell_token_hash"`
	BidTokenAddress  string `json:"bid_token_address"`
	BidTokenHash     string `json:"bid_token_hash"`
	SellAmount       string `json:"sell_amount"`
	MinimumBid       string `json:"minimum_bid"`
	EndsAt           uint64 `json:"ends_at"`
	Description      string `json:"description,omitempty"`
}

func (s *service) Launch(ctx context.Context, req ports.LaunchRequest) error {
	body, err := json.Marshal(launchPayload{
		CodeID:           req.Contract.CodeID,
		CodeHash:         req.Contract.CodeHash,
		Index:            req.Index,
		Label:            req.Label,
		Seller:           req.Seller,
		SellTokenAddress: req.SellContract.Address,
		SellTokenHash:    req.SellContract.CodeHash,
		BidTokenAddress:  req.BidContract.Address,
		BidTokenHash:     req.BidContract.CodeHash,
		SellAmount:       req.SellAmount.String(),
		MinimumBid:       req.MinimumBid.String(),
		EndsAt:           req.EndsAt,
		Description:      req.Description,
	})
	if err != nil {
		return err
	}

	requestID := randstr.Hex(8)
	log.WithFields(log.Fields{
		"index":      req.Index,
		"request_id": requestID,
	}).Debug("asking the execution service to launch a new auction")

	_, err = s.cb.Execute(func() (interface{}, error) {
		httpReq, err := http.NewRequestWithContext(
			ctx, "POST", fmt.Sprintf("%s/v1/launch", s.endpoint),
			bytes.NewReader(body),
		)
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("X-Request-Id", requestID)

		rs, err := s.httpClient.Do(httpReq)
		if err != nil {
			return nil, err
		}
		defer rs.Body.Close()

		if rs.StatusCode != http.StatusOK {
			resp, _ := io.ReadAll(rs.Body)
			return nil, fmt.Errorf(
				"execution service refused the launch: %s", string(resp),
			)
		}
		return nil, nil
	})
	return err
}
