package httpinterface

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/sealbid-network/sealbid-factory/internal/core/application"
	"github.com/sealbid-network/sealbid-factory/internal/core/ports"
)

// SenderHeader is the header carrying the identity of the caller, set by the
// authenticating gateway in front of the daemon.
const SenderHeader = "X-Sender-Address"

var errUnknownMsg = errors.New("unrecognized message")

type factoryHandler struct {
	factorySvc  application.FactoryService
	registrySvc application.RegistryService
	querySvc    application.QueryService
	metrics     *metrics
}

func newFactoryHandler(
	factorySvc application.FactoryService,
	registrySvc application.RegistryService,
	querySvc application.QueryService,
	metrics *metrics,
) *factoryHandler {
	return &factoryHandler{
		factorySvc:  factorySvc,
		registrySvc: registrySvc,
		querySvc:    querySvc,
		metrics:     metrics,
	}
}

func (h *factoryHandler) handleExecute(w http.ResponseWriter, req *http.Request) {
	sender := req.Header.Get(SenderHeader)
	if sender == "" {
		writeJSON(w, http.StatusUnauthorized, failureAnswer(
			"missing "+SenderHeader+" header",
		))
		return
	}

	var msg HandleMsg
	if err := json.NewDecoder(req.Body).Decode(&msg); err != nil {
		writeJSON(w, http.StatusBadRequest, failureAnswer("invalid request body"))
		return
	}

	answer, err := h.dispatchExecute(req.Context(), sender, msg)
	if err != nil {
		h.metrics.recordExecute(msg.name(), StatusFailure)
		if errors.Is(err, errUnknownMsg) {
			writeJSON(w, http.StatusBadRequest, failureAnswer(err.Error()))
			return
		}
		writeJSON(w, http.StatusOK, failureAnswer(err.Error()))
		return
	}

	h.metrics.recordExecute(msg.name(), StatusSuccess)
	writeJSON(w, http.StatusOK, answer)
}

func (h *factoryHandler) dispatchExecute(
	ctx context.Context, sender string, msg HandleMsg,
) (*HandleAnswer, error) {
	switch {
	case msg.CreateAuction != nil:
		m := msg.CreateAuction
		if err := h.factorySvc.CreateAuction(ctx, sender, application.CreateAuction{
			Label:        m.Label,
			SellContract: tokenInfo(m.SellContract),
			BidContract:  tokenInfo(m.BidContract),
			SellAmount:   m.SellAmount,
			MinimumBid:   m.MinimumBid,
			EndsAt:       m.EndsAt,
			Description:  m.Description,
		}); err != nil {
			return nil, err
		}
		return successAnswer(), nil
	case msg.RegisterAuction != nil:
		m := msg.RegisterAuction
		if err := h.registrySvc.RegisterAuction(ctx, sender, application.RegisterAuction{
			Seller: m.Seller,
			Auction: application.RegisterAuctionInfo{
				Index:      m.Auction.Index,
				Label:      m.Auction.Label,
				SellSymbol: m.Auction.SellSymbol,
				BidSymbol:  m.Auction.BidSymbol,
				SellAmount: m.Auction.SellAmount,
				MinimumBid: m.Auction.MinimumBid,
				EndsAt:     m.Auction.EndsAt,
			},
		}); err != nil {
			return nil, err
		}
		h.metrics.activeAuctions.Inc()
		return successAnswer(), nil
	case msg.CloseAuction != nil:
		m := msg.CloseAuction
		if err := h.registrySvc.CloseAuction(ctx, sender, application.CloseAuction{
			Index:      m.Index,
			Seller:     m.Seller,
			Bidder:     m.Bidder,
			WinningBid: m.WinningBid,
		}); err != nil {
			return nil, err
		}
		h.metrics.activeAuctions.Dec()
		return successAnswer(), nil
	case msg.RegisterBidder != nil:
		m := msg.RegisterBidder
		if err := h.registrySvc.RegisterBidder(
			ctx, sender, m.Index, m.Bidder,
		); err != nil {
			return nil, err
		}
		return successAnswer(), nil
	case msg.RemoveBidder != nil:
		m := msg.RemoveBidder
		if err := h.registrySvc.RemoveBidder(
			ctx, sender, m.Index, m.Bidder,
		); err != nil {
			return nil, err
		}
		return successAnswer(), nil
	case msg.ChangeAuctionInfo != nil:
		m := msg.ChangeAuctionInfo
		if err := h.registrySvc.ChangeAuctionInfo(ctx, sender, application.ChangeAuctionInfo{
			Index:      m.Index,
			EndsAt:     m.EndsAt,
			MinimumBid: m.MinimumBid,
		}); err != nil {
			return nil, err
		}
		return successAnswer(), nil
	case msg.CreateViewingKey != nil:
		key, err := h.factorySvc.CreateViewingKey(
			ctx, sender, msg.CreateViewingKey.Entropy,
		)
		if err != nil {
			return nil, err
		}
		return &HandleAnswer{ViewingKey: &ViewingKeyAnswer{Key: key}}, nil
	case msg.SetViewingKey != nil:
		if err := h.factorySvc.SetViewingKey(
			ctx, sender, msg.SetViewingKey.Key,
		); err != nil {
			return nil, err
		}
		return successAnswer(), nil
	case msg.NewAuctionContract != nil:
		if err := h.factorySvc.NewAuctionContract(
			ctx, sender, msg.NewAuctionContract.AuctionContract,
		); err != nil {
			return nil, err
		}
		return successAnswer(), nil
	case msg.SetStatus != nil:
		if err := h.factorySvc.SetStatus(
			ctx, sender, msg.SetStatus.Stop,
		); err != nil {
			return nil, err
		}
		return successAnswer(), nil
	case msg.SubscribeWebhook != nil:
		m := msg.SubscribeWebhook
		if !isSupportedAction(m.Action) {
			return nil, application.ErrInvalidWebhookAction
		}
		id, err := h.factorySvc.SubscribeWebhook(
			ctx, sender, m.Action, m.Endpoint, m.Secret,
		)
		if err != nil {
			return nil, err
		}
		return &HandleAnswer{
			SubscribeWebhook: &SubscribeWebhookAnswer{ID: id},
		}, nil
	case msg.UnsubscribeWebhook != nil:
		m := msg.UnsubscribeWebhook
		if !isSupportedAction(m.Action) {
			return nil, application.ErrInvalidWebhookAction
		}
		if err := h.factorySvc.UnsubscribeWebhook(
			ctx, sender, m.Action, m.ID,
		); err != nil {
			return nil, err
		}
		return successAnswer(), nil
	case msg.ListWebhooks != nil:
		webhooks, err := h.factorySvc.ListWebhooks(ctx, sender)
		if err != nil {
			return nil, err
		}
		return &HandleAnswer{
			ListWebhooks: &ListWebhooksAnswer{Webhooks: webhooks},
		}, nil
	default:
		return nil, errUnknownMsg
	}
}

func (h *factoryHandler) handleQuery(w http.ResponseWriter, req *http.Request) {
	var msg QueryMsg
	if err := json.NewDecoder(req.Body).Decode(&msg); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	answer, err := h.dispatchQuery(req.Context(), msg)
	h.metrics.recordQuery(msg.name())
	if err != nil {
		if errors.Is(err, application.ErrAuthenticationFailed) {
			writeJSON(w, http.StatusOK, QueryAnswer{
				ViewingKeyError: &ViewingKeyErrorAnswer{Error: err.Error()},
			})
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, answer)
}

func (h *factoryHandler) dispatchQuery(
	ctx context.Context, msg QueryMsg,
) (*QueryAnswer, error) {
	switch {
	case msg.ListActiveAuctions != nil:
		list, err := h.querySvc.ListActiveAuctions(ctx)
		if err != nil {
			return nil, err
		}
		return &QueryAnswer{
			ListActiveAuctions: &ActiveAuctionsAnswer{Active: list},
		}, nil
	case msg.ListClosedAuctions != nil:
		m := msg.ListClosedAuctions
		var pageSize uint32
		if m.PageSize != nil {
			pageSize = *m.PageSize
		}
		list, nextBefore, err := h.querySvc.ListClosedAuctions(
			ctx, m.Before, pageSize,
		)
		if err != nil {
			return nil, err
		}
		return &QueryAnswer{
			ListClosedAuctions: &ClosedAuctionsAnswer{
				Closed:     list,
				NextBefore: nextBefore,
			},
		}, nil
	case msg.ListMyAuctions != nil:
		m := msg.ListMyAuctions
		filter, err := application.ParseFilter(m.Filter)
		if err != nil {
			return nil, err
		}
		list, err := h.querySvc.ListMyAuctions(
			ctx, m.Address, m.ViewingKey, filter,
		)
		if err != nil {
			return nil, err
		}
		return &QueryAnswer{ListMyAuctions: list}, nil
	case msg.IsKeyValid != nil:
		m := msg.IsKeyValid
		isValid, err := h.querySvc.IsKeyValid(ctx, m.Address, m.ViewingKey)
		if err != nil {
			return nil, err
		}
		return &QueryAnswer{
			IsKeyValid: &KeyValidAnswer{IsValid: isValid},
		}, nil
	default:
		return nil, errUnknownMsg
	}
}

func (h *factoryHandler) handleInfo(w http.ResponseWriter, req *http.Request) {
	info, err := h.factorySvc.GetInfo(req.Context())
	if err != nil {
		log.WithError(err).Error("failed to retrieve factory info")
		http.Error(
			w,
			http.StatusText(http.StatusInternalServerError),
			http.StatusInternalServerError,
		)
		return
	}

	h.metrics.activeAuctions.Set(float64(info.ActiveAuctions))
	writeJSON(w, http.StatusOK, info)
}

// isSupportedAction tells whether an action string names a published topic.
func isSupportedAction(action string) bool {
	switch action {
	case application.TopicAuctionRegistered,
		application.TopicAuctionClosed,
		application.TopicBidderAdded,
		application.TopicBidderRemoved,
		application.TopicStatusChanged,
		ports.AnyTopic:
		return true
	default:
		return false
	}
}

func tokenInfo(msg TokenInfoMsg) application.TokenInfo {
	return application.TokenInfo{
		CodeHash: msg.CodeHash,
		Address:  msg.Address,
		Symbol:   msg.Symbol,
		Decimals: msg.Decimals,
	}
}

func successAnswer() *HandleAnswer {
	return &HandleAnswer{Status: &StatusAnswer{Status: StatusSuccess}}
}

func failureAnswer(message string) *HandleAnswer {
	return &HandleAnswer{Status: &StatusAnswer{
		Status:  StatusFailure,
		Message: message,
	}}
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.WithError(err).Error("failed to serialize response")
		http.Error(
			w,
			http.StatusText(http.StatusInternalServerError),
			http.StatusInternalServerError,
		)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	//nolint
	w.Write(body)
}
