package httpinterface

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/netutil"

	"github.com/sealbid-network/sealbid-factory/internal/core/application"
	"github.com/sealbid-network/sealbid-factory/internal/interfaces"
)

type ServiceOpts struct {
	// Address the server listens on.
	Address string

	FactorySvc  application.FactoryService
	RegistrySvc application.RegistryService
	QuerySvc    application.QueryService

	// EventHub streams the published events to websocket clients. The
	// events endpoint is disabled when nil.
	EventHub *EventHub

	// MaxConns caps the number of accepted connections when positive.
	MaxConns int
}

func (o ServiceOpts) validate() error {
	if o.Address == "" {
		return fmt.Errorf("missing listening address")
	}
	if o.FactorySvc == nil {
		return fmt.Errorf("missing factory service")
	}
	if o.RegistrySvc == nil {
		return fmt.Errorf("missing registry service")
	}
	if o.QuerySvc == nil {
		return fmt.Errorf("missing query service")
	}
	return nil
}

type service struct {
	opts       ServiceOpts
	handler    *factoryHandler
	httpServer *http.Server
}

// NewService returns the HTTP interface of the factory serving the execute,
// query, info, events and metrics endpoints on a single port.
func NewService(opts ServiceOpts) (interfaces.Service, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("invalid opts: %s", err)
	}

	handler := newFactoryHandler(
		opts.FactorySvc, opts.RegistrySvc, opts.QuerySvc, newMetrics(),
	)
	httpServer := &http.Server{
		Handler: requestLogger(newRouter(handler, opts.EventHub)),
	}

	return &service{
		opts:       opts,
		handler:    handler,
		httpServer: httpServer,
	}, nil
}

func newRouter(handler *factoryHandler, hub *EventHub) *mux.Router {
	router := mux.NewRouter()
	router.Handle(
		"/v1/execute",
		measured(handler.metrics, "execute", http.HandlerFunc(handler.handleExecute)),
	).Methods(http.MethodPost)
	router.Handle(
		"/v1/query",
		measured(handler.metrics, "query", http.HandlerFunc(handler.handleQuery)),
	).Methods(http.MethodPost)
	router.Handle(
		"/v1/info",
		measured(handler.metrics, "info", http.HandlerFunc(handler.handleInfo)),
	).Methods(http.MethodGet)
	if hub != nil {
		router.HandleFunc("/v1/events", hub.serveWs).Methods(http.MethodGet)
	}
	router.Handle("/metrics", handler.metrics.handler()).Methods(http.MethodGet)
	return router
}

func (s *service) Start() error {
	listener, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return err
	}
	if s.opts.MaxConns > 0 {
		listener = netutil.LimitListener(listener, s.opts.MaxConns)
	}

	if info, err := s.opts.FactorySvc.GetInfo(context.Background()); err == nil {
		s.handler.metrics.activeAuctions.Set(float64(info.ActiveAuctions))
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Warn("http server exited with error")
		}
	}()

	log.Infof("factory interface is listening on %s", s.opts.Address)
	return nil
}

func (s *service) Stop() {
	if s.opts.EventHub != nil {
		log.Debug("disconnect events clients")
		s.opts.EventHub.close()
	}

	log.Debug("stop http server")
	//nolint
	s.httpServer.Shutdown(context.Background())
}
