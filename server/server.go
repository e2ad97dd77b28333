// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// BaseURL prefixes every route served by a node.
const BaseURL = "/ext"

var _ Server = (*server)(nil)

// Server serves the node's JSON-RPC and metrics handlers.
type Server interface {
	// AddRoute serves [handler] at BaseURL/[base][endpoint].
	AddRoute(handler http.Handler, base, endpoint string) error
	// Dispatch blocks serving requests until Shutdown is called.
	Dispatch() error
	Shutdown() error
	Addr() net.Addr
}

type Config struct {
	ReadTimeout       time.Duration `json:"readTimeout"`
	ReadHeaderTimeout time.Duration `json:"readHeaderTimeout"`
	WriteTimeout      time.Duration `json:"writeTimeout"`
	IdleTimeout       time.Duration `json:"idleTimeout"`
	ShutdownTimeout   time.Duration `json:"shutdownTimeout"`

	AllowedOrigins []string `json:"allowedOrigins"`
}

func NewDefaultConfig() Config {
	return Config{
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		AllowedOrigins:    []string{"*"},
	}
}

type server struct {
	log    logging.Logger
	cfg    Config
	router *router

	srv      *http.Server
	listener net.Listener
}

// New wraps [listener]. Requests are served once Dispatch is called.
func New(log logging.Logger, listener net.Listener, cfg Config) Server {
	router := newRouter()
	handler := gziphandler.GzipHandler(cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
	}).Handler(router))

	log.Info("API created",
		zap.Strings("allowedOrigins", cfg.AllowedOrigins),
		zap.Stringer("address", listener.Addr()),
	)
	return &server{
		log:    log,
		cfg:    cfg,
		router: router,
		srv: &http.Server{
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
		listener: listener,
	}
}

func (s *server) Dispatch() error {
	return s.srv.Serve(s.listener)
}

func (s *server) AddRoute(handler http.Handler, base, endpoint string) error {
	url := fmt.Sprintf("%s/%s", BaseURL, base)
	s.log.Info("adding route",
		zap.String("url", url),
		zap.String("endpoint", endpoint),
	)
	return s.router.AddRouter(url, endpoint, handler)
}

func (s *server) Addr() net.Addr {
	return s.listener.Addr()
}

func (s *server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	err := s.srv.Shutdown(ctx)
	// Connections still open after the timeout are dropped.
	_ = s.srv.Close()
	return err
}
