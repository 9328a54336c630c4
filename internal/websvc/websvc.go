// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

// Package websvc is the read-only web surface of tangoktl. Handlers
// contain no device logic of their own: each one resolves a namespace
// to a Tango endpoint, calls the reader and hands the collection to a
// renderer.
package websvc

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/ska-telescope/ska-tangoctl-sub000/internal/config"
	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/k8s"
	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/reader"
	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/render"
	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/tango"
)

// Service wires the HTTP routes to the cluster and the Tango boundary.
// Cluster may be nil; namespace and pod routes then answer 503. The
// Resolve hook maps a namespace to an endpoint and defaults to
// k8s.TangoEndpoint with the configured names.
type Service struct {
	log     zerolog.Logger
	cfg     config.Config
	conn    tango.Connector
	cluster *k8s.Client
	Resolve func(namespace string) tango.Endpoint
}

func New(log zerolog.Logger, cfg config.Config, conn tango.Connector, cluster *k8s.Client) *Service {
	s := &Service{log: log, cfg: cfg, conn: conn, cluster: cluster}
	s.Resolve = func(namespace string) tango.Endpoint {
		return k8s.TangoEndpoint(namespace, cfg.DatabasedsName, cfg.ClusterDomain, cfg.DatabasedsPort)
	}
	return s
}

// Router builds the echo instance with all routes registered.
func (s *Service) Router() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(s.requestLog)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/api/namespaces", s.namespaces)
	e.GET("/api/ns/:ns/devices", s.devices)
	e.GET("/api/ns/:ns/devices/*", s.device)
	e.GET("/api/ns/:ns/pods", s.pods)
	e.GET("/api/ns/:ns/pods/:pod/log", s.podLog)
	e.GET("/api/ns/:ns/services", s.services)
	return e
}

// Serve runs the HTTP server until it fails.
func (s *Service) Serve(addr string) error {
	s.log.Info().Str("addr", addr).Msg("Starting web service")
	return s.Router().Start(addr)
}

func (s *Service) requestLog(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		s.log.Info().
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Int("status", c.Response().Status).
			Dur("elapsed", time.Since(start)).
			Msg("Request")
		return err
	}
}

func (s *Service) namespaces(c echo.Context) error {
	if s.cluster == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "no cluster connection")
	}
	names, err := s.cluster.Namespaces(c.Request().Context(), c.QueryParam("pattern"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]any{"namespaces": names})
}

func (s *Service) devices(c echo.Context) error {
	ns := c.Param("ns")
	ep := s.Resolve(ns)
	db, err := s.conn.Open(c.Request().Context(), ep)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway,
			fmt.Sprintf("open database at %s: %v", ep, err))
	}
	filters := reader.Filters{
		Device:     c.QueryParam("device"),
		Everything: c.QueryParam("everything") == "true",
	}
	names, err := reader.ListDevices(s.log, db, s.cfg, filters)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]any{
		"namespace":  ns,
		"tango_host": ep.String(),
		"devices":    names,
	})
}

func (s *Service) device(c echo.Context) error {
	ns := c.Param("ns")
	name := c.Param("*")
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing device name")
	}
	format, err := render.ParseFormat(formatOr(c, "json"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ep := s.Resolve(ns)
	filters := reader.Filters{Device: name, Exact: true, Everything: true}
	opts := reader.Options{Quiet: true, WithValues: true, WithConfigs: true}
	coll, err := reader.ReadCollection(c.Request().Context(), s.log, s.conn, ep, s.cfg, filters, opts)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	if len(coll.Devices) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("device %s not found", name))
	}

	r := render.New(s.log, format)
	r.Full = true
	r.HTMLBody = c.QueryParam("body") == "true"
	var buf bytes.Buffer
	if err := r.Write(&buf, coll); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Blob(http.StatusOK, contentType(format), buf.Bytes())
}

func (s *Service) pods(c echo.Context) error {
	if s.cluster == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "no cluster connection")
	}
	pods, err := s.cluster.Pods(c.Request().Context(), c.Param("ns"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]any{"pods": pods})
}

func (s *Service) podLog(c echo.Context) error {
	if s.cluster == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "no cluster connection")
	}
	log, err := s.cluster.PodLog(c.Request().Context(), c.Param("ns"), c.Param("pod"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.String(http.StatusOK, log)
}

func (s *Service) services(c echo.Context) error {
	if s.cluster == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "no cluster connection")
	}
	svcs, err := s.cluster.Services(c.Request().Context(), c.Param("ns"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]any{"services": svcs})
}

func formatOr(c echo.Context, fallback string) string {
	if f := c.QueryParam("format"); f != "" {
		return f
	}
	return fallback
}

func contentType(f render.Format) string {
	switch f {
	case render.FormatJSON:
		return echo.MIMEApplicationJSON
	case render.FormatHTML:
		return echo.MIMETextHTMLCharsetUTF8
	case render.FormatYAML:
		return "application/yaml"
	default:
		return echo.MIMETextPlainCharsetUTF8
	}
}
