package main

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const defaultServeAddr = ":8000"

// newPreviewServer serves the generated site from dir.
func newPreviewServer(dir string, log Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Debug("request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	e.Static("/", dir)
	return e
}

// serveSite blocks until the server stops.
func serveSite(dir, addr string, log Logger) error {
	if addr == "" {
		addr = defaultServeAddr
	}
	e := newPreviewServer(dir, log)
	log.Info("serving site", "dir", dir, "addr", addr)
	if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
