package main

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"textavatar"
)

// AvatarServer exposes the renderer over HTTP: PNG avatars, a live
// preview websocket and a status endpoint.
type AvatarServer struct {
	echo     *echo.Echo
	config   *ServiceConfig
	upgrader websocket.Upgrader
	started  time.Time
	renders  atomic.Uint64
}

func NewAvatarServer(config *ServiceConfig) *AvatarServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &AvatarServer{
		echo:    e,
		config:  config,
		started: time.Now(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	e.GET("/avatar/:text", s.handleAvatar)
	e.GET("/status", s.handleStatus)
	e.GET("/preview", s.handlePreview)

	return s
}

func (s *AvatarServer) Start() error {
	return s.echo.Start(s.config.GetListen())
}

func (s *AvatarServer) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *AvatarServer) handleAvatar(c echo.Context) error {
	p := paramsFromQuery(c.Param("text"), c.QueryParams())

	img, err := renderAvatar(s.config, p)
	if err != nil {
		var parseErr *textavatar.ColorParseError
		if errors.As(err, &parseErr) {
			return echo.NewHTTPError(http.StatusBadRequest, parseErr.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	s.renders.Add(1)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

func (s *AvatarServer) handleStatus(c echo.Context) error {
	status := map[string]interface{}{
		"service": "avatard",
		"version": Version,
		"uptime":  time.Since(s.started).Round(time.Second).String(),
		"renders": s.renders.Load(),
	}

	if up, err := host.Uptime(); err == nil {
		status["host_uptime_sec"] = up
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		status["mem_used_percent"] = vm.UsedPercent
	}
	if pct, err := cpu.Percent(0, false); err == nil && len(pct) > 0 {
		status["cpu_percent"] = pct[0]
	}

	return c.JSON(http.StatusOK, status)
}

// handlePreview upgrades to a websocket and renders one PNG frame per
// JSON parameter message, so a client can tweak settings live without
// re-requesting URLs.
func (s *AvatarServer) handlePreview(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	for {
		var p avatarParams
		if err := conn.ReadJSON(&p); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logWarnModule("preview", "read failed: %v", err)
			}
			return nil
		}

		img, err := renderAvatar(s.config, p)
		if err != nil {
			if werr := conn.WriteJSON(map[string]string{"error": err.Error()}); werr != nil {
				return nil
			}
			continue
		}
		s.renders.Add(1)

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			logErrorModule("preview", "encode failed: %v", err)
			continue
		}
		if err := conn.WriteMessage(websocket.BinaryMessage, buf.Bytes()); err != nil {
			return nil
		}
	}
}
