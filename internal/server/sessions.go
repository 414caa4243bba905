package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mohammad-safakhou/finadvisor/internal/session"
	"github.com/mohammad-safakhou/finadvisor/internal/telemetry"
)

type SessionsHandler struct {
	Store     session.Store
	Backend   string
	Telemetry *telemetry.Telemetry
}

func (h *SessionsHandler) Register(g *echo.Group) {
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

// notFoundSession is the sentinel returned instead of a 404, so clients can
// treat missing and present sessions uniformly.
func notFoundSession(id string) session.Session {
	return session.Session{ID: id, Title: "Not found", CreatedAt: "", Messages: []session.Message{}}
}

func (h *SessionsHandler) create(c echo.Context) error {
	var req struct {
		Title string `json:"title"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s, err := h.Store.Create(c.Request().Context(), req.Title)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.Telemetry.StoreOp(h.Backend, "create")
	return c.JSON(http.StatusOK, s)
}

func (h *SessionsHandler) list(c echo.Context) error {
	sessions, err := h.Store.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.Telemetry.StoreOp(h.Backend, "list")
	if sessions == nil {
		sessions = []session.Session{}
	}
	return c.JSON(http.StatusOK, map[string][]session.Session{"sessions": sessions})
}

func (h *SessionsHandler) get(c echo.Context) error {
	id := c.Param("id")
	s, found, err := h.Store.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.Telemetry.StoreOp(h.Backend, "get")
	if !found {
		return c.JSON(http.StatusOK, notFoundSession(id))
	}
	return c.JSON(http.StatusOK, s)
}

// update replaces the full message history of a session. The body is a bare
// JSON array of messages.
func (h *SessionsHandler) update(c echo.Context) error {
	id := c.Param("id")
	var messages []session.Message
	if err := c.Bind(&messages); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s, found, err := h.Store.ReplaceMessages(c.Request().Context(), id, messages)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.Telemetry.StoreOp(h.Backend, "update")
	if !found {
		return c.JSON(http.StatusOK, notFoundSession(id))
	}
	return c.JSON(http.StatusOK, s)
}

func (h *SessionsHandler) delete(c echo.Context) error {
	id := c.Param("id")
	deleted, err := h.Store.Delete(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.Telemetry.StoreOp(h.Backend, "delete")
	return c.JSON(http.StatusOK, map[string]bool{"deleted": deleted})
}
