package browse

import (
	_ "embed"
	"errors"
	"io/fs"
	"mime"
	"path"

	"pscan/core/facet"
	"pscan/core/index"
	"pscan/core/logger"
	"pscan/core/scan"
	"pscan/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

//go:embed page.html
var page []byte

// Handler handles HTTP requests for browsing.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ResolveResponse is the body of /api/resolve.
type ResolveResponse struct {
	Status string    `json:"status"`
	Path   string    `json:"path,omitempty"`
	Key    facet.Key `json:"key,omitzero"`
	Count  int       `json:"count,omitempty"`
	Paths  []string  `json:"paths,omitempty"`
}

// RegisterRoutes registers the browse routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/", h.HandlePage)

	group := app.Group("/api")
	group.Get("/params", h.HandleParams)
	group.Get("/options", h.HandleOptions)
	group.Get("/resolve", h.HandleResolve)
	group.Get("/file", h.HandleFile)
	group.Get("/stats", h.HandleStats)
	group.Post("/refresh", h.HandleRefresh)
	group.Delete("/cache", h.HandleInvalidate)
}

// HandlePage serves the single page browser UI.
func (h *Handler) HandlePage(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(page)
}

// HandleParams returns every parameter name.
func (h *Handler) HandleParams(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"params": h.service.Params()})
}

// HandleOptions returns the cross-filtered options for the "state" query parameter,
// a JSON object of the current picks. Invalid JSON is treated as no picks.
func (h *Handler) HandleOptions(c *fiber.Ctx) error {
	state, err := utils.ParseJSONSelection(c.Query("state"))
	if err != nil {
		logger.WithRayID(h.service.logger, c).Debug("Ignoring invalid state", zap.Error(err))
		state = nil
	}
	return c.JSON(h.service.Options(facet.NewKey(state)))
}

// HandleResolve resolves the "selection" query parameter.
func (h *Handler) HandleResolve(c *fiber.Ctx) error {
	selection, err := utils.ParseJSONSelection(c.Query("selection"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	res := h.service.Resolve(facet.NewKey(selection))
	body := ResolveResponse{Status: res.Kind.String()}
	switch res.Kind {
	case facet.Unique:
		body.Path = res.Path
		body.Key = res.Record.Key
	case facet.Ambiguous:
		body.Count = res.Count()
		body.Paths = res.Paths()
	default:
		return c.Status(fiber.StatusNotFound).JSON(body)
	}
	return c.JSON(body)
}

// HandleFile streams the file named by a selection that resolves uniquely.
func (h *Handler) HandleFile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	selection, err := utils.ParseJSONSelection(c.Query("selection"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad selection"})
	}

	res := h.service.Resolve(facet.NewKey(selection))
	switch res.Kind {
	case facet.NotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no file matches the current selection"})
	case facet.Ambiguous:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "ambiguous selection", "count": res.Count()})
	}

	rc, err := h.service.Open(c.UserContext(), res.Path)
	if err != nil {
		status := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, index.ErrNotReadable):
			status = fiber.StatusNotImplemented
		case errors.Is(err, scan.ErrOutsideSource):
			status = fiber.StatusForbidden
		case errors.Is(err, fs.ErrNotExist):
			status = fiber.StatusNotFound
		default:
			l.Error("Failed to open file", zap.String("path", res.Path), zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	ctype := mime.TypeByExtension(path.Ext(res.Path))
	if ctype == "" {
		ctype = fiber.MIMEOctetStream
	}
	c.Set(fiber.HeaderContentType, ctype)
	c.Set("X-File-Path", res.Path)
	return c.SendStream(rc)
}

// HandleStats returns the engine counters.
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	return c.JSON(h.service.Stats())
}

// HandleRefresh rescans the source. Concurrent requests share one scan.
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Refresh(c.UserContext())
	if err != nil {
		l.Error("Refresh failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleInvalidate drops the memoized options.
func (h *Handler) HandleInvalidate(c *fiber.Ctx) error {
	h.service.InvalidateCache()
	return c.SendStatus(fiber.StatusNoContent)
}
