package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gatehouse/internal/export"
	"gatehouse/internal/visitor/models"
	"gatehouse/pkg/platform/httputil"
	"gatehouse/pkg/requestcontext"
)

// Service defines the interface for visitor operations.
type Service interface {
	List(ctx context.Context, filter models.ListFilter) ([]*models.Visitor, int, error)
	Get(ctx context.Context, id models.VisitorID) (*models.Visitor, error)
	Create(ctx context.Context, fields models.Fields) (*models.Visitor, error)
	Update(ctx context.Context, id models.VisitorID, update models.Update) (*models.Visitor, error)
	SoftDelete(ctx context.Context, id models.VisitorID) error
	Restore(ctx context.Context, id models.VisitorID) (*models.Visitor, error)
	PermanentDelete(ctx context.Context, id models.VisitorID) error
	BulkActivate(ctx context.Context, ids []models.VisitorID) error
	BulkDeactivate(ctx context.Context, ids []models.VisitorID) error
	BulkSoftDelete(ctx context.Context, ids []models.VisitorID) error
	Export(ctx context.Context, filter models.ListFilter) ([]*models.Visitor, error)
}

// Handler wires visitor endpoints to the engine.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a visitor handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts visitor endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/visitors", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/export", h.handleExport)
		r.Put("/bulk/activate", h.handleBulkActivate)
		r.Put("/bulk/deactivate", h.handleBulkDeactivate)
		r.Put("/bulk/delete", h.handleBulkSoftDelete)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleSoftDelete)
		r.Put("/{id}/restore", h.handleRestore)
		r.Delete("/{id}/permanent", h.handlePermanentDelete)
	})
}

// pathID parses the {id} path parameter, writing the error response itself
// on failure.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (models.VisitorID, bool) {
	id, err := models.ParseVisitorID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return models.VisitorID{}, false
	}
	return id, true
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := parseListFilter(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	visitors, total, err := h.service.List(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list visitors",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	if visitors == nil {
		visitors = []*models.Visitor{}
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse{Visitors: visitors, Total: total})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	v, err := h.service.Get(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateVisitorRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	v, err := h.service.Create(ctx, req.Fields())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create visitor",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "visitor created",
		"request_id", requestID,
		"visitor_id", v.ID.String(),
	)
	httputil.WriteJSON(w, http.StatusCreated, v)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpdateVisitorRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	v, err := h.service.Update(ctx, id, req.Update())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) handleSoftDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.SoftDelete(ctx, id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, MessageResponse{Message: "visitor deleted"})
}

func (h *Handler) handleRestore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	v, err := h.service.Restore(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) handlePermanentDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.PermanentDelete(ctx, id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, MessageResponse{Message: "visitor permanently deleted"})
}

func (h *Handler) handleBulkActivate(w http.ResponseWriter, r *http.Request) {
	h.handleBulk(w, r, h.service.BulkActivate, "visitors activated")
}

func (h *Handler) handleBulkDeactivate(w http.ResponseWriter, r *http.Request) {
	h.handleBulk(w, r, h.service.BulkDeactivate, "visitors deactivated")
}

func (h *Handler) handleBulkSoftDelete(w http.ResponseWriter, r *http.Request) {
	h.handleBulk(w, r, h.service.BulkSoftDelete, "visitors deleted")
}

func (h *Handler) handleBulk(w http.ResponseWriter, r *http.Request, op func(context.Context, []models.VisitorID) error, ack string) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[BulkRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := op(ctx, req.ParsedIDs()); err != nil {
		h.logger.ErrorContext(ctx, "bulk visitor operation failed",
			"request_id", requestID,
			"ids", len(req.ParsedIDs()),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, MessageResponse{Message: ack})
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := parseListFilter(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	visitors, err := h.service.Export(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to export visitors",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	file, err := export.Visitors(visitors, format)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to serialize export",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename=`+file.Filename)
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}
