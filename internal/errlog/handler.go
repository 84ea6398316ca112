package errlog

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	dErrors "gatehouse/pkg/domain-errors"
	"gatehouse/pkg/platform/httputil"
	"gatehouse/pkg/requestcontext"
)

// ListResponse wraps the audit trail for the read endpoint.
type ListResponse struct {
	Records []Record `json:"records"`
}

// Handler exposes the audit trail over HTTP. The trail is read-only from
// the outside; records are only ever appended by the Recorder.
type Handler struct {
	recorder *Recorder
	logger   *slog.Logger
}

func NewHandler(recorder *Recorder, logger *slog.Logger) *Handler {
	return &Handler{recorder: recorder, logger: logger}
}

// Register mounts the audit trail endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/errorlog", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := h.recorder.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list audit records",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "audit trail unavailable"))
		return
	}

	if records == nil {
		records = []Record{}
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse{Records: records})
}
