package session

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/noah-isme/wrapping-quotes/internal/common"
	"github.com/noah-isme/wrapping-quotes/internal/obs"
	"github.com/noah-isme/wrapping-quotes/internal/order"
	"github.com/noah-isme/wrapping-quotes/internal/paper"
	"github.com/noah-isme/wrapping-quotes/internal/quote"
	"github.com/noah-isme/wrapping-quotes/internal/translate"
)

const exportFailedMessage = "Failed to export quotes. Please ensure the service has write access to the export directory."

// Handler wires sessions to HTTP.
type Handler struct {
	Store  *Store
	Logger zerolog.Logger
}

// Routes registers the quoting API on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/colours", h.Colours)
	r.Post("/quotes/preview", h.Preview)
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Delete("/", h.Close)
			r.Post("/quotes", h.AddQuote)
			r.Put("/quotes/{index}", h.ReplaceQuote)
			r.Delete("/quotes/{index}", h.DeleteQuote)
			r.Post("/quotes/{index}/edit", h.BeginEdit)
			r.Delete("/quotes/{index}/edit", h.CancelEdit)
			r.Put("/edit", h.CommitEdit)
			r.Post("/export", h.Export)
			r.Post("/orders", h.NewOrder)
			r.Post("/checkout", h.Checkout)
		})
	})
}

// Colours lists the preset paper colours.
func (h *Handler) Colours(w http.ResponseWriter, r *http.Request) {
	colours := paper.Colours()
	out := make([]map[string]string, 0, len(colours))
	for _, c := range colours {
		out = append(out, map[string]string{"name": paper.HumanReadable(c), "tag": string(c)})
	}
	common.Data(w, http.StatusOK, out)
}

// Preview prices a quote without storing it.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	q, ok := h.decodeQuote(w, r)
	if !ok {
		obs.RecordPreview("invalid")
		return
	}
	obs.RecordPreview("ok")
	common.Data(w, http.StatusOK, NewQuoteView(0, q))
}

// Create opens a new session.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	sess := h.Store.Create()
	common.Data(w, http.StatusCreated, sess.Snapshot())
}

// Get returns the session's current order.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	common.Data(w, http.StatusOK, sess.Snapshot())
}

// Close drops the session, exporting a pending order first when ?export=true.
func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	exportFirst := common.ParseBoolDefault(r.URL.Query().Get("export"), false)
	path, err := h.Store.Close(r.Context(), chi.URLParam(r, "sessionID"), exportFirst)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if path == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	common.Data(w, http.StatusOK, map[string]any{"exportPath": path})
}

// AddQuote appends a quote to the current order.
func (h *Handler) AddQuote(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	q, ok := h.decodeQuote(w, r)
	if !ok {
		return
	}
	i, err := sess.AddQuote(q)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.Data(w, http.StatusCreated, NewQuoteView(i, q))
}

// ReplaceQuote saves a quote over position {index}.
func (h *Handler) ReplaceQuote(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	i, ok := quoteIndex(w, r)
	if !ok {
		return
	}
	q, ok := h.decodeQuote(w, r)
	if !ok {
		return
	}
	if err := sess.ReplaceQuote(i, q); err != nil {
		h.writeError(w, err)
		return
	}
	common.Data(w, http.StatusOK, NewQuoteView(i, q))
}

// DeleteQuote removes position {index}.
func (h *Handler) DeleteQuote(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	i, ok := quoteIndex(w, r)
	if !ok {
		return
	}
	if err := sess.DeleteQuote(i); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BeginEdit opens position {index} for editing.
func (h *Handler) BeginEdit(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	i, ok := quoteIndex(w, r)
	if !ok {
		return
	}
	q, err := sess.BeginEdit(i)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.Data(w, http.StatusOK, NewQuoteView(i, q))
}

// CancelEdit closes the open edit without saving.
func (h *Handler) CancelEdit(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	sess.CancelEdit()
	w.WriteHeader(http.StatusNoContent)
}

// CommitEdit saves a quote over whichever position is open for editing.
func (h *Handler) CommitEdit(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	q, ok := h.decodeQuote(w, r)
	if !ok {
		return
	}
	i, err := sess.CommitEdit(q)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.Data(w, http.StatusOK, NewQuoteView(i, q))
}

// Export writes the current order's receipt.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	path, err := sess.Export(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.Data(w, http.StatusOK, map[string]any{"exportPath": path})
}

// NewOrder starts the next order, exporting first when ?export=true.
func (h *Handler) NewOrder(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	exportFirst := common.ParseBoolDefault(r.URL.Query().Get("export"), false)
	result, err := sess.NewOrder(r.Context(), exportFirst)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.Data(w, http.StatusCreated, result)
}

// Checkout exports the order and starts the next one.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	result, err := sess.Checkout(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.Data(w, http.StatusCreated, result)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	sess, err := h.Store.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeError(w, err)
		return nil, false
	}
	return sess, true
}

func (h *Handler) decodeQuote(w http.ResponseWriter, r *http.Request) (quote.Quote, bool) {
	var in translate.QuoteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.Fail(w, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body", nil)
		return quote.Quote{}, false
	}
	q, err := translate.BuildQuote(in)
	if err != nil {
		h.writeError(w, err)
		return quote.Quote{}, false
	}
	return q, true
}

func quoteIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || i < 0 {
		common.Fail(w, http.StatusBadRequest, "BAD_REQUEST", "invalid quote index", nil)
		return 0, false
	}
	return i, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	appErr := toAppError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.Logger.Error().Err(err).Str("code", appErr.Code).Msg("request failed")
	}
	common.WriteError(w, appErr)
}

func toAppError(err error) *common.AppError {
	var validation *translate.ValidationError
	switch {
	case errors.As(err, &validation):
		appErr := common.NewAppError("VALIDATION_FAILED", "quote is invalid", http.StatusUnprocessableEntity, err)
		appErr.Details = validation.Fields
		return appErr
	case errors.Is(err, ErrSessionNotFound):
		return common.NewAppError("NOT_FOUND", "session not found", http.StatusNotFound, err)
	case errors.Is(err, order.ErrQuoteIndexOutOfRange):
		return common.NewAppError("QUOTE_NOT_FOUND", "no quote at that position", http.StatusNotFound, err)
	case errors.Is(err, ErrEditInProgress), errors.Is(err, ErrNoEditInProgress), errors.Is(err, ErrQuoteBeingEdited):
		return common.NewAppError("CONFLICT", err.Error(), http.StatusConflict, err)
	case errors.Is(err, ErrEmptyOrder):
		return common.NewAppError("EMPTY_ORDER", "You cannot export an empty order.", http.StatusConflict, err)
	case errors.Is(err, order.ErrExport):
		return common.NewAppError("EXPORT_FAILED", exportFailedMessage, http.StatusInternalServerError, err)
	default:
		return common.NewAppError("INTERNAL", "internal error", http.StatusInternalServerError, err)
	}
}
