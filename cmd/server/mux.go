package main

import (
	"encoding/json"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/skynet2/conveyancing-inbox/pkg/common"
	"github.com/skynet2/conveyancing-inbox/pkg/database"
)

type Handler struct {
	processor    MessageProcessor
	unmatched    UnmatchedStore
	apiKey       string
	maxBodyBytes int64
}

func NewHandler(
	processor MessageProcessor,
	unmatched UnmatchedStore,
	apiKey string,
	maxBodyBytes int64,
) *Handler {
	return &Handler{
		processor:    processor,
		unmatched:    unmatched,
		apiKey:       apiKey,
		maxBodyBytes: maxBodyBytes,
	}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(h.authorize)

	api.HandleFunc("/webhooks/email", h.Webhook(database.ChannelEmail)).Methods(http.MethodPost)
	api.HandleFunc("/webhooks/whatsapp", h.Webhook(database.ChannelWhatsApp)).Methods(http.MethodPost)
	api.HandleFunc("/webhooks/batch", h.Batch).Methods(http.MethodPost)
	api.HandleFunc("/unmatched", h.Unmatched).Methods(http.MethodGet)
}

func (h *Handler) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.apiKey != r.URL.Query().Get("api_key") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Webhook handles a single message. The channel comes from the route, not the body.
func (h *Handler) Webhook(channel database.Channel) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var msg database.InboundMessage

		if err := h.decode(w, r, &msg); err != nil {
			h.writeError(w, r, err)
			return
		}

		msg.Channel = channel

		processed, err := h.processor.ProcessMessage(r.Context(), &msg)
		if err != nil {
			if errors.Is(err, common.ErrDuplicate) {
				h.writeJSON(w, r, http.StatusOK, processResponse{Duplicate: true})
				return
			}

			h.writeError(w, r, err)
			return
		}

		h.writeJSON(w, r, http.StatusOK, toResponse(processed))
	}
}

func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	var messages []*database.InboundMessage

	if err := h.decode(w, r, &messages); err != nil {
		h.writeError(w, r, err)
		return
	}

	for i, msg := range messages {
		if msg == nil {
			h.writeError(w, r, errors.Mark(errors.Wrapf(common.ErrEmptyMessage, "message %d", i), errBadRequest))
			return
		}
	}

	processed, errArr := h.processor.ProcessBatch(r.Context(), messages)

	h.writeJSON(w, r, http.StatusOK, batchResponse{
		Results: lo.Map(processed, func(p *database.ProcessedMessage, _ int) processResponse {
			return toResponse(p)
		}),
		Errors: lo.Map(errArr, func(err error, _ int) string {
			return err.Error()
		}),
	})
}

func (h *Handler) Unmatched(w http.ResponseWriter, r *http.Request) {
	channel := database.Channel(r.URL.Query().Get("channel"))
	if channel == "" {
		channel = database.ChannelEmail
	}

	if channel != database.ChannelEmail && channel != database.ChannelWhatsApp {
		h.writeError(w, r, errors.Wrapf(common.ErrUnsupportedChannel, "channel %q", channel))
		return
	}

	items, err := h.unmatched.GetUnmatched(r.Context(), channel)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if items == nil {
		items = []*database.ProcessedMessage{}
	}

	h.writeJSON(w, r, http.StatusOK, items)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, target any) error {
	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return errors.Mark(errors.Wrap(err, "invalid request body"), errBadRequest)
	}

	return nil
}

var errBadRequest = errors.New("bad request")

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.As(err, &maxBytesErr):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, errBadRequest), errors.Is(err, common.ErrUnsupportedChannel):
		status = http.StatusBadRequest
	}

	zerolog.Ctx(r.Context()).Error().Err(err).Int("status", status).Msg("request failed")

	w.WriteHeader(status)
	_, _ = w.Write([]byte(err.Error()))
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	b, err := json.Marshal(body)
	if err != nil {
		h.writeError(w, r, errors.WithStack(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

func toResponse(processed *database.ProcessedMessage) processResponse {
	resp := processResponse{
		Parsed: processed.Parsed,
	}

	if processed.IsMatched() {
		resp.MatchedTransactionID = lo.ToPtr(processed.MatchedTransactionID)
		resp.Strategy = lo.ToPtr(processed.MatchStrategy)
	}

	return resp
}
