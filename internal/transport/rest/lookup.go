package rest

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/wudao-dict/internal/domain"
	"github.com/heartmarshall/wudao-dict/internal/render"
	"github.com/heartmarshall/wudao-dict/internal/service/lookup"
	"github.com/heartmarshall/wudao-dict/internal/sink"
)

// maxWords bounds the number of word parameters in one request.
const maxWords = 20

type lookupService interface {
	Lookup(ctx context.Context, query string, opts render.Options) (*lookup.Result, error)
	LookupMany(ctx context.Context, queries []string, opts render.Options) ([]lookup.Outcome, error)
}

// LookupHandler serves GET /lookup.
type LookupHandler struct {
	svc lookupService
	log *slog.Logger
}

// NewLookupHandler creates a LookupHandler.
func NewLookupHandler(svc lookupService, logger *slog.Logger) *LookupHandler {
	return &LookupHandler{svc: svc, log: logger.With("handler", "lookup")}
}

// ErrorResponse is the JSON body of every failed lookup request.
type ErrorResponse struct {
	Error string `json:"error"`
}

var contentTypes = map[sink.Format]string{
	sink.FormatTerminal: "text/plain; charset=utf-8",
	sink.FormatPlain:    "text/plain; charset=utf-8",
	sink.FormatJSON:     "application/json",
	sink.FormatYAML:     "application/yaml",
	sink.FormatHTML:     "text/html; charset=utf-8",
}

// Lookup resolves one or more words. Query parameters:
//
//	word    repeatable, required
//	short   bool, omit descriptions and examples
//	format  json (default), yaml, html, plain
//
// With several words, words without an entry are left out of the response;
// the request fails only when none of them resolves.
func (h *LookupHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	words := q["word"]
	if len(words) == 0 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "word is required"})
		return
	}
	if len(words) > maxWords {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "too many words, max " + strconv.Itoa(maxWords)})
		return
	}

	var opts render.Options
	if s := q.Get("short"); s != "" {
		short, err := strconv.ParseBool(s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "short must be a boolean"})
			return
		}
		opts.Short = short
	}

	format := sink.FormatJSON
	if f := q.Get("format"); f != "" {
		format = sink.Format(f)
	}
	out, err := sink.New(format, false)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "unknown format " + strconv.Quote(string(format))})
		return
	}

	docs, err := h.resolve(r.Context(), words, opts)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := out.Write(&buf, docs...); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck
}

func (h *LookupHandler) resolve(ctx context.Context, words []string, opts render.Options) ([]sink.Document, error) {
	if len(words) == 1 {
		res, err := h.svc.Lookup(ctx, words[0], opts)
		if err != nil {
			return nil, err
		}
		return []sink.Document{res.Document()}, nil
	}

	outcomes, err := h.svc.LookupMany(ctx, words, opts)
	if err != nil {
		return nil, err
	}
	var (
		docs     []sink.Document
		firstErr error
	)
	for _, o := range outcomes {
		if o.Err != nil {
			if firstErr == nil {
				firstErr = o.Err
			}
			continue
		}
		docs = append(docs, o.Result.Document())
	}
	if len(docs) == 0 {
		return nil, firstErr
	}
	return docs, nil
}

// statusClientClosedRequest is the nginx convention for a request the client
// abandoned before a response was written.
const statusClientClosedRequest = 499

func (h *LookupHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, context.Canceled):
		h.log.DebugContext(r.Context(), "lookup canceled by client", slog.String("error", err.Error()))
		w.WriteHeader(statusClientClosedRequest)
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "no entry found"})
	case errors.Is(err, domain.ErrUpstream), errors.Is(err, context.DeadlineExceeded):
		h.log.WarnContext(r.Context(), "upstream lookup failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: "dictionary source unavailable"})
	default:
		h.log.ErrorContext(r.Context(), "lookup failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
