package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"

	"github.com/teranos/contractq/draft"
	"github.com/teranos/contractq/errors"
	"github.com/teranos/contractq/journal"
	"github.com/teranos/contractq/logger"
	"github.com/teranos/contractq/metrics"
	"github.com/teranos/contractq/nlq/types"
	"github.com/teranos/contractq/version"
)

// ClassifyRequest is the body of POST /api/classify
type ClassifyRequest struct {
	Query *string `json:"query" validate:"required"`
}

// BatchRequest is the body of POST /api/classify/batch
type BatchRequest struct {
	Queries     []string `json:"queries" validate:"required,min=1"`
	Concurrency int      `json:"concurrency,omitempty" validate:"gte=0,lte=64"`
}

// BatchResponse carries results in request order
type BatchResponse struct {
	Results []types.Result `json:"results"`
}

// StatsResponse is served by GET /api/stats
type StatsResponse struct {
	Metrics metrics.Snapshot `json:"metrics"`
	Journal *journal.Summary `json:"journal,omitempty"`
}

// HealthResponse is served by GET /health
type HealthResponse struct {
	Status  string       `json:"status"`
	Version version.Info `json:"version"`
	Journal bool         `json:"journal"`
}

// HandleClassify classifies one query
func (s *Server) HandleClassify(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req ClassifyRequest
	if err := readJSON(w, r, &req); err != nil {
		return
	}
	if err := s.validateRequest(req); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	if err := s.validateQuery(*req.Query); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}

	result := s.classifier.Classify(*req.Query)
	s.record(r.Context(), result)
	writeJSON(w, http.StatusOK, result)
}

// HandleClassifyBatch classifies many queries concurrently
func (s *Server) HandleClassifyBatch(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req BatchRequest
	if err := readJSON(w, r, &req); err != nil {
		return
	}
	if err := s.validateRequest(req); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	if s.cfg.MaxBatchSize > 0 && len(req.Queries) > s.cfg.MaxBatchSize {
		writeErr(w, http.StatusBadRequest, errors.WithHintf(
			errors.NewInvalidRequestError("batch of %d queries exceeds the limit", len(req.Queries)),
			"send at most %d queries per batch", s.cfg.MaxBatchSize,
		))
		return
	}
	for i, q := range req.Queries {
		if err := s.validateQuery(q); err != nil {
			writeErr(w, http.StatusBadRequest, errors.Wrapf(err, "queries[%d]", i))
			return
		}
	}

	results, err := s.classifier.ClassifyBatch(r.Context(), req.Queries, req.Concurrency)
	if err != nil {
		// the client went away
		return
	}
	for _, res := range results {
		s.record(r.Context(), res)
	}
	logger.FromContext(r.Context(), s.logger).Debugw("Batch classified", logger.FieldBatchSize, len(results))
	writeJSON(w, http.StatusOK, BatchResponse{Results: results})
}

// HandleDiagnose returns the stage trace for ?q=
func (s *Server) HandleDiagnose(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	q := r.URL.Query().Get("q")
	if q == "" {
		writeErr(w, http.StatusBadRequest, errors.NewInvalidRequestError("missing query parameter q"))
		return
	}
	if err := s.validateQuery(q); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, s.classifier.Diagnose(q))
}

// HandleStats returns the metrics snapshot and, when enabled, the journal summary
func (s *Server) HandleStats(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	resp := StatsResponse{Metrics: s.metrics.Snapshot()}
	if s.journal != nil {
		summary, err := s.journal.Summary(r.Context())
		if err != nil {
			logger.FromContext(r.Context(), s.logger).Warnw("Journal summary failed", logger.FieldError, err)
		} else {
			resp.Journal = summary
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleHistory lists recent journal entries
func (s *Server) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	if s.journal == nil {
		writeErr(w, http.StatusNotFound, errors.WithHint(
			errors.Wrap(errors.ErrNotFound, "journal is disabled"),
			"set journal.enabled = true in am.toml",
		))
		return
	}
	limit := journal.DefaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeErr(w, http.StatusBadRequest, errors.NewInvalidRequestError("limit must be a positive integer, got %q", v))
			return
		}
		limit = n
	}
	entries, err := s.journal.Recent(r.Context(), limit)
	if err != nil {
		logger.FromContext(r.Context(), s.logger).Errorw("Journal read failed", logger.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to read journal")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// HandleHealth reports liveness
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: version.Get(),
		Journal: s.journal != nil,
	})
}

// HandleWebSocket classifies each text frame and answers with the result
// as a JSON frame. Frames that fail validation get an error frame; the
// connection stays open.
//
// A query asking the assistant to create a contract is answered with its
// result followed by a draft frame. While the draft is active, each frame
// answers the draft's current prompt instead of being classified.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.FromContext(r.Context(), s.logger).Warnw("WebSocket upgrade failed", logger.FieldError, err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxBodyBytes)

	log := logger.FromContext(r.Context(), s.logger)
	var d *draft.Draft
	for {
		kind, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warnw("WebSocket read failed", logger.FieldError, err)
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}

		query := string(msg)
		var replies []interface{}
		switch err := s.validateQuery(query); {
		case err != nil:
			replies = append(replies, errorResponse{Error: err.Error(), Hint: errors.FlattenHints(err)})
		case d != nil && d.Active():
			reply := d.Answer(query)
			if reply.Status == draft.StatusComplete {
				log.Infow("Contract draft complete", logger.FieldDraftID, d.ID)
			}
			replies = append(replies, reply)
		default:
			result := s.classifier.Classify(query)
			s.record(r.Context(), result)
			replies = append(replies, result)
			if result.Intent() == types.IntentHelpCreateContractBot {
				var reply draft.Reply
				d, reply = draft.Start(query)
				log.Debugw("Contract draft started", logger.FieldDraftID, d.ID)
				replies = append(replies, reply)
			}
		}
		for _, reply := range replies {
			if err := conn.WriteJSON(reply); err != nil {
				log.Warnw("WebSocket write failed", logger.FieldError, err)
				return
			}
		}
	}
}

func (s *Server) validateRequest(req interface{}) error {
	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return errors.NewInvalidRequestError("field %s failed %s", fe.Field(), fe.Tag())
		}
		return errors.Wrap(errors.ErrInvalidRequest, err.Error())
	}
	return nil
}

func (s *Server) validateQuery(q string) error {
	if s.cfg.MaxQueryLength <= 0 {
		return nil
	}
	if err := s.validate.Var(q, fmt.Sprintf("max=%d", s.cfg.MaxQueryLength)); err != nil {
		return errors.WithHintf(
			errors.NewInvalidRequestError("query is longer than %d characters", s.cfg.MaxQueryLength),
			"shorten the query or split it into several",
		)
	}
	return nil
}

// record appends to the journal when one is configured. Journal failures
// never fail the request.
func (s *Server) record(ctx context.Context, r types.Result) {
	if s.journal == nil {
		return
	}
	if _, err := s.journal.Record(ctx, r); err != nil {
		logger.FromContext(ctx, s.logger).Warnw("Journal write failed", logger.FieldError, err)
	}
}
