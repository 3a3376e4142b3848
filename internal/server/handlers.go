package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/hyperjump/kotae/internal/models"
	"go.uber.org/zap"
)

const (
	maxBodyBytes = 1 << 20
	// maxHistory bounds how many trailing turns are handed to the resolver.
	maxHistory = 20
)

type queryRequest struct {
	Text    string        `json:"text"`
	Query   string        `json:"query"`
	History []models.Turn `json:"conversation_history"`
	// Accepted for clients that serialise in camelCase.
	HistoryCamel []models.Turn `json:"conversationHistory"`
}

func (q *queryRequest) question() string {
	if t := strings.TrimSpace(q.Text); t != "" {
		return t
	}
	return strings.TrimSpace(q.Query)
}

func (q *queryRequest) history() []models.Turn {
	h := q.History
	if len(h) == 0 {
		h = q.HistoryCamel
	}
	if len(h) > maxHistory {
		h = h[len(h)-maxHistory:]
	}
	return h
}

type queryResponse struct {
	RequestID string          `json:"request_id"`
	Response  string          `json:"response"`
	Items     []models.Record `json:"items"`
	ItemType  string          `json:"item_type"`
	Metadata  models.Metadata `json:"metadata"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	question := req.question()
	if question == "" {
		s.respondError(w, http.StatusBadRequest, "text is required")
		return
	}
	requestID := uuid.New().String()
	history := req.history()
	s.logger.Debug("query request",
		zap.String("request_id", requestID),
		zap.String("text", question),
		zap.Int("history", len(history)),
	)

	ctx := r.Context()
	res := s.processor.Query(ctx, question, history)
	res = s.narrator.Apply(ctx, question, res)

	s.logger.Debug("query answered",
		zap.String("request_id", requestID),
		zap.String("item_type", res.ItemType),
		zap.Int("items", len(res.Items)),
	)
	s.respondJSON(w, http.StatusOK, queryResponse{
		RequestID: requestID,
		Response:  res.ResponseText,
		Items:     res.Items,
		ItemType:  res.ItemType,
		Metadata:  res.Metadata,
	})
}

func (s *Server) handleCorpus(w http.ResponseWriter, r *http.Request) {
	counts := s.processor.Corpus().Counts()
	total := 0
	for _, n := range counts {
		total += n
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"counts": counts,
		"total":  total,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
