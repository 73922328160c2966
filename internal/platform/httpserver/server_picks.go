package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	pickerrors "picklog/contexts/robot-operations/pick-event-log/domain/errors"
	pickhttp "picklog/contexts/robot-operations/pick-event-log/transport/http"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	maxPickBodyBytes = 1 << 20

	messageMethodNotAllowed = "Method not allowed"
	messageFieldsRequired   = "Both robot_id and item_id are required"
	messageInvalidJSON      = "request body must be valid JSON"
	messageBodyTooLarge     = "request body is too large"
	messageInternalError    = "Internal server error"
)

const pickRequestSchemaURL = "https://picklog.schemas.local/pick-request.schema.json"

const pickRequestSchemaJSON = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["robot_id", "item_id"],
	"properties": {
		"robot_id": {"type": "string", "minLength": 1},
		"item_id": {"type": "string", "minLength": 1}
	}
}`

var pickRequestSchema = mustCompileSchema(pickRequestSchemaURL, pickRequestSchemaJSON)

func mustCompileSchema(url string, schema string) *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(url, strings.NewReader(schema)); err != nil {
		panic(fmt.Sprintf("load schema %s: %v", url, err))
	}
	compiled, err := c.Compile(url)
	if err != nil {
		panic(fmt.Sprintf("compile schema %s: %v", url, err))
	}
	return compiled
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, pickhttp.ErrorResponse{Message: message})
}

func requireMethod(w http.ResponseWriter, r *http.Request, allowed ...string) bool {
	for _, method := range allowed {
		if r.Method == method {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeMessage(w, http.StatusMethodNotAllowed, messageMethodNotAllowed)
	return false
}

func (s *Server) writePickDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, pickerrors.ErrInvalidPickRequest),
		errors.Is(err, pickerrors.ErrInvalidPickEvent):
		writeMessage(w, http.StatusBadRequest, messageFieldsRequired)
	default:
		s.logger.Error("pick request failed",
			"event", "http_pick_request_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"path", r.URL.Path,
			"request_id", requestIDFromContext(r.Context()),
			"error", err.Error(),
		)
		writeMessage(w, http.StatusInternalServerError, messageInternalError)
	}
}

// decodePickRequest validates the body against the pick request schema before
// binding it, so wrong types and missing keys surface as the same 400.
func decodePickRequest(w http.ResponseWriter, r *http.Request) (pickhttp.CreatePickRequest, int, string) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPickBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return pickhttp.CreatePickRequest{}, http.StatusRequestEntityTooLarge, messageBodyTooLarge
		}
		return pickhttp.CreatePickRequest{}, http.StatusBadRequest, messageInvalidJSON
	}

	var document any
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&document); err != nil {
		return pickhttp.CreatePickRequest{}, http.StatusBadRequest, messageInvalidJSON
	}
	if err := pickRequestSchema.Validate(document); err != nil {
		return pickhttp.CreatePickRequest{}, http.StatusBadRequest, messageFieldsRequired
	}

	var req pickhttp.CreatePickRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return pickhttp.CreatePickRequest{}, http.StatusBadRequest, messageInvalidJSON
	}
	return req, 0, ""
}

func (s *Server) handleCreatePick(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	req, status, message := decodePickRequest(w, r)
	if status != 0 {
		writeMessage(w, status, message)
		return
	}

	resp, err := s.picks.Handler.CreatePickHandler(r.Context(), requestIDFromContext(r.Context()), req)
	if err != nil {
		s.writePickDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	resp, err := s.picks.Handler.ListEventsHandler(r.Context(), r.URL.Query().Get("robot_id"))
	if err != nil {
		s.writePickDomainError(w, r, err)
		return
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(resp.Total))
	w.Header().Set("X-Pick-Log-Capacity", strconv.Itoa(resp.Capacity))
	writeJSON(w, http.StatusOK, resp.Items)
}
