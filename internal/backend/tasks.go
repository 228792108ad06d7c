// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"net/http"

	"ayga/mcp/internal/bridge/model"
	apperr "ayga/mcp/internal/errors"
)

// executeRequest is the body of POST /parsers/{id}/execute.
type executeRequest struct {
	Query   string         `json:"query"`
	Options map[string]any `json:"options,omitempty"`
}

// Submit calls POST /parsers/{id}/execute and returns the task handle.
func (h *HTTP) Submit(ctx context.Context, sub model.TaskSubmission) (model.TaskHandle, error) {
	op := "submit " + sub.TaskKind
	req, err := h.newRequest(ctx, http.MethodPost, expand(h.endpoints.Execute, sub.TaskKind), executeRequest{
		Query:   sub.Query,
		Options: sub.Options,
	})
	if err != nil {
		return model.TaskHandle{}, apperr.Wrap(apperr.Submission, op+" failed", err)
	}
	code, body, err := h.send(ctx, req, true)
	if err != nil {
		return model.TaskHandle{}, err
	}
	if code < 200 || code > 299 {
		return model.TaskHandle{}, statusError(apperr.Submission, op, code, body)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		return model.TaskHandle{}, apperr.Wrap(apperr.Submission, op+" returned an unreadable response", err).WithStatus(code)
	}
	id := extractTaskID(result)
	if id == "" {
		return model.TaskHandle{}, apperr.New(apperr.Submission, "no task_id in "+op+" response").WithStatus(code)
	}
	return model.TaskHandle{TaskID: id}, nil
}

// Poll calls GET /results/{task_id} once.
// 200 is a ready result; 202 and 404 both mean the task is still pending,
// since executor versions differ on which one they send.
func (h *HTTP) Poll(ctx context.Context, th model.TaskHandle) (model.PollOutcome, error) {
	req, err := h.newRequest(ctx, http.MethodGet, expand(h.endpoints.Result, th.TaskID), nil)
	if err != nil {
		return model.PollOutcome{}, apperr.Wrap(apperr.Executor, "fetch result failed", err)
	}
	code, body, err := h.send(ctx, req, true)
	if err != nil {
		return model.PollOutcome{}, err
	}

	switch code {
	case http.StatusOK:
		if !json.Valid(body) {
			return model.PollOutcome{}, apperr.Newf(apperr.Executor, "result for task %s is not valid JSON", th.TaskID).WithStatus(code)
		}
		return model.Ready(json.RawMessage(body)), nil
	case http.StatusAccepted, http.StatusNotFound:
		return model.Pending, nil
	default:
		return model.PollOutcome{}, statusError(apperr.Executor, "fetch result for task "+th.TaskID, code, body)
	}
}
