// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package registry

import (
	"encoding/json"
	"errors"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"ayga/mcp/internal/bridge/model"
	apperr "ayga/mcp/internal/errors"
)

// Clean validates args against the tool schema and returns only the
// declared keys, coerced to their schema types. Undeclared keys are dropped
// and absent optional keys stay absent.
func (t Tool) Clean(args map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(args))
	for _, f := range t.Schema.fields {
		v, present := args[f.Name]
		if !present || v == nil {
			if f.Required {
				return nil, apperr.Newf(apperr.Validation, "%s is required", f.Name)
			}
			continue
		}
		switch f.Type {
		case TypeInteger:
			n, err := toInt(f.Name, v)
			if err != nil {
				return nil, err
			}
			if f.Minimum != nil && n < *f.Minimum {
				return nil, apperr.Newf(apperr.Validation, "%s must be >= %d", f.Name, *f.Minimum)
			}
			if f.Maximum != nil && n > *f.Maximum {
				return nil, apperr.Newf(apperr.Validation, "%s must be <= %d", f.Name, *f.Maximum)
			}
			out[f.Name] = n
		default:
			s, ok := v.(string)
			if !ok {
				if f.NonBlank {
					return nil, apperr.Newf(apperr.Validation, "%s is required", f.Name)
				}
				return nil, apperr.Newf(apperr.Validation, "%s must be a string", f.Name)
			}
			if f.NonBlank && strings.TrimSpace(s) == "" {
				return nil, apperr.Newf(apperr.Validation, "%s is required", f.Name)
			}
			if len(f.Enum) > 0 && !slices.Contains(f.Enum, s) {
				return nil, apperr.Newf(apperr.Validation, "%s must be one of %s", f.Name, strings.Join(f.Enum, ", "))
			}
			out[f.Name] = s
		}
	}
	return out, nil
}

// Normalize turns call arguments for a parser tool into a task submission
// and the polling deadline. Only schema-declared options are forwarded.
func (t Tool) Normalize(args map[string]any) (model.TaskSubmission, time.Duration, error) {
	if !t.IsParser() {
		return model.TaskSubmission{}, 0, apperr.Newf(apperr.Validation, "%s does not submit a task", t.Name)
	}
	clean, err := t.Clean(args)
	if err != nil {
		return model.TaskSubmission{}, 0, err
	}

	timeout := DefaultTimeoutSeconds
	if v, ok := clean["timeout"].(int); ok {
		timeout = v
	}

	sub := model.TaskSubmission{
		TaskKind: t.TaskKind,
		Query:    clean["query"].(string),
	}
	for k, v := range clean {
		if k == "query" || k == "timeout" {
			continue
		}
		if sub.Options == nil {
			sub.Options = make(map[string]any, len(clean))
		}
		sub.Options[k] = v
	}
	return sub, time.Duration(timeout) * time.Second, nil
}

// toInt accepts JSON numbers (float64 or json.Number), Go ints and numeric
// strings, and rejects anything that is not a whole number.
func toInt(name string, v any) (int, error) {
	bad := apperr.Newf(apperr.Validation, "%s must be a whole number", name)
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return floatToInt(name, n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), nil
		}
		f, err := n.Float64()
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, bad
		}
		return floatToInt(name, f)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if errors.Is(err, strconv.ErrRange) {
			return 0, apperr.Newf(apperr.Validation, "%s is out of range", name)
		}
		if err != nil {
			return 0, bad
		}
		return i, nil
	}
	return 0, bad
}

// floatToInt converts a whole float that fits in an int64.
func floatToInt(name string, f float64) (int, error) {
	if math.IsNaN(f) || f != math.Trunc(f) {
		return 0, apperr.Newf(apperr.Validation, "%s must be a whole number", name)
	}
	if math.IsInf(f, 0) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, apperr.Newf(apperr.Validation, "%s is out of range", name)
	}
	return int(f), nil
}
