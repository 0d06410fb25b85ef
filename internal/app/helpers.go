// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/labstack/echo/v4"
)

const (
	statusEndpoint = "/api/v1/status"
	defaultSource  = "request"
	maxLines       = 10000
)

func skipLog(c echo.Context) bool {
	userAgent := c.Request().Header.Get("User-Agent")
	path := c.Request().URL.Path
	method := c.Request().Method

	if (strings.HasPrefix(userAgent, "curl") || strings.HasPrefix(userAgent, "kube-probe")) &&
		path == statusEndpoint &&
		method == http.MethodGet {
		return true
	}
	return false
}

func logError(ctx echo.Context, msg string, err error) {
	ctx.Logger().Errorf("(%s): %s: %v", ctx.Path(), msg, err)
}

func logWarn(ctx echo.Context, msg string) {
	ctx.Logger().Warnf("(%s): %s", ctx.Path(), msg)
}

func httpError(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, HTTPError{
		Code:    code,
		Message: message,
	})
}

// getRequiredString reads a string field of a JSON object.
func getRequiredString(body []byte, key string) (string, error) {
	if !json.Valid(body) {
		return "", errors.New("malformed json body")
	}
	value, err := jsonparser.GetString(body, key)
	if errors.Is(err, jsonparser.KeyPathNotFoundError) {
		return "", fmt.Errorf("missing field %q", key)
	} else if err != nil {
		return "", fmt.Errorf("field %q: %w", key, err)
	}
	return value, nil
}

// parseAnalysisRequest reads {"source": string, "lines": [string...]}. The source is
// optional. Lines are trimmed of surrounding whitespace.
func parseAnalysisRequest(body []byte) (string, []string, error) {
	if !json.Valid(body) {
		return "", nil, errors.New("malformed json body")
	}

	source, err := jsonparser.GetString(body, "source")
	if errors.Is(err, jsonparser.KeyPathNotFoundError) {
		source = defaultSource
	} else if err != nil {
		return "", nil, fmt.Errorf("field \"source\": %w", err)
	}
	if strings.TrimSpace(source) == "" {
		source = defaultSource
	}

	if _, dataType, _, err := jsonparser.Get(body, "lines"); err != nil {
		return "", nil, fmt.Errorf("missing field %q", "lines")
	} else if dataType != jsonparser.Array {
		return "", nil, fmt.Errorf("field %q is not an array", "lines")
	}

	lines := []string{}
	var itemErr error
	_, err = jsonparser.ArrayEach(body, func(value []byte, dataType jsonparser.ValueType, _ int, _ error) {
		if itemErr != nil {
			return
		}
		if dataType != jsonparser.String {
			itemErr = fmt.Errorf("line %d is not a string", len(lines)+1)
			return
		}
		line, err := jsonparser.ParseString(value)
		if err != nil {
			itemErr = fmt.Errorf("line %d: %w", len(lines)+1, err)
			return
		}
		lines = append(lines, strings.TrimSpace(line))
	}, "lines")
	if err != nil {
		return "", nil, fmt.Errorf("field \"lines\": %w", err)
	}
	if itemErr != nil {
		return "", nil, itemErr
	}
	if len(lines) > maxLines {
		return "", nil, fmt.Errorf("too many lines: %d > %d", len(lines), maxLines)
	}
	return source, lines, nil
}
