// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("POST /allocations", middleware.WithLogging(handler))

Logs completion with method, path, status, and duration_ms. Responses with
a 5xx status are logged at error level.

# Metrics

WithMetrics counts every request by method and status and observes its
latency:

	server := http.Server{
		Handler: middleware.WithMetrics(middleware.CORS(mux)),
	}

# CORS Middleware

Allows methods GET, POST, DELETE, OPTIONS with headers Content-Type and
X-Admin-Key. Preflight requests are answered with 204.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.KindErrorResponse(w, http.StatusUnprocessableEntity, "infeasible_floor", err.Error())

Parse JSON request bodies (capped at MaxBodyBytes):

	var req models.AllocateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
