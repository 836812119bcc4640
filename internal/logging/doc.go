// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

// Package logging provides the zerolog-based structured logger shared by every
// BookWorm component.
//
// A single global logger is configured once at startup and read through
// package-level helpers:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("user_id", id).Msg("recommendations served")
//
// Request-scoped fields travel on the context. The HTTP layer stores a request
// id and a short correlation id, and Ctx adds both to every event:
//
//	logging.Ctx(ctx).Warn().Err(err).Msg("catalog read failed")
//
// Components that hold their own logger derive it with WithComponent and pass
// it by value. Libraries that only speak log/slog (the suture supervisor) get
// an adapter from NewSlogLogger.
//
// Environment variables (read by the config package, not here):
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: include file:line (default: false)
package logging
