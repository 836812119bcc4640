// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is built lazily and shared; it caches struct
// metadata, so it is cheap to call on every catalog query. One custom tag is
// registered on top of the built-ins: notblank, which requires a string with a
// non-whitespace character.
//
// Example:
//
//	type CandidateQuery struct {
//	    ExcludeIDs []string `validate:"dive,notblank"`
//	    Limit      int      `validate:"min=1,max=100"`
//	}
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    return fmt.Errorf("%w: %s", ErrInvalidQuery, verr.Error())
//	}
package validation
