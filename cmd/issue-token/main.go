// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

// Command issue-token prints a signed bearer token for local testing.
//
// It reads JWT_SECRET and SESSION_TIMEOUT the same way the server does:
//
//	issue-token -user 3f1c... -role USER
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tomtom215/bookworm/internal/auth"
	"github.com/tomtom215/bookworm/internal/config"
	"github.com/tomtom215/bookworm/internal/database"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "issue-token:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("issue-token", flag.ContinueOnError)
	userID := fs.String("user", "", "user id to place in the sub claim")
	seedEmail := fs.String("seed-user", "", "email of a demo seed user, instead of -user")
	role := fs.String("role", "USER", "role claim")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *userID == "" && *seedEmail != "" {
		*userID = database.SeedID("user", *seedEmail)
	}
	if *userID == "" {
		return errors.New("-user or -seed-user is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	manager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		return err
	}

	token, err := manager.GenerateToken(*userID, *role)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}

	_, err = fmt.Fprintln(out, token)
	return err
}
