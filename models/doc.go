// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package models defines the request, response and domain types shared by
// the bingo engine, the stores and the HTTP handlers. Domain types carry
// both json and bson tags.
package models
