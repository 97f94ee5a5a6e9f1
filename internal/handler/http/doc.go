// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST transport of the food-rescue server.
//
// It wires chi routes for registration, inventory, claims and delivery
// proofs to the service layer. Request tracing, access logging, gzip
// negotiation and bearer token authentication are applied as middleware.
// Service and store errors are mapped to HTTP statuses in one place
// (errorStatusMap) and rendered as {"error": "..."} bodies.
package http
