// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the transport servers of the food-rescue service.
//
// It owns the listeners of the REST and gRPC health servers, starts the
// enabled ones and shuts them down gracefully when the run context ends.
package server
