// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks incoming requests before they reach storage.
//
// Validators are injected into services and return sentinel errors from
// this package, so callers can map failures with errors.Is.
package validators

import "context"

// Validator validates an input value. When field names are given only
// those struct fields are checked.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
