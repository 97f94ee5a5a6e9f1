// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/MKhiriev/food-rescue/models"
	"github.com/go-playground/validator/v10"
)

// Struct field names accepted by [RequestValidator.Validate].
const (
	FieldLogin       = "Login"
	FieldPassword    = "Password"
	FieldRoles       = "Roles"
	FieldOldPassword = "OldPassword"
	FieldNewPassword = "NewPassword"
)

// fieldErrors maps a struct field to the sentinel reported for it.
var fieldErrors = map[string]error{
	"Login":       ErrInvalidLogin,
	"Password":    ErrInvalidPassword,
	"OldPassword": ErrInvalidPassword,
	"NewPassword": ErrInvalidPassword,
	"Name":        ErrInvalidName,
	"Quantity":    ErrInvalidQuantity,
	"ExpiryDate":  ErrInvalidExpiryDate,
	"Location":    ErrInvalidLocation,
	"Category":    ErrInvalidCategory,
	"ProofRef":    ErrInvalidProofRef,
}

// RequestValidator validates API payloads with go-playground/validator
// struct tags plus the custom tags notblank, maxbytes, calendar_date and
// category.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator builds a validator with the custom tags registered.
func NewRequestValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// registration only fails for empty tags or nil funcs
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	// bcrypt rejects passwords longer than 72 bytes, max counts runes
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= limit
	})
	_ = v.RegisterValidation("calendar_date", func(fl validator.FieldLevel) bool {
		_, err := models.ParseDate(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.Category(fl.Field().String()).Valid()
	})

	return &RequestValidator{validate: v}
}

func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.User:
		return v.validateUser(ctx, value, fields...)
	case *models.User:
		return v.validateUser(ctx, *value, fields...)

	case models.AddItemRequest:
		return v.validateStruct(ctx, value, fields...)
	case *models.AddItemRequest:
		return v.validateStruct(ctx, *value, fields...)

	case models.SubmitProofRequest:
		return v.validateStruct(ctx, value, fields...)
	case *models.SubmitProofRequest:
		return v.validateStruct(ctx, *value, fields...)

	case models.CredentialRotation:
		return v.validateStruct(ctx, value, fields...)
	case *models.CredentialRotation:
		return v.validateStruct(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateUser checks registration and login payloads. Roles are checked
// only when requested explicitly or when no fields are given.
func (v *RequestValidator) validateUser(ctx context.Context, user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLogin, FieldPassword, FieldRoles}
	}

	tagged := make([]string, 0, len(fields))
	checkRoles := false
	for _, f := range fields {
		switch f {
		case FieldLogin, FieldPassword:
			tagged = append(tagged, f)
		case FieldRoles:
			checkRoles = true
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	if err := v.validateStruct(ctx, user, tagged...); err != nil {
		return err
	}

	if checkRoles && user.Roles.Empty() {
		return ErrEmptyRoles
	}

	return nil
}

func (v *RequestValidator) validateStruct(ctx context.Context, obj any, fields ...string) error {
	var err error
	if len(fields) == 0 {
		err = v.validate.StructCtx(ctx, obj)
	} else {
		err = v.validate.StructPartialCtx(ctx, obj, fields...)
	}
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidField, err)
	}

	first := fieldErrs[0]
	if sentinel, ok := fieldErrors[first.StructField()]; ok {
		return sentinel
	}

	return fmt.Errorf("%w: %s failed on %s", ErrInvalidField, first.StructField(), first.Tag())
}
