// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/food-rescue/internal/config"
	"github.com/MKhiriev/food-rescue/internal/logger"
	"github.com/MKhiriev/food-rescue/internal/store"
	"github.com/MKhiriev/food-rescue/internal/utils"
	"github.com/MKhiriev/food-rescue/internal/validators"
	"github.com/MKhiriev/food-rescue/models"
)

// dummyPasswordHash is compared against when a login is unknown so that
// both failure paths cost one bcrypt comparison.
var dummyPasswordHash = sync.OnceValue(func() string {
	hash, _ := utils.HashPassword("food-rescue-unknown-login")
	return hash
})

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and bcrypt for
// password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	validator validators.Validator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, validator validators.Validator, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		validator:      validator,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// Register creates a new user account.
//
// Login, Password and Roles are validated, the password is replaced by its
// bcrypt hash and the user is persisted.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided wrapping the validation error.
//   - store.ErrLoginAlreadyExists when the login is taken.
func (a *authService) Register(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, user); err != nil {
		log.Debug().Err(err).Str("login", user.Login).Msg("invalid user data provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	hash, err := utils.HashPassword(user.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("error hashing password")
		return models.User{}, err
	}
	user.PasswordHash = hash
	user.Password = ""

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Authenticate checks a login/password pair.
//
// Returns the principal of the user or:
//   - ErrInvalidDataProvided if login or password is empty.
//   - ErrInvalidCredentials for an unknown login or a wrong password.
func (a *authService) Authenticate(ctx context.Context, login, password string) (models.Principal, error) {
	log := logger.FromContext(ctx)

	candidate := models.User{Login: login, Password: password}
	if err := a.validator.Validate(ctx, candidate, validators.FieldLogin, validators.FieldPassword); err != nil {
		return models.Principal{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	foundUser, err := a.userRepository.FindUserByLogin(ctx, login)
	if errors.Is(err, store.ErrUserNotFound) {
		_ = utils.CheckPassword(dummyPasswordHash(), password)
		log.Debug().Str("login", login).Msg("login attempt for unknown user")
		return models.Principal{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("login", login).Msg("user search by login failed")
		return models.Principal{}, fmt.Errorf("user search by login failed: %w", err)
	}

	if err = a.checkPassword(ctx, foundUser, password); err != nil {
		return models.Principal{}, err
	}

	return foundUser.Principal(), nil
}

// RotateCredential replaces the password of principal after verifying the
// old one.
func (a *authService) RotateCredential(ctx context.Context, principal models.Principal, rotation models.CredentialRotation) error {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, rotation); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	foundUser, err := a.userRepository.FindUserByID(ctx, principal.UserID)
	if errors.Is(err, store.ErrUserNotFound) {
		return ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Int64("user_id", principal.UserID).Msg("user search by id failed")
		return fmt.Errorf("user search by id failed: %w", err)
	}

	if err = a.checkPassword(ctx, foundUser, rotation.OldPassword); err != nil {
		return err
	}

	hash, err := utils.HashPassword(rotation.NewPassword)
	if err != nil {
		log.Err(err).Str("func", "*authService.RotateCredential").Msg("error hashing password")
		return err
	}

	if err = a.userRepository.UpdatePasswordHash(ctx, foundUser.UserID, hash); err != nil {
		log.Err(err).Int64("user_id", foundUser.UserID).Msg("password update failed")
		return fmt.Errorf("password update failed: %w", err)
	}

	log.Info().Int64("user_id", foundUser.UserID).Msg("password rotated")
	return nil
}

func (a *authService) checkPassword(ctx context.Context, user models.User, password string) error {
	err := utils.CheckPassword(user.PasswordHash, password)
	if errors.Is(err, utils.ErrPasswordMismatch) {
		logger.FromContext(ctx).Debug().
			Int64("id", user.UserID).
			Str("login", user.Login).
			Msg("wrong password")
		return ErrInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("error checking password: %w", err)
	}
	return nil
}

// CreateToken issues a signed JWT for the given principal.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, the login and roles as private claims, and
// expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, principal models.Principal) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, principal, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect
// low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
