// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/afrolatino/marketplace/internal/platform/apperr"
	"github.com/afrolatino/marketplace/internal/users/auth"
	"github.com/afrolatino/marketplace/pkg/pagination"
)

// # Service Layer

// Service orchestrates business logic for user account administration.
type Service struct {
	userRepository auth.UserRepository
	listRepository ListRepository
	logger         *slog.Logger
}

// NewService constructs a new [Service] with its repository dependencies.
func NewService(userRepo auth.UserRepository, listRepo ListRepository, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		listRepository: listRepo,
		logger:         logger,
	}
}

// # User Administration

/*
List returns a page of registered users for the admin dashboard.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []*auth.User: The requested page
  - int: Total account count
  - error: Retrieval failures
*/
func (service *Service) List(context context.Context, params pagination.Params) ([]*auth.User, int, error) {
	users, total, err := service.listRepository.List(context, params)
	if err != nil {
		return nil, 0, fmt.Errorf("account_service_list_failed: %w", err)
	}
	return users, total, nil
}

// # Profile Management

// UpdateProfileInput defines the mutable subset of user profile fields.
//
// The password hash and admin flag are intentionally absent; neither can
// be changed through this path regardless of who the actor is.
type UpdateProfileInput struct {
	Name    *string
	Picture *string
	Phone   *string
	Address *string
}

/*
UpdateProfile applies a partial set of changes to a user's account metadata.

Description: Enforces the owner-or-admin rule, fetches the existing user
state, overlays provided fields, and synchronizes the change to storage.

Parameters:
  - context: context.Context
  - actor: *auth.User (The authenticated caller)
  - targetID: string (The account being modified)
  - input: UpdateProfileInput

Returns:
  - *auth.User: The updated user profile
  - error: Forbidden, not found, or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, actor *auth.User, targetID string, input UpdateProfileInput) (*auth.User, error) {

	// Owner-or-admin: members can only edit themselves.
	if actor.ID != targetID && !actor.IsAdmin {
		return nil, apperr.Forbidden("You can only update your own profile")
	}

	user, err := service.userRepository.FindByID(context, targetID)
	if err != nil {
		return nil, err
	}

	// Apply delta updates
	if input.Name != nil {
		user.Name = *input.Name
	}

	if input.Picture != nil {
		user.Picture = *input.Picture
	}

	if input.Phone != nil {
		user.Phone = *input.Phone
	}

	if input.Address != nil {
		user.Address = *input.Address
	}

	// Persist changes
	if err := service.userRepository.Update(context, user); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.Info("user_profile_updated",
		slog.String("user_id", targetID),
		slog.String("actor_id", actor.ID),
	)

	return user, nil
}
