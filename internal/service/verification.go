package service

import (
	"context"

	"github.com/vivahlink/console/internal/cache"
	"github.com/vivahlink/console/internal/domain/profile"
	ierr "github.com/vivahlink/console/internal/errors"
	"github.com/vivahlink/console/internal/types"
)

// VerificationService drives the profile verification state machine. Every
// transition is guarded locally before the backend is called, so an illegal
// action (rejecting without a reason, approving an already-rejected profile)
// never reaches the resource client.
type VerificationService interface {
	Approve(ctx context.Context, id string) (*profile.Profile, error)
	Reject(ctx context.Context, id, reason string) (*profile.Profile, error)
	Reapply(ctx context.Context, id string) (*profile.Profile, error)
}

type verificationService struct {
	ServiceParams
	executor MutationExecutor
}

func NewVerificationService(params ServiceParams, executor MutationExecutor) VerificationService {
	return &verificationService{ServiceParams: params, executor: executor}
}

// verificationInvalidations is the scope every verification transition
// dirties: all profile pages plus the dashboard counters.
func verificationInvalidations() []cache.KeyPattern {
	return []cache.KeyPattern{
		cache.PatternFor(cache.ResourceProfiles),
		cache.PatternFor(cache.ResourceStats),
	}
}

func (s *verificationService) Approve(ctx context.Context, id string) (*profile.Profile, error) {
	if !types.IsModerator(ctx) {
		return nil, ierr.NewError("approving profiles requires moderation capability").
			WithHint("You are not allowed to approve profiles").
			Mark(ierr.ErrPermissionDenied)
	}

	return s.transition(ctx, id, types.VerificationActionApprove, "", func(ctx context.Context) (*profile.Profile, error) {
		return s.ProfileRepo.Approve(ctx, id)
	})
}

func (s *verificationService) Reject(ctx context.Context, id, reason string) (*profile.Profile, error) {
	if !types.IsModerator(ctx) {
		return nil, ierr.NewError("rejecting profiles requires moderation capability").
			WithHint("You are not allowed to reject profiles").
			Mark(ierr.ErrPermissionDenied)
	}

	return s.transition(ctx, id, types.VerificationActionReject, reason, func(ctx context.Context) (*profile.Profile, error) {
		return s.ProfileRepo.Reject(ctx, id, reason)
	})
}

func (s *verificationService) Reapply(ctx context.Context, id string) (*profile.Profile, error) {
	current, err := s.ProfileRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	// Re-apply is owner-initiated; moderators cannot push a rejected
	// profile back into the review queue on the owner's behalf.
	if current.UserID != types.GetActorID(ctx) {
		return nil, ierr.NewError("only the profile owner can re-apply").
			WithHint("Re-apply must be requested by the profile owner").
			Mark(ierr.ErrPermissionDenied)
	}

	return s.applyTransition(ctx, current, types.VerificationActionReapply, "", func(ctx context.Context) (*profile.Profile, error) {
		return s.ProfileRepo.Reapply(ctx, id)
	})
}

func (s *verificationService) transition(
	ctx context.Context,
	id string,
	action types.VerificationAction,
	reason string,
	call func(ctx context.Context) (*profile.Profile, error),
) (*profile.Profile, error) {
	if id == "" {
		return nil, ierr.NewError("profile ID is required").
			WithHint("Please provide a valid profile ID").
			Mark(ierr.ErrValidation)
	}

	current, err := s.ProfileRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.applyTransition(ctx, current, action, reason, call)
}

// applyTransition guards the state machine, performs the backend call
// through the executor and returns the updated profile. Status and
// rejection reason always change in the same backend operation; there is no
// observable intermediate where one moved without the other.
func (s *verificationService) applyTransition(
	ctx context.Context,
	current *profile.Profile,
	action types.VerificationAction,
	reason string,
	call func(ctx context.Context) (*profile.Profile, error),
) (*profile.Profile, error) {
	if _, err := current.VerificationStatus.Transition(action, reason); err != nil {
		return nil, err
	}

	var updated *profile.Profile
	err := s.executor.Execute(ctx, Mutation{
		Name: "profile." + string(action),
		Run: func(ctx context.Context) error {
			var err error
			updated, err = call(ctx)
			return err
		},
		Invalidates: verificationInvalidations(),
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
