package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/thinklet/thinklet/internal/apperr"
	"github.com/thinklet/thinklet/internal/hash"
	"github.com/thinklet/thinklet/internal/logging"
	"github.com/thinklet/thinklet/internal/repo"
	"github.com/thinklet/thinklet/internal/transport"
)

type ProfileService struct {
	Repo *repo.GormRepo
}

func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req transport.UpdateProfileRequest) (*transport.UserResponse, error) {
	fields := identityFields{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	fields.normalize()

	violations := fields.violations()
	prefIDs, prefErrs := parsePreferences(req.Preferences)
	violations = append(violations, prefErrs...)
	if len(violations) > 0 {
		return nil, apperr.Validation(strings.Join(violations, ", "))
	}

	cats, err := s.Repo.FindCategories(ctx, prefIDs)
	if err != nil {
		return nil, err
	}
	if len(cats) != 3 {
		return nil, apperr.InvalidPreference()
	}

	user, err := s.Repo.UpdateProfile(ctx, userID, repo.ProfilePatch{
		FirstName: fields.FirstName,
		LastName:  fields.LastName,
		Email:     fields.Email,
		Phone:     fields.Phone,
	}, cats)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, apperr.UserNotFound()
		}
		return nil, err
	}

	resp := projectUser(user, prefIDs)
	return &resp, nil
}

func (s *ProfileService) UpdateProfileImage(ctx context.Context, userID uuid.UUID, profileURL string) (*transport.UserResponse, error) {
	if strings.TrimSpace(profileURL) == "" {
		return nil, apperr.MissingFields("No profile image provided")
	}

	user, err := s.Repo.UpdateProfileImage(ctx, userID, strings.TrimSpace(profileURL))
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, apperr.UserNotFound()
		}
		return nil, err
	}

	resp := projectUser(user, nil)
	return &resp, nil
}

func (s *ProfileService) ChangePassword(ctx context.Context, userID uuid.UUID, req transport.ChangePasswordRequest) error {
	l := logging.FromContext(ctx).With("svc", "profile.change_password")

	if req.CurrentPassword == "" || req.NewPassword == "" || req.ConfirmPassword == "" {
		return apperr.MissingFields("Please provide all required fields")
	}

	violations := passwordViolations(req.NewPassword)
	if req.NewPassword != req.ConfirmPassword {
		violations = append(violations, "Passwords do not match")
	}
	if len(violations) > 0 {
		return apperr.Validation(strings.Join(violations, ", "))
	}

	user, err := s.Repo.FindUserByID(ctx, userID)
	if err != nil {
		if repo.IsNotFound(err) {
			return apperr.UserNotFound()
		}
		return err
	}

	if !hash.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		return apperr.InvalidCredentials()
	}

	pwHash, err := hash.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdatePassword(ctx, userID, pwHash); err != nil {
		return err
	}

	l.Info("password_changed", "user_id", userID)
	return nil
}
