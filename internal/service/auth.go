package service

import (
	"context"
	"strings"

	"github.com/thinklet/thinklet/internal/apperr"
	"github.com/thinklet/thinklet/internal/events"
	"github.com/thinklet/thinklet/internal/hash"
	"github.com/thinklet/thinklet/internal/logging"
	"github.com/thinklet/thinklet/internal/models"
	"github.com/thinklet/thinklet/internal/repo"
	"github.com/thinklet/thinklet/internal/tokens"
	"github.com/thinklet/thinklet/internal/transport"
)

type AuthService struct {
	Repo   *repo.GormRepo
	Codec  *tokens.Codec
	Events *events.Producer
}

type SessionResult struct {
	User         transport.UserResponse
	AccessToken  string
	RefreshToken string
}

func (s *AuthService) Signup(ctx context.Context, req transport.SignupRequest) (*SessionResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signup")

	var missing []string
	if strings.TrimSpace(req.FirstName) == "" {
		missing = append(missing, "First name is required")
	}
	if strings.TrimSpace(req.LastName) == "" {
		missing = append(missing, "Last name is required")
	}
	if strings.TrimSpace(req.Phone) == "" {
		missing = append(missing, "Phone number is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		missing = append(missing, "Email is required")
	}
	if req.Password == "" {
		missing = append(missing, "Password is required")
	}
	if req.ConfirmPassword == "" {
		missing = append(missing, "Confirm password is required")
	}
	if len(req.Preferences) == 0 {
		missing = append(missing, "Preferences are required")
	}
	if len(missing) > 0 {
		return nil, apperr.MissingFields(strings.Join(missing, ", "))
	}

	fields := identityFields{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	fields.normalize()

	violations := fields.violations()
	violations = append(violations, passwordViolations(req.Password)...)
	if req.Password != req.ConfirmPassword {
		violations = append(violations, "Passwords do not match")
	}
	prefIDs, prefErrs := parsePreferences(req.Preferences)
	violations = append(violations, prefErrs...)

	if len(violations) > 0 {
		return nil, apperr.Validation(strings.Join(violations, ", "))
	}

	taken, err := s.Repo.EmailTaken(ctx, fields.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.UserExists()
	}

	cats, err := s.Repo.FindCategories(ctx, prefIDs)
	if err != nil {
		return nil, err
	}
	if len(cats) != 3 {
		return nil, apperr.InvalidPreference()
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		FirstName:    fields.FirstName,
		LastName:     fields.LastName,
		Phone:        fields.Phone,
		Email:        fields.Email,
		PasswordHash: pwHash,
		Preferences:  cats,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		return nil, err
	}

	accessToken, err := s.Codec.IssueAccessToken(user.ID.String(), "user")
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.Codec.IssueRefreshToken(user.ID.String(), "user")
	if err != nil {
		return nil, err
	}

	if err := s.Events.PublishEvent(ctx, "user_events", user.ID.String(), map[string]any{
		"type":   "user_registered",
		"userId": user.ID,
		"email":  user.Email,
	}); err != nil {
		l.Error("event_publish_failed", "error", err)
	}

	l.Info("signup_successful", "user_id", user.ID)
	return &SessionResult{
		User:         projectUser(&user, prefIDs),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Login looks the user up by email first, then by phone. A miss on both
// and a wrong password report the same INVALID_CREDENTIALS code so the
// response does not leak which one was wrong.
func (s *AuthService) Login(ctx context.Context, emailOrPhone, password string) (*SessionResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	emailOrPhone = strings.TrimSpace(emailOrPhone)
	if emailOrPhone == "" || password == "" {
		return nil, apperr.MissingFields("Please provide all required fields")
	}

	user, err := s.Repo.FindUserByEmail(ctx, strings.ToLower(emailOrPhone))
	if err != nil {
		if !repo.IsNotFound(err) {
			return nil, err
		}
		user, err = s.Repo.FindUserByPhone(ctx, emailOrPhone)
		if err != nil {
			if repo.IsNotFound(err) {
				return nil, apperr.InvalidCredentials()
			}
			return nil, err
		}
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, apperr.InvalidCredentials()
	}

	// Reload with preferences resolved; lookups above do not preload.
	user, err = s.Repo.FindUserByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.Codec.IssueAccessToken(user.ID.String(), "user")
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.Codec.IssueRefreshToken(user.ID.String(), "user")
	if err != nil {
		return nil, err
	}

	if err := s.Events.PublishEvent(ctx, "user_events", user.ID.String(), map[string]any{
		"type":   "user_logged_in",
		"userId": user.ID,
	}); err != nil {
		l.Error("event_publish_failed", "error", err)
	}

	l.Info("login_successful", "user_id", user.ID)
	return &SessionResult{
		User:         projectUser(user, nil),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token with
// the same subject and role. The refresh token itself is not rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	claims, err := s.Codec.ParseRefreshToken(refreshToken)
	if err != nil || claims == nil {
		l.Warn("refresh_failed", "reason", "invalid refresh token")
		return "", apperr.Unauthorized("Refresh token expired")
	}

	accessToken, err := s.Codec.IssueAccessToken(claims.Subject, claims.Role)
	if err != nil {
		return "", err
	}
	return accessToken, nil
}
