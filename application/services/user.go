package services

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"share-adage-backend/application/ports"
	"share-adage-backend/domain/adage"
	"share-adage-backend/domain/reward"
	"share-adage-backend/domain/user"

	apperrors "share-adage-backend/pkg/errors"

	"go.uber.org/zap"
)

// defaultUserName is assigned at sign-up until the user picks a name.
const defaultUserName = "No name"

// maxUserNameLength bounds display names, in runes.
const maxUserNameLength = 20

// UserService handles account lifecycle against the identity provider and
// the users table, and owns the rename fan-out into denormalized copies.
type UserService struct {
	adages     ports.Table
	users      ports.Table
	identity   ports.IdentityProvider
	ledger     *Ledger
	events     ports.EventPublisher
	loginIndex string
	userIndex  string
	logger     *zap.Logger
}

// NewUserService creates a UserService.
func NewUserService(
	adages ports.Table,
	users ports.Table,
	identity ports.IdentityProvider,
	ledger *Ledger,
	events ports.EventPublisher,
	loginIndex string,
	userIndex string,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		adages:     adages,
		users:      users,
		identity:   identity,
		ledger:     ledger,
		events:     events,
		loginIndex: loginIndex,
		userIndex:  userIndex,
		logger:     logger,
	}
}

// LoginResult carries the issued tokens plus the user's display name.
type LoginResult struct {
	ports.AuthTokens
	UserName string `json:"userName"`
}

// SignUp registers a new account with the identity provider, creates the
// identity record and grants the sign-up bonus.
func (s *UserService) SignUp(ctx context.Context, loginID, password string) (*user.IdentityRecord, error) {
	if loginID == "" || password == "" {
		return nil, apperrors.NewValidationError("loginId and password are required")
	}

	var existing []user.IdentityRecord
	err := s.users.QueryIndex(ctx, s.loginIndex, "loginId", loginID, &existing, ports.WithProjection("loginId"))
	if err != nil {
		return nil, fmt.Errorf("query loginId index: %w", err)
	}
	if len(existing) > 0 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("this loginId already exists. loginId: %s", loginID))
	}

	sub, err := s.identity.SignUp(ctx, loginID, password)
	if err != nil {
		return nil, fmt.Errorf("identity sign up: %w", err)
	}

	record := user.IdentityRecord{
		UserID:   sub,
		Key:      user.SortKeyIdentity,
		LoginID:  loginID,
		UserName: defaultUserName,
	}
	if err := s.users.Put(ctx, record); err != nil {
		return nil, fmt.Errorf("put identity record: %w", err)
	}

	if err := s.ledger.RecordReward(ctx, sub, reward.RegistrationUser); err != nil {
		return nil, fmt.Errorf("grant sign-up reward: %w", err)
	}

	s.logger.Info("user signed up", zap.String("userId", sub))
	return &record, nil
}

// Confirm completes a pending sign-up with the emailed code. When the code
// has expired a fresh one is sent instead; resent reports that case.
func (s *UserService) Confirm(ctx context.Context, loginID, code string) (resent bool, err error) {
	if loginID == "" || code == "" {
		return false, apperrors.NewValidationError("loginId and code are required")
	}

	err = s.identity.ConfirmSignUp(ctx, loginID, code)
	if errors.Is(err, ports.ErrCodeExpired) {
		if err := s.identity.ResendConfirmationCode(ctx, loginID); err != nil {
			return false, fmt.Errorf("resend confirmation code: %w", err)
		}
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("confirm sign up: %w", err)
	}
	return false, nil
}

// Login authenticates and returns the token set plus the display name.
func (s *UserService) Login(ctx context.Context, loginID, password string) (*LoginResult, error) {
	if loginID == "" || password == "" {
		return nil, apperrors.NewValidationError("mail address and password is required")
	}

	tokens, err := s.identity.InitiateAuth(ctx, loginID, password)
	if err != nil {
		return nil, apperrors.NewValidationError("authentication failed").WithCause(err)
	}

	userName := ""
	var matches []user.IdentityRecord
	err = s.users.QueryIndex(ctx, s.loginIndex, "loginId", loginID, &matches, ports.WithProjection("userName"))
	if err != nil {
		return nil, fmt.Errorf("query loginId index: %w", err)
	}
	if len(matches) > 0 {
		userName = matches[0].UserName
	}

	return &LoginResult{AuthTokens: *tokens, UserName: userName}, nil
}

// SendResetPasswordCode sends a password-reset code to an existing user.
func (s *UserService) SendResetPasswordCode(ctx context.Context, loginID string) error {
	if loginID == "" {
		return apperrors.NewValidationError("loginId is required")
	}

	var matches []user.IdentityRecord
	err := s.users.QueryIndex(ctx, s.loginIndex, "loginId", loginID, &matches, ports.WithProjection("loginId"))
	if err != nil {
		return fmt.Errorf("query loginId index: %w", err)
	}
	if len(matches) == 0 {
		return apperrors.NewValidationError(fmt.Sprintf("user does not exist. loginId: %s", loginID))
	}

	return s.identity.AdminResetPassword(ctx, loginID)
}

// ResetPassword completes a password reset with the emailed code.
func (s *UserService) ResetPassword(ctx context.Context, loginID, code, password string) error {
	if loginID == "" || code == "" || password == "" {
		return apperrors.NewValidationError("loginId, code and password are required")
	}
	return s.identity.ConfirmForgotPassword(ctx, loginID, code, password)
}

// Delete removes the account: every row of the user's partition (identity,
// ledger, authored-episode copies) and the identity-provider account. Each
// row delete is independent; a partial failure leaves the remainder behind.
func (s *UserService) Delete(ctx context.Context, userID, loginID, accessToken string) error {
	var identity user.IdentityRecord
	found, err := s.users.Get(ctx, userID, user.SortKeyIdentity, &identity)
	if err != nil {
		return fmt.Errorf("get identity record: %w", err)
	}
	if !found {
		return apperrors.NewValidationError("user does not exist")
	}
	if identity.LoginID != loginID {
		return apperrors.NewValidationError(fmt.Sprintf("mail address is different. address: %s", loginID))
	}

	var rows []struct {
		Key string `dynamodbav:"key"`
	}
	if err := s.users.QueryPrefix(ctx, userID, "", &rows, ports.WithProjection("key")); err != nil {
		return fmt.Errorf("query user partition: %w", err)
	}
	for _, row := range rows {
		if err := s.users.Delete(ctx, userID, row.Key); err != nil {
			s.logger.Warn("failed to delete user row",
				zap.String("userId", userID),
				zap.String("key", row.Key),
				zap.Error(err),
			)
		}
	}

	if err := s.identity.DeleteUser(ctx, accessToken); err != nil {
		return fmt.Errorf("delete identity-provider account: %w", err)
	}

	s.logger.Info("user deleted", zap.String("userId", userID))
	return nil
}

// Rename updates the display name and propagates it into every episode the
// user authored. Each per-adage update is independent and best-effort; a
// failure partway leaves stale copies until the next rename.
func (s *UserService) Rename(ctx context.Context, userID, newName string) error {
	if newName == "" {
		return apperrors.NewValidationError("userName is required")
	}
	if utf8.RuneCountInString(newName) > maxUserNameLength {
		return apperrors.NewValidationError(fmt.Sprintf("userName must be at most %d characters", maxUserNameLength))
	}

	if err := s.users.SetString(ctx, userID, user.SortKeyIdentity, "userName", newName); err != nil {
		return fmt.Errorf("update userName: %w", err)
	}

	var authored []adage.EpisodeRecord
	err := s.adages.QueryIndex(ctx, s.userIndex, "userId", userID, &authored, ports.WithProjection("adageId"))
	if err != nil {
		return fmt.Errorf("query authored episodes: %w", err)
	}
	for _, episode := range authored {
		err := s.adages.SetString(ctx, episode.AdageID, adage.EpisodeSortKey(userID), "userName", newName)
		if err != nil {
			s.logger.Warn("failed to propagate userName",
				zap.String("userId", userID),
				zap.String("adageId", episode.AdageID),
				zap.Error(err),
			)
		}
	}

	s.events.Publish(ctx, "user.renamed", map[string]string{
		"userId":   userID,
		"userName": newName,
	})

	s.logger.Info("user renamed",
		zap.String("userId", userID),
		zap.Int("episodeCopies", len(authored)),
	)
	return nil
}

// Profile returns the user's identity record.
func (s *UserService) Profile(ctx context.Context, userID string) (*user.IdentityRecord, error) {
	var identity user.IdentityRecord
	found, err := s.users.Get(ctx, userID, user.SortKeyIdentity, &identity)
	if err != nil {
		return nil, fmt.Errorf("get identity record: %w", err)
	}
	if !found {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user does not exist. userId: %s", userID))
	}
	return &identity, nil
}

// ListAuthoredEpisodes returns the denormalized "my episodes" copies.
func (s *UserService) ListAuthoredEpisodes(ctx context.Context, userID string) ([]user.AuthoredEpisodeRecord, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("userId is required")
	}

	var episodes []user.AuthoredEpisodeRecord
	err := s.users.QueryPrefix(ctx, userID, user.SortKeyEpisodePrefix, &episodes)
	if err != nil {
		return nil, fmt.Errorf("query authored episodes: %w", err)
	}
	if episodes == nil {
		episodes = []user.AuthoredEpisodeRecord{}
	}
	return episodes, nil
}
