package services

import (
	"context"
	"fmt"

	"share-adage-backend/application/ports"
	"share-adage-backend/domain/adage"
	"share-adage-backend/domain/reward"
	"share-adage-backend/domain/user"

	apperrors "share-adage-backend/pkg/errors"

	"go.uber.org/zap"
)

// EpisodeService handles episode posting, retrieval, deletion and the
// per-episode thank-you interactions.
type EpisodeService struct {
	adages ports.Table
	users  ports.Table
	ledger *Ledger
	events ports.EventPublisher
	logger *zap.Logger
}

// NewEpisodeService creates an EpisodeService.
func NewEpisodeService(
	adages ports.Table,
	users ports.Table,
	ledger *Ledger,
	events ports.EventPublisher,
	logger *zap.Logger,
) *EpisodeService {
	return &EpisodeService{
		adages: adages,
		users:  users,
		ledger: ledger,
		events: events,
		logger: logger,
	}
}

// Post attaches an episode to an existing adage. Guests get a synthesized
// identity and earn nothing; registered authors also get the denormalized
// user-side copy and the episode-registration reward.
//
// Missing adageId/episode is rejected with 403, matching the behavior
// clients already depend on.
func (s *EpisodeService) Post(ctx context.Context, adageID string, author adage.Author, text string) (*adage.EpisodeRecord, error) {
	if adageID == "" || text == "" {
		return nil, apperrors.NewForbiddenError("adageId and episode is required")
	}

	var title adage.TitleRecord
	found, err := s.adages.Get(ctx, adageID, adage.SortKeyTitle, &title, ports.WithProjection("title"))
	if err != nil {
		return nil, fmt.Errorf("get title record: %w", err)
	}
	if !found {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("adage does not exist. adageId: %s", adageID))
	}

	if author.ID() == "" {
		return nil, apperrors.NewValidationError("userId is required")
	}

	record := adage.EpisodeRecord{
		AdageID:    adageID,
		Key:        adage.EpisodeSortKey(author.ID()),
		UserID:     author.ID(),
		Title:      title.Title,
		Episode:    text,
		LikePoints: 0,
	}

	if author.IsGuest() {
		record.UserName = adage.GuestName
		record.ByGuest = true
		if err := s.adages.Put(ctx, record); err != nil {
			return nil, fmt.Errorf("put guest episode: %w", err)
		}
		return &record, nil
	}

	var identity user.IdentityRecord
	found, err = s.users.Get(ctx, author.ID(), user.SortKeyIdentity, &identity, ports.WithProjection("userName"))
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !found {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user does not exist. userId: %s", author.ID()))
	}
	record.UserName = identity.UserName

	if err := s.adages.Put(ctx, record); err != nil {
		return nil, fmt.Errorf("put episode: %w", err)
	}

	if err := s.users.Put(ctx, user.AuthoredEpisodeRecord{
		UserID:  author.ID(),
		Key:     user.AuthoredEpisodeSortKey(adageID),
		AdageID: adageID,
		Title:   title.Title,
		Episode: text,
	}); err != nil {
		return nil, fmt.Errorf("put authored-episode copy: %w", err)
	}

	if err := s.ledger.RecordReward(ctx, author.ID(), reward.RegistrationEpisode); err != nil {
		return nil, fmt.Errorf("grant episode registration reward: %w", err)
	}

	s.events.Publish(ctx, "episode.created", record)

	s.logger.Info("episode posted",
		zap.String("adageId", adageID),
		zap.String("userId", author.ID()),
	)
	return &record, nil
}

// Get returns the episode text a user posted on an adage, or an empty
// string when none exists.
func (s *EpisodeService) Get(ctx context.Context, adageID, userID string) (string, error) {
	var record adage.EpisodeRecord
	_, err := s.adages.Get(ctx, adageID, adage.EpisodeSortKey(userID), &record, ports.WithProjection("episode"))
	if err != nil {
		return "", fmt.Errorf("get episode: %w", err)
	}
	return record.Episode, nil
}

// Delete removes both the adage-side episode and the user-side copy.
// Deleting records that no longer exist is not an error.
func (s *EpisodeService) Delete(ctx context.Context, adageID, userID string) error {
	if adageID == "" {
		return apperrors.NewValidationError("adageId is required")
	}
	if userID == "" {
		return apperrors.NewValidationError("userId is required")
	}

	if err := s.adages.Delete(ctx, adageID, adage.EpisodeSortKey(userID)); err != nil {
		return fmt.Errorf("delete episode: %w", err)
	}
	if err := s.users.Delete(ctx, userID, user.AuthoredEpisodeSortKey(adageID)); err != nil {
		return fmt.Errorf("delete authored-episode copy: %w", err)
	}

	s.events.Publish(ctx, "episode.deleted", map[string]string{
		"adageId": adageID,
		"userId":  userID,
	})
	return nil
}

// LikeFromGuest thanks an episode's author on behalf of an anonymous guest:
// the episode's counter goes up by one and the author receives the
// guest-thank-you reward.
func (s *EpisodeService) LikeFromGuest(ctx context.Context, adageID, receiverID string) error {
	if adageID == "" || receiverID == "" {
		return apperrors.NewValidationError("adageId and userId are required")
	}

	if err := s.adages.Add(ctx, adageID, adage.EpisodeSortKey(receiverID), likePointsAttr, 1); err != nil {
		return fmt.Errorf("increment episode likePoints: %w", err)
	}
	return s.ledger.RecordReward(ctx, receiverID, reward.ThankYouFromGuest)
}

// LikeFromUser thanks an episode's author on behalf of another registered
// user. The ledger row captures the sender's display name at send time.
func (s *EpisodeService) LikeFromUser(ctx context.Context, adageID, receiverID, senderID string) error {
	var title adage.TitleRecord
	found, err := s.adages.Get(ctx, adageID, adage.SortKeyTitle, &title, ports.WithProjection("title"))
	if err != nil {
		return fmt.Errorf("get title record: %w", err)
	}
	if !found {
		return apperrors.NewNotFoundError(fmt.Sprintf("adage does not exist. adageId: %s", adageID))
	}

	var receiver user.IdentityRecord
	found, err = s.users.Get(ctx, receiverID, user.SortKeyIdentity, &receiver, ports.WithProjection("userId"))
	if err != nil {
		return fmt.Errorf("get receiver: %w", err)
	}
	if !found {
		return apperrors.NewNotFoundError(fmt.Sprintf("user does not exist. userId: %s", receiverID))
	}

	var sender user.IdentityRecord
	found, err = s.users.Get(ctx, senderID, user.SortKeyIdentity, &sender, ports.WithProjection("userId", "userName"))
	if err != nil {
		return fmt.Errorf("get sender: %w", err)
	}
	if !found {
		return apperrors.NewNotFoundError(fmt.Sprintf("user does not exist. userId: %s", senderID))
	}

	if err := s.adages.Add(ctx, adageID, adage.EpisodeSortKey(receiverID), likePointsAttr, 1); err != nil {
		return fmt.Errorf("increment episode likePoints: %w", err)
	}
	return s.ledger.RecordReward(ctx, receiverID, reward.ThankYou, WithSender(senderID, sender.UserName))
}
