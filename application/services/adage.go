package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"share-adage-backend/application/ports"
	"share-adage-backend/domain/adage"
	"share-adage-backend/domain/reward"

	apperrors "share-adage-backend/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdageService owns adage creation, the like-score aggregate and the
// monthly listing.
type AdageService struct {
	adages          ports.Table
	ledger          *Ledger
	invoker         ports.AsyncInvoker
	episodeFunction string
	monthIndex      string
	logger          *zap.Logger
	now             func() time.Time
}

// NewAdageService creates an AdageService.
func NewAdageService(
	adages ports.Table,
	ledger *Ledger,
	invoker ports.AsyncInvoker,
	episodeFunction string,
	monthIndex string,
	logger *zap.Logger,
) *AdageService {
	return &AdageService{
		adages:          adages,
		ledger:          ledger,
		invoker:         invoker,
		episodeFunction: episodeFunction,
		monthIndex:      monthIndex,
		logger:          logger,
		now:             time.Now,
	}
}

// AdageWithEpisodes is a title record enriched with its attached episodes.
type AdageWithEpisodes struct {
	adage.TitleRecord
	Episodes []adage.EpisodeRecord `json:"episode"`
}

// episodePostPayload is the JSON payload of the episode-post cascade.
type episodePostPayload struct {
	AdageID string `json:"adageId"`
	Episode string `json:"episode"`
	UserID  string `json:"userId"`
}

// Create registers a new adage. A registered author earns the
// adage-registration reward; a guest-authored adage is marked byGuest and
// earns nothing. When episode text is supplied, episode creation is
// cascaded to the sibling episode-post function and not awaited.
func (s *AdageService) Create(ctx context.Context, author adage.Author, title, episode string) (*adage.TitleRecord, error) {
	if title == "" {
		return nil, apperrors.NewValidationError("title is required")
	}

	record := adage.TitleRecord{
		AdageID:           uuid.NewString(),
		Key:               adage.SortKeyTitle,
		Title:             title,
		LikePoints:        0,
		RegistrationMonth: int(s.now().Month()),
	}

	if author.IsGuest() {
		record.ByGuest = true
	} else {
		if err := s.ledger.RecordReward(ctx, author.ID(), reward.RegistrationAdage); err != nil {
			return nil, fmt.Errorf("grant adage registration reward: %w", err)
		}
	}

	if err := s.adages.Put(ctx, record); err != nil {
		return nil, fmt.Errorf("put title record: %w", err)
	}

	if episode != "" {
		// Fire and forget; a failed cascade leaves the adage without its
		// inline episode and is not rolled back. Guests are passed as the
		// literal "guest" so the episode handler synthesizes its own
		// ephemeral identity.
		authorID := author.ID()
		if author.IsGuest() {
			authorID = "guest"
		}
		if err := s.invoker.InvokeAsync(ctx, s.episodeFunction, episodePostPayload{
			AdageID: record.AdageID,
			Episode: episode,
			UserID:  authorID,
		}); err != nil {
			s.logger.Warn("episode cascade failed",
				zap.String("adageId", record.AdageID),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("adage created",
		zap.String("adageId", record.AdageID),
		zap.Bool("byGuest", record.ByGuest),
	)
	return &record, nil
}

// Like increments the adage's likePoints by one. Repeated calls compound;
// duplicate-like prevention is deliberately not implemented.
func (s *AdageService) Like(ctx context.Context, adageID string) error {
	if adageID == "" {
		return apperrors.NewValidationError("adageId is required")
	}
	return s.adages.Add(ctx, adageID, adage.SortKeyTitle, likePointsAttr, 1)
}

// ListMonthly returns every non-guest adage registered in the given month,
// enriched with its non-guest episodes and sorted by likePoints descending.
// Ties keep the store-returned order.
func (s *AdageService) ListMonthly(ctx context.Context, month int) ([]AdageWithEpisodes, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid month: %d", month))
	}

	var titles []adage.TitleRecord
	err := s.adages.QueryIndex(ctx, s.monthIndex, "registrationMonth", month, &titles, ports.ExcludeGuest())
	if err != nil {
		return nil, fmt.Errorf("query monthly adages: %w", err)
	}

	result := make([]AdageWithEpisodes, 0, len(titles))
	for _, title := range titles {
		var episodes []adage.EpisodeRecord
		err := s.adages.QueryPrefix(ctx, title.AdageID, adage.SortKeyEpisodePrefix, &episodes, ports.ExcludeGuest())
		if err != nil {
			return nil, fmt.Errorf("query episodes for %s: %w", title.AdageID, err)
		}
		if episodes == nil {
			episodes = []adage.EpisodeRecord{}
		}
		result = append(result, AdageWithEpisodes{TitleRecord: title, Episodes: episodes})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].LikePoints > result[j].LikePoints
	})
	return result, nil
}

// Get returns one adage with all of its episodes, guest-authored included.
func (s *AdageService) Get(ctx context.Context, adageID string) (*AdageWithEpisodes, error) {
	if adageID == "" {
		return nil, apperrors.NewValidationError("adageId is required")
	}

	var title adage.TitleRecord
	found, err := s.adages.Get(ctx, adageID, adage.SortKeyTitle, &title)
	if err != nil {
		return nil, fmt.Errorf("get title record: %w", err)
	}
	if !found {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("adage does not exist. adageId: %s", adageID))
	}

	var episodes []adage.EpisodeRecord
	if err := s.adages.QueryPrefix(ctx, adageID, adage.SortKeyEpisodePrefix, &episodes); err != nil {
		return nil, fmt.Errorf("query episodes: %w", err)
	}
	if episodes == nil {
		episodes = []adage.EpisodeRecord{}
	}
	return &AdageWithEpisodes{TitleRecord: title, Episodes: episodes}, nil
}
