// Package challenge records completed challenges and pays out their rewards.
package challenge

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ecoloop/ecoloop/internal/progress"
	"github.com/ecoloop/ecoloop/internal/rank"
	"github.com/ecoloop/ecoloop/internal/store"
)

// Type distinguishes recurring daily challenges from level challenges.
type Type string

const (
	TypeDaily Type = "daily"
	TypeLevel Type = "level"
)

// Challenge is a finished task tied to a level.
type Challenge struct {
	LevelID    int    `validate:"gte=1"`
	Title      string `validate:"max=120"`
	CoinReward int    `validate:"gte=0"`
	Type       Type   `validate:"oneof=daily level"`
}

// StreakDelta is the daily-streak increment for completing c.
func (c Challenge) StreakDelta() int {
	if c.Type == TypeDaily {
		return 1
	}
	return 0
}

// Summary is what the completion screen shows.
type Summary struct {
	CoinsEarned  int
	StreakDelta  int
	Balance      int
	RankBefore   string
	RankAfter    string
	RankChanged  bool
	UnmappedRank bool

	// AlreadyRewarded is set when a level challenge was completed before
	// and this completion paid nothing.
	AlreadyRewarded bool
}

// Service completes challenges for stored users.
type Service struct {
	users    store.UserRepo
	progress store.ProgressRepo
	ledger   store.LedgerRepo
	validate *validator.Validate
	log      *zap.Logger
}

// NewService creates a challenge Service. A nil logger disables logging.
func NewService(users store.UserRepo, entries store.ProgressRepo, ledger store.LedgerRepo, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		users:    users,
		progress: entries,
		ledger:   ledger,
		validate: validator.New(),
		log:      log.Named("challenge"),
	}
}

// Complete marks the challenge's level completed, credits the reward and
// reports the rank before and after. A level challenge pays only on its
// first completion; daily challenges pay every time.
func (s *Service) Complete(ctx context.Context, userID string, c Challenge) (*Summary, error) {
	if err := s.validate.Struct(c); err != nil {
		return nil, fmt.Errorf("invalid challenge: %w", err)
	}

	before, err := progress.Load(ctx, s.users, s.progress, userID)
	if err != nil {
		return nil, err
	}

	reason := c.Title
	if reason == "" {
		reason = fmt.Sprintf("Completed level %d", c.LevelID)
	}
	res, err := s.ledger.Complete(ctx, store.CompletionData{
		UserID:  userID,
		LevelID: c.LevelID,
		Status:  string(progress.StatusCompleted),
		Reward:  c.CoinReward,
		Reason:  reason,
		Once:    c.Type == TypeLevel,
	})
	if err != nil {
		return nil, fmt.Errorf("record completion: %w", err)
	}

	after, err := progress.Load(ctx, s.users, s.progress, userID)
	if err != nil {
		return nil, err
	}

	prev := rank.Resolve(before)
	next := rank.Evaluate(after)
	if !next.Mapped {
		s.log.Warn("completed level has no rank tier",
			zap.Int("level_id", next.LevelID), zap.String("fallback", next.Label))
	}

	earned := 0
	if res.Credited {
		earned = c.CoinReward
	}
	sum := &Summary{
		CoinsEarned:  earned,
		StreakDelta:  c.StreakDelta(),
		Balance:      res.Balance,
		RankBefore:   prev,
		RankAfter:    next.Label,
		RankChanged:  prev != next.Label,
		UnmappedRank: !next.Mapped,

		AlreadyRewarded: !res.Credited,
	}
	s.log.Info("challenge complete",
		zap.Int("level_id", c.LevelID),
		zap.Int("coins", earned),
		zap.String("rank", sum.RankAfter),
		zap.Bool("rank_changed", sum.RankChanged))
	return sum, nil
}
