package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ripplehq/ripple/internal/ripple/domain"
	"github.com/ripplehq/ripple/internal/ripple/store"
	"github.com/ripplehq/ripple/pkg/slogx"
)

// ErrSelfFollow reports an attempt to make a user follow or unfollow
// themselves. The store would refuse the edge anyway; rejecting here gives
// the caller a precise error instead of a silent no-op.
var ErrSelfFollow = errors.New("users cannot follow themselves")

type FollowsService struct {
	Store store.Store
}

// Follow creates the follower -> followed edge. Following a user you
// already follow is a successful no-op.
func (s *FollowsService) Follow(ctx context.Context, followerID, followedID string) error {
	log := slogx.FromContext(ctx)

	// 1. Reject self-follows outright.
	if followerID == followedID {
		return ErrSelfFollow
	}

	// 2. Both endpoints must exist; a dangling edge would poison the
	// projections.
	if err := s.verifyUsers(ctx, followerID, followedID); err != nil {
		return err
	}

	// 3. Insert. Idempotent at the store level, so a repeated or racing
	// follow still succeeds.
	if err := s.Store.Follows().CreateFollow(ctx, followerID, followedID); err != nil {
		log.Error("failed to create follow edge",
			slog.String("follower_id", followerID),
			slog.String("followed_id", followedID),
			slog.Any("error", err),
		)
		return err
	}

	log.Debug("follow",
		slog.String("follower_id", followerID),
		slog.String("followed_id", followedID),
	)
	return nil
}

// Unfollow removes the follower -> followed edge. Unfollowing a user you
// don't follow is a successful no-op.
func (s *FollowsService) Unfollow(ctx context.Context, followerID, followedID string) error {
	log := slogx.FromContext(ctx)

	if followerID == followedID {
		return ErrSelfFollow
	}

	if err := s.verifyUsers(ctx, followerID, followedID); err != nil {
		return err
	}

	if err := s.Store.Follows().DeleteFollow(ctx, followerID, followedID); err != nil {
		log.Error("failed to delete follow edge",
			slog.String("follower_id", followerID),
			slog.String("followed_id", followedID),
			slog.Any("error", err),
		)
		return err
	}

	log.Debug("unfollow",
		slog.String("follower_id", followerID),
		slog.String("followed_id", followedID),
	)
	return nil
}

// IsFollowing reports whether follower follows followed. A user never
// follows themselves.
func (s *FollowsService) IsFollowing(ctx context.Context, followerID, followedID string) (bool, error) {
	if followerID == followedID {
		return false, nil
	}
	return s.Store.Follows().IsFollowing(ctx, followerID, followedID)
}

// Following returns the users userID follows.
func (s *FollowsService) Following(ctx context.Context, userID string) ([]domain.User, error) {
	return s.Store.Follows().ListFollowing(ctx, userID)
}

// Followers returns the users following userID.
func (s *FollowsService) Followers(ctx context.Context, userID string) ([]domain.User, error) {
	return s.Store.Follows().ListFollowers(ctx, userID)
}

// FollowingCount returns how many users userID follows.
func (s *FollowsService) FollowingCount(ctx context.Context, userID string) (int, error) {
	return s.Store.Follows().CountFollowing(ctx, userID)
}

// FollowerCount returns how many users follow userID.
func (s *FollowsService) FollowerCount(ctx context.Context, userID string) (int, error) {
	return s.Store.Follows().CountFollowers(ctx, userID)
}

func (s *FollowsService) verifyUsers(ctx context.Context, ids ...string) error {
	for _, id := range ids {
		if _, err := s.Store.Users().GetUserByID(ctx, id); err != nil {
			return err // store.ErrNotFound or a driver failure
		}
	}
	return nil
}
