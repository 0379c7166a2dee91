package service

import (
	"context"
	"testing"

	"github.com/ripplehq/ripple/internal/ripple/store"
	"github.com/stretchr/testify/require"
)

func TestFollowSelfIsRejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := newTestStore(t)
	svc := &FollowsService{Store: st}
	u := seedUser(t, st, "john")

	require.ErrorIs(t, svc.Follow(ctx, u.ID, u.ID), ErrSelfFollow)
	require.ErrorIs(t, svc.Unfollow(ctx, u.ID, u.ID), ErrSelfFollow)

	// No edge was created and the relation never contains a self-pair.
	following, err := svc.IsFollowing(ctx, u.ID, u.ID)
	require.NoError(t, err)
	require.False(t, following)

	count, err := svc.FollowingCount(ctx, u.ID)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestFollowUpdatesBothProjections(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := newTestStore(t)
	svc := &FollowsService{Store: st}
	john := seedUser(t, st, "john")
	susan := seedUser(t, st, "susan")

	// Fresh users follow nobody.
	following, err := svc.IsFollowing(ctx, john.ID, susan.ID)
	require.NoError(t, err)
	require.False(t, following)

	require.NoError(t, svc.Follow(ctx, john.ID, susan.ID))

	following, err = svc.IsFollowing(ctx, john.ID, susan.ID)
	require.NoError(t, err)
	require.True(t, following)

	// The edge is directed.
	reverse, err := svc.IsFollowing(ctx, susan.ID, john.ID)
	require.NoError(t, err)
	require.False(t, reverse)

	johnFollowing, err := svc.FollowingCount(ctx, john.ID)
	require.NoError(t, err)
	require.Equal(t, 1, johnFollowing)

	susanFollowers, err := svc.FollowerCount(ctx, susan.ID)
	require.NoError(t, err)
	require.Equal(t, 1, susanFollowers)

	followed, err := svc.Following(ctx, john.ID)
	require.NoError(t, err)
	require.Len(t, followed, 1)
	require.Equal(t, "susan", followed[0].Username)

	followers, err := svc.Followers(ctx, susan.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	require.Equal(t, "john", followers[0].Username)
}

func TestFollowIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := newTestStore(t)
	svc := &FollowsService{Store: st}
	john := seedUser(t, st, "john")
	susan := seedUser(t, st, "susan")

	require.NoError(t, svc.Follow(ctx, john.ID, susan.ID))
	require.NoError(t, svc.Follow(ctx, john.ID, susan.ID))

	count, err := svc.FollowingCount(ctx, john.ID)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	// Unfollowing twice is equally harmless.
	require.NoError(t, svc.Unfollow(ctx, john.ID, susan.ID))
	require.NoError(t, svc.Unfollow(ctx, john.ID, susan.ID))

	count, err = svc.FollowingCount(ctx, john.ID)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestFollowThenUnfollowRestoresState(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := newTestStore(t)
	svc := &FollowsService{Store: st}
	john := seedUser(t, st, "john")
	susan := seedUser(t, st, "susan")

	require.NoError(t, svc.Follow(ctx, john.ID, susan.ID))
	require.NoError(t, svc.Unfollow(ctx, john.ID, susan.ID))

	following, err := svc.IsFollowing(ctx, john.ID, susan.ID)
	require.NoError(t, err)
	require.False(t, following)

	johnFollowing, err := svc.FollowingCount(ctx, john.ID)
	require.NoError(t, err)
	require.Zero(t, johnFollowing)

	susanFollowers, err := svc.FollowerCount(ctx, susan.ID)
	require.NoError(t, err)
	require.Zero(t, susanFollowers)

	followers, err := svc.Followers(ctx, susan.ID)
	require.NoError(t, err)
	require.Empty(t, followers)
}

func TestFollowUnknownUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := newTestStore(t)
	svc := &FollowsService{Store: st}
	john := seedUser(t, st, "john")

	err := svc.Follow(ctx, john.ID, "01K00000000000000000000000")
	require.ErrorIs(t, err, store.ErrNotFound)

	err = svc.Unfollow(ctx, "01K00000000000000000000000", john.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}
