package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkadios/glossabot/models"
)

func testStore(t *testing.T) *Sessions {
	t.Helper()
	db, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSessions(db)
}

func testSession(id string, ownerID int64) *models.Session {
	return &models.Session{
		ID:           id,
		OwnerID:      ownerID,
		Level:        "a1",
		Mode:         models.ModeGreekToEnglish,
		Category:     "nouns",
		RemainingIDs: []int{1, 3},
		TotalAsked:   2,
		CorrectCount: 1,
		TotalCount:   4,
		Current: &models.SessionQuestion{
			AnswerKeyID:      3,
			Options:          []int{0, 3, 2, 1},
			CorrectIndex:     1,
			PendingMessageID: 55,
		},
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
		UpdatedAt: time.Now().Unix(),
	}
}

func TestPutAndGetByID(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	sess := testSession("s1", 10)

	require.NoError(t, store.Put(ctx, sess))

	got, err := store.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, sess, got)
}

func TestGetByIDNotFound(t *testing.T) {
	store := testStore(t)

	_, err := store.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetLatestByOwner(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, testSession("s1", 10)))

	got, err := store.GetLatestByOwner(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "s1", got.ID)

	_, err = store.GetLatestByOwner(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOwnerIndexFollowsLatestPut(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, testSession("s1", 10)))
	require.NoError(t, store.Put(ctx, testSession("s2", 10)))

	got, err := store.GetLatestByOwner(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "s2", got.ID)

	// The older session row is still directly reachable.
	old, err := store.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", old.ID)
}

func TestPutOverwritesSameID(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	sess := testSession("s1", 10)
	require.NoError(t, store.Put(ctx, sess))

	sess.TotalAsked = 3
	sess.CorrectCount = 2
	sess.Current = nil
	require.NoError(t, store.Put(ctx, sess))

	got, err := store.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalAsked)
	assert.Equal(t, 2, got.CorrectCount)
	assert.Nil(t, got.Current)
}

func TestDelete(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, testSession("s1", 10)))
	require.NoError(t, store.Delete(ctx, "s1"))

	_, err := store.GetByID(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.GetLatestByOwner(ctx, 10)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent id is not an error.
	assert.NoError(t, store.Delete(ctx, "s1"))
}

func TestExpiredSessionIsDeletedLazily(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	sess := testSession("s1", 10)
	require.NoError(t, store.Put(ctx, sess))

	// Move the clock past the expiry instant.
	store.now = func() time.Time { return time.Unix(sess.ExpiresAt, 0) }

	_, err := store.GetByID(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.GetLatestByOwner(ctx, 10)
	assert.ErrorIs(t, err, ErrNotFound)

	// The row is gone, not just hidden: a fresh clock still misses it.
	store.now = time.Now
	_, err = store.GetByID(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}
