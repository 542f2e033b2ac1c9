package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/kindlinghq/kindling/internal/relay/domain"
	"github.com/kindlinghq/kindling/internal/relay/store"
	"github.com/kindlinghq/kindling/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func TestCreateAndGetSubmission(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	sub := domain.Submission{
		ID:          idx.New().String(),
		Name:        "Ada",
		Message:     "hello",
		UserID:      "user-1",
		UserEmail:   "ada@example.com",
		SubmittedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, st.Submissions().CreateSubmission(ctx, sub))

	got, err := st.Submissions().GetSubmissionByID(ctx, sub.ID)
	require.NoError(t, err)
	require.Equal(t, sub.Name, got.Name)
	require.Equal(t, sub.UserID, got.UserID)
	require.True(t, sub.SubmittedAt.Equal(got.SubmittedAt))
}

func TestGetSubmissionNotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Submissions().GetSubmissionByID(context.Background(), "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestListSubmissionsNewestFirst(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		sub := domain.Submission{
			ID:          idx.New().String(),
			Name:        "Ada",
			Message:     "hello",
			UserID:      domain.AnonymousUserID,
			SubmittedAt: time.Now().UTC(),
		}
		require.NoError(t, st.Submissions().CreateSubmission(ctx, sub))
		ids = append(ids, sub.ID)
	}

	subs, err := st.Submissions().ListSubmissions(ctx, 0)
	require.NoError(t, err)
	require.Len(t, subs, 3)
	require.Equal(t, ids[2], subs[0].ID)
	require.Equal(t, ids[0], subs[2].ID)

	limited, err := st.Submissions().ListSubmissions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
}
