package conversation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iyunix/go-mindster/internal/domain"
	"github.com/iyunix/go-mindster/internal/testutil"
)

func TestListIsOwnerScopedAndMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewConversationRepository(db, testutil.NopLogger{})
	alice := testutil.CreateUser(t, db, "alice@x.com")
	bob := testutil.CreateUser(t, db, "bob@x.com")

	a1 := &domain.Conversation{UserID: alice.ID, Model: "m"}
	a2 := &domain.Conversation{UserID: alice.ID, Model: "m"}
	b1 := &domain.Conversation{UserID: bob.ID, Model: "m"}
	for _, c := range []*domain.Conversation{a1, a2, b1} {
		require.NoError(t, repo.Create(ctx, c))
	}

	require.NoError(t, repo.TouchUpdatedAt(ctx, a1.ID, time.Now().Add(time.Hour), nil))

	list, err := repo.FindByUserIDWithPagination(ctx, alice.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a1.ID, list[0].ID)
	assert.Equal(t, a2.ID, list[1].ID)

	list, err = repo.FindByUserIDWithPagination(ctx, alice.ID, 1, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, a2.ID, list[0].ID)

	_, err = repo.FindByIDForUser(ctx, b1.ID, alice.ID)
	assert.ErrorIs(t, err, ErrConversationNotFound)

	deleted, err := repo.Delete(ctx, b1.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestTouchUpdatedAtSetsTitle(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewConversationRepository(db, testutil.NopLogger{})
	owner := testutil.CreateUser(t, db, "a@x.com")
	c := &domain.Conversation{UserID: owner.ID, Model: "m"}
	require.NoError(t, repo.Create(ctx, c))
	assert.Nil(t, c.Title)

	title := "Hello"
	at := time.Now().Add(time.Minute)
	require.NoError(t, repo.TouchUpdatedAt(ctx, c.ID, at, &title))

	got, err := repo.FindByIDForUser(ctx, c.ID, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Title)
	assert.Equal(t, "Hello", *got.Title)
	assert.WithinDuration(t, at, got.UpdatedAt, time.Millisecond)

	assert.ErrorIs(t, repo.TouchUpdatedAt(ctx, uuid.New(), at, nil), ErrConversationNotFound)
}

func TestProviderDeletionSetsNullAndConversationDeletionCascades(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewConversationRepository(db, testutil.NopLogger{})
	owner := testutil.CreateUser(t, db, "a@x.com")
	p := testutil.CreateProvider(t, db, owner, "p", "cipher", "https://a")

	c := &domain.Conversation{UserID: owner.ID, ProviderID: &p.ID, Model: "m"}
	require.NoError(t, repo.Create(ctx, c))
	require.NoError(t, db.Create(&domain.Message{ConversationID: c.ID, Role: domain.RoleUser, Content: "hi"}).Error)

	require.NoError(t, db.Delete(&domain.Provider{}, "id = ?", p.ID).Error)
	got, err := repo.FindByIDForUser(ctx, c.ID, owner.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ProviderID)

	deleted, err := repo.Delete(ctx, c.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	var messages int64
	require.NoError(t, db.Model(&domain.Message{}).Count(&messages).Error)
	assert.Zero(t, messages)
}
