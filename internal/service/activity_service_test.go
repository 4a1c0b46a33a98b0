package service_test

import (
	"context"
	"testing"
	"time"

	"labnotebook-be/internal/dto"
	"labnotebook-be/internal/service"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Exercises the whole feed pipeline: a mutating service publishes on the
// event bus, the consumer persists the entry, and the activity service
// reads it back newest-first.
func TestActivityFeedPipeline(t *testing.T) {
	factory := newTestFactory(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	publisherService := service.NewPublisherService("ACTIVITY_LOG_TEST", pubSub)
	consumerService := service.NewConsumerService(pubSub, "ACTIVITY_LOG_TEST", factory)
	require.NoError(t, consumerService.Consume(ctx))

	authService := service.NewAuthService(factory)
	noteService := service.NewNoteService(factory, publisherService)
	activityService := service.NewActivityService(factory)

	userId := signupTestUser(t, authService, "alice", "alice@example.com")

	note, err := noteService.Create(ctx, userId, &dto.CreateNoteRequest{
		Title:   "Observed precipitate",
		Content: "White crystals at the bottom of flask 3",
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		feed, err := activityService.List(ctx, userId)
		return err == nil && len(feed) == 1
	}, 2*time.Second, 10*time.Millisecond)

	feed, err := activityService.List(ctx, userId)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "NOTE_CREATED", feed[0].Action)
	assert.Equal(t, "note", feed[0].ResourceType)
	assert.Equal(t, note.Id, feed[0].ResourceId)
	assert.Equal(t, "Observed precipitate", feed[0].Detail)

	t.Run("Feed is scoped to its owner", func(t *testing.T) {
		otherId := signupTestUser(t, authService, "bob", "bob@example.com")
		feed, err := activityService.List(ctx, otherId)
		require.NoError(t, err)
		assert.Empty(t, feed)
	})

	t.Run("Newest entries come first", func(t *testing.T) {
		_, err := noteService.Update(ctx, userId, &dto.UpdateNoteRequest{
			Id:    note.Id,
			Title: strPtr("Observed precipitate (confirmed)"),
		})
		require.NoError(t, err)

		require.Eventually(t, func() bool {
			feed, err := activityService.List(ctx, userId)
			return err == nil && len(feed) == 2
		}, 2*time.Second, 10*time.Millisecond)

		feed, err := activityService.List(ctx, userId)
		require.NoError(t, err)
		require.Len(t, feed, 2)
		assert.Equal(t, "NOTE_UPDATED", feed[0].Action)
		assert.Equal(t, "NOTE_CREATED", feed[1].Action)
	})
}
