package services

import (
	"context"
	"errors"
	"testing"

	"jamjournal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewsletterService_SubscribeNormalizesAndResubscribes(t *testing.T) {
	store := newFakeSubscriptions()
	svc := NewNewsletterService(store, fakeSettings{}, &fakeQueue{}, "")
	ctx := context.Background()

	require.NoError(t, svc.Subscribe(ctx, models.SubscribeRequest{Email: "  Fan@Jam.Example "}))
	require.NoError(t, svc.Unsubscribe(ctx, models.SubscribeRequest{Email: "fan@jam.example"}))
	assert.Equal(t, models.SubscriberUnsubscribed, store.status["fan@jam.example"])

	require.NoError(t, svc.Subscribe(ctx, models.SubscribeRequest{Email: "fan@jam.example"}))
	subs, err := svc.Subscribers(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "fan@jam.example", subs[0].Email)
}

func TestNewsletterService_RejectsBadEmail(t *testing.T) {
	store := newFakeSubscriptions()
	svc := NewNewsletterService(store, fakeSettings{}, &fakeQueue{}, "")

	for _, email := range []string{"", "   ", "no-at-sign", "a@x.io\r\nBcc: b@x.io"} {
		assert.ErrorIs(t, svc.Subscribe(context.Background(), models.SubscribeRequest{Email: email}), ErrValidation, email)
		assert.ErrorIs(t, svc.Unsubscribe(context.Background(), models.SubscribeRequest{Email: email}), ErrValidation, email)
	}
	assert.Empty(t, store.status)
}

func TestNewsletterService_UnsubscribeUnknownIsQuiet(t *testing.T) {
	svc := NewNewsletterService(newFakeSubscriptions(), fakeSettings{}, &fakeQueue{}, "")

	assert.NoError(t, svc.Unsubscribe(context.Background(), models.SubscribeRequest{Email: "nobody@x.io"}))
}

func TestNewsletterService_SendPersonalizesEachMail(t *testing.T) {
	store := newFakeSubscriptions("a@x.io", "b@x.io")
	q := &fakeQueue{}
	svc := NewNewsletterService(store, fakeSettings{SettingSiteURL: "https://jam.example"}, q, "http://fallback")
	postID := int64(7)

	res, err := svc.Send(context.Background(), models.CampaignRequest{
		Subject: " Итоги месяца ",
		Content: `<p>Лучшие записи</p><script>alert(1)</script>`,
		PostID:  &postID,
	})

	require.NoError(t, err)
	assert.Equal(t, &models.CampaignResult{CampaignID: 1, Sent: 2}, res)

	require.Len(t, store.campaigns, 1)
	c := store.campaigns[0]
	assert.Equal(t, "Итоги месяца", c.Subject)
	assert.Equal(t, "<p>Лучшие записи</p>", c.Content)
	assert.Equal(t, &postID, c.PostID)

	require.Len(t, q.msgs, 2)
	assert.Equal(t, []string{"a@x.io"}, q.msgs[0].To)
	assert.Equal(t, "Итоги месяца", q.msgs[0].Subject)
	assert.Equal(t, `<p>Лучшие записи</p><br><br><a href="https://jam.example/unsubscribe?email=a%40x.io">Unsubscribe</a>`, q.msgs[0].HTML)
	assert.Contains(t, q.msgs[1].HTML, "unsubscribe?email=b%40x.io")
}

func TestNewsletterService_SendCountsOnlyQueued(t *testing.T) {
	store := newFakeSubscriptions("a@x.io")
	svc := NewNewsletterService(store, fakeSettings{}, &fakeQueue{reject: true}, "")

	res, err := svc.Send(context.Background(), models.CampaignRequest{Subject: "S", Content: "<p>x</p>"})

	require.NoError(t, err)
	assert.Equal(t, 0, res.Sent)
	assert.Len(t, store.campaigns, 1)
}

func TestNewsletterService_SendErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("validation", func(t *testing.T) {
		svc := NewNewsletterService(newFakeSubscriptions(), fakeSettings{}, &fakeQueue{}, "")
		_, err := svc.Send(ctx, models.CampaignRequest{Subject: "  ", Content: "x"})
		assert.ErrorIs(t, err, ErrValidation)
		_, err = svc.Send(ctx, models.CampaignRequest{Subject: "S", Content: "<script>x</script>"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("mail disabled", func(t *testing.T) {
		store := newFakeSubscriptions("a@x.io")
		svc := NewNewsletterService(store, fakeSettings{}, nil, "")
		_, err := svc.Send(ctx, models.CampaignRequest{Subject: "S", Content: "x"})
		assert.ErrorIs(t, err, ErrMailDisabled)
		assert.Empty(t, store.campaigns)
	})

	t.Run("store", func(t *testing.T) {
		store := newFakeSubscriptions()
		store.err = errors.New("db down")
		svc := NewNewsletterService(store, fakeSettings{}, &fakeQueue{}, "")
		_, err := svc.Send(ctx, models.CampaignRequest{Subject: "S", Content: "x"})
		assert.Error(t, err)
	})
}
