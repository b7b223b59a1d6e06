package notification

import (
	"context"
	"errors"
	"testing"

	"coolrentals/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type captureSender struct {
	sent []Email
	err  error
}

func (s *captureSender) Send(_ context.Context, email Email) error {
	s.sent = append(s.sent, email)
	return s.err
}

type failingQueue struct{ calls int }

func (q *failingQueue) EnqueueEmail(context.Context, Email) error {
	q.calls++
	return errors.New("redis down")
}

type acceptingQueue struct{ queued []Email }

func (q *acceptingQueue) EnqueueEmail(_ context.Context, email Email) error {
	q.queued = append(q.queued, email)
	return nil
}

type panickingSender struct{}

func (panickingSender) Send(context.Context, Email) error { panic("smtp library bug") }

func TestDispatcherSendsToAdmin(t *testing.T) {
	sender := &captureSender{}
	d := NewDispatcher(sender, nil, "ops@example.com", nil)

	d.NotifyAdmin(context.Background(), Message{Subject: "Hello", Text: "plain"})
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "ops@example.com", sender.sent[0].To)
	assert.Equal(t, "plain", sender.sent[0].HTML, "text doubles as HTML when none is given")
}

func TestDispatcherSwallowsFailures(t *testing.T) {
	d := NewDispatcher(&captureSender{err: errors.New("auth failed")}, nil, "ops@example.com", nil)
	assert.NotPanics(t, func() { d.NotifyAdmin(context.Background(), Message{Subject: "x"}) })

	d = NewDispatcher(panickingSender{}, nil, "ops@example.com", nil)
	assert.NotPanics(t, func() { d.NotifyAdmin(context.Background(), Message{Subject: "x"}) })
}

func TestDispatcherPrefersQueueAndFallsBack(t *testing.T) {
	sender := &captureSender{}
	queue := &acceptingQueue{}
	NewDispatcher(sender, queue, "ops@example.com", nil).NotifyAdmin(context.Background(), Message{Subject: "queued"})
	assert.Len(t, queue.queued, 1)
	assert.Empty(t, sender.sent)

	broken := &failingQueue{}
	NewDispatcher(sender, broken, "ops@example.com", nil).NotifyAdmin(context.Background(), Message{Subject: "direct"})
	assert.Equal(t, 1, broken.calls)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "direct", sender.sent[0].Subject)
}

func TestDispatcherIgnoresCanceledRequestContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var seen error
	sender := senderFunc(func(ctx context.Context, _ Email) error {
		seen = ctx.Err()
		return nil
	})
	NewDispatcher(sender, nil, "ops@example.com", nil).NotifyAdmin(ctx, Message{Subject: "late"})
	assert.NoError(t, seen)
}

type senderFunc func(context.Context, Email) error

func (f senderFunc) Send(ctx context.Context, e Email) error { return f(ctx, e) }

func TestAdminEmailTaskRoundTrip(t *testing.T) {
	email := Email{To: "ops@example.com", Subject: "New Lead Received", Text: "body"}
	task, err := NewAdminEmailTask(email)
	require.NoError(t, err)
	assert.Equal(t, TypeAdminEmail, task.Type())

	sender := &captureSender{}
	require.NoError(t, HandleAdminEmailTask(sender)(context.Background(), task))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, email, sender.sent[0])

	bad := asynq.NewTask(TypeAdminEmail, []byte("{not json"))
	err = HandleAdminEmailTask(sender)(context.Background(), bad)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestMessagesEscapeHTMLAndFillBlanks(t *testing.T) {
	msg := LeadMessage(models.Lead{ID: primitive.NewObjectID(), Name: "<script>x</script>", Phone: "+919812345678"})
	assert.Contains(t, msg.Text, "Message: N/A")
	assert.NotContains(t, msg.HTML, "<script>")
	assert.Contains(t, msg.HTML, "&lt;script&gt;")
	assert.Equal(t, "New Lead Captured", msg.Subject)
}
