package submissions

import (
	"context"
	"errors"
	"testing"
	"time"

	"coolrentals/database/query"
	"coolrentals/models"
	"coolrentals/services/notification"
	"coolrentals/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// store is an in-memory repository for any of the submission kinds.
type store[T any] struct {
	items  []T
	stamp  func(*T)
	failOn bool
}

func (s *store[T]) Create(_ context.Context, item *T) error {
	if s.failOn {
		return errors.New("write failed")
	}
	s.stamp(item)
	s.items = append(s.items, *item)
	return nil
}

func (s *store[T]) Find(_ context.Context, q query.Query) ([]T, error) {
	return query.Apply(q, s.items)
}

type subjects []string

func (s *subjects) NotifyAdmin(_ context.Context, msg notification.Message) {
	*s = append(*s, msg.Subject)
}

var tick = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func nextTick() time.Time {
	tick = tick.Add(time.Minute)
	return tick
}

func newService() (*DefaultSubmissionService, *store[models.Lead], *subjects) {
	leads := &store[models.Lead]{stamp: func(l *models.Lead) { l.ID = primitive.NewObjectID(); l.CreatedAt = nextTick() }}
	vendors := &store[models.VendorListing]{stamp: func(v *models.VendorListing) { v.ID = primitive.NewObjectID(); v.CreatedAt = nextTick() }}
	contacts := &store[models.Contact]{stamp: func(c *models.Contact) { c.ID = primitive.NewObjectID(); c.CreatedAt = nextTick() }}
	sent := &subjects{}
	return &DefaultSubmissionService{Leads: leads, Vendors: vendors, Contacts: contacts, Notifier: sent}, leads, sent
}

func TestSubmissionsPersistAndNotify(t *testing.T) {
	svc, _, sent := newService()
	ctx := context.Background()

	lead, err := svc.CreateLead(ctx, models.LeadRequest{Name: "Kiran", Phone: "+919812345678"})
	require.NoError(t, err)
	assert.False(t, lead.ID.IsZero())

	_, err = svc.CreateVendorListing(ctx, models.VendorListingRequest{Name: "Kiran", Phone: "+919812345678", BusinessName: "Cool Co"})
	require.NoError(t, err)

	_, err = svc.CreateContact(ctx, models.ContactRequest{Name: "Kiran", Email: "k@example.com", Phone: "+919812345678", Message: "Call me"})
	require.NoError(t, err)

	assert.Len(t, *sent, 3)
}

func TestListLeadsNewestFirst(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	for _, name := range []string{"first", "second", "third"} {
		_, err := svc.CreateLead(ctx, models.LeadRequest{Name: name, Phone: "+919812345678"})
		require.NoError(t, err)
	}

	leads, err := svc.ListLeads(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 3)
	assert.Equal(t, "third", leads[0].Name)
	assert.Equal(t, "first", leads[2].Name)
}

func TestStoreFailureIsInternalAndSilent(t *testing.T) {
	svc, leads, sent := newService()
	leads.failOn = true

	_, err := svc.CreateLead(context.Background(), models.LeadRequest{Name: "x", Phone: "+919812345678"})
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindInternal))
	assert.Empty(t, *sent)
}
