package units

import (
	"context"
	"math"
	"net/url"
	"sync"
	"testing"
	"time"

	"coolrentals/database"
	"coolrentals/database/query"
	"coolrentals/models"
	"coolrentals/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryUnits evaluates queries in memory with the same filter tree the Mongo repo compiles.
type memoryUnits struct {
	mu      sync.Mutex
	units   []models.Unit
	lastSet bson.M
}

func (m *memoryUnits) Find(_ context.Context, q query.Query) ([]models.Unit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return query.Apply(q, m.units)
}

func (m *memoryUnits) Count(_ context.Context, f query.Filter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched, err := query.Apply(query.Query{Filter: f}, m.units)
	return int64(len(matched)), err
}

func (m *memoryUnits) GetByID(_ context.Context, id primitive.ObjectID) (*models.Unit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.units {
		if u.ID == id {
			u := u
			return &u, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *memoryUnits) Create(_ context.Context, unit *models.Unit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC().Truncate(time.Millisecond)
	unit.ID = primitive.NewObjectID()
	unit.CreatedAt, unit.UpdatedAt = now, now
	m.units = append(m.units, *unit)
	return nil
}

func (m *memoryUnits) Update(_ context.Context, id primitive.ObjectID, fields bson.M) (*models.Unit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastSet = fields
	for i := range m.units {
		if m.units[i].ID == id {
			setUnitFields(&m.units[i], fields)
			u := m.units[i]
			return &u, nil
		}
	}
	return nil, database.ErrNotFound
}

func setUnitFields(u *models.Unit, fields bson.M) {
	for k, v := range fields {
		switch k {
		case "brand":
			u.Brand = v.(string)
		case "model":
			u.Model = v.(string)
		case "capacity":
			u.Capacity = v.(string)
		case "description":
			u.Description = v.(string)
		case "location":
			u.Location = v.(string)
		case "type":
			u.Type = v.(models.UnitType)
		case "status":
			u.Status = v.(models.UnitStatus)
		case "price":
			u.Price = v.(models.Price)
		case "images":
			u.Images = v.([]string)
		}
	}
}

func (m *memoryUnits) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.units {
		if m.units[i].ID == id {
			m.units = append(m.units[:i], m.units[i+1:]...)
			return nil
		}
	}
	return database.ErrNotFound
}

var clock = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// seed adds a unit that is age minutes older than the previous reference time.
func (m *memoryUnits) seed(age int, u models.Unit) models.Unit {
	u.ID = primitive.NewObjectID()
	u.CreatedAt = clock.Add(-time.Duration(age) * time.Minute)
	if u.Status == "" {
		u.Status = models.UnitAvailable
	}
	if u.Type == "" {
		u.Type = models.UnitTypeSplit
	}
	m.units = append(m.units, u)
	return u
}

func priced(monthly float64) models.Price {
	return models.Price{Monthly: monthly, Quarterly: monthly * 3, Yearly: monthly * 12}
}

func newService() (*DefaultUnitService, *memoryUnits) {
	repo := &memoryUnits{}
	return NewDefaultUnitService(repo), repo
}

func brands(list []models.Unit) []string {
	out := make([]string, 0, len(list))
	for _, u := range list {
		out = append(out, u.Brand)
	}
	return out
}

func TestParseSearchParamsIsLenient(t *testing.T) {
	p := ParseSearchParams(url.Values{
		"minPrice": {"abc"},
		"maxPrice": {"2500"},
		"page":     {"x"},
		"limit":    {"10"},
		"brand":    {"  LG "},
	})
	assert.Nil(t, p.MinPrice)
	require.NotNil(t, p.MaxPrice)
	assert.Equal(t, 2500.0, *p.MaxPrice)
	assert.Nil(t, p.Page)
	require.NotNil(t, p.Limit)
	assert.EqualValues(t, 10, *p.Limit)
	assert.Equal(t, "LG", p.Brand)
}

func TestPriceFieldFollowsDurationIgnoringCase(t *testing.T) {
	assert.Equal(t, "price.quarterly", SearchParams{Duration: "QUARTERLY"}.PriceField())
	assert.Equal(t, "price.yearly", SearchParams{Duration: "yearly"}.PriceField())
	assert.Equal(t, "price.monthly", SearchParams{Duration: "weekly"}.PriceField())
	assert.Equal(t, "price.monthly", SearchParams{}.PriceField())
}

func TestBuildSearchQueryWindow(t *testing.T) {
	q := BuildSearchQuery(ParseSearchParams(url.Values{"limit": {"10"}, "page": {"2"}}))
	assert.EqualValues(t, 10, q.Skip)
	assert.EqualValues(t, 10, q.Limit)

	q = BuildSearchQuery(ParseSearchParams(url.Values{"limit": {"10"}, "page": {"-3"}}))
	assert.EqualValues(t, 0, q.Skip)

	q = BuildSearchQuery(ParseSearchParams(url.Values{"limit": {"2"}, "page": {"4611686018427387905"}}))
	assert.EqualValues(t, int64(math.MaxInt64), q.Skip)

	q = BuildSearchQuery(ParseSearchParams(url.Values{"limit": {"0"}, "page": {"4"}}))
	assert.EqualValues(t, 0, q.Skip)
	assert.EqualValues(t, 0, q.Limit)
	assert.Equal(t, query.NewestFirst, q.Sort)
}

func TestSearchAppliesOnlySuppliedFilters(t *testing.T) {
	svc, repo := newService()
	repo.seed(1, models.Unit{Brand: "LG", Model: "Dual Inverter", Capacity: "1.5 Ton", Location: "Pune", Price: priced(1200)})
	repo.seed(2, models.Unit{Brand: "Voltas", Model: "Classic", Capacity: "1 Ton", Type: models.UnitTypeWindow, Location: "Mumbai", Price: priced(800)})
	repo.seed(3, models.Unit{Brand: "Daikin", Model: "FTKF", Capacity: "1.5 Ton", Location: "Pune West", Description: "quiet inverter", Price: priced(1600)})

	ctx := context.Background()
	cases := []struct {
		name   string
		values url.Values
		want   []string
	}{
		{"no filters", url.Values{}, []string{"LG", "Voltas", "Daikin"}},
		{"search spans description", url.Values{"search": {"INVERTER"}}, []string{"LG", "Daikin"}},
		{"location substring", url.Values{"location": {"pune"}}, []string{"LG", "Daikin"}},
		{"capacity exact", url.Values{"capacity": {"1.5 Ton"}}, []string{"LG", "Daikin"}},
		{"type exact", url.Values{"type": {"Window"}}, []string{"Voltas"}},
		{"min only", url.Values{"minPrice": {"1000"}}, []string{"LG", "Daikin"}},
		{"min and max", url.Values{"minPrice": {"1000"}, "maxPrice": {"1500"}}, []string{"LG"}},
		{"combined", url.Values{"location": {"pune"}, "maxPrice": {"1300"}}, []string{"LG"}},
		{"unparseable price ignored", url.Values{"minPrice": {"cheap"}}, []string{"LG", "Voltas", "Daikin"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := svc.Search(ctx, ParseSearchParams(tc.values))
			require.NoError(t, err)
			assert.Equal(t, tc.want, brands(res.Units))
			assert.EqualValues(t, len(tc.want), res.Total)
			assert.Nil(t, res.Page)
			assert.Nil(t, res.Limit)
		})
	}
}

func TestSearchFiltersOnDurationTier(t *testing.T) {
	svc, repo := newService()
	// Monthly 400 but quarterly 1100: only the quarterly tier clears 1000.
	repo.seed(1, models.Unit{Brand: "Cheap", Price: models.Price{Monthly: 400, Quarterly: 1100, Yearly: 4000}})
	repo.seed(2, models.Unit{Brand: "Pricey", Price: models.Price{Monthly: 1200, Quarterly: 900, Yearly: 9000}})

	res, err := svc.Search(context.Background(), ParseSearchParams(url.Values{"duration": {"QUARTERLY"}, "minPrice": {"1000"}}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Cheap"}, brands(res.Units))
}

func TestSearchPaginatesAndReportsWindow(t *testing.T) {
	svc, repo := newService()
	for i := 1; i <= 25; i++ {
		repo.seed(i, models.Unit{Brand: string(rune('A' + i - 1)), Price: priced(1000)})
	}

	res, err := svc.Search(context.Background(), ParseSearchParams(url.Values{"limit": {"10"}, "page": {"2"}}))
	require.NoError(t, err)
	require.Len(t, res.Units, 10)
	assert.Equal(t, "K", res.Units[0].Brand)
	assert.Equal(t, "T", res.Units[9].Brand)
	assert.EqualValues(t, 25, res.Total)
	require.NotNil(t, res.Page)
	require.NotNil(t, res.Limit)
	assert.EqualValues(t, 2, *res.Page)
	assert.EqualValues(t, 10, *res.Limit)
}

func TestSearchPastLastPageIsEmpty(t *testing.T) {
	svc, repo := newService()
	repo.seed(1, models.Unit{Brand: "LG", Price: priced(1000)})
	repo.seed(2, models.Unit{Brand: "Voltas", Price: priced(1000)})

	res, err := svc.Search(context.Background(), ParseSearchParams(url.Values{"limit": {"2"}, "page": {"4611686018427387905"}}))
	require.NoError(t, err)
	assert.Empty(t, res.Units)
	assert.EqualValues(t, 2, res.Total)
}

func TestRelatedUnitsPrefersAttributeMatches(t *testing.T) {
	svc, repo := newService()
	target := repo.seed(0, models.Unit{Brand: "LG", Capacity: "1.5 Ton", Location: "Pune", Type: models.UnitTypeSplit})
	for i := 1; i <= 7; i++ {
		repo.seed(i, models.Unit{Brand: "LG", Capacity: "2 Ton", Location: "Delhi", Type: models.UnitTypeWindow})
	}
	repo.seed(8, models.Unit{Brand: "Other", Capacity: "3 Ton", Location: "Goa", Type: models.UnitTypeWindow})

	related, err := svc.RelatedUnits(context.Background(), target)
	require.NoError(t, err)
	require.Len(t, related, RelatedLimit)
	for _, u := range related {
		assert.NotEqual(t, target.ID, u.ID)
		assert.Equal(t, "LG", u.Brand)
		assert.Equal(t, models.UnitAvailable, u.Status)
	}
}

func TestRelatedUnitsBackfillsWithoutDuplicates(t *testing.T) {
	svc, repo := newService()
	target := repo.seed(0, models.Unit{Brand: "LG", Capacity: "1.5 Ton", Location: "Pune", Type: models.UnitTypeSplit})
	repo.seed(1, models.Unit{Brand: "LG", Capacity: "2 Ton", Location: "Delhi", Type: models.UnitTypeWindow})
	repo.seed(2, models.Unit{Brand: "Blue Star", Capacity: "2 Ton", Location: "Pune", Type: models.UnitTypeWindow})
	repo.seed(3, models.Unit{Brand: "LG", Status: models.UnitRentedOut})
	repo.seed(4, models.Unit{Brand: "Other1", Capacity: "3 Ton", Location: "Goa", Type: models.UnitTypeWindow})
	repo.seed(5, models.Unit{Brand: "Other2", Capacity: "3 Ton", Location: "Goa", Type: models.UnitTypeWindow})

	related, err := svc.RelatedUnits(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, []string{"LG", "Blue Star", "Other1", "Other2"}, brands(related))

	seen := map[primitive.ObjectID]bool{}
	for _, u := range related {
		assert.False(t, seen[u.ID], "duplicate related unit")
		seen[u.ID] = true
	}
}

func TestGetDetailUnknownAndMalformedIDsAreNotFound(t *testing.T) {
	svc, _ := newService()
	for _, id := range []string{primitive.NewObjectID().Hex(), "not-an-id"} {
		_, err := svc.GetDetail(context.Background(), id)
		require.Error(t, err)
		assert.True(t, utils.IsKind(err, utils.KindNotFound))
		assert.Equal(t, "Unit not found", utils.AsAppError(err).Message)
	}
}

func TestNormalizePrice(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	got, err := NormalizePrice(models.PriceInput{Flat: f(1000)}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.Price{Monthly: 1000, Quarterly: 3000, Yearly: 12000}, got)

	got, err = NormalizePrice(models.PriceInput{Monthly: f(1000), Quarterly: f(2500)}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.Price{Monthly: 1000, Quarterly: 2500, Yearly: 12000}, got)

	existing := models.Price{Monthly: 1000, Quarterly: 2800, Yearly: 11000}
	got, err = NormalizePrice(models.PriceInput{Yearly: f(10000)}, &existing)
	require.NoError(t, err)
	assert.Equal(t, models.Price{Monthly: 1000, Quarterly: 2800, Yearly: 10000}, got)

	_, err = NormalizePrice(models.PriceInput{Quarterly: f(100)}, nil)
	assert.EqualError(t, err, "Monthly price is required")

	_, err = NormalizePrice(models.PriceInput{Monthly: f(-1)}, nil)
	assert.EqualError(t, err, "Monthly price must be a positive number")

	_, err = NormalizePrice(models.PriceInput{Flat: f(-5)}, nil)
	assert.EqualError(t, err, "Price must be a positive number")
}

func TestCreateThenGetRoundTrips(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	flat := 1500.0
	created, err := svc.Create(ctx, models.CreateUnitRequest{
		Brand:       "Hitachi",
		Model:       "Kaze",
		Capacity:    "1.5 Ton",
		Type:        models.UnitTypeSplit,
		Description: "5 star",
		Location:    "Pune",
		Price:       &models.PriceInput{Flat: &flat},
		Images:      []string{"https://img.example/1.jpg"},
	})
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())
	assert.Equal(t, models.UnitAvailable, created.Status)

	fetched, err := svc.GetByID(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, *created, *fetched)
	assert.Equal(t, models.Price{Monthly: 1500, Quarterly: 4500, Yearly: 18000}, fetched.Price)
	assert.Equal(t, []string{"https://img.example/1.jpg"}, fetched.Images)
}

func TestUpdateKeepsUnsuppliedFields(t *testing.T) {
	svc, repo := newService()
	unit := repo.seed(0, models.Unit{Brand: "LG", Model: "A", Location: "Pune", Price: models.Price{Monthly: 1000, Quarterly: 2800, Yearly: 11000}})

	q := 2600.0
	loc := "Mumbai"
	updated, err := svc.Update(context.Background(), unit.ID.Hex(), models.UpdateUnitRequest{
		Location: &loc,
		Price:    &models.PriceInput{Quarterly: &q},
	})
	require.NoError(t, err)
	assert.Equal(t, "LG", updated.Brand)
	assert.Equal(t, "Mumbai", updated.Location)
	assert.Equal(t, models.Price{Monthly: 1000, Quarterly: 2600, Yearly: 11000}, updated.Price)
}

func TestUpdateSetsOnlySuppliedFields(t *testing.T) {
	svc, repo := newService()
	unit := repo.seed(0, models.Unit{Brand: "LG", Model: "A", Location: "Pune", Price: models.Price{Monthly: 1000, Quarterly: 2800, Yearly: 11000}})

	flat := 1200.0
	status := models.UnitRentedOut
	_, err := svc.Update(context.Background(), unit.ID.Hex(), models.UpdateUnitRequest{
		Price:  &models.PriceInput{Flat: &flat},
		Status: &status,
	})
	require.NoError(t, err)
	assert.Equal(t, bson.M{
		"price":  models.Price{Monthly: 1200, Quarterly: 3600, Yearly: 14400},
		"status": models.UnitRentedOut,
	}, repo.lastSet)
}

// editingUnits lets another writer change the brand right after a read.
type editingUnits struct {
	*memoryUnits
}

func (e editingUnits) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Unit, error) {
	u, err := e.memoryUnits.GetByID(ctx, id)
	if err == nil {
		_, _ = e.memoryUnits.Update(ctx, id, bson.M{"brand": "Daikin"})
	}
	return u, err
}

func TestUpdateKeepsConcurrentEdits(t *testing.T) {
	repo := &memoryUnits{}
	svc := &DefaultUnitService{Repo: editingUnits{repo}}
	unit := repo.seed(0, models.Unit{Brand: "LG", Model: "A", Price: models.Price{Monthly: 1000, Quarterly: 3000, Yearly: 12000}})

	yearly := 11000.0
	updated, err := svc.Update(context.Background(), unit.ID.Hex(), models.UpdateUnitRequest{
		Price: &models.PriceInput{Yearly: &yearly},
	})
	require.NoError(t, err)
	assert.Equal(t, "Daikin", updated.Brand)
	assert.Equal(t, models.Price{Monthly: 1000, Quarterly: 3000, Yearly: 11000}, updated.Price)
	assert.Equal(t, bson.M{"price": updated.Price}, repo.lastSet)
}

func TestUpdateUnknownUnit(t *testing.T) {
	svc, _ := newService()
	brand := "LG"
	_, err := svc.Update(context.Background(), primitive.NewObjectID().Hex(), models.UpdateUnitRequest{Brand: &brand})
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestDeleteUnknownUnit(t *testing.T) {
	svc, _ := newService()
	err := svc.Delete(context.Background(), primitive.NewObjectID().Hex())
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}
