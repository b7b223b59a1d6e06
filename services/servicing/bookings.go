package servicing

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"coolrentals/database"
	"coolrentals/database/query"
	"coolrentals/models"
	"coolrentals/services/notification"
	"coolrentals/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

const (
	bookingNotFound     = "Service booking not found"
	defaultBookingLimit = 10
	dateLayout          = "2006-01-02"
)

var (
	time24h = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	time12h = regexp.MustCompile(`(?i)^(0?[1-9]|1[0-2]):([0-5]\d)\s?(AM|PM)$`)
)

// NormalizeTime accepts "HH:mm" or "h:mm AM/PM" and returns the 24-hour form.
func NormalizeTime(value string) (string, error) {
	value = strings.TrimSpace(value)
	if time24h.MatchString(value) {
		return value, nil
	}
	m := time12h.FindStringSubmatch(value)
	if m == nil {
		return "", utils.ValidationError("Time must be in HH:mm 24-hour format")
	}
	hour, _ := strconv.Atoi(m[1])
	switch strings.ToUpper(m[3]) {
	case "PM":
		if hour != 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	}
	return fmt.Sprintf("%02d:%s", hour, m[2]), nil
}

// CheckPreferredDate rejects dates before the current calendar day in loc.
// Today itself is allowed.
func CheckPreferredDate(value string, now time.Time, loc *time.Location) error {
	day, err := time.ParseInLocation(dateLayout, strings.TrimSpace(value), loc)
	if err != nil {
		return utils.ValidationError("Date must be in YYYY-MM-DD format")
	}
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	if day.Before(today) {
		return utils.ValidationError("Booking date must be in the future")
	}
	return nil
}

func (s *DefaultBookingService) Create(ctx context.Context, req models.ServiceBookingRequest) (*models.ServiceBooking, error) {
	preferredTime, err := NormalizeTime(req.PreferredTime)
	if err != nil {
		return nil, err
	}

	oid, err := utils.ParseObjectID(req.ServiceID, serviceNotFound)
	if err != nil {
		return nil, utils.ValidationError("Service ID must be a valid ObjectId")
	}
	svc, err := s.Services.GetByID(ctx, oid)
	if err != nil {
		return nil, serviceLookupError(err)
	}

	if err := CheckPreferredDate(req.PreferredDate, s.Now(), s.Location); err != nil {
		return nil, err
	}

	booking := &models.ServiceBooking{
		ServiceID:     svc.ID,
		Name:          req.Name,
		Phone:         req.Phone,
		PreferredDate: req.PreferredDate,
		PreferredTime: preferredTime,
		Address:       req.Address,
		Notes:         req.Notes,
		Status:        models.InquiryNew,
	}
	if err := s.Repo.Create(ctx, booking); err != nil {
		return nil, utils.InternalError(fmt.Errorf("failed to create service booking: %w", err))
	}
	booking.ServiceTitle = svc.Title

	s.Notifier.NotifyAdmin(ctx, notification.ServiceBookingMessage(*booking, svc.Title))
	return booking, nil
}

// BookingListParams filter and window the admin booking list.
type BookingListParams struct {
	Status string
	Page   int64
	Limit  int64
}

// ParseBookingListParams reads status, page and limit. Page defaults to 1 and
// limit to 10 when missing or not positive.
func ParseBookingListParams(values url.Values) BookingListParams {
	p := BookingListParams{
		Status: strings.TrimSpace(values.Get("status")),
		Page:   1,
		Limit:  defaultBookingLimit,
	}
	if v, err := strconv.ParseInt(values.Get("page"), 10, 64); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.ParseInt(values.Get("limit"), 10, 64); err == nil && v > 0 {
		p.Limit = v
	}
	return p
}

// BookingPage is one page of bookings with the size of the whole match.
type BookingPage struct {
	Bookings []models.ServiceBooking
	Total    int64
	Page     int64
	Limit    int64
}

func (s *DefaultBookingService) List(ctx context.Context, params BookingListParams) (*BookingPage, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = defaultBookingLimit
	}

	var filter query.Filter
	if params.Status != "" {
		filter = query.And(query.Eq("status", params.Status))
	}
	q := query.Query{
		Filter: filter,
		Sort:   query.NewestFirst,
		Skip:   query.PageSkip(params.Page, params.Limit),
		Limit:  params.Limit,
	}

	var (
		bookings []models.ServiceBooking
		total    int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		bookings, err = s.Repo.Find(gctx, q)
		return err
	})
	g.Go(func() (err error) {
		total, err = s.Repo.Count(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, utils.InternalError(fmt.Errorf("failed to list service bookings: %w", err))
	}

	if err := s.attachServiceTitles(ctx, bookings); err != nil {
		return nil, utils.InternalError(err)
	}
	return &BookingPage{Bookings: bookings, Total: total, Page: params.Page, Limit: params.Limit}, nil
}

// attachServiceTitles fills ServiceTitle from the catalog. Bookings whose
// service has since been deleted keep an empty title.
func (s *DefaultBookingService) attachServiceTitles(ctx context.Context, bookings []models.ServiceBooking) error {
	if len(bookings) == 0 {
		return nil
	}
	seen := map[primitive.ObjectID]bool{}
	ids := make([]any, 0, len(bookings))
	for _, b := range bookings {
		if !seen[b.ServiceID] {
			seen[b.ServiceID] = true
			ids = append(ids, b.ServiceID)
		}
	}
	services, err := s.Services.Find(ctx, query.Query{Filter: query.And(query.In("_id", ids...))})
	if err != nil {
		return fmt.Errorf("failed to load booked services: %w", err)
	}
	titles := make(map[primitive.ObjectID]string, len(services))
	for _, svc := range services {
		titles[svc.ID] = svc.Title
	}
	for i := range bookings {
		bookings[i].ServiceTitle = titles[bookings[i].ServiceID]
	}
	return nil
}

func (s *DefaultBookingService) UpdateStatus(ctx context.Context, id, status string) (*models.ServiceBooking, error) {
	next := models.InquiryStatus(status)
	if !next.Valid() {
		return nil, utils.ValidationError("Invalid status. Must be one of: " + models.StatusChoices(models.InquiryStatuses))
	}
	oid, err := utils.ParseObjectID(id, bookingNotFound)
	if err != nil {
		return nil, err
	}
	updated, err := s.Repo.SetStatus(ctx, oid, next)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, utils.NotFoundError(bookingNotFound)
		}
		return nil, utils.InternalError(err)
	}
	return updated, nil
}
