package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	bookingRepo "tidyhome/database/repository/booking"
	catalogRepo "tidyhome/database/repository/catalog"
	cleanerRepo "tidyhome/database/repository/cleaner"
	"tidyhome/models"
	"tidyhome/services/catalog"
)

// memStore backs the in-memory repositories used across the booking tests.
// ClaimSlot mirrors the production semantics: a single atomic check-then-push
// against the claim set per (cleaner, date).
type memStore struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
	claims   map[string][]memClaim
	cleaners map[string]*models.Cleaner
}

type memClaim struct {
	bookingID  string
	start, end int
}

func newMemStore() *memStore {
	return &memStore{
		bookings: make(map[string]*models.Booking),
		claims:   make(map[string][]memClaim),
		cleaners: make(map[string]*models.Cleaner),
	}
}

func claimKey(cleanerID, date string) string { return cleanerID + "|" + date }

type memBookingRepo struct{ store *memStore }

func (r *memBookingRepo) Create(_ context.Context, b *models.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *b
	r.store.bookings[b.ID] = &cp
	return nil
}

func (r *memBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memBookingRepo) ListForCleanerOn(_ context.Context, cleanerID, date string) ([]models.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []models.Booking
	for _, b := range r.store.bookings {
		if b.Assignment.CleanerID == cleanerID && b.Slot.Date == date && b.Status != models.StatusCancelled {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot.Start < out[j].Slot.Start })
	return out, nil
}

func (r *memBookingRepo) ListPendingUnassigned(_ context.Context, fromDate string) ([]models.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []models.Booking
	for _, b := range r.store.bookings {
		if b.Status == models.StatusPending && !b.Assignment.Assigned && b.Slot.Date >= fromDate {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memBookingRepo) UpdateStatus(_ context.Context, id string, status models.BookingStatus, asg models.Assignment, at time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.Status = status
	b.Assignment = asg
	b.UpdatedAt = at
	switch status {
	case models.StatusCompleted:
		b.CompletedAt = &at
	case models.StatusCancelled:
		b.CancelledAt = &at
	}
	return nil
}

func (r *memBookingRepo) ClaimSlot(_ context.Context, bookingID, cleanerID string, slot models.Slot) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	key := claimKey(cleanerID, slot.Date)
	for _, c := range r.store.claims[key] {
		if c.start < slot.End && slot.Start < c.end {
			return bookingRepo.ErrSlotTaken
		}
	}
	r.store.claims[key] = append(r.store.claims[key], memClaim{bookingID: bookingID, start: slot.Start, end: slot.End})
	return nil
}

func (r *memBookingRepo) ReleaseSlot(_ context.Context, bookingID, cleanerID string, date string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	key := claimKey(cleanerID, date)
	kept := r.store.claims[key][:0]
	for _, c := range r.store.claims[key] {
		if c.bookingID != bookingID {
			kept = append(kept, c)
		}
	}
	r.store.claims[key] = kept
	return nil
}

type memCleanerRepo struct{ store *memStore }

func (r *memCleanerRepo) Create(_ context.Context, c *models.Cleaner) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *c
	r.store.cleaners[c.ID] = &cp
	return nil
}

func (r *memCleanerRepo) GetByID(_ context.Context, id string) (*models.Cleaner, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.cleaners[id]
	if !ok {
		return nil, cleanerRepo.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memCleanerRepo) ListActiveOn(_ context.Context, date string) ([]models.Cleaner, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []models.Cleaner
	for _, c := range r.store.cleaners {
		if !c.Active {
			continue
		}
		if _, ok := c.WorkingHoursOn(date); ok {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memCleanerRepo) Update(_ context.Context, c *models.Cleaner) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.cleaners[c.ID]; !ok {
		return cleanerRepo.ErrNotFound
	}
	cp := *c
	r.store.cleaners[c.ID] = &cp
	return nil
}

func (r *memCleanerRepo) AddTimeOff(_ context.Context, id string, entry models.TimeOffEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.cleaners[id]
	if !ok {
		return cleanerRepo.ErrNotFound
	}
	c.TimeOff = append(c.TimeOff, entry)
	return nil
}

// stubCatalog serves a mutable rules snapshot so tests can edit prices after
// a booking exists and assert the stored price does not move.
type stubCatalog struct {
	mu    sync.Mutex
	rules models.PricingRules
}

var _ catalog.CatalogService = (*stubCatalog)(nil)

func newStubCatalog() *stubCatalog {
	rules := *catalog.DefaultPricingRules()
	rules.AddOnPrices = map[string]float64{
		"window-washing": 35.0,
		"oven-clean":     28.5,
	}
	return &stubCatalog{rules: rules}
}

func (s *stubCatalog) Rules(context.Context) (*models.PricingRules, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.rules
	return &cp, nil
}

func (s *stubCatalog) ResolveService(_ context.Context, id string) (*models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	price, ok := s.rules.AddOnPrices[id]
	if !ok {
		return nil, catalogRepo.ErrNotFound
	}
	return &models.Service{ID: id, Category: models.CategoryAddOn, UnitPrice: price, Active: true}, nil
}

func (s *stubCatalog) ListServices(context.Context) ([]models.Service, error) {
	return nil, nil
}

func (s *stubCatalog) UpdateService(_ context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules.AddOnPrices[svc.ID] = svc.UnitPrice
	return nil
}

func (s *stubCatalog) setAddOnPrice(id string, price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules.AddOnPrices[id] = price
}

// recordEmitter captures emitted events for assertions.
type recordEmitter struct {
	mu     sync.Mutex
	events []models.BookingEvent
}

func (e *recordEmitter) Emit(_ context.Context, ev models.BookingEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, ev)
}

func (e *recordEmitter) byType(t string) []models.BookingEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []models.BookingEvent
	for _, ev := range e.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

// testDate stays comfortably in the future so re-scan queries, which start
// from the current day, always include it. Test cleaners work every day
// 08:00-17:00, so the weekday does not matter.
var testDate = time.Now().AddDate(0, 1, 0).Format("2006-01-02")

func testCleaner(id string) models.Cleaner {
	var hours [7]models.WorkingHours
	for i := range hours {
		hours[i] = models.WorkingHours{Start: 8 * 60, End: 17 * 60}
	}
	return models.Cleaner{ID: id, Name: "Cleaner " + id, Active: true, Hours: hours, CreatedAt: time.Now()}
}

func newTestService(cleaners ...models.Cleaner) (*DefaultBookingService, *stubCatalog, *recordEmitter) {
	store := newMemStore()
	for i := range cleaners {
		cp := cleaners[i]
		store.cleaners[cp.ID] = &cp
	}
	cat := newStubCatalog()
	emitter := &recordEmitter{}
	svc := NewBookingService(&memBookingRepo{store: store}, &memCleanerRepo{store: store}, cat, emitter)
	return svc, cat, emitter
}

func testRequest(customer string) models.BookingRequest {
	return models.BookingRequest{
		CustomerID: customer,
		Date:       testDate,
		Start:      14 * 60,
		End:        16 * 60,
		House: models.HouseProfile{
			SizeBand: "1500-2000",
			Rooms:    map[models.RoomType]int{models.RoomBedroom: 1, models.RoomBathroom: 1},
		},
		Frequency: models.FrequencyOneTime,
	}
}
