package booking

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"tidyhome/models"
)

// Concurrent requests naming the same cleaner for the same slot with no
// substitution allowed must resolve to exactly one confirmed booking; the
// losers stay pending unassigned.
func TestConcurrentClaimsSingleWinner(t *testing.T) {
	svc, _, emitter := newTestService(testCleaner("c1"))
	ctx := context.Background()

	const n = 16
	results := make([]*models.Booking, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := testRequest(fmt.Sprintf("cust-%d", i))
			req.PreferredCleanerID = "c1"
			req.NoSubstitute = true
			results[i], errs[i] = svc.CreateBooking(ctx, req)
		}(i)
	}
	wg.Wait()

	confirmed, unassigned := 0, 0
	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("request %d failed: %v", i, errs[i])
		}
		switch {
		case results[i].Status == models.StatusConfirmed:
			confirmed++
			if results[i].Assignment.CleanerID != "c1" {
				t.Errorf("winner assigned to %s, want c1", results[i].Assignment.CleanerID)
			}
		case results[i].Status == models.StatusPending && !results[i].Assignment.Assigned:
			unassigned++
		default:
			t.Errorf("request %d: unexpected outcome %s/%+v", i, results[i].Status, results[i].Assignment)
		}
	}
	if confirmed != 1 {
		t.Errorf("confirmed = %d, want exactly 1", confirmed)
	}
	if unassigned != n-1 {
		t.Errorf("unassigned = %d, want %d", unassigned, n-1)
	}
	if got := emitter.byType(models.EventBookingConfirmed); len(got) != 1 {
		t.Errorf("confirmed events = %d, want 1", len(got))
	}
	if got := emitter.byType(models.EventBookingUnassigned); len(got) != n-1 {
		t.Errorf("unassigned events = %d, want %d", len(got), n-1)
	}
}

// With substitution allowed and two cleaners on the roster, concurrent
// requests for the same slot fill both cleaners and no more.
func TestConcurrentClaimsFillRoster(t *testing.T) {
	svc, _, _ := newTestService(testCleaner("c1"), testCleaner("c2"))
	ctx := context.Background()

	const n = 8
	results := make([]*models.Booking, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b, err := svc.CreateBooking(ctx, testRequest(fmt.Sprintf("cust-%d", i)))
			if err != nil {
				t.Errorf("request %d failed: %v", i, err)
				return
			}
			results[i] = b
		}(i)
	}
	wg.Wait()

	byCleaner := map[string]int{}
	for _, b := range results {
		if b == nil {
			continue
		}
		if b.Assignment.Assigned {
			byCleaner[b.Assignment.CleanerID]++
		}
	}
	if byCleaner["c1"] != 1 || byCleaner["c2"] != 1 {
		t.Errorf("assignments per cleaner = %v, want one each", byCleaner)
	}
}

// Randomized overlapping windows racing on one cleaner: whatever subset gets
// confirmed, the confirmed slots must be pairwise non-overlapping.
func TestConcurrentRandomSlotsPairwiseExclusive(t *testing.T) {
	svc, _, _ := newTestService(testCleaner("c1"))
	ctx := context.Background()
	rng := rand.New(rand.NewSource(1))

	const n = 32
	slots := make([]models.Slot, n)
	for i := range slots {
		start := 8*60 + rng.Intn(7*60) // somewhere in the 08:00-17:00 window
		slots[i] = models.Slot{Date: testDate, Start: start, End: start + 60 + rng.Intn(2*60)}
	}

	var wg sync.WaitGroup
	results := make([]*models.Booking, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := testRequest(fmt.Sprintf("cust-%d", i))
			req.Start, req.End = slots[i].Start, slots[i].End
			req.PreferredCleanerID = "c1"
			req.NoSubstitute = true
			b, err := svc.CreateBooking(ctx, req)
			if err != nil {
				t.Errorf("request %d failed: %v", i, err)
				return
			}
			results[i] = b
		}(i)
	}
	wg.Wait()

	var confirmed []*models.Booking
	for _, b := range results {
		if b != nil && b.Status == models.StatusConfirmed {
			confirmed = append(confirmed, b)
		}
	}
	if len(confirmed) == 0 {
		t.Fatal("no request won any slot")
	}
	for i := 0; i < len(confirmed); i++ {
		for j := i + 1; j < len(confirmed); j++ {
			if confirmed[i].Slot.Overlaps(confirmed[j].Slot) {
				t.Errorf("confirmed bookings %s and %s overlap: %v vs %v",
					confirmed[i].ID, confirmed[j].ID, confirmed[i].Slot, confirmed[j].Slot)
			}
		}
	}
}

// A reassignment racing against new bookings for the target cleaner never
// double-books: either the reassignment wins the slot or it reports a
// conflict, and the claim set stays consistent.
func TestConcurrentReassignAndCreate(t *testing.T) {
	svc, _, _ := newTestService(testCleaner("c1"), testCleaner("c2"))
	ctx := context.Background()

	req := testRequest("cust-1")
	req.PreferredCleanerID = "c1"
	b, err := svc.CreateBooking(ctx, req)
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	var wg sync.WaitGroup
	var reassignErr, createErr error
	var rival *models.Booking
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, reassignErr = svc.ReassignCleaner(ctx, b.ID, "c2")
	}()
	go func() {
		defer wg.Done()
		r := testRequest("cust-2")
		r.PreferredCleanerID = "c2"
		r.NoSubstitute = true
		rival, createErr = svc.CreateBooking(ctx, r)
	}()
	wg.Wait()

	if createErr != nil {
		t.Fatalf("rival create failed: %v", createErr)
	}
	moved, err := svc.GetBooking(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetBooking: %v", err)
	}

	switch {
	case reassignErr == nil:
		// Reassignment won; the rival must have lost the slot.
		if moved.Assignment.CleanerID != "c2" {
			t.Errorf("reassigned booking on %s, want c2", moved.Assignment.CleanerID)
		}
		if rival.Status == models.StatusConfirmed {
			t.Error("both the reassignment and the rival booking hold c2's slot")
		}
	default:
		// Reassignment lost; the original stays with c1 and the rival holds c2.
		if moved.Assignment.CleanerID != "c1" {
			t.Errorf("booking on %s after failed reassignment, want c1", moved.Assignment.CleanerID)
		}
		if rival.Status != models.StatusConfirmed || rival.Assignment.CleanerID != "c2" {
			t.Errorf("rival = %s/%+v, want confirmed on c2", rival.Status, rival.Assignment)
		}
	}
}
