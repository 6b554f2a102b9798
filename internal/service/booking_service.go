package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/singleflight"

	"github.com/iliyamo/wonderland-tickets/internal/model"
	"github.com/iliyamo/wonderland-tickets/internal/queue"
	"github.com/iliyamo/wonderland-tickets/internal/repository"
)

// Redirect targets used in outcomes.
const (
	AdminDashboard = "/admin-dashboard"
	UserDashboard  = "/user-dashboard"
	LandingPage    = "/"
)

// defaultWriteAttempts bounds how often a lost conditioned write is retried
// before the booking reports ErrUpdateConflict.
const defaultWriteAttempts = 3

// sharedReadTimeout bounds a coalesced lookup, which outlives the caller
// that started it.
const sharedReadTimeout = 5 * time.Second

// publishTimeout bounds the broker round trip made after a booking.
const publishTimeout = 3 * time.Second

// EventPublisher receives booking events.  A nil publisher disables events.
type EventPublisher interface {
	PublishSeatsBooked(ctx context.Context, ev queue.SeatsBookedEvent) error
}

// Outcome is what a catalog mutation reports back to the browser: a
// human-readable message and where to send the user afterwards.  It is
// filled in for failures too.
type Outcome struct {
	Showing   string
	Seats     int
	Remaining int
	Redirect  string
	Message   string
}

// BookingService owns every read and write of the showing catalog.
type BookingService struct {
	store     repository.ShowingStore
	publisher EventPublisher
	locks     *keyedMutex
	reads     singleflight.Group
	attempts  int
	now       func() time.Time
}

// NewBookingService wires the service.  publisher may be nil.
func NewBookingService(store repository.ShowingStore, publisher EventPublisher) *BookingService {
	return &BookingService{
		store:     store,
		publisher: publisher,
		locks:     newKeyedMutex(),
		attempts:  defaultWriteAttempts,
		now:       time.Now,
	}
}

// ParseSeatCount validates raw form input as a non-negative integer.
func ParseSeatCount(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSeatCount, raw)
	}
	return n, nil
}

// DashboardFor picks the post-booking destination for the caller's role.
func DashboardFor(by model.Identity) string {
	if by.IsAdmin() {
		return AdminDashboard
	}
	return UserDashboard
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}

// BookSeats decrements the available seats of the showing named name by
// seats.  All mutations of one showing are serialized in-process, and the
// write itself is conditioned on the version that was read, so a writer in
// another instance cannot be overwritten: a lost write is re-read and
// re-validated, and reported as ErrUpdateConflict once attempts run out.
func (s *BookingService) BookSeats(ctx context.Context, name string, seats int, by model.Identity) (Outcome, error) {
	out := Outcome{Showing: name, Seats: seats, Redirect: DashboardFor(by)}
	if seats < 0 {
		out.Message = fmt.Sprintf("Invalid seat count %d", seats)
		return out, ErrInvalidSeatCount
	}

	booked, err := s.bookLocked(ctx, name, seats, &out)
	if err != nil {
		return out, err
	}
	s.publish(ctx, booked, seats, by)
	return out, nil
}

func (s *BookingService) bookLocked(ctx context.Context, name string, seats int, out *Outcome) (*model.Showing, error) {
	unlock := s.locks.Lock(name)
	defer unlock()

	lostWrite := false
	for attempt := 0; attempt < s.attempts; attempt++ {
		sh, err := s.store.FindByName(ctx, name)
		if err != nil {
			if errors.Is(err, repository.ErrShowingNotFound) {
				if lostWrite {
					// Deleted between our read and our write.
					break
				}
				out.Message = "Movie not found in the database."
				return nil, ErrShowingNotFound
			}
			out.Message = "Failed to book seats"
			return nil, storeErr(err)
		}
		out.Remaining = sh.AvailableSeats
		if seats > sh.AvailableSeats {
			out.Message = fmt.Sprintf("Not enough seats available for %d seat(s) in %s", seats, name)
			return nil, ErrInsufficientSeats
		}
		remaining := sh.AvailableSeats - seats
		ok, err := s.store.UpdateSeats(ctx, sh.ID, sh.Version, remaining)
		if err != nil {
			out.Message = "Failed to book seats"
			return nil, storeErr(err)
		}
		if ok {
			sh.AvailableSeats = remaining
			sh.Version++
			out.Remaining = remaining
			out.Message = fmt.Sprintf("Booking successful for %d seat(s) in %s", seats, name)
			return sh, nil
		}
		lostWrite = true
		log.Warnf("booking: conditioned write lost for %q (attempt %d)", name, attempt+1)
	}
	out.Message = "Failed to update available seats"
	return nil, ErrUpdateConflict
}

// publish emits the seats.booked event.  It waits at most publishTimeout,
// dial included, and failures are logged only.
func (s *BookingService) publish(ctx context.Context, sh *model.Showing, seats int, by model.Identity) {
	if s.publisher == nil {
		return
	}
	ev := queue.SeatsBookedEvent{
		EventID:     uuid.NewString(),
		ShowingID:   sh.ID,
		ShowingName: sh.Name,
		ShowTime:    sh.ShowTime,
		ScreenNo:    sh.ScreenNo,
		Seats:       seats,
		Remaining:   sh.AvailableSeats,
		BookedBy:    by.Username,
		Role:        string(by.Role),
		BookedAt:    s.now().UTC().Format(time.RFC3339),
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.publisher.PublishSeatsBooked(pctx, ev); err != nil {
		log.Warnf("booking: publish seats.booked for %q failed: %v", sh.Name, err)
	}
}

// SetAvailableSeats is the admin override: it sets the absolute number of
// available seats.  Negative values, and values above a recorded capacity,
// are rejected with ErrInvalidSeatCount.
func (s *BookingService) SetAvailableSeats(ctx context.Context, name string, value int) (Outcome, error) {
	out := Outcome{Showing: name, Seats: value, Redirect: AdminDashboard}
	if value < 0 {
		out.Message = fmt.Sprintf("Invalid seat count %d", value)
		return out, ErrInvalidSeatCount
	}

	unlock := s.locks.Lock(name)
	defer unlock()

	for attempt := 0; attempt < s.attempts; attempt++ {
		sh, err := s.store.FindByName(ctx, name)
		if err != nil {
			if errors.Is(err, repository.ErrShowingNotFound) {
				out.Redirect = LandingPage
				out.Message = "Movie not found in the database"
				return out, ErrShowingNotFound
			}
			out.Message = "Failed to update available seats"
			return out, storeErr(err)
		}
		if sh.TotalSeats > 0 && value > sh.TotalSeats {
			out.Remaining = sh.AvailableSeats
			out.Message = fmt.Sprintf("%s has only %d seats", name, sh.TotalSeats)
			return out, ErrInvalidSeatCount
		}
		ok, err := s.store.UpdateSeats(ctx, sh.ID, sh.Version, value)
		if err != nil {
			out.Message = "Failed to update available seats"
			return out, storeErr(err)
		}
		if ok {
			out.Remaining = value
			out.Message = fmt.Sprintf("Updated available seats for %s successfully", name)
			return out, nil
		}
	}
	out.Message = "Failed to update available seats"
	return out, ErrUpdateConflict
}

// AddShowing inserts a showing.  Duplicate names are accepted; lookups then
// resolve to the oldest one.  A missing capacity defaults to the initial
// number of available seats.
func (s *BookingService) AddShowing(ctx context.Context, sh model.Showing) (Outcome, *model.Showing, error) {
	sh.Name = strings.TrimSpace(sh.Name)
	out := Outcome{Showing: sh.Name, Seats: sh.AvailableSeats, Redirect: AdminDashboard}
	if sh.Name == "" {
		out.Message = "Movie name is required"
		return out, nil, ErrInvalidShowing
	}
	if sh.AvailableSeats < 0 || sh.TotalSeats < 0 {
		out.Message = "Seat counts must not be negative"
		return out, nil, ErrInvalidSeatCount
	}
	if sh.TotalSeats == 0 {
		sh.TotalSeats = sh.AvailableSeats
	}
	if sh.AvailableSeats > sh.TotalSeats {
		out.Message = "Available seats exceed total seats"
		return out, nil, ErrInvalidSeatCount
	}
	if err := s.store.Insert(ctx, &sh); err != nil {
		out.Message = "Failed to add the movie"
		return out, nil, storeErr(err)
	}
	out.Remaining = sh.AvailableSeats
	out.Message = "Movie added successfully"
	return out, &sh, nil
}

// DeleteShowing removes the first showing with the given name.
func (s *BookingService) DeleteShowing(ctx context.Context, name string) (Outcome, error) {
	out := Outcome{Showing: name, Redirect: AdminDashboard}

	unlock := s.locks.Lock(name)
	defer unlock()

	sh, err := s.store.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrShowingNotFound) {
			out.Redirect = LandingPage
			out.Message = "Movie not found in the database"
			return out, ErrShowingNotFound
		}
		out.Message = "Failed to delete the movie"
		return out, storeErr(err)
	}
	ok, err := s.store.DeleteByID(ctx, sh.ID)
	if err != nil {
		out.Message = "Failed to delete the movie"
		return out, storeErr(err)
	}
	if !ok {
		out.Redirect = LandingPage
		out.Message = "Failed to delete the movie"
		return out, ErrShowingNotFound
	}
	out.Message = "Movie deleted successfully"
	return out, nil
}

// ListShowings returns the whole catalog.
func (s *BookingService) ListShowings(ctx context.Context) ([]model.Showing, error) {
	showings, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return showings, nil
}

// ListByCategory returns the showings of one category.
func (s *BookingService) ListByCategory(ctx context.Context, category string) ([]model.Showing, error) {
	showings, err := s.store.ListByCategory(ctx, category)
	if err != nil {
		return nil, storeErr(err)
	}
	return showings, nil
}

// ShowingDetails looks a showing up by name.  Concurrent lookups of the
// same name share one store round trip.  The shared lookup runs detached
// from any single caller; each caller only waits as long as its own ctx.
func (s *BookingService) ShowingDetails(ctx context.Context, name string) (*model.Showing, error) {
	ch := s.reads.DoChan(name, func() (interface{}, error) {
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedReadTimeout)
		defer cancel()
		return s.store.FindByName(lctx, name)
	})
	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, storeErr(ctx.Err())
	case res = <-ch:
	}
	v, err := res.Val, res.Err
	if err != nil {
		if errors.Is(err, repository.ErrShowingNotFound) {
			return nil, ErrShowingNotFound
		}
		return nil, storeErr(err)
	}
	sh := *v.(*model.Showing)
	return &sh, nil
}
