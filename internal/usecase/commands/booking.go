package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"eleva-booking/internal/domain/event"
	"eleva-booking/internal/domain/meeting"
	"eleva-booking/internal/domain/slot"
	"eleva-booking/internal/infra"
	"eleva-booking/internal/pkg/clock"
	"eleva-booking/internal/pkg/config"
	"eleva-booking/internal/pkg/errs"
	"eleva-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingCommands interface {
	ReserveSlot(ctx context.Context, in ReserveSlotInput) (*ReserveSlotResult, error)
	ConfirmBooking(ctx context.Context, in ConfirmBookingInput) (*ConfirmBookingResult, error)
	CancelMeeting(ctx context.Context, in CancelMeetingInput) error
	DeleteExpiredReservations(ctx context.Context) (int64, error)
}

// bookingUseCaseImpl resolves booking conflicts. Resolution is layered:
// the per-slot lock bounds concurrent confirms, the reservation upsert
// arbitrates checkout holds, and the partial unique index on confirmed
// meetings is the final authority. Only the index is required for
// correctness; the layers above it exist to fail fast.
type bookingUseCaseImpl struct {
	uow      shared.UnitOfWork
	locker   shared.SlotLocker
	calendar shared.CalendarProvider
	clock    clock.Clock
	cfg      config.BookingConfig
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	locker shared.SlotLocker,
	calendar shared.CalendarProvider,
	clk clock.Clock,
	cfg config.BookingConfig,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:      uow,
		locker:   locker,
		calendar: calendar,
		clock:    clk,
		cfg:      cfg,
	}
}

type ReserveSlotInput struct {
	EventID    uuid.UUID
	StartTime  time.Time
	GuestEmail string
}

type ReserveSlotResult struct {
	ExpiresAt time.Time
}

// ReserveSlot places a short-lived hold on a slot while the guest
// completes checkout. An expired hold is treated as open and taken
// over; a live hold by the same guest is extended.
func (c *bookingUseCaseImpl) ReserveSlot(ctx context.Context, in ReserveSlotInput) (*ReserveSlotResult, error) {
	guestEmail, err := meeting.NormalizeEmail(in.GuestEmail)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	now := c.clock.Now()
	start := in.StartTime.UTC()
	expiresAt := now.Add(c.cfg.ReservationTTL)

	var result *ReserveSlotResult
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ev, err := c.activeEvent(ctx, tx.Reads(), in.EventID)
		if err != nil {
			return err
		}

		// A confirmed meeting by another guest is a final conflict, not
		// an unavailable slot; the caller gets the distinction.
		if conflicting, err := tx.Reads().ConflictingMeeting(ctx, ev.ID(), start, guestEmail); err != nil {
			return err
		} else if conflicting != nil {
			return errs.Mark(errs.New("slot taken by another guest"), errs.ErrSlotAlreadyBooked)
		}

		open, err := c.slotIsOpen(ctx, tx.Reads(), ev, start, now)
		if err != nil {
			return err
		}
		if !open {
			return errs.Mark(errs.New("slot is not available"), errs.ErrInvalidTimeSlot)
		}

		outcome, err := tx.Reservations().TryReserve(ctx, tx.DB(), ev.ID(), start, guestEmail, expiresAt, now)
		if err != nil {
			return err
		}
		if outcome == shared.ReserveOutcomeHeld {
			return errs.Mark(errs.New("slot held by another guest"), errs.ErrSlotTemporarilyReserved)
		}

		result = &ReserveSlotResult{ExpiresAt: expiresAt}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

type ConfirmBookingInput struct {
	EventID          uuid.UUID
	StartTime        time.Time
	GuestName        string
	GuestEmail       string
	GuestTimezone    string
	PaymentReference string
}

type ConfirmBookingResult struct {
	MeetingID uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	// AlreadyExisted is true when an earlier attempt with the same
	// payment reference or natural key already created the meeting.
	AlreadyExisted bool
}

// ConfirmBooking turns a slot into a confirmed meeting. The operation
// is idempotent: a retry with the same payment reference, or the same
// (event, start, guest email), returns the existing meeting instead of
// failing.
func (c *bookingUseCaseImpl) ConfirmBooking(ctx context.Context, in ConfirmBookingInput) (*ConfirmBookingResult, error) {
	guest, err := meeting.NewGuest(in.GuestName, in.GuestEmail, in.GuestTimezone)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	now := c.clock.Now()
	start := in.StartTime.UTC()

	release, ok, lockErr := c.locker.Acquire(ctx, in.EventID, start)
	if lockErr != nil {
		// Lock backend down: proceed, the unique index still guards.
		slog.Warn("slot lock unavailable, relying on database guard", "error", lockErr.Error())
	} else if !ok {
		return nil, errs.Mark(errs.New("another confirmation in progress"), errs.ErrSlotTemporarilyReserved)
	} else {
		defer release()
	}

	var result *ConfirmBookingResult
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		reads := tx.Reads()

		ev, err := c.activeEvent(ctx, reads, in.EventID)
		if err != nil {
			return err
		}

		// Idempotency: payment reference first, then the natural key.
		if existing, err := reads.MeetingByPaymentReference(ctx, in.PaymentReference); err != nil {
			return err
		} else if existing != nil {
			result = existingResult(existing)
			return nil
		}
		if existing, err := reads.MeetingByNaturalKey(ctx, ev.ID(), start, guest.Email()); err != nil {
			return err
		} else if existing != nil {
			result = existingResult(existing)
			return nil
		}

		if conflicting, err := reads.ConflictingMeeting(ctx, ev.ID(), start, guest.Email()); err != nil {
			return err
		} else if conflicting != nil {
			return errs.Mark(errs.New("slot taken by another guest"), errs.ErrSlotAlreadyBooked)
		}

		// A live hold by another guest blocks confirmation; expired
		// holds and this guest's own hold pass through.
		outcome, err := tx.Reservations().TryReserve(ctx, tx.DB(), ev.ID(), start, guest.Email(), now.Add(c.cfg.SlotLockTTL), now)
		if err != nil {
			return err
		}
		if outcome == shared.ReserveOutcomeHeld {
			return errs.Mark(errs.New("slot reserved by another guest"), errs.ErrSlotTemporarilyReserved)
		}

		open, err := c.slotIsOpen(ctx, reads, ev, start, now)
		if err != nil {
			return err
		}
		if !open {
			return errs.Mark(errs.New("slot is not available"), errs.ErrInvalidTimeSlot)
		}

		m, err := meeting.NewMeeting(ev.ID(), ev.ExpertID(), guest, start, ev.Duration(), in.PaymentReference, now)
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		id, err := tx.Meetings().Create(ctx, tx.DB(), m)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				// Lost the race after our checks. If the winner is this
				// guest's own retry the confirmation still succeeds.
				existing, readErr := reads.MeetingByNaturalKey(ctx, ev.ID(), start, guest.Email())
				if readErr != nil {
					return readErr
				}
				if existing != nil {
					result = existingResult(existing)
					return nil
				}
				return errs.Mark(err, errs.ErrSlotAlreadyBooked)
			}
			return err
		}

		if err := tx.Reservations().Release(ctx, tx.DB(), ev.ID(), start, guest.Email()); err != nil {
			return err
		}

		if err := c.enqueueNotification(ctx, tx, "meeting_confirmed", m, now); err != nil {
			return err
		}

		result = &ConfirmBookingResult{MeetingID: id, StartTime: m.StartTime(), EndTime: m.EndTime()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

type CancelMeetingInput struct {
	MeetingID uuid.UUID
	ExpertID  uuid.UUID
}

func (c *bookingUseCaseImpl) CancelMeeting(ctx context.Context, in CancelMeetingInput) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Meetings().Cancel(ctx, tx.DB(), in.MeetingID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrMeetingNotFound)
			}
			return err
		}

		payload, err := json.Marshal(map[string]any{
			"meeting_id": in.MeetingID,
			"expert_id":  in.ExpertID,
		})
		if err != nil {
			return errs.Wrap(err, "failed to encode cancellation payload")
		}
		return tx.Notifications().CreateJob(ctx, tx.DB(), "meeting_canceled", "booking", payload, now)
	})
}

// DeleteExpiredReservations is the sweep run by the expiry worker.
func (c *bookingUseCaseImpl) DeleteExpiredReservations(ctx context.Context) (int64, error) {
	now := c.clock.Now()

	var deleted int64
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Reservations().DeleteExpired(ctx, tx.DB(), now)
		if err != nil {
			return err
		}
		deleted = n
		return nil
	})
	return deleted, err
}

func (c *bookingUseCaseImpl) activeEvent(ctx context.Context, reads shared.CommandReads, eventID uuid.UUID) (*event.Event, error) {
	ev, err := reads.EventByID(ctx, eventID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrEventNotFoundOrInactive)
		}
		return nil, err
	}
	if !ev.IsActive() {
		return nil, errs.Mark(errs.New("event is inactive"), errs.ErrEventNotFoundOrInactive)
	}
	return ev, nil
}

// slotIsOpen re-runs generation and validation for the single requested
// instant. Degraded calendar data is accepted here: blocking every
// booking while the calendar service is down is worse than the small
// double-booking window it opens, and the index still guards meetings.
func (c *bookingUseCaseImpl) slotIsOpen(ctx context.Context, reads shared.CommandReads, ev *event.Event, start, now time.Time) (bool, error) {
	sched, err := reads.ScheduleByExpert(ctx, ev.ExpertID())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return false, errs.Mark(err, errs.ErrScheduleNotFound)
		}
		return false, err
	}
	blocked, err := reads.BlockedDatesByExpert(ctx, ev.ExpertID())
	if err != nil {
		return false, err
	}

	// Busy intervals outside this range cannot conflict once buffers
	// are applied.
	fetchFrom := start.Add(-sched.AfterEventBuffer())
	fetchTo := start.Add(ev.Duration() + sched.BeforeEventBuffer())
	busy, _, err := shared.CollectBusy(ctx, reads, c.calendar, ev.ExpertID(), fetchFrom, fetchTo)
	if err != nil {
		return false, err
	}

	candidates := slot.Generate(sched, ev.Duration(), start, start.Add(time.Second), now)
	valid := slot.Validate(candidates, sched, ev.Duration(), blocked, busy, now)
	return slot.Contains(valid, start), nil
}

func existingResult(m *meeting.Meeting) *ConfirmBookingResult {
	return &ConfirmBookingResult{
		MeetingID:      m.ID(),
		StartTime:      m.StartTime(),
		EndTime:        m.EndTime(),
		AlreadyExisted: true,
	}
}

func (c *bookingUseCaseImpl) enqueueNotification(ctx context.Context, tx shared.Tx, kind string, m *meeting.Meeting, now time.Time) error {
	payload, err := json.Marshal(map[string]any{
		"meeting_id":     m.ID(),
		"event_id":       m.EventID(),
		"expert_id":      m.ExpertID(),
		"guest_name":     m.Guest().Name(),
		"guest_email":    m.Guest().Email(),
		"guest_timezone": m.Guest().DisplayTimezone(),
		"start_time":     m.StartTime(),
		"end_time":       m.EndTime(),
	})
	if err != nil {
		return errs.Wrap(err, "failed to encode notification payload")
	}
	return tx.Notifications().CreateJob(ctx, tx.DB(), kind, "booking", payload, now)
}
