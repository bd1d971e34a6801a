package flow

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/pricing"
)

var (
	ErrFlowClosed     = errors.New("booking flow is closed")
	ErrFlowBusy       = errors.New("another operation is already in flight")
	ErrAtLastStep     = errors.New("cannot advance past the payment step")
	ErrCouponApplied  = errors.New("a coupon is already applied, remove it first")
	ErrNoCouponCode   = errors.New("coupon code is required")
	ErrTravelerFields = errors.New("traveler details are incomplete")
)

// TripInfo is the sequencer's local view of the catalog item being booked:
// just the numbers pricing needs.
type TripInfo struct {
	UnitPrice     int64
	SingleRoomFee int64
	MaxTravelers  int
	Currency      string
	AddOns        []pricing.AddOn
}

// DraftUpdate is one step's partial output. Nil fields are left untouched
// by the merge; AddOnIDs is replaced wholesale when non-nil.
type DraftUpdate struct {
	DepartureDate   *string
	TravelerCount   *int
	Travelers       []entity.Traveler
	RoomTier        *entity.RoomTier
	AddOnIDs        []string
	SpecialRequests *string
}

// Sequencer orders the three booking steps, owns the draft, and keeps the
// draft store and history stack in sync with every transition. It is
// driven from a single goroutine; it is not safe for concurrent use.
type Sequencer struct {
	tripID     string
	trip       TripInfo
	taxRateBps int64

	store   DraftStore
	history HistoryPort
	coupons CouponClient
	log     *zap.Logger

	step  Step
	draft *BookingDraft
	busy  bool
	alive bool

	orchestrator *Orchestrator
	onClose      func()
}

// NewSequencer mounts the flow for one trip. If the store holds a draft
// for this trip the flow resumes at the stored step; otherwise it starts
// fresh at the traveler step. History entries are pushed for every step
// up to the resume point so back-navigation retraces the visited steps.
func NewSequencer(tripID string, trip TripInfo, taxRateBps int64, store DraftStore, history HistoryPort, coupons CouponClient, log *zap.Logger) *Sequencer {
	s := &Sequencer{
		tripID:     tripID,
		trip:       trip,
		taxRateBps: taxRateBps,
		store:      store,
		history:    history,
		coupons:    coupons,
		log:        log.With(zap.String("component", "sequencer"), zap.String("trip_id", tripID)),
		step:       StepTravelerInfo,
		draft:      NewDraft(tripID),
		alive:      true,
	}

	if step, draft, ok := store.Load(tripID); ok {
		s.step = step
		s.draft = draft
		s.log.Info("Resumed stored draft", zap.Int("step", int(step)))
	}

	history.SetHandler(s.handleNavigation)
	for step := StepTravelerInfo; step <= s.step; step++ {
		history.Push(step)
	}

	return s
}

// SetOnClose registers the host-page callback fired when the flow closes.
func (s *Sequencer) SetOnClose(fn func()) {
	s.onClose = fn
}

// AttachOrchestrator ties the payment orchestrator's liveness to the
// flow's: closing the sequencer also closes the orchestrator, so a
// checkout result still in flight is discarded instead of applied to a
// flow the user already left.
func (s *Sequencer) AttachOrchestrator(o *Orchestrator) {
	s.orchestrator = o
}

func (s *Sequencer) Step() Step {
	return s.step
}

// Draft returns a copy; mutations go through Advance, Update and the
// coupon operations.
func (s *Sequencer) Draft() *BookingDraft {
	return s.draft.Clone()
}

func (s *Sequencer) Alive() bool {
	return s.alive
}

// Advance validates the current step, merges the step's output into the
// draft, reprices, persists, pushes a history entry and moves forward.
// A non-nil field-error map means validation blocked the transition and
// the draft is unchanged.
func (s *Sequencer) Advance(update DraftUpdate) (map[string]string, error) {
	if !s.alive {
		return nil, ErrFlowClosed
	}
	if s.busy {
		return nil, ErrFlowBusy
	}
	if s.step >= StepPayment {
		return nil, ErrAtLastStep
	}

	draft := s.draft.Clone()
	s.merge(draft, update)

	if s.step == StepTravelerInfo {
		if errs := draft.ValidateTravelers(); errs != nil {
			return errs, ErrTravelerFields
		}
	}

	s.reprice(draft)
	s.draft = draft
	s.step++
	s.store.Save(s.tripID, s.step, s.draft)
	s.history.Push(s.step)

	return nil, nil
}

// Update merges a partial change without leaving the current step, used
// for price-affecting edits (traveler count, room tier, add-ons).
func (s *Sequencer) Update(update DraftUpdate) error {
	if !s.alive {
		return ErrFlowClosed
	}

	draft := s.draft.Clone()
	s.merge(draft, update)
	s.reprice(draft)

	s.draft = draft
	s.store.Save(s.tripID, s.step, s.draft)
	return nil
}

// ApplyCoupon submits the code and current subtotal to the remote
// validator and stores the returned discount verbatim. A second coupon
// requires removing the first.
func (s *Sequencer) ApplyCoupon(ctx context.Context, code string) error {
	if !s.alive {
		return ErrFlowClosed
	}
	if s.busy {
		return ErrFlowBusy
	}
	if code == "" {
		return ErrNoCouponCode
	}
	if s.draft.Coupon != nil {
		return ErrCouponApplied
	}

	s.busy = true
	application, err := s.coupons.Validate(ctx, code, s.tripID, s.draft.Price.Subtotal)
	s.busy = false

	// The flow may have been closed while the call was in flight.
	if !s.alive {
		return ErrFlowClosed
	}
	if err != nil {
		return err
	}

	draft := s.draft.Clone()
	draft.Coupon = application
	s.reprice(draft)

	s.draft = draft
	s.store.Save(s.tripID, s.step, s.draft)
	s.log.Info("Coupon applied", zap.String("code", application.Code), zap.Int64("discount", application.Discount))
	return nil
}

// RemoveCoupon is purely local: drop the discount and recompute.
func (s *Sequencer) RemoveCoupon() error {
	if !s.alive {
		return ErrFlowClosed
	}
	if s.draft.Coupon == nil {
		return nil
	}

	draft := s.draft.Clone()
	draft.Coupon = nil
	s.reprice(draft)

	s.draft = draft
	s.store.Save(s.tripID, s.step, s.draft)
	return nil
}

// Retreat delegates to native back navigation above step 1 so the history
// stack and the sequencer stay consistent; at step 1 it closes the flow.
func (s *Sequencer) Retreat() {
	if !s.alive {
		return
	}

	if s.step > StepTravelerInfo {
		s.history.Back()
		return
	}
	s.Close()
}

// Close clears the stored draft and the flow's history entries, resets to
// an empty step-1 draft, and notifies the host page. A closed flow stays
// closed; back-navigation cannot resurrect it.
func (s *Sequencer) Close() {
	if !s.alive {
		return
	}

	s.store.Clear(s.tripID)
	s.history.Clear()
	s.step = StepTravelerInfo
	s.draft = NewDraft(s.tripID)
	s.alive = false

	if s.orchestrator != nil {
		s.orchestrator.Close()
	}

	s.log.Info("Flow closed")
	if s.onClose != nil {
		s.onClose()
	}
}

// handleNavigation applies a history event. An entry without a step tag
// predates the flow, meaning the user navigated out of it.
func (s *Sequencer) handleNavigation(step Step, ok bool) {
	if !s.alive {
		return
	}

	if !ok {
		s.Close()
		return
	}

	s.step = step
	s.store.Save(s.tripID, s.step, s.draft)
}

func (s *Sequencer) merge(draft *BookingDraft, update DraftUpdate) {
	if update.DepartureDate != nil {
		draft.DepartureDate = *update.DepartureDate
	}
	if update.TravelerCount != nil {
		draft.TravelerCount = *update.TravelerCount
	}
	if update.Travelers != nil {
		draft.Travelers = make([]entity.Traveler, len(update.Travelers))
		copy(draft.Travelers, update.Travelers)
	}
	if update.RoomTier != nil {
		draft.RoomTier = *update.RoomTier
	}
	if update.AddOnIDs != nil {
		draft.AddOnIDs = make([]string, len(update.AddOnIDs))
		copy(draft.AddOnIDs, update.AddOnIDs)
	}
	if update.SpecialRequests != nil {
		draft.SpecialRequests = *update.SpecialRequests
	}

	// Keep the traveler list sized to the count so per-traveler forms
	// line up; added slots start empty.
	if draft.TravelerCount > 0 && len(draft.Travelers) != draft.TravelerCount {
		travelers := make([]entity.Traveler, draft.TravelerCount)
		copy(travelers, draft.Travelers)
		draft.Travelers = travelers
	}
}

func (s *Sequencer) reprice(draft *BookingDraft) {
	var discount int64
	if draft.Coupon != nil {
		discount = draft.Coupon.Discount
	}

	draft.Price = pricing.Compute(pricing.Input{
		UnitPrice:     s.trip.UnitPrice,
		SingleRoomFee: s.trip.SingleRoomFee,
		TravelerCount: draft.TravelerCount,
		RoomTier:      draft.RoomTier,
		AddOns:        s.selectedAddOns(draft),
		Discount:      discount,
		TaxRateBps:    s.taxRateBps,
	})
}

func (s *Sequencer) selectedAddOns(draft *BookingDraft) []pricing.AddOn {
	if len(draft.AddOnIDs) == 0 {
		return nil
	}

	selected := make([]pricing.AddOn, 0, len(draft.AddOnIDs))
	for _, id := range draft.AddOnIDs {
		for _, addon := range s.trip.AddOns {
			if addon.ID == id {
				selected = append(selected, addon)
				break
			}
		}
	}
	return selected
}
