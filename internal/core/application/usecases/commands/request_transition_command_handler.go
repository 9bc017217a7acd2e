package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/pkg/errs"
)

// TransitionResult is the outcome of an executed transition.
// Carried back to the caller even on failure so that the UI can render
// inline errors next to the action that produced them.
type TransitionResult struct {
	Success   bool
	OldStatus order.Status
	NewStatus order.Status
	Errors    []string
	Warnings  []string
}

// TransitionDispatcher receives committed transitions for outward
// side effects (notifications, realtime broadcasts). Implementations must
// not block the executor and must swallow their own failures.
type TransitionDispatcher interface {
	Dispatch(orderID kernel.UUID, oldStatus, newStatus order.Status, recipients []kernel.UUID)
}

// RequestTransitionCommandHandler is the single authoritative gate for
// mutating order status. It guarantees at-most-one winning transition per
// order at a time:
//
//	snapshot the status the caller acted on (lock-free read)
//	begin transaction
//	  SELECT ... FOR UPDATE on the order row  (per-order lock, bounded wait)
//	  fail Conflict when the caller's observed status is stale
//	  fail Forbidden when the actor has no standing over this order
//	  no-op success when the requested status is already current
//	  re-run the transition validator against the freshly read status
//	  write new status + append exactly one history entry
//	commit
//	dispatch side effects (best-effort, after commit)
//
// A standing or validation failure against the locked status is downgraded
// to Conflict when the requested edge was legal against the snapshot: the
// caller lost a race, not their permissions, and should refresh and retry.
//
// Transitions on different orders proceed fully in parallel; transitions on
// the same order serialize on the row lock.
type RequestTransitionCommandHandler struct {
	uowFactory  UoWFactory
	validator   services.TransitionValidator
	dispatcher  TransitionDispatcher
	now         func() time.Time
	lockTimeout time.Duration
}

// NewRequestTransitionCommandHandler creates the transition executor.
//
// lockTimeout bounds the wait for the per-order lock; two legitimate actors
// can race on the same order in normal operation, so an expired wait
// surfaces as a conflict rather than blocking the caller indefinitely.
func NewRequestTransitionCommandHandler(
	uowFactory UoWFactory,
	validator services.TransitionValidator,
	dispatcher TransitionDispatcher,
	now func() time.Time,
	lockTimeout time.Duration,
) RequestTransitionCommandHandler {
	return RequestTransitionCommandHandler{
		uowFactory:  uowFactory,
		validator:   validator,
		dispatcher:  dispatcher,
		now:         now,
		lockTimeout: lockTimeout,
	}
}

// Handle executes the transition request.
//
// Typed failures: errs.ErrObjectNotFound, errs.ErrConflict, errs.ErrForbidden,
// errs.ErrInvalidTransition, errs.ErrMissingJustification,
// errs.ErrStorageUnavailable. Once the lock is acquired the check-and-write
// either fully commits or fully fails; there are no partial writes.
func (h RequestTransitionCommandHandler) Handle(
	ctx context.Context,
	cmd RequestTransitionCommand,
) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return failedResult(err), err
	}

	lockCtx, cancel := context.WithTimeout(ctx, h.lockTimeout)
	defer cancel()

	uow := h.uowFactory.Create()

	// The status the caller acted on. Callers supplying an expected status
	// name it explicitly; for everyone else a lock-free read approximates it
	// closely enough to tell a lost race from a request that was never legal.
	observed := cmd.ExpectedStatus()
	if !cmd.HasExpectedStatus() {
		if snapshot, snapErr := uow.OrderRepository().Get(ctx, cmd.OrderID()); snapErr == nil {
			observed = snapshot.Status()
		}
	}

	if err := uow.Begin(lockCtx); err != nil {
		return failedResult(err), storageFailure(err)
	}

	defer func() {
		_ = uow.Rollback(lockCtx)
	}()

	ord, err := uow.OrderRepository().GetForUpdate(lockCtx, cmd.OrderID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return failedResult(err), err
		}
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: lock wait for order %s expired", errs.ErrConflict, cmd.OrderID())
			return failedResult(err), err
		}
		return failedResult(err), storageFailure(err)
	}

	oldStatus := ord.Status()

	if cmd.HasExpectedStatus() && cmd.ExpectedStatus() != oldStatus {
		conflict := errs.NewConflictError(
			cmd.OrderID().String(), cmd.ExpectedStatus().String(), oldStatus.String(),
		)
		return failedResult(conflict), conflict
	}

	if !ord.HasStanding(cmd.ActorID(), cmd.ActorRole()) {
		if conflict := lostRace(cmd, observed, oldStatus); conflict != nil {
			return failedResult(conflict), conflict
		}
		return failedResult(errs.ErrForbidden), errs.ErrForbidden
	}

	// Retried client requests repeat an already-applied transition; treat
	// them as successes without a second history entry.
	if cmd.RequestedStatus() == oldStatus {
		if err = uow.Commit(lockCtx); err != nil {
			return failedResult(err), storageFailure(err)
		}
		return TransitionResult{Success: true, OldStatus: oldStatus, NewStatus: oldStatus}, nil
	}

	validation, err := h.validator.Validate(
		oldStatus, cmd.RequestedStatus(), cmd.ActorRole(), cmd.Reason(),
	)
	if err != nil {
		if conflict := lostRace(cmd, observed, oldStatus); conflict != nil {
			return failedResult(conflict), conflict
		}
		return TransitionResult{
			OldStatus: oldStatus,
			Errors:    validation.Errors,
			Warnings:  validation.Warnings,
		}, err
	}

	if h.isCourierClaim(ord, cmd) {
		if err = ord.AssignCourier(cmd.ActorID()); err != nil {
			return failedResult(err), err
		}
	}

	occurredAt := h.now()
	if err = ord.ApplyTransition(cmd.RequestedStatus(), occurredAt); err != nil {
		return failedResult(err), err
	}

	entry, err := order.NewHistoryEntry(
		cmd.RequestedStatus(), occurredAt, cmd.HistoryActor(), cmd.Reason(),
	)
	if err != nil {
		return failedResult(err), err
	}

	if err = uow.OrderRepository().Update(lockCtx, ord); err != nil {
		return failedResult(err), storageFailure(err)
	}

	if err = uow.HistoryRepository().Append(lockCtx, ord.ID(), entry); err != nil {
		return failedResult(err), storageFailure(err)
	}

	if err = uow.Commit(lockCtx); err != nil {
		return failedResult(err), storageFailure(err)
	}

	h.dispatcher.Dispatch(ord.ID(), oldStatus, ord.Status(), h.recipients(ord))

	return TransitionResult{
		Success:   true,
		OldStatus: oldStatus,
		NewStatus: ord.Status(),
		Warnings:  validation.Warnings,
	}, nil
}

// isCourierClaim reports whether this transition is a courier picking up an
// unassigned ready order; the claim sets courier_id within the same
// transaction as the status write.
func (h RequestTransitionCommandHandler) isCourierClaim(
	ord *order.Order, cmd RequestTransitionCommand,
) bool {
	return cmd.ActorRole() == order.RoleCourier &&
		ord.Status() == order.Ready &&
		cmd.RequestedStatus() == order.OutForDelivery &&
		ord.Courier() == nil
}

func (h RequestTransitionCommandHandler) recipients(ord *order.Order) []kernel.UUID {
	recipients := []kernel.UUID{ord.UserID(), ord.RestaurantID()}
	if courier := ord.Courier(); courier != nil {
		recipients = append(recipients, *courier)
	}
	return recipients
}

// lostRace classifies a post-lock failure. When the order has moved past the
// status the caller acted on and the requested edge was legal from that
// status, the failure is a lost race against a concurrent transition and is
// reported as a retryable conflict rather than a permission or validation
// error. Returns nil when the failure is genuine.
func lostRace(cmd RequestTransitionCommand, observed, current order.Status) error {
	if observed == order.Unknown || observed == current {
		return nil
	}
	if !order.CanTransition(observed, cmd.RequestedStatus(), cmd.ActorRole()) {
		return nil
	}
	return errs.NewConflictError(cmd.OrderID().String(), observed.String(), current.String())
}

func failedResult(err error) TransitionResult {
	return TransitionResult{Errors: []string{err.Error()}}
}

// storageFailure wraps unexpected storage errors so callers can classify
// them as transient and retry with backoff. Typed domain errors pass
// through untouched.
func storageFailure(err error) error {
	if errors.Is(err, errs.ErrObjectNotFound) ||
		errors.Is(err, errs.ErrConflict) ||
		errors.Is(err, errs.ErrForbidden) {
		return err
	}
	return fmt.Errorf("%w: %w", errs.ErrStorageUnavailable, err)
}
