package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testClock = func() time.Time {
	return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
}

type transitionFixture struct {
	orderRepo   *MockOrderRepository
	historyRepo *MockHistoryRepository
	uow         *MockUoW
	factory     *MockUoWFactory
	dispatcher  *MockDispatcher
	handler     commands.RequestTransitionCommandHandler
}

func newTransitionFixture() *transitionFixture {
	f := &transitionFixture{
		orderRepo:   new(MockOrderRepository),
		historyRepo: new(MockHistoryRepository),
		uow:         new(MockUoW),
		factory:     new(MockUoWFactory),
		dispatcher:  new(MockDispatcher),
	}
	f.handler = commands.NewRequestTransitionCommandHandler(
		f.factory,
		services.NewTransitionValidator(),
		f.dispatcher,
		testClock,
		time.Second,
	)
	return f
}

func (f *transitionFixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.orderRepo.AssertExpectations(t)
	f.historyRepo.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.factory.AssertExpectations(t)
	f.dispatcher.AssertExpectations(t)
}

func restoredOrder(t *testing.T, userID, restaurantID kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	ord, err := order.RestoreOrder(
		kernel.NewUUID(), userID, restaurantID, nil, status,
		testClock().Add(-time.Hour),
	)
	require.NoError(t, err)
	return ord
}

func TestRequestTransitionCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture()

	restaurantID := kernel.NewUUID()
	ord := restoredOrder(t, kernel.NewUUID(), restaurantID, order.Placed)

	cmd, err := commands.NewRequestTransitionCommand(
		ord.ID(), order.Confirmed, restaurantID, order.RoleSeller, "",
	)
	require.NoError(t, err)

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("Get", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		f.uow.On("Begin", mock.Anything).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("GetForUpdate", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("Update", mock.Anything, ord).Return(nil).Once(),
		f.uow.On("HistoryRepository").Return(f.historyRepo).Once(),
		f.historyRepo.On("Append", mock.Anything, ord.ID(), mock.AnythingOfType("order.HistoryEntry")).
			Return(nil).Once(),
		f.uow.On("Commit", mock.Anything).Return(nil).Once(),
		f.dispatcher.On("Dispatch", ord.ID(), order.Placed, order.Confirmed, mock.Anything).Once(),
		f.uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	result, err := f.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, order.Placed, result.OldStatus)
	assert.Equal(t, order.Confirmed, result.NewStatus)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, order.Confirmed, ord.Status())
	assert.Equal(t, testClock(), ord.StatusUpdatedAt())
	f.assertExpectations(t)
}

func TestRequestTransitionCommandHandler_Handle_IdempotentRepeat(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture()

	restaurantID := kernel.NewUUID()
	ord := restoredOrder(t, kernel.NewUUID(), restaurantID, order.Confirmed)

	cmd, err := commands.NewRequestTransitionCommand(
		ord.ID(), order.Confirmed, restaurantID, order.RoleSeller, "",
	)
	require.NoError(t, err)

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("Get", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		f.uow.On("Begin", mock.Anything).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("GetForUpdate", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		f.uow.On("Commit", mock.Anything).Return(nil).Once(),
		f.uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	result, err := f.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, order.Confirmed, result.OldStatus)
	assert.Equal(t, order.Confirmed, result.NewStatus)
	// No history entry, no dispatch.
	f.historyRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything)
	f.dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestRequestTransitionCommandHandler_Handle_StaleViewConflict(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture()

	// A seller observed ready, but a courier already took the order out.
	restaurantID := kernel.NewUUID()
	ord := restoredOrder(t, kernel.NewUUID(), restaurantID, order.OutForDelivery)

	cmd, err := commands.NewRequestTransitionCommand(
		ord.ID(), order.Cancelled, restaurantID, order.RoleSeller, "",
	)
	require.NoError(t, err)
	cmd = cmd.WithExpectedStatus(order.Ready)

	// The expected status stands in for the snapshot, so no lock-free read.
	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", mock.Anything).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("GetForUpdate", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		f.uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	result, err := f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	assert.False(t, result.Success)
	assert.Contains(t, err.Error(), "out_for_delivery")
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.assertExpectations(t)
}

func TestRequestTransitionCommandHandler_Handle_LockWaitExpired(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture()

	restaurantID := kernel.NewUUID()
	ord := restoredOrder(t, kernel.NewUUID(), restaurantID, order.Placed)
	cmd, err := commands.NewRequestTransitionCommand(
		ord.ID(), order.Confirmed, restaurantID, order.RoleSeller, "",
	)
	require.NoError(t, err)

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("Get", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		f.uow.On("Begin", mock.Anything).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("GetForUpdate", mock.Anything, ord.ID()).
			Return(nil, context.DeadlineExceeded).Once(),
		f.uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	result, err := f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	assert.False(t, result.Success)
	f.assertExpectations(t)
}

func TestRequestTransitionCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture()

	orderID := kernel.NewUUID()
	cmd, err := commands.NewRequestTransitionCommand(
		orderID, order.Confirmed, kernel.NewUUID(), order.RoleSeller, "",
	)
	require.NoError(t, err)

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("Get", mock.Anything, orderID).
			Return(nil, errs.NewObjectNotFoundError("orderId", orderID.String())).Once(),
		f.uow.On("Begin", mock.Anything).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("GetForUpdate", mock.Anything, orderID).
			Return(nil, errs.NewObjectNotFoundError("orderId", orderID.String())).Once(),
		f.uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	result, err := f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.False(t, result.Success)
	f.assertExpectations(t)
}

func TestRequestTransitionCommandHandler_Handle_Forbidden(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture()

	// A customer tries to cancel someone else's order.
	ord := restoredOrder(t, kernel.NewUUID(), kernel.NewUUID(), order.Placed)

	cmd, err := commands.NewRequestTransitionCommand(
		ord.ID(), order.Cancelled, kernel.NewUUID(), order.RoleCustomer, "",
	)
	require.NoError(t, err)

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("Get", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		f.uow.On("Begin", mock.Anything).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("GetForUpdate", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		f.uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	result, err := f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
	assert.False(t, result.Success)
	assert.Equal(t, order.Placed, ord.Status())
	f.assertExpectations(t)
}

func TestRequestTransitionCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture()

	// The customer cancellation window closed when preparation started.
	userID := kernel.NewUUID()
	ord := restoredOrder(t, userID, kernel.NewUUID(), order.Preparing)

	cmd, err := commands.NewRequestTransitionCommand(
		ord.ID(), order.Cancelled, userID, order.RoleCustomer, "",
	)
	require.NoError(t, err)

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("Get", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		f.uow.On("Begin", mock.Anything).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("GetForUpdate", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		f.uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	result, err := f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "preparing -> cancelled")
	assert.Equal(t, order.Preparing, ord.Status())
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.assertExpectations(t)
}

func TestRequestTransitionCommandHandler_Handle_RollbackNeedsReason(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture()

	ord := restoredOrder(t, kernel.NewUUID(), kernel.NewUUID(), order.Ready)

	cmd, err := commands.NewRequestTransitionCommand(
		ord.ID(), order.Preparing, kernel.NewUUID(), order.RoleAdmin, "",
	)
	require.NoError(t, err)

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("Get", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		f.uow.On("Begin", mock.Anything).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("GetForUpdate", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		f.uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	result, err := f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrMissingJustification)
	assert.False(t, result.Success)
	f.assertExpectations(t)
}

func TestRequestTransitionCommandHandler_Handle_JustifiedRollback(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture()

	ord := restoredOrder(t, kernel.NewUUID(), kernel.NewUUID(), order.Ready)
	adminID := kernel.NewUUID()

	cmd, err := commands.NewRequestTransitionCommand(
		ord.ID(), order.Preparing, adminID, order.RoleAdmin, "kitchen dropped the bag",
	)
	require.NoError(t, err)

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("Get", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		f.uow.On("Begin", mock.Anything).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("GetForUpdate", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("Update", mock.Anything, ord).Return(nil).Once(),
		f.uow.On("HistoryRepository").Return(f.historyRepo).Once(),
		f.historyRepo.On("Append", mock.Anything, ord.ID(), mock.AnythingOfType("order.HistoryEntry")).
			Return(nil).Once(),
		f.uow.On("Commit", mock.Anything).Return(nil).Once(),
		f.dispatcher.On("Dispatch", ord.ID(), order.Ready, order.Preparing, mock.Anything).Once(),
		f.uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	result, err := f.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.Success)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "rollback")
	f.assertExpectations(t)
}

func TestRequestTransitionCommandHandler_Handle_CourierClaim(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture()

	userID := kernel.NewUUID()
	restaurantID := kernel.NewUUID()
	ord := restoredOrder(t, userID, restaurantID, order.Ready)
	courierID := kernel.NewUUID()

	cmd, err := commands.NewRequestTransitionCommand(
		ord.ID(), order.OutForDelivery, courierID, order.RoleCourier, "",
	)
	require.NoError(t, err)

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("Get", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		f.uow.On("Begin", mock.Anything).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("GetForUpdate", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("Update", mock.Anything, ord).Return(nil).Once(),
		f.uow.On("HistoryRepository").Return(f.historyRepo).Once(),
		f.historyRepo.On("Append", mock.Anything, ord.ID(), mock.AnythingOfType("order.HistoryEntry")).
			Return(nil).Once(),
		f.uow.On("Commit", mock.Anything).Return(nil).Once(),
		f.dispatcher.On("Dispatch", ord.ID(), order.Ready, order.OutForDelivery,
			[]kernel.UUID{userID, restaurantID, courierID}).Once(),
		f.uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	result, err := f.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.Success)
	require.NotNil(t, ord.Courier())
	assert.True(t, ord.Courier().IsEqual(courierID))
	f.assertExpectations(t)
}

func TestRequestTransitionCommandHandler_Handle_CommitFailure(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture()

	restaurantID := kernel.NewUUID()
	ord := restoredOrder(t, kernel.NewUUID(), restaurantID, order.Placed)

	cmd, err := commands.NewRequestTransitionCommand(
		ord.ID(), order.Confirmed, restaurantID, order.RoleSeller, "",
	)
	require.NoError(t, err)

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("Get", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		f.uow.On("Begin", mock.Anything).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("GetForUpdate", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("Update", mock.Anything, ord).Return(nil).Once(),
		f.uow.On("HistoryRepository").Return(f.historyRepo).Once(),
		f.historyRepo.On("Append", mock.Anything, ord.ID(), mock.AnythingOfType("order.HistoryEntry")).
			Return(nil).Once(),
		f.uow.On("Commit", mock.Anything).Return(errors.New("connection reset")).Once(),
		f.uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	result, err := f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStorageUnavailable)
	assert.False(t, result.Success)
	f.dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

// Two couriers race to claim the same ready order. Exactly one wins the
// claim and writes one history entry; the loser, whose view of the order is
// stale by the time it holds the lock, gets a retryable conflict rather than
// a permission error.
func TestRequestTransitionCommandHandler_Handle_CourierClaimRace(t *testing.T) {
	ctx := t.Context()

	userID := kernel.NewUUID()
	restaurantID := kernel.NewUUID()
	courierA := kernel.NewUUID()
	courierB := kernel.NewUUID()

	ord := restoredOrder(t, userID, restaurantID, order.Ready)

	// Courier A claims first and wins.
	winner := newTransitionFixture()
	cmdA, err := commands.NewRequestTransitionCommand(
		ord.ID(), order.OutForDelivery, courierA, order.RoleCourier, "",
	)
	require.NoError(t, err)

	mock.InOrder(
		winner.factory.On("Create").Return(winner.uow).Once(),
		winner.uow.On("OrderRepository").Return(winner.orderRepo).Once(),
		winner.orderRepo.On("Get", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		winner.uow.On("Begin", mock.Anything).Return(nil).Once(),
		winner.uow.On("OrderRepository").Return(winner.orderRepo).Once(),
		winner.orderRepo.On("GetForUpdate", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		winner.uow.On("OrderRepository").Return(winner.orderRepo).Once(),
		winner.orderRepo.On("Update", mock.Anything, ord).Return(nil).Once(),
		winner.uow.On("HistoryRepository").Return(winner.historyRepo).Once(),
		winner.historyRepo.On("Append", mock.Anything, ord.ID(), mock.AnythingOfType("order.HistoryEntry")).
			Return(nil).Once(),
		winner.uow.On("Commit", mock.Anything).Return(nil).Once(),
		winner.dispatcher.On("Dispatch", ord.ID(), order.Ready, order.OutForDelivery,
			[]kernel.UUID{userID, restaurantID, courierA}).Once(),
		winner.uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	result, err := winner.handler.Handle(ctx, cmdA)
	require.NoError(t, err)
	require.True(t, result.Success)
	require.NotNil(t, ord.Courier())
	assert.True(t, ord.Courier().IsEqual(courierA))
	winner.assertExpectations(t)

	// Courier B raced courier A: the snapshot read still saw the unassigned
	// ready order, but the locked read returns A's committed claim.
	staleView, err := order.RestoreOrder(
		ord.ID(), userID, restaurantID, nil, order.Ready, testClock().Add(-time.Hour),
	)
	require.NoError(t, err)

	loser := newTransitionFixture()
	cmdB, err := commands.NewRequestTransitionCommand(
		ord.ID(), order.OutForDelivery, courierB, order.RoleCourier, "",
	)
	require.NoError(t, err)

	mock.InOrder(
		loser.factory.On("Create").Return(loser.uow).Once(),
		loser.uow.On("OrderRepository").Return(loser.orderRepo).Once(),
		loser.orderRepo.On("Get", mock.Anything, ord.ID()).Return(staleView, nil).Once(),
		loser.uow.On("Begin", mock.Anything).Return(nil).Once(),
		loser.uow.On("OrderRepository").Return(loser.orderRepo).Once(),
		loser.orderRepo.On("GetForUpdate", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		loser.uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	result, err = loser.handler.Handle(ctx, cmdB)

	require.ErrorIs(t, err, errs.ErrConflict)
	assert.NotErrorIs(t, err, errs.ErrForbidden)
	assert.False(t, result.Success)
	assert.True(t, ord.Courier().IsEqual(courierA))
	loser.uow.AssertNotCalled(t, "Commit", mock.Anything)
	loser.historyRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything)
	loser.assertExpectations(t)
}

// A seller acting on a confirmed order races an admin cancellation. The
// request would have been legal against the seller's view, so the failure is
// a conflict, not an invalid transition.
func TestRequestTransitionCommandHandler_Handle_RaceLoserGetsConflict(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture()

	userID := kernel.NewUUID()
	restaurantID := kernel.NewUUID()
	ord := restoredOrder(t, userID, restaurantID, order.Cancelled)

	staleView, err := order.RestoreOrder(
		ord.ID(), userID, restaurantID, nil, order.Confirmed, testClock().Add(-time.Hour),
	)
	require.NoError(t, err)

	cmd, err := commands.NewRequestTransitionCommand(
		ord.ID(), order.Preparing, restaurantID, order.RoleSeller, "",
	)
	require.NoError(t, err)

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("Get", mock.Anything, ord.ID()).Return(staleView, nil).Once(),
		f.uow.On("Begin", mock.Anything).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("GetForUpdate", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		f.uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	result, err := f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	assert.NotErrorIs(t, err, errs.ErrInvalidTransition)
	assert.False(t, result.Success)
	assert.Contains(t, err.Error(), "cancelled")
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.assertExpectations(t)
}

// A request whose edge was never legal stays an invalid transition even when
// the order moved under the caller.
func TestRequestTransitionCommandHandler_Handle_MovedOrderIllegalEdge(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture()

	userID := kernel.NewUUID()
	ord := restoredOrder(t, userID, kernel.NewUUID(), order.Confirmed)

	staleView, err := order.RestoreOrder(
		ord.ID(), userID, ord.RestaurantID(), nil, order.Placed, testClock().Add(-time.Hour),
	)
	require.NoError(t, err)

	// delivered is not reachable for a customer from any status.
	cmd, err := commands.NewRequestTransitionCommand(
		ord.ID(), order.Delivered, userID, order.RoleCustomer, "",
	)
	require.NoError(t, err)

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("Get", mock.Anything, ord.ID()).Return(staleView, nil).Once(),
		f.uow.On("Begin", mock.Anything).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("GetForUpdate", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		f.uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	_, err = f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.NotErrorIs(t, err, errs.ErrConflict)
	f.assertExpectations(t)
}

func TestRequestTransitionCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture()

	var cmd commands.RequestTransitionCommand

	result, err := f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrRequestTransitionCommandIsNotConstructed)
	assert.False(t, result.Success)
	f.factory.AssertNotCalled(t, "Create")
}
