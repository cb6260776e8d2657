package commands_test

import (
	"testing"
	"time"

	"buffet/internal/core/application/usecases/commands"
	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/core/domain/model/order"
	"buffet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func submittedOrder(t *testing.T, status order.Status, station order.Station) *order.Order {
	t.Helper()

	popcorn := mustPopcorn("5.50")
	now := time.Now().UTC()
	cart := mustCartWithItem(42, popcorn.ID(), popcorn.Price(), now)

	restored, err := order.RestoreOrder(
		cart.ID(), cart.CustomerID(), cart.Items(), status, station, now, now)
	require.NoError(t, err)
	return restored
}

func TestClaimOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	claimed := submittedOrder(t, order.Preparing, order.StationLeft)

	cmd, err := commands.NewClaimOrderCommand(claimed.ID(), order.StationLeft)
	require.NoError(t, err)

	orderRepo := new(OrderRepoMock)
	uow := new(OrderUoWMock)
	factory := new(OrderUoWFactoryMock)
	publisher := new(PublisherRecorder)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("TransitionStatus",
			ctx, claimed.ID(), order.Pending, order.Preparing, order.StationLeft,
			mock.AnythingOfType("time.Time")).Return(nil).Once(),
		orderRepo.On("Get", ctx, claimed.ID()).Return(claimed, nil).Once(),
	)

	handler := commands.NewClaimOrderCommandHandler(factory, publisher)
	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Same(t, claimed, got)

	require.Len(t, publisher.Events, 1)
	assert.Equal(t, order.Pending, publisher.Events[0].From)
	assert.Equal(t, order.Preparing, publisher.Events[0].To)

	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestClaimOrderCommandHandler_Handle_AlreadyClaimed(t *testing.T) {
	ctx := t.Context()
	taken := submittedOrder(t, order.Preparing, order.StationLeft)

	cmd, err := commands.NewClaimOrderCommand(taken.ID(), order.StationLeft)
	require.NoError(t, err)

	orderRepo := new(OrderRepoMock)
	uow := new(OrderUoWMock)
	factory := new(OrderUoWFactoryMock)
	publisher := new(PublisherRecorder)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("TransitionStatus",
			ctx, taken.ID(), order.Pending, order.Preparing, order.StationLeft,
			mock.AnythingOfType("time.Time")).Return(errs.ErrPreconditionFailed).Once(),
		orderRepo.On("Get", ctx, taken.ID()).Return(taken, nil).Once(),
	)

	handler := commands.NewClaimOrderCommandHandler(factory, publisher)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrAlreadyClaimed)
	assert.Empty(t, publisher.Events)
	orderRepo.AssertExpectations(t)
}

func TestClaimOrderCommandHandler_Handle_StationMismatch(t *testing.T) {
	ctx := t.Context()
	elsewhere := submittedOrder(t, order.Pending, order.StationRight)

	cmd, err := commands.NewClaimOrderCommand(elsewhere.ID(), order.StationLeft)
	require.NoError(t, err)

	orderRepo := new(OrderRepoMock)
	uow := new(OrderUoWMock)
	factory := new(OrderUoWFactoryMock)
	publisher := new(PublisherRecorder)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("TransitionStatus",
			ctx, elsewhere.ID(), order.Pending, order.Preparing, order.StationLeft,
			mock.AnythingOfType("time.Time")).Return(errs.ErrPreconditionFailed).Once(),
		orderRepo.On("Get", ctx, elsewhere.ID()).Return(elsewhere, nil).Once(),
	)

	handler := commands.NewClaimOrderCommandHandler(factory, publisher)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrStationMismatch)
	assert.Empty(t, publisher.Events)
	orderRepo.AssertExpectations(t)
}

func TestClaimOrderCommandHandler_Handle_OrderGone(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	cmd, err := commands.NewClaimOrderCommand(orderID, order.StationLeft)
	require.NoError(t, err)

	orderRepo := new(OrderRepoMock)
	uow := new(OrderUoWMock)
	factory := new(OrderUoWFactoryMock)
	publisher := new(PublisherRecorder)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("TransitionStatus",
			ctx, orderID, order.Pending, order.Preparing, order.StationLeft,
			mock.AnythingOfType("time.Time")).Return(errs.ErrPreconditionFailed).Once(),
		orderRepo.On("Get", ctx, orderID).
			Return(nil, errs.NewObjectNotFoundError("orderID", orderID.String())).Once(),
	)

	handler := commands.NewClaimOrderCommandHandler(factory, publisher)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Empty(t, publisher.Events)
	orderRepo.AssertExpectations(t)
}
