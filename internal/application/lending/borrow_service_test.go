package lending

import (
	"context"
	"testing"

	"github.com/dracarys/library/internal/domain/lending"
	"github.com/dracarys/library/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBorrowRepository is a mock implementation of lending.BorrowRepository
type MockBorrowRepository struct {
	mock.Mock
}

func (m *MockBorrowRepository) Borrow(ctx context.Context, b *lending.Borrow) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBorrowRepository) MarkReturned(ctx context.Context, id uint, returnedAt shared.NaiveTime) (*lending.Borrow, error) {
	args := m.Called(ctx, id, returnedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lending.Borrow), args.Error(1)
}

func (m *MockBorrowRepository) FindByID(ctx context.Context, id uint) (*lending.Borrow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lending.Borrow), args.Error(1)
}

func (m *MockBorrowRepository) FindAll(ctx context.Context) ([]lending.Borrow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]lending.Borrow), args.Error(1)
}

func (m *MockBorrowRepository) FindByUser(ctx context.Context, userID uint) ([]lending.Borrow, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]lending.Borrow), args.Error(1)
}

func (m *MockBorrowRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestBorrowService_Create(t *testing.T) {
	t.Run("stamps the borrow date", func(t *testing.T) {
		repo := new(MockBorrowRepository)
		svc := NewBorrowService(repo)

		repo.On("Borrow", mock.Anything, mock.MatchedBy(func(b *lending.Borrow) bool {
			return b.UserID == 7 && b.BookID == 1 && b.BorrowQuantity == 2 && !b.BorrowDate.IsZero()
		})).Return(nil)

		borrow, err := svc.Create(context.Background(), CreateBorrowRequest{
			UserID:         7,
			BookID:         1,
			BorrowQuantity: 2,
		})

		require.NoError(t, err)
		assert.False(t, borrow.Returned())
		repo.AssertExpectations(t)
	})

	t.Run("passes shortage through unchanged", func(t *testing.T) {
		repo := new(MockBorrowRepository)
		svc := NewBorrowService(repo)

		repo.On("Borrow", mock.Anything, mock.Anything).Return(lending.ErrNotEnoughCopies)

		_, err := svc.Create(context.Background(), CreateBorrowRequest{
			UserID:         7,
			BookID:         1,
			BorrowQuantity: 99,
		})

		assert.Equal(t, lending.ErrNotEnoughCopies, err)
	})
}

func TestBorrowService_MarkReturned(t *testing.T) {
	t.Run("maps missing row to borrow not found", func(t *testing.T) {
		repo := new(MockBorrowRepository)
		svc := NewBorrowService(repo)

		repo.On("MarkReturned", mock.Anything, uint(42), mock.Anything).Return(nil, shared.ErrNotFound)

		_, err := svc.MarkReturned(context.Background(), 42, nil)

		assert.Equal(t, lending.ErrBorrowNotFound, err)
	})

	t.Run("passes already-returned through unchanged", func(t *testing.T) {
		repo := new(MockBorrowRepository)
		svc := NewBorrowService(repo)

		repo.On("MarkReturned", mock.Anything, uint(3), mock.Anything).Return(nil, lending.ErrAlreadyReturned)

		_, err := svc.MarkReturned(context.Background(), 3, nil)

		assert.Equal(t, lending.ErrAlreadyReturned, err)
	})
}
