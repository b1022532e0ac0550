package commands_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"roodi/internal/core/application/usecases/commands"
	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/core/domain/model/offer"
	"roodi/internal/core/domain/model/order"
	"roodi/internal/core/domain/model/pricing"
	"roodi/internal/core/domain/model/quote"
	"roodi/internal/core/domain/model/wallet"
	"roodi/internal/core/ports"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInSearchingRiderStatus(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) HasActiveOrderForRider(ctx context.Context, riderID kernel.UUID) (bool, error) {
	args := m.Called(ctx, riderID)
	return args.Bool(0), args.Error(1)
}

type MockOrderEventRepository struct{ mock.Mock }

func (m *MockOrderEventRepository) Add(ctx context.Context, event ports.OrderEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockOrderEventRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]ports.OrderEvent, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.OrderEvent), args.Error(1)
}

type MockOfferRepository struct{ mock.Mock }

func (m *MockOfferRepository) Add(ctx context.Context, aggregate *offer.Offer) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOfferRepository) Update(ctx context.Context, aggregate *offer.Offer) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOfferRepository) Get(ctx context.Context, id kernel.UUID) (*offer.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*offer.Offer), args.Error(1)
}

func (m *MockOfferRepository) GetPendingByRider(ctx context.Context, riderID kernel.UUID, now time.Time) (*offer.Offer, error) {
	args := m.Called(ctx, riderID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*offer.Offer), args.Error(1)
}

func (m *MockOfferRepository) GetPendingByOrder(ctx context.Context, orderID kernel.UUID) ([]*offer.Offer, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*offer.Offer), args.Error(1)
}

func (m *MockOfferRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*offer.Offer, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*offer.Offer), args.Error(1)
}

func (m *MockOfferRepository) TryAccept(ctx context.Context, id kernel.UUID, decidedAt time.Time) (bool, error) {
	args := m.Called(ctx, id, decidedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockOfferRepository) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockQuoteRepository struct{ mock.Mock }

func (m *MockQuoteRepository) Add(ctx context.Context, aggregate *quote.Quote) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockQuoteRepository) Get(ctx context.Context, id kernel.UUID) (*quote.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quote.Quote), args.Error(1)
}

type MockPricingRepository struct{ mock.Mock }

func (m *MockPricingRepository) Add(ctx context.Context, aggregate *pricing.RuleVersion) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockPricingRepository) Update(ctx context.Context, aggregate *pricing.RuleVersion) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockPricingRepository) Get(ctx context.Context, id kernel.UUID) (*pricing.RuleVersion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.RuleVersion), args.Error(1)
}

func (m *MockPricingRepository) GetActive(ctx context.Context, at time.Time) (*pricing.RuleVersion, error) {
	args := m.Called(ctx, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.RuleVersion), args.Error(1)
}

func (m *MockPricingRepository) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	args := m.Called(ctx, date)
	return args.Bool(0), args.Error(1)
}

type MockWalletRepository struct{ mock.Mock }

func (m *MockWalletRepository) Add(ctx context.Context, aggregate *wallet.Wallet) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockWalletRepository) Update(ctx context.Context, aggregate *wallet.Wallet) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockWalletRepository) GetByCommerce(ctx context.Context, commerceID kernel.UUID) (*wallet.Wallet, error) {
	args := m.Called(ctx, commerceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

type MockBairroRepository struct{ mock.Mock }

func (m *MockBairroRepository) GetByNormalizedName(ctx context.Context, normalizedName string) (ports.Bairro, error) {
	args := m.Called(ctx, normalizedName)
	return args.Get(0).(ports.Bairro), args.Error(1)
}

func (m *MockBairroRepository) GetMatrixEntry(ctx context.Context, originID, destinationID kernel.UUID) (int, int, error) {
	args := m.Called(ctx, originID, destinationID)
	return args.Int(0), args.Int(1), args.Error(2)
}

type MockRiderDirectory struct{ mock.Mock }

func (m *MockRiderDirectory) NextAvailableRider(ctx context.Context, zone int, exclude []kernel.UUID) (kernel.UUID, error) {
	args := m.Called(ctx, zone, exclude)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

// fakeUoW implements every per-command unit of work over mock repositories
// and records transaction lifecycle calls.
type fakeUoW struct {
	orders      *MockOrderRepository
	orderEvents *MockOrderEventRepository
	offers      *MockOfferRepository
	quotes      *MockQuoteRepository
	prices      *MockPricingRepository
	wallets     *MockWalletRepository
	bairros     *MockBairroRepository

	begun      bool
	committed  bool
	rolledBack bool
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{
		orders:      &MockOrderRepository{},
		orderEvents: &MockOrderEventRepository{},
		offers:      &MockOfferRepository{},
		quotes:      &MockQuoteRepository{},
		prices:      &MockPricingRepository{},
		wallets:     &MockWalletRepository{},
		bairros:     &MockBairroRepository{},
	}
}

func (u *fakeUoW) Begin(context.Context) error { u.begun = true; return nil }
func (u *fakeUoW) Commit(context.Context) error {
	u.committed = true
	return nil
}
func (u *fakeUoW) Rollback(context.Context) error {
	if !u.committed {
		u.rolledBack = true
	}
	return nil
}

func (u *fakeUoW) OrderRepository() ports.OrderRepository           { return u.orders }
func (u *fakeUoW) OrderEventRepository() ports.OrderEventRepository { return u.orderEvents }
func (u *fakeUoW) OfferRepository() ports.OfferRepository           { return u.offers }
func (u *fakeUoW) QuoteRepository() ports.QuoteRepository           { return u.quotes }
func (u *fakeUoW) PricingRepository() ports.PricingRepository       { return u.prices }
func (u *fakeUoW) WalletRepository() ports.WalletRepository         { return u.wallets }
func (u *fakeUoW) BairroRepository() ports.BairroRepository         { return u.bairros }

type dispatchUoWFactory struct{ uow *fakeUoW }

func (f dispatchUoWFactory) Create() commands.DispatchUoW { return f.uow }

type orderCreationUoWFactory struct{ uow *fakeUoW }

func (f orderCreationUoWFactory) Create() commands.OrderCreationUoW { return f.uow }

type orderEventUoWFactory struct{ uow *fakeUoW }

func (f orderEventUoWFactory) Create() commands.OrderEventUoW { return f.uow }

type orderCancellationUoWFactory struct{ uow *fakeUoW }

func (f orderCancellationUoWFactory) Create() commands.OrderCancellationUoW { return f.uow }

type quoteUoWFactory struct{ uow *fakeUoW }

func (f quoteUoWFactory) Create() commands.QuoteUoW { return f.uow }

type pricingUoWFactory struct{ uow *fakeUoW }

func (f pricingUoWFactory) Create() commands.PricingUoW { return f.uow }

type walletUoWFactory struct{ uow *fakeUoW }

func (f walletUoWFactory) Create() commands.WalletUoW { return f.uow }

type offerSweepUoWFactory struct{ uow *fakeUoW }

func (f offerSweepUoWFactory) Create() commands.OfferSweepUoW { return f.uow }
