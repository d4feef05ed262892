package orders

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/podstore/backend/internal/domain/order"
	"github.com/podstore/backend/internal/domain/provider"
	"github.com/podstore/backend/internal/domain/shared"
)

type fakeOrderRepo struct {
	mu    sync.Mutex
	byID  map[uuid.UUID]*order.CustomOrder
	taken map[string]bool
	// conflictSaves fails the first N saves with ErrAlreadyExists,
	// simulating order-number collisions at the unique index
	conflictSaves int
	saveCalls     int
	savedNumbers  []string
	errors        struct {
		save   error
		update error
	}
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		byID:  make(map[uuid.UUID]*order.CustomOrder),
		taken: make(map[string]bool),
	}
}

func (r *fakeOrderRepo) Save(ctx context.Context, o *order.CustomOrder) error {
	if r.errors.save != nil {
		return r.errors.save
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saveCalls++
	r.savedNumbers = append(r.savedNumbers, o.OrderNumber)
	if r.conflictSaves > 0 {
		r.conflictSaves--
		return shared.ErrAlreadyExists
	}
	if r.taken[o.OrderNumber] {
		return shared.ErrAlreadyExists
	}
	r.byID[o.ID] = o
	r.taken[o.OrderNumber] = true
	return nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, o *order.CustomOrder) error {
	if r.errors.update != nil {
		return r.errors.update
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*order.CustomOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.byID[id]; ok {
		return o, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepo) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.CustomOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.byID {
		if o.OrderNumber == orderNumber {
			return o, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepo) FindByFulfillmentOrderID(ctx context.Context, fulfillmentOrderID int64) (*order.CustomOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.byID {
		if o.FulfillmentOrderID != nil && *o.FulfillmentOrderID == fulfillmentOrderID {
			return o, nil
		}
	}
	return nil, shared.ErrNotFound
}

type fakeCommissionRepo struct {
	mu      sync.Mutex
	byOrder map[uuid.UUID]*order.AffiliateCommission
	saveErr error
}

func newFakeCommissionRepo() *fakeCommissionRepo {
	return &fakeCommissionRepo{byOrder: make(map[uuid.UUID]*order.AffiliateCommission)}
}

func (r *fakeCommissionRepo) Save(ctx context.Context, c *order.AffiliateCommission) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byOrder[c.CustomOrderID]; exists {
		return shared.ErrAlreadyExists
	}
	r.byOrder[c.CustomOrderID] = c
	return nil
}

func (r *fakeCommissionRepo) Update(ctx context.Context, c *order.AffiliateCommission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byOrder[c.CustomOrderID] = c
	return nil
}

func (r *fakeCommissionRepo) FindByOrderID(ctx context.Context, customOrderID uuid.UUID) (*order.AffiliateCommission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.byOrder[customOrderID]; ok {
		return c, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCommissionRepo) TotalForAccount(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := decimal.Zero
	for _, c := range r.byOrder {
		if c.AccountID == accountID {
			total = total.Add(c.CommissionAmount)
		}
	}
	return total, nil
}

func (r *fakeCommissionRepo) UnpaidTotalForAccount(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := decimal.Zero
	for _, c := range r.byOrder {
		if c.AccountID == accountID && c.IsUnpaid() {
			total = total.Add(c.CommissionAmount)
		}
	}
	return total, nil
}

type fakeAccounts struct {
	accounts map[int64]*order.Account
}

func (d *fakeAccounts) FindByID(ctx context.Context, id int64) (*order.Account, error) {
	if a, ok := d.accounts[id]; ok {
		return a, nil
	}
	return nil, shared.ErrNotFound
}

type fakeMockupStore struct {
	mu       sync.Mutex
	contexts map[string]*order.MockupContext
}

func newFakeMockupStore() *fakeMockupStore {
	return &fakeMockupStore{contexts: make(map[string]*order.MockupContext)}
}

func (s *fakeMockupStore) Put(ctx context.Context, mc *order.MockupContext, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contexts[mc.ID] = mc
	return nil
}

func (s *fakeMockupStore) Get(ctx context.Context, id string) (*order.MockupContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mc, ok := s.contexts[id]; ok {
		return mc, nil
	}
	return nil, order.ErrMockupNotFound
}

func (s *fakeMockupStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.contexts, id)
	return nil
}

// fakeGateway scripts provider responses for order flow tests
type fakeGateway struct {
	mu          sync.Mutex
	orderResult *provider.OrderResult
	orderErr    error
	orderCalls  int
	lastOrder   provider.OrderRequest

	rates    []provider.Rate
	ratesErr error
}

func (f *fakeGateway) CreateMockupTask(ctx context.Context, imageURL string, productID, variantID int64) (string, error) {
	return "", shared.ErrProviderFailed
}

func (f *fakeGateway) GetMockupTask(ctx context.Context, taskKey string) (*provider.MockupTask, error) {
	return nil, shared.ErrProviderFailed
}

func (f *fakeGateway) ShippingRates(ctx context.Context, addr provider.Address, items []provider.RateItem) ([]provider.Rate, error) {
	return f.rates, f.ratesErr
}

func (f *fakeGateway) CreateOrder(ctx context.Context, req provider.OrderRequest) (*provider.OrderResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orderCalls++
	f.lastOrder = req
	if f.orderErr != nil {
		return nil, f.orderErr
	}
	return f.orderResult, nil
}

func (f *fakeGateway) GetOrder(ctx context.Context, fulfillmentOrderID int64) (*provider.OrderSnapshot, error) {
	return nil, shared.ErrNotFound
}

func (f *fakeGateway) ListProducts(ctx context.Context) ([]provider.Product, error) {
	return nil, nil
}

func providerDown() error {
	return shared.NewDomainError("PROVIDER_FAILED", "provider unavailable")
}

var _ provider.Gateway = (*fakeGateway)(nil)
var _ order.CustomOrderRepository = (*fakeOrderRepo)(nil)
var _ order.CommissionRepository = (*fakeCommissionRepo)(nil)
var _ order.AccountDirectory = (*fakeAccounts)(nil)
var _ order.MockupStore = (*fakeMockupStore)(nil)
