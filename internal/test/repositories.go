package test

import (
	"context"
	"sync"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[string]*model.User
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[string]*model.User),
	}
}

// Create registers user unless the email is taken or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[string]*model.User)
	}
	if _, exists := s.Users[user.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	stored := user
	s.Users[user.Email] = &stored
	s.ByID[user.ID] = &stored
	return &stored, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub keeps orders in memory and allows overrides.
type OrderRepositoryStub struct {
	CreateFn       func(context.Context, *model.Order) error
	GetByIDFn      func(context.Context, string) (*model.Order, error)
	ListFn         func(context.Context, model.OrderFilter) ([]model.Order, error)
	UpdateStatusFn func(context.Context, string, model.OrderStatus) error
	UpdateItemsFn  func(context.Context, string, []model.ItemQuantity) error

	mu      sync.Mutex
	Orders  map[string]*model.Order
	Created []model.Order
	Filters []model.OrderFilter
}

// NewOrderRepositoryStub constructs an empty repository.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[string]*model.Order)}
}

func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) error {
	if s.CreateFn != nil {
		if err := s.CreateFn(ctx, order); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Orders == nil {
		s.Orders = make(map[string]*model.Order)
	}
	stored := *order
	s.Orders[order.ID] = &stored
	s.Created = append(s.Created, stored)
	return nil
}

func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.Orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

// List records the filter and returns stored orders matching user and status.
func (s *OrderRepositoryStub) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	s.mu.Lock()
	s.Filters = append(s.Filters, filter)
	s.mu.Unlock()
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Order
	for _, o := range s.Orders {
		if filter.UserID != "" && o.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		result = append(result, *o)
	}
	return result, nil
}

func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.Status = status
	return nil
}

func (s *OrderRepositoryStub) UpdateItemQuantities(ctx context.Context, id string, items []model.ItemQuantity) error {
	if s.UpdateItemsFn != nil {
		return s.UpdateItemsFn(ctx, id, items)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	for _, change := range items {
		found := false
		for i := range order.Items {
			if order.Items[i].ID == change.ItemID {
				order.Items[i].Quantity = change.Quantity
				found = true
			}
		}
		if !found {
			return domainErrors.ErrNotFound
		}
	}
	return nil
}

// ProductRepositoryStub serves a fixed catalog.
type ProductRepositoryStub struct {
	Products     []model.Product
	CategoryList []model.Category
	Err          error
}

func (s *ProductRepositoryStub) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Product
	for _, p := range s.Products {
		if filter.CategoryID == "" || p.CategoryID == filter.CategoryID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (s *ProductRepositoryStub) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, p := range s.Products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *ProductRepositoryStub) Categories(ctx context.Context) ([]model.Category, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.CategoryList, nil
}

// PushTokenRepositoryStub stores tokens per user.
type PushTokenRepositoryStub struct {
	Tokens map[string]string
	Admin  []string
	Err    error
}

func (s *PushTokenRepositoryStub) Save(ctx context.Context, userID, token string) error {
	if s.Err != nil {
		return s.Err
	}
	if s.Tokens == nil {
		s.Tokens = make(map[string]string)
	}
	s.Tokens[token] = userID
	return nil
}

func (s *PushTokenRepositoryStub) AdminTokens(ctx context.Context) ([]string, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Admin, nil
}

// AnnouncerStub records announced order events.
type AnnouncerStub struct {
	mu     sync.Mutex
	Events []model.OrderEvent
}

func (a *AnnouncerStub) Announce(event model.OrderEvent) {
	a.mu.Lock()
	a.Events = append(a.Events, event)
	a.mu.Unlock()
}

// Recorded returns a copy of the announced events.
func (a *AnnouncerStub) Recorded() []model.OrderEvent {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]model.OrderEvent(nil), a.Events...)
}

var (
	_ repository.UserRepository      = (*UserRepositoryStub)(nil)
	_ repository.OrderRepository     = (*OrderRepositoryStub)(nil)
	_ repository.ProductRepository   = (*ProductRepositoryStub)(nil)
	_ repository.PushTokenRepository = (*PushTokenRepositoryStub)(nil)
)
