package order

import (
	"context"

	"github.com/avelara/storefront/core/customer"
)

// MockBackend implements Backend for testing. Error fields make single
// steps fail; the slices capture what the workflow wrote.
type MockBackend struct {
	Customer          customer.Customer
	LookupErr         error
	CreateCustomerErr error

	CreateOrderErr error
	ItemErrs       map[int64]error
	ReduceErrs     map[int64]error
	IncompleteErr  error

	CreatedCustomers []customer.Customer
	CreatedOrders    []Order
	CreatedItems     []Item
	Reduced          map[int64]int
	MarkedIncomplete []string
}

func (m *MockBackend) CustomerByEmail(_ context.Context, _ string) (customer.Customer, error) {
	if m.LookupErr != nil {
		return customer.Customer{}, m.LookupErr
	}
	return m.Customer, nil
}

func (m *MockBackend) CreateCustomer(_ context.Context, cst customer.Customer) error {
	if m.CreateCustomerErr != nil {
		return m.CreateCustomerErr
	}
	m.CreatedCustomers = append(m.CreatedCustomers, cst)
	return nil
}

func (m *MockBackend) CreateOrder(_ context.Context, ord Order) error {
	if m.CreateOrderErr != nil {
		return m.CreateOrderErr
	}
	m.CreatedOrders = append(m.CreatedOrders, ord)
	return nil
}

func (m *MockBackend) CreateItem(_ context.Context, it Item) error {
	if err := m.ItemErrs[it.ProductID]; err != nil {
		return err
	}
	m.CreatedItems = append(m.CreatedItems, it)
	return nil
}

func (m *MockBackend) MarkIncomplete(_ context.Context, orderID string) error {
	if m.IncompleteErr != nil {
		return m.IncompleteErr
	}
	m.MarkedIncomplete = append(m.MarkedIncomplete, orderID)
	return nil
}

func (m *MockBackend) ReduceStock(_ context.Context, productID int64, qty int) error {
	if err := m.ReduceErrs[productID]; err != nil {
		return err
	}
	if m.Reduced == nil {
		m.Reduced = make(map[int64]int)
	}
	m.Reduced[productID] += qty
	return nil
}
