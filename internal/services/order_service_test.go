package services

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CoffeeStoreAPI/internal/model"
)

const testCartID = int64(7)

type checkoutFixture struct {
	svc      *OrderService
	tx       *fakeTx
	orders   *fakeOrderStore
	carts    *fakeCartStore
	products *fakeProductReader
	mailer   *fakeMailer
}

func newCheckoutFixture() *checkoutFixture {
	tx := newFakeTx()
	orders := &fakeOrderStore{tx: tx, orders: map[int64]*model.Order{}}
	carts := &fakeCartStore{lines: map[int64][]model.CartLine{}}
	products := &fakeProductReader{products: map[int64]*model.Product{}, errs: map[int64]error{}}
	mailer := &fakeMailer{}

	svc := NewOrderService(
		orders,
		carts,
		products,
		&fakeProfileStore{cartID: testCartID, profile: &model.CustomerInfo{DeliveryAddress: "12 Harbor Lane", LegalName: "Jordan Reyes"}},
		&fakeUserDirectory{email: "jordan@example.com"},
		mailer,
		&fakeRenderer{},
	)
	svc.Now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }

	return &checkoutFixture{svc: svc, tx: tx, orders: orders, carts: carts, products: products, mailer: mailer}
}

func (f *checkoutFixture) addProduct(id int64, price, discount float64, stock int) {
	f.products.products[id] = &model.Product{ID: id, Name: "Product", Price: price, Discount: discount, Stock: stock, Active: true, Visible: true}
	f.tx.stock[id] = stock
}

func TestCheckoutHappyPath(t *testing.T) {
	f := newCheckoutFixture()
	f.addProduct(1, 100.00, 25, 10)
	f.addProduct(2, 9.99, 0, 5)
	f.carts.lines[testCartID] = []model.CartLine{
		{CartID: testCartID, ProductID: 1, Quantity: 2},
		{CartID: testCartID, ProductID: 2, Quantity: 3},
	}

	result, err := f.svc.Checkout(context.Background(), 42)
	require.NoError(t, err)

	// 2 * 75.00 + 3 * 9.99
	assert.InDelta(t, 179.97, result.Order.TotalPrice, 1e-9)
	assert.Equal(t, model.StatusProcessing, result.Order.Status)
	require.Len(t, result.Order.Items, 2)
	assert.Equal(t, 75.00, result.Order.Items[0].UnitPrice)
	assert.Equal(t, 150.00, result.Order.Items[0].TotalPrice)
	assert.True(t, strings.HasPrefix(result.Order.Reference, "ORDER-1-"))

	// stock and sale counts moved inside the transaction
	assert.True(t, f.tx.committed)
	assert.Equal(t, 8, f.tx.stock[1])
	assert.Equal(t, 2, f.tx.stock[2])
	assert.Equal(t, int64(2), f.tx.saleCounts[1])
	assert.Equal(t, int64(3), f.tx.saleCounts[2])
	for id, score := range f.tx.popularity {
		assert.GreaterOrEqual(t, score, 0.0, "product %d", id)
		assert.LessOrEqual(t, score, 100.0, "product %d", id)
	}

	// invoice stored before commit and returned to the caller
	assert.Equal(t, result.InvoiceBase64, f.tx.invoices[1])
	pdf, err := base64.StdEncoding.DecodeString(result.InvoiceBase64)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"))

	// post-commit: confirmation mail with the invoice attached, cart cleared
	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "jordan@example.com", f.mailer.sent[0].to)
	require.Len(t, f.mailer.sent[0].attachments, 1)
	assert.Equal(t, "invoice.pdf", f.mailer.sent[0].attachments[0].Filename)
	assert.Equal(t, []int64{testCartID}, f.carts.cleared)
}

func TestCheckoutInsufficientStock(t *testing.T) {
	f := newCheckoutFixture()
	f.addProduct(1, 100.00, 0, 10)
	f.addProduct(2, 20.00, 0, 1)
	f.carts.lines[testCartID] = []model.CartLine{
		{CartID: testCartID, ProductID: 1, Quantity: 2},
		{CartID: testCartID, ProductID: 2, Quantity: 5},
	}

	_, err := f.svc.Checkout(context.Background(), 42)
	require.ErrorIs(t, err, ErrInsufficientStock)

	// nothing survives the rollback
	assert.False(t, f.tx.committed)
	assert.True(t, f.tx.rolledBack)
	assert.Empty(t, f.mailer.sent)
	assert.Empty(t, f.carts.cleared)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newCheckoutFixture()
	_, err := f.svc.Checkout(context.Background(), 42)
	require.ErrorIs(t, err, ErrCartEmpty)
}

func TestCheckoutMissingCart(t *testing.T) {
	f := newCheckoutFixture()
	f.svc.Profiles = &fakeProfileStore{cartErr: assert.AnError}
	_, err := f.svc.Checkout(context.Background(), 42)
	require.ErrorIs(t, err, ErrCartNotFound)
}

func TestCheckoutSkipsStaleLines(t *testing.T) {
	f := newCheckoutFixture()
	f.addProduct(1, 10.00, 0, 10)
	f.carts.lines[testCartID] = []model.CartLine{
		{CartID: testCartID, ProductID: 99, Quantity: 1}, // removed from catalog
		{CartID: testCartID, ProductID: 1, Quantity: 1},
	}

	result, err := f.svc.Checkout(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, result.Order.Items, 1)
	assert.Equal(t, int64(1), result.Order.Items[0].ProductID)
}

func TestCheckoutAbortsOnLookupFailure(t *testing.T) {
	// only a missing product may be skipped; a store error on any
	// line must fail the whole checkout, not shrink the order
	f := newCheckoutFixture()
	f.addProduct(1, 10.00, 0, 10)
	f.addProduct(2, 20.00, 0, 10)
	f.products.errs[2] = errors.New("connection refused")
	f.carts.lines[testCartID] = []model.CartLine{
		{CartID: testCartID, ProductID: 1, Quantity: 1},
		{CartID: testCartID, ProductID: 2, Quantity: 1},
	}

	_, err := f.svc.Checkout(context.Background(), 42)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCartEmpty)

	assert.False(t, f.tx.committed)
	assert.True(t, f.tx.rolledBack)
	assert.Empty(t, f.mailer.sent)
	assert.Empty(t, f.carts.cleared)
}

func TestCheckoutAllLinesStale(t *testing.T) {
	f := newCheckoutFixture()
	f.carts.lines[testCartID] = []model.CartLine{
		{CartID: testCartID, ProductID: 99, Quantity: 1},
	}

	_, err := f.svc.Checkout(context.Background(), 42)
	require.ErrorIs(t, err, ErrCartEmpty)
	assert.False(t, f.tx.committed)
}

func TestCancelRestoresStock(t *testing.T) {
	f := newCheckoutFixture()
	f.tx.stock[1] = 3
	f.orders.orders[10] = &model.Order{
		OrderID: 10,
		UserID:  42,
		Status:  model.StatusProcessing,
		Items: []model.OrderItem{
			{ProductID: 1, Quantity: 2, UnitPrice: 5, TotalPrice: 10},
		},
	}

	status, err := f.svc.Cancel(context.Background(), 42, 10)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, status)
	assert.True(t, f.tx.committed)
	assert.Equal(t, 5, f.tx.stock[1])
	assert.Equal(t, model.StatusCancelled, f.tx.statuses[10])

	// the owner is told about the cancellation
	require.Len(t, f.mailer.sent, 1)
}

func TestCancelGuards(t *testing.T) {
	tests := []struct {
		name    string
		userID  int64
		status  model.OrderStatus
		wantErr error
	}{
		{"not the owner", 99, model.StatusProcessing, ErrUnauthorized},
		{"already delivered", 42, model.StatusDelivered, ErrAlreadyDelivered},
		{"already cancelled", 42, model.StatusCancelled, ErrInvalidStatusTransition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCheckoutFixture()
			f.orders.orders[10] = &model.Order{OrderID: 10, UserID: 42, Status: tt.status}

			_, err := f.svc.Cancel(context.Background(), tt.userID, 10)
			require.ErrorIs(t, err, tt.wantErr)
			assert.False(t, f.tx.committed)
		})
	}
}

func TestChangeStatus(t *testing.T) {
	f := newCheckoutFixture()
	f.orders.orders[10] = &model.Order{OrderID: 10, UserID: 42, Status: model.StatusProcessing}

	status, err := f.svc.ChangeStatus(context.Background(), 10, "in-transit")
	require.NoError(t, err)
	assert.Equal(t, model.StatusInTransit, status)
	assert.Equal(t, []model.OrderStatus{model.StatusInTransit}, f.orders.statusLog)
	require.Len(t, f.mailer.sent, 1)
}

func TestChangeStatusRejections(t *testing.T) {
	tests := []struct {
		name    string
		current model.OrderStatus
		target  string
		wantErr error
	}{
		{"unknown status name", model.StatusProcessing, "shipped", ErrInvalidStatus},
		{"delivered is terminal", model.StatusDelivered, "processing", ErrInvalidStatusTransition},
		{"cancelled is terminal", model.StatusCancelled, "in-transit", ErrInvalidStatusTransition},
		{"no-op transition", model.StatusProcessing, "processing", ErrInvalidStatusTransition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCheckoutFixture()
			f.orders.orders[10] = &model.Order{OrderID: 10, UserID: 42, Status: tt.current}

			_, err := f.svc.ChangeStatus(context.Background(), 10, tt.target)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.orders.statusLog)
		})
	}
}

func TestListAllSpansUsers(t *testing.T) {
	f := newCheckoutFixture()
	f.orders.orders[10] = &model.Order{OrderID: 10, UserID: 42, Status: model.StatusProcessing}
	f.orders.orders[11] = &model.Order{OrderID: 11, UserID: 99, Status: model.StatusDelivered}

	orders, err := f.svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	mine, err := f.svc.ListByUser(context.Background(), 42)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestGetInvoiceOwnership(t *testing.T) {
	f := newCheckoutFixture()
	f.orders.orders[10] = &model.Order{OrderID: 10, UserID: 42, InvoicePDF: "cGRm"}

	pdf, err := f.svc.GetInvoice(context.Background(), 42, 10)
	require.NoError(t, err)
	assert.Equal(t, "cGRm", pdf)

	_, err = f.svc.GetInvoice(context.Background(), 99, 10)
	require.ErrorIs(t, err, ErrUnauthorized)

	// the manager path skips the check
	pdf, err = f.svc.GetInvoiceAsManager(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "cGRm", pdf)

	_, err = f.svc.GetInvoice(context.Background(), 42, 11)
	require.ErrorIs(t, err, ErrOrderNotFound)
}
