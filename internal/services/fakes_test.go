package services

import (
	"context"
	"errors"
	"fmt"

	"CoffeeStoreAPI/internal/invoice"
	"CoffeeStoreAPI/internal/model"
	"CoffeeStoreAPI/internal/repository"
)

// In-memory implementations of the workflow ports. They mirror the
// pgx repositories' observable behavior closely enough for the
// services to run against them unchanged.

type fakeTx struct {
	stock       map[int64]int
	saleCounts  map[int64]int64
	ratings     map[int64]float64
	popularity  map[int64]float64
	inserted    *model.Order
	nextOrderID int64
	invoices    map[int64]string
	statuses    map[int64]model.OrderStatus
	refunds     map[int64]model.RefundStatus
	committed   bool
	rolledBack  bool
}

func newFakeTx() *fakeTx {
	return &fakeTx{
		stock:       map[int64]int{},
		saleCounts:  map[int64]int64{},
		ratings:     map[int64]float64{},
		popularity:  map[int64]float64{},
		nextOrderID: 1,
		invoices:    map[int64]string{},
		statuses:    map[int64]model.OrderStatus{},
		refunds:     map[int64]model.RefundStatus{},
	}
}

func (t *fakeTx) DecrementStock(_ context.Context, productID int64, qty int) (bool, error) {
	if t.stock[productID] < qty {
		return false, nil
	}
	t.stock[productID] -= qty
	return true, nil
}

func (t *fakeTx) IncrementSaleCount(_ context.Context, productID int64, qty int) error {
	t.saleCounts[productID] += int64(qty)
	return nil
}

func (t *fakeTx) AverageRating(_ context.Context, productID int64) (float64, error) {
	return t.ratings[productID], nil
}

func (t *fakeTx) SaleTotals(_ context.Context, productID int64) (int64, int64, error) {
	var total int64
	for _, n := range t.saleCounts {
		total += n
	}
	return t.saleCounts[productID], total, nil
}

func (t *fakeTx) SetPopularity(_ context.Context, productID int64, score float64) error {
	t.popularity[productID] = score
	return nil
}

func (t *fakeTx) InsertOrder(_ context.Context, o *model.Order) (int64, error) {
	id := t.nextOrderID
	t.nextOrderID++
	cp := *o
	t.inserted = &cp
	return id, nil
}

func (t *fakeTx) SetInvoicePDF(_ context.Context, orderID int64, pdfBase64 string) error {
	t.invoices[orderID] = pdfBase64
	return nil
}

func (t *fakeTx) RestoreStock(_ context.Context, productID int64, qty int) error {
	t.stock[productID] += qty
	return nil
}

func (t *fakeTx) SetOrderStatus(_ context.Context, orderID int64, status model.OrderStatus) error {
	t.statuses[orderID] = status
	return nil
}

func (t *fakeTx) SetRefundStatusIfPending(_ context.Context, refundID int64, status model.RefundStatus) (bool, error) {
	if t.refunds[refundID] != model.RefundPending {
		return false, nil
	}
	t.refunds[refundID] = status
	return true, nil
}

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

type fakeOrderStore struct {
	tx        *fakeTx
	orders    map[int64]*model.Order
	statusLog []model.OrderStatus
}

func (f *fakeOrderStore) Begin(context.Context) (repository.WorkflowTx, error) {
	return f.tx, nil
}

func (f *fakeOrderStore) GetOrderByID(_ context.Context, orderID int64) (*model.Order, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return nil, errors.New("no rows")
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderStore) GetOrdersByUser(_ context.Context, userID int64) ([]model.Order, error) {
	var out []model.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderStore) ListAll(context.Context) ([]model.Order, error) {
	var out []model.Order
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOrderStore) GetInvoicePDF(_ context.Context, orderID int64) (string, int64, error) {
	o, ok := f.orders[orderID]
	if !ok || o.InvoicePDF == "" {
		return "", 0, errors.New("no rows")
	}
	return o.InvoicePDF, o.UserID, nil
}

func (f *fakeOrderStore) UpdateStatus(_ context.Context, orderID int64, status model.OrderStatus) error {
	f.statusLog = append(f.statusLog, status)
	if o, ok := f.orders[orderID]; ok {
		o.Status = status
	}
	return nil
}

type fakeCartStore struct {
	lines   map[int64][]model.CartLine
	cleared []int64
}

func (f *fakeCartStore) GetLines(_ context.Context, cartID int64) ([]model.CartLine, error) {
	return f.lines[cartID], nil
}

func (f *fakeCartStore) Clear(_ context.Context, cartID int64) error {
	f.cleared = append(f.cleared, cartID)
	return nil
}

type fakeProductReader struct {
	products map[int64]*model.Product
	errs     map[int64]error
}

func (f *fakeProductReader) GetByID(_ context.Context, id int64) (*model.Product, error) {
	if err := f.errs[id]; err != nil {
		return nil, err
	}
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

type fakeProfileStore struct {
	cartID  int64
	cartErr error
	profile *model.CustomerInfo
}

func (f *fakeProfileStore) GetByUserID(context.Context, int64) (*model.CustomerInfo, error) {
	return f.profile, nil
}

func (f *fakeProfileStore) GetCartIDForUser(context.Context, int64) (int64, error) {
	return f.cartID, f.cartErr
}

type fakeUserDirectory struct {
	email string
}

func (f *fakeUserDirectory) GetEmail(context.Context, int64) (string, error) {
	return f.email, nil
}

type sentMail struct {
	to          string
	subject     string
	html        string
	attachments []Attachment
}

type fakeMailer struct {
	sent []sentMail
	fail bool
}

func (f *fakeMailer) Send(_ context.Context, to, subject, html string, attachments []Attachment) error {
	if f.fail {
		return errors.New("smtp down")
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, html: html, attachments: attachments})
	return nil
}

type fakeRenderer struct {
	fail bool
}

func (f *fakeRenderer) Render(inv invoice.Invoice) ([]byte, error) {
	if f.fail {
		return nil, errors.New("render failed")
	}
	return []byte(fmt.Sprintf("%%PDF-fake invoice %d", inv.Number)), nil
}

type fakeRefundStore struct {
	existing map[[2]int64]bool
	created  []model.Refund
	nextID   int64
	details  map[int64]*repository.RefundDetail
}

func newFakeRefundStore() *fakeRefundStore {
	return &fakeRefundStore{
		existing: map[[2]int64]bool{},
		nextID:   1,
		details:  map[int64]*repository.RefundDetail{},
	}
}

func (f *fakeRefundStore) Exists(_ context.Context, productID, orderID int64) (bool, error) {
	return f.existing[[2]int64{productID, orderID}], nil
}

func (f *fakeRefundStore) Create(_ context.Context, productID int64, qty int, orderID int64, amount float64) (int64, error) {
	id := f.nextID
	f.nextID++
	f.existing[[2]int64{productID, orderID}] = true
	f.created = append(f.created, model.Refund{
		RefundID:  id,
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  qty,
		Status:    model.RefundPending,
		Amount:    amount,
	})
	return id, nil
}

func (f *fakeRefundStore) GetDetail(_ context.Context, refundID int64) (*repository.RefundDetail, error) {
	d, ok := f.details[refundID]
	if !ok {
		return nil, errors.New("no rows")
	}
	cp := *d
	return &cp, nil
}

func (f *fakeRefundStore) ListByUser(context.Context, int64) ([]model.Refund, error) {
	return f.created, nil
}

func (f *fakeRefundStore) ListAll(context.Context) ([]model.Refund, error) {
	return f.created, nil
}
