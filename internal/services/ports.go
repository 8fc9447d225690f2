package services

import (
	"context"

	"CoffeeStoreAPI/internal/invoice"
	"CoffeeStoreAPI/internal/model"
	"CoffeeStoreAPI/internal/repository"
)

// Attachment is a file attached to an outgoing email.
type Attachment struct {
	Filename    string
	Content     []byte
	ContentType string
}

// EmailSender is the notification port. Sends are best-effort from the
// workflows' perspective: failures are logged, never propagated.
type EmailSender interface {
	Send(ctx context.Context, to, subject, html string, attachments []Attachment) error
}

// InvoiceRenderer turns an order snapshot into a PDF buffer.
type InvoiceRenderer interface {
	Render(inv invoice.Invoice) ([]byte, error)
}

// Store ports consumed by the order and refund workflows. The pgx
// repositories satisfy them; tests use in-memory fakes.

type CartStore interface {
	GetLines(ctx context.Context, cartID int64) ([]model.CartLine, error)
	Clear(ctx context.Context, cartID int64) error
}

type ProductReader interface {
	GetByID(ctx context.Context, id int64) (*model.Product, error)
}

type ProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*model.CustomerInfo, error)
	GetCartIDForUser(ctx context.Context, userID int64) (int64, error)
}

// UserDirectory resolves recipient emails; empty string means the
// notification is silently skipped.
type UserDirectory interface {
	GetEmail(ctx context.Context, userID int64) (string, error)
}

type OrderStore interface {
	Begin(ctx context.Context) (repository.WorkflowTx, error)
	GetOrderByID(ctx context.Context, orderID int64) (*model.Order, error)
	GetOrdersByUser(ctx context.Context, userID int64) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	GetInvoicePDF(ctx context.Context, orderID int64) (string, int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
}

type RefundStore interface {
	Exists(ctx context.Context, productID, orderID int64) (bool, error)
	Create(ctx context.Context, productID int64, qty int, orderID int64, amount float64) (int64, error)
	GetDetail(ctx context.Context, refundID int64) (*repository.RefundDetail, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Refund, error)
	ListAll(ctx context.Context) ([]model.Refund, error)
}
