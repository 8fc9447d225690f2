package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"time"

	"CoffeeStoreAPI/internal/invoice"
	"CoffeeStoreAPI/internal/model"
	"CoffeeStoreAPI/internal/repository"

	"github.com/google/uuid"
)

const (
	defaultAddress   = "No address provided"
	defaultLegalName = "Valued Customer"
)

// OrderService runs the checkout and fulfillment workflow: cart
// materialization, conditional stock reservation, pricing, popularity
// recompute, order insertion, invoice rendering, notification and cart
// clearing, plus the compensating cancellation path.
type OrderService struct {
	Orders   OrderStore
	Carts    CartStore
	Products ProductReader
	Profiles ProfileStore
	Users    UserDirectory
	Mailer   EmailSender
	Invoices InvoiceRenderer

	Now func() time.Time // swappable for tests
}

func NewOrderService(
	orders OrderStore,
	carts CartStore,
	products ProductReader,
	profiles ProfileStore,
	users UserDirectory,
	mailer EmailSender,
	invoices InvoiceRenderer,
) *OrderService {
	return &OrderService{
		Orders:   orders,
		Carts:    carts,
		Products: products,
		Profiles: profiles,
		Users:    users,
		Mailer:   mailer,
		Invoices: invoices,
		Now:      time.Now,
	}
}

// CheckoutResult is the workflow's return value: the order summary and
// the invoice bytes as base64.
type CheckoutResult struct {
	Order         model.OrderSummary `json:"order"`
	InvoiceBase64 string             `json:"invoice_base64"`
}

// Checkout converts the user's cart into an order. All per-line stock
// decrements, the sale-count and popularity updates, the order insert
// and the invoice persistence run in one transaction, so a failed line
// rolls back the lines before it. The confirmation email and the cart
// clear happen after commit and are best-effort.
func (s *OrderService) Checkout(ctx context.Context, userID int64) (*CheckoutResult, error) {
	cartID, err := s.Profiles.GetCartIDForUser(ctx, userID)
	if err != nil {
		return nil, ErrCartNotFound
	}
	lines, err := s.Carts.GetLines(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}

	profile, err := s.Profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	address := defaultAddress
	legalName := defaultLegalName
	if profile != nil {
		if profile.DeliveryAddress != "" {
			address = profile.DeliveryAddress
		}
		if profile.LegalName != "" {
			legalName = profile.LegalName
		}
	}
	email, err := s.Users.GetEmail(ctx, userID)
	if err != nil {
		return nil, err
	}

	tx, err := s.Orders.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin checkout: %w", err)
	}
	defer tx.Rollback(ctx)

	order := &model.Order{
		UserID:  userID,
		Status:  model.StatusProcessing,
		Address: address,
		Date:    s.Now(),
	}

	var total float64
	for _, line := range lines {
		product, err := s.Products.GetByID(ctx, line.ProductID)
		if errors.Is(err, repository.ErrProductNotFound) {
			// stale cart line, product since removed: skip silently
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("look up product %d: %w", line.ProductID, err)
		}

		unitPrice := UnitPrice(product.Price, product.Discount)
		lineTotal := LineTotal(unitPrice, line.Quantity)

		ok, err := tx.DecrementStock(ctx, line.ProductID, line.Quantity)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w for product %s", ErrInsufficientStock, product.Name)
		}
		if err := tx.IncrementSaleCount(ctx, line.ProductID, line.Quantity); err != nil {
			return nil, err
		}
		if err := recomputePopularity(ctx, tx, line.ProductID); err != nil {
			return nil, err
		}

		image := ""
		if product.Picture != nil {
			image = *product.Picture
		}
		order.Items = append(order.Items, model.OrderItem{
			ProductID:  line.ProductID,
			Name:       product.Name,
			Image:      image,
			Quantity:   line.Quantity,
			UnitPrice:  unitPrice,
			TotalPrice: lineTotal,
		})
		total += lineTotal
	}
	if len(order.Items) == 0 {
		return nil, ErrCartEmpty
	}
	order.TotalPrice = total

	orderID, err := tx.InsertOrder(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	order.OrderID = orderID

	pdfBytes, err := s.Invoices.Render(s.invoiceData(order, legalName, email))
	if err != nil {
		return nil, fmt.Errorf("render invoice: %w", err)
	}
	pdfBase64 := base64.StdEncoding.EncodeToString(pdfBytes)
	if err := tx.SetInvoicePDF(ctx, orderID, pdfBase64); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit checkout: %w", err)
	}

	// Past this point the order exists; nothing below may fail it.
	if email != "" {
		subject, body := orderConfirmationEmail(orderID, total)
		attachment := Attachment{Filename: "invoice.pdf", Content: pdfBytes, ContentType: "application/pdf"}
		if err := s.Mailer.Send(ctx, email, subject, body, []Attachment{attachment}); err != nil {
			log.Printf("order %d: confirmation email to %s failed: %v", orderID, email, err)
		}
	}
	if err := s.Carts.Clear(ctx, cartID); err != nil {
		log.Printf("order %d: clearing cart %d failed: %v", orderID, cartID, err)
	}

	return &CheckoutResult{
		Order: model.OrderSummary{
			OrderID:    orderID,
			Reference:  fmt.Sprintf("ORDER-%d-%s", orderID, uuid.NewString()),
			Status:     order.Status,
			TotalPrice: total,
			Items:      order.Items,
		},
		InvoiceBase64: pdfBase64,
	}, nil
}

// txPopularity is the slice of WorkflowTx the recompute needs.
type txPopularity interface {
	AverageRating(ctx context.Context, productID int64) (float64, error)
	SaleTotals(ctx context.Context, productID int64) (saleCount, totalSales int64, err error)
	SetPopularity(ctx context.Context, productID int64, score float64) error
}

func recomputePopularity(ctx context.Context, tx txPopularity, productID int64) error {
	avg, err := tx.AverageRating(ctx, productID)
	if err != nil {
		return err
	}
	saleCount, totalSales, err := tx.SaleTotals(ctx, productID)
	if err != nil {
		return err
	}
	return tx.SetPopularity(ctx, productID, PopularityScore(avg, saleCount, totalSales))
}

func (s *OrderService) invoiceData(o *model.Order, legalName, email string) invoice.Invoice {
	inv := invoice.Invoice{
		Number:    o.OrderID,
		Date:      o.Date,
		LegalName: legalName,
		Email:     email,
		Address:   o.Address,
		Total:     o.TotalPrice,
	}
	for _, it := range o.Items {
		inv.Items = append(inv.Items, invoice.Line{
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			Total:     it.TotalPrice,
		})
	}
	return inv
}

// ChangeStatus is the manager-driven status update. Terminal states
// are closed: a delivered or cancelled order cannot be moved again.
// The owner is notified with the cancelled template when the target is
// cancelled, the generic one otherwise.
func (s *OrderService) ChangeStatus(ctx context.Context, orderID int64, target string) (model.OrderStatus, error) {
	status, ok := model.ParseOrderStatus(target)
	if !ok {
		return "", ErrInvalidStatus
	}
	order, err := s.Orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return "", ErrOrderNotFound
	}
	if !order.Status.CanTransitionTo(status) {
		return "", fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, order.Status, status)
	}
	if err := s.Orders.UpdateStatus(ctx, orderID, status); err != nil {
		return "", err
	}
	s.notifyStatusChange(ctx, order.UserID, orderID, status)
	return status, nil
}

// Cancel is the owner-driven cancellation: allowed while the order is
// not delivered (and not already cancelled); restores stock line by
// line and flips the status, both in one transaction.
func (s *OrderService) Cancel(ctx context.Context, userID, orderID int64) (model.OrderStatus, error) {
	order, err := s.Orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return "", ErrOrderNotFound
	}
	if order.UserID != userID {
		return "", ErrUnauthorized
	}
	if order.Status == model.StatusDelivered {
		return "", ErrAlreadyDelivered
	}
	if !order.Status.CanTransitionTo(model.StatusCancelled) {
		return "", fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, order.Status, model.StatusCancelled)
	}

	tx, err := s.Orders.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin cancellation: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, it := range order.Items {
		if err := tx.RestoreStock(ctx, it.ProductID, it.Quantity); err != nil {
			return "", err
		}
	}
	if err := tx.SetOrderStatus(ctx, orderID, model.StatusCancelled); err != nil {
		return "", err
	}
	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit cancellation: %w", err)
	}

	s.notifyStatusChange(ctx, userID, orderID, model.StatusCancelled)
	return model.StatusCancelled, nil
}

func (s *OrderService) notifyStatusChange(ctx context.Context, userID, orderID int64, status model.OrderStatus) {
	email, err := s.Users.GetEmail(ctx, userID)
	if err != nil {
		log.Printf("order %d: resolving owner email failed: %v", orderID, err)
		return
	}
	if email == "" {
		return
	}
	subject, body := statusUpdateEmail(orderID, status)
	if err := s.Mailer.Send(ctx, email, subject, body, nil); err != nil {
		log.Printf("order %d: status email to %s failed: %v", orderID, email, err)
	}
}

// GetInvoice returns the stored invoice for the order's owner.
func (s *OrderService) GetInvoice(ctx context.Context, userID, orderID int64) (string, error) {
	pdf, ownerID, err := s.Orders.GetInvoicePDF(ctx, orderID)
	if err != nil {
		return "", ErrOrderNotFound
	}
	if ownerID != userID {
		return "", ErrUnauthorized
	}
	return pdf, nil
}

// GetInvoiceAsManager skips the ownership check.
func (s *OrderService) GetInvoiceAsManager(ctx context.Context, orderID int64) (string, error) {
	pdf, _, err := s.Orders.GetInvoicePDF(ctx, orderID)
	if err != nil {
		return "", ErrOrderNotFound
	}
	return pdf, nil
}

func (s *OrderService) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return s.Orders.GetOrdersByUser(ctx, userID)
}

// ListAll is the manager view over every order, so the status
// workflow can find the orders it needs to advance.
func (s *OrderService) ListAll(ctx context.Context) ([]model.Order, error) {
	return s.Orders.ListAll(ctx)
}

func (s *OrderService) Get(ctx context.Context, orderID int64) (*model.Order, error) {
	order, err := s.Orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}
