package services

import (
	"fmt"
	"html"

	"CoffeeStoreAPI/internal/model"
)

// Email templates for the workflow notifications. Bodies mirror the
// storefront's tone; user-supplied strings are HTML-escaped.

func orderConfirmationEmail(orderID int64, total float64) (subject, body string) {
	subject = "Your DriftMoodCoffee Order Confirmation"
	body = fmt.Sprintf(`
		<h2>DriftMood Coffee</h2>
		<p>Thank you for your order!</p>
		<p><strong>Order ID:</strong> %d</p>
		<p><strong>Total:</strong> $%.2f</p>
		<p>Your order is now being processed and will be on its way soon!</p>
	`, orderID, total)
	return subject, body
}

func statusUpdateEmail(orderID int64, status model.OrderStatus) (subject, body string) {
	if status == model.StatusCancelled {
		subject = "Your Order Has Been Cancelled"
		body = fmt.Sprintf(`
			<h2>Order Update</h2>
			<p>Your order <strong>#%d</strong> has been cancelled.</p>
			<p><strong>Status:</strong> %s</p>
			<p>Thank you for shopping with DriftMood Coffee!</p>
		`, orderID, status)
		return subject, body
	}
	subject = "Your Order Status Has Been Updated"
	body = fmt.Sprintf(`
		<h2>Order Update</h2>
		<p>Your order <strong>#%d</strong> has been updated.</p>
		<p><strong>Status:</strong> %s</p>
		<p>Thank you for shopping with DriftMood Coffee!</p>
	`, orderID, status)
	return subject, body
}

// refundDecisionEmail shows the refunded amount on approval only.
func refundDecisionEmail(productName string, decision model.RefundStatus, amount float64) (subject, body string) {
	name := html.EscapeString(productName)
	if decision == model.RefundApproved {
		subject = "Your Refund Has Been Approved"
		body = fmt.Sprintf(`
			<p>Your refund request for <strong>%s</strong> has been <strong>approved</strong>.</p>
			<p>Refunded Amount: <strong>$%.2f</strong></p>
		`, name, amount)
		return subject, body
	}
	subject = "Your Refund Request Was Rejected"
	body = fmt.Sprintf(`
		<p>Your refund request for <strong>%s</strong> has been <strong>rejected</strong>.</p>
	`, name)
	return subject, body
}

func discountEmail(productName string, discount float64) (subject, body string) {
	subject = "A Wishlist Item Is On Sale"
	body = fmt.Sprintf(`
		<h2>DriftMood Coffee</h2>
		<p><strong>%s</strong> from your wishlist is now <strong>%.0f%%</strong> off.</p>
		<p>Grab it while the discount lasts!</p>
	`, html.EscapeString(productName), discount)
	return subject, body
}
