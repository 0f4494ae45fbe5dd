package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/storefront/internal/models"
)

// prompt поле формы checkout
type prompt struct {
	dst    *string
	label  string
	secret bool
}

func (c *Cli) runCheckout(ctx context.Context) error {
	if err := c.requireAuth(ctx, "checkout"); err != nil {
		return err
	}

	current, err := c.cart.Get(ctx)
	if err != nil {
		return err
	}
	if current == nil || len(current.Items) == 0 {
		c.io.Println("Your cart is empty.")
		return nil
	}

	c.io.Println("=== Checkout ===")
	c.printCart(current)
	c.io.Println()

	var form models.PaymentForm
	if user, ok := c.session.CurrentUser(ctx); ok {
		form.Email = user.Email
	}

	fields := []prompt{
		{label: "Card number: ", dst: &form.CardNumber},
		{label: "Card holder: ", dst: &form.CardHolder},
		{label: "Expiry (MM/YY): ", dst: &form.ExpiryDate},
		{label: "CVV: ", dst: &form.CVV, secret: true},
		{label: "Address: ", dst: &form.Address},
		{label: "City: ", dst: &form.City},
		{label: "Postal code (optional): ", dst: &form.PostalCode},
		{label: "Notes (optional): ", dst: &form.Notes},
	}
	if form.Email == "" {
		fields = append(fields, prompt{label: "Email: ", dst: &form.Email})
	}

	for _, f := range fields {
		read := c.io.ReadInput
		if f.secret {
			read = c.io.ReadPassword
		}
		v, err := read(f.label)
		if err != nil {
			return fmt.Errorf("failed to read %q: %w", f.label, err)
		}
		*f.dst = v
	}

	c.io.Println("Processing payment...")
	receipt, err := c.orders.Checkout(ctx, form)
	if err != nil {
		return err
	}
	c.cart.Reset()

	c.io.Println()
	c.io.Println("✓ Payment confirmed!")
	c.io.Printf("Order:   %s\n", receipt.OrderID)
	c.io.Printf("Card:    %s\n", receipt.CardNumber)
	c.io.Printf("Amount:  %s\n", c.prices.Format(receipt.Amount))
	c.io.Printf("Ship to: %s\n", receipt.ShippingAddress)
	c.io.Printf("Date:    %s\n", receipt.Timestamp.Format(time.RFC1123))
	return nil
}
