package cli

import (
	"context"
	"strings"

	"github.com/iudanet/storefront/internal/models"
)

func (c *Cli) runListOrders(ctx context.Context, sales bool) error {
	if err := c.requireAuth(ctx, "orders"); err != nil {
		return err
	}

	var (
		list []models.Order
		err  error
	)
	title := "=== My Orders ==="
	if sales {
		title = "=== My Sales ==="
		list, err = c.orders.Sales(ctx)
	} else {
		list, err = c.orders.Mine(ctx)
	}
	if err != nil {
		return err
	}

	c.io.Println(title)
	c.printOrders(list)
	return nil
}

func (c *Cli) runGetOrder(ctx context.Context, id string) error {
	if err := c.requireAuth(ctx, "orders get"); err != nil {
		return err
	}
	order, err := c.orders.Get(ctx, id)
	if err != nil {
		return err
	}
	c.printOrder(order)
	return nil
}

func (c *Cli) runCancelOrder(ctx context.Context, id string) error {
	if err := c.requireAuth(ctx, "orders cancel"); err != nil {
		return err
	}
	order, err := c.orders.Cancel(ctx, id)
	if err != nil {
		return err
	}
	c.io.Printf("✓ Order %s is now %s\n", order.ID, order.Status)
	return nil
}

func (c *Cli) runUpdateOrderStatus(ctx context.Context, id, status string) error {
	if err := c.requireAuth(ctx, "orders status"); err != nil {
		return err
	}
	order, err := c.orders.UpdateStatus(ctx, id, models.OrderStatus(strings.ToUpper(strings.TrimSpace(status))))
	if err != nil {
		return err
	}
	c.io.Printf("✓ Order %s is now %s\n", order.ID, order.Status)
	return nil
}
