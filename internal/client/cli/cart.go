package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runShowCart(ctx context.Context) error {
	if err := c.requireAuth(ctx, "cart"); err != nil {
		return err
	}
	current, err := c.cart.Get(ctx)
	if err != nil {
		return err
	}
	c.io.Println("=== My Cart ===")
	c.printCart(current)
	return nil
}

func (c *Cli) runAddToCart(ctx context.Context, productID string, quantity int) error {
	if err := c.requireAuth(ctx, "cart add"); err != nil {
		return err
	}
	current, err := c.cart.Add(ctx, productID, quantity)
	if err != nil {
		return err
	}
	c.io.Printf("✓ Added to cart. Items in cart: %d\n", current.ItemCount())
	return nil
}

// runChangeQuantity меняет количество на delta, нулевое количество удаляет позицию
func (c *Cli) runChangeQuantity(ctx context.Context, itemID string, delta int) error {
	if err := c.requireAuth(ctx, "cart change"); err != nil {
		return err
	}
	// количество считается от актуальной корзины
	if _, err := c.cart.Get(ctx); err != nil {
		return err
	}
	current, err := c.cart.ChangeQuantity(ctx, itemID, delta)
	if err != nil {
		return err
	}
	c.printCart(current)
	return nil
}

func (c *Cli) runSetQuantity(ctx context.Context, itemID string, quantity int) error {
	if err := c.requireAuth(ctx, "cart set"); err != nil {
		return err
	}
	current, err := c.cart.UpdateItem(ctx, itemID, quantity)
	if err != nil {
		return err
	}
	c.printCart(current)
	return nil
}

func (c *Cli) runRemoveFromCart(ctx context.Context, itemID string) error {
	if err := c.requireAuth(ctx, "cart remove"); err != nil {
		return err
	}
	current, err := c.cart.RemoveItem(ctx, itemID)
	if err != nil {
		return err
	}
	c.printCart(current)
	return nil
}

func (c *Cli) runClearCart(ctx context.Context) error {
	if err := c.requireAuth(ctx, "cart clear"); err != nil {
		return err
	}
	if _, err := c.cart.Clear(ctx); err != nil {
		return err
	}
	c.io.Println("✓ Cart cleared")
	return nil
}

func (c *Cli) runCartTotal(ctx context.Context) error {
	if err := c.requireAuth(ctx, "cart total"); err != nil {
		return err
	}
	total, err := c.cart.ServerTotal(ctx)
	if err != nil {
		return fmt.Errorf("failed to get total: %w", err)
	}
	c.io.Printf("Total: %s\n", c.prices.Format(total))
	return nil
}
