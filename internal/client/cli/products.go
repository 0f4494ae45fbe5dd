package cli

import (
	"context"

	"github.com/iudanet/storefront/internal/models"
	"github.com/iudanet/storefront/internal/validation"
)

// productForm флаги создания и изменения товара
type productForm struct {
	Title       string
	Description string
	CategoryID  string
	Condition   string
	Images      []string
	Price       float64
	Stock       int
}

func (f productForm) draft() validation.ProductDraft {
	return validation.ProductDraft{
		Title:       f.Title,
		Description: f.Description,
		CategoryID:  f.CategoryID,
		Condition:   models.ProductCondition(f.Condition),
		Price:       f.Price,
		Stock:       f.Stock,
	}
}

func (c *Cli) runListProducts(ctx context.Context, page int, mine bool) error {
	if mine {
		if err := c.requireAuth(ctx, "products list --mine"); err != nil {
			return err
		}
		result, err := c.products.Mine(ctx, page, 0)
		if err != nil {
			return err
		}
		c.io.Printf("=== My Products (page %d, %d total) ===\n", max(page, 1), result.Total)
		c.printProducts(result.Products)
		return nil
	}

	result, err := c.products.List(ctx, page)
	if err != nil {
		return err
	}
	c.io.Printf("=== Products (page %d, %d total) ===\n", max(page, 1), result.Total)
	c.printProducts(result.Products)
	return nil
}

func (c *Cli) runGetProduct(ctx context.Context, term string) error {
	p, err := c.products.Get(ctx, term)
	if err != nil {
		return err
	}
	c.printProduct(p)
	return nil
}

func (c *Cli) runCreateProduct(ctx context.Context, form productForm) error {
	if err := c.requireAuth(ctx, "products create"); err != nil {
		return err
	}
	p, err := c.products.Create(ctx, form.draft(), form.Images)
	if err != nil {
		return err
	}
	c.io.Println("✓ Product created!")
	c.printProduct(p)
	return nil
}

func (c *Cli) runUpdateProduct(ctx context.Context, term string, form productForm) error {
	if err := c.requireAuth(ctx, "products update"); err != nil {
		return err
	}
	p, err := c.products.Update(ctx, term, form.draft(), form.Images)
	if err != nil {
		return err
	}
	c.io.Println("✓ Product updated!")
	c.printProduct(p)
	return nil
}

func (c *Cli) runMarkSold(ctx context.Context, id string) error {
	if err := c.requireAuth(ctx, "products sold"); err != nil {
		return err
	}
	p, err := c.products.MarkSold(ctx, id)
	if err != nil {
		return err
	}
	c.io.Printf("✓ %s marked as sold\n", p.Name)
	return nil
}

func (c *Cli) runDeleteProduct(ctx context.Context, id string) error {
	if err := c.requireAuth(ctx, "products delete"); err != nil {
		return err
	}
	if err := c.products.Delete(ctx, id); err != nil {
		return err
	}
	c.io.Printf("✓ Product %s deleted\n", id)
	return nil
}
