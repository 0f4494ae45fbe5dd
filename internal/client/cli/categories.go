package cli

import (
	"context"

	"github.com/iudanet/storefront/internal/client/catalog"
	"github.com/iudanet/storefront/internal/models"
)

func (c *Cli) runListCategories(ctx context.Context, filter string) error {
	categories, err := c.categories.List(ctx)
	if err != nil {
		return err
	}
	c.io.Println("=== Categories ===")
	c.printCategories(catalog.Filter(categories, filter))
	return nil
}

func (c *Cli) runGetCategory(ctx context.Context, id string) error {
	category, err := c.categories.Get(ctx, id)
	if err != nil {
		return err
	}
	c.printCategories([]models.Category{*category})
	return nil
}

func (c *Cli) runCreateCategory(ctx context.Context, in catalog.CategoryInput) error {
	if err := c.requireAdmin(ctx); err != nil {
		return err
	}
	category, err := c.categories.Create(ctx, in)
	if err != nil {
		return err
	}
	c.io.Printf("✓ Category %s created (%s)\n", category.Name, category.ID)
	return nil
}

func (c *Cli) runUpdateCategory(ctx context.Context, id string, in catalog.CategoryInput) error {
	if err := c.requireAdmin(ctx); err != nil {
		return err
	}
	category, err := c.categories.Update(ctx, id, in)
	if err != nil {
		return err
	}
	c.io.Printf("✓ Category %s updated\n", category.Name)
	return nil
}

func (c *Cli) runSetCategoryActive(ctx context.Context, id string, active bool) error {
	if err := c.requireAdmin(ctx); err != nil {
		return err
	}
	if !active {
		if err := c.categories.Deactivate(ctx, id); err != nil {
			return err
		}
		c.io.Printf("✓ Category %s deactivated\n", id)
		return nil
	}
	category, err := c.categories.Activate(ctx, id)
	if err != nil {
		return err
	}
	c.io.Printf("✓ Category %s activated\n", category.Name)
	return nil
}
