package cli

import (
	"context"
	"strings"

	pkgapi "github.com/iudanet/storefront/pkg/api"
)

func (c *Cli) runGenerateDescription(ctx context.Context, req pkgapi.GenerateDescriptionRequest) error {
	if err := c.requireAuth(ctx, "ai description"); err != nil {
		return err
	}
	req.Title = strings.TrimSpace(req.Title)
	c.io.Println("Generating description...")
	resp, err := c.apiClient.GenerateDescription(ctx, req)
	if err != nil {
		return err
	}
	c.io.Println(resp.Description)
	return nil
}

func (c *Cli) runGenerateTitle(ctx context.Context, req pkgapi.GenerateTitleRequest) error {
	if err := c.requireAuth(ctx, "ai title"); err != nil {
		return err
	}
	req.CurrentTitle = strings.TrimSpace(req.CurrentTitle)
	resp, err := c.apiClient.GenerateTitle(ctx, req)
	if err != nil {
		return err
	}
	c.io.Println(resp.Title)
	return nil
}

func (c *Cli) runAIStatus(ctx context.Context) error {
	resp, err := c.apiClient.AIStatus(ctx)
	if err != nil {
		return err
	}
	state := "unavailable"
	if resp.Available {
		state = "available"
	}
	c.io.Printf("AI service %s: %s\n", resp.Service, state)
	if resp.Message != "" {
		c.io.Println(resp.Message)
	}
	return nil
}
