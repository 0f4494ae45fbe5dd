package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/storefront/internal/client/auth"
)

func (c *Cli) runRegister(ctx context.Context) error {
	c.io.Println("=== Registration ===")
	c.io.Println()

	name, err := c.io.ReadInput("Name: ")
	if err != nil {
		return fmt.Errorf("failed to read name: %w", err)
	}
	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	phone, err := c.io.ReadInput("Phone (optional): ")
	if err != nil {
		return fmt.Errorf("failed to read phone: %w", err)
	}
	password, err := c.io.ReadPassword("Password (min 6 chars, upper, lower and digit): ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	confirm, err := c.io.ReadPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}

	c.io.Println("Registering user...")
	user, err := c.session.Register(ctx, auth.Profile{
		Name:            name,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
		Phone:           phone,
	})
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Registration successful!")
	c.io.Printf("Welcome, %s (%s)\n", user.Name, user.Email)
	return nil
}

func (c *Cli) runLogin(ctx context.Context, email string) error {
	if err := c.guard(c.session.RequireAnonymous(ctx)); err != nil {
		return fmt.Errorf("%w: already logged in", err)
	}

	c.io.Println("=== Login ===")
	c.io.Println()

	if email == "" {
		var err error
		email, err = c.io.ReadInput("Email: ")
		if err != nil {
			return fmt.Errorf("failed to read email: %w", err)
		}
	}
	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	c.io.Println("Authenticating...")
	user, err := c.session.Login(ctx, email, password)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("User: %s (%s)\n", user.Name, user.Email)
	if user.IsAdmin() {
		c.io.Println("Role: admin")
	}
	return nil
}

func (c *Cli) runLogout(ctx context.Context) error {
	c.io.Println("=== Logout ===")

	if err := c.session.Logout(ctx); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	c.io.Println("✓ Logout successful!")
	c.io.Println("Your local session has been deleted.")
	return nil
}

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Authentication Status ===")
	c.io.Println()

	user, ok := c.session.CurrentUser(ctx)
	if !ok {
		c.io.Println("Status: Not authenticated")
		c.io.Println()
		c.io.Println("Run 'storefront login' to authenticate.")
		return nil
	}

	c.io.Println("Status: Authenticated")
	c.io.Printf("User:   %s (%s)\n", user.Name, user.Email)
	c.io.Printf("Role:   %s\n", user.Role)

	token, _ := c.session.Token(ctx)
	if expiresAt, err := auth.TokenExpiry(token); err == nil {
		c.io.Printf("Token expires: %s\n", expiresAt.Format(time.RFC3339))
		c.io.Printf("Time remaining: %s\n", time.Until(expiresAt).Round(time.Second))
	}
	c.io.Printf("Server: %s\n", c.apiClient.BaseURL())
	return nil
}
