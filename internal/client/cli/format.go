package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/iudanet/storefront/internal/client/catalog"
	"github.com/iudanet/storefront/internal/models"
)

// PriceFormatter печатает цены в песо в колумбийской локали, без дробной части
type PriceFormatter struct {
	printer *message.Printer
}

// NewPriceFormatter форматтер для es-CO
func NewPriceFormatter() *PriceFormatter {
	return &PriceFormatter{printer: message.NewPrinter(language.MustParse("es-CO"))}
}

// Format 1250000 -> "$ 1.250.000"
func (f *PriceFormatter) Format(price float64) string {
	return f.printer.Sprintf("$ %v", number.Decimal(price, number.MaxFractionDigits(0)))
}

// shortDescriptionLen длина описания в списке товаров
const shortDescriptionLen = 120

func (c *Cli) printProducts(products []models.Product) {
	if len(products) == 0 {
		c.io.Println("No products found.")
		return
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tPRICE\tCONDITION\tSTOCK")
	for _, p := range products {
		name := p.Name
		if p.IsSold {
			name += " (sold)"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", p.ID, name, c.prices.Format(p.Price), p.Condition, p.Stock)
	}
	_ = w.Flush()
	c.io.Printf("%s", b.String())
}

func (c *Cli) printProduct(p *models.Product) {
	c.io.Printf("ID:          %s\n", p.ID)
	c.io.Printf("Name:        %s\n", p.Name)
	c.io.Printf("Price:       %s\n", c.prices.Format(p.Price))
	c.io.Printf("Condition:   %s\n", p.Condition)
	c.io.Printf("Stock:       %d\n", p.Stock)
	if p.IsSold {
		c.io.Println("Status:      sold")
	}
	if p.ImageURL != "" {
		c.io.Printf("Image:       %s\n", p.ImageURL)
	}
	if p.Description != "" {
		c.io.Printf("Description: %s\n", catalog.ShortDescription(p.Description, shortDescriptionLen))
	}
}

func (c *Cli) printCategories(categories []models.Category) {
	if len(categories) == 0 {
		c.io.Println("No categories found.")
		return
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tACTIVE\tDESCRIPTION")
	for _, cat := range categories {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", cat.ID, cat.Name, cat.IsActive, cat.Description)
	}
	_ = w.Flush()
	c.io.Printf("%s", b.String())
}

func (c *Cli) printCart(cart *models.Cart) {
	if cart == nil || len(cart.Items) == 0 {
		c.io.Println("Your cart is empty.")
		return
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ITEM\tPRODUCT\tQTY\tPRICE\tSUBTOTAL")
	for _, item := range cart.Items {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			item.ID, item.Product.Title, item.Quantity,
			c.prices.Format(item.Product.PriceValue()), c.prices.Format(item.Subtotal()))
	}
	_ = w.Flush()
	c.io.Printf("%s", b.String())
	c.io.Printf("Items: %d  Total: %s\n", cart.ItemCount(), c.prices.Format(cart.Total()))
}

func (c *Cli) printOrders(list []models.Order) {
	if len(list) == 0 {
		c.io.Println("No orders found.")
		return
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tSTATUS\tPAYMENT\tTOTAL\tCREATED")
	for _, o := range list {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			o.ID, o.Status, o.PaymentStatus, c.prices.Format(o.TotalAmount.Float()), o.CreatedAt)
	}
	_ = w.Flush()
	c.io.Printf("%s", b.String())
}

func (c *Cli) printOrder(o *models.Order) {
	c.io.Printf("Order:    %s\n", o.ID)
	c.io.Printf("Status:   %s\n", o.Status)
	c.io.Printf("Payment:  %s (%s)\n", o.PaymentStatus, o.PaymentMethod)
	c.io.Printf("Total:    %s\n", c.prices.Format(o.TotalAmount.Float()))
	if o.ShippingAddress != "" {
		c.io.Printf("Ship to:  %s\n", o.ShippingAddress)
	}
	if o.Notes != "" {
		c.io.Printf("Notes:    %s\n", o.Notes)
	}
	for _, item := range o.Items {
		c.io.Printf("  - %s x%d  %s\n", item.Product.Title, item.Quantity, c.prices.Format(item.Price.Float()))
	}
}
