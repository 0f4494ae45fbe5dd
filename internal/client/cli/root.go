package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iudanet/storefront/internal/client/catalog"
	"github.com/iudanet/storefront/internal/client/iocli"
	"github.com/iudanet/storefront/internal/config"
	"github.com/iudanet/storefront/internal/logging"
	pkgapi "github.com/iudanet/storefront/pkg/api"
)

// BuildInfo версия сборки, задается через ldflags
type BuildInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

// annotationOffline команда не открывает хранилище и не ходит в backend
const annotationOffline = "offline"

// app общее состояние команд одного запуска
type app struct {
	io        iocli.IO
	cli       *Cli
	log       *zap.Logger
	closer    func() error
	configArg string
	server    string
	dbPath    string
	logLevel  string
	logFormat string
	info      BuildInfo
}

// Execute выполняет команду и возвращает код выхода процесса
func Execute(ctx context.Context, info BuildInfo, io iocli.IO, args []string) int {
	a := &app{io: io, info: info, log: zap.NewNop()}
	defer a.close()

	root := a.rootCommand()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		msg := UserMessage(err)
		if msg == "" {
			msg = err.Error()
		}
		io.Printf("Error: %s\n", msg)
		a.log.Debug("command failed", zap.Error(err))
		return 1
	}
	return 0
}

// NewRootCommand дерево команд без запуска, для документации и completion
func NewRootCommand(info BuildInfo, io iocli.IO) *cobra.Command {
	a := &app{io: io, info: info, log: zap.NewNop()}
	return a.rootCommand()
}

func (a *app) close() {
	if a.closer != nil {
		if err := a.closer(); err != nil {
			a.log.Warn("failed to close storage", zap.Error(err))
		}
		a.closer = nil
	}
	logging.Sync(a.log)
}

// setup загружает конфигурацию, создает logger и открывает Cli
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configArg)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("server") {
		cfg.ServerURL = a.server
	}
	if flags.Changed("db") {
		cfg.DBPath = a.dbPath
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.New(logging.Config{Output: os.Stderr, Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.log = log
	a.log.Debug("config loaded", cfg.Fields()...)

	c, closer, err := Open(cmd.Context(), cfg, a.io, log)
	if err != nil {
		return err
	}
	a.cli, a.closer = c, closer
	return nil
}

// offline команде не нужны хранилище и backend: version, help, completion
func offline(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationOffline] == "true" {
			return true
		}
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
	}
	return false
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Marketplace terminal client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if offline(cmd) {
				return nil
			}
			return a.setup(cmd)
		},
	}
	root.SetOut(a.io)
	root.SetErr(a.io)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configArg, "config", "", "YAML config file (or set "+config.EnvConfigPath+")")
	pf.StringVar(&a.server, "server", "", "Backend URL")
	pf.StringVar(&a.dbPath, "db", "", "Path to local database")
	pf.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&a.logFormat, "log-format", "", "Log format: console, json")

	root.AddCommand(
		a.versionCommand(),
		a.registerCommand(),
		a.loginCommand(),
		a.logoutCommand(),
		a.statusCommand(),
		a.productsCommand(),
		a.categoriesCommand(),
		a.cartCommand(),
		a.ordersCommand(),
		a.checkoutCommand(),
		a.searchCommand(),
		a.uploadCommand(),
		a.aiCommand(),
	)
	return root
}

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Show version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationOffline: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			a.io.Println("Storefront Client")
			a.io.Printf("Version:    %s\n", a.info.Version)
			a.io.Printf("Build Date: %s\n", a.info.BuildDate)
			a.io.Printf("Git Commit: %s\n", a.info.GitCommit)
		},
	}
}

func (a *app) registerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runRegister(cmd.Context())
		},
	}
}

func (a *app) loginCommand() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runLogin(cmd.Context(), email)
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	return cmd
}

func (a *app) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and delete the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runLogout(cmd.Context())
		},
	}
}

func (a *app) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show authentication status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runStatus(cmd.Context())
		},
	}
}

func bindProductForm(cmd *cobra.Command, form *productForm) {
	f := cmd.Flags()
	f.StringVar(&form.Title, "title", "", "Product title")
	f.StringVar(&form.Description, "description", "", "Product description")
	f.StringVar(&form.CategoryID, "category", "", "Category id")
	f.StringVar(&form.Condition, "condition", "new", "Condition: new, like_new, used")
	f.StringSliceVar(&form.Images, "image", nil, "Image URL (repeatable)")
	f.Float64Var(&form.Price, "price", 0, "Price")
	f.IntVar(&form.Stock, "stock", 1, "Units in stock")
}

func (a *app) productsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "Browse and manage products",
	}

	var (
		page int
		mine bool
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runListProducts(cmd.Context(), page, mine)
		},
	}
	list.Flags().IntVarP(&page, "page", "p", 1, "Page number")
	list.Flags().BoolVar(&mine, "mine", false, "Only my products")

	get := &cobra.Command{
		Use:   "get <id|slug>",
		Short: "Show a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runGetProduct(cmd.Context(), args[0])
		},
	}

	var createForm productForm
	create := &cobra.Command{
		Use:   "create",
		Short: "Publish a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runCreateProduct(cmd.Context(), createForm)
		},
	}
	bindProductForm(create, &createForm)

	var updateForm productForm
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runUpdateProduct(cmd.Context(), args[0], updateForm)
		},
	}
	bindProductForm(update, &updateForm)

	sold := &cobra.Command{
		Use:   "sold <id>",
		Short: "Mark a product as sold",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runMarkSold(cmd.Context(), args[0])
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runDeleteProduct(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(list, get, create, update, sold, del)
	return cmd
}

func bindCategoryInput(cmd *cobra.Command, in *catalog.CategoryInput) {
	f := cmd.Flags()
	f.StringVar(&in.Name, "name", "", "Category name")
	f.StringVar(&in.Description, "description", "", "Category description")
	f.StringVar(&in.IconURL, "icon", "", "Icon URL")
}

func (a *app) categoriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "Browse and manage categories",
	}

	var filter string
	list := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runListCategories(cmd.Context(), filter)
		},
	}
	list.Flags().StringVarP(&filter, "filter", "f", "", "Filter by name or description")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runGetCategory(cmd.Context(), args[0])
		},
	}

	var createIn catalog.CategoryInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a category (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runCreateCategory(cmd.Context(), createIn)
		},
	}
	bindCategoryInput(create, &createIn)

	var updateIn catalog.CategoryInput
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a category (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runUpdateCategory(cmd.Context(), args[0], updateIn)
		},
	}
	bindCategoryInput(update, &updateIn)

	activate := &cobra.Command{
		Use:   "activate <id>",
		Short: "Activate a category (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runSetCategoryActive(cmd.Context(), args[0], true)
		},
	}
	deactivate := &cobra.Command{
		Use:   "deactivate <id>",
		Short: "Deactivate a category (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runSetCategoryActive(cmd.Context(), args[0], false)
		},
	}

	cmd.AddCommand(list, get, create, update, activate, deactivate)
	return cmd
}

// intArg разбирает целый позиционный аргумент
func intArg(name, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be an integer", name, raw)
	}
	return n, nil
}

func (a *app) cartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runShowCart(cmd.Context())
		},
	}

	var qty int
	add := &cobra.Command{
		Use:   "add <productId>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runAddToCart(cmd.Context(), args[0], qty)
		},
	}
	add.Flags().IntVarP(&qty, "qty", "q", 1, "Quantity")

	set := &cobra.Command{
		Use:   "set <itemId> <quantity>",
		Short: "Set the quantity of a cart item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := intArg("quantity", args[1])
			if err != nil {
				return err
			}
			return a.cli.runSetQuantity(cmd.Context(), args[0], n)
		},
	}

	change := &cobra.Command{
		Use:   "change <itemId> <delta>",
		Short: "Increase or decrease a cart item quantity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := intArg("delta", args[1])
			if err != nil {
				return err
			}
			return a.cli.runChangeQuantity(cmd.Context(), args[0], delta)
		},
	}

	remove := &cobra.Command{
		Use:   "remove <itemId>",
		Short: "Remove an item from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runRemoveFromCart(cmd.Context(), args[0])
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runClearCart(cmd.Context())
		},
	}

	total := &cobra.Command{
		Use:   "total",
		Short: "Show the cart total computed by the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runCartTotal(cmd.Context())
		},
	}

	cmd.AddCommand(add, set, change, remove, clearCmd, total)
	return cmd
}

func (a *app) ordersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Orders and sales",
	}

	var sales bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List my orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runListOrders(cmd.Context(), sales)
		},
	}
	list.Flags().BoolVar(&sales, "sales", false, "List my sales instead")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runGetOrder(cmd.Context(), args[0])
		},
	}

	cancel := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runCancelOrder(cmd.Context(), args[0])
		},
	}

	status := &cobra.Command{
		Use:   "status <id> <STATUS>",
		Short: "Update order status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runUpdateOrderStatus(cmd.Context(), args[0], args[1])
		},
	}

	cmd.AddCommand(list, get, cancel, status)
	return cmd
}

func (a *app) checkoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Pay for the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runCheckout(cmd.Context())
		},
	}
}

func (a *app) searchCommand() *cobra.Command {
	var (
		opts               searchOptions
		minPrice, maxPrice float64
	)
	cmd := &cobra.Command{
		Use:   "search [term]",
		Short: "Search products",
		Long: `Search products by term, categories, price, condition and sort order.

With --interactive the filters are edited line by line and results refresh as you type.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Term = args[0]
			}
			if cmd.Flags().Changed("min") {
				opts.MinPrice = &minPrice
			}
			if cmd.Flags().Changed("max") {
				opts.MaxPrice = &maxPrice
			}
			return a.cli.runSearch(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.StringSliceVarP(&opts.Categories, "category", "c", nil, "Category id (repeatable)")
	f.Float64Var(&minPrice, "min", 0, "Minimum price")
	f.Float64Var(&maxPrice, "max", 0, "Maximum price")
	f.StringVar(&opts.Condition, "condition", "", "Condition: any, new, like_new, used")
	f.StringVarP(&opts.Sort, "sort", "s", "", "Sort: relevant, recent, price_asc, price_desc")
	f.IntVarP(&opts.Page, "page", "p", 1, "Page number")
	f.BoolVarP(&opts.Interactive, "interactive", "i", false, "Interactive mode")
	return cmd
}

func (a *app) uploadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload product images",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runUpload(cmd.Context(), args)
		},
	}
}

func (a *app) aiCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ai",
		Short: "Generate product texts",
	}

	var descReq pkgapi.GenerateDescriptionRequest
	description := &cobra.Command{
		Use:   "description <title>",
		Short: "Generate a product description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			descReq.Title = args[0]
			return a.cli.runGenerateDescription(cmd.Context(), descReq)
		},
	}
	df := description.Flags()
	df.StringVar(&descReq.CurrentDescription, "current", "", "Current description to improve")
	df.StringVar(&descReq.CategoryName, "category", "", "Category name")
	df.StringSliceVar(&descReq.Images, "image", nil, "Image URL (repeatable)")
	df.Float64Var(&descReq.Price, "price", 0, "Price")

	var titleReq pkgapi.GenerateTitleRequest
	title := &cobra.Command{
		Use:   "title <current title>",
		Short: "Suggest a better product title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			titleReq.CurrentTitle = args[0]
			return a.cli.runGenerateTitle(cmd.Context(), titleReq)
		},
	}
	title.Flags().StringVar(&titleReq.CategoryName, "category", "", "Category name")

	status := &cobra.Command{
		Use:   "status",
		Short: "Check the AI service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runAIStatus(cmd.Context())
		},
	}

	cmd.AddCommand(description, title, status)
	return cmd
}
