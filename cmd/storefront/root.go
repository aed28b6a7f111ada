package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"
	"github.com/spf13/cobra"
	"golang.org/x/text/currency"

	"github.com/nikolayk812/storefront-go/internal/config"
	"github.com/nikolayk812/storefront-go/internal/httpapi"
	"github.com/nikolayk812/storefront-go/internal/port"
	"github.com/nikolayk812/storefront-go/internal/session"
	"github.com/nikolayk812/storefront-go/internal/storage"
	"github.com/nikolayk812/storefront-go/internal/store"
)

// app is the composition root: config, logger, session, API client and the
// stores, wired once per invocation.
type app struct {
	cfg     config.Config
	log     *logrus.Logger
	session *session.Manager
	client  *httpapi.Client

	cart      *store.CartStore
	products  *store.ProductStore
	orders    *store.OrderStore
	addresses *store.AddressStore

	pool  *pgxpool.Pool
	redis *redis.Client
}

func newApp(ctx context.Context, cfgPath string) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	log := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	unit, err := currency.ParseISO(cfg.Currency)
	if err != nil {
		return nil, fmt.Errorf("currency[%s] is not valid: %w", cfg.Currency, err)
	}

	manager := session.NewManager()

	client, err := httpapi.New(cfg.BaseURL, manager,
		httpapi.WithCurrency(unit),
		httpapi.WithBreaker(gobreaker.Settings{}),
	)
	if err != nil {
		return nil, fmt.Errorf("httpapi.New: %w", err)
	}

	a := &app{
		cfg:     cfg,
		log:     log,
		session: manager,
		client:  client,
	}

	cartStorage, err := a.newCartStorage(ctx)
	if err != nil {
		return nil, fmt.Errorf("newCartStorage: %w", err)
	}

	a.cart = store.NewCartStore(client, manager, cartStorage, log)
	a.products = store.NewProductStore(client, manager, log)
	a.orders = store.NewOrderStore(client, manager, log)
	a.addresses = store.NewAddressStore(client, manager, log)

	if err := a.cart.Hydrate(ctx); err != nil {
		log.WithError(err).Warn("cart hydration failed")
	}

	// Session transitions drive the cart from outside the store: pull the
	// server cart on sign-in, drop local state on sign-out.
	manager.Subscribe(func(signedIn bool) {
		if signedIn {
			a.cart.FetchCart(ctx)
			return
		}
		a.cart.Reset(ctx)
	})

	if cfg.Token != "" {
		manager.SignIn(session.StaticToken(cfg.Token))
	}

	return a, nil
}

func (a *app) newCartStorage(ctx context.Context) (port.CartStorage, error) {
	guestID := a.cfg.Storage.GuestID
	if guestID == "" {
		guestID = "guest"
	}

	switch a.cfg.Storage.Backend {
	case config.BackendMemory:
		return storage.NewMemory(), nil

	case config.BackendFile:
		return storage.NewFile(a.cfg.Storage.Dir)

	case config.BackendRedis:
		a.redis = redis.NewClient(&redis.Options{Addr: a.cfg.Storage.RedisAddr})
		return storage.NewRedis(a.redis, guestID)

	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, a.cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("pgxpool.New: %w", err)
		}
		a.pool = pool
		return storage.NewPostgres(pool, guestID)

	default:
		return nil, fmt.Errorf("unknown storage backend %q", a.cfg.Storage.Backend)
	}
}

func (a *app) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront client: browse the catalog, manage the cart, place orders",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "storefront.yaml", "path to the config file")

	root.AddCommand(
		newProductsCmd(&cfgPath),
		newCartCmd(&cfgPath),
		newOrdersCmd(&cfgPath),
		newAddressesCmd(&cfgPath),
		newProfileCmd(&cfgPath),
	)

	return root
}
