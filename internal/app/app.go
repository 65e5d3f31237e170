package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"strike-connect/config"
	"strike-connect/internal/adapter/http/dto"
	httpHandler "strike-connect/internal/adapter/http/handler"
	"strike-connect/internal/adapter/metrics"
	nwc "strike-connect/internal/adapter/nostr"
	"strike-connect/internal/adapter/storage/memory"
	pgStorage "strike-connect/internal/adapter/storage/postgres"
	redisStorage "strike-connect/internal/adapter/storage/redis"
	"strike-connect/internal/adapter/strike"
	"strike-connect/internal/core/domain"
	"strike-connect/internal/core/ports"
	"strike-connect/internal/service"
	"strike-connect/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

// App owns every long-lived component of the bridge.
type App struct {
	cfg  *config.Config
	log  zerolog.Logger
	ring *logger.RingBuffer

	supervisor *service.ConnectionSupervisor
	dispatcher *service.RequestDispatcher
	aggregator *service.BalanceAggregator
	status     *service.StatusService
	router     *gin.Engine

	mu        sync.Mutex
	servers   []*http.Server
	addrs     []string
	bg        sync.WaitGroup
	closers   []func()
	dashReady chan struct{}
}

type options struct {
	dialer     ports.RelayDialer
	gateway    ports.PaymentGateway
	retryDelay time.Duration
}

type Option func(*options)

// WithDialer replaces the relay dialer.
func WithDialer(d ports.RelayDialer) Option {
	return func(o *options) { o.dialer = d }
}

// WithGateway replaces the Strike client.
func WithGateway(g ports.PaymentGateway) Option {
	return func(o *options) { o.gateway = g }
}

func WithRetryDelay(d time.Duration) Option {
	return func(o *options) { o.retryDelay = d }
}

// New wires the application. cfg must already be validated. ring receives
// the same lines as log and backs the dashboard log views.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger, ring *logger.RingBuffer, opts ...Option) (*App, error) {
	o := options{retryDelay: service.DefaultRetryDelay}
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{cfg: cfg, log: log, ring: ring, dashReady: make(chan struct{})}
	if ring == nil {
		a.ring = logger.NewRingBuffer(cfg.Log.BufferSize)
	}

	pollInterval, err := cfg.Wallet.PollInterval()
	if err != nil {
		return nil, err
	}

	var (
		invoiceStore ports.InvoiceStore
		paymentRepo  ports.PaymentRepository
		rateLimiter  *redisStorage.RateLimitStore
		checkers     []ports.HealthChecker
	)

	if cfg.Storage.UsesRedis() {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		invoiceStore = redisStorage.NewInvoiceStore(rdb, cfg.Storage.InvoiceTTL)
		rateLimiter = redisStorage.NewRateLimitStore(rdb)
		checkers = append(checkers, redisStorage.NewHealthCheck(rdb))
	} else {
		invoiceStore = memory.NewInvoiceStore(cfg.Storage.InvoiceMaxEntries)
	}

	if cfg.Storage.PaymentsPersist {
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, pool.Close)
		repo := pgStorage.NewPaymentRepo(pool)
		if err := repo.Migrate(ctx); err != nil {
			a.Close()
			return nil, err
		}
		paymentRepo = repo
		checkers = append(checkers, pgStorage.NewHealthCheck(pool))
	}

	gateway := o.gateway
	if gateway == nil {
		gateway = strike.NewClient(strike.Config{
			BaseURL:        cfg.Strike.BaseURL,
			APIKey:         cfg.Strike.APIKey,
			SourceCurrency: cfg.Strike.SourceCurrency,
			Timeout:        cfg.Strike.Timeout,
		}, nil, log)
	}

	dialer := o.dialer
	if dialer == nil {
		dialer = nwc.NewDialer(log)
	}

	codec, err := nwc.NewCodec(cfg.NWC.ServicePrivkey, cfg.NWC.ConnectionSecret, cfg.NWC.AuthorizedPubkey)
	if err != nil {
		a.Close()
		return nil, err
	}
	connectionPubkey, err := nwc.PublicKey(cfg.NWC.ConnectionSecret)
	if err != nil {
		a.Close()
		return nil, err
	}

	features := domain.Features{
		BalanceEnabled:            cfg.Wallet.BalanceEnabled,
		TransactionHistoryEnabled: cfg.Wallet.TransactionHistoryEnabled,
	}
	prom := metrics.NewPrometheus()

	ledger := service.NewQuotaLedger(cfg.Wallet.MaxSendSats)
	invoices := service.NewInvoiceCache(invoiceStore, log)
	history := service.NewPaymentHistory(paymentRepo, log)
	a.aggregator = service.NewBalanceAggregator(gateway, history, features, pollInterval, log)

	a.supervisor = service.NewConnectionSupervisor(dialer, cfg.NWC.RelayURI, connectionPubkey, prom, log,
		service.WithRetryDelay(o.retryDelay),
		service.WithOnFirstConnect(a.onFirstConnect),
	)
	a.dispatcher = service.NewRequestDispatcher(codec, gateway, ledger, invoices, history, a.supervisor, features, prom, log)
	a.status = service.NewStatusService(a.supervisor, ledger, invoices, history, a.aggregator, features)

	deps := httpHandler.RouterDeps{
		Status: a.status,
		ACL:    service.NewACLProbe(gateway, log),
		Logs:   a.ring,
		Config: dto.ConfigResponse{
			RelayURI:                  cfg.NWC.RelayURI,
			MaxSendSats:               cfg.Wallet.MaxSendSats,
			BalanceEnabled:            features.BalanceEnabled,
			TransactionHistoryEnabled: features.TransactionHistoryEnabled,
			BalancePollInterval:       cfg.Wallet.BalancePollInterval,
			BalanceDisplay:            cfg.Dashboard.BalanceDisplay,
			AuthEnabled:               cfg.Dashboard.AuthEnabled(),
		},
		HealthCheckers: checkers,
		Metrics:        prom.Handler(),
		Logger:         log.With().Str("component", "dashboard").Logger(),
	}
	if rateLimiter != nil {
		deps.RateLimitStore = rateLimiter
	}
	if cfg.Dashboard.AuthEnabled() {
		deps.HashSvc = service.NewPasswordHasher(service.DefaultArgon2Params)
		deps.TokenSvc = service.NewJWTTokenService(cfg.Dashboard.JWTSecret, cfg.Dashboard.JWTExpiry)
		deps.PasswordHash = cfg.Dashboard.PasswordHash
	}
	a.router = httpHandler.SetupRouter(deps)

	log.Info().
		Str("relay", cfg.NWC.RelayURI).
		Str("service_pubkey", codec.ServicePubkey()).
		Int64("max_send_sats", cfg.Wallet.MaxSendSats).
		Bool("balance", features.BalanceEnabled).
		Bool("transaction_history", features.TransactionHistoryEnabled).
		Str("invoice_backend", cfg.Storage.InvoiceBackend).
		Msg("strike-connect initialised")

	return a, nil
}

// Run connects to the relay and serves requests until ctx is done. It
// returns after the supervisor exits, in-flight requests finish and
// listeners are shut down.
func (a *App) Run(ctx context.Context) error {
	supervised := make(chan struct{})
	go func() {
		defer close(supervised)
		a.supervisor.Run(ctx)
	}()
	a.dispatcher.Run(ctx, a.supervisor.Events())

	// The first-connect hook runs on the supervisor goroutine and may still
	// register listeners or background jobs until it returns.
	<-supervised

	a.shutdownServers()
	a.bg.Wait()
	a.Close()
	a.log.Info().Msg("strike-connect stopped")
	return nil
}

// onFirstConnect starts the services that depend on a live relay link.
// It runs once, inside the supervisor loop, so it must not block.
func (a *App) onFirstConnect(ctx context.Context) {
	if a.cfg.Wallet.BalanceEnabled || a.cfg.Wallet.TransactionHistoryEnabled {
		a.bg.Add(1)
		go func() {
			defer a.bg.Done()
			a.aggregator.Run(ctx)
		}()
	}

	defer close(a.dashReady)
	if !a.cfg.Dashboard.Enabled {
		return
	}
	for _, host := range a.cfg.Dashboard.HostList() {
		if err := a.serveDashboard(host); err != nil {
			a.log.Error().Err(err).Str("host", host).Msg("failed to start dashboard listener")
		}
	}
}

func (a *App) serveDashboard(host string) error {
	addr := net.JoinHostPort(host, strconv.Itoa(a.cfg.Dashboard.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	a.mu.Lock()
	a.servers = append(a.servers, srv)
	a.addrs = append(a.addrs, ln.Addr().String())
	a.mu.Unlock()

	a.bg.Add(1)
	go func() {
		defer a.bg.Done()
		a.log.Info().Str("addr", ln.Addr().String()).Msg("dashboard listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error().Err(err).Str("addr", ln.Addr().String()).Msg("dashboard server failed")
		}
	}()
	return nil
}

func (a *App) shutdownServers() {
	a.mu.Lock()
	servers := a.servers
	a.servers = nil
	a.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(ctx); err != nil {
			a.log.Error().Err(err).Msg("dashboard forced to shutdown")
		}
	}
}

// DashboardAddrs returns the bound dashboard addresses. It blocks until the
// first relay connection has started the dashboard or ctx is done.
func (a *App) DashboardAddrs(ctx context.Context) []string {
	select {
	case <-a.dashReady:
	case <-ctx.Done():
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.addrs...)
}

// Status exposes the dashboard status view.
func (a *App) Status(ctx context.Context) domain.Status {
	return a.status.Status(ctx)
}

// Close releases storage connections. Safe to call more than once.
func (a *App) Close() {
	a.mu.Lock()
	closers := a.closers
	a.closers = nil
	a.mu.Unlock()
	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
}
