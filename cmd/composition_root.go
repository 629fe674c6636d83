package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	starmaphttp "starmap/internal/adapters/in/http"
	"starmap/internal/adapters/out/amqp"
	"starmap/internal/adapters/out/mail"
	"starmap/internal/adapters/out/mapbox"
	"starmap/internal/adapters/out/memstore"
	"starmap/internal/adapters/out/notify"
	"starmap/internal/adapters/out/pdf"
	"starmap/internal/adapters/out/postgres"
	"starmap/internal/adapters/out/postgres/objectstore"
	"starmap/internal/adapters/out/starmap"
	"starmap/internal/core/application/idempotency"
	"starmap/internal/core/application/usecases/commands"
	"starmap/internal/core/application/usecases/queries"
	"starmap/internal/core/domain/services"
	"starmap/internal/core/ports"
	"starmap/internal/jobs"
)

// CompositionRoot wires adapters into use cases. It owns the connections it
// opens; call Close when done.
type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	store       ports.ArtifactStore
	coordinator *idempotency.Coordinator
	extractor   *services.OrderExtractor
	httpClient  *http.Client

	closers []func()
}

// NewCompositionRoot connects the artifact store. Outbound notifiers are
// connected lazily by CreateNotifier.
func NewCompositionRoot(cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	root := &CompositionRoot{
		cfg:        cfg,
		logger:     logger,
		httpClient: &http.Client{Timeout: cfg.HTTPClientTimeout},
	}

	store, err := root.openStore()
	if err != nil {
		return nil, err
	}
	root.store = store
	root.coordinator = idempotency.NewCoordinator(store, cfg.LockTTL, logger)

	extractor, err := services.NewOrderExtractor(logger)
	if err != nil {
		return nil, fmt.Errorf("load order schema: %w", err)
	}
	root.extractor = extractor

	return root, nil
}

func (c *CompositionRoot) openStore() (ports.ArtifactStore, error) {
	if c.cfg.StoreDriver == StoreDriverMemory {
		c.logger.Warn("using in-memory artifact store, documents are lost on restart")
		return memstore.NewStore(c.cfg.ArtifactPublicURL), nil
	}

	db, err := postgres.Open(c.cfg.Database(), c.logger)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return objectstore.NewGormObjectStore(db, c.cfg.ArtifactPublicURL), nil
}

// Close releases connections in reverse order of opening.
func (c *CompositionRoot) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func (c *CompositionRoot) Store() ports.ArtifactStore {
	return c.store
}

func (c *CompositionRoot) Coordinator() *idempotency.Coordinator {
	return c.coordinator
}

func (c *CompositionRoot) CreateAuthenticator() services.WebhookAuthenticator {
	return services.NewWebhookAuthenticator(c.cfg.ShopifyWebhookSecret, c.logger)
}

func (c *CompositionRoot) CreateGeocoder() ports.Geocoder {
	return mapbox.NewGeocoder(c.httpClient, c.cfg.MapboxBaseURL, c.cfg.MapboxAccessToken, c.logger)
}

// CreateChartRenderer runs the local script when STARMAP_SCRIPT_DIR is set
// and calls the hosted renderer otherwise.
func (c *CompositionRoot) CreateChartRenderer() ports.ChartRenderer {
	if c.cfg.StarmapScriptDir != "" {
		return starmap.NewScriptRenderer(c.cfg.StarmapScriptDir, c.cfg.PythonPath, starmap.ExecRunner)
	}
	return starmap.NewHTTPRenderer(c.httpClient, c.cfg.PyStarmapURL)
}

func (c *CompositionRoot) CreateDocumentRenderer() ports.DocumentRenderer {
	return pdf.NewRenderer(pdf.NewChromeSessionFactory(c.cfg.ChromePath), c.logger)
}

// CreateNotifier always logs and additionally mails and publishes when those
// transports are configured. A broker that cannot be reached is logged and
// skipped.
func (c *CompositionRoot) CreateNotifier() ports.Notifier {
	notifiers := notify.Multi{notify.NewLogNotifier(c.logger)}

	if c.cfg.MailEnabled() {
		mailer, err := c.createMailNotifier()
		if err != nil {
			c.logger.Error("mail notifications disabled", "error", err)
		} else {
			notifiers = append(notifiers, mailer)
		}
	}

	if c.cfg.AMQPURL != "" {
		publisher, conn, err := amqp.Dial(c.cfg.AMQPURL, c.cfg.AMQPExchange, c.logger)
		if err != nil {
			c.logger.Error("event publishing disabled", "error", err)
		} else {
			c.closers = append(c.closers, conn.Close)
			notifiers = append(notifiers, publisher)
		}
	}

	return notifiers
}

func (c *CompositionRoot) createMailNotifier() (*mail.Notifier, error) {
	client, err := mail.NewClient(mail.ServerSettings{
		Host:     c.cfg.SMTPHost,
		Port:     c.cfg.SMTPPort,
		Username: c.cfg.SMTPUsername,
		Password: c.cfg.SMTPPassword,
	})
	if err != nil {
		return nil, err
	}
	return mail.NewNotifier(client, c.cfg.NotifyEmailFrom, c.cfg.NotifyEmailTo, c.logger)
}

func (c *CompositionRoot) CreateProcessOrderCommandHandler() commands.ProcessOrderCommandHandler {
	return commands.NewProcessOrderCommandHandler(commands.ProcessOrderDependencies{
		Authenticator: c.CreateAuthenticator(),
		Parser:        c.extractor,
		Claimer:       c.coordinator,
		Geocoder:      c.CreateGeocoder(),
		Charts:        c.CreateChartRenderer(),
		Documents:     c.CreateDocumentRenderer(),
		Store:         c.store,
		Notifier:      c.CreateNotifier(),
		Logger:        c.logger,
	})
}

func (c *CompositionRoot) CreateReleaseLockCommandHandler() commands.ReleaseLockCommandHandler {
	return commands.NewReleaseLockCommandHandler(c.coordinator)
}

func (c *CompositionRoot) CreateSweepExpiredLocksCommandHandler() commands.SweepExpiredLocksCommandHandler {
	return commands.NewSweepExpiredLocksCommandHandler(c.coordinator, c.logger)
}

func (c *CompositionRoot) CreateGetOrderArtifactsQueryHandler() queries.GetOrderArtifactsQueryHandler {
	return queries.NewGetOrderArtifactsQueryHandler(c.store, c.coordinator.LockTTL())
}

func (c *CompositionRoot) CreateGetArtifactQueryHandler() queries.GetArtifactQueryHandler {
	return queries.NewGetArtifactQueryHandler(c.store)
}

// CreateHTTPServer builds the echo server with every route.
func (c *CompositionRoot) CreateHTTPServer() *starmaphttp.Server {
	processOrder := c.CreateProcessOrderCommandHandler()
	releaseLock := c.CreateReleaseLockCommandHandler()
	return starmaphttp.NewServer(starmaphttp.Handlers{
		ProcessOrder:   &processOrder,
		ReleaseLock:    &releaseLock,
		OrderArtifacts: c.CreateGetOrderArtifactsQueryHandler(),
		Artifact:       c.CreateGetArtifactQueryHandler(),
		Geocode:        queries.NewGeocodeLocationQueryHandler(c.CreateGeocoder()),
		RenderChart:    queries.NewRenderChartQueryHandler(c.CreateChartRenderer()),
		PreviewPoster:  queries.NewPreviewPosterQueryHandler(c.CreateDocumentRenderer()),
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	sweep := c.CreateSweepExpiredLocksCommandHandler()
	return jobs.NewJobManager(&sweep, c.cfg.LockSweepSchedule, c.logger)
}

// ErrStoreIsNotPersistent is returned by operator commands that make no
// sense against the in-memory store of another process.
var ErrStoreIsNotPersistent = errors.New("artifact store is in-memory; operator commands need STORE_DRIVER=postgres")
