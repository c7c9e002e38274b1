package core

import (
	"context"
	"log/slog"
	"time"

	"github.com/JonMunkholm/teistermask/internal/config"
	"github.com/JonMunkholm/teistermask/internal/logging"
	"github.com/google/uuid"
)

// DefaultImportTimeout bounds a single import call when no config is given.
const DefaultImportTimeout = 10 * time.Minute

// Service binds a Store to the import and report operations.
type Service struct {
	store         Store
	limiter       *ImportLimiter
	importTimeout time.Duration
	busiestLimit  int
}

// ImportKind names the entity type of an import batch.
type ImportKind string

const (
	KindProjects  ImportKind = "projects"
	KindEmployees ImportKind = "employees"
)

// ImportResult contains the final result of an import call.
type ImportResult struct {
	BatchID  string        `json:"batchId"`
	Kind     ImportKind    `json:"kind"`
	Log      string        `json:"log"`
	Accepted int           `json:"accepted"`
	Rejected int           `json:"rejected"`
	Duration time.Duration `json:"duration"`
}

// NewService creates a Service. cfg may be nil, in which case defaults apply.
func NewService(store Store, cfg *config.Config) *Service {
	s := &Service{
		store:         store,
		limiter:       NewImportLimiter(DefaultMaxConcurrentImports, DefaultImportQueueWait),
		importTimeout: DefaultImportTimeout,
		busiestLimit:  DefaultBusiestLimit,
	}
	if cfg != nil {
		s.limiter = NewImportLimiter(cfg.Import.MaxConcurrent, cfg.Import.QueueWait)
		if cfg.Import.Timeout > 0 {
			s.importTimeout = cfg.Import.Timeout
		}
		if cfg.Report.BusiestLimit > 0 {
			s.busiestLimit = cfg.Report.BusiestLimit
		}
	}
	return s
}

// ImportProjects imports an XML project batch.
func (s *Service) ImportProjects(ctx context.Context, batch []byte) (*ImportResult, error) {
	return s.runImport(ctx, KindProjects, batch, func(ctx context.Context, id uuid.UUID, logger *slog.Logger) (*ImportLog, error) {
		return importProjects(ctx, s.store, id, batch, logger)
	})
}

// ImportEmployees imports a JSON employee batch.
func (s *Service) ImportEmployees(ctx context.Context, batch []byte) (*ImportResult, error) {
	return s.runImport(ctx, KindEmployees, batch, func(ctx context.Context, id uuid.UUID, logger *slog.Logger) (*ImportLog, error) {
		return importEmployees(ctx, s.store, id, batch, logger)
	})
}

type importFunc func(ctx context.Context, batchID uuid.UUID, logger *slog.Logger) (*ImportLog, error)

func (s *Service) runImport(ctx context.Context, kind ImportKind, batch []byte, run importFunc) (*ImportResult, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		logging.FromContext(ctx).Warn("import not started", "kind", string(kind), "error", err)
		return nil, err
	}
	defer s.limiter.Release()

	startTime := time.Now()
	batchID := uuid.New()

	ctx, cancel := context.WithTimeout(ctx, s.importTimeout)
	defer cancel()

	logger := logging.WithFields(ctx,
		"batch_id", batchID.String(),
		"kind", string(kind),
	)
	if source := SourceFromContext(ctx); source != "" {
		logger = logger.With("source", source)
	}
	if ip := ClientIPFromContext(ctx); ip != "" {
		logger = logger.With("client_ip", ip)
	}

	logger.Info("import started", "bytes", len(batch))

	log, err := run(ctx, batchID, logger)
	if err != nil {
		logger.Error("import failed", "error", err, "code", MapError(err).Code)
		return nil, err
	}

	result := &ImportResult{
		BatchID:  batchID.String(),
		Kind:     kind,
		Log:      log.String(),
		Accepted: log.Accepted(),
		Rejected: log.Rejected(),
		Duration: time.Since(startTime),
	}

	logger.Info("import completed",
		"accepted", result.Accepted,
		"rejected", result.Rejected,
		"duration_ms", result.Duration.Milliseconds(),
	)

	return result, nil
}

// ExportProjects renders the projects-with-tasks report.
func (s *Service) ExportProjects(ctx context.Context, format Format) (string, error) {
	return ExportProjectsWithTasks(ctx, s.store, format)
}

// ExportBusiestEmployees renders the busiest-employees report.
// A limit <= 0 uses the configured default.
func (s *Service) ExportBusiestEmployees(ctx context.Context, date time.Time, limit int, format Format) (string, error) {
	if limit <= 0 {
		limit = s.busiestLimit
	}
	return ExportBusiestEmployees(ctx, s.store, date, limit, format)
}

// ActiveImports returns the number of imports currently running.
func (s *Service) ActiveImports() int {
	return s.limiter.Active()
}

// WaitForImports blocks until running imports finish or ctx is done.
func (s *Service) WaitForImports(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

// BusiestLimit returns the default number of employees in the busiest report.
func (s *Service) BusiestLimit() int {
	return s.busiestLimit
}
