package spreadsheet

import (
	"context"
	"errors"
	"time"

	"github.com/abuabdirohman4/better-habit/internal/apperror"
	"github.com/abuabdirohman4/better-habit/internal/domain/entity"
	"github.com/abuabdirohman4/better-habit/internal/domain/repository"

	"go.uber.org/zap"
)

// Default sheet names
const (
	DefaultHabitsSheet = "Habits"
	DefaultLogsSheet   = "HabitLogs"
)

// Options configures both repositories
type Options struct {
	SpreadsheetID string
	HabitsSheet   string
	LogsSheet     string

	// PlaceholdersWhenUnconfigured serves the built-in demo habits when no backend is configured
	PlaceholdersWhenUnconfigured bool

	// ReadRetries bounds attempts for reads failing with ErrBackendUnavailable
	ReadRetries  int
	RetryBackoff time.Duration

	Now    func() time.Time
	IDs    *entity.IDGenerator
	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.HabitsSheet == "" {
		o.HabitsSheet = DefaultHabitsSheet
	}
	if o.LogsSheet == "" {
		o.LogsSheet = DefaultLogsSheet
	}
	if o.ReadRetries <= 0 {
		o.ReadRetries = 3
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.IDs == nil {
		o.IDs = entity.NewIDGenerator(o.Now)
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// readTable reads a sheet, retrying transient backend failures. Other errors return immediately.
func readTable(ctx context.Context, gw repository.SheetGateway, opts Options, sheetName string) ([]repository.Row, error) {
	var lastErr error
	for attempt := 1; attempt <= opts.ReadRetries; attempt++ {
		rows, err := gw.ReadTable(ctx, opts.SpreadsheetID, sheetName)
		if err == nil {
			return rows, nil
		}
		if !errors.Is(err, apperror.ErrBackendUnavailable) {
			return nil, err
		}
		lastErr = err

		opts.Logger.Warn("sheet read failed",
			zap.String("sheet", sheetName),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if attempt == opts.ReadRetries {
			break
		}

		select {
		case <-ctx.Done():
			return nil, apperror.Wrap(apperror.ErrBackendUnavailable, "Storage backend is unavailable", ctx.Err())
		case <-time.After(opts.RetryBackoff * time.Duration(attempt)):
		}
	}
	return nil, lastErr
}

// unconfiguredGateway fails every call, used when no spreadsheet credentials exist
type unconfiguredGateway struct{}

// NewUnconfiguredGateway returns a gateway that reports ErrBackendNotConfigured
func NewUnconfiguredGateway() repository.SheetGateway {
	return unconfiguredGateway{}
}

func (unconfiguredGateway) ReadTable(context.Context, string, string) ([]repository.Row, error) {
	return nil, apperror.ErrBackendNotConfigured
}

func (unconfiguredGateway) AppendRows(context.Context, string, string, [][]string) error {
	return apperror.ErrBackendNotConfigured
}

func (unconfiguredGateway) OverwriteRange(context.Context, string, string, [][]string) error {
	return apperror.ErrBackendNotConfigured
}
