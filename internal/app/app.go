package app

import (
	"fmt"
	"log/slog"
	"os"

	"frame-go/internal/config"
	"frame-go/internal/frame"
	"frame-go/internal/fs"
)

// FrameApp is the application layer between the CLI and the Scanner.
// It constructs all dependencies from config, exposes the operations the
// host application invokes, and closes the log file on Close.
type FrameApp struct {
	cfg     *config.Config
	scanner *frame.Scanner
	op      *Operation
	logger  *slog.Logger
	clock   frame.Clock
	logFile *os.File
}

// NewFrameApp creates a fully wired FrameApp from the given config.
// operation identifies the CLI command being run (e.g. "GetFileList", "Playlist").
// The caller must call Close when done.
func NewFrameApp(cfg *config.Config, operation string) (*FrameApp, error) {
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	clock := frame.RealClock{}
	op := NewOperation(operation, frame.UUIDGenerator{}, clock)

	logger, logFile, err := newLogger(cfg.LogDir, op.ID, level)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	scanner := frame.NewScanner(fs.NewOSFilesystemManager(), logger.With("component", "scanner"), clock, frame.RealRandom{})

	a := newFrameApp(cfg, scanner, op, logger, clock)
	a.logFile = logFile
	return a, nil
}

func newFrameApp(cfg *config.Config, scanner *frame.Scanner, op *Operation, logger *slog.Logger, clock frame.Clock) *FrameApp {
	logger.Debug("operation started", "operation", op.Name)
	return &FrameApp{
		cfg:     cfg,
		scanner: scanner,
		op:      op,
		logger:  logger,
		clock:   clock,
	}
}

// Config returns the config the app was built from.
func (a *FrameApp) Config() *config.Config {
	return a.cfg
}

// GetFileList returns the full paths of files under folderPath whose names
// match filter case-insensitively. recursive descends into subdirectories;
// timeFilter makes older files progressively less likely to be listed.
// The error, if any, is a human-readable message for the host.
func (a *FrameApp) GetFileList(folderPath, filter string, recursive, timeFilter bool) ([]string, error) {
	files, err := a.scanner.Scan(frame.ScanRequest{
		Root:      folderPath,
		Pattern:   filter,
		Recursive: recursive,
		AgeBias:   timeFilter,
	})
	if err != nil {
		a.op.Fail()
		a.logger.Error("file list failed", "folder", folderPath, "error", err)
		return nil, err
	}
	return files, nil
}

// ListFolders returns folderPath followed by its subfolders when recursive is set.
func (a *FrameApp) ListFolders(folderPath string, recursive bool) []string {
	return a.scanner.ListFolders(folderPath, recursive)
}

// Playlist lists the configured image folder with the configured filter and
// returns the files in random order.
func (a *FrameApp) Playlist() ([]string, error) {
	files, err := a.GetFileList(a.cfg.ImageFolder, a.cfg.Filter, a.cfg.IncludeSubdirectories, a.cfg.TimeFilter)
	if err != nil {
		return nil, err
	}
	a.scanner.Shuffle(files)
	return files, nil
}

// Close logs the end of the operation and closes the log file.
func (a *FrameApp) Close() error {
	a.logger.Debug("operation finished",
		"operation", a.op.Name,
		"status", a.op.Status,
		"duration", a.clock.Now().Sub(a.op.StartedAt),
	)

	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil {
			return fmt.Errorf("closing log file: %w", err)
		}
	}
	return nil
}
