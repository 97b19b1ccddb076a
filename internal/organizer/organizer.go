package organizer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"autokit/internal/classify"
	"autokit/internal/fileutil"
	"autokit/internal/logging"
	"autokit/internal/services"
)

const toolName = "organizer"

// Organizer moves top-level files into category folders.
type Organizer struct {
	classifier *classify.Classifier
	logger     *slog.Logger
	lockDir    string
	move       func(src, dst string) error
}

// Option customizes an Organizer.
type Option func(*Organizer)

// WithLockDir enables the per-directory lock, storing lock files in dir.
func WithLockDir(dir string) Option {
	return func(o *Organizer) { o.lockDir = strings.TrimSpace(dir) }
}

// WithMoveFunc replaces the file move primitive (used in tests).
func WithMoveFunc(move func(src, dst string) error) Option {
	return func(o *Organizer) {
		if move != nil {
			o.move = move
		}
	}
}

// New constructs an organizer around classifier.
func New(classifier *classify.Classifier, logger *slog.Logger, opts ...Option) *Organizer {
	if classifier == nil {
		classifier = classify.New(classify.DefaultExtensionMap())
	}
	o := &Organizer{
		classifier: classifier,
		logger:     logging.NewComponentLogger(logger, "organizer"),
		move:       fileutil.MoveFile,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Organize sorts the immediate files of dir into category folders. The only
// precondition is that dir exists; per-file failures are recorded in the
// report and do not stop the pass.
func (o *Organizer) Organize(ctx context.Context, dir string) (Report, error) {
	return o.run(ctx, dir, false)
}

// Plan reports where each file would go without creating folders or moving anything.
func (o *Organizer) Plan(ctx context.Context, dir string) (Report, error) {
	return o.run(ctx, dir, true)
}

func (o *Organizer) run(ctx context.Context, dir string, dryRun bool) (Report, error) {
	logger := logging.WithContext(ctx, o.logger)
	report := Report{Dir: dir, DryRun: dryRun}

	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return report, services.Wrap(services.ErrNotFound, toolName, "inspect source", fmt.Sprintf("directory not found: %s", dir), err)
		}
		return report, services.Wrap(services.ErrValidation, toolName, "inspect source", dir, err)
	}

	if !dryRun {
		release, err := acquireLock(o.lockDir, dir)
		defer release()
		if err != nil {
			return report, err
		}
	}

	created, err := o.ensureFolders(dir, dryRun)
	report.CreatedDirs = created
	if err != nil {
		return report, err
	}

	entries, err := readEntries(dir)
	if err != nil {
		return report, services.Wrap(services.ErrValidation, toolName, "list entries", dir, err)
	}

	logger.Info("organizing directory",
		logging.String("dir", dir),
		logging.Int("entries", len(entries)),
		logging.Bool("dry_run", dryRun),
	)

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if !isCandidate(dir, entry) {
			continue
		}
		report.Entries = append(report.Entries, o.handle(logger, dir, entry.Name(), dryRun))
	}

	logger.Info("organization complete",
		logging.Int("moved", report.Moved()),
		logging.Int("skipped", report.Skipped()),
		logging.Int("failed", report.Failed()),
		logging.Int("folders_created", len(report.CreatedDirs)),
	)
	return report, nil
}

func (o *Organizer) handle(logger *slog.Logger, dir, name string, dryRun bool) Entry {
	category := o.classifier.Classify(filepath.Ext(name))
	target := filepath.Join(dir, category, name)
	entry := Entry{Name: name, Category: category, Destination: target}

	if _, err := os.Lstat(target); err == nil {
		entry.Outcome = OutcomeSkipped
		logger.Warn("skipped, destination already exists",
			logging.String("file", name),
			logging.String("category", category),
		)
		return entry
	}

	if dryRun {
		entry.Outcome = OutcomePlanned
		logger.Debug("planned move", logging.String("file", name), logging.String("category", category))
		return entry
	}

	if err := o.move(filepath.Join(dir, name), target); err != nil {
		if errors.Is(err, fileutil.ErrDestinationExists) {
			entry.Outcome = OutcomeSkipped
			logger.Warn("skipped, destination appeared during move", logging.String("file", name))
			return entry
		}
		entry.Outcome = OutcomeFailed
		entry.Err = err
		logger.Error("move failed",
			logging.String("file", name),
			logging.String("category", category),
			logging.Error(err),
		)
		return entry
	}

	entry.Outcome = OutcomeMoved
	logger.Info("moved file", logging.String("file", name), logging.String("category", category))
	return entry
}

// ensureFolders creates every category folder that is missing and returns the
// ones it created (or would create, in dry-run mode).
func (o *Organizer) ensureFolders(dir string, dryRun bool) ([]string, error) {
	var created []string
	for _, folder := range o.classifier.Table().Folders() {
		path := filepath.Join(dir, folder)
		info, err := os.Stat(path)
		switch {
		case err == nil && info.IsDir():
			continue
		case err == nil:
			return created, services.Wrap(services.ErrConflict, toolName, "create folders",
				fmt.Sprintf("%s exists and is not a directory", path), nil)
		case !errors.Is(err, fs.ErrNotExist):
			return created, services.Wrap(services.ErrValidation, toolName, "create folders", path, err)
		}
		if !dryRun {
			if err := os.Mkdir(path, 0o755); err != nil && !errors.Is(err, fs.ErrExist) {
				return created, services.Wrap(services.ErrValidation, toolName, "create folders", path, err)
			}
		}
		created = append(created, folder)
	}
	return created, nil
}

// readEntries lists dir in the order the filesystem returns entries; unlike
// os.ReadDir it does not sort.
func readEntries(dir string) ([]fs.DirEntry, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.ReadDir(-1)
}

// isCandidate reports whether entry is a visible regular file. Symlinks count
// when they resolve to a regular file; the link itself is what gets moved.
func isCandidate(dir string, entry fs.DirEntry) bool {
	if strings.HasPrefix(entry.Name(), ".") {
		return false
	}
	mode := entry.Type()
	if mode.IsRegular() {
		return true
	}
	if mode&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.Mode().IsRegular()
}
