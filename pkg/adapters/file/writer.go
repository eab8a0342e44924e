package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/aretw0/planner/pkg/domain"
	"github.com/aretw0/planner/pkg/ports"
)

// AgentInstructionsFile is written once per directory and never modified afterwards.
const AgentInstructionsFile = "AGENT_INSTRUCTIONS.md"

// PlanFileName returns the plan document name for a slug.
func PlanFileName(slug string) string { return slug + ".plan.md" }

// SpecFileName returns the spec document name for a slug.
func SpecFileName(slug string) string { return slug + ".spec.md" }

// Writer implements ports.ArtifactSink on the local filesystem.
//
// Emission happens in two phases. Every document is first staged to a temp file in the
// target directory and fsynced, and every destination is checked. Only then are the temps
// moved into place. A failure while moving undoes the files already committed, so a run
// either replaces all artifacts or leaves the directory as it found it.
type Writer struct {
	Dir    string
	Logger *slog.Logger
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithWriterLogger sets the structured logger.
func WithWriterLogger(logger *slog.Logger) WriterOption {
	return func(w *Writer) {
		w.Logger = logger
	}
}

// NewWriter creates a Writer targeting dir. An empty dir means the current directory.
func NewWriter(dir string, opts ...WriterOption) *Writer {
	if dir == "" {
		dir = "."
	}
	w := &Writer{Dir: dir, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

type staged struct {
	tmp       string
	dest      string
	exclusive bool   // create-if-absent
	backup    string // hard link to the replaced file, used for rollback
}

var _ ports.ArtifactSink = (*Writer)(nil)

// Emit writes the plan and spec for slug, and the agent instructions if absent.
func (w *Writer) Emit(ctx context.Context, slug string, docs ports.Documents) (ports.EmitResult, error) {
	var result ports.EmitResult
	if !domain.ValidSlug(slug) {
		return result, &domain.RenderError{Field: "slug", Reason: fmt.Sprintf("%q is not a valid file slug", slug)}
	}
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return result, fmt.Errorf("failed to ensure output directory: %w", err)
	}

	var stages []*staged
	defer func() {
		for _, s := range stages {
			_ = os.Remove(s.tmp) // no-op once renamed
			if s.backup != "" {
				_ = os.Remove(s.backup)
			}
		}
	}()

	stage := func(name, content string, exclusive bool) error {
		tmp, err := writeTemp(w.Dir, name, content)
		if err != nil {
			return err
		}
		stages = append(stages, &staged{tmp: tmp, dest: filepath.Join(w.Dir, name), exclusive: exclusive})
		return nil
	}

	if err := stage(PlanFileName(slug), docs.Plan, false); err != nil {
		return result, err
	}
	if err := stage(SpecFileName(slug), docs.Spec, false); err != nil {
		return result, err
	}

	agentPath := filepath.Join(w.Dir, AgentInstructionsFile)
	if _, err := os.Stat(agentPath); err == nil {
		result.Skipped = append(result.Skipped, agentPath)
	} else if errors.Is(err, os.ErrNotExist) {
		if err := stage(AgentInstructionsFile, docs.AgentInstructions, true); err != nil {
			return result, err
		}
	} else {
		return result, fmt.Errorf("failed to stat %s: %w", agentPath, err)
	}

	if err := prepare(stages); err != nil {
		return result, err
	}

	// Last chance to abort before anything becomes visible.
	if err := ctx.Err(); err != nil {
		return result, err
	}

	var committed []*staged
	for _, s := range stages {
		linked, err := w.commit(s)
		if err != nil {
			rollback(committed)
			return ports.EmitResult{}, err
		}
		if !linked {
			result.Skipped = append(result.Skipped, s.dest)
			continue
		}
		committed = append(committed, s)
		result.Written = append(result.Written, s.dest)
	}

	w.Logger.Debug("artifacts emitted", "slug", slug, "written", len(result.Written), "skipped", len(result.Skipped))
	return result, nil
}

// prepare refuses destinations that are not regular files and links every file about to be
// replaced to a backup, so a failed commit can be undone.
func prepare(stages []*staged) error {
	for _, s := range stages {
		info, err := os.Lstat(s.dest)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", s.dest, err)
		}
		if !info.Mode().IsRegular() {
			return fmt.Errorf("cannot write %s: destination is not a regular file", s.dest)
		}
		if s.exclusive {
			continue
		}
		s.backup = s.tmp + ".bak"
		if err := os.Link(s.dest, s.backup); err != nil {
			s.backup = ""
			return fmt.Errorf("failed to back up %s: %w", s.dest, err)
		}
	}
	return nil
}

// commit moves one staged file into place. It reports false when an exclusive
// destination appeared meanwhile and was left untouched.
func (w *Writer) commit(s *staged) (bool, error) {
	if s.exclusive {
		// Link fails if dest appeared meanwhile, so an existing file is never replaced.
		if err := os.Link(s.tmp, s.dest); err != nil {
			if errors.Is(err, os.ErrExist) {
				return false, nil
			}
			return false, fmt.Errorf("failed to create %s: %w", s.dest, err)
		}
		return true, nil
	}

	if s.backup != "" {
		w.Logger.Info("replacing existing artifact", "path", s.dest)
		// On Windows, os.Rename fails if dest exists.
		if runtime.GOOS == "windows" {
			if err := os.Remove(s.dest); err != nil {
				return false, fmt.Errorf("failed to remove existing artifact for overwrite: %w", err)
			}
		}
	}
	if err := os.Rename(s.tmp, s.dest); err != nil {
		return false, fmt.Errorf("failed to move artifact into place: %w", err)
	}
	return true, nil
}

// rollback restores the previous content of every committed destination, newest first.
func rollback(committed []*staged) {
	for i := len(committed) - 1; i >= 0; i-- {
		s := committed[i]
		if s.backup == "" {
			_ = os.Remove(s.dest)
			continue
		}
		if runtime.GOOS == "windows" {
			_ = os.Remove(s.dest)
		}
		if err := os.Rename(s.backup, s.dest); err == nil {
			s.backup = ""
		}
	}
}

// writeTemp writes content to a temp file next to its destination and fsyncs it.
// The same directory is required for an atomic rename.
func writeTemp(dir, name, content string) (string, error) {
	tmpFile, err := os.CreateTemp(dir, ".tmp-"+name+"-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	fail := func(err error) (string, error) {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
		return "", err
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		return fail(fmt.Errorf("failed to write to temp file: %w", err))
	}
	if err := tmpFile.Sync(); err != nil {
		return fail(fmt.Errorf("failed to fsync temp file: %w", err))
	}
	// Cannot rename an open file on Windows.
	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to set permissions: %w", err)
	}
	return tmpPath, nil
}
