// Package sink writes formatted records to per-batch output files with
// idempotent header handling.
package sink

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"deedflow/internal/domain"
)

// FileSink appends pipe-delimited records to batch-scoped text files laid
// out as <root>/<batch>/<batch>_<suffix>.txt. After any successful Write
// the file's first line is exactly the given header and its last line is
// the given record. Callers must serialize writes to the same batch key;
// the sink itself does no locking.
type FileSink struct {
	root string
}

// NewFileSink creates a sink rooted at the given output directory.
func NewFileSink(root string) *FileSink {
	return &FileSink{root: root}
}

// Path returns the output file path for a batch and stage suffix.
func (s *FileSink) Path(batch, suffix string) string {
	return filepath.Join(s.root, batch, fmt.Sprintf("%s_%s.txt", batch, suffix))
}

// Write appends record to the batch file, creating it with the header when
// missing. If the file exists but its first line is not the expected header
// (empty file, stale schema) the file is rewritten fresh with the current
// header and this record (a destructive resync, not a merge).
func (s *FileSink) Write(batch, suffix, header, record string) error {
	path := s.Path(batch, suffix)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: creating batch directory: %v", domain.ErrSinkWrite, err)
	}

	ok, err := headerMatches(path, header)
	if err != nil {
		return err
	}

	if !ok {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			return fmt.Errorf("%w: creating %s: %v", domain.ErrSinkWrite, path, err)
		}
		defer f.Close()
		if _, err := fmt.Fprintf(f, "%s\n%s\n", header, record); err != nil {
			return fmt.Errorf("%w: writing %s: %v", domain.ErrSinkWrite, path, err)
		}
		if err := f.Sync(); err != nil {
			return fmt.Errorf("%w: syncing %s: %v", domain.ErrSinkWrite, path, err)
		}
		return nil
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", domain.ErrSinkWrite, path, err)
	}
	defer f.Close()
	if _, err := fmt.Fprintf(f, "%s\n", record); err != nil {
		return fmt.Errorf("%w: appending to %s: %v", domain.ErrSinkWrite, path, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("%w: syncing %s: %v", domain.ErrSinkWrite, path, err)
	}
	return nil
}

// headerMatches reports whether path exists with the expected header as its
// first line.
func headerMatches(path, header string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("%w: reading %s: %v", domain.ErrSinkWrite, path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	if !scanner.Scan() {
		return false, nil
	}
	return scanner.Text() == header, nil
}

// BatchFiles returns the output files that exist for a batch, in directory
// order. Returns domain.ErrBatchNotFound when the batch directory does not
// exist or holds no output files.
func (s *FileSink) BatchFiles(batch string) ([]string, error) {
	dir := filepath.Join(s.root, batch)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrBatchNotFound, batch)
		}
		return nil, fmt.Errorf("listing batch %s: %w", batch, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".txt" {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrBatchNotFound, batch)
	}
	return files, nil
}
