package lock

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// FileLock keeps two server processes from writing the same database file.
type FileLock struct {
	dir    string
	logger *slog.Logger
}

// NewFileLock creates a lock that keeps its files in dir. An empty dir means
// a "movies-locks" directory under os.TempDir.
func NewFileLock(dir string, logger *slog.Logger) *FileLock {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "movies-locks")
	}
	return &FileLock{
		dir:    dir,
		logger: logger,
	}
}

// KeyFor derives a lock key from a database path, so that two spellings of
// the same file share a key.
func KeyFor(dbPath string) string {
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		abs = dbPath
	}
	sum := sha256.Sum256([]byte(abs))
	base := strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs))
	return base + "-" + hex.EncodeToString(sum[:6])
}

// TryLock attempts to acquire a lock with the given key and timeout. It
// reports false without an error when the timeout passes first.
func (fl *FileLock) TryLock(ctx context.Context, key string, timeout time.Duration) (bool, error) {
	lockFile := fl.getLockFilePath(key)

	if err := os.MkdirAll(filepath.Dir(lockFile), 0750); err != nil {
		return false, fmt.Errorf("failed to create lock directory: %w", err)
	}

	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		// #nosec G304 - lockFile is generated through controlled logic in getLockFilePath
		file, err := os.OpenFile(lockFile, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err != nil {
			if !os.IsExist(err) {
				return false, fmt.Errorf("failed to create lock file: %w", err)
			}

			if fl.isLockStale(lockFile) {
				fl.logger.Warn("Removing stale lock file", slog.String("file", lockFile))
				if err := os.Remove(lockFile); err != nil && !os.IsNotExist(err) {
					fl.logger.Error("Failed to remove stale lock file", slog.String("file", lockFile), slog.Any("error", err))
				}
				continue
			}

			select {
			case <-ctx.Done():
				return false, ctx.Err()
			case <-time.After(100 * time.Millisecond):
				continue
			}
		}

		if _, err := fmt.Fprintf(file, "%d\n", os.Getpid()); err != nil {
			_ = file.Close()
			_ = os.Remove(lockFile)
			return false, fmt.Errorf("failed to write to lock file: %w", err)
		}
		if err := file.Close(); err != nil {
			return false, fmt.Errorf("failed to close lock file: %w", err)
		}

		fl.logger.Debug("Acquired lock", slog.String("key", key), slog.String("file", lockFile))
		return true, nil
	}

	return false, nil
}

// Unlock releases the lock for the given key
func (fl *FileLock) Unlock(ctx context.Context, key string) error {
	lockFile := fl.getLockFilePath(key)

	if err := os.Remove(lockFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}

	fl.logger.Debug("Released lock", slog.String("key", key), slog.String("file", lockFile))
	return nil
}

func (fl *FileLock) getLockFilePath(key string) string {
	return filepath.Clean(filepath.Join(fl.dir, filepath.Base(key)+".lock"))
}

// isLockStale reports whether the process that wrote lockFile is gone. The
// server holds its lock for its whole lifetime, so age alone says nothing.
func (fl *FileLock) isLockStale(lockFile string) bool {
	// #nosec G304 - lockFile is generated through controlled logic in getLockFilePath
	data, err := os.ReadFile(lockFile)
	if err != nil {
		return os.IsNotExist(err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		// A half-written file from a crashed process.
		info, statErr := os.Stat(lockFile)
		return statErr == nil && time.Since(info.ModTime()) > time.Minute
	}

	return !processAlive(pid)
}
