package device

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/lydakis/cuebridge/internal/paths"
	"golang.org/x/sys/unix"
)

const fingerprintPrefix = "cuebridge-"

var newFingerprint = func() string {
	return fingerprintPrefix + uuid.NewString()
}

// LoadOrCreateFingerprint returns the fingerprint stored at path, creating
// and persisting a new one when the file is missing or empty. Concurrent
// callers, including other processes, serialize on a lock file next to path
// and therefore agree on one fingerprint.
func LoadOrCreateFingerprint(path string) (string, error) {
	if path == "" {
		return "", errors.New("fingerprint file path is empty")
	}
	if err := paths.EnsureDir(filepath.Dir(path)); err != nil {
		return "", fmt.Errorf("creating fingerprint dir: %w", err)
	}

	release, err := lockFile(paths.LockPathFor(path))
	if err != nil {
		return "", err
	}
	defer release() //nolint:errcheck

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("reading fingerprint: %w", err)
	}
	if fp := strings.TrimSpace(string(data)); fp != "" {
		return fp, nil
	}

	fp := newFingerprint()
	if err := os.WriteFile(path, []byte(fp+"\n"), 0600); err != nil {
		return "", fmt.Errorf("writing fingerprint: %w", err)
	}
	return fp, nil
}

func lockFile(path string) (func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		f.Close()
		return nil, fmt.Errorf("locking %s: %w", path, err)
	}

	return func() error {
		unlockErr := unix.Flock(int(f.Fd()), unix.LOCK_UN)
		closeErr := f.Close()
		if unlockErr != nil {
			return unlockErr
		}
		return closeErr
	}, nil
}
