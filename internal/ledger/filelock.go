package ledger

import (
	"errors"
	"os"
	"path/filepath"
	"time"
)

var errLockTimeout = errors.New("ledger lock timeout")

// fileLock is an advisory cross-process lock held as an exclusively created
// file. Locks older than staleAfter are considered abandoned.
type fileLock struct {
	path       string
	timeout    time.Duration
	staleAfter time.Duration
	retry      time.Duration
}

func newFileLock(path string) *fileLock {
	return &fileLock{
		path:       path,
		timeout:    2 * time.Second,
		staleAfter: 30 * time.Second,
		retry:      10 * time.Millisecond,
	}
}

func (l *fileLock) acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return err
	}
	deadline := time.Now().Add(l.timeout)
	for {
		f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			return f.Close()
		}
		if !os.IsExist(err) {
			return err
		}
		if info, statErr := os.Stat(l.path); statErr == nil && time.Since(info.ModTime()) > l.staleAfter {
			_ = os.Remove(l.path)
			continue
		}
		if time.Now().After(deadline) {
			return errLockTimeout
		}
		time.Sleep(l.retry)
	}
}

func (l *fileLock) release() {
	_ = os.Remove(l.path)
}
