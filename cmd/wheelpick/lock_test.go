//go:build !windows

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAcquireLock_CreatesFile(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "wheelpick.lock")

	fd, err := acquireLock(lockPath)
	if err != nil {
		t.Fatalf("acquireLock failed: %v", err)
	}
	defer releaseLock(fd)

	if _, err := os.Stat(lockPath); os.IsNotExist(err) {
		t.Fatal("lock file was not created")
	}
}

func TestAcquireLock_Exclusive(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "wheelpick.lock")

	fd1, err := acquireLock(lockPath)
	if err != nil {
		t.Fatalf("first acquireLock failed: %v", err)
	}

	fd2, err := acquireLock(lockPath)
	if err == nil {
		releaseLock(fd2)
		releaseLock(fd1)
		t.Fatal("second acquireLock succeeded while the first was held")
	}

	releaseLock(fd1)

	fd3, err := acquireLock(lockPath)
	if err != nil {
		t.Fatalf("acquireLock after release failed: %v", err)
	}
	releaseLock(fd3)
}

func TestAcquireLock_MissingDir(t *testing.T) {
	_, err := acquireLock(filepath.Join(t.TempDir(), "nope", "wheelpick.lock"))
	if err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}

func TestReleaseLock_InvalidFd(t *testing.T) {
	releaseLock(-1)
}

func TestCheckTERM(t *testing.T) {
	t.Setenv("TERM", "dumb")
	if err := checkTERM(); err == nil {
		t.Error("TERM=dumb should be rejected")
	}
	t.Setenv("TERM", "xterm-256color")
	if err := checkTERM(); err != nil {
		t.Errorf("xterm-256color rejected: %v", err)
	}
}
