package storage

import (
	"fmt"
	"io"
	"os"
)

const (
	// BackupSuffix is the file extension for backup files
	BackupSuffix = ".bak"
	// MaxBackupCount is the maximum number of backup files to keep
	MaxBackupCount = 3
)

// BackupPath returns the path of backup n of the journal at path.
// Lower numbers are more recent; journal.jsonl.bak.1 is the newest.
func BackupPath(path string, n int) string {
	return fmt.Sprintf("%s%s.%d", path, BackupSuffix, n)
}

// rotateBackups shifts .bak.N to .bak.N+1, dropping the oldest.
// Missing files are skipped.
func rotateBackups(path string) error {
	if err := os.Remove(BackupPath(path, MaxBackupCount)); err != nil && !os.IsNotExist(err) {
		return err
	}

	for i := MaxBackupCount - 1; i >= 1; i-- {
		if err := os.Rename(BackupPath(path, i), BackupPath(path, i+1)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// CreateBackup copies the journal to .bak.1 after rotating older backups.
// A missing journal is not backed up and is not an error.
func CreateBackup(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := rotateBackups(path); err != nil {
		return err
	}
	return copyFile(path, BackupPath(path, 1))
}

// ListBackups returns the existing backup numbers of the journal at path,
// newest first.
func ListBackups(path string) []int {
	var backups []int
	for i := 1; i <= MaxBackupCount; i++ {
		if _, err := os.Stat(BackupPath(path, i)); err == nil {
			backups = append(backups, i)
		}
	}
	return backups
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
