package social

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// ImageStore persists fetched avatar files.
type ImageStore interface {
	// Fetch downloads url into name and returns the stored relative path.
	Fetch(url, name string) (string, error)
	// Delete removes a previously stored file. Missing files are not an error.
	Delete(path string) error
	// Exists reports whether a file is already stored under name.
	Exists(name string) bool
}

// LocalImageStore keeps avatars on the local filesystem under baseDir.
type LocalImageStore struct {
	baseDir string
	client  *http.Client
}

func NewLocalImageStore(baseDir string) *LocalImageStore {
	return &LocalImageStore{
		baseDir: baseDir,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (s *LocalImageStore) Fetch(url, name string) (string, error) {
	resp, err := s.client.Get(url)
	if err != nil {
		return "", fmt.Errorf("fetch profile image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch profile image: status %d", resp.StatusCode)
	}

	if err := os.MkdirAll(s.baseDir, os.ModePerm); err != nil {
		return "", err
	}

	dst := filepath.Join(s.baseDir, name)
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", err
	}

	return filepath.ToSlash(filepath.Join("images/userprofile", name)), nil
}

func (s *LocalImageStore) Delete(path string) error {
	if path == "" {
		return nil
	}
	full := filepath.Join(s.baseDir, filepath.Base(path))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *LocalImageStore) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(s.baseDir, name))
	return err == nil
}
