package utils

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

// FileStorage lưu ảnh upload (thumbnail, avatar). ref là giá trị được ghi
// vào entity: tên file với local, public URL với Supabase.
type FileStorage interface {
	Save(ctx context.Context, folder, name string, fh *multipart.FileHeader) (string, error)
	Delete(ctx context.Context, folder, ref string) error
	URL(folder, ref string) string
}

// LocalStorage ghi file vào root/<folder>/<name>, phục vụ qua /uploads.
type LocalStorage struct {
	root    string
	baseURL string
}

func NewLocalStorage(root, baseURL string) *LocalStorage {
	return &LocalStorage{root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

// Root là thư mục gốc được phục vụ ở /uploads.
func (s *LocalStorage) Root() string {
	return s.root
}

func (s *LocalStorage) Save(_ context.Context, folder, name string, fh *multipart.FileHeader) (string, error) {
	dir := filepath.Join(s.root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, filepath.Base(name)))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return filepath.Base(name), nil
}

func (s *LocalStorage) Delete(_ context.Context, folder, ref string) error {
	if ref == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, folder, filepath.Base(ref)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *LocalStorage) URL(folder, ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return fmt.Sprintf("%s/uploads/%s/%s", s.baseURL, folder, ref)
}
