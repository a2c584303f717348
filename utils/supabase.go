package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strings"

	storage "github.com/supabase-community/storage-go"
)

// SupabaseStorage lưu file vào bucket Supabase, ref là public URL.
type SupabaseStorage struct {
	client  *storage.Client
	baseURL string
	bucket  string
}

func NewSupabaseStorage(supabaseURL, key, bucket string) *SupabaseStorage {
	base := strings.TrimRight(supabaseURL, "/")
	return &SupabaseStorage{
		client:  storage.NewClient(base+"/storage/v1", key, nil),
		baseURL: base,
		bucket:  bucket,
	}
}

// Save upload vào <bucket>/<folder>/<name>.
func (s *SupabaseStorage) Save(_ context.Context, folder, name string, fh *multipart.FileHeader) (string, error) {
	file, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return "", err
	}

	objectPath := fmt.Sprintf("%s/%s", folder, name)
	contentType := fh.Header.Get("Content-Type")
	_, err = s.client.UploadFile(s.bucket, objectPath, &buf, storage.FileOptions{ContentType: &contentType})
	if err != nil {
		return "", fmt.Errorf("upload to supabase: %w", err)
	}
	return s.publicURL(objectPath), nil
}

// Delete nhận public URL (hoặc đường dẫn object trong bucket) và xoá object.
func (s *SupabaseStorage) Delete(_ context.Context, folder, ref string) error {
	if ref == "" {
		return nil
	}
	object, err := s.objectPath(folder, ref)
	if err != nil {
		return err
	}
	if _, err := s.client.RemoveFile(s.bucket, []string{object}); err != nil {
		return fmt.Errorf("delete from supabase: %w", err)
	}
	return nil
}

func (s *SupabaseStorage) URL(folder, ref string) string {
	if ref == "" || strings.Contains(ref, "://") {
		return ref
	}
	return s.publicURL(folder + "/" + ref)
}

func (s *SupabaseStorage) publicURL(objectPath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, objectPath)
}

func (s *SupabaseStorage) objectPath(folder, ref string) (string, error) {
	idx := strings.Index(ref, "/storage/v1/object/")
	if idx == -1 {
		if strings.Contains(ref, "://") {
			return "", fmt.Errorf("cannot find object path in URL: %s", ref)
		}
		return folder + "/" + ref, nil
	}

	rest := strings.TrimPrefix(ref[idx+len("/storage/v1/object/"):], "public/")
	// rest => "<bucket>/<path/to/object...>"
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) < 2 || parts[0] != s.bucket {
		return "", fmt.Errorf("object not in bucket %q: %s", s.bucket, ref)
	}
	object := parts[1]
	if q := strings.Index(object, "?"); q != -1 {
		object = object[:q]
	}
	if u, err := url.PathUnescape(object); err == nil {
		object = u
	}
	return object, nil
}
