package appwrite

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"

	"github.com/BloggingApp/blog-client/internal/baas"
)

type storage struct {
	conn *conn
}

func filesPath(bucketID string) string {
	return fmt.Sprintf("/storage/buckets/%s/files", url.PathEscape(bucketID))
}

func (s *storage) CreateFile(ctx context.Context, bucketID, fileID string, file baas.InputFile) (*baas.File, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("fileId", fileID); err != nil {
		return nil, fmt.Errorf("failed to write fileId field: %w", err)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Name))
	mimeType := file.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	header.Set("Content-Type", mimeType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(part, file.Reader); err != nil {
		return nil, fmt.Errorf("failed to copy file content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	var created baas.File
	if err := s.conn.do(ctx, http.MethodPost, filesPath(bucketID), &body, writer.FormDataContentType(), &created); err != nil {
		return nil, err
	}

	return &created, nil
}

func (s *storage) DeleteFile(ctx context.Context, bucketID, fileID string) error {
	return s.conn.doJSON(ctx, http.MethodDelete, filesPath(bucketID)+"/"+url.PathEscape(fileID), nil, nil)
}

func (s *storage) GetFilePreview(bucketID, fileID string) string {
	return fmt.Sprintf("%s%s/%s/preview?project=%s", s.conn.endpoint, filesPath(bucketID), url.PathEscape(fileID), url.QueryEscape(s.conn.projectID))
}
