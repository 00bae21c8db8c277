package applicantinfra

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/avast/retry-go/v4"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/talentops/funnel/internal/pdf"
	"github.com/talentops/funnel/pkg/logx"
)

const (
	mimeGoogleDoc = "application/vnd.google-apps.document"
	mimePDF       = "application/pdf"

	driveRetries = 3
)

// DriveDocumentSource implements applicant.DocumentSource over the Google
// Drive API. A reference is the URL a form submission stores in the sheet;
// native Google Docs are exported as plain text and PDFs go through the
// text extractor.
type DriveDocumentSource struct {
	svc *drive.Service
}

// NewDriveDocumentSource creates a document source over an authenticated
// Drive service.
func NewDriveDocumentSource(svc *drive.Service) *DriveDocumentSource {
	return &DriveDocumentSource{
		svc: svc,
	}
}

// Fetch resolves the reference to a Drive file and returns its text. A
// reference that does not look like a Drive URL, or a file that has gone
// missing, yields empty text rather than an error.
func (d *DriveDocumentSource) Fetch(ctx context.Context, ref string) (string, error) {
	fileID := parseDriveFileID(ref)
	if fileID == "" {
		logx.Debugf("reference %q is not a Drive URL, skipping", ref)
		return "", nil
	}

	file, err := d.svc.Files.Get(fileID).Fields("id", "name", "mimeType").Context(ctx).Do()
	if err != nil {
		if isNotFound(err) {
			logx.Warnf("drive file %s no longer exists", fileID)
			return "", nil
		}
		return "", fmt.Errorf("failed to get drive file %s: %w", fileID, err)
	}

	switch file.MimeType {
	case mimeGoogleDoc:
		return d.exportText(ctx, fileID)
	case mimePDF:
		data, err := d.download(ctx, fileID)
		if err != nil {
			return "", err
		}
		text, err := pdf.ExtractText(data)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from %s: %w", file.Name, err)
		}
		return text, nil
	default:
		// Anything else is fetched raw; binary formats come back as
		// garbage text and the extractors simply find nothing.
		data, err := d.download(ctx, fileID)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

func (d *DriveDocumentSource) exportText(ctx context.Context, fileID string) (string, error) {
	return retry.DoWithData(func() (string, error) {
		resp, err := d.svc.Files.Export(fileID, "text/plain").Context(ctx).Download()
		if err != nil {
			return "", fmt.Errorf("failed to export drive file %s: %w", fileID, err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("failed to read exported file %s: %w", fileID, err)
		}
		return string(data), nil
	},
		retry.Attempts(driveRetries),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
}

func (d *DriveDocumentSource) download(ctx context.Context, fileID string) ([]byte, error) {
	return retry.DoWithData(func() ([]byte, error) {
		resp, err := d.svc.Files.Get(fileID).Context(ctx).Download()
		if err != nil {
			return nil, fmt.Errorf("failed to download drive file %s: %w", fileID, err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read drive file %s: %w", fileID, err)
		}
		return data, nil
	},
		retry.Attempts(driveRetries),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
}

// parseDriveFileID extracts the file ID from the URL shapes Drive hands
// out: open?id=<id>, /file/d/<id>/view, and /document/d/<id>/edit.
func parseDriveFileID(ref string) string {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil || u.Host == "" {
		return ""
	}
	if !strings.Contains(u.Host, "google.com") {
		return ""
	}

	if id := u.Query().Get("id"); id != "" {
		return id
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, part := range parts {
		if part == "d" && i+1 < len(parts) {
			return parts[i+1]
		}
	}

	return ""
}

func isNotFound(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == 404
	}
	return false
}
