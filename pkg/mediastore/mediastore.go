package mediastore

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"chitrashala/pkg/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// uploadTimeout bounds a single upload to the external store. The deadline
// is independent of the request context: a client disconnect does not abort
// an in-flight upload.
const uploadTimeout = 60 * time.Second

type MediaKind string

const (
	KindImage MediaKind = "image"
	KindVideo MediaKind = "video"
)

// Error is the single failure type of the adapter. Every upstream fault
// (unreachable host, undetectable content, deadline expiry) is wrapped here
// with the cause attached.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("media store: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UploadResult describes a successfully stored binary.
type UploadResult struct {
	URL  string
	Kind MediaKind
	Size int64
}

// contentKinds maps sniffed content types onto the media kinds the platform
// accepts. Anything not listed is rejected.
var contentKinds = map[string]MediaKind{
	"image/jpeg":      KindImage,
	"image/png":       KindImage,
	"image/gif":       KindImage,
	"image/webp":      KindImage,
	"video/mp4":       KindVideo,
	"video/webm":      KindVideo,
	"video/avi":       KindVideo,
	"application/ogg": KindVideo,
	"video/quicktime": KindVideo,
}

type Client struct {
	s3Client *s3.S3
	bucket   string
}

func NewClient(cfg *config.Config) (*Client, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.AWSRegion),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		),
	}

	// Support MinIO for local development
	if cfg.AWSEndpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.AWSEndpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		if cfg.S3UseSSL == "false" {
			awsConfig.DisableSSL = aws.Bool(true)
		}
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	client := &Client{
		s3Client: s3.New(sess),
		bucket:   cfg.S3BucketName,
	}

	// Ensure bucket exists (for MinIO)
	_, err = client.s3Client.HeadBucket(&s3.HeadBucketInput{
		Bucket: aws.String(cfg.S3BucketName),
	})
	if err != nil {
		_, _ = client.s3Client.CreateBucket(&s3.CreateBucketInput{
			Bucket: aws.String(cfg.S3BucketName),
		})
	}

	return client, nil
}

// DetectKind sniffs the content and classifies it as image or video.
func DetectKind(data []byte) (MediaKind, string, error) {
	contentType := http.DetectContentType(data)
	semicolon := strings.Index(contentType, ";")
	if semicolon >= 0 {
		contentType = contentType[:semicolon]
	}

	// The stdlib sniff table knows MP4 brands but not QuickTime's, so a
	// .mov file comes back as application/octet-stream.
	if contentType == "application/octet-stream" && isQuickTime(data) {
		contentType = "video/quicktime"
	}

	kind, ok := contentKinds[contentType]
	if !ok {
		return "", "", fmt.Errorf("unsupported content type %q", contentType)
	}
	return kind, contentType, nil
}

// isQuickTime reports whether the data starts with an ftyp box carrying a
// QuickTime brand.
func isQuickTime(data []byte) bool {
	if len(data) < 12 {
		return false
	}
	return string(data[4:8]) == "ftyp" && string(data[8:12]) == "qt  "
}

// Store uploads the binary into the given folder of the bucket and returns
// its durable URL together with the detected media kind. No retry is
// performed; the caller may retry the whole request.
func (c *Client) Store(ctx context.Context, data []byte, folder string) (*UploadResult, error) {
	if len(data) == 0 {
		return nil, &Error{Op: "detect", Err: fmt.Errorf("empty content")}
	}

	kind, contentType, err := DetectKind(data)
	if err != nil {
		return nil, &Error{Op: "detect", Err: err}
	}

	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), extensionFor(contentType))

	// The upload keeps running even if the incoming request goes away.
	uploadCtx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
	defer cancel()

	_, err = c.s3Client.PutObjectWithContext(uploadCtx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, &Error{Op: "upload", Err: err}
	}

	return &UploadResult{
		URL:  c.objectURL(key),
		Kind: kind,
		Size: int64(len(data)),
	}, nil
}

func (c *Client) objectURL(key string) string {
	endpoint := aws.StringValue(c.s3Client.Config.Endpoint)
	if endpoint != "" && !strings.Contains(endpoint, "amazonaws.com") {
		// MinIO URL format
		protocol := "http"
		if c.s3Client.Config.DisableSSL != nil && !*c.s3Client.Config.DisableSSL {
			protocol = "https"
		}
		endpoint = strings.TrimPrefix(endpoint, "http://")
		endpoint = strings.TrimPrefix(endpoint, "https://")
		return fmt.Sprintf("%s://%s/%s/%s", protocol, endpoint, c.bucket, key)
	}

	// AWS S3 URL format
	region := aws.StringValue(c.s3Client.Config.Region)
	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, region, key)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "video/mp4":
		return ".mp4"
	case "video/webm":
		return ".webm"
	case "video/avi":
		return ".avi"
	case "video/quicktime":
		return ".mov"
	default:
		return ""
	}
}
