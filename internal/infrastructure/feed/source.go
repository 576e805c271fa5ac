// Package feed fetches and decodes shop catalog feeds
package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-resty/resty/v2"
	"github.com/shopfeed/backend/internal/domain/shared"
	"github.com/shopfeed/backend/internal/infrastructure/config"
)

// ErrTooLarge is returned when a feed exceeds the configured size limit
var ErrTooLarge = errors.New("feed exceeds the size limit")

// Source downloads the raw bytes of a feed
type Source interface {
	Fetch(ctx context.Context, feedURL *url.URL) ([]byte, error)
}

// ValidateURL checks that raw is an absolute http, https or s3 url with a host
func ValidateURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return nil, shared.ErrInvalidURL
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "s3":
		return u, nil
	}
	return nil, shared.ErrInvalidURL
}

// HTTPSource fetches feeds over http(s)
type HTTPSource struct {
	client  *resty.Client
	maxSize int64
}

// NewHTTPSource creates an HTTP source whose requests never outlive timeout
func NewHTTPSource(timeout time.Duration, maxSize int64) *HTTPSource {
	client := resty.New().
		SetTimeout(timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5)).
		SetHeader("User-Agent", "shopfeed-importer/1.0").
		SetHeader("Accept", "application/yaml, text/yaml, text/plain, */*")
	return &HTTPSource{client: client, maxSize: maxSize}
}

// Fetch implements Source
func (s *HTTPSource) Fetch(ctx context.Context, feedURL *url.URL) ([]byte, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(feedURL.String())
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", feedURL.Redacted(), err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("fetch %s: server answered %s", feedURL.Redacted(), resp.Status())
	}
	return readLimited(body, s.maxSize)
}

// S3Source fetches s3://bucket/key feeds from S3-compatible storage
type S3Source struct {
	client  *s3.Client
	maxSize int64
}

// NewS3Source creates an S3 source from storage configuration
func NewS3Source(ctx context.Context, cfg config.StorageConfig, maxSize int64) (*S3Source, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint := storageEndpoint(cfg); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return &S3Source{client: client, maxSize: maxSize}, nil
}

func storageEndpoint(cfg config.StorageConfig) string {
	endpoint := cfg.Endpoint
	if endpoint == "" || strings.Contains(endpoint, "://") {
		return endpoint
	}
	if cfg.UseSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}

// Fetch implements Source
func (s *S3Source) Fetch(ctx context.Context, feedURL *url.URL) ([]byte, error) {
	bucket, key := objectLocation(feedURL)
	if key == "" {
		return nil, fmt.Errorf("fetch %s: object key is missing", feedURL.Redacted())
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", feedURL.Redacted(), err)
	}
	defer out.Body.Close()
	return readLimited(out.Body, s.maxSize)
}

func objectLocation(u *url.URL) (bucket, key string) {
	return u.Host, strings.TrimPrefix(u.Path, "/")
}

// SchemeSource dispatches to a source by url scheme
type SchemeSource map[string]Source

// Fetch implements Source
func (m SchemeSource) Fetch(ctx context.Context, feedURL *url.URL) ([]byte, error) {
	src, ok := m[strings.ToLower(feedURL.Scheme)]
	if !ok {
		return nil, fmt.Errorf("fetch %s: no source configured for scheme %q", feedURL.Redacted(), feedURL.Scheme)
	}
	return src.Fetch(ctx, feedURL)
}

func readLimited(r io.Reader, maxSize int64) ([]byte, error) {
	if maxSize <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxSize {
		return nil, ErrTooLarge
	}
	return data, nil
}
