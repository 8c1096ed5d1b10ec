// Package mirror adapts sources whose transport is not a plain HTTPS GET:
// anonymous S3 buckets (NOAA Big Data Program mirrors) and Azure blobs
// that require a signed query string substitution.
package mirror

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/nwpfetch/nwpfetch/internal/coreerr"
)

// S3Source describes one anonymous-access bucket/key pair derived from a
// model template's "aws" source URL.
type S3Source struct {
	Bucket string
	Key    string
}

// virtualHostedS3 matches the virtual-hosted-style S3 URL every "aws"
// source emits (hrrr.go, gfs.go, ifs.go, ...): bucket.s3[.region].amazonaws.com.
var virtualHostedS3 = regexp.MustCompile(`^([^.]+)\.s3(?:[.-][a-z0-9-]+)?\.amazonaws\.com$`)

// ParseS3URL recognizes an "s3://bucket/key" URL or a plain HTTPS URL
// against a virtual-hosted-style S3 bucket endpoint (the form every
// built-in "aws" source actually emits). It does not validate that the
// bucket exists; that is left to the first request against it.
func ParseS3URL(rawURL string) (S3Source, bool) {
	const prefix = "s3://"
	if strings.HasPrefix(rawURL, prefix) {
		rest := rawURL[len(prefix):]
		i := strings.IndexByte(rest, '/')
		if i < 0 {
			return S3Source{Bucket: rest}, true
		}
		return S3Source{Bucket: rest[:i], Key: rest[i+1:]}, true
	}

	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") {
		return S3Source{}, false
	}
	m := virtualHostedS3.FindStringSubmatch(u.Host)
	if m == nil {
		return S3Source{}, false
	}
	return S3Source{Bucket: m[1], Key: strings.TrimPrefix(u.Path, "/")}, true
}

// Client wraps an s3.Client configured for anonymous, unsigned requests
// against the public NOAA Big Data Program buckets (noaa-hrrr-bdp-pds,
// noaa-gfs-bdp-pds, etc.), grounded on the teacher's S3Target setup in
// pkg/archive/parquet/target.go but using anonymous credentials since
// these buckets grant public read with no access key.
type Client struct {
	s3 *s3.Client
}

// NewClient builds an anonymous S3 client for the given region. NOAA's
// public buckets live in us-east-1.
func NewClient(ctx context.Context, region string) (*Client, error) {
	if region == "" {
		region = "us-east-1"
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(aws.AnonymousCredentials{}),
	)
	if err != nil {
		return nil, fmt.Errorf("mirror: load AWS config: %w", err)
	}
	return &Client{s3: s3.NewFromConfig(cfg)}, nil
}

// Exists performs a HeadObject to check presence, the S3 analogue of the
// HTTP HEAD probe in internal/httpx (§4.2).
func (c *Client) Exists(ctx context.Context, src S3Source) bool {
	_, err := c.s3.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(src.Bucket),
		Key:    aws.String(src.Key),
	})
	return err == nil
}

// ContentLength returns the object size, or -1 if unknown.
func (c *Client) ContentLength(ctx context.Context, src S3Source) int64 {
	out, err := c.s3.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(src.Bucket),
		Key:    aws.String(src.Key),
	})
	if err != nil || out.ContentLength == nil {
		return -1
	}
	return *out.ContentLength
}

// GetRange fetches byte range [start, end] (inclusive) from the object
// and writes it to w, mirroring internal/httpx.Client.GetRange's
// contract for the subset downloader (C6).
func (c *Client) GetRange(ctx context.Context, src S3Source, start, end int64, w io.Writer, id coreerr.Identity) (int64, error) {
	rangeHeader := fmt.Sprintf("bytes=%d-", start)
	if end >= 0 {
		rangeHeader = fmt.Sprintf("bytes=%d-%d", start, end)
	}
	out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(src.Bucket),
		Key:    aws.String(src.Key),
		Range:  aws.String(rangeHeader),
	})
	if err != nil {
		return 0, coreerr.New(coreerr.KindIOFailed, id, fmt.Errorf("mirror: get %s/%s: %w", src.Bucket, src.Key, err))
	}
	defer out.Body.Close()

	n, err := io.Copy(w, out.Body)
	if err != nil {
		return n, coreerr.New(coreerr.KindIOFailed, id, err)
	}
	return n, nil
}

// GetFull fetches the whole object, for the full-file fallback path.
func (c *Client) GetFull(ctx context.Context, src S3Source, w io.Writer, id coreerr.Identity) (int64, error) {
	out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(src.Bucket),
		Key:    aws.String(src.Key),
	})
	if err != nil {
		return 0, coreerr.New(coreerr.KindUnresolvable, id, fmt.Errorf("mirror: get %s/%s: %w", src.Bucket, src.Key, err))
	}
	defer out.Body.Close()

	n, err := io.Copy(w, out.Body)
	if err != nil {
		return n, coreerr.New(coreerr.KindIOFailed, id, err)
	}
	return n, nil
}
