package dataset

import (
	"compress/gzip"
	"context"
	"fmt"
	"hash/crc32"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/lazear/mcode/pkg/logging"
	"github.com/lazear/mcode/pkg/metrics"
)

// S3Getter is the slice of the S3 API the fetcher uses.
type S3Getter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Fetcher resolves dataset URIs into local files. Remote sources
// (http://, https://, s3://) are downloaded into CacheDir on first use
// and reused afterwards; gzip sources are decompressed transparently.
// Plain paths are returned as-is.
type Fetcher struct {
	CacheDir string
	// Client overrides http.DefaultClient for http(s) sources.
	Client *http.Client
	// S3 must be set for s3:// sources.
	S3 S3Getter
	// Metrics, when set, receives fetch counters.
	Metrics *metrics.Registry
	// Logger defaults to the package logger.
	Logger logging.Logger
}

// Fetch returns a local path for source, downloading it if necessary.
func (f *Fetcher) Fetch(ctx context.Context, source string) (string, error) {
	if !strings.Contains(source, "://") {
		if _, err := os.Stat(source); err != nil {
			return "", fmt.Errorf("local dataset %s: %w", source, err)
		}
		return source, nil
	}

	u, err := url.Parse(source)
	if err != nil {
		return "", fmt.Errorf("parsing dataset uri %s: %w", source, err)
	}

	name := path.Base(u.Path)
	gzipped := strings.HasSuffix(name, ".gz")
	if gzipped {
		name = strings.TrimSuffix(name, ".gz")
	}
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("cannot derive a file name from %s", source)
	}
	// Key the cache entry on the full source URI, not just the base
	// name, so two releases publishing the same file name don't collide.
	name = fmt.Sprintf("%08x-%s", crc32.ChecksumIEEE([]byte(source)), name)
	target := filepath.Join(f.CacheDir, name)

	if _, err := os.Stat(target); err == nil {
		f.log().Debug("Dataset already cached", logging.Path(target))
		f.record(u.Scheme, "cached", 0)
		return target, nil
	}

	start := time.Now()
	body, err := f.open(ctx, u)
	if err != nil {
		f.record(u.Scheme, "error", 0)
		return "", err
	}
	defer body.Close()

	var reader io.Reader = body
	if gzipped {
		gz, err := gzip.NewReader(body)
		if err != nil {
			f.record(u.Scheme, "error", 0)
			return "", fmt.Errorf("decompressing %s: %w", source, err)
		}
		defer gz.Close()
		reader = gz
	}

	if err := os.MkdirAll(f.CacheDir, 0o755); err != nil {
		return "", fmt.Errorf("creating cache dir %s: %w", f.CacheDir, err)
	}
	tmp, err := os.CreateTemp(f.CacheDir, name+".partial-*")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	written, err := io.Copy(tmp, reader)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		f.record(u.Scheme, "error", 0)
		return "", fmt.Errorf("downloading %s: %w", source, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("moving dataset into cache: %w", err)
	}

	f.log().Info("Dataset downloaded",
		logging.String("source", source),
		logging.Path(target),
		logging.Int64("bytes", written),
		logging.Latency(time.Since(start)),
	)
	f.record(u.Scheme, "success", written)
	return target, nil
}

func (f *Fetcher) open(ctx context.Context, u *url.URL) (io.ReadCloser, error) {
	switch u.Scheme {
	case "http", "https":
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("building request for %s: %w", u.String(), err)
		}
		client := f.Client
		if client == nil {
			client = http.DefaultClient
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", u.String(), err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetching %s: unexpected status %s", u.String(), resp.Status)
		}
		return resp.Body, nil
	case "s3":
		if f.S3 == nil {
			return nil, fmt.Errorf("fetching %s: no s3 client configured", u.String())
		}
		out, err := f.S3.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(u.Host),
			Key:    aws.String(strings.TrimPrefix(u.Path, "/")),
		})
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", u.String(), err)
		}
		return out.Body, nil
	default:
		return nil, fmt.Errorf("fetching %s: %w %q", u.String(), ErrUnsupportedScheme, u.Scheme)
	}
}

func (f *Fetcher) record(scheme, status string, bytes int64) {
	if f.Metrics != nil {
		f.Metrics.RecordFetch(scheme, status, bytes)
	}
}

func (f *Fetcher) log() logging.Logger {
	if f.Logger != nil {
		return f.Logger
	}
	return logging.DefaultLogger()
}
