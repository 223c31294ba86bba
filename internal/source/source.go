// Package source opens the input document of a conversion.
//
// Files are memory-mapped and parsed in place. Standard input and remote
// objects are parsed as a stream.
package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mazrean/json2jsonl/internal/remote"
	"github.com/mazrean/json2jsonl/log"
	"github.com/mazrean/json2jsonl/sequence"
)

// Kind selects how the input is opened
type Kind string

const (
	KindAuto      Kind = "auto"
	KindFile      Kind = "file"
	KindStdin     Kind = "stdin"
	KindS3        Kind = "s3"
	KindAzureBlob Kind = "azblob"
)

// Kinds returns every accepted source kind
func Kinds() []Kind {
	return []Kind{KindAuto, KindFile, KindStdin, KindS3, KindAzureBlob}
}

// UnknownSize is reported by Size when the input length is not known in advance
const UnknownSize = remote.UnknownSize

// Source is an opened input document
type Source interface {
	// Name identifies the input in log messages
	Name() string
	// Parser returns the parser reading the document. It is the same parser on every call.
	Parser() sequence.Parser
	// Size returns the input size in bytes, or UnknownSize
	Size() int64
	// Consumed returns the number of input bytes read so far
	Consumed() int64
	Close() error
}

// OpenError reports an input that could not be opened
type OpenError struct {
	Name string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Name, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// ResolveKind decides the source kind for path.
// KindAuto reads standard input for "" and "-", S3 for s3:// URLs,
// Azure Blob Storage for http(s):// URLs and a file otherwise.
func ResolveKind(kind Kind, path string) (Kind, error) {
	switch kind {
	case KindAuto:
		switch {
		case path == "" || path == "-":
			return KindStdin, nil
		case strings.HasPrefix(path, "s3://"):
			return KindS3, nil
		case strings.HasPrefix(path, "https://"), strings.HasPrefix(path, "http://"):
			return KindAzureBlob, nil
		default:
			return KindFile, nil
		}
	case KindStdin:
		return KindStdin, nil
	case KindFile, KindS3, KindAzureBlob:
		if path == "" || path == "-" {
			return "", fmt.Errorf("source %s requires an input path", kind)
		}
		return kind, nil
	default:
		return "", fmt.Errorf("unknown source kind %q", kind)
	}
}

type S3Options struct {
	Endpoint        string
	Region          string
	AccessKey       string
	SecretAccessKey string
	DisableSSL      bool
	UsePathStyle    bool
}

type AzureOptions struct {
	AccountName string
	AccountKey  string
}

// Options describes the input to open
type Options struct {
	Kind Kind
	// Path is a file path, an s3:// URL or a blob URL depending on Kind
	Path string
	// Stdin replaces os.Stdin when set
	Stdin io.Reader
	S3    S3Options
	Azure AzureOptions
}

// Open opens the input described by options
func Open(ctx context.Context, logger log.Logger, options Options) (Source, error) {
	kind, err := ResolveKind(options.Kind, options.Path)
	if err != nil {
		return nil, err
	}
	logger.Debugf("opening %q as %s", options.Path, kind)

	switch kind {
	case KindFile:
		src, err := OpenFile(options.Path)
		if err != nil {
			return nil, err
		}
		return src, nil
	case KindStdin:
		return openStdin(logger, options.Stdin), nil
	case KindS3:
		return openS3(ctx, logger, options.Path, options.S3)
	case KindAzureBlob:
		return openAzureBlob(ctx, logger, options.Path, options.Azure)
	}

	return nil, fmt.Errorf("unknown source kind %q", kind)
}

func openStdin(logger log.Logger, r io.Reader) Source {
	if r == nil {
		r = os.Stdin
	}
	if f, ok := r.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		logger.Warnf("reading JSON from a terminal. finish the input with EOF (Ctrl-D)")
	}

	return OpenStream("<stdin>", io.NopCloser(r), UnknownSize)
}

func openS3(ctx context.Context, logger log.Logger, rawURL string, options S3Options) (Source, error) {
	bucket, key, err := remote.ParseS3URL(rawURL)
	if err != nil {
		return nil, &OpenError{Name: rawURL, Err: err}
	}

	s3, err := remote.NewS3(
		logger,
		options.Endpoint,
		options.Region,
		options.AccessKey,
		options.SecretAccessKey,
		!options.DisableSSL,
		options.UsePathStyle,
	)
	if err != nil {
		return nil, fmt.Errorf("create S3 client: %w", err)
	}

	obj, err := s3.Open(ctx, bucket, key)
	if err != nil {
		return nil, &OpenError{Name: rawURL, Err: err}
	}

	return OpenStream(obj.Name, obj.Body, obj.Size), nil
}

func openAzureBlob(ctx context.Context, logger log.Logger, blobURL string, options AzureOptions) (Source, error) {
	// SAS tokens stay out of error messages
	name, _, _ := strings.Cut(blobURL, "?")

	azureBlob, err := remote.NewAzureBlob(logger, blobURL, options.AccountName, options.AccountKey)
	if err != nil {
		return nil, fmt.Errorf("create Azure blob client: %w", err)
	}

	obj, err := azureBlob.Open(ctx)
	if err != nil {
		return nil, &OpenError{Name: name, Err: err}
	}

	return OpenStream(obj.Name, obj.Body, obj.Size), nil
}
