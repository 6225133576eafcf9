package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"golang.org/x/exp/slog"

	"notive/internal/app/server/config"
	"notive/internal/domain/entry"
)

const (
	ext         = ".md"
	contentType = "text/markdown; charset=utf-8"
)

// Client is the subset of *s3.Client used by Store.
type Client interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// Store keeps entries as objects {owner}/{dateKey}.md in one bucket.
type Store struct {
	client Client
	bucket string
	log    *slog.Logger
	now    func() time.Time
}

// NewClient собирает S3-клиент; BaseEndpoint позволяет работать с MinIO.
func NewClient(ctx context.Context, cfg config.S3) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func New(client Client, bucket string, log *slog.Logger) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		log:    log.With("component", "entry_objectstore"),
		now:    time.Now,
	}
}

func (s *Store) Get(ctx context.Context, owner, dateKey string) (entry.Entry, error) {
	e := entry.Entry{Owner: owner, DateKey: dateKey}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(owner, dateKey)),
	})
	if err != nil {
		if isNotFound(err) {
			return e, nil
		}
		return e, fmt.Errorf("get object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return e, fmt.Errorf("read object: %w", err)
	}

	e.Content = string(data)
	if out.LastModified != nil {
		e.LastModified = *out.LastModified
	}

	return e, nil
}

// Put перезаписывает объект целиком; префикс владельца появляется с первым объектом.
func (s *Store) Put(ctx context.Context, owner, dateKey, content string) (entry.Entry, error) {
	e := entry.Entry{Owner: owner, DateKey: dateKey, Content: content}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey(owner, dateKey)),
		Body:          strings.NewReader(content),
		ContentLength: aws.Int64(int64(len(content))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		s.log.Error("failed to put object", "owner", owner, "date_key", dateKey, "error", err)
		return e, fmt.Errorf("put object: %w", err)
	}
	e.LastModified = s.now()

	return e, nil
}

func (s *Store) List(ctx context.Context, owner string) ([]string, error) {
	prefix := owner + "/"
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})

	var keys []string
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}
		for _, obj := range page.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), prefix)
			if strings.Contains(name, "/") || !strings.HasSuffix(name, ext) {
				continue
			}
			keys = append(keys, strings.TrimSuffix(name, ext))
		}
	}

	return keys, nil
}

// Ping проверяет, что бакет существует и доступен.
func (s *Store) Ping(ctx context.Context) error {
	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
		return fmt.Errorf("head bucket %s: %w", s.bucket, err)
	}
	return nil
}

func objectKey(owner, dateKey string) string {
	return owner + "/" + dateKey + ext
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
