package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/Leyinc1/manuelbest/internal/apperrors"
)

type S3API interface {
	s3.ListObjectsV2APIClient
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Store keeps each owner's files under <prefix>/<owner>/ in one bucket.
type S3Store struct {
	client S3API
	bucket string
	prefix string
}

func NewS3Store(client S3API, bucket, prefix string) *S3Store {
	return &S3Store{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

// NewS3Client uses the default AWS credential chain.
func NewS3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage.files.NewS3Client: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

func (s *S3Store) List(ctx context.Context, owner string) ([]string, error) {
	const op = "storage.files.S3Store.List"

	prefix := s.ownerPrefix(owner)
	names := make([]string, 0)

	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		for _, obj := range page.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), prefix)
			if name != "" && !strings.Contains(name, "/") {
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)

	return names, nil
}

func (s *S3Store) Save(ctx context.Context, owner, name string, body io.Reader, size int64) error {
	const op = "storage.files.S3Store.Save"

	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(owner, name)),
		Body:   body,
	}
	if size > 0 {
		in.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, in); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *S3Store) Open(ctx context.Context, owner, name string) (io.ReadCloser, error) {
	const op = "storage.files.S3Store.Open"

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(owner, name)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fmt.Errorf("%s: %w", op, apperrors.ErrFileNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out.Body, nil
}

func (s *S3Store) ownerPrefix(owner string) string {
	return path.Join(s.prefix, path.Base(owner)) + "/"
}

func (s *S3Store) key(owner, name string) string {
	return s.ownerPrefix(owner) + path.Base(name)
}
