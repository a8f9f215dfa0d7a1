package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"strings"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/constant"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrObjectKey = "s3.object_key"
	otelAttrBucket    = "s3.bucket"

	// Room and gallery images are immutable: a replaced image gets a new object name.
	imageCacheControl = "public, max-age=31536000, immutable"
)

// S3 stores room and gallery images in an S3 compatible bucket (R2, MinIO, AWS).
// Objects live under directory/objectName and are served from the public domain.
type S3 interface {
	UploadFile(ctx context.Context, bucketName, directory string, file multipart.File, fileHeader *multipart.FileHeader, objectName string) (url string, err error)
	DeleteFile(ctx context.Context, bucketName, directory, objectName string) error
	GetObjectNameFromURL(bucketName, url string) (objectName string)
}

type s3Impl struct {
	client *s3.Client
	cfg    *config.Config
	otel   otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) S3 {
	settings := cfg.External.S3

	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(settings.AccessKeyID, settings.SecretAccessKey, "")),
	)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load object storage configuration")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(settings.APIEndpoint)
		o.UsePathStyle = true
		o.Region = "auto"
	})

	return &s3Impl{client: client, cfg: cfg, otel: otel}
}

func (svc *s3Impl) bucket(name string) string {
	if name == constant.Empty {
		return svc.cfg.External.S3.BucketName
	}

	return name
}

// UploadFile streams an uploaded form file to the bucket and returns its public URL.
func (svc *s3Impl) UploadFile(ctx context.Context, bucketName, directory string, file multipart.File, fileHeader *multipart.FileHeader, objectName string) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".UploadFile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bucket := svc.bucket(bucketName)
	key := path.Join(directory, objectName)

	scope.SetAttributes(map[string]any{otelAttrBucket: bucket, otelAttrObjectKey: key})

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          file,
		ContentType:   aws.String(fileHeader.Header.Get(constant.RequestHeaderContentType)),
		ContentLength: aws.Int64(fileHeader.Size),
		CacheControl:  aws.String(imageCacheControl),
	})
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return strings.TrimSuffix(svc.cfg.External.S3.PublicDomain, "/") + "/" + key, nil
}

func (svc *s3Impl) DeleteFile(ctx context.Context, bucketName, directory, objectName string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".DeleteFile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bucket := svc.bucket(bucketName)
	key := path.Join(directory, objectName)

	scope.SetAttributes(map[string]any{otelAttrBucket: bucket, otelAttrObjectKey: key})

	if _, err = svc.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}

	return nil
}

// GetObjectNameFromURL returns the object name of a URL produced by UploadFile,
// or of a path-style API URL, without its directory. Foreign URLs yield "".
func (svc *s3Impl) GetObjectNameFromURL(bucketName, url string) string {
	settings := svc.cfg.External.S3

	prefixes := []string{
		strings.TrimSuffix(settings.PublicDomain, "/") + "/",
		strings.TrimSuffix(settings.APIEndpoint, "/") + "/" + svc.bucket(bucketName) + "/",
	}

	for _, prefix := range prefixes {
		if prefix == "/" {
			continue
		}

		if key, ok := strings.CutPrefix(url, prefix); ok && key != constant.Empty {
			return path.Base(key)
		}
	}

	return constant.Empty
}
