package remote

import (
	"context"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/xyrionz/SafeArchive/pkg/config"
)

type S3 struct {
	settings *config.S3Config
}

func NewS3(settings *config.S3Config) *S3 {
	return &S3{
		settings: settings,
	}
}

func (s *S3) Name() string {
	return config.ProviderS3
}

func (s *S3) Upload(ctx context.Context, fileName string, r io.Reader, size int64) error {
	var opts []func(*awsconfig.LoadOptions) error
	if s.settings.Region != "" {
		opts = append(opts, awsconfig.WithRegion(s.settings.Region))
	}

	awscfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return err
	}

	key := fileName
	if s.settings.Prefix != "" {
		key = path.Join(s.settings.Prefix, fileName)
	}

	client := s3.NewFromConfig(awscfg)
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.settings.Bucket),
		Key:           aws.String(key),
		Body:          r,
		ContentLength: size,
	})
	return err
}
