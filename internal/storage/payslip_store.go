package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"hrms-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// PayslipStore uploads rendered payslips to an S3 compatible bucket.
type PayslipStore struct {
	client objectPutter
	bucket string
	prefix string
}

// NewPayslipStore builds an S3 client from the payslip section. Static
// credentials and a custom endpoint are optional, so R2 and MinIO work too.
func NewPayslipStore(ctx context.Context, cfg *config.Config) (*PayslipStore, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Payslip.Region),
	}
	if cfg.Payslip.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Payslip.AccessKey,
			cfg.Payslip.SecretKey,
			"",
		)))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Payslip.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Payslip.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &PayslipStore{client: client, bucket: cfg.Payslip.Bucket, prefix: cfg.Payslip.Prefix}, nil
}

// Key is the object key for an employee's payslip generated at t.
func (s *PayslipStore) Key(employeeProfileID int, t time.Time) string {
	name := fmt.Sprintf("payslip_%d_%s.pdf", employeeProfileID, t.Format("200601_20060102150405"))
	return path.Join(s.prefix, fmt.Sprintf("%d", employeeProfileID), name)
}

// Put uploads a PDF and returns the bucket and key it was written to.
func (s *PayslipStore) Put(ctx context.Context, employeeProfileID int, pdf []byte, at time.Time) (string, string, error) {
	key := s.Key(employeeProfileID, at)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(pdf),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return "", "", fmt.Errorf("storage: upload %s: %w", key, err)
	}
	return s.bucket, key, nil
}
