package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/h2non/filetype"

	cfg "github.com/cadencehq/cadence-api/configs"
)

// AssetService stores generated media bytes in Cloudflare R2 and hands back
// public URLs. It is optional: when R2 is not configured the generation
// client falls back to inline data URIs.
type AssetService struct {
	config cfg.Config
	client *s3.Client
}

func NewAssetService(c cfg.Config) (*AssetService, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(c.R2.AccessKey, c.R2.SecretKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.R2.AccountID))
	})

	return &AssetService{config: c, client: client}, nil
}

// Upload sniffs the payload's type, stores it under name with the matching
// extension and returns the public URL.
func (r *AssetService) Upload(ctx context.Context, name string, data []byte) (string, error) {
	ext := "bin"
	contentType := "application/octet-stream"
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		ext = kind.Extension
		contentType = kind.MIME.Value
	}
	key := name + "." + ext

	input := &s3.PutObjectInput{
		Bucket:      aws.String(r.config.R2.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}

	if _, err := r.client.PutObject(ctx, input); err != nil {
		slog.Error(fmt.Sprintf("asset upload failed: %v", err))
		return "", err
	}

	return fmt.Sprintf("%s/%s", strings.TrimSuffix(r.config.R2.PublicURL, "/"), key), nil
}
