// Package export writes amortization schedules as Parquet files to a local
// directory or an S3 bucket.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/iwvelando/mortgage-simulator/pkg/loans"
	"github.com/iwvelando/mortgage-simulator/pkg/output"
	"github.com/parquet-go/parquet-go"
	"go.uber.org/zap"
)

// WriteSchedule encodes schedule as Parquet into w.
func WriteSchedule(schedule []loans.ScheduleRow, w io.Writer) error {
	writer := parquet.NewGenericWriter[loans.ScheduleRow](w)

	if _, err := writer.Write(schedule); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write schedule rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// FileName derives the Parquet file name of a report from its name.
func FileName(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteRune('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		slug = "simulation"
	}
	return slug + ".parquet"
}

// StoreToPath writes the schedule of report under basepath and returns the
// file path.
func StoreToPath(report output.Report, basepath string) (string, error) {
	if err := os.MkdirAll(basepath, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create export directory %s: %w", basepath, err)
	}

	outPath := filepath.Join(basepath, FileName(report.Name))

	file, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer file.Close()

	if err := WriteSchedule(report.Result.Schedule, file); err != nil {
		return "", err
	}

	return outPath, nil
}

// S3Path is a parsed s3://bucket/prefix destination.
type S3Path struct {
	Bucket string
	Prefix string
}

// ParseS3 parses an s3:// URL into bucket and prefix.
func ParseS3(path string) (*S3Path, error) {
	if !strings.HasPrefix(path, "s3://") {
		return nil, fmt.Errorf("path must start with s3://")
	}

	parts := strings.SplitN(strings.TrimPrefix(path, "s3://"), "/", 2)
	if parts[0] == "" {
		return nil, fmt.Errorf("missing bucket in %s", path)
	}

	dst := &S3Path{Bucket: parts[0]}
	if len(parts) > 1 {
		dst.Prefix = strings.Trim(parts[1], "/")
	}
	return dst, nil
}

// Key returns the object key for fileName under the prefix.
func (p *S3Path) Key(fileName string) string {
	if p.Prefix == "" {
		return fileName
	}
	return p.Prefix + "/" + fileName
}

// ObjectPutter is the subset of the S3 client used for uploads.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// StoreToS3 uploads the schedule of report to dst and returns its s3:// URL.
func StoreToS3(ctx context.Context, report output.Report, client ObjectPutter, dst *S3Path) (string, error) {
	tmp, err := os.CreateTemp("", "schedule-*.parquet")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if err := WriteSchedule(report.Result.Schedule, tmp); err != nil {
		return "", err
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to seek to start of file: %w", err)
	}

	key := dst.Key(FileName(report.Name))
	input := &s3.PutObjectInput{
		Bucket: aws.String(dst.Bucket),
		Key:    aws.String(key),
		Body:   tmp,
	}

	if _, err := client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload file to s3://%s/%s: %w", dst.Bucket, key, err)
	}

	return fmt.Sprintf("s3://%s/%s", dst.Bucket, key), nil
}

// NewS3Client builds an S3 client from the default AWS configuration chain,
// optionally using a named shared profile.
func NewS3Client(ctx context.Context, profile string) (*s3.Client, error) {
	var (
		cfg aws.Config
		err error
	)
	if profile == "" || profile == "default" {
		cfg, err = config.LoadDefaultConfig(ctx)
	} else {
		cfg, err = config.LoadDefaultConfig(ctx, config.WithSharedConfigProfile(profile))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// Reports writes every report to destination, which is either a local
// directory or an s3:// URL, and returns the written locations.
func Reports(ctx context.Context, logger *zap.Logger, reports []output.Report, destination, profile string) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		client *s3.Client
		s3Path *S3Path
	)
	if strings.HasPrefix(destination, "s3://") {
		var err error
		if s3Path, err = ParseS3(destination); err != nil {
			return nil, err
		}
		if client, err = NewS3Client(ctx, profile); err != nil {
			return nil, err
		}
	}

	locations := make([]string, 0, len(reports))
	for _, report := range reports {
		var (
			location string
			err      error
		)
		if s3Path != nil {
			location, err = StoreToS3(ctx, report, client, s3Path)
		} else {
			location, err = StoreToPath(report, destination)
		}
		if err != nil {
			return locations, fmt.Errorf("failed to export simulation %s: %w", report.Name, err)
		}

		logger.Info("exported schedule",
			zap.String("op", "export.Reports"),
			zap.String("simulation", report.Name),
			zap.String("location", location),
			zap.Int("rows", len(report.Result.Schedule)),
		)
		locations = append(locations, location)
	}

	return locations, nil
}
