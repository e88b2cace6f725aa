// Package backup uploads periodic snapshots of the ledger collections to an
// S3-compatible bucket (R2 in production). Snapshots are a single JSON
// document bundling every collection, so one object restores everything.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"freight-backend/internal/config"
	appstore "freight-backend/internal/store"
	"freight-backend/internal/timeutil"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var snapshotCollections = []string{
	appstore.CollectionShipments,
	appstore.CollectionDeletedShipments,
	appstore.CollectionTrips,
	appstore.CollectionDeletedTrips,
	appstore.CollectionExpenses,
	appstore.CollectionUsers,
}

type Uploader struct {
	cfg    *config.Config
	store  appstore.Store
	client *s3.Client
}

// NewUploader builds the S3 client from config. Returns nil when backups
// are not configured; the caller skips scheduling.
func NewUploader(ctx context.Context, cfg *config.Config, s appstore.Store) (*Uploader, error) {
	if !cfg.Backup.Enabled {
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Backup.AccessKey,
			cfg.Backup.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Backup.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("configure backup client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Backup.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Backup.Endpoint)
		}
	})

	return &Uploader{cfg: cfg, store: s, client: client}, nil
}

// Snapshot bundles every collection into one JSON document.
func (u *Uploader) Snapshot() ([]byte, error) {
	bundle := make(map[string]json.RawMessage, len(snapshotCollections))
	for _, name := range snapshotCollections {
		var records json.RawMessage
		if err := u.store.Load(name, &records); err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", name, err)
		}
		if records == nil {
			records = json.RawMessage("[]")
		}
		bundle[name] = records
	}
	return json.MarshalIndent(bundle, "", "  ")
}

// Upload takes a snapshot and puts it in the bucket.
func (u *Uploader) Upload(ctx context.Context) error {
	data, err := u.Snapshot()
	if err != nil {
		return err
	}

	key := fmt.Sprintf("snapshots/freight_%s.json", timeutil.Now().Format("20060102_150405"))
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Backup.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("upload snapshot: %w", err)
	}

	log.Printf("[Backup] Uploaded %s (%d bytes)", key, len(data))
	return nil
}

// Run uploads on the configured interval until the context is cancelled.
func (u *Uploader) Run(ctx context.Context) {
	interval := time.Duration(u.cfg.Backup.IntervalHours) * time.Hour
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("[Backup] Scheduler running every %s", interval)
	for {
		select {
		case <-ticker.C:
			uploadCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
			if err := u.Upload(uploadCtx); err != nil {
				log.Printf("[Backup] Upload failed: %v", err)
			}
			cancel()
		case <-ctx.Done():
			return
		}
	}
}
