package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"path/filepath"
	"time"

	"github.com/benmeehan/trailmap/internal/models"
	"github.com/benmeehan/trailmap/pkg/file"
	"github.com/benmeehan/trailmap/pkg/mqtt"
	"github.com/benmeehan/trailmap/pkg/s3"
	"github.com/rs/zerolog"
)

// Publisher hands a rendered map to an external system.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, doc *models.MapDocument, series models.LocationSeries) error
}

// UploadService uploads rendered maps to object storage and records the presigned URL on the document.
type UploadService struct {
	bucket     string
	prefix     string
	expiry     time.Duration
	storage    s3.ObjectStorageClient
	fileClient file.FileOperations
	logger     zerolog.Logger
}

// NewUploadService creates a new UploadService instance.
func NewUploadService(bucket, prefix string, expiry time.Duration, storage s3.ObjectStorageClient,
	fileClient file.FileOperations, logger zerolog.Logger) *UploadService {
	return &UploadService{
		bucket:     bucket,
		prefix:     prefix,
		expiry:     expiry,
		storage:    storage,
		fileClient: fileClient,
		logger:     logger,
	}
}

// Name identifies the publisher in logs.
func (u *UploadService) Name() string {
	return "upload"
}

// Publish uploads the document as <prefix>/<document id>/<file name>.
func (u *UploadService) Publish(ctx context.Context, doc *models.MapDocument, _ models.LocationSeries) error {
	content, err := u.fileClient.ReadFileRaw(doc.Path)
	if err != nil {
		return fmt.Errorf("failed to read %s for upload: %w", doc.Path, err)
	}

	objectName := path.Join(u.prefix, doc.ID.String(), filepath.Base(doc.Path))
	url, err := u.storage.UploadObject(ctx, u.bucket, objectName, bytes.NewReader(content),
		int64(len(content)), "text/html; charset=utf-8", u.expiry)
	if err != nil {
		u.logger.Error().Err(err).Str("bucket", u.bucket).Str("object", objectName).Msg("Failed to upload map")
		return err
	}

	doc.URL = url
	u.logger.Info().
		Str("bucket", u.bucket).
		Str("object", objectName).
		Dur("expiry", u.expiry).
		Msg("Map uploaded")
	return nil
}

// NotificationService announces rendered maps on an MQTT topic.
type NotificationService struct {
	topic      string
	qos        int
	retained   bool
	mqttClient mqtt.MQTTClient
	logger     zerolog.Logger
	now        func() time.Time
}

// NewNotificationService creates a new NotificationService instance.
func NewNotificationService(topic string, qos int, retained bool, mqttClient mqtt.MQTTClient, logger zerolog.Logger) *NotificationService {
	return &NotificationService{
		topic:      topic,
		qos:        qos,
		retained:   retained,
		mqttClient: mqttClient,
		logger:     logger,
		now:        time.Now,
	}
}

// Name identifies the publisher in logs.
func (n *NotificationService) Name() string {
	return "mqtt"
}

// Publish sends a RenderEvent describing doc.
func (n *NotificationService) Publish(_ context.Context, doc *models.MapDocument, series models.LocationSeries) error {
	event := models.RenderEvent{
		DocumentID:  doc.ID,
		EntityID:    doc.EntityID,
		SampleCount: doc.SampleCount,
		Latitude:    doc.Center[0],
		Longitude:   doc.Center[1],
		WindowStart: series.Start,
		WindowEnd:   series.End,
		File:        doc.Path,
		URL:         doc.URL,
		Timestamp:   n.now(),
	}

	// Serialize the render event to JSON
	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Error().Err(err).Msg("Failed to serialize render event")
		return err
	}

	token := n.mqttClient.Publish(n.topic, byte(n.qos), n.retained, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		n.logger.Error().
			Err(err).
			Str("topic", n.topic).
			Msg("Failed to publish render event to MQTT")
		return err
	}

	n.logger.Info().
		Str("topic", n.topic).
		Str("document_id", doc.ID.String()).
		Msg("Render event published successfully")
	return nil
}
