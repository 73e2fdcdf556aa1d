package infrastructure

import (
	"context"
	"time"

	"github.com/andreyxaxa/portfolio-dashboard/internal/entity"
	"github.com/segmentio/kafka-go"
)

type (
	EventsSender interface {
		SendEvents(ctx context.Context, events []*entity.OutboxEvent) error
		Close() error
	}

	EventsReader interface {
		ReadEvent(ctx context.Context) (kafka.Message, error)
		CommitEvent(ctx context.Context, event kafka.Message) error
		Close() error
	}

	ImageProcessor interface {
		// Prepare validates a staged image and downscales it to the
		// configured bounds.
		Prepare(ctx context.Context, file *entity.Upload) (*entity.Upload, error)
	}

	Metrics interface {
		SaveFinished(kind entity.Kind, outcome string, took time.Duration)
		DeleteFinished(kind entity.Kind, outcome string)
		BlobUploaded(kind entity.Kind, ok bool)
		CleanupWarning(kind entity.Kind)
		OrphanedUploads(kind entity.Kind, n int)
	}
)
