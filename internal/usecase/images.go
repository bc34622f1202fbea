package usecase

import (
	"context"
	"time"

	"cineticket/pkg/storage"
	"cineticket/pkg/utils"

	"go.uber.org/zap"
)

// imageResolver turns stored object names into presigned URLs.
type imageResolver struct {
	storage      storage.ImageService
	posterBucket string
	ticketBucket string
	expiry       time.Duration
	log          *zap.Logger
}

func newImageResolver(s storage.ImageService, config utils.StorageConfig, log *zap.Logger) *imageResolver {
	expiry := time.Duration(config.PresignExpirySeconds) * time.Second
	if expiry <= 0 {
		expiry = time.Hour
	}
	return &imageResolver{
		storage:      s,
		posterBucket: config.PosterBucket,
		ticketBucket: config.TicketBucket,
		expiry:       expiry,
		log:          log.With(zap.String("component", "image_resolver")),
	}
}

// url falls back to the raw object name when presigning is impossible
func (r *imageResolver) url(ctx context.Context, objectName *string, bucket string) *string {
	if objectName == nil || *objectName == "" {
		return nil
	}
	if r.storage == nil {
		return objectName
	}

	u, err := r.storage.GetImageURL(ctx, *objectName, r.expiry, bucket)
	if err != nil {
		r.log.Warn("Presign failed, returning object name",
			zap.Error(err),
			zap.String("object", *objectName))
		return objectName
	}
	return &u
}

func (r *imageResolver) posterURL(ctx context.Context, objectName *string) *string {
	return r.url(ctx, objectName, r.posterBucket)
}

func (r *imageResolver) ticketURL(ctx context.Context, objectName *string) *string {
	return r.url(ctx, objectName, r.ticketBucket)
}
