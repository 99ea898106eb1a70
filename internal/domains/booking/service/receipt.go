package service

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"nightlife/internal/domains/booking/model"
	"nightlife/internal/domains/booking/model/dto"
	"nightlife/shared"
	"nightlife/shared/constant"
	"nightlife/shared/identity"
	"nightlife/shared/timezone"

	"github.com/rs/zerolog/log"
)

const receiptDirectory = "receipts"

// UploadReceipt stores the owner's bill photo and replaces any previous one.
func (s *serviceImpl) UploadReceipt(ctx context.Context, id string, req dto.UploadReceiptRequest) (res dto.ReceiptResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadReceipt")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		return res, err
	}

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	if !booking.IsOwnedBy(caller.UserID) {
		return res, ErrBookingForbidden
	}

	bucket := s.cfg.External.S3.BucketName
	objectName := fmt.Sprintf("%s_%d_%s", booking.ID, timezone.Now().UnixMilli(), filepath.Base(req.FileName))

	url, err := s.s3.UploadFileBytes(ctx, bucket, receiptDirectory, objectName, http.DetectContentType(req.File), req.File)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload receipt")

		return res, fmt.Errorf("failed to upload receipt: %w", err)
	}

	patch := map[string]any{
		model.FieldHasReceipt:    true,
		model.FieldReceiptURL:    url,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: caller.UserID,
	}

	if err = s.repo.Update(ctx, patch, shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to save receipt")

		if err := s.s3.DeleteFile(context.WithoutCancel(ctx), bucket, receiptDirectory, objectName); err != nil {
			log.Error().Err(err).Str("object", objectName).Msg("failed to remove orphaned receipt")
		}

		return res, fmt.Errorf("failed to save receipt: %w", err)
	}

	if booking.ReceiptURL != nil {
		if old := s.s3.GetObjectNameFromURL(bucket, *booking.ReceiptURL); old != constant.Empty {
			if err := s.s3.DeleteFile(ctx, bucket, constant.Empty, old); err != nil {
				log.Warn().Err(err).Str("object", old).Msg("failed to delete previous receipt")
			}
		}
	}

	res.BookingID = booking.ID
	res.ReceiptURL = url

	return res, nil
}
