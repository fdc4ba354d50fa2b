package utils

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/pkg/errors"

	"github.com/quillmail/ewsbox/pkg/base"
)

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9@._-]`)

// Archiver persists exported item payloads to an S3 bucket, keyed by account
// address and item ID.
type Archiver struct {
	Bucket string
	Prefix string

	S3     s3iface.S3API
	Logger *slog.Logger
}

// Archive uploads each exported item under <prefix>/<address>/<itemID>.eml
// and returns the object keys written.
func (a *Archiver) Archive(ctx context.Context, address string, items []base.ExportedItem) ([]string, error) {
	if a.S3 == nil {
		return nil, errors.New("requires S3 client")
	}
	if a.Bucket == "" {
		return nil, errors.New("requires bucket")
	}

	keys := make([]string, 0, len(items))
	for _, item := range items {
		key := a.objectKey(address, item.ID.ID)
		_, err := a.S3.PutObjectWithContext(ctx, &s3.PutObjectInput{
			Bucket: aws.String(a.Bucket),
			Key:    aws.String(key),
			Body:   bytes.NewReader(item.Data),
		})
		if err != nil {
			return keys, errors.Wrapf(err, "archiving item %s", item.ID.ID)
		}
		if a.Logger != nil {
			a.Logger.Debug("Archived item", slog.String("key", key))
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func (a *Archiver) objectKey(address, itemID string) string {
	key := fmt.Sprintf("%s/%s.eml", unsafeKeyChars.ReplaceAllString(address, "_"), unsafeKeyChars.ReplaceAllString(itemID, "_"))
	if a.Prefix != "" {
		return a.Prefix + "/" + key
	}
	return key
}
