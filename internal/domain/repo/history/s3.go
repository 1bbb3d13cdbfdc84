package history

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/openshift-assisted/machine-monitor/internal/common"
	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
)

const (
	categoryS3Error = "s3_history"

	keyTemplate = "<prefix>/<date>/<machine>/<timestamp>-<suffix>.json"
)

var ErrInvalidMachineID = errors.New("invalid machine id for object key")

// S3Writer archives every status transition as one object.
type S3Writer struct {
	s3client *s3.Client

	bucket string
	prefix string
}

func NewS3Writer(s3client *s3.Client, bucket string, prefix string) S3Writer {
	return S3Writer{
		s3client: s3client,
		bucket:   bucket,
		prefix:   prefix,
	}
}

func (s S3Writer) WriteStatusTransition(ctx context.Context, transition entity.StatusTransition) error {
	key, err := s.computeObjectKey(transition, uuid.NewString())
	if err != nil {
		return common.NewErrProcessingError(err, categoryS3Error, nil, "failed to compute object key")
	}

	b, err := json.Marshal(transition)
	if err != nil {
		return common.NewErrProcessingError(err, categoryS3Error, nil, "failed to marshal transition")
	}

	params := &s3.PutObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
		Body:   bytes.NewReader(b),
	}

	_, err = s.s3client.PutObject(ctx, params)
	if err != nil {
		return common.NewRetryableErrProcessingError(err, categoryS3Error, nil, "failed to write %s in s3", key)
	}

	return nil
}

func (s S3Writer) computeObjectKey(transition entity.StatusTransition, suffix string) (string, error) {
	if transition.MachineID == "" || strings.ContainsAny(transition.MachineID, "/\\") || strings.HasPrefix(transition.MachineID, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidMachineID, transition.MachineID)
	}

	ts := transition.Timestamp.UTC()

	template := strings.NewReplacer(
		"<prefix>", s.prefix,
		"<date>", ts.Format("2006-01-02"),
		"<machine>", transition.MachineID,
		"<timestamp>", fmt.Sprintf("%d", ts.UnixMilli()),
		"<suffix>", suffix,
	)

	return template.Replace(keyTemplate), nil
}
