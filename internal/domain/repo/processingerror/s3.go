package processingerror

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/common/version"

	"github.com/openshift-assisted/machine-monitor/internal/log"
	"github.com/openshift-assisted/machine-monitor/pkg/pipeline"
)

const (
	unknownHostname = "<unknown>"

	keyTemplate = "<prefix>/<year>/<month>/<day>/<transport>/<category>/<id>.json"
)

var ErrNilOrigin = errors.New("nil origin")

// S3Writer dumps rejected payloads, with the reason they were rejected, to a dead letter bucket.
type S3Writer struct {
	s3client *s3.Client
	clock    clockwork.Clock

	bucket string
	prefix string

	hostname string
}

func NewS3Writer(s3client *s3.Client, clock clockwork.Clock, bucket string, prefix string) S3Writer {
	hostname, err := os.Hostname()
	if err != nil {
		log.Logger().Error(err, "failed to get hostname, falling backing to "+unknownHostname)

		hostname = unknownHostname
	}

	return S3Writer{
		s3client: s3client,
		clock:    clock,
		bucket:   bucket,
		prefix:   prefix,
		hostname: hostname,
	}
}

func (r S3Writer) WriteProcessingError(ctx context.Context, pErr pipeline.ErrProcessingError) error {
	// Create ProcessingError
	obj, err := r.createProcessingError(pErr)
	if err != nil {
		return fmt.Errorf("failed to create local model: %w", err)
	}

	// Marshal ProcessingError
	b, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("failed to marshal local model: %w", err)
	}

	// Compute object key
	key, err := r.computeObjectKey(pErr, uuid.NewString())
	if err != nil {
		return fmt.Errorf("failed to compute object key: %w", err)
	}

	// Write file
	params := &s3.PutObjectInput{
		Bucket: &r.bucket,
		Key:    &key,
		Body:   bytes.NewReader(b),
	}

	_, err = r.s3client.PutObject(ctx, params)
	if err != nil {
		return pipeline.NewErrRetryableError(fmt.Errorf("failed to write in s3: %w", err))
	}

	return nil
}

func (r S3Writer) createProcessingError(pErr pipeline.ErrProcessingError) (ProcessingError, error) {
	if pErr.Origin == nil {
		return ProcessingError{}, ErrNilOrigin
	}

	ret := ProcessingError{
		ProcessingContext: ProcessingContext{
			Component: Component{
				Version:  version.Version,
				Branch:   version.Branch,
				Revision: version.Revision,
			},
			Time: r.clock.Now().UTC(),
			Host: r.hostname,
		},
		Sources: Sources{
			Main: Source{
				Transport: pErr.Origin.Transport,
				Key:       pErr.Origin.Key,
				Received:  pErr.Origin.Received,
				Topic:     pErr.Origin.Topic,
				Partition: pErr.Origin.Partition,
				Offset:    pErr.Origin.Offset,
				Payload:   pErr.Origin.Payload,
			},
			Additional: make([]KeyValue, 0, len(pErr.AdditionalInputs)),
		},
		Reason: Reason{
			Category:  pErr.Category,
			Error:     pErr.Error(),
			Retryable: errors.Is(pErr, pipeline.ErrRetryableError),
		},
	}

	for _, input := range pErr.AdditionalInputs {
		ret.Sources.Additional = append(ret.Sources.Additional, KeyValue{
			Source: input.Source,
			Key:    input.Key,
			Value:  input.Value,
		})
	}

	return ret, nil
}

func (r S3Writer) computeObjectKey(pErr pipeline.ErrProcessingError, id string) (string, error) {
	if pErr.Origin == nil {
		return "", ErrNilOrigin
	}

	received := pErr.Origin.Received.UTC()

	category := pErr.Category
	if category == "" {
		category = pipeline.UnknownCategory
	}

	template := strings.NewReplacer(
		"<prefix>", r.prefix,
		"<year>", fmt.Sprintf("%04d", received.Year()),
		"<month>", fmt.Sprintf("%02d", received.Month()),
		"<day>", fmt.Sprintf("%02d", received.Day()),
		"<transport>", pErr.Origin.Transport,
		"<category>", category,
		"<id>", id,
	)

	return template.Replace(keyTemplate), nil
}
