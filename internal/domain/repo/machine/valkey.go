package machine

import (
	"context"
	"encoding/json"
	"errors"
	"syscall"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/openshift-assisted/machine-monitor/internal/common"
	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
)

const (
	categoryInternalError     = "valkey_internal_error"
	categoryValkeyClientError = "valkey_client"
)

// ValkeyRepo stores every machine as one field of a single hash.
type ValkeyRepo struct {
	client     valkey.Client
	key        string
	expiration time.Duration
}

func NewValkeyRepo(client valkey.Client, key string, expiration time.Duration) ValkeyRepo {
	return ValkeyRepo{
		client:     client,
		key:        key,
		expiration: expiration,
	}
}

func (r ValkeyRepo) WriteMachineState(ctx context.Context, state entity.MachineState) error {
	// Convert to local model
	model := mapToModels(state)

	// Marshal local model
	data, err := json.Marshal(model)
	if err != nil {
		return common.NewErrProcessingError(err, categoryInternalError, nil, "failed to marshal state of %s", state.Info.ID)
	}

	// Set property
	command := r.client.B().Hset().Key(r.key).FieldValue().FieldValue(state.Info.ID, string(data)).Build()

	err = r.client.Do(ctx, command).Error()
	if err != nil {
		return r.wrapClientError(err, "failed to set hkey")
	}

	if r.expiration <= 0 {
		return nil
	}

	// Set expiration
	expireCommand := r.client.B().Expire().Key(r.key).Seconds(int64(r.expiration.Seconds())).Build()

	err = r.client.Do(ctx, expireCommand).Error()
	if err != nil {
		return r.wrapClientError(err, "failed to set expiration")
	}

	return nil
}

func (r ValkeyRepo) GetMachineStates(ctx context.Context) ([]entity.MachineState, error) {
	command := r.client.B().Hgetall().Key(r.key).Build()

	resp := r.client.Do(ctx, command)

	err := resp.Error()
	if err != nil {
		return nil, r.wrapClientError(err, "failed to get all properties")
	}

	result, err := resp.AsStrMap()
	if err != nil {
		return nil, common.NewErrProcessingError(err, categoryInternalError, nil, "unexpected hgetall response type for %s", r.key)
	}

	ret := make([]entity.MachineState, 0, len(result))

	for machineID, jsonState := range result {
		model := State{}

		err := json.Unmarshal([]byte(jsonState), &model)
		if err != nil {
			return nil, common.NewErrProcessingError(err, categoryInternalError, nil, "failed to unmarshal hgetall response for %s %s", r.key, machineID)
		}

		state, err := mapToEntity(machineID, model)
		if err != nil {
			return nil, common.NewErrProcessingError(err, categoryInternalError, nil, "invalid stored data for %s", machineID)
		}

		ret = append(ret, state)
	}

	return ret, nil
}

func (r ValkeyRepo) wrapClientError(err error, reason string) error {
	if r.isRetryable(err) {
		return common.NewRetryableErrProcessingError(err, categoryValkeyClientError, nil, "%s", reason)
	}

	return common.NewErrProcessingError(err, categoryValkeyClientError, nil, "%s", reason)
}

func (r ValkeyRepo) isRetryable(err error) bool {
	// Network error
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	// Valkey specific error
	vErr, isValkeyError := valkey.IsValkeyErr(err)
	if !isValkeyError {
		return false
	}

	return vErr.IsTryAgain()
}
