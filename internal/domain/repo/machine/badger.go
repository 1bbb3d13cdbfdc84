package machine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/openshift-assisted/machine-monitor/internal/common"
	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
)

const categoryBadgerError = "badger_error"

var (
	ErrNotFound = errors.New("not found")

	keyPrefix = []byte("machine:")
)

// BadgerRepo stores every machine under its own key in an embedded badger database.
type BadgerRepo struct {
	db         *badger.DB
	expiration time.Duration
}

func NewBadgerRepo(db *badger.DB, expiration time.Duration) BadgerRepo {
	return BadgerRepo{
		db:         db,
		expiration: expiration,
	}
}

func machineKey(id string) []byte {
	return append(bytes.Clone(keyPrefix), id...)
}

func (r BadgerRepo) WriteMachineState(_ context.Context, state entity.MachineState) error {
	data, err := json.Marshal(mapToModels(state))
	if err != nil {
		return common.NewErrProcessingError(err, categoryBadgerError, nil, "failed to marshal state of %s", state.Info.ID)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(machineKey(state.Info.ID), data)
		if r.expiration > 0 {
			entry = entry.WithTTL(r.expiration)
		}

		return txn.SetEntry(entry)
	})
	if err != nil {
		if errors.Is(err, badger.ErrConflict) {
			return common.NewRetryableErrProcessingError(err, categoryBadgerError, nil, "failed to write state of %s", state.Info.ID)
		}

		return common.NewErrProcessingError(err, categoryBadgerError, nil, "failed to write state of %s", state.Info.ID)
	}

	return nil
}

func (r BadgerRepo) GetMachineState(_ context.Context, id string) (entity.MachineState, error) {
	var ret entity.MachineState

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(machineKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}

			return err
		}

		return item.Value(func(v []byte) error {
			ret, err = decodeState(id, v)

			return err
		})
	})
	if err != nil {
		return entity.MachineState{}, fmt.Errorf("failed to get state of %s: %w", id, err)
	}

	return ret, nil
}

func (r BadgerRepo) GetMachineStates(_ context.Context) ([]entity.MachineState, error) {
	ret := make([]entity.MachineState, 0)

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = keyPrefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			id := string(bytes.TrimPrefix(item.Key(), keyPrefix))

			err := item.Value(func(v []byte) error {
				state, err := decodeState(id, v)
				if err != nil {
					return err
				}

				ret = append(ret, state)

				return nil
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, common.NewErrProcessingError(err, categoryBadgerError, nil, "failed to list machine states")
	}

	return ret, nil
}

func decodeState(id string, v []byte) (entity.MachineState, error) {
	model := State{}

	err := json.Unmarshal(v, &model)
	if err != nil {
		return entity.MachineState{}, fmt.Errorf("failed to unmarshal state of %s: %w", id, err)
	}

	return mapToEntity(id, model)
}
