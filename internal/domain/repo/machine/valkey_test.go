package machine_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/valkey-io/valkey-go"

	"github.com/openshift-assisted/machine-monitor/internal/config"
	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
	"github.com/openshift-assisted/machine-monitor/internal/domain/repo/machine"
	"github.com/openshift-assisted/machine-monitor/internal/factory"
	"github.com/openshift-assisted/machine-monitor/pkg/pipeline"
)

const hashKey = "machine-monitor:machines"

// Helper

func startValkey(t *testing.T) testcontainers.Container {
	req := testcontainers.ContainerRequest{
		Image:        "quay.io/sclorg/valkey-7-c10s:bf91acf0827dc5db216164aafe3d34beb245dcec",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections tcp"),
	}
	ret, err := testcontainers.GenericContainer(context.Background(), testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})

	testcontainers.CleanupContainer(t, ret)

	require.NoError(t, err, "failed to start valkey instance")

	return ret
}

func createValkeyClient(t *testing.T, container testcontainers.Container) valkey.Client {
	endpoint, err := container.Endpoint(context.Background(), "")
	require.NoError(t, err, "failed to get valkey endpoint")

	ret, closeFunc, err := factory.CreateValkeyClient(context.Background(), config.Valkey{URL: endpoint})
	require.NoError(t, err, "failed to create valkey client")

	t.Cleanup(func() {
		_ = closeFunc(context.Background())
	})

	return ret
}

func machineState(id string, temperature float64) entity.MachineState {
	return entity.MachineState{
		Info: entity.MachineInfo{
			ID:         id,
			Name:       "Volvo Group",
			Location:   "Sweden",
			SystemType: "Automated System 4000",
			Latitude:   59.3293,
			Longitude:  18.0686,
		},
		Status: entity.StatusHealthy,
		Snapshot: entity.SensorSnapshot{
			Readings: entity.Readings{Temperature: entity.Float(temperature), DiskVolume: entity.Float(70)},
			Aux:      map[string]any{"uptime": "2 days"},
		},
		HasData:      true,
		LastSeen:     time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC),
		RegisteredAt: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

// Test suite definition

type ValkeyDataIntegrationTestSuite struct {
	suite.Suite

	client    valkey.Client
	repo      machine.ValkeyRepo
	container testcontainers.Container
}

func (s *ValkeyDataIntegrationTestSuite) SetupSuite() {
	t := s.T()

	s.container = startValkey(t)
	s.client = createValkeyClient(t, s.container)
	s.repo = machine.NewValkeyRepo(s.client, hashKey, time.Minute)
}

func (s *ValkeyDataIntegrationTestSuite) TearDownTest() {
	ctx := context.Background()
	command := s.client.B().Flushall().Build()

	err := s.client.Do(ctx, command).Error()
	require.NoError(s.T(), err, "failed to clean valkey")
}

// Run test

func TestValkeyDataIntegrationTestSuite(t *testing.T) {
	t.Parallel()

	suite.Run(t, new(ValkeyDataIntegrationTestSuite))
}

// Test

func (s *ValkeyDataIntegrationTestSuite) TestInsertAndRead() {
	ctx := context.Background()
	t := s.T()

	state := machineState("volvo_sweden", 42)
	err := s.repo.WriteMachineState(ctx, state)
	require.NoError(t, err, "failed to write machine state")

	res, err := s.repo.GetMachineStates(ctx)
	require.NoError(t, err, "failed to get machine states")

	require.Len(t, res, 1, "unexpected number of machine state: %d", len(res))
	assert.Equal(t, state, res[0], "different machine state")
}

func (s *ValkeyDataIntegrationTestSuite) TestOverwriteKey() {
	ctx := context.Background()
	t := s.T()

	err := s.repo.WriteMachineState(ctx, machineState("volvo_sweden", 42))
	require.NoError(t, err, "failed to write machine state (1)")

	state := machineState("volvo_sweden", 85)
	state.Status = entity.StatusCritical

	err = s.repo.WriteMachineState(ctx, state)
	require.NoError(t, err, "failed to write machine state (2)")

	res, err := s.repo.GetMachineStates(ctx)
	require.NoError(t, err, "failed to get machine states")

	require.Len(t, res, 1, "unexpected number of machine state: %d", len(res))
	assert.Equal(t, state, res[0], "different machine state")
}

func (s *ValkeyDataIntegrationTestSuite) TestGetEmpty() {
	ctx := context.Background()
	t := s.T()

	res, err := s.repo.GetMachineStates(ctx)
	require.NoError(t, err, "failed to get machine states")

	require.Len(t, res, 0, "unexpected number of machine state: %d", len(res))
}

func (s *ValkeyDataIntegrationTestSuite) TestExpiration() {
	ctx := context.Background()
	t := s.T()

	err := s.repo.WriteMachineState(ctx, machineState("volvo_sweden", 42))
	require.NoError(t, err, "failed to write machine state")

	// This is breaking black-box testing but is convenient...
	command := s.client.B().Ttl().Key(hashKey).Build()

	resp := s.client.Do(ctx, command)
	require.NoError(t, resp.Error(), "failed to get TTL")

	ttl, err := resp.AsInt64() // ttl in second
	require.NoError(t, err, "TTL is not a int64")

	// -2 if key does not exist, -1 if key exists but has no TTL
	assert.Greater(t, ttl, int64(45), "ttl is supposed to be 1min")
}

func TestLosingConnection(t *testing.T) {
	t.Parallel()

	container := startValkey(t)
	client := createValkeyClient(t, container)
	repo := machine.NewValkeyRepo(client, hashKey, time.Minute)

	// stop the container
	err := container.Terminate(context.Background())
	require.NoError(t, err, "failed to terminate valkey")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err = repo.GetMachineStates(ctx)
	require.Error(t, err, "get machine states should fail")

	require.ErrorIs(t, err, pipeline.ErrRetryableError, "error should be retryable: %v", reflect.TypeOf(err))
}
