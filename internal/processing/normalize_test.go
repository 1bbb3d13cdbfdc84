package processing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
	"github.com/openshift-assisted/machine-monitor/internal/processing"
	"github.com/openshift-assisted/machine-monitor/pkg/pipeline"
)

func inbound() entity.InboundSnapshot {
	return entity.InboundSnapshot{
		ID:     "volvo_sweden",
		Status: "online",
		Data: map[string]any{
			"temperature": 42.5,
			"pressure":    2.1,
			"speed":       1450.0,
			"disk_volume": 70.0,
			"system_info": map[string]any{"os": "linux"},
		},
		Timestamp: "2025-03-03T12:00:00Z",
	}
}

func TestNormalize(t *testing.T) {
	normalizer, err := processing.NewNormalizer()
	require.NoError(t, err)

	res, err := normalizer.Normalize(inbound())
	require.NoError(t, err)

	assert.Equal(t, "volvo_sweden", res.MachineID)
	assert.Equal(t, entity.StatusHealthy, res.ReportedStatus, "legacy alias is normalized")
	assert.Equal(t, time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC), res.SampledAt)
	assert.InDelta(t, 42.5, *res.Snapshot.Temperature, 0.001)
	assert.Equal(t, map[string]any{"system_info": map[string]any{"os": "linux"}}, res.Snapshot.Aux, "auxiliary fields are kept")
}

func TestNormalizeOptionalFields(t *testing.T) {
	normalizer, err := processing.NewNormalizer()
	require.NoError(t, err)

	in := inbound()
	in.Status = ""
	in.Timestamp = "2025-03-03 12:00:00.123456"
	in.Data = map[string]any{"temperature": nil, "uptime": "3 days"}

	res, err := normalizer.Normalize(in)
	require.NoError(t, err)

	assert.Empty(t, res.ReportedStatus)
	assert.True(t, res.Snapshot.Empty(), "null readings mean no signal")
	assert.Equal(t, time.Date(2025, 3, 3, 12, 0, 0, 123456000, time.UTC), res.SampledAt)
}

func TestNormalizeRejects(t *testing.T) {
	normalizer, err := processing.NewNormalizer()
	require.NoError(t, err)

	testcases := []struct {
		name   string
		mutate func(*entity.InboundSnapshot)
	}{
		{name: "missing id", mutate: func(in *entity.InboundSnapshot) { in.ID = "" }},
		{name: "non printable id", mutate: func(in *entity.InboundSnapshot) { in.ID = "volvo\x00" }},
		{name: "unknown status", mutate: func(in *entity.InboundSnapshot) { in.Status = "purple" }},
		{name: "missing data", mutate: func(in *entity.InboundSnapshot) { in.Data = nil }},
		{name: "missing timestamp", mutate: func(in *entity.InboundSnapshot) { in.Timestamp = "" }},
		{name: "invalid timestamp", mutate: func(in *entity.InboundSnapshot) { in.Timestamp = "yesterday" }},
		{name: "string reading", mutate: func(in *entity.InboundSnapshot) { in.Data["temperature"] = "hot" }},
		{name: "disk above 100", mutate: func(in *entity.InboundSnapshot) { in.Data["disk_volume"] = 120.0 }},
		{name: "negative pressure", mutate: func(in *entity.InboundSnapshot) { in.Data["pressure"] = -1.0 }},
		{name: "below absolute zero", mutate: func(in *entity.InboundSnapshot) { in.Data["temperature"] = -300.0 }},
		{name: "negative speed", mutate: func(in *entity.InboundSnapshot) { in.Data["speed"] = -5.0 }},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			in := inbound()
			tc.mutate(&in)

			_, err := normalizer.Normalize(in)
			require.Error(t, err)

			assert.Equal(t, processing.CategoryInvalidSnapshot, pipeline.AsProcessingError(err).Category)
		})
	}
}
