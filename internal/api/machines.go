package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
	"github.com/openshift-assisted/machine-monitor/internal/log"
	"github.com/openshift-assisted/machine-monitor/internal/processing"
	"github.com/openshift-assisted/machine-monitor/pkg/pipeline"
)

const (
	defaultHistoryHours = 24
	maxHistoryHours     = 24 * 30
	maxPushBody         = 1 << 20
)

var errNotFound = gin.H{"detail": "Machine not found"}

func (s server) listMachines(c *gin.Context) {
	c.JSON(http.StatusOK, s.deps.Facade.ListAll())
}

func (s server) getMachine(c *gin.Context) {
	state, found := s.deps.Facade.GetOne(c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, errNotFound)

		return
	}

	c.JSON(http.StatusOK, state)
}

func (s server) getHistory(c *gin.Context) {
	if s.deps.History == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "History is not recorded"})

		return
	}

	id := c.Param("id")

	_, found := s.deps.Facade.GetOne(id)
	if !found {
		c.JSON(http.StatusNotFound, errNotFound)

		return
	}

	hours := defaultHistoryHours

	raw := c.Query("hours")
	if raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > maxHistoryHours {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "hours must be an integer between 1 and " + strconv.Itoa(maxHistoryHours)})

			return
		}

		hours = parsed
	}

	since := s.deps.Clock.Now().Add(-time.Duration(hours) * time.Hour)

	transitions, err := s.deps.History.GetStatusTransitions(c.Request.Context(), id, since)
	if err != nil {
		log.Logger().Error(err, "Failed to read history", "machineID", id)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to read history"})

		return
	}

	c.JSON(http.StatusOK, gin.H{
		"machine_id": id,
		"history":    transitions,
		"hours":      hours,
	})
}

type pushRequest struct {
	Status    string         `json:"status"`
	Data      map[string]any `json:"data"`
	Timestamp string         `json:"timestamp"`
}

// pushStatus feeds one snapshot reported by a machine through the processing.
func (s server) pushStatus(c *gin.Context) {
	if s.deps.Ingest == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "Push ingestion is disabled"})

		return
	}

	id := c.Param("id")

	raw, err := readBody(c)
	if err != nil {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"detail": err.Error()})

		return
	}

	req := pushRequest{}

	err = json.Unmarshal(raw, &req)
	if err != nil {
		origin := pipeline.Origin{Transport: processing.TransportHTTP, Key: id, Payload: raw, Received: s.deps.Clock.Now().UTC()}
		s.processError(c, pipeline.NewErrProcessingError(err, pipeline.UnmarshalErrorCategory, nil).WithOrigin(origin))
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid JSON payload"})

		return
	}

	if req.Timestamp == "" {
		req.Timestamp = entity.FormatTimestamp(s.deps.Clock.Now())
	}

	in := entity.InboundSnapshot{
		ID:        id,
		Status:    req.Status,
		Data:      req.Data,
		Timestamp: req.Timestamp,
	}

	err = s.deps.Ingest.Process(c.Request.Context(), in)
	if err != nil {
		pErr := pipeline.AsProcessingError(err)
		s.processError(c, pErr.WithOrigin(processing.Origin(processing.TransportHTTP, in, s.deps.Clock)))

		if pErr.Category == processing.CategoryInvalidSnapshot {
			c.JSON(http.StatusBadRequest, gin.H{"detail": pErr.Error()})

			return
		}

		state, found := s.deps.Facade.GetOne(id)
		if !found {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to process snapshot"})

			return
		}

		// the registry is up to date, a sink failed
		c.JSON(http.StatusAccepted, gin.H{"message": "Status recorded, delivery incomplete", "machine_id": id, "status": state.Status})

		return
	}

	state, _ := s.deps.Facade.GetOne(id)

	c.JSON(http.StatusOK, gin.H{"message": "Status updated successfully", "machine_id": id, "status": state.Status})
}

func (s server) processError(c *gin.Context, pErr pipeline.ErrProcessingError) {
	if s.deps.ErrorProcessing == nil {
		return
	}

	err := s.deps.ErrorProcessing.Process(c.Request.Context(), pErr)
	if err != nil {
		log.Logger().Error(err, "Error pipeline failed", "category", pErr.Category)
	}
}

var errBodyTooLarge = errors.New("request body too large")

func readBody(c *gin.Context) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPushBody)

	raw, err := c.GetRawData()
	if err != nil {
		return nil, errBodyTooLarge
	}

	return raw, nil
}
