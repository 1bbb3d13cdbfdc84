package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/openshift-assisted/machine-monitor/internal/log"
	"github.com/openshift-assisted/machine-monitor/internal/status"
)

// criteriaBody is the wire shape of the thresholds, timeouts in seconds.
type criteriaBody struct {
	Temperature           status.Band      `json:"temperature"`
	Pressure              status.Band      `json:"pressure"`
	DiskVolume            status.Band      `json:"disk_volume"`
	Speed                 status.SpeedBand `json:"speed"`
	StaleTimeoutSeconds   float64          `json:"stale_timeout_seconds" validate:"gt=0"`
	OfflineTimeoutSeconds float64          `json:"offline_timeout_seconds" validate:"gt=0,gtefield=StaleTimeoutSeconds"`
}

func toCriteriaBody(t status.Thresholds) criteriaBody {
	return criteriaBody{
		Temperature:           t.Temperature,
		Pressure:              t.Pressure,
		DiskVolume:            t.DiskVolume,
		Speed:                 t.Speed,
		StaleTimeoutSeconds:   t.StaleTimeout.Seconds(),
		OfflineTimeoutSeconds: t.OfflineTimeout.Seconds(),
	}
}

func (b criteriaBody) thresholds() status.Thresholds {
	return status.Thresholds{
		Temperature:    b.Temperature,
		Pressure:       b.Pressure,
		DiskVolume:     b.DiskVolume,
		Speed:          b.Speed,
		StaleTimeout:   time.Duration(b.StaleTimeoutSeconds * float64(time.Second)),
		OfflineTimeout: time.Duration(b.OfflineTimeoutSeconds * float64(time.Second)),
	}
}

func (s server) getCriteria(c *gin.Context) {
	c.JSON(http.StatusOK, toCriteriaBody(s.deps.Criteria.Get()))
}

// putCriteria replaces the thresholds in effect. Fields missing from the body keep their current value.
func (s server) putCriteria(c *gin.Context) {
	body := toCriteriaBody(s.deps.Criteria.Get())

	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Failed to read body"})

		return
	}

	err = json.Unmarshal(raw, &body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid JSON payload"})

		return
	}

	err = s.validate.Struct(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": validationDetail(err)})

		return
	}

	err = s.deps.Criteria.Set(body.thresholds())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})

		return
	}

	log.Logger().Info("Criteria updated", "criteria", body)

	// statuses follow the new thresholds right away
	if s.deps.Refresher != nil {
		err = s.deps.Refresher.Refresh(c.Request.Context())
		if err != nil {
			log.Logger().Error(err, "Failed to dispatch reclassified machines")
		}
	}

	c.JSON(http.StatusOK, toCriteriaBody(s.deps.Criteria.Get()))
}

func validationDetail(err error) []string {
	validationErrors := validator.ValidationErrors{}
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	ret := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		ret = append(ret, fe.Namespace()+" failed on "+fe.Tag())
	}

	return ret
}
