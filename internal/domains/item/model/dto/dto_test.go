package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	availabilityModel "shareit/internal/domains/availability/model"
	bookingModel "shareit/internal/domains/booking/model"
	"shareit/internal/domains/item/model"
	"shareit/internal/domains/item/model/dto"
	gModel "shareit/shared/model"
)

func TestItemResponse_FromModel(t *testing.T) {
	created := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)
	item := model.Item{
		ID:        "i1",
		Name:      "Drill",
		Available: true,
		OwnerID:   "u1",
		Metadata:  gModel.New("u1", created),
	}

	var res dto.ItemResponse

	res.FromModel(item, availabilityModel.Projection{Next: &bookingModel.Booking{ID: "b2", BookerID: "u2"}})

	assert.Equal(t, "i1", res.ID)
	assert.Equal(t, "u1", res.CreatedBy)
	assert.Equal(t, "2030-01-01T09:00:00Z", res.CreatedAt)
	assert.Nil(t, res.LastBooking)
	require.NotNil(t, res.NextBooking)
	assert.Equal(t, "u2", res.NextBooking.BookerID)

	body, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"created_at":"2030-01-01T09:00:00Z"`)
	assert.Contains(t, string(body), `"created_by":"u1"`)
}
