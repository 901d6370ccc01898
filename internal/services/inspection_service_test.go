package services

import (
	"errors"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecentInspectionsOrderingAndLimit(t *testing.T) {
	db := testutil.NewDB(t)
	for i := 0; i < 15; i++ {
		createInspection(t, db, i*3, "", models.StatusSafe)
	}
	// Same timestamp as the newest row, inserted later.
	tie := createInspection(t, db, 0, "TIE-0001", models.StatusSafe)

	svc := NewInspectionService(db)
	recent, err := svc.Recent(10)
	require.NoError(t, err)
	require.Len(t, recent, 10)

	assert.Equal(t, tie.ID, recent[0].ID)
	for i := 1; i < len(recent); i++ {
		prev, cur := recent[i-1], recent[i]
		assert.False(t, cur.Timestamp.After(prev.Timestamp), "row %d is newer than row %d", i, i-1)
		if cur.Timestamp.Equal(prev.Timestamp) {
			assert.Less(t, cur.ID, prev.ID)
		}
	}

	none, err := svc.Recent(0)
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := svc.Recent(100)
	require.NoError(t, err)
	assert.Len(t, all, 16)
}

func TestListInspectionsFilters(t *testing.T) {
	db := testutil.NewDB(t)
	createInspection(t, db, 0, "BXP-8735", models.StatusSafe)
	createInspection(t, db, 1, "DPJ-2877", models.StatusUnsafe)
	createInspection(t, db, 2, "", models.StatusUnsafe)
	createInspection(t, db, 3, "bxq_100", models.StatusSafe)

	svc := NewInspectionService(db)

	unsafe, err := svc.List(InspectionFilter{Status: models.StatusUnsafe})
	require.NoError(t, err)
	assert.Len(t, unsafe, 2)

	byPlate, err := svc.List(InspectionFilter{Plate: "bxp"})
	require.NoError(t, err)
	require.Len(t, byPlate, 1)
	assert.Equal(t, "BXP-8735", *byPlate[0].Plate)

	// LIKE wildcards in the search text are matched literally.
	wildcard, err := svc.List(InspectionFilter{Plate: "_"})
	require.NoError(t, err)
	require.Len(t, wildcard, 1)
	assert.Equal(t, "bxq_100", *wildcard[0].Plate)
}

func TestGetInspection(t *testing.T) {
	db := testutil.NewDB(t)
	insp := createInspection(t, db, 0, "BXP-8735", models.StatusSafe)

	svc := NewInspectionService(db)
	got, err := svc.Get(insp.ID)
	require.NoError(t, err)
	assert.Equal(t, "BXP-8735", got.PlateLabel())

	_, err = svc.Get(insp.ID + 100)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRecordInspection(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewInspectionService(db)
	ts := baseTime.Add(time.Hour)

	t.Run("safe verdict opens no alert", func(t *testing.T) {
		insp, alert, err := svc.Record(&dto.RecordInspectionRequest{
			Timestamp:  &ts,
			Plate:      strPtr("  "),
			Location:   "Highway 101 - Toll Plaza",
			Status:     "SAFE",
			Confidence: 88,
		})
		require.NoError(t, err)
		assert.Nil(t, alert)
		assert.Nil(t, insp.Plate)
		assert.Equal(t, models.StatusSafe, insp.Status)
		assert.True(t, insp.Timestamp.Equal(ts))
		assert.Empty(t, insp.DefectList())
	})

	t.Run("unsafe verdict opens a pending alert", func(t *testing.T) {
		insp, alert, err := svc.Record(&dto.RecordInspectionRequest{
			Plate:      strPtr("GTR-1567"),
			Location:   "Highway I-95 North - Checkpoint B",
			Camera:     strPtr("CAM-004"),
			Status:     models.StatusUnsafe,
			Confidence: 78,
			Defects:    []string{"Flat Spot", " Under Inflation ", ""},
		})
		require.NoError(t, err)
		require.NotNil(t, alert)
		assert.Equal(t, insp.ID, alert.InspectionID)
		assert.Equal(t, models.AlertPending, alert.Status)
		assert.Equal(t, []string{"Flat Spot", "Under Inflation"}, insp.DefectList())

		pending, err := NewAlertService(db).CountByStatus(models.AlertPending)
		require.NoError(t, err)
		assert.Equal(t, int64(1), pending)
	})

	t.Run("invalid payloads are rejected", func(t *testing.T) {
		cases := []dto.RecordInspectionRequest{
			{Location: "", Status: models.StatusSafe, Confidence: 50},
			{Location: "Gate", Status: "maybe", Confidence: 50},
			{Location: "Gate", Status: models.StatusSafe, Confidence: 101},
			{Location: "Gate", Status: models.StatusSafe, Confidence: -1},
		}
		for _, req := range cases {
			_, _, err := svc.Record(&req)
			assert.True(t, errors.Is(err, ErrInvalidInspection), "payload %+v", req)
		}
	})
}
