package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cosmicfit-api/models"
)

func TestLogActivityValidation(t *testing.T) {
	svc := NewActivityService(newTestDB(t), zap.NewNop())
	date := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input ActivityInput
		ok    bool
	}{
		{"distance only", ActivityInput{ActivityType: "run", Distance: floatPtr(5), Date: date}, true},
		{"duration only", ActivityInput{ActivityType: "yoga", Duration: intPtr(30), Date: date}, true},
		{"zero distance with positive duration", ActivityInput{ActivityType: "run", Distance: floatPtr(0), Duration: intPtr(30), Date: date}, true},
		{"neither given", ActivityInput{ActivityType: "run", Date: date}, false},
		{"both zero", ActivityInput{ActivityType: "run", Distance: floatPtr(0), Duration: intPtr(0), Date: date}, false},
		{"negative distance", ActivityInput{ActivityType: "run", Distance: floatPtr(-1), Date: date}, false},
		{"distance over bound", ActivityInput{ActivityType: "run", Distance: floatPtr(201), Date: date}, false},
		{"duration over a day", ActivityInput{ActivityType: "yoga", Duration: intPtr(1441), Date: date}, false},
		{"activity type too short", ActivityInput{ActivityType: "x", Distance: floatPtr(5), Date: date}, false},
		{"unrecognized type accepted", ActivityInput{ActivityType: "parkour", Distance: floatPtr(5), Date: date}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Log(testWallet, tt.input)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrValidation)
			}
		})
	}
}

func TestLogActivityFixesTokenAward(t *testing.T) {
	db := newTestDB(t)
	svc := NewActivityService(db, zap.NewNop())

	activity, err := svc.Log(testWallet, ActivityInput{
		ActivityType: "swim",
		Distance:     floatPtr(5),
		Date:         time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, 15, activity.TokensAwarded)
	assert.Equal(t, models.ActivityStatusPending, activity.Status)

	var stored models.Activity
	require.NoError(t, db.First(&stored, activity.ID).Error)
	assert.Equal(t, 15, stored.TokensAwarded)
}

func TestListByWalletNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewActivityService(db, zap.NewNop())

	for i := 0; i < 3; i++ {
		_, err := svc.Log(testWallet, ActivityInput{
			ActivityType: "walk",
			Duration:     intPtr(30 + i),
			Date:         time.Now(),
		})
		require.NoError(t, err)
	}
	// Another wallet's activities stay out of the listing.
	_, err := svc.Log("0x00000000219ab540356cBB839Cbe05303d7705Fa", ActivityInput{
		ActivityType: "walk",
		Duration:     intPtr(10),
		Date:         time.Now(),
	})
	require.NoError(t, err)

	list, err := svc.ListByWallet(testWallet)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, intPtr(32), list[0].Duration)
	assert.Equal(t, intPtr(30), list[2].Duration)

	count, err := svc.CountByWallet(testWallet)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
