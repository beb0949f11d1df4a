package entity

import (
	"testing"
	"time"

	"github.com/jmuthomi/tillpoint-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
)

func TestRecordPurchase(t *testing.T) {
	c := &Customer{CustomerType: enum.CustomerTypeRegular}
	now := time.Now()

	c.RecordPurchase(250_00, now)

	assert.Equal(t, int64(1), c.TotalOrders)
	assert.Equal(t, int64(250_00), c.TotalSpent)
	assert.Equal(t, int64(250_00), c.AverageOrder)
	assert.Equal(t, int64(2), c.LoyaltyPoints, "one point per 100.00 spent")
	assert.Equal(t, &now, c.LastPurchase)
	assert.Equal(t, enum.CustomerTypeRegular, c.CustomerType)

	c.RecordPurchase(150_00, now)

	assert.Equal(t, int64(2), c.TotalOrders)
	assert.Equal(t, int64(400_00), c.TotalSpent)
	assert.Equal(t, int64(200_00), c.AverageOrder)
	assert.Equal(t, int64(3), c.LoyaltyPoints)
}

func TestRecordPurchase_TierPromotion(t *testing.T) {
	c := &Customer{CustomerType: enum.CustomerTypeRegular}

	c.RecordPurchase(TierThresholdVIP, time.Now())
	assert.Equal(t, enum.CustomerTypeVIP, c.CustomerType)

	c.RecordPurchase(TierThresholdWholesale-TierThresholdVIP, time.Now())
	assert.Equal(t, enum.CustomerTypeWholesale, c.CustomerType)
}

func TestRecordPurchase_NeverDowngrades(t *testing.T) {
	c := &Customer{CustomerType: enum.CustomerTypeWholesale}

	c.RecordPurchase(10_00, time.Now())
	assert.Equal(t, enum.CustomerTypeWholesale, c.CustomerType)
}

func TestPointsEarned(t *testing.T) {
	assert.Equal(t, int64(0), PointsEarned(99_99))
	assert.Equal(t, int64(1), PointsEarned(100_00))
	assert.Equal(t, int64(10), PointsEarned(1050_00))
	assert.Equal(t, int64(0), PointsEarned(0))
	assert.Equal(t, int64(0), PointsEarned(-500_00), "refunds earn nothing")
}

func TestTierFor(t *testing.T) {
	assert.Equal(t, enum.CustomerTypeRegular, TierFor(0))
	assert.Equal(t, enum.CustomerTypeRegular, TierFor(TierThresholdVIP-1))
	assert.Equal(t, enum.CustomerTypeVIP, TierFor(TierThresholdVIP))
	assert.Equal(t, enum.CustomerTypeVIP, TierFor(TierThresholdWholesale-1))
	assert.Equal(t, enum.CustomerTypeWholesale, TierFor(TierThresholdWholesale))
}
