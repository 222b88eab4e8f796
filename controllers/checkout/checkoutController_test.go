package checkoutController

import (
	"ccw/database"
	"ccw/models"
	"ccw/utils"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDb(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	database.RunMigrations(db)
	return db
}

func intPtr(v int) *int              { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func TestPromoEligible(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		promo models.PromoCode
		want  bool
	}{
		{
			name:  "active with no constraints",
			promo: models.PromoCode{IsActive: true},
			want:  true,
		},
		{
			name:  "inactive",
			promo: models.PromoCode{IsActive: false},
			want:  false,
		},
		{
			name:  "under the usage cap",
			promo: models.PromoCode{IsActive: true, MaxUses: intPtr(10), UsedCount: 9},
			want:  true,
		},
		{
			name:  "usage cap reached",
			promo: models.PromoCode{IsActive: true, MaxUses: intPtr(10), UsedCount: 10},
			want:  false,
		},
		{
			name:  "not yet valid",
			promo: models.PromoCode{IsActive: true, ValidFrom: timePtr(now.Add(time.Hour))},
			want:  false,
		},
		{
			name:  "expired",
			promo: models.PromoCode{IsActive: true, ValidUntil: timePtr(now.Add(-time.Hour))},
			want:  false,
		},
		{
			name: "inside validity window",
			promo: models.PromoCode{
				IsActive:   true,
				ValidFrom:  timePtr(now.Add(-time.Hour)),
				ValidUntil: timePtr(now.Add(time.Hour)),
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, promoEligible(&tt.promo, now))
		})
	}
}

func TestApplyDiscount(t *testing.T) {
	assert.InDelta(t, 19.995, applyDiscount(39.99, "PERCENTAGE", 50), 0.0001)
	assert.InDelta(t, 0, applyDiscount(39.99, "PERCENTAGE", 100), 0.0001)
	assert.InDelta(t, 29.99, applyDiscount(39.99, "FIXED", 10), 0.0001)

	// A fixed discount larger than the price clamps to zero, never negative
	assert.Equal(t, float64(0), applyDiscount(39.99, "FIXED", 50))

	// Unknown type leaves the price untouched
	assert.Equal(t, 39.99, applyDiscount(39.99, "BOGUS", 50))
}

func TestToCents(t *testing.T) {
	assert.Equal(t, int64(3999), toCents(39.99))
	assert.Equal(t, int64(2000), toCents(19.995))
	assert.Equal(t, int64(0), toCents(0))
}

func TestProcessPaidSession(t *testing.T) {
	db := setupTestDb(t)

	user := models.User{Name: "Jane Doe", Email: "jane@example.com", Role: "USER", IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	course := models.Course{Title: "CCW Certification", Price: 39.99, IsActive: true}
	require.NoError(t, db.Create(&course).Error)

	session := &utils.CheckoutSession{
		ID:            "cs_test_123",
		PaymentStatus: "paid",
		PaymentIntent: "pi_test_123",
		AmountTotal:   3999,
		Metadata:      map[string]string{},
	}

	order, err := ProcessPaidSession(db, user, course, session)
	require.NoError(t, err)

	assert.Equal(t, "COMPLETED", order.Status)
	assert.Equal(t, 39.99, order.Subtotal)
	assert.Equal(t, float64(0), order.Discount)
	assert.InDelta(t, 39.99, order.Total, 0.0001)
	assert.Equal(t, "cs_test_123", order.StripeSessionID)
	assert.NotEmpty(t, order.OrderNumber)

	var item models.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).First(&item).Error)
	assert.Equal(t, course.ID, item.CourseID)

	var enrollment models.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&enrollment).Error)
	assert.Equal(t, "PURCHASE", enrollment.GrantedBy)
}

func TestProcessPaidSession_PromoIncrement(t *testing.T) {
	db := setupTestDb(t)

	user := models.User{Name: "Jane Doe", Email: "jane@example.com", Role: "USER", IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	course := models.Course{Title: "CCW Certification", Price: 39.99, IsActive: true}
	require.NoError(t, db.Create(&course).Error)
	promo := models.PromoCode{Code: "SAVE50", DiscountType: "PERCENTAGE", DiscountValue: 50, MaxUses: intPtr(5), IsActive: true}
	require.NoError(t, db.Create(&promo).Error)

	session := &utils.CheckoutSession{
		ID:            "cs_test_promo",
		PaymentStatus: "paid",
		AmountTotal:   2000,
		Metadata:      map[string]string{"promoCodeId": "1"},
	}

	order, err := ProcessPaidSession(db, user, course, session)
	require.NoError(t, err)

	assert.InDelta(t, 20.00, order.Total, 0.0001)
	assert.InDelta(t, 19.99, order.Discount, 0.0001)
	require.NotNil(t, order.PromoCodeID)
	assert.Equal(t, promo.ID, *order.PromoCodeID)

	var updated models.PromoCode
	require.NoError(t, db.First(&updated, promo.ID).Error)
	assert.Equal(t, 1, updated.UsedCount)
}

func TestProcessPaidSession_PromoCapNotExceeded(t *testing.T) {
	db := setupTestDb(t)

	user := models.User{Name: "Jane Doe", Email: "jane@example.com", Role: "USER", IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	course := models.Course{Title: "CCW Certification", Price: 39.99, IsActive: true}
	require.NoError(t, db.Create(&course).Error)
	promo := models.PromoCode{Code: "LASTONE", DiscountType: "FIXED", DiscountValue: 10, MaxUses: intPtr(1), UsedCount: 1, IsActive: true}
	require.NoError(t, db.Create(&promo).Error)

	session := &utils.CheckoutSession{
		ID:            "cs_test_capped",
		PaymentStatus: "paid",
		AmountTotal:   2999,
		Metadata:      map[string]string{"promoCodeId": "1"},
	}

	_, err := ProcessPaidSession(db, user, course, session)
	require.NoError(t, err)

	// The guarded UPDATE matched no rows, so the counter stays at the cap
	var updated models.PromoCode
	require.NoError(t, db.First(&updated, promo.ID).Error)
	assert.Equal(t, 1, updated.UsedCount)
}

func TestProcessPaidSession_DuplicateSessionRejected(t *testing.T) {
	db := setupTestDb(t)

	user := models.User{Name: "Jane Doe", Email: "jane@example.com", Role: "USER", IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	course := models.Course{Title: "CCW Certification", Price: 39.99, IsActive: true}
	require.NoError(t, db.Create(&course).Error)

	session := &utils.CheckoutSession{
		ID:            "cs_test_dup",
		PaymentStatus: "paid",
		AmountTotal:   3999,
		Metadata:      map[string]string{},
	}

	_, err := ProcessPaidSession(db, user, course, session)
	require.NoError(t, err)

	// Replaying the same session hits the unique index on the session id
	_, err = ProcessPaidSession(db, user, course, session)
	assert.Error(t, err)
}

// confirmApp wires ConfirmPayment behind a stub that injects the session id
// the validator would normally provide.
func confirmApp(sessionID string) *fiber.App {
	app := fiber.New()
	app.Get("/success", func(c *fiber.Ctx) error {
		c.Locals("stripeSessionID", sessionID)
		return c.Next()
	}, ConfirmPayment)
	return app
}

func TestConfirmPayment_DuplicateCallbackIsNoOp(t *testing.T) {
	db := setupTestDb(t)
	database.Database = database.DbInstance{Db: db}

	user := models.User{Name: "Jane Doe", Email: "jane@example.com", Role: "USER", IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	course := models.Course{Title: "CCW Certification", Price: 39.99, IsActive: true}
	require.NoError(t, db.Create(&course).Error)

	session := &utils.CheckoutSession{
		ID:            "cs_test_replay",
		PaymentStatus: "paid",
		AmountTotal:   3999,
		Metadata:      map[string]string{},
	}
	_, err := ProcessPaidSession(db, user, course, session)
	require.NoError(t, err)

	// The duplicate callback short-circuits on the existing order without
	// touching Stripe or writing anything
	resp, err := confirmApp("cs_test_replay").Test(httptest.NewRequest("GET", "/success", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var orderCount, enrollmentCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.Enrollment{}).Count(&enrollmentCount)
	assert.Equal(t, int64(1), orderCount)
	assert.Equal(t, int64(1), enrollmentCount)
}
