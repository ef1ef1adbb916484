package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uzmanrandevu.link/models"
)

const (
	testSpecialistID = uint(1)
	testClientID     = uint(2)
	otherClientID    = uint(3)
	adminUserID      = uint(9)
)

func newSlotServiceForTest() (ISlotService, *fakeSlotRepo, *fakeUserRepo) {
	slotRepo := newFakeSlotRepo()
	userRepo := newFakeUserRepo(
		&models.User{BaseModel: models.BaseModel{ID: testSpecialistID}, Name: "Uzman", IsSpecialist: true, IsActive: true},
		&models.User{BaseModel: models.BaseModel{ID: testClientID}, Name: "Danışan", IsActive: true, HasActivePlan: true},
		&models.User{BaseModel: models.BaseModel{ID: otherClientID}, Name: "Diğer Danışan", IsActive: true, HasActivePlan: true},
		&models.User{BaseModel: models.BaseModel{ID: adminUserID}, Name: "Sistem", IsSystem: true, IsActive: true},
	)
	return NewSlotServiceWithDeps(slotRepo, userRepo), slotRepo, userRepo
}

func TestCreateSlot(t *testing.T) {
	service, _, _ := newSlotServiceForTest()
	ctx := context.Background()

	slot, err := service.CreateSlot(ctx, testSpecialistID, "2024-06-01", "10:00")
	require.NoError(t, err)
	require.NotZero(t, slot.ID)
	assert.Equal(t, testSpecialistID, slot.SpecialistID)
	assert.Equal(t, "2024-06-01", slot.DateString())
	assert.Equal(t, "10:00", slot.Time)
	assert.False(t, slot.IsBooked)
	assert.Nil(t, slot.ClientID)
}

func TestCreateSlotDuplicate(t *testing.T) {
	service, _, _ := newSlotServiceForTest()
	ctx := context.Background()

	_, err := service.CreateSlot(ctx, testSpecialistID, "2024-06-01", "10:00")
	require.NoError(t, err)

	_, err = service.CreateSlot(ctx, testSpecialistID, "2024-06-01", "10:00")
	require.ErrorIs(t, err, ErrSlotDuplicate)

	// Farklı saat ve farklı uzman için aynı üçlü serbesttir.
	_, err = service.CreateSlot(ctx, testSpecialistID, "2024-06-01", "11:00")
	assert.NoError(t, err)
	otherSpecialist := adminUserID
	_, err = service.CreateSlot(ctx, otherSpecialist, "2024-06-01", "10:00")
	assert.NoError(t, err)
}

func TestCreateSlotInvalidInput(t *testing.T) {
	service, _, _ := newSlotServiceForTest()
	ctx := context.Background()

	cases := []struct {
		name string
		date string
		time string
	}{
		{"bozuk tarih", "01-06-2024", "10:00"},
		{"boş tarih", "", "10:00"},
		{"bozuk saat", "2024-06-01", "25:99"},
		{"boş saat", "2024-06-01", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.CreateSlot(ctx, testSpecialistID, tc.date, tc.time)
			assert.ErrorIs(t, err, ErrSlotInvalidInput)
		})
	}

	_, err := service.CreateSlot(ctx, 0, "2024-06-01", "10:00")
	assert.ErrorIs(t, err, ErrSlotInvalidInput)
}

func TestListSlotsOrderingAndFiltering(t *testing.T) {
	service, _, _ := newSlotServiceForTest()
	ctx := context.Background()

	// Bilerek karışık sırada oluştur.
	for _, pair := range [][2]string{
		{"2024-06-03", "09:00"},
		{"2024-06-01", "14:00"},
		{"2024-05-20", "10:00"}, // asOf öncesi, listede görünmemeli
		{"2024-06-01", "10:00"},
		{"2024-06-02", "08:30"},
	} {
		_, err := service.CreateSlot(ctx, testSpecialistID, pair[0], pair[1])
		require.NoError(t, err)
	}

	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	slots, err := service.ListSlotsForSpecialist(ctx, testSpecialistID, asOf, false)
	require.NoError(t, err)
	require.Len(t, slots, 4)

	// asOf öncesi slot yok ve sıralama (tarih, saat) artan.
	for i, slot := range slots {
		assert.GreaterOrEqual(t, slot.DateString(), "2024-06-01")
		if i > 0 {
			prev := slots[i-1].DateString() + " " + slots[i-1].Time
			curr := slot.DateString() + " " + slot.Time
			assert.Less(t, prev, curr)
		}
	}
}

func TestListSlotsOnlyOpen(t *testing.T) {
	service, slotRepo, userRepo := newSlotServiceForTest()
	ctx := context.Background()

	open, err := service.CreateSlot(ctx, testSpecialistID, "2024-06-01", "10:00")
	require.NoError(t, err)
	booked, err := service.CreateSlot(ctx, testSpecialistID, "2024-06-01", "11:00")
	require.NoError(t, err)

	booking := NewBookingServiceWithDeps(slotRepo, userRepo, false)
	_, err = booking.BookSlot(ctx, booked.ID, testClientID)
	require.NoError(t, err)

	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	slots, err := service.ListSlotsForSpecialist(ctx, testSpecialistID, asOf, true)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, open.ID, slots[0].ID)

	// Sahibin yönetim görünümü rezerveliyi de görür.
	all, err := service.ListSlotsForSpecialist(ctx, testSpecialistID, asOf, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDeleteSlotNotOwner(t *testing.T) {
	service, _, _ := newSlotServiceForTest()
	ctx := context.Background()

	slot, err := service.CreateSlot(ctx, testSpecialistID, "2024-06-01", "10:00")
	require.NoError(t, err)

	err = service.DeleteSlot(ctx, slot.ID, testClientID)
	require.ErrorIs(t, err, ErrSlotForbidden)

	// Slot değişmeden duruyor.
	found, err := service.GetSlotByID(ctx, slot.ID)
	require.NoError(t, err)
	assert.False(t, found.IsBooked)
}

func TestDeleteSlotByOwnerEvenIfBooked(t *testing.T) {
	service, slotRepo, userRepo := newSlotServiceForTest()
	ctx := context.Background()

	slot, err := service.CreateSlot(ctx, testSpecialistID, "2024-06-01", "10:00")
	require.NoError(t, err)

	booking := NewBookingServiceWithDeps(slotRepo, userRepo, false)
	_, err = booking.BookSlot(ctx, slot.ID, testClientID)
	require.NoError(t, err)

	// Rezerveli slot sahibi tarafından koşulsuz silinir.
	require.NoError(t, service.DeleteSlot(ctx, slot.ID, testSpecialistID))

	_, err = service.GetSlotByID(ctx, slot.ID)
	assert.ErrorIs(t, err, ErrSlotNotFound)

	// Aynı üçlü tekrar yayınlanabilir.
	_, err = service.CreateSlot(ctx, testSpecialistID, "2024-06-01", "10:00")
	assert.NoError(t, err)
}

func TestDeleteSlotBySystemAdmin(t *testing.T) {
	service, _, _ := newSlotServiceForTest()
	ctx := context.Background()

	slot, err := service.CreateSlot(ctx, testSpecialistID, "2024-06-01", "10:00")
	require.NoError(t, err)

	require.NoError(t, service.DeleteSlot(ctx, slot.ID, adminUserID))
}

func TestDeleteSlotNotFound(t *testing.T) {
	service, _, _ := newSlotServiceForTest()
	err := service.DeleteSlot(context.Background(), 999, testSpecialistID)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestReleaseSlot(t *testing.T) {
	service, slotRepo, userRepo := newSlotServiceForTest()
	ctx := context.Background()

	slot, err := service.CreateSlot(ctx, testSpecialistID, "2024-06-01", "10:00")
	require.NoError(t, err)

	// Açık slot release edilemez.
	err = service.ReleaseSlot(ctx, slot.ID, testSpecialistID)
	require.ErrorIs(t, err, ErrSlotNotBooked)

	booking := NewBookingServiceWithDeps(slotRepo, userRepo, false)
	_, err = booking.BookSlot(ctx, slot.ID, testClientID)
	require.NoError(t, err)

	// Sahibi olmayan release edemez.
	err = service.ReleaseSlot(ctx, slot.ID, testClientID)
	require.ErrorIs(t, err, ErrSlotForbidden)

	require.NoError(t, service.ReleaseSlot(ctx, slot.ID, testSpecialistID))

	released, err := service.GetSlotByID(ctx, slot.ID)
	require.NoError(t, err)
	assert.False(t, released.IsBooked)
	assert.Nil(t, released.ClientID)

	// Release sonrası slot yeniden rezerve edilebilir.
	_, err = booking.BookSlot(ctx, slot.ID, otherClientID)
	require.NoError(t, err)
}

func TestListBookingsForClient(t *testing.T) {
	service, slotRepo, userRepo := newSlotServiceForTest()
	ctx := context.Background()

	first, err := service.CreateSlot(ctx, testSpecialistID, "2024-06-02", "10:00")
	require.NoError(t, err)
	second, err := service.CreateSlot(ctx, testSpecialistID, "2024-06-01", "09:00")
	require.NoError(t, err)

	booking := NewBookingServiceWithDeps(slotRepo, userRepo, false)
	_, err = booking.BookSlot(ctx, first.ID, testClientID)
	require.NoError(t, err)
	_, err = booking.BookSlot(ctx, second.ID, testClientID)
	require.NoError(t, err)

	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	bookings, err := service.ListBookingsForClient(ctx, testClientID, asOf)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, second.ID, bookings[0].ID) // Tarihe göre artan
	assert.Equal(t, first.ID, bookings[1].ID)
}
