package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uzmanrandevu.link/models"
)

func newBookingServiceForTest(requireActivePlan bool) (IBookingService, ISlotService, *fakeSlotRepo, *fakeUserRepo) {
	slotRepo := newFakeSlotRepo()
	userRepo := newFakeUserRepo(
		&models.User{BaseModel: models.BaseModel{ID: testSpecialistID}, Name: "Uzman", IsSpecialist: true, IsActive: true},
		&models.User{BaseModel: models.BaseModel{ID: testClientID}, Name: "Danışan", IsActive: true, HasActivePlan: true},
		&models.User{BaseModel: models.BaseModel{ID: otherClientID}, Name: "Diğer Danışan", IsActive: true, HasActivePlan: true},
		&models.User{BaseModel: models.BaseModel{ID: 4}, Name: "Plansız Danışan", IsActive: true, HasActivePlan: false},
	)
	booking := NewBookingServiceWithDeps(slotRepo, userRepo, requireActivePlan)
	slots := NewSlotServiceWithDeps(slotRepo, userRepo)
	return booking, slots, slotRepo, userRepo
}

func TestBookSlotSuccess(t *testing.T) {
	booking, slots, _, _ := newBookingServiceForTest(true)
	ctx := context.Background()

	slot, err := slots.CreateSlot(ctx, testSpecialistID, "2024-06-01", "10:00")
	require.NoError(t, err)

	booked, err := booking.BookSlot(ctx, slot.ID, testClientID)
	require.NoError(t, err)
	assert.True(t, booked.IsBooked)
	require.NotNil(t, booked.ClientID)
	assert.Equal(t, testClientID, *booked.ClientID)
}

func TestBookSlotRoleViolation(t *testing.T) {
	booking, slots, _, _ := newBookingServiceForTest(true)
	ctx := context.Background()

	slot, err := slots.CreateSlot(ctx, testSpecialistID, "2024-06-01", "10:00")
	require.NoError(t, err)

	_, err = booking.BookSlot(ctx, slot.ID, testSpecialistID)
	require.ErrorIs(t, err, ErrBookingRoleViolation)

	// Slot durumu değişmedi.
	unchanged, err := slots.GetSlotByID(ctx, slot.ID)
	require.NoError(t, err)
	assert.False(t, unchanged.IsBooked)
	assert.Nil(t, unchanged.ClientID)
}

func TestBookSlotAccessDenied(t *testing.T) {
	booking, slots, _, _ := newBookingServiceForTest(true)
	ctx := context.Background()

	slot, err := slots.CreateSlot(ctx, testSpecialistID, "2024-06-01", "10:00")
	require.NoError(t, err)

	noPlanClient := uint(4)
	_, err = booking.BookSlot(ctx, slot.ID, noPlanClient)
	require.ErrorIs(t, err, ErrBookingAccessDenied)

	unchanged, err := slots.GetSlotByID(ctx, slot.ID)
	require.NoError(t, err)
	assert.False(t, unchanged.IsBooked)
}

func TestBookSlotPlanCheckDisabled(t *testing.T) {
	// Bazı deployment'lar entitlement kontrolünü kapatır; bayrak kapalıyken
	// plansız danışan da rezervasyon yapabilmeli.
	booking, slots, _, _ := newBookingServiceForTest(false)
	ctx := context.Background()

	slot, err := slots.CreateSlot(ctx, testSpecialistID, "2024-06-01", "10:00")
	require.NoError(t, err)

	noPlanClient := uint(4)
	booked, err := booking.BookSlot(ctx, slot.ID, noPlanClient)
	require.NoError(t, err)
	assert.True(t, booked.IsBooked)
}

func TestBookSlotNotFound(t *testing.T) {
	booking, _, _, _ := newBookingServiceForTest(true)
	_, err := booking.BookSlot(context.Background(), 999, testClientID)
	assert.ErrorIs(t, err, ErrBookingSlotNotFound)
}

func TestBookSlotUnknownClient(t *testing.T) {
	booking, slots, _, _ := newBookingServiceForTest(true)
	ctx := context.Background()

	slot, err := slots.CreateSlot(ctx, testSpecialistID, "2024-06-01", "10:00")
	require.NoError(t, err)

	_, err = booking.BookSlot(ctx, slot.ID, 777)
	assert.ErrorIs(t, err, ErrBookingUserNotFound)
}

func TestBookSlotAlreadyBooked(t *testing.T) {
	booking, slots, _, _ := newBookingServiceForTest(true)
	ctx := context.Background()

	slot, err := slots.CreateSlot(ctx, testSpecialistID, "2024-06-01", "10:00")
	require.NoError(t, err)

	_, err = booking.BookSlot(ctx, slot.ID, testClientID)
	require.NoError(t, err)

	_, err = booking.BookSlot(ctx, slot.ID, otherClientID)
	require.ErrorIs(t, err, ErrSlotAlreadyBooked)

	// Kaybeden çağrı durumu bozmadı.
	final, err := slots.GetSlotByID(ctx, slot.ID)
	require.NoError(t, err)
	require.NotNil(t, final.ClientID)
	assert.Equal(t, testClientID, *final.ClientID)
}

func TestBookSlotConcurrentRace(t *testing.T) {
	// Aynı açık slota yarışan iki danışandan tam olarak biri kazanmalı,
	// diğeri ErrSlotAlreadyBooked almalı.
	booking, slots, _, _ := newBookingServiceForTest(true)
	ctx := context.Background()

	slot, err := slots.CreateSlot(ctx, testSpecialistID, "2024-06-01", "10:00")
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]error, 2)
	clients := []uint{testClientID, otherClientID}
	for i, clientID := range clients {
		wg.Add(1)
		go func(idx int, id uint) {
			defer wg.Done()
			_, results[idx] = booking.BookSlot(ctx, slot.ID, id)
		}(i, clientID)
	}
	wg.Wait()

	var winners, losers int
	var winnerID uint
	for i, err := range results {
		switch {
		case err == nil:
			winners++
			winnerID = clients[i]
		case assert.ErrorIs(t, err, ErrSlotAlreadyBooked):
			losers++
		}
	}
	require.Equal(t, 1, winners, "tam olarak bir rezervasyon başarılı olmalı")
	require.Equal(t, 1, losers)

	final, err := slots.GetSlotByID(ctx, slot.ID)
	require.NoError(t, err)
	assert.True(t, final.IsBooked)
	require.NotNil(t, final.ClientID)
	assert.Equal(t, winnerID, *final.ClientID)
}

func TestBookingInvariantBookedImpliesClient(t *testing.T) {
	// is_booked == true ⇔ client_id dolu; operasyon dizisi boyunca hiçbir
	// noktada tutarsız durum gözlenmemeli.
	booking, slots, slotRepo, _ := newBookingServiceForTest(false)
	ctx := context.Background()

	slot, err := slots.CreateSlot(ctx, testSpecialistID, "2024-06-01", "10:00")
	require.NoError(t, err)

	checkInvariant := func() {
		for _, s := range slotRepo.slots {
			assert.Equal(t, s.IsBooked, s.ClientID != nil,
				"slot %d: is_booked=%t ama client_id=%v", s.ID, s.IsBooked, s.ClientID)
		}
	}

	checkInvariant()
	_, err = booking.BookSlot(ctx, slot.ID, testClientID)
	require.NoError(t, err)
	checkInvariant()
	require.NoError(t, slots.ReleaseSlot(ctx, slot.ID, testSpecialistID))
	checkInvariant()
}

func TestBookingLifecycleScenario(t *testing.T) {
	// Uçtan uca senaryo: S (2024-06-01, 10:00) oluşturur → aynı üçlü reddedilir
	// → C1 rezerve eder → C2 reddedilir → S siler → slot artık yok.
	booking, slots, _, _ := newBookingServiceForTest(true)
	ctx := context.Background()

	slot, err := slots.CreateSlot(ctx, testSpecialistID, "2024-06-01", "10:00")
	require.NoError(t, err)

	_, err = slots.CreateSlot(ctx, testSpecialistID, "2024-06-01", "10:00")
	require.ErrorIs(t, err, ErrSlotDuplicate)

	booked, err := booking.BookSlot(ctx, slot.ID, testClientID)
	require.NoError(t, err)
	assert.True(t, booked.IsBooked)
	require.NotNil(t, booked.ClientID)
	assert.Equal(t, testClientID, *booked.ClientID)

	_, err = booking.BookSlot(ctx, slot.ID, otherClientID)
	require.ErrorIs(t, err, ErrSlotAlreadyBooked)

	require.NoError(t, slots.DeleteSlot(ctx, slot.ID, testSpecialistID))

	_, err = slots.GetSlotByID(ctx, slot.ID)
	require.ErrorIs(t, err, ErrSlotNotFound)

	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	remaining, err := slots.ListSlotsForSpecialist(ctx, testSpecialistID, asOf, false)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
