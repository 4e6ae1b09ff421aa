package domain

import "testing"

func TestCanTransitionBooking(t *testing.T) {
	tests := []struct {
		from, to BookingStatus
		want     bool
	}{
		{BookingPending, BookingConfirmed, true},
		{BookingPending, BookingCancelled, true},
		{BookingPending, BookingActive, false},
		{BookingConfirmed, BookingActive, true},
		{BookingActive, BookingCompleted, true},
		{BookingActive, BookingOverdue, true},
		{BookingOverdue, BookingActive, true},
		{BookingOverdue, BookingCompleted, true},
		{BookingCompleted, BookingActive, false},
		{BookingCancelled, BookingConfirmed, false},
	}
	for _, tt := range tests {
		got := CanTransitionBooking(tt.from, tt.to)
		if got != tt.want {
			t.Errorf("CanTransitionBooking(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestIsBlockingStatus(t *testing.T) {
	blocking := []BookingStatus{BookingPending, BookingConfirmed, BookingActive}
	for _, s := range blocking {
		if !IsBlockingStatus(s) {
			t.Errorf("expected %s to be a blocking status", s)
		}
	}
	nonBlocking := []BookingStatus{BookingCompleted, BookingCancelled}
	for _, s := range nonBlocking {
		if IsBlockingStatus(s) {
			t.Errorf("expected %s to not be a blocking status", s)
		}
	}
}

func TestCanTransitionPayment(t *testing.T) {
	tests := []struct {
		from, to PaymentStatus
		want     bool
	}{
		{PaymentPending, PaymentPartial, true},
		{PaymentPending, PaymentPaid, true},
		{PaymentPartial, PaymentPaid, true},
		{PaymentPaid, PaymentRefunded, true},
		{PaymentPaid, PaymentPartial, false},
		{PaymentRefunded, PaymentPaid, false},
		{PaymentOverdue, PaymentPartial, true},
	}
	for _, tt := range tests {
		got := CanTransitionPayment(tt.from, tt.to)
		if got != tt.want {
			t.Errorf("CanTransitionPayment(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestDeriveProjectPaymentStatus(t *testing.T) {
	tests := []struct {
		name     string
		bookings []*Booking
		want     ProjectPaymentStatus
	}{
		{"no bookings", nil, ProjectPaymentUnpaid},
		{
			"all pending",
			[]*Booking{{PaymentStatus: PaymentPending}, {PaymentStatus: PaymentPending}},
			ProjectPaymentUnpaid,
		},
		{
			"all paid",
			[]*Booking{{PaymentStatus: PaymentPaid}, {PaymentStatus: PaymentPaid}},
			ProjectPaymentPaid,
		},
		{
			"mixed",
			[]*Booking{{PaymentStatus: PaymentPaid}, {PaymentStatus: PaymentPending}},
			ProjectPaymentPartiallyPaid,
		},
		{
			"one partial among pending",
			[]*Booking{{PaymentStatus: PaymentPending}, {PaymentStatus: PaymentPartial}},
			ProjectPaymentPartiallyPaid,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveProjectPaymentStatus(tt.bookings)
			if got != tt.want {
				t.Errorf("DeriveProjectPaymentStatus(%v) = %s, want %s", tt.name, got, tt.want)
			}
		})
	}
}

func TestCanTransitionEquipment(t *testing.T) {
	if !CanTransitionEquipment(EquipmentAvailable, EquipmentRented) {
		t.Error("expected AVAILABLE -> RENTED to be allowed at the table level")
	}
	if CanTransitionEquipment(EquipmentRetired, EquipmentAvailable) {
		t.Error("expected RETIRED to be a terminal state")
	}
	if !CanTransitionEquipment(EquipmentBroken, EquipmentMaintenance) {
		t.Error("expected BROKEN -> MAINTENANCE to be allowed")
	}
}
