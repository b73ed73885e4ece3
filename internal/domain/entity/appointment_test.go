package entity

import "testing"

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{AppointmentStatusScheduled, AppointmentStatusConfirmed, true},
		{AppointmentStatusScheduled, AppointmentStatusCancelled, true},
		{AppointmentStatusScheduled, AppointmentStatusNoShow, true},
		{AppointmentStatusScheduled, AppointmentStatusInProgress, false},
		{AppointmentStatusScheduled, AppointmentStatusCompleted, false},

		{AppointmentStatusConfirmed, AppointmentStatusInProgress, true},
		{AppointmentStatusConfirmed, AppointmentStatusCancelled, true},
		{AppointmentStatusConfirmed, AppointmentStatusNoShow, true},
		{AppointmentStatusConfirmed, AppointmentStatusConfirmed, false},
		{AppointmentStatusConfirmed, AppointmentStatusCompleted, false},

		{AppointmentStatusInProgress, AppointmentStatusCompleted, true},
		{AppointmentStatusInProgress, AppointmentStatusNoShow, true},
		{AppointmentStatusInProgress, AppointmentStatusCancelled, false},
		{AppointmentStatusInProgress, AppointmentStatusScheduled, false},

		// Terminal states allow nothing.
		{AppointmentStatusCompleted, AppointmentStatusCancelled, false},
		{AppointmentStatusCompleted, AppointmentStatusConfirmed, false},
		{AppointmentStatusCancelled, AppointmentStatusScheduled, false},
		{AppointmentStatusCancelled, AppointmentStatusConfirmed, false},
		{AppointmentStatusNoShow, AppointmentStatusCompleted, false},
	}

	for _, tt := range tests {
		a := &Appointment{Status: tt.from}
		if got := a.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := []AppointmentStatus{
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
		AppointmentStatusNoShow,
	}
	for _, s := range terminal {
		a := &Appointment{Status: s}
		if !a.IsTerminal() {
			t.Errorf("IsTerminal(%s) = false, want true", s)
		}
	}

	active := []AppointmentStatus{
		AppointmentStatusScheduled,
		AppointmentStatusConfirmed,
		AppointmentStatusInProgress,
	}
	for _, s := range active {
		a := &Appointment{Status: s}
		if a.IsTerminal() {
			t.Errorf("IsTerminal(%s) = true, want false", s)
		}
	}
}

func TestIsCancellable(t *testing.T) {
	tests := []struct {
		status AppointmentStatus
		want   bool
	}{
		{AppointmentStatusScheduled, true},
		{AppointmentStatusConfirmed, true},
		{AppointmentStatusInProgress, false},
		{AppointmentStatusCompleted, false},
		{AppointmentStatusCancelled, false},
		{AppointmentStatusNoShow, false},
	}
	for _, tt := range tests {
		a := &Appointment{Status: tt.status}
		if got := a.IsCancellable(); got != tt.want {
			t.Errorf("IsCancellable(%s) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestIsReschedulable(t *testing.T) {
	tests := []struct {
		status AppointmentStatus
		want   bool
	}{
		{AppointmentStatusScheduled, true},
		{AppointmentStatusConfirmed, true},
		{AppointmentStatusInProgress, true},
		{AppointmentStatusNoShow, true},
		{AppointmentStatusCompleted, false},
		{AppointmentStatusCancelled, false},
	}
	for _, tt := range tests {
		a := &Appointment{Status: tt.status}
		if got := a.IsReschedulable(); got != tt.want {
			t.Errorf("IsReschedulable(%s) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestValidAppointmentType(t *testing.T) {
	for _, valid := range []AppointmentType{
		AppointmentTypeConsultation, AppointmentTypeFollowUp,
		AppointmentTypeEmergency, AppointmentTypeSurgery, AppointmentTypeCheckup,
	} {
		if !ValidAppointmentType(valid) {
			t.Errorf("ValidAppointmentType(%s) = false, want true", valid)
		}
	}
	if ValidAppointmentType("walk_in") {
		t.Error("ValidAppointmentType(walk_in) = true, want false")
	}
	if ValidAppointmentType("") {
		t.Error("ValidAppointmentType(\"\") = true, want false")
	}
}
