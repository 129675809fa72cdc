package domain

import "fmt"

// SlotStatus is the lifecycle state of an appointment slot.
type SlotStatus string

const (
	// SlotAvailable means the slot can be booked.
	SlotAvailable SlotStatus = "available"
	// SlotPending means the slot is booked but not yet confirmed by the user.
	SlotPending SlotStatus = "pending"
	// SlotConfirmed means the user confirmed the appointment.
	SlotConfirmed SlotStatus = "confirmed"
)

// Appointment is one bookable slot with an assigned official.
type Appointment struct {
	id       string
	date     string // YYYY-MM-DD
	hour     string // HH:MM
	official string
	status   SlotStatus

	userName string
	email    string
	whatsapp string
	reason   string
}

// NewAppointment creates an available slot.
func NewAppointment(id, date, hour, official string) (Appointment, error) {
	if id == "" {
		return Appointment{}, fmt.Errorf("appointment id is required")
	}
	if date == "" || hour == "" {
		return Appointment{}, fmt.Errorf("appointment %s: date and hour are required", id)
	}
	return Appointment{id: id, date: date, hour: hour, official: official, status: SlotAvailable}, nil
}

// ReconstructAppointment rebuilds an appointment from storage without validation.
func ReconstructAppointment(
	id, date, hour, official string, status SlotStatus,
	userName, email, whatsapp, reason string,
) Appointment {
	return Appointment{
		id: id, date: date, hour: hour, official: official, status: status,
		userName: userName, email: email, whatsapp: whatsapp, reason: reason,
	}
}

// ID returns the slot identifier.
func (a Appointment) ID() string { return a.id }

// Date returns the slot date (YYYY-MM-DD).
func (a Appointment) Date() string { return a.date }

// Hour returns the slot time of day (HH:MM).
func (a Appointment) Hour() string { return a.hour }

// Official returns the assigned official's name.
func (a Appointment) Official() string { return a.official }

// Status returns the slot lifecycle state.
func (a Appointment) Status() SlotStatus { return a.status }

// UserName returns the booking user's full name.
func (a Appointment) UserName() string { return a.userName }

// Email returns the booking user's email.
func (a Appointment) Email() string { return a.email }

// Whatsapp returns the booking user's WhatsApp number, if any.
func (a Appointment) Whatsapp() string { return a.whatsapp }

// Reason returns the stated reason for the visit.
func (a Appointment) Reason() string { return a.reason }

// Book transitions an available slot to pending with the user's details.
func (a Appointment) Book(userName, email, whatsapp, reason string) (Appointment, error) {
	if a.status != SlotAvailable {
		return Appointment{}, fmt.Errorf("appointment %s: %w", a.id, ErrSlotUnavailable)
	}
	if userName == "" || email == "" {
		return Appointment{}, fmt.Errorf("appointment %s: name and email are required: %w", a.id, ErrMissingInput)
	}
	booked := a
	booked.status = SlotPending
	booked.userName = userName
	booked.email = email
	booked.whatsapp = whatsapp
	booked.reason = reason
	return booked, nil
}

// Confirm transitions a pending slot to confirmed.
func (a Appointment) Confirm() (Appointment, error) {
	if a.status != SlotPending {
		return Appointment{}, fmt.Errorf("appointment %s is %s: %w", a.id, a.status, ErrAppointmentNotFound)
	}
	confirmed := a
	confirmed.status = SlotConfirmed
	return confirmed, nil
}
