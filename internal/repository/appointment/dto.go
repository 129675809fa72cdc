package appointment

import "github.com/publilab/munbot/internal/domain"

// buildHashFields flattens an appointment into a map for HSET.
func buildHashFields(a *domain.Appointment) map[string]string {
	return map[string]string{
		"id":        a.ID(),
		"date":      a.Date(),
		"hour":      a.Hour(),
		"official":  a.Official(),
		"status":    string(a.Status()),
		"user_name": a.UserName(),
		"email":     a.Email(),
		"whatsapp":  a.Whatsapp(),
		"reason":    a.Reason(),
	}
}

// parseHashFields rebuilds an appointment from a stored hash.
func parseHashFields(m map[string]string) domain.Appointment {
	return domain.ReconstructAppointment(
		m["id"], m["date"], m["hour"], m["official"],
		domain.SlotStatus(m["status"]),
		m["user_name"], m["email"], m["whatsapp"], m["reason"],
	)
}
