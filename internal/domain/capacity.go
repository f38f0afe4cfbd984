package domain

// DecideStatus applies the auto-approval policy: a new reservation on date is
// APPROVED while fewer than threshold APPROVED reservations exist for that exact
// date string, PENDING otherwise.
func DecideStatus(date string, reservations []*Reservation, threshold int) ReservationStatus {
	approved := 0
	for _, r := range reservations {
		if r.Date == date && r.Status == StatusApproved {
			approved++
		}
	}

	if approved >= threshold {
		return StatusPending
	}
	return StatusApproved
}

// HasApprovedDuplicate ищет подтвержденное бронирование того же клиента на ту же дату
func HasApprovedDuplicate(reservations []*Reservation, username, phoneNumber, date string) bool {
	for _, r := range reservations {
		if r.IsApproved() && r.MatchesIdentity(username, phoneNumber, date) {
			return true
		}
	}
	return false
}
