package schedule

// Availability is a Slot joined with its current occupancy, ready for the
// rendering layer.
type Availability struct {
	Key       string
	Label     string
	Occupants []string
	IsFull    bool
	IsMine    bool
}

// Annotate joins a generated slot set with the environment's current
// bookings. occupants maps slot key to holder ids. Booking keys that are not
// in slots (expired or out-of-window rows) are ignored for display; cleaning
// them up is a storage concern, not this filter's.
func Annotate(slots []Slot, occupants map[string][]string, capacity int, holderID string) []Availability {
	result := make([]Availability, 0, len(slots))
	for _, slot := range slots {
		holders := occupants[slot.Key]

		isMine := false
		for _, h := range holders {
			if h == holderID {
				isMine = true
				break
			}
		}

		result = append(result, Availability{
			Key:       slot.Key,
			Label:     slot.Label,
			Occupants: holders,
			IsFull:    len(holders) >= capacity,
			IsMine:    isMine,
		})
	}
	return result
}
