package boardstore

// DecodeSlot interprets the return value of AddIfBetter, splitting out
// the real slot index and whether it signaled a rendezvous.
func DecodeSlot(v int64) (slot int, rendezvous bool, improved bool) {
	if v == NoImprovement {
		return 0, false, false
	}
	if v < 0 {
		return int(-(v + 1)), true, true
	}
	return int(v), false, true
}
