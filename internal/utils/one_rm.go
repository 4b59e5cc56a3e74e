package utils

// CalculateEpley1RM estimates a one-rep max from a set. A single rep is the max itself.
func CalculateEpley1RM(weight float64, reps int) float64 {
	if reps <= 0 || weight <= 0 {
		return 0
	}
	if reps == 1 {
		return weight
	}

	return weight * (1 + float64(reps)/30)
}
