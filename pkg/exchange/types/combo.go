package types

// Combo identifies one donor-patient combination queued for evaluation.
type Combo struct {
	Donor   int
	Patient int
}
