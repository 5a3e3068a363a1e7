package types

// Iteration is one logged retry of its parent recipe. It lives inside the
// parent's iterations sequence and has no row of its own: created by append,
// removed by id, never edited in place.
type Iteration struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"` // calendar day, YYYY-MM-DD
	Chef        string  `json:"chef"`
	ChangesMade string  `json:"changesMade"`
	Outcome     string  `json:"outcome"`
	Image       *string `json:"image"`
}
