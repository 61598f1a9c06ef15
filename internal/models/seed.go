package models

// SeedRequest is the admin payload for applying a named SQL seed script.
// Validation happens in the handler so all field errors report at once.
type SeedRequest struct {
	SeedName   string `json:"seed_name"`
	SQLContent string `json:"sql_content"`
}
