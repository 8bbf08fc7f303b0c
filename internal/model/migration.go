package model

// MigrationDetails counts the outcome of a local-to-SQL migration
type MigrationDetails struct {
	Total    int      `json:"total"`
	Success  int      `json:"success"`
	Failures int      `json:"failures"`
	Errors   []string `json:"errors"`
}

// MigrationResult is the aggregate result returned by the migration utility
type MigrationResult struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Details MigrationDetails `json:"details"`
}
