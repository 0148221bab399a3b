package repository

// PostgreSQL error codes the repositories translate.
const (
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
	checkViolation      = "23514"
)
