package testposts

// HTTP status code constants.
const (
	// StatusOK indicates a successful request
	StatusOK = 200
	// StatusCreated indicates a post was stored
	StatusCreated = 201
	// StatusBadRequest indicates a rejected request body or query
	StatusBadRequest = 400
	// StatusNotFound indicates an unknown post id
	StatusNotFound = 404
)

// Worker configuration constants.
const (
	// WorkerChannelMultiplier determines channel buffer size relative to worker count
	WorkerChannelMultiplier = 2
)

// Statistics constants.
const (
	// PercentageMultiplier converts a ratio to a percentage
	PercentageMultiplier = 100
)
