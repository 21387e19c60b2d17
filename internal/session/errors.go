package session

import "errors"

// Custom queue service errors
var (
	// ErrDuplicateSubmission indicates the item is already queued or currently showing
	ErrDuplicateSubmission = errors.New("item already submitted")

	// ErrItemNotFound indicates the requested item is not in the upcoming queue
	ErrItemNotFound = errors.New("item not found in queue")

	// ErrQueueFull indicates the upcoming queue has reached its configured cap
	ErrQueueFull = errors.New("queue is full")
)

// IsDuplicateSubmission checks if the error is a duplicate submission error
func IsDuplicateSubmission(err error) bool {
	return errors.Is(err, ErrDuplicateSubmission)
}

// IsItemNotFound checks if the error is an item not found error
func IsItemNotFound(err error) bool {
	return errors.Is(err, ErrItemNotFound)
}

// IsQueueFull checks if the error is a queue full error
func IsQueueFull(err error) bool {
	return errors.Is(err, ErrQueueFull)
}
