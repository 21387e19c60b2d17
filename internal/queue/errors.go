package queue

import "errors"

// Custom navigation engine errors
var (
	// ErrHistoryEntryNotFound indicates a jump targeted an item absent from play history
	ErrHistoryEntryNotFound = errors.New("history entry not found")
)

// IsHistoryEntryNotFound checks if the error is a history entry not found error
func IsHistoryEntryNotFound(err error) bool {
	return errors.Is(err, ErrHistoryEntryNotFound)
}
