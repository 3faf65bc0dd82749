package dashboard

import (
	"log"
)

// LogNotifier writes board outcomes to the server log. The HTTP layer
// carries the same messages back to the acting staff member in the response.
type LogNotifier struct{}

func (LogNotifier) Success(message string) {
	log.Printf("board: %s", message)
}

func (LogNotifier) Error(message string) {
	log.Printf("board: %s", message)
}
