package instance

import "os"

// GetID returns the identifier for this process instance. Heroku-style
// platforms expose DYNO; otherwise PRELAUNCH_INSTANCE_ID can be set.
func GetID() string {
	if id := os.Getenv("PRELAUNCH_INSTANCE_ID"); id != "" {
		return id
	}
	if id := os.Getenv("DYNO"); id != "" {
		return id
	}
	return "local"
}
