package cache

import "time"

const (
	// DormantTTLDefault bounds how long subscriber-less snapshots survive
	// when no TTL is configured.
	DormantTTLDefault = 30 * time.Minute

	// Poll interval fallbacks for support chat views.
	PollIntervalChatList = 5 * time.Second
	PollIntervalChatOpen = 3 * time.Second
)
