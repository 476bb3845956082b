package domain

// LogEntry is one record of the append-only audit log
type LogEntry struct {
	Seq       uint64    `json:"seq"`
	Action    string    `json:"action"`
	Principal Principal `json:"principal"`
	Details   string    `json:"details"`
	Timestamp uint64    `json:"timestamp"`
}
