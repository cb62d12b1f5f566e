package worker

// Log Messages - Worker Pool
const (
	// LogMsgWorkerJobFailed is logged when a worker fails to process a job
	LogMsgWorkerJobFailed = "Worker job failed"
	// LogMsgWorkerQueueFull is logged when a job is dropped because the queue is full
	LogMsgWorkerQueueFull = "Worker queue full, dropping job"
)

// Log Messages - Draft Sweep
const (
	LogMsgDraftSweepCompleted = "Draft sweep completed"
	LogMsgDraftSweepFailed    = "Draft sweep failed"
)

// Job names
const (
	JobNameDraftSweep = "draft_sweep"
)

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount      = 2
	TestQueueSize        = 10
	TestExpectedJobCount = 2
)
