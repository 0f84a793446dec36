package api

type Error struct {
	Error string `json:"error"`
	Data  string `json:"data,omitempty"`
}

type OK struct {
	Data string `json:"data"`
}

// SubmitRequest describes one batch of command lines to submit as a single
// cluster.
type SubmitRequest struct {
	Commands []string `json:"commands"`
	Times    int      `json:"times,omitempty"`
	Universe string   `json:"universe,omitempty"`
	CPUs     int      `json:"cpus,omitempty"`
	MemoryMB int      `json:"memory_mb,omitempty"`
	DiskMB   int      `json:"disk_mb,omitempty"`
	Email    string   `json:"email,omitempty"`
}

// SaveRequest persists a submission description for manual inspection
// instead of submitting it.
type SaveRequest struct {
	SubmitRequest
	Filename string `json:"filename,omitempty"`
}

type SubmitResponse struct {
	Cluster int `json:"cluster"`
}

type PollResponse struct {
	Cluster int `json:"cluster"`
	Running int `json:"running"`
}

type SaveResponse struct {
	Path string `json:"path"`
}
