package queue

// IngestDocumentMsg asks the worker to process one uploaded FIR
// document. The object key points at the stored upload in S3.
type IngestDocumentMsg struct {
	FIRID     string `json:"fir_id"`
	CaseID    string `json:"case_id"`
	ObjectKey string `json:"object_key"`
	FileName  string `json:"file_name"`
}

// RefreshMsg asks the worker to recompute hotspot clusters from the
// stored FIRs.
type RefreshMsg struct {
	Trigger string `json:"trigger"`
}
