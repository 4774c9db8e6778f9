package ingest

// Result holds the outcome of an ingest operation.
type Result struct {
	DaysReceived   int   `json:"days_received"`
	DaysUpserted   int64 `json:"days_upserted"`
	ScoresUpserted int64 `json:"scores_upserted"`

	SessionsReceived int   `json:"sessions_received,omitempty"`
	SetsReceived     int   `json:"sets_received,omitempty"`
	SetsInserted     int64 `json:"sets_inserted,omitempty"`
	SetsSkipped      int64 `json:"sets_skipped,omitempty"`

	Message string `json:"message,omitempty"`
}
