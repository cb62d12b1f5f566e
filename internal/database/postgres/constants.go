package postgres

// Error Messages - Draft Operations
const (
	ErrMsgFailedToMarshalSnapshot   = "failed to marshal draft snapshot"
	ErrMsgFailedToUnmarshalSnapshot = "failed to unmarshal draft snapshot"
	ErrMsgFailedToSaveDraft         = "failed to save draft"
	ErrMsgFailedToGetDraft          = "failed to get draft"
	ErrMsgFailedToDeleteDraft       = "failed to delete draft"
	ErrMsgFailedToExpireDrafts      = "failed to expire drafts"
)
