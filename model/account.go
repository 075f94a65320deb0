package model

// AccountInfo represents cloud account identity.
type AccountInfo struct {
	Provider    string
	AccountID   string
	AccountARN  string
	AccountName string
}
