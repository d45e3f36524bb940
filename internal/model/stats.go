package model

// Stats is the admin dashboard summary across the primary data store
type Stats struct {
	PhotoCount      int
	CollectionCount int
	FolderCount     int
	TotalSizeBytes  int64
}
