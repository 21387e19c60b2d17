package db

// Repositories provides access to all database repositories
type Repositories struct {
	Clips   *ClipRepository
	History *HistoryRepository
}

// NewRepositories creates a new repository collection
func NewRepositories(db *DB) *Repositories {
	return &Repositories{
		Clips:   NewClipRepository(db),
		History: NewHistoryRepository(db),
	}
}
