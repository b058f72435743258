package specification

import "gorm.io/gorm"

// BySessionID filters contexts by their session
type BySessionID struct {
	SessionID string
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// ByContextType filters by context type (search_results, awaiting_quantity, ...)
type ByContextType struct {
	ContextType string
}

func (s ByContextType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("context_type = ?", s.ContextType)
}

// ByContextTypes filters by a set of context types
type ByContextTypes struct {
	ContextTypes []string
}

func (s ByContextTypes) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("context_type IN ?", s.ContextTypes)
}

// ByQueryHash filters by the normalized query hash
type ByQueryHash struct {
	QueryHash string
}

func (s ByQueryHash) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("query_hash = ?", s.QueryHash)
}

// ActiveOnly keeps rows not logically deleted
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("active = ?", true)
}
