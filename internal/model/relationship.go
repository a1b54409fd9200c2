package model

// Relationship — направленная типизированная связь между двумя записями.
// CreatedAt передаётся строкой RFC-3339, как хранится в БД.
type Relationship struct {
	ID               string `json:"id"`
	ParentID         string `json:"parent_id"`
	ChildID          string `json:"child_id"`
	RelationshipType string `json:"relationship_type"`
	CreatedAt        string `json:"created_at"`
}
