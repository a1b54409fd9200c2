package storage

import (
	"fmt"

	"GraphDiary/internal/model"
)

// GetGraph собирает проекцию хранилища как размеченного мультиграфа.
// Узлы: сначала блок записей, затем блок тегов. Рёбра: сначала тегирования
// (запись → тег, синтетический id "tag-<diary>-<tag>"), затем связи между
// записями. Ребро связи направлено от child к parent. Строки временных
// меток пробрасываются в properties как есть, без разбора.
func (s *Store) GetGraph() (*model.GraphData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nodes := []model.GraphNode{}

	rows, err := s.db.Query(`SELECT id, title, created_at FROM diary_entries`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var id, title, createdAt string
		if err := rows.Scan(&id, &title, &createdAt); err != nil {
			rows.Close()
			return nil, err
		}
		nodes = append(nodes, model.GraphNode{
			ID:       id,
			Label:    title,
			NodeType: "diary",
			Properties: map[string]any{
				"title":      title,
				"created_at": createdAt,
			},
		})
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	rows, err = s.db.Query(`SELECT id, name FROM tags`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			rows.Close()
			return nil, err
		}
		nodes = append(nodes, model.GraphNode{
			ID:       id,
			Label:    name,
			NodeType: "tag",
			Properties: map[string]any{
				"name": name,
			},
		})
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	edges := []model.GraphEdge{}

	rows, err = s.db.Query(`SELECT dt.diary_id, dt.tag_id, t.name
     FROM diary_tags dt
     JOIN tags t ON dt.tag_id = t.id`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var diaryID, tagID, tagName string
		if err := rows.Scan(&diaryID, &tagID, &tagName); err != nil {
			rows.Close()
			return nil, err
		}
		edges = append(edges, model.GraphEdge{
			ID:     fmt.Sprintf("tag-%s-%s", diaryID, tagID),
			Source: diaryID,
			Target: tagID,
			Label:  "tagged_as_" + tagName,
		})
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	rows, err = s.db.Query(`SELECT id, parent_id, child_id, relationship_type FROM relationships`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id, parentID, childID, kind string
		if err := rows.Scan(&id, &parentID, &childID, &kind); err != nil {
			return nil, err
		}
		edges = append(edges, model.GraphEdge{
			ID:     id,
			Source: childID, // ребро направлено от потомка к родителю
			Target: parentID,
			Label:  kind,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &model.GraphData{Nodes: nodes, Edges: edges}, nil
}
