package model

// GraphNode — узел графовой проекции: запись дневника (node_type "diary")
// или тег (node_type "tag").
type GraphNode struct {
	ID         string         `json:"id"`
	Label      string         `json:"label"`
	NodeType   string         `json:"node_type"`
	Properties map[string]any `json:"properties"`
}

// GraphEdge — ребро графовой проекции: тегирование (запись → тег) или
// связь между записями (child → parent).
type GraphEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

// GraphData — полная проекция хранилища как размеченного мультиграфа.
type GraphData struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}
