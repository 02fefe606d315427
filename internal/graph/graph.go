// Package graph models how topics relate to one another, so hosts can
// sequence quizzes along prerequisite chains.
package graph

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// RelationshipType is the closed set of ways two topics can relate.
type RelationshipType string

const (
	// RelationshipPrerequisite: the From topic must be learned before To.
	RelationshipPrerequisite RelationshipType = "prerequisite"

	// RelationshipRelated: the topics cover adjacent ground.
	RelationshipRelated RelationshipType = "related"

	// RelationshipSubtopic: the From topic is a part of To.
	RelationshipSubtopic RelationshipType = "subtopic"
)

func (r RelationshipType) valid() bool {
	switch r {
	case RelationshipPrerequisite, RelationshipRelated, RelationshipSubtopic:
		return true
	}
	return false
}

// TopicNode is a topic in the knowledge graph.
type TopicNode struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// TopicEdge is a directed, weighted relationship between two topics.
type TopicEdge struct {
	From         uuid.UUID        `json:"from"`
	To           uuid.UUID        `json:"to"`
	Relationship RelationshipType `json:"relationship"`
	Weight       float64          `json:"weight"`
}

// KnowledgeGraph is a directed graph of topics. The zero value is not usable;
// construct with NewKnowledgeGraph.
type KnowledgeGraph struct {
	nodes map[uuid.UUID]TopicNode
	edges []TopicEdge
}

// NewKnowledgeGraph creates an empty graph.
func NewKnowledgeGraph() *KnowledgeGraph {
	return &KnowledgeGraph{
		nodes: make(map[uuid.UUID]TopicNode),
	}
}

// AddTopic inserts a topic, replacing any existing topic with the same id.
func (g *KnowledgeGraph) AddTopic(node TopicNode) {
	g.nodes[node.ID] = node
}

// Relate adds a directed edge. Both endpoints must already be topics in the
// graph and the relationship must be one of the defined types.
func (g *KnowledgeGraph) Relate(edge TopicEdge) error {
	if !edge.Relationship.valid() {
		return fmt.Errorf("unknown relationship %q", edge.Relationship)
	}
	if _, ok := g.nodes[edge.From]; !ok {
		return fmt.Errorf("topic not found: %s", edge.From)
	}
	if _, ok := g.nodes[edge.To]; !ok {
		return fmt.Errorf("topic not found: %s", edge.To)
	}
	g.edges = append(g.edges, edge)
	return nil
}

// Prerequisites returns the direct prerequisite topics of id, sorted by name
// (ties broken by id). Unknown ids yield an empty slice.
func (g *KnowledgeGraph) Prerequisites(id uuid.UUID) []TopicNode {
	var out []TopicNode
	for _, e := range g.edges {
		if e.To == id && e.Relationship == RelationshipPrerequisite {
			out = append(out, g.nodes[e.From])
		}
	}
	sortTopics(out)
	return out
}

// Topics returns every topic, sorted by name (ties broken by id).
func (g *KnowledgeGraph) Topics() []TopicNode {
	out := make([]TopicNode, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	sortTopics(out)
	return out
}

func sortTopics(nodes []TopicNode) {
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Name != nodes[j].Name {
			return nodes[i].Name < nodes[j].Name
		}
		return nodes[i].ID.String() < nodes[j].ID.String()
	})
}
