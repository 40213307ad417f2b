// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides business logic and service layer functionality.
package service

import (
	"context"
	"database/sql"
	"sort"

	"github.com/vpac-edu/college-cms/internal/model"
	"github.com/vpac-edu/college-cms/internal/store"
)

// MenuNode is a menu item with its resolved children, ready for
// navigation rendering and section aggregation.
type MenuNode struct {
	ID        int64
	ParentID  *int64
	Title     string
	URL       string
	SortOrder int64
	Depth     int
	Children  []MenuNode
}

// MenuService builds navigation trees from the flat menu_items table.
type MenuService struct {
	queries *store.Queries
}

// NewMenuService creates a new MenuService.
func NewMenuService(db *sql.DB) *MenuService {
	return &MenuService{queries: store.New(db)}
}

// Load fetches all menu items and builds the full navigation tree.
func (s *MenuService) Load(ctx context.Context) ([]MenuNode, error) {
	items, err := s.queries.ListMenuItems(ctx)
	if err != nil {
		return nil, err
	}
	return BuildTree(items), nil
}

// BuildTree converts a flat item list into a nested tree. Top-level items
// are those without a parent or whose parent is missing from the list;
// siblings at every level are ordered by sort order, then title. Items
// only reachable through a reference cycle are dropped.
func BuildTree(items []model.MenuItem) []MenuNode {
	itemMap := make(map[int64]*MenuNode, len(items))
	childIDs := make(map[int64][]int64)
	var rootIDs []int64

	for _, item := range items {
		node := MenuNode{
			ID:        item.ID,
			Title:     item.Title,
			URL:       item.URL,
			SortOrder: item.SortOrder,
			Children:  []MenuNode{},
		}
		if item.ParentID.Valid {
			parentID := item.ParentID.Int64
			node.ParentID = &parentID
		}
		itemMap[item.ID] = &node
	}

	for _, item := range items {
		if item.ParentID.Valid {
			if _, ok := itemMap[item.ParentID.Int64]; ok {
				childIDs[item.ParentID.Int64] = append(childIDs[item.ParentID.Int64], item.ID)
				continue
			}
		}
		// No parent, or parent points at a missing row: promote to top level
		rootIDs = append(rootIDs, item.ID)
	}

	visited := make(map[int64]bool, len(items))
	var build func(id int64, depth int) MenuNode
	build = func(id int64, depth int) MenuNode {
		visited[id] = true
		node := *itemMap[id]
		node.Depth = depth
		node.Children = make([]MenuNode, 0, len(childIDs[id]))
		for _, childID := range sortedByOrder(itemMap, childIDs[id]) {
			if visited[childID] {
				continue
			}
			node.Children = append(node.Children, build(childID, depth+1))
		}
		return node
	}

	roots := make([]MenuNode, 0, len(rootIDs))
	for _, id := range sortedByOrder(itemMap, rootIDs) {
		if visited[id] {
			continue
		}
		roots = append(roots, build(id, 0))
	}
	return roots
}

// sortedByOrder orders sibling IDs by (sort_order, title) ascending.
func sortedByOrder(itemMap map[int64]*MenuNode, ids []int64) []int64 {
	sorted := make([]int64, len(ids))
	copy(sorted, ids)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := itemMap[sorted[i]], itemMap[sorted[j]]
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		return a.Title < b.Title
	})
	return sorted
}

// Flatten walks the tree in pre-order and returns one entry per node with
// its Depth set, for indented admin listings and parent dropdowns.
func Flatten(tree []MenuNode) []MenuNode {
	var flat []MenuNode
	var walk func(nodes []MenuNode)
	walk = func(nodes []MenuNode) {
		for _, node := range nodes {
			entry := node
			entry.Children = nil
			flat = append(flat, entry)
			walk(node.Children)
		}
	}
	walk(tree)
	return flat
}

// FindNode locates the node with the given id anywhere in the tree.
// Returns nil if no such node exists.
func FindNode(tree []MenuNode, id int64) *MenuNode {
	for i := range tree {
		if tree[i].ID == id {
			return &tree[i]
		}
		if found := FindNode(tree[i].Children, id); found != nil {
			return found
		}
	}
	return nil
}

// DescendantIDs returns the ids of the node and every item below it in the
// parent hierarchy, computed from the flat list so orphaned branches are
// still collected.
func DescendantIDs(items []model.MenuItem, rootID int64) []int64 {
	children := make(map[int64][]int64)
	for _, item := range items {
		if item.ParentID.Valid {
			children[item.ParentID.Int64] = append(children[item.ParentID.Int64], item.ID)
		}
	}

	ids := []int64{}
	visited := make(map[int64]bool)
	stack := []int64{rootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			continue
		}
		visited[id] = true
		ids = append(ids, id)
		stack = append(stack, children[id]...)
	}
	return ids
}
