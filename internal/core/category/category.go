// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package category manages the fixed set of story categories.

Stories reference a category by name only; nothing here enforces that a
story's category exists.
*/
package category

// Category is a named grouping of stories.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

const (
	FieldName = "name"

	// MaxNameLength matches the story category bound.
	MaxNameLength = 100
)
