// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import "context"

// Repository defines the data access contract. Lists are in storage order.
type Repository interface {
	List(context context.Context) ([]*Category, error)
	FindByName(context context.Context, name string) (*Category, error)

	// Insert adds the categories whose names are not yet stored and reports
	// how many were added. Existing names are left untouched.
	Insert(context context.Context, categories []*Category) (int, error)
}

const resourceCategory = "Category"
