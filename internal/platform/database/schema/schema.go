// Copyright (c) 2026 Herdbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package schema names every table and column of the farm schema.

Repositories build SQL from these descriptors instead of repeating string
literals, so a column rename touches one file.
*/
package schema

import "strings"

// Join renders columns as a comma-separated select or insert list.
func Join(columns []string) string {
	return strings.Join(columns, ", ")
}
