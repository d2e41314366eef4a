// Copyright (c) 2026 Herdbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses multi-valued URL query parameters.
package query

import (
	"strings"
)

// StringSlice splits a comma-separated query value into trimmed, non-empty
// parts. Values are upper-cased so status filters match enum spellings.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}

	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.ToUpper(strings.TrimSpace(v))
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}
