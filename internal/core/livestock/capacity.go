// Copyright (c) 2026 Herdbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package livestock

// CanPlace reports whether a pen with the given capacity and current number
// of occupants (excluding the animal being placed) has room for one more.
func CanPlace(capacity, occupants int) bool {
	return occupants < capacity
}
