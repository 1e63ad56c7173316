package nutrition

// Store holds the current result set. It is the only place items are
// mutated; every mutation refreshes the item's derived macros and the running
// calorie total before returning. A Store is not safe for concurrent use.
type Store struct {
	items []FoodItem
	index map[string]int
	total int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// Replace swaps in a new result set wholesale.
func (s *Store) Replace(items []FoodItem) {
	s.items = make([]FoodItem, len(items))
	copy(s.items, items)
	s.index = make(map[string]int, len(items))
	for i, item := range s.items {
		s.index[item.ID] = i
	}
	s.aggregate()
}

// Clear empties the store.
func (s *Store) Clear() {
	s.Replace(nil)
}

// Empty reports whether no result set is loaded.
func (s *Store) Empty() bool {
	return len(s.items) == 0
}

// Items returns a copy of the current items in response order.
func (s *Store) Items() []FoodItem {
	items := make([]FoodItem, len(s.items))
	copy(items, s.items)
	return items
}

// Item returns the item stored under id.
func (s *Store) Item(id string) (FoodItem, bool) {
	i, ok := s.index[id]
	if !ok {
		return FoodItem{}, false
	}
	return s.items[i], true
}

// Total returns the calorie total of the included items.
func (s *Store) Total() int {
	return s.total
}

// SetQuantity changes an item's quantity. A non-zero delta is added to the
// current quantity; a zero delta sets the quantity to entered. The result is
// clamped between one and maxQuantity. Unknown ids are ignored.
func (s *Store) SetQuantity(id string, delta, entered int) (FoodItem, bool) {
	return s.mutate(id, func(item *FoodItem) bool {
		next := clampQuantity(entered)
		if delta != 0 {
			next = stepQuantity(item.Quantity, delta)
		}
		previous := item.Quantity
		item.Quantity = next
		if !item.recompute() {
			item.Quantity = previous
			return false
		}
		return true
	})
}

// SetServingSize selects another serving option. Keys missing from the item's
// serving table are ignored.
func (s *Store) SetServingSize(id, key string) (FoodItem, bool) {
	return s.mutate(id, func(item *FoodItem) bool {
		if !item.ServingTable.Has(key) {
			return false
		}
		item.SelectedServing = key
		return item.recompute()
	})
}

// SetIncluded toggles whether the item counts toward the total.
func (s *Store) SetIncluded(id string, included bool) (FoodItem, bool) {
	return s.mutate(id, func(item *FoodItem) bool {
		item.Included = included
		return true
	})
}

func (s *Store) mutate(id string, apply func(*FoodItem) bool) (FoodItem, bool) {
	i, ok := s.index[id]
	if !ok {
		return FoodItem{}, false
	}
	working := s.items[i]
	if !apply(&working) {
		return s.items[i], false
	}
	s.items[i] = working
	s.aggregate()
	return working, true
}

func (s *Store) aggregate() {
	s.total = TotalCalories(s.items)
}
