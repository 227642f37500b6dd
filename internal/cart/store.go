package cart

import (
	"strings"
	"sync"
)

type ActionType string

const (
	ActionAddItem        ActionType = "ADD_ITEM"
	ActionUpdateQuantity ActionType = "UPDATE_QUANTITY"
	ActionRemoveItem     ActionType = "REMOVE_ITEM"
	ActionClearCart      ActionType = "CLEAR_CART"
	ActionReplaceAll     ActionType = "REPLACE_ALL"
)

// Action is the only way to mutate a Store.
type Action struct {
	Type      ActionType
	Item      Item
	ProductID string
	Quantity  int
	Items     []Item
}

func AddItem(item Item) Action {
	return Action{Type: ActionAddItem, Item: item}
}

func UpdateQuantity(productID string, quantity int) Action {
	return Action{Type: ActionUpdateQuantity, ProductID: productID, Quantity: quantity}
}

func RemoveItem(productID string) Action {
	return Action{Type: ActionRemoveItem, ProductID: productID}
}

func ClearCart() Action {
	return Action{Type: ActionClearCart}
}

func ReplaceAll(items []Item) Action {
	return Action{Type: ActionReplaceAll, Items: items}
}

// Store holds one session's cart lines. Safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	items []Item
}

func NewStore(items []Item) *Store {
	s := &Store{}
	s.items, _ = reduce(nil, ReplaceAll(items))
	return s
}

// Dispatch applies the action atomically. On error the store is unchanged.
func (s *Store) Dispatch(a Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := reduce(s.items, a)
	if err != nil {
		return err
	}
	s.items = next
	return nil
}

func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Find(productID string) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, it := range s.items {
		if it.ProductID == productID {
			return it, true
		}
	}
	return Item{}, false
}

// Count is the number of units across all lines.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

func reduce(items []Item, a Action) ([]Item, error) {
	switch a.Type {
	case ActionAddItem:
		if strings.TrimSpace(a.Item.ProductID) == "" {
			return nil, ErrInvalidProductID
		}
		if a.Item.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		next := cloneItems(items)
		for i := range next {
			if next[i].ProductID == a.Item.ProductID {
				next[i].Quantity += a.Item.Quantity
				return next, nil
			}
		}
		return append(next, a.Item), nil

	case ActionUpdateQuantity:
		if a.Quantity < 0 {
			return nil, ErrInvalidQuantity
		}
		if a.Quantity == 0 {
			return reduce(items, RemoveItem(a.ProductID))
		}
		next := cloneItems(items)
		for i := range next {
			if next[i].ProductID == a.ProductID {
				next[i].Quantity = a.Quantity
				return next, nil
			}
		}
		return nil, ErrCartItemNotFound

	case ActionRemoveItem:
		next := make([]Item, 0, len(items))
		for _, it := range items {
			if it.ProductID != a.ProductID {
				next = append(next, it)
			}
		}
		return next, nil

	case ActionClearCart:
		return []Item{}, nil

	case ActionReplaceAll:
		next := make([]Item, 0, len(a.Items))
		for _, it := range a.Items {
			if it.Quantity >= 1 && it.ProductID != "" {
				next = append(next, it)
			}
		}
		return next, nil
	}

	return nil, ErrUnknownAction
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items), len(items)+1)
	copy(out, items)
	return out
}
