package service

// Page is the server pagination envelope.
type Page[T any] struct {
	Content          []T  `json:"content"`
	TotalPages       int  `json:"totalPages"`
	TotalElements    int  `json:"totalElements"`
	Number           int  `json:"number"`
	Size             int  `json:"size"`
	First            bool `json:"first"`
	Last             bool `json:"last"`
	NumberOfElements int  `json:"numberOfElements"`
	Empty            bool `json:"empty"`
}

// NewPage builds a page whose metadata is consistent with its content.
// number is 0-based; size is the page size used by the server.
func NewPage[T any](content []T, number, size, totalElements int) Page[T] {
	totalPages := 0
	if size > 0 {
		totalPages = (totalElements + size - 1) / size
	}
	if content == nil {
		content = []T{}
	}
	return Page[T]{
		Content:          content,
		TotalPages:       totalPages,
		TotalElements:    totalElements,
		Number:           number,
		Size:             size,
		First:            number == 0,
		Last:             totalPages == 0 || number >= totalPages-1,
		NumberOfElements: len(content),
		Empty:            len(content) == 0,
	}
}

// Valid checks the envelope invariants.
func (p Page[T]) Valid() bool {
	if (p.Number == 0) != p.First {
		return false
	}
	if p.TotalPages > 0 && (p.Number == p.TotalPages-1) != p.Last {
		return false
	}
	return len(p.Content) == p.NumberOfElements
}
