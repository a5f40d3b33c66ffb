package models

// ListParams control ordering, pagination and searching of list endpoints.
// A negative Limit means no limit.
type ListParams struct {
	Order     string
	Direction string
	Limit     int
	Offset    int
	Search    string
}
