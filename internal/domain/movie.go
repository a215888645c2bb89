package domain

// Movie represents a catalog movie. Every attribute except ID is optional and
// stored as NULL when unset.
type Movie struct {
	ID          int64
	Title       *string
	Description *string
	Trailer     *string
	Year        *int32
	Rating      *float64
	GenreID     *int64
	DirectorID  *int64
}

// Director is a person referenced by zero or more movies.
type Director struct {
	ID   int64
	Name *string
}

// Genre classifies movies.
type Genre struct {
	ID   int64
	Name *string
}
