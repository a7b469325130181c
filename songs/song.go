// Package songs defines the song record model and the service that
// orchestrates validation and persistence.
package songs

// Song is the persisted record. ID is the store's partition key,
// generated server-side at creation time and immutable thereafter.
type Song struct {
	ID    string `json:"id" dynamodbav:"id"`
	Name  string `json:"name" dynamodbav:"name"`
	Path  string `json:"path" dynamodbav:"path"`
	Plays int    `json:"plays" dynamodbav:"plays"`
}

// CreateParams carries a create payload. Name and Path are mandatory;
// Plays defaults to zero when nil.
type CreateParams struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	Plays *int   `json:"plays"`
}

// UpdateParams carries a partial update. Nil fields keep their stored
// value.
type UpdateParams struct {
	Name  *string `json:"name"`
	Path  *string `json:"path"`
	Plays *int    `json:"plays"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (p UpdateParams) IsEmpty() bool {
	return p.Name == nil && p.Path == nil && p.Plays == nil
}
