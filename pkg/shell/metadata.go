package shell

// Metadata is the static head-tag data of the document.
type Metadata struct {
	Title       string
	Description string
}

var defaultMetadata = Metadata{
	Title:       "Weather Sage",
	Description: "Let the weather sage brighten up your day",
}

// DefaultMetadata returns the application metadata.
// The value is a copy; the package record cannot be modified.
func DefaultMetadata() Metadata {
	return defaultMetadata
}

// Validate reports ErrInvalidMetadata if any field is empty.
func (m Metadata) Validate() error {
	if m.Title == "" || m.Description == "" {
		return ErrInvalidMetadata
	}
	return nil
}
