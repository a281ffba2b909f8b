package models

// Category is a user-defined category. There are no fixed ids; the suggester
// resolves names against whatever list the user maintains.
type Category struct {
	ID   string   `json:"id" yaml:"id" csv:"id"`
	Name string   `json:"name" yaml:"name" csv:"name"`
	Type BaseType `json:"type" yaml:"type" csv:"type"`
}
